package api

import (
	"fmt"
	"log"
	"net/http"

	_ "github.com/rohits-web03/lumina/docs"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/rohits-web03/lumina/internal/api/handlers"
	"github.com/rohits-web03/lumina/internal/api/middleware"
	"github.com/rs/cors"
)

// handle registers pattern and, for paths without a trailing slash, the
// same path with one, so "/todos" and "/todos/" both route.
func handle(mux *http.ServeMux, pattern string, fn http.HandlerFunc) {
	mux.HandleFunc(pattern, fn)
	if pattern[len(pattern)-1] != '}' && pattern[len(pattern)-1] != '/' {
		mux.HandleFunc(pattern+"/{$}", fn)
	}
}

func SetupRouter(h *handlers.Handler, resolver middleware.Resolver, corsOptions cors.Options) http.Handler {
	mainMux := http.NewServeMux()
	c := cors.New(corsOptions)

	// ---------- PUBLIC ROUTES ----------
	mainMux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})

	mainMux.HandleFunc("/docs/", httpSwagger.WrapHandler)

	authMux := http.NewServeMux()
	handle(authMux, "POST /register", h.RegisterUser)
	handle(authMux, "POST /login", h.LoginUser)
	authMux.HandleFunc("GET /google/login", h.HandleGoogleLogin)
	authMux.HandleFunc("GET /google/callback", h.HandleGoogleCallback)

	mainMux.Handle("/api/v1/auth/",
		http.StripPrefix("/api/v1/auth", authMux),
	)

	// ---------- PROTECTED ROUTES ----------
	protectedMux := http.NewServeMux()

	handle(protectedMux, "GET /todos", h.ListTodos)
	handle(protectedMux, "POST /todos", h.CreateTodo)
	protectedMux.HandleFunc("GET /todos/search", h.SearchTodos)
	protectedMux.HandleFunc("GET /todos/date/{date}", h.TodosByDate)
	protectedMux.HandleFunc("POST /todos/rollover", h.RolloverTodos)
	protectedMux.HandleFunc("GET /todos/{id}", h.GetTodo)
	protectedMux.HandleFunc("PUT /todos/{id}", h.UpdateTodo)
	protectedMux.HandleFunc("PUT /todos/{id}/status", h.UpdateTodoStatus)
	protectedMux.HandleFunc("DELETE /todos/{id}", h.DeleteTodo)

	handle(protectedMux, "GET /diaries", h.ListDiaries)
	handle(protectedMux, "POST /diaries", h.CreateDiary)
	protectedMux.HandleFunc("GET /diaries/search", h.SearchDiaries)
	protectedMux.HandleFunc("GET /diaries/date/{date}", h.DiariesByDate)
	protectedMux.HandleFunc("GET /diaries/{id}", h.GetDiary)
	protectedMux.HandleFunc("PUT /diaries/{id}", h.UpdateDiary)
	protectedMux.HandleFunc("DELETE /diaries/{id}", h.DeleteDiary)

	handle(protectedMux, "GET /notes", h.ListNotes)
	handle(protectedMux, "POST /notes", h.CreateNote)
	protectedMux.HandleFunc("GET /notes/search", h.SearchNotes)
	protectedMux.HandleFunc("GET /notes/date/{date}", h.NotesByDate)
	protectedMux.HandleFunc("GET /notes/{id}", h.GetNote)
	protectedMux.HandleFunc("PUT /notes/{id}", h.UpdateNote)
	protectedMux.HandleFunc("DELETE /notes/{id}", h.DeleteNote)

	handle(protectedMux, "GET /goals", h.ListGoals)
	handle(protectedMux, "POST /goals", h.CreateGoal)
	protectedMux.HandleFunc("GET /goals/search", h.SearchGoals)
	protectedMux.HandleFunc("GET /goals/date/{date}", h.GoalsByDate)
	protectedMux.HandleFunc("PUT /goals/complete/{id}", h.CompleteGoal)
	protectedMux.HandleFunc("GET /goals/{id}", h.GetGoal)
	protectedMux.HandleFunc("PUT /goals/{id}", h.UpdateGoal)
	protectedMux.HandleFunc("DELETE /goals/{id}", h.DeleteGoal)

	handle(protectedMux, "GET /users/me", h.GetMe)
	handle(protectedMux, "DELETE /users/me", h.DeleteMe)
	protectedMux.HandleFunc("PUT /users/me/username", h.UpdateUsername)
	protectedMux.HandleFunc("PUT /users/me/password", h.UpdatePassword)
	protectedMux.HandleFunc("PUT /users/me/email", h.UpdateEmail)
	protectedMux.HandleFunc("PUT /users/me/rollover", h.UpdateRollover)
	protectedMux.HandleFunc("POST /users/me/send-validation-code", h.SendValidationCode)
	protectedMux.HandleFunc("POST /users/me/validate-email", h.ValidateEmail)
	protectedMux.HandleFunc("PUT /users/me/notifications", h.UpdateNotifications)
	protectedMux.HandleFunc("PUT /users/me/notifications/disable", h.DisableNotifications)
	protectedMux.HandleFunc("GET /users/me/export", h.ExportMe)

	mainMux.Handle("/api/v1/",
		http.StripPrefix(
			"/api/v1",
			middleware.AuthMiddleware(resolver)(protectedMux),
		),
	)

	log.Println("Router initialized")
	handler := c.Handler(mainMux)
	handler = middleware.Logger(handler)
	return handler
}

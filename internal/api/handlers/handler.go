package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/rohits-web03/lumina/internal/api/middleware"
	"github.com/rohits-web03/lumina/internal/models"
	"github.com/rohits-web03/lumina/internal/services"
	"github.com/rohits-web03/lumina/internal/utils"
	"golang.org/x/oauth2"
)

const dateLayout = "2006-01-02"

// Handler serves the HTTP API on top of the service layer.
type Handler struct {
	Users   *services.UserService
	Todos   *services.TodoService
	Diaries *services.DiaryService
	Notes   *services.NoteService
	Goals   *services.GoalService
	Exports *services.ExportService

	// Google is nil when Google sign-in is not configured.
	Google      *oauth2.Config
	StateSecret string
	FrontendURL string
}

// respondError maps service errors to status codes. Unknown errors are
// logged and never echoed to the client.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.Failure(w, http.StatusNotFound, "Not found")
	case errors.Is(err, services.ErrUnauthorized):
		middleware.Unauthorized(w)
	case errors.Is(err, services.ErrValidation):
		utils.Failure(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrConflict):
		utils.Failure(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrUpstream):
		log.Printf("rid=%s %s %s: %v", middleware.RequestID(r.Context()), r.Method, r.URL.Path, err)
		utils.Failure(w, http.StatusInternalServerError, "Upstream service failed")
	default:
		log.Printf("rid=%s %s %s: %v", middleware.RequestID(r.Context()), r.Method, r.URL.Path, err)
		utils.Failure(w, http.StatusInternalServerError, "Internal server error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		utils.Failure(w, http.StatusBadRequest, "Invalid input")
		return false
	}
	return true
}

// user returns the authenticated caller. Routes using it sit behind AuthMiddleware.
func user(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	u, found := middleware.CurrentUser(r.Context())
	if !found {
		middleware.Unauthorized(w)
	}
	return u, found
}

func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || id == 0 {
		utils.Failure(w, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return uint(id), true
}

func pathDate(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	day, err := parseDate(r.PathValue("date"))
	if err != nil {
		utils.Failure(w, http.StatusBadRequest, err.Error())
		return time.Time{}, false
	}
	return day, true
}

func parseDate(raw string) (time.Time, error) {
	day, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	return day, nil
}

// parseDateOrTime accepts a plain date or an RFC 3339 timestamp.
func parseDateOrTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return parseDate(raw)
}

func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	day, err := parseDateOrTime(*raw)
	if err != nil {
		return nil, err
	}
	return &day, nil
}

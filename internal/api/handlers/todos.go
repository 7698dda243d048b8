package handlers

import (
	"net/http"

	"github.com/rohits-web03/lumina/internal/services"
	"github.com/rohits-web03/lumina/internal/utils"
)

type todoRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Priority    string  `json:"priority"`
	Date        *string `json:"date"`
}

func (req todoRequest) input() (services.TodoInput, error) {
	date, err := parseOptionalDate(req.Date)
	if err != nil {
		return services.TodoInput{}, err
	}
	return services.TodoInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Date:        date,
	}, nil
}

// ListTodos godoc
// @Summary  List the caller's todos
// @Tags     todos
// @Produce  json
// @Security BearerAuth
// @Success  200  {object}  utils.Payload{data=[]models.Todo}
// @Router   /todos [get]
func (h *Handler) ListTodos(w http.ResponseWriter, r *http.Request) {
	u, found := user(w, r)
	if !found {
		return
	}
	todos, err := h.Todos.List(r.Context(), u)
	if err != nil {
		respondError(w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Todos fetched", todos)
}

// GET /todos/search?query=
func (h *Handler) SearchTodos(w http.ResponseWriter, r *http.Request) {
	u, found := user(w, r)
	if !found {
		return
	}
	todos, err := h.Todos.Search(r.Context(), u, r.URL.Query().Get("query"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Todos fetched", todos)
}

// TodosByDate godoc
// @Summary      List todos entered on a day
// @Description  Reading today's list first rolls stale open todos forward when the caller enabled rollover.
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        date  path      string  true  "YYYY-MM-DD"
// @Success      200   {object}  utils.Payload{data=[]models.Todo}
// @Router       /todos/date/{date} [get]
func (h *Handler) TodosByDate(w http.ResponseWriter, r *http.Request) {
	u, found := user(w, r)
	if !found {
		return
	}
	day, valid := pathDate(w, r)
	if !valid {
		return
	}
	todos, err := h.Todos.OnDate(r.Context(), u, day)
	if err != nil {
		respondError(w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Todos fetched", todos)
}

func (h *Handler) GetTodo(w http.ResponseWriter, r *http.Request) {
	u, found := user(w, r)
	if !found {
		return
	}
	id, valid := pathID(w, r)
	if !valid {
		return
	}
	todo, err := h.Todos.Get(r.Context(), u, id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Todo fetched", todo)
}

// CreateTodo godoc
// @Summary  Create a todo
// @Tags     todos
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Success  201  {object}  utils.Payload{data=models.Todo}
// @Failure  400  {object}  utils.Payload
// @Router   /todos [post]
func (h *Handler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	u, found := user(w, r)
	if !found {
		return
	}
	var req todoRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	input, err := req.input()
	if err != nil {
		utils.Failure(w, http.StatusBadRequest, err.Error())
		return
	}
	todo, err := h.Todos.Create(r.Context(), u, input)
	if err != nil {
		respondError(w, r, err)
		return
	}
	utils.Success(w, http.StatusCreated, "Todo created", todo)
}

func (h *Handler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	u, found := user(w, r)
	if !found {
		return
	}
	id, valid := pathID(w, r)
	if !valid {
		return
	}
	var req todoRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	input, err := req.input()
	if err != nil {
		utils.Failure(w, http.StatusBadRequest, err.Error())
		return
	}
	todo, err := h.Todos.Update(r.Context(), u, id, input)
	if err != nil {
		respondError(w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Todo updated", todo)
}

// PUT /todos/{id}/status
func (h *Handler) UpdateTodoStatus(w http.ResponseWriter, r *http.Request) {
	u, found := user(w, r)
	if !found {
		return
	}
	id, valid := pathID(w, r)
	if !valid {
		return
	}
	var req struct {
		Status bool `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	todo, err := h.Todos.SetStatus(r.Context(), u, id, req.Status)
	if err != nil {
		respondError(w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Todo status updated", todo)
}

func (h *Handler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	u, found := user(w, r)
	if !found {
		return
	}
	id, valid := pathID(w, r)
	if !valid {
		return
	}
	if err := h.Todos.Delete(r.Context(), u, id); err != nil {
		respondError(w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Todo deleted", nil)
}

// RolloverTodos godoc
// @Summary  Move open todos from past days to today
// @Tags     todos
// @Produce  json
// @Security BearerAuth
// @Success  200  {object}  utils.Payload{data=[]models.Todo}
// @Router   /todos/rollover [post]
func (h *Handler) RolloverTodos(w http.ResponseWriter, r *http.Request) {
	u, found := user(w, r)
	if !found {
		return
	}
	moved, err := h.Todos.Rollover(r.Context(), u)
	if err != nil {
		respondError(w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Todos rolled over", moved)
}

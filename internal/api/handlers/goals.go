package handlers

import (
	"net/http"

	"github.com/rohits-web03/lumina/internal/services"
	"github.com/rohits-web03/lumina/internal/utils"
)

type goalRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	TargetDate  *string `json:"target_date"`
}

func (req goalRequest) input() (services.GoalInput, error) {
	target, err := parseOptionalDate(req.TargetDate)
	if err != nil {
		return services.GoalInput{}, err
	}
	return services.GoalInput{Title: req.Title, Description: req.Description, TargetDate: target}, nil
}

func (h *Handler) ListGoals(w http.ResponseWriter, r *http.Request) {
	u, found := user(w, r)
	if !found {
		return
	}
	goals, err := h.Goals.List(r.Context(), u)
	if err != nil {
		respondError(w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Goals fetched", goals)
}

func (h *Handler) SearchGoals(w http.ResponseWriter, r *http.Request) {
	u, found := user(w, r)
	if !found {
		return
	}
	goals, err := h.Goals.Search(r.Context(), u, r.URL.Query().Get("query"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Goals fetched", goals)
}

func (h *Handler) GoalsByDate(w http.ResponseWriter, r *http.Request) {
	u, found := user(w, r)
	if !found {
		return
	}
	day, valid := pathDate(w, r)
	if !valid {
		return
	}
	goals, err := h.Goals.OnDate(r.Context(), u, day)
	if err != nil {
		respondError(w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Goals fetched", goals)
}

func (h *Handler) GetGoal(w http.ResponseWriter, r *http.Request) {
	u, found := user(w, r)
	if !found {
		return
	}
	id, valid := pathID(w, r)
	if !valid {
		return
	}
	goal, err := h.Goals.Get(r.Context(), u, id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Goal fetched", goal)
}

func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	u, found := user(w, r)
	if !found {
		return
	}
	var req goalRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	input, err := req.input()
	if err != nil {
		utils.Failure(w, http.StatusBadRequest, err.Error())
		return
	}
	goal, err := h.Goals.Create(r.Context(), u, input)
	if err != nil {
		respondError(w, r, err)
		return
	}
	utils.Success(w, http.StatusCreated, "Goal created", goal)
}

// UpdateGoal replaces title, description and target date.
func (h *Handler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	u, found := user(w, r)
	if !found {
		return
	}
	id, valid := pathID(w, r)
	if !valid {
		return
	}
	var req goalRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	input, err := req.input()
	if err != nil {
		utils.Failure(w, http.StatusBadRequest, err.Error())
		return
	}
	goal, err := h.Goals.Update(r.Context(), u, id, input)
	if err != nil {
		respondError(w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Goal updated", goal)
}

// PUT /goals/complete/{id}
func (h *Handler) CompleteGoal(w http.ResponseWriter, r *http.Request) {
	u, found := user(w, r)
	if !found {
		return
	}
	id, valid := pathID(w, r)
	if !valid {
		return
	}
	goal, err := h.Goals.Complete(r.Context(), u, id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Goal completed", goal)
}

func (h *Handler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	u, found := user(w, r)
	if !found {
		return
	}
	id, valid := pathID(w, r)
	if !valid {
		return
	}
	if err := h.Goals.Delete(r.Context(), u, id); err != nil {
		respondError(w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Goal deleted", nil)
}

package handlers

import (
	"net/http"

	"github.com/rohits-web03/lumina/internal/services"
	"github.com/rohits-web03/lumina/internal/utils"
)

// noteRequest keeps Tags as a pointer so an omitted list can be told apart
// from an empty one.
type noteRequest struct {
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	IsPinned   bool      `json:"is_pinned"`
	IsArchived bool      `json:"is_archived"`
	Tags       *[]string `json:"tags"`
}

func (req noteRequest) input() services.NoteInput {
	input := services.NoteInput{
		Title:      req.Title,
		Content:    req.Content,
		IsPinned:   req.IsPinned,
		IsArchived: req.IsArchived,
	}
	if req.Tags != nil {
		input.Tags = *req.Tags
		if input.Tags == nil {
			input.Tags = []string{}
		}
	}
	return input
}

func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	u, found := user(w, r)
	if !found {
		return
	}
	notes, err := h.Notes.List(r.Context(), u)
	if err != nil {
		respondError(w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Notes fetched", notes)
}

func (h *Handler) SearchNotes(w http.ResponseWriter, r *http.Request) {
	u, found := user(w, r)
	if !found {
		return
	}
	notes, err := h.Notes.Search(r.Context(), u, r.URL.Query().Get("query"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Notes fetched", notes)
}

func (h *Handler) NotesByDate(w http.ResponseWriter, r *http.Request) {
	u, found := user(w, r)
	if !found {
		return
	}
	day, valid := pathDate(w, r)
	if !valid {
		return
	}
	notes, err := h.Notes.OnDate(r.Context(), u, day)
	if err != nil {
		respondError(w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Notes fetched", notes)
}

func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	u, found := user(w, r)
	if !found {
		return
	}
	id, valid := pathID(w, r)
	if !valid {
		return
	}
	note, err := h.Notes.Get(r.Context(), u, id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Note fetched", note)
}

// CreateNote godoc
// @Summary      Create a note
// @Description  Tags are trimmed, lowercased and shared between users.
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  utils.Payload{data=models.Note}
// @Router       /notes [post]
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	u, found := user(w, r)
	if !found {
		return
	}
	var req noteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	note, err := h.Notes.Create(r.Context(), u, req.input())
	if err != nil {
		respondError(w, r, err)
		return
	}
	utils.Success(w, http.StatusCreated, "Note created", note)
}

// UpdateNote godoc
// @Summary      Update a note
// @Description  Omitting tags keeps them; an empty list removes them all.
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Note id"
// @Success      200  {object}  utils.Payload{data=models.Note}
// @Failure      404  {object}  utils.Payload
// @Router       /notes/{id} [put]
func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	u, found := user(w, r)
	if !found {
		return
	}
	id, valid := pathID(w, r)
	if !valid {
		return
	}
	var req noteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	note, err := h.Notes.Update(r.Context(), u, id, req.input())
	if err != nil {
		respondError(w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Note updated", note)
}

func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	u, found := user(w, r)
	if !found {
		return
	}
	id, valid := pathID(w, r)
	if !valid {
		return
	}
	if err := h.Notes.Delete(r.Context(), u, id); err != nil {
		respondError(w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Note deleted", nil)
}

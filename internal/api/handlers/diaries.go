package handlers

import (
	"net/http"

	"github.com/rohits-web03/lumina/internal/services"
	"github.com/rohits-web03/lumina/internal/utils"
)

func (h *Handler) ListDiaries(w http.ResponseWriter, r *http.Request) {
	u, found := user(w, r)
	if !found {
		return
	}
	diaries, err := h.Diaries.List(r.Context(), u)
	if err != nil {
		respondError(w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Diaries fetched", diaries)
}

func (h *Handler) SearchDiaries(w http.ResponseWriter, r *http.Request) {
	u, found := user(w, r)
	if !found {
		return
	}
	diaries, err := h.Diaries.Search(r.Context(), u, r.URL.Query().Get("query"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Diaries fetched", diaries)
}

func (h *Handler) DiariesByDate(w http.ResponseWriter, r *http.Request) {
	u, found := user(w, r)
	if !found {
		return
	}
	day, valid := pathDate(w, r)
	if !valid {
		return
	}
	diaries, err := h.Diaries.OnDate(r.Context(), u, day)
	if err != nil {
		respondError(w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Diaries fetched", diaries)
}

func (h *Handler) GetDiary(w http.ResponseWriter, r *http.Request) {
	u, found := user(w, r)
	if !found {
		return
	}
	id, valid := pathID(w, r)
	if !valid {
		return
	}
	diary, err := h.Diaries.Get(r.Context(), u, id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Diary fetched", diary)
}

func (h *Handler) CreateDiary(w http.ResponseWriter, r *http.Request) {
	u, found := user(w, r)
	if !found {
		return
	}
	var input services.DiaryInput
	if !decodeJSON(w, r, &input) {
		return
	}
	diary, err := h.Diaries.Create(r.Context(), u, input)
	if err != nil {
		respondError(w, r, err)
		return
	}
	utils.Success(w, http.StatusCreated, "Diary created", diary)
}

func (h *Handler) UpdateDiary(w http.ResponseWriter, r *http.Request) {
	u, found := user(w, r)
	if !found {
		return
	}
	id, valid := pathID(w, r)
	if !valid {
		return
	}
	var input services.DiaryInput
	if !decodeJSON(w, r, &input) {
		return
	}
	diary, err := h.Diaries.Update(r.Context(), u, id, input)
	if err != nil {
		respondError(w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Diary updated", diary)
}

func (h *Handler) DeleteDiary(w http.ResponseWriter, r *http.Request) {
	u, found := user(w, r)
	if !found {
		return
	}
	id, valid := pathID(w, r)
	if !valid {
		return
	}
	if err := h.Diaries.Delete(r.Context(), u, id); err != nil {
		respondError(w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Diary deleted", nil)
}

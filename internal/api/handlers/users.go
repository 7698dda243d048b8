package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/rohits-web03/lumina/internal/models"
	"github.com/rohits-web03/lumina/internal/utils"
)

// GetMe godoc
// @Summary  Current user
// @Tags     users
// @Produce  json
// @Security BearerAuth
// @Success  200  {object}  utils.Payload{data=models.User}
// @Failure  401  {object}  utils.Payload
// @Router   /users/me [get]
func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	u, found := user(w, r)
	if !found {
		return
	}
	utils.Success(w, http.StatusOK, "User fetched", u)
}

func (h *Handler) UpdateUsername(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
	}
	h.updateMe(w, r, &req, func(u *models.User) (*models.User, error) {
		return h.Users.UpdateUsername(r.Context(), u, req.Username)
	})
}

func (h *Handler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	h.updateMe(w, r, &req, func(u *models.User) (*models.User, error) {
		return h.Users.UpdatePassword(r.Context(), u, req.Password)
	})
}

func (h *Handler) UpdateEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	h.updateMe(w, r, &req, func(u *models.User) (*models.User, error) {
		return h.Users.UpdateEmail(r.Context(), u, req.Email)
	})
}

func (h *Handler) UpdateRollover(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Rollover bool `json:"rollover"`
	}
	h.updateMe(w, r, &req, func(u *models.User) (*models.User, error) {
		return h.Users.SetRollover(r.Context(), u, req.Rollover)
	})
}

// updateMe decodes req (when non-nil) and applies a profile change.
func (h *Handler) updateMe(w http.ResponseWriter, r *http.Request, req any, apply func(*models.User) (*models.User, error)) {
	u, found := user(w, r)
	if !found {
		return
	}
	if req != nil && !decodeJSON(w, r, req) {
		return
	}
	updated, err := apply(u)
	if err != nil {
		respondError(w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "User updated", updated)
}

// DELETE /users/me
func (h *Handler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	u, found := user(w, r)
	if !found {
		return
	}
	if err := h.Users.Delete(r.Context(), u); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SendValidationCode godoc
// @Summary  Email a one-time verification code
// @Tags     users
// @Produce  json
// @Security BearerAuth
// @Success  200  {object}  utils.Payload
// @Failure  500  {object}  utils.Payload
// @Router   /users/me/send-validation-code [post]
func (h *Handler) SendValidationCode(w http.ResponseWriter, r *http.Request) {
	u, found := user(w, r)
	if !found {
		return
	}
	if err := h.Users.SendVerificationCode(r.Context(), u); err != nil {
		respondError(w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, fmt.Sprintf("Verification code sent to %s", u.Email), nil)
}

func (h *Handler) ValidateEmail(w http.ResponseWriter, r *http.Request) {
	u, found := user(w, r)
	if !found {
		return
	}
	var req struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if _, err := h.Users.ValidateEmail(r.Context(), u, req.Code); err != nil {
		respondError(w, r, err)
		return
	}
	utils.Success(w, http.StatusOK, "Email validated successfully", nil)
}

// PUT /users/me/notifications?enable=true|false
func (h *Handler) UpdateNotifications(w http.ResponseWriter, r *http.Request) {
	enable, err := strconv.ParseBool(r.URL.Query().Get("enable"))
	if err != nil {
		utils.Failure(w, http.StatusBadRequest, "Query parameter enable must be true or false")
		return
	}
	h.updateMe(w, r, nil, func(u *models.User) (*models.User, error) {
		return h.Users.SetNotifications(r.Context(), u, enable)
	})
}

func (h *Handler) DisableNotifications(w http.ResponseWriter, r *http.Request) {
	h.updateMe(w, r, nil, func(u *models.User) (*models.User, error) {
		return h.Users.SetNotifications(r.Context(), u, false)
	})
}

// ExportMe godoc
// @Summary      Export everything the caller owns
// @Description  Returns a download link when object storage is configured, otherwise the file itself.
// @Tags         users
// @Produce      json
// @Produce      text/markdown
// @Produce      application/yaml
// @Security     BearerAuth
// @Param        format  query     string  false  "md or yaml"  Enums(md, yaml)
// @Success      200     {object}  utils.Payload{data=services.ExportLink}
// @Failure      400     {object}  utils.Payload
// @Router       /users/me/export [get]
func (h *Handler) ExportMe(w http.ResponseWriter, r *http.Request) {
	u, found := user(w, r)
	if !found {
		return
	}
	format := r.URL.Query().Get("format")

	if h.Exports.CanPublish() {
		link, err := h.Exports.Publish(r.Context(), u, format)
		if err != nil {
			respondError(w, r, err)
			return
		}
		utils.Success(w, http.StatusOK, "Export ready", link)
		return
	}

	file, err := h.Exports.Render(r.Context(), u, format)
	if err != nil {
		respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Body)
}

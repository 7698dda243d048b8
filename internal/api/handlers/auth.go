package handlers

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"time"

	oauth "github.com/rohits-web03/lumina/internal/api/services"
	"github.com/rohits-web03/lumina/internal/services"
	"github.com/rohits-web03/lumina/internal/utils"
)

// RegisterUser godoc
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      services.RegisterInput  true  "Account"
// @Success      201   {object}  utils.Payload{data=models.User}
// @Failure      400   {object}  utils.Payload
// @Failure      409   {object}  utils.Payload
// @Router       /auth/register [post]
func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterInput
	if !decodeJSON(w, r, &input) {
		return
	}

	created, err := h.Users.Register(r.Context(), input)
	if err != nil {
		respondError(w, r, err)
		return
	}
	utils.Success(w, http.StatusCreated, "User registered successfully", created)
}

// LoginUser godoc
// The body is the bare OAuth2 token response so password-flow clients can use it.
// @Summary      Exchange username and password for a bearer token
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      200       {object}  services.Token
// @Failure      401       {object}  utils.Payload
// @Router       /auth/login [post]
func (h *Handler) LoginUser(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		utils.Failure(w, http.StatusBadRequest, "Invalid input")
		return
	}
	username := r.PostForm.Get("username")
	password := r.PostForm.Get("password")
	if username == "" || password == "" {
		utils.Failure(w, http.StatusBadRequest, "Invalid input")
		return
	}

	token, err := h.Users.Login(r.Context(), username, password)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeToken(w, token)
}

func writeToken(w http.ResponseWriter, token *services.Token) {
	w.Header().Set("Cache-Control", "no-store")
	utils.WriteJSON(w, http.StatusOK, token)
}

// GET /auth/google/login?redirect=login|register
func (h *Handler) HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	if h.Google == nil {
		utils.Failure(w, http.StatusNotFound, "Google sign-in is not configured")
		return
	}

	flow := r.URL.Query().Get("redirect")
	if flow != flowRegister {
		flow = flowLogin
	}

	state, err := GenerateState(h.StateSecret, flow, time.Now())
	if err != nil {
		log.Printf("google login: %v", err)
		utils.Failure(w, http.StatusInternalServerError, "Failed to generate OAuth state")
		return
	}

	http.Redirect(w, r, h.Google.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// GET /auth/google/callback
//
// On success the browser is sent to the frontend with the bearer token in the
// URL fragment, which never reaches a server log.
func (h *Handler) HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	if h.Google == nil {
		utils.Failure(w, http.StatusNotFound, "Google sign-in is not configured")
		return
	}

	flow, err := DecodeState(h.StateSecret, r.FormValue("state"))
	if err != nil {
		utils.Failure(w, http.StatusBadRequest, "Invalid OAuth state")
		return
	}

	googleUser, err := oauth.FetchGoogleUser(r.Context(), h.Google, r.FormValue("code"))
	if err != nil {
		log.Printf("google callback: %v", err)
		utils.Failure(w, http.StatusBadGateway, "Failed to sign in with Google")
		return
	}

	existing, err := h.Users.FindByEmail(r.Context(), googleUser.Email)
	if err != nil && !errors.Is(err, services.ErrNotFound) {
		respondError(w, r, err)
		return
	}

	switch flow {
	case flowRegister:
		if existing != nil {
			h.redirectFrontend(w, r, "/login", url.Values{"error": {"user_already_exists"}}, "")
			return
		}
		existing, err = h.Users.RegisterExternal(r.Context(), googleUser.Email, googleUser.Name, googleUser.VerifiedEmail)
		if err != nil {
			respondError(w, r, err)
			return
		}
	case flowLogin:
		if existing == nil {
			h.redirectFrontend(w, r, "/register", url.Values{"error": {"user_not_found"}}, "")
			return
		}
	}

	token, err := h.Users.IssueToken(existing)
	if err != nil {
		respondError(w, r, err)
		return
	}

	fragment := url.Values{
		"access_token": {token.AccessToken},
		"token_type":   {token.TokenType},
		"flow":         {flow},
	}
	h.redirectFrontend(w, r, "/auth/callback", nil, fragment.Encode())
}

func (h *Handler) redirectFrontend(w http.ResponseWriter, r *http.Request, path string, query url.Values, fragment string) {
	target := h.FrontendURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	if fragment != "" {
		target += "#" + fragment
	}
	http.Redirect(w, r, target, http.StatusTemporaryRedirect)
}

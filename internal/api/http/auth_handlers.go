package http

import (
	"net/http"

	"roofbox-backend/internal/security"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInResponse struct {
	Token   string            `json:"token"`
	Session *security.Session `json:"session"`
}

func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, err := h.auth.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err, MsgGenericError)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	token, session, err := h.auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err, MsgGenericError)
		return
	}
	writeJSON(w, http.StatusOK, signInResponse{Token: token, Session: session})
}

func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	session, _ := security.SessionFromContext(r.Context())
	if err := h.auth.SignOut(r.Context(), session); err != nil {
		writeServiceError(w, r, err, MsgGenericError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CurrentSession(w http.ResponseWriter, r *http.Request) {
	session, ok := security.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, MsgUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

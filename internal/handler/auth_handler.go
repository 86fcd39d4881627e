package handler

import (
	"net/http"

	"guest-list-api/internal/validation"
)

// Login is a one-shot credential check; nothing is issued on success.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) error {
	req, err := validation.DecodeLogin(r.Body)
	if err != nil {
		return &Error{Status: http.StatusBadRequest, Message: msgInvalidData, WithSuccess: true}
	}

	if !h.verifier.Verify(r.Context(), req.Username, req.Password) {
		h.log.Warn().Str("username", req.Username).Msg("login rejected")
		return &Error{Status: http.StatusUnauthorized, Message: msgBadLogin, WithSuccess: true}
	}

	writeJSON(w, http.StatusOK, result{Success: true, Message: msgLoginOK})
	return nil
}

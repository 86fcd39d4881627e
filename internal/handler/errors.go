package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"guest-list-api/internal/middleware"
)

const (
	msgInvalidData = "Dados inválidos"
	msgInvalidID   = "ID inválido"
	msgNotFound    = "Convidado não encontrado"
	msgInternal    = "Erro interno do servidor"
	msgBadLogin    = "Credenciais inválidas"
	msgLoginOK     = "Login realizado com sucesso"
	msgDeleted     = "Convidado removido com sucesso"
	msgUncaught    = "Internal Server Error"
)

// Error is an error that knows its HTTP response. Err, when set, is the
// underlying cause; it is logged but never sent to the client.
type Error struct {
	Status  int
	Message string
	// WithSuccess adds "success": false to the body, for routes whose
	// success responses carry a success flag.
	WithSuccess bool
	Err         error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) body() any {
	if e.WithSuccess {
		return result{Success: false, Message: e.Message}
	}
	return message{Message: e.Message}
}

type message struct {
	Message string `json:"message"`
}

type result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HandlerFunc is a route that reports failure by returning an error.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Wrap writes the response for a failed handler. Tagged errors carry their
// own status; anything else is answered with 500 and its own message.
func (h *Handler) Wrap(fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}

		log := h.log.With().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", middleware.RequestIDFrom(r.Context())).
			Logger()

		var he *Error
		if errors.As(err, &he) {
			if he.Err != nil {
				log.Error().Err(he.Err).Int("status", he.Status).Msg(he.Message)
			}
			writeJSON(w, he.Status, he.body())
			return
		}

		log.Error().Err(err).Msg("server error")
		msg := err.Error()
		if msg == "" {
			msg = msgUncaught
		}
		writeJSON(w, http.StatusInternalServerError, message{Message: msg})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

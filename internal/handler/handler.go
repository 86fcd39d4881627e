package handler

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"guest-list-api/internal/auth"
	"guest-list-api/internal/model"
)

// Guests is the repository surface the routes use.
type Guests interface {
	All(ctx context.Context) ([]model.Guest, error)
	Search(ctx context.Context, term string) ([]model.Guest, error)
	Present(ctx context.Context) ([]model.Guest, error)
	Create(ctx context.Context, ng model.NewGuest) (*model.Guest, error)
	SetPresence(ctx context.Context, id int, present bool) (*model.Guest, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	guests   Guests
	verifier auth.Verifier
	db       Pinger
	log      zerolog.Logger
}

func New(guests Guests, verifier auth.Verifier, db Pinger, log zerolog.Logger) *Handler {
	return &Handler{guests: guests, verifier: verifier, db: db, log: log}
}

// Routes registers every endpoint. login wraps the login route only, so a
// rate limiter can be slotted in there.
func (h *Handler) Routes(login func(http.Handler) http.Handler) http.Handler {
	if login == nil {
		login = func(next http.Handler) http.Handler { return next }
	}
	mux := http.NewServeMux()
	mux.Handle("POST /api/login", login(h.Wrap(h.Login)))
	mux.Handle("GET /api/guests", h.Wrap(h.ListGuests))
	mux.Handle("POST /api/guests", h.Wrap(h.CreateGuest))
	mux.Handle("GET /api/guests/present", h.Wrap(h.PresentGuests))
	mux.Handle("POST /api/guests/{id}/presence", h.Wrap(h.UpdatePresence))
	mux.Handle("DELETE /api/guests/{id}", h.Wrap(h.DeleteGuest))
	mux.Handle("GET /healthz", h.Wrap(h.Health))
	return mux
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) error {
	if h.db != nil {
		if err := h.db.Ping(r.Context()); err != nil {
			return &Error{Status: http.StatusServiceUnavailable, Message: "database unavailable", Err: err}
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	return nil
}

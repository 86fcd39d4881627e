package handler

import (
	"errors"
	"net/http"
	"strconv"

	"guest-list-api/internal/guest"
	"guest-list-api/internal/validation"
)

func (h *Handler) ListGuests(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	if term := r.URL.Query().Get("search"); term != "" {
		gs, err := h.guests.Search(ctx, term)
		if err != nil {
			return internal(err)
		}
		writeJSON(w, http.StatusOK, gs)
		return nil
	}

	gs, err := h.guests.All(ctx)
	if err != nil {
		return internal(err)
	}
	writeJSON(w, http.StatusOK, gs)
	return nil
}

func (h *Handler) CreateGuest(w http.ResponseWriter, r *http.Request) error {
	ng, err := validation.DecodeGuest(r.Body)
	if err != nil {
		return &Error{Status: http.StatusBadRequest, Message: msgInvalidData, Err: err}
	}

	g, err := h.guests.Create(r.Context(), ng)
	if err != nil {
		// a failed insert is reported as bad input, like a failed schema check
		return &Error{Status: http.StatusBadRequest, Message: msgInvalidData, Err: err}
	}
	writeJSON(w, http.StatusCreated, g)
	return nil
}

func (h *Handler) UpdatePresence(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	p, err := validation.DecodePresence(r.Body)
	if err != nil {
		return &Error{Status: http.StatusBadRequest, Message: msgInvalidData}
	}

	g, err := h.guests.SetPresence(r.Context(), id, p.Present)
	if errors.Is(err, guest.ErrNotFound) {
		return &Error{Status: http.StatusNotFound, Message: msgNotFound}
	}
	if err != nil {
		return internal(err)
	}
	writeJSON(w, http.StatusOK, g)
	return nil
}

func (h *Handler) DeleteGuest(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	ok, err := h.guests.Delete(r.Context(), id)
	if err != nil {
		return internal(err)
	}
	if !ok {
		return &Error{Status: http.StatusNotFound, Message: msgNotFound}
	}
	writeJSON(w, http.StatusOK, result{Success: true, Message: msgDeleted})
	return nil
}

// PresentGuests lists checked-in guests in name order.
func (h *Handler) PresentGuests(w http.ResponseWriter, r *http.Request) error {
	gs, err := h.guests.Present(r.Context())
	if err != nil {
		return internal(err)
	}
	writeJSON(w, http.StatusOK, gs)
	return nil
}

func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return 0, &Error{Status: http.StatusBadRequest, Message: msgInvalidID}
	}
	return id, nil
}

func internal(err error) error {
	return &Error{Status: http.StatusInternalServerError, Message: msgInternal, Err: err}
}

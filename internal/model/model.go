package model

import "time"

type Guest struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Side      string    `json:"side"`
	Present   bool      `json:"present"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewGuest is the client-supplied part of a guest; everything else is
// assigned by the store.
type NewGuest struct {
	Name string `json:"name"`
	Side string `json:"side"`
}

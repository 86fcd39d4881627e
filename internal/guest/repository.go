// Package guest is the typed data-access layer over the guest store. It owns
// ordering: every list it returns is sorted by name with a locale-aware
// collation, whatever order the store produced.
package guest

import (
	"context"
	"errors"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"guest-list-api/internal/model"
	"guest-list-api/internal/store"
)

var ErrNotFound = errors.New("guest not found")

// Store is the row-level persistence the repository needs. *store.Store
// satisfies it.
type Store interface {
	GuestByID(ctx context.Context, id int) (*model.Guest, error)
	ListGuests(ctx context.Context) ([]model.Guest, error)
	SearchGuests(ctx context.Context, term string) ([]model.Guest, error)
	InsertGuest(ctx context.Context, ng model.NewGuest) (*model.Guest, error)
	SetPresence(ctx context.Context, id int, present bool) (*model.Guest, error)
	DeleteGuest(ctx context.Context, id int) (bool, error)
}

type Repository struct {
	store  Store
	locale language.Tag
}

func NewRepository(st Store, locale language.Tag) *Repository {
	return &Repository{store: st, locale: locale}
}

func (r *Repository) Get(ctx context.Context, id int) (*model.Guest, error) {
	return notFound(r.store.GuestByID(ctx, id))
}

func (r *Repository) All(ctx context.Context) ([]model.Guest, error) {
	gs, err := r.store.ListGuests(ctx)
	if err != nil {
		return nil, err
	}
	r.sortByName(gs)
	return gs, nil
}

func (r *Repository) Search(ctx context.Context, term string) ([]model.Guest, error) {
	gs, err := r.store.SearchGuests(ctx, term)
	if err != nil {
		return nil, err
	}
	r.sortByName(gs)
	return gs, nil
}

// Present returns the checked-in guests, filtered from the full sorted list.
func (r *Repository) Present(ctx context.Context) ([]model.Guest, error) {
	gs, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	out := []model.Guest{}
	for _, g := range gs {
		if g.Present {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *Repository) Create(ctx context.Context, ng model.NewGuest) (*model.Guest, error) {
	return r.store.InsertGuest(ctx, ng)
}

func (r *Repository) SetPresence(ctx context.Context, id int, present bool) (*model.Guest, error) {
	return notFound(r.store.SetPresence(ctx, id, present))
}

// Delete reports whether a guest was removed; a missing id is not an error.
func (r *Repository) Delete(ctx context.Context, id int) (bool, error) {
	return r.store.DeleteGuest(ctx, id)
}

// sortByName builds a collator per call: collate.Collator keeps scratch
// buffers and is not safe for concurrent use.
func (r *Repository) sortByName(gs []model.Guest) {
	c := collate.New(r.locale)
	slices.SortStableFunc(gs, func(a, b model.Guest) int {
		return c.CompareString(a.Name, b.Name)
	})
}

func notFound(g *model.Guest, err error) (*model.Guest, error) {
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	return g, err
}

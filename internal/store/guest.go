package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"guest-list-api/internal/model"
)

const guestColumns = `id, name, side, present, created_at`

func scanGuest(row pgx.Row) (*model.Guest, error) {
	g := &model.Guest{}
	err := row.Scan(&g.ID, &g.Name, &g.Side, &g.Present, &g.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db: %w", err)
	}
	return g, nil
}

func (s *Store) GuestByID(ctx context.Context, id int) (*model.Guest, error) {
	return scanGuest(s.pool.QueryRow(ctx,
		`SELECT `+guestColumns+` FROM guests WHERE id = $1`, id))
}

func (s *Store) ListGuests(ctx context.Context) ([]model.Guest, error) {
	return s.queryGuests(ctx, `SELECT `+guestColumns+` FROM guests`)
}

// SearchGuests matches term anywhere in the name, ignoring case. LIKE
// wildcards in term are escaped so they match literally.
func (s *Store) SearchGuests(ctx context.Context, term string) ([]model.Guest, error) {
	return s.queryGuests(ctx,
		`SELECT `+guestColumns+` FROM guests WHERE name ILIKE $1 ESCAPE '\'`,
		"%"+escapeLike(term)+"%")
}

func (s *Store) InsertGuest(ctx context.Context, ng model.NewGuest) (*model.Guest, error) {
	return scanGuest(s.pool.QueryRow(ctx,
		`INSERT INTO guests (name, side) VALUES ($1, $2)
		 RETURNING `+guestColumns, ng.Name, ng.Side))
}

func (s *Store) SetPresence(ctx context.Context, id int, present bool) (*model.Guest, error) {
	return scanGuest(s.pool.QueryRow(ctx,
		`UPDATE guests SET present = $1 WHERE id = $2
		 RETURNING `+guestColumns, present, id))
}

// DeleteGuest reports whether a row was actually removed.
func (s *Store) DeleteGuest(ctx context.Context, id int) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM guests WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("db: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) queryGuests(ctx context.Context, q string, args ...any) ([]model.Guest, error) {
	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("db: %w", err)
	}
	defer rows.Close()

	out := []model.Guest{}
	for rows.Next() {
		var g model.Guest
		if err := rows.Scan(&g.ID, &g.Name, &g.Side, &g.Present, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("db: %w", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db: %w", err)
	}
	return out, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

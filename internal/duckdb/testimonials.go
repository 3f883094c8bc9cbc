package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tinytelemetry/marquee/internal/model"
)

const testimonialColumns = `id, quote, author, role, company, rating, position, created_at`

// InsertTestimonial validates and stores t, returning the new id. A zero
// Position appends after the current last item.
func (s *Store) InsertTestimonial(ctx context.Context, t *model.Testimonial) (int64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	position := t.Position
	if position == 0 {
		if err := s.db.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(position), 0) + 1 FROM testimonials`).Scan(&position); err != nil {
			return 0, fmt.Errorf("next position: %w", err)
		}
	}

	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO testimonials (quote, author, role, company, rating, position)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`,
		t.Quote, t.Author, t.Role, t.Company, t.Rating, position,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert testimonial: %w", err)
	}
	t.ID = id
	t.Position = position
	return id, nil
}

// ListTestimonials returns every testimonial in carousel order.
func (s *Store) ListTestimonials(ctx context.Context) ([]model.Testimonial, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+testimonialColumns+` FROM testimonials ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}
	defer rows.Close()

	out := make([]model.Testimonial, 0)
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetTestimonial returns one testimonial or model.ErrNotFound.
func (s *Store) GetTestimonial(ctx context.Context, id int64) (model.Testimonial, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	row := s.db.QueryRowContext(ctx,
		`SELECT `+testimonialColumns+` FROM testimonials WHERE id = ?`, id)
	t, err := scanTestimonial(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Testimonial{}, model.ErrNotFound
	}
	return t, err
}

// DeleteTestimonial removes one testimonial or returns model.ErrNotFound.
func (s *Store) DeleteTestimonial(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `DELETE FROM testimonials WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete testimonial %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}

// Count returns the number of testimonials.
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM testimonials`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count testimonials: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTestimonial(r rowScanner) (model.Testimonial, error) {
	var t model.Testimonial
	err := r.Scan(&t.ID, &t.Quote, &t.Author, &t.Role, &t.Company, &t.Rating, &t.Position, &t.CreatedAt)
	return t, err
}

package model

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a testimonial id does not exist.
var ErrNotFound = errors.New("testimonial not found")

// TestimonialQuerier provides read-only queries on testimonials.
type TestimonialQuerier interface {
	ListTestimonials(ctx context.Context) ([]Testimonial, error)
	GetTestimonial(ctx context.Context, id int64) (Testimonial, error)
	Count(ctx context.Context) (int, error)
}

// TestimonialWriter provides write operations.
type TestimonialWriter interface {
	InsertTestimonial(ctx context.Context, t *Testimonial) (int64, error)
	DeleteTestimonial(ctx context.Context, id int64) error
}

// TestimonialStore is the unified contract for read/write surfaces (HTTP,
// socket RPC, seeding).
type TestimonialStore interface {
	TestimonialQuerier
	TestimonialWriter
}

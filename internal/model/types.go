package model

import "time"

// Testimonial is one carousel item. It is the canonical type for storage,
// transport (HTTP, socket RPC) and display.
type Testimonial struct {
	ID        int64     `json:"id" yaml:"-"`
	Quote     string    `json:"quote" yaml:"quote"`
	Author    string    `json:"author" yaml:"author"`
	Role      string    `json:"role,omitempty" yaml:"role"`
	Company   string    `json:"company,omitempty" yaml:"company"`
	Rating    int       `json:"rating,omitempty" yaml:"rating"` // 0 = unrated, else 1-5
	Position  int       `json:"position" yaml:"position"`
	CreatedAt time.Time `json:"created_at" yaml:"-"`
}

// Validate reports the first problem that would make t unusable.
func (t *Testimonial) Validate() error {
	switch {
	case t.Quote == "":
		return ErrInvalid{Field: "quote", Reason: "must not be empty"}
	case t.Author == "":
		return ErrInvalid{Field: "author", Reason: "must not be empty"}
	case t.Rating < 0 || t.Rating > 5:
		return ErrInvalid{Field: "rating", Reason: "must be between 0 and 5"}
	}
	return nil
}

// ErrInvalid describes a rejected field.
type ErrInvalid struct {
	Field  string
	Reason string
}

func (e ErrInvalid) Error() string { return e.Field + " " + e.Reason }

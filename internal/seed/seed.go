// Package seed loads testimonials from a YAML document into a store.
package seed

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tinytelemetry/marquee/internal/model"
)

// File is the on-disk seed format:
//
//	testimonials:
//	  - quote: "It just works."
//	    author: Ana
//	    role: CTO
//	    company: Acme
//	    rating: 5
type File struct {
	Testimonials []model.Testimonial `yaml:"testimonials"`
}

// Decode parses and validates a seed document.
func Decode(r io.Reader) (File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return File{}, nil
		}
		return File{}, fmt.Errorf("decode seed: %w", err)
	}
	for i := range f.Testimonials {
		if err := f.Testimonials[i].Validate(); err != nil {
			return File{}, fmt.Errorf("testimonial %d: %w", i, err)
		}
	}
	return f, nil
}

// LoadFile reads and decodes the seed document at path.
func LoadFile(path string) (File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return File{}, err
	}
	defer fh.Close()
	return Decode(fh)
}

// Apply inserts every testimonial in f and returns how many were written.
func Apply(ctx context.Context, w model.TestimonialWriter, f File) (int, error) {
	for i := range f.Testimonials {
		t := f.Testimonials[i]
		if _, err := w.InsertTestimonial(ctx, &t); err != nil {
			return i, fmt.Errorf("insert testimonial %d (%s): %w", i, t.Author, err)
		}
	}
	return len(f.Testimonials), nil
}

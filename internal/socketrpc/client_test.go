package socketrpc_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tinytelemetry/marquee/internal/model"
	"github.com/tinytelemetry/marquee/internal/socketrpc"
)

// mockQuerier is a minimal TestimonialQuerier for roundtrip testing.
type mockQuerier struct{}

var fixture = []model.Testimonial{
	{ID: 1, Quote: "Calm and fast.", Author: "Ana", Rating: 5, Position: 1,
		CreatedAt: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)},
	{ID: 2, Quote: "Saved a week.", Author: "Bo", Company: "Acme", Position: 2},
}

func (m *mockQuerier) ListTestimonials(context.Context) ([]model.Testimonial, error) {
	return fixture, nil
}

func (m *mockQuerier) GetTestimonial(_ context.Context, id int64) (model.Testimonial, error) {
	for _, t := range fixture {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Testimonial{}, model.ErrNotFound
}

func (m *mockQuerier) Count(context.Context) (int, error) { return len(fixture), nil }

func startTestServer(t *testing.T) (string, *socketrpc.Server) {
	t.Helper()
	sockPath := filepath.Join(t.TempDir(), "test.sock")
	srv := socketrpc.NewServer(sockPath, &mockQuerier{}, zerolog.Nop())
	if err := srv.Start(); err != nil {
		t.Fatalf("start server: %v", err)
	}
	return sockPath, srv
}

func TestRoundtrip(t *testing.T) {
	sockPath, srv := startTestServer(t)
	defer srv.Stop()

	client, err := socketrpc.Dial(sockPath)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()
	ctx := context.Background()

	t.Run("ListTestimonials", func(t *testing.T) {
		list, err := client.ListTestimonials(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(list) != 2 || list[1].Company != "Acme" {
			t.Fatalf("unexpected list: %+v", list)
		}
		if !list[0].CreatedAt.Equal(fixture[0].CreatedAt) {
			t.Fatalf("CreatedAt = %v, want %v", list[0].CreatedAt, fixture[0].CreatedAt)
		}
	})

	t.Run("GetTestimonial", func(t *testing.T) {
		got, err := client.GetTestimonial(ctx, 1)
		if err != nil {
			t.Fatal(err)
		}
		if got.Author != "Ana" || got.Rating != 5 {
			t.Fatalf("unexpected testimonial: %+v", got)
		}
	})

	t.Run("GetTestimonialNotFound", func(t *testing.T) {
		_, err := client.GetTestimonial(ctx, 99)
		if !errors.Is(err, model.ErrNotFound) {
			t.Fatalf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("Count", func(t *testing.T) {
		n, err := client.Count(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if n != 2 {
			t.Fatalf("got %d, want 2", n)
		}
	})
}

func TestSecondServerRefusesLiveSocket(t *testing.T) {
	sockPath, srv := startTestServer(t)
	defer srv.Stop()

	other := socketrpc.NewServer(sockPath, &mockQuerier{}, zerolog.Nop())
	if err := other.Start(); err == nil {
		other.Stop()
		t.Fatal("expected error when another server is listening")
	}
}

func TestStopUnblocksIdleClients(t *testing.T) {
	sockPath, srv := startTestServer(t)
	client, err := socketrpc.Dial(sockPath)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()

	done := make(chan struct{})
	go func() {
		srv.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop blocked on an idle connection")
	}
}

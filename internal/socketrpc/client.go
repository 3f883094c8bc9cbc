package socketrpc

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/tinytelemetry/marquee/internal/model"
)

const defaultCallTimeout = 30 * time.Second

// Client implements model.TestimonialQuerier over a Unix domain socket using JSON-RPC 2.0.
type Client struct {
	conn    net.Conn
	mu      sync.Mutex
	nextID  int
	scanner *bufio.Scanner
	encoder *json.Encoder
}

var _ model.TestimonialQuerier = (*Client)(nil)

// Dial connects to the socket RPC server at the given path.
func Dial(socketPath string) (*Client, error) {
	conn, err := net.DialTimeout("unix", socketPath, 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("socketrpc: dial: %w", err)
	}
	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, scannerInitBufSize), scannerMaxTokenSize)
	return &Client{
		conn:    conn,
		scanner: scanner,
		encoder: json.NewEncoder(conn),
	}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// call performs a JSON-RPC call and unmarshals the result into dest. The
// connection deadline follows ctx, or defaultCallTimeout without one.
func (c *Client) call(ctx context.Context, method string, params any, dest any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	id := c.nextID

	paramsData, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("socketrpc: marshal params: %w", err)
	}

	req := Request{
		JSONRPC: "2.0",
		ID:      id,
		Method:  method,
		Params:  paramsData,
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(defaultCallTimeout)
	}
	c.conn.SetDeadline(deadline)
	defer c.conn.SetDeadline(time.Time{})

	if err := c.encoder.Encode(req); err != nil {
		return fmt.Errorf("socketrpc: send: %w", err)
	}

	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return fmt.Errorf("socketrpc: read: %w", err)
		}
		return fmt.Errorf("socketrpc: connection closed")
	}

	var resp Response
	if err := json.Unmarshal(c.scanner.Bytes(), &resp); err != nil {
		return fmt.Errorf("socketrpc: unmarshal response: %w", err)
	}

	if resp.Error != nil {
		if resp.Error.Code == codeNotFound {
			return fmt.Errorf("socketrpc: %s: %w", method, model.ErrNotFound)
		}
		return resp.Error
	}

	if dest != nil {
		if err := json.Unmarshal(resp.Result, dest); err != nil {
			return fmt.Errorf("socketrpc: unmarshal result: %w", err)
		}
	}
	return nil
}

func (c *Client) ListTestimonials(ctx context.Context) ([]model.Testimonial, error) {
	var result []model.Testimonial
	err := c.call(ctx, "ListTestimonials", map[string]any{}, &result)
	return result, err
}

func (c *Client) GetTestimonial(ctx context.Context, id int64) (model.Testimonial, error) {
	var result model.Testimonial
	err := c.call(ctx, "GetTestimonial", map[string]any{"ID": id}, &result)
	return result, err
}

// Count returns the number of testimonials on the server.
func (c *Client) Count(ctx context.Context) (int, error) {
	var result int
	err := c.call(ctx, "TestimonialCount", map[string]any{}, &result)
	return result, err
}

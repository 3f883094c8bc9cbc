package socketrpc

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tinytelemetry/marquee/internal/model"
)

const (
	// scannerInitBufSize is the initial buffer size for the per-connection scanner (1 MB).
	scannerInitBufSize = 1024 * 1024
	// scannerMaxTokenSize is the maximum token size the scanner will accept (10 MB).
	scannerMaxTokenSize = 10 * 1024 * 1024
	// requestTimeout bounds every store call made on behalf of a request.
	requestTimeout = 30 * time.Second
)

// Server exposes a model.TestimonialQuerier over a Unix domain socket using JSON-RPC 2.0.
type Server struct {
	socketPath string
	store      model.TestimonialQuerier
	log        zerolog.Logger
	listener   net.Listener
	wg         sync.WaitGroup
	quit       chan struct{}
}

// NewServer creates a new socket RPC server.
func NewServer(socketPath string, store model.TestimonialQuerier, log zerolog.Logger) *Server {
	return &Server{
		socketPath: socketPath,
		store:      store,
		log:        log,
		quit:       make(chan struct{}),
	}
}

// Start begins listening on the Unix socket and accepting connections.
func (s *Server) Start() error {
	if err := os.MkdirAll(filepath.Dir(s.socketPath), 0755); err != nil {
		return fmt.Errorf("socketrpc: mkdir: %w", err)
	}

	// Remove stale socket if it exists.
	if _, err := os.Stat(s.socketPath); err == nil {
		conn, dialErr := net.DialTimeout("unix", s.socketPath, 500*time.Millisecond)
		if dialErr != nil {
			os.Remove(s.socketPath)
		} else {
			conn.Close()
			return fmt.Errorf("socketrpc: another server is already listening on %s", s.socketPath)
		}
	}

	ln, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("socketrpc: listen: %w", err)
	}
	s.listener = ln

	s.wg.Add(1)
	go s.acceptLoop()

	s.log.Info().Str("socket", s.socketPath).Msg("socketrpc: listening")
	return nil
}

// Stop closes the listener, waits for connections to drain, and removes the socket file.
func (s *Server) Stop() {
	close(s.quit)
	if s.listener != nil {
		s.listener.Close()
	}
	s.wg.Wait()
	os.Remove(s.socketPath)
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.quit:
				return
			default:
				// Transient errors (e.g. fd limit) must not kill the loop.
				s.log.Warn().Err(err).Msg("socketrpc: accept error")
				continue
			}
		}
		s.wg.Add(1)
		go s.handleConn(conn)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	// Unblock the scanner when the server stops.
	connDone := make(chan struct{})
	defer close(connDone)
	go func() {
		select {
		case <-s.quit:
			conn.Close()
		case <-connDone:
		}
	}()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, scannerInitBufSize), scannerMaxTokenSize)
	encoder := json.NewEncoder(conn)

	for scanner.Scan() {
		select {
		case <-s.quit:
			return
		default:
		}

		var req Request
		if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
			resp := Response{JSONRPC: "2.0", ID: 0, Error: &RPCError{Code: codeParseError, Message: "parse error"}}
			encoder.Encode(resp)
			continue
		}

		resp := s.dispatch(req)
		if err := encoder.Encode(resp); err != nil {
			return
		}
	}
}

func (s *Server) dispatch(req Request) Response {
	resp := Response{JSONRPC: "2.0", ID: req.ID}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	marshalResult := func(v any, err error) Response {
		if err != nil {
			code := codeApplication
			if errors.Is(err, model.ErrNotFound) {
				code = codeNotFound
			}
			resp.Error = &RPCError{Code: code, Message: err.Error()}
			return resp
		}
		data, merr := json.Marshal(v)
		if merr != nil {
			resp.Error = &RPCError{Code: codeInternal, Message: merr.Error()}
			return resp
		}
		resp.Result = data
		return resp
	}

	invalidParams := func(err error) Response {
		resp.Error = &RPCError{Code: codeInvalidParams, Message: fmt.Sprintf("invalid params: %v", err)}
		return resp
	}

	switch req.Method {
	case "ListTestimonials":
		return marshalResult(s.store.ListTestimonials(ctx))

	case "GetTestimonial":
		var p struct{ ID int64 }
		if err := json.Unmarshal(req.Params, &p); err != nil {
			return invalidParams(err)
		}
		return marshalResult(s.store.GetTestimonial(ctx, p.ID))

	case "TestimonialCount":
		return marshalResult(s.store.Count(ctx))

	default:
		resp.Error = &RPCError{Code: codeMethodNotFound, Message: fmt.Sprintf("method not found: %s", req.Method)}
		return resp
	}
}

package middleware

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"sync"
	"time"
)

// StoredResponse is a captured response replayed on duplicate requests
// carrying the same Idempotency-Key.
type StoredResponse struct {
	StatusCode  int       `json:"statusCode"`
	ContentType string    `json:"contentType"`
	Body        []byte    `json:"body"`
	CreatedAt   time.Time `json:"createdAt"`
}

// IdempotencyStore persists responses keyed by Idempotency-Key.
type IdempotencyStore interface {
	Get(ctx context.Context, key string) (StoredResponse, bool, error)
	Put(ctx context.Context, key string, resp StoredResponse) error
}

// MemoryIdempotencyStore keeps responses in-process. Entries are not
// evicted; the API process is expected to be short-lived or fronted by
// the Redis store in multi-instance deploys.
type MemoryIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string]StoredResponse
}

func NewMemoryIdempotencyStore() *MemoryIdempotencyStore {
	return &MemoryIdempotencyStore{data: make(map[string]StoredResponse)}
}

func (s *MemoryIdempotencyStore) Get(_ context.Context, key string) (StoredResponse, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resp, ok := s.data[key]
	return resp, ok, nil
}

func (s *MemoryIdempotencyStore) Put(_ context.Context, key string, resp StoredResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = resp
	return nil
}

// IdempotencyMiddleware replays a previously stored response when a request
// arrives with an Idempotency-Key already seen. Only mutating methods are
// considered; GETs pass straight through.
type IdempotencyMiddleware struct {
	Store  IdempotencyStore
	Logger *log.Logger
	Next   http.Handler
}

func (m IdempotencyMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if m.Next == nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	key := r.Header.Get("Idempotency-Key")
	if key == "" || (r.Method != http.MethodPost && r.Method != http.MethodPut && r.Method != http.MethodDelete) {
		m.Next.ServeHTTP(w, r)
		return
	}

	if m.Store != nil {
		stored, ok, err := m.Store.Get(r.Context(), key)
		if err != nil {
			if m.Logger != nil {
				m.Logger.Printf("idempotency lookup failed key=%s err=%v", key, err)
			}
		} else if ok {
			if stored.ContentType != "" {
				w.Header().Set("Content-Type", stored.ContentType)
			}
			w.Header().Set("Idempotency-Replayed", "true")
			w.WriteHeader(stored.StatusCode)
			_, _ = w.Write(stored.Body)
			return
		}
	}

	cw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
	m.Next.ServeHTTP(cw, r)

	if m.Store != nil && cw.status < http.StatusInternalServerError {
		resp := StoredResponse{
			StatusCode:  cw.status,
			ContentType: cw.Header().Get("Content-Type"),
			Body:        append([]byte(nil), cw.buf.Bytes()...),
			CreatedAt:   time.Now().UTC(),
		}
		if err := m.Store.Put(r.Context(), key, resp); err != nil && m.Logger != nil {
			m.Logger.Printf("idempotency store failed key=%s err=%v", key, err)
		}
	}
}

// captureWriter tees the response body so it can be stored for replay.
type captureWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	buf         bytes.Buffer
}

func (c *captureWriter) WriteHeader(status int) {
	if c.wroteHeader {
		return
	}
	c.wroteHeader = true
	c.status = status
	c.ResponseWriter.WriteHeader(status)
}

func (c *captureWriter) Write(p []byte) (int, error) {
	if !c.wroteHeader {
		c.WriteHeader(http.StatusOK)
	}
	c.buf.Write(p)
	return c.ResponseWriter.Write(p)
}

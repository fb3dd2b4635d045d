// Package mailtmtest provides an in-process fake of the mail.tm API for
// tests.
package mailtmtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// Request records a single call received by the fake.
type Request struct {
	Method        string
	Path          string
	Authorization string
	Body          map[string]string
}

// Server is a scripted mail.tm fake. Zero-value fields produce the
// happy path: one domain, accounts and tokens always succeed.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	requests []Request

	Domains []string
	Token   string

	// Status overrides, keyed by "METHOD /path". A non-zero status makes
	// the endpoint fail with that code.
	Fail map[string]int

	// Messages is the hydra:member payload of GET /messages.
	Messages []map[string]any

	// Details maps message ID to the GET /messages/{id} payload.
	Details map[string]map[string]any

	// Sources maps message ID to raw RFC 5322 text.
	Sources map[string]string
}

// New starts a fake server that is closed when the test ends.
func New(t *testing.T) *Server {
	t.Helper()

	s := &Server{
		Domains: []string{"example.com"},
		Token:   "abc",
		Fail:    make(map[string]int),
		Details: make(map[string]map[string]any),
		Sources: make(map[string]string),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Count returns how many requests matched method and path.
func (s *Server) Count(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// SetMessages replaces the message list under lock.
func (s *Server) SetMessages(msgs []map[string]any) {
	s.mu.Lock()
	s.Messages = msgs
	s.mu.Unlock()
}

// SetFail makes "METHOD /path" fail with status (0 clears it).
func (s *Server) SetFail(route string, status int) {
	s.mu.Lock()
	if status == 0 {
		delete(s.Fail, route)
	} else {
		s.Fail[route] = status
	}
	s.mu.Unlock()
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	req := Request{
		Method:        r.Method,
		Path:          r.URL.Path,
		Authorization: r.Header.Get("Authorization"),
	}
	if r.Body != nil && r.Method == http.MethodPost {
		_ = json.NewDecoder(r.Body).Decode(&req.Body)
	}

	s.mu.Lock()
	s.requests = append(s.requests, req)
	status := s.Fail[r.Method+" "+r.URL.Path]
	s.mu.Unlock()

	if status != 0 {
		writeJSON(w, status, map[string]any{"hydra:description": "scripted failure"})
		return
	}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/domains":
		members := make([]map[string]any, 0, len(s.Domains))
		for i, d := range s.Domains {
			members = append(members, map[string]any{
				"id": string(rune('a' + i)), "domain": d, "isActive": true,
			})
		}
		writeJSON(w, http.StatusOK, map[string]any{"hydra:member": members})

	case r.Method == http.MethodPost && r.URL.Path == "/accounts":
		writeJSON(w, http.StatusCreated, map[string]any{
			"id": "acct-1", "address": req.Body["address"],
		})

	case r.Method == http.MethodPost && r.URL.Path == "/token":
		writeJSON(w, http.StatusOK, map[string]any{"id": "acct-1", "token": s.Token})

	case !s.authorized(req):
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "JWT Token not found"})

	case r.Method == http.MethodGet && r.URL.Path == "/me":
		writeJSON(w, http.StatusOK, map[string]any{"id": "acct-1", "address": "me@example.com"})

	case r.Method == http.MethodGet && r.URL.Path == "/messages":
		s.mu.Lock()
		msgs := s.Messages
		s.mu.Unlock()
		if msgs == nil {
			msgs = []map[string]any{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"hydra:member": msgs})

	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/messages/"):
		s.mu.Lock()
		d, ok := s.Details[strings.TrimPrefix(r.URL.Path, "/messages/")]
		s.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]any{"detail": "Not Found"})
			return
		}
		writeJSON(w, http.StatusOK, d)

	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/sources/"):
		id := strings.TrimPrefix(r.URL.Path, "/sources/")
		s.mu.Lock()
		raw, ok := s.Sources[id]
		s.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]any{"detail": "Not Found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"id": id, "data": raw})

	default:
		http.NotFound(w, r)
	}
}

func (s *Server) authorized(req Request) bool {
	return req.Authorization == "Bearer "+s.Token
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

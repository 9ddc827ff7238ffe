// Package apitest provides an in-process fake of the VesselFinder API for
// tests.
package apitest

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/justinas/alice"
)

// Resources served by the fake.
var Resources = []string{
	"status",
	"vessels",
	"vesselslist",
	"livedata",
	"portcalls",
	"expectedarrivals",
	"masterdata",
	"distance",
	"listmanager",
}

// Request is a request received by the fake.
type Request struct {
	Method    string
	Resource  string
	Params    url.Values
	Header    http.Header
	RequestID string
}

// Response is a canned answer.
type Response struct {
	Status int
	Body   string
	Header map[string]string
}

// Server is a fake VesselFinder API.
type Server struct {
	*httptest.Server

	APIKey string

	mu        sync.Mutex
	requests  []Request
	responses map[string]Response
}

// NewServer starts a fake that accepts apiKey and closes it when the test
// ends. Unknown keys are rejected the way the real API does: with an
// X-API-Error header, or a 409 when errormode=409 is set.
func NewServer(t testing.TB, apiKey string) *Server {
	t.Helper()

	s := &Server{
		APIKey:    apiKey,
		responses: make(map[string]Response),
	}

	router := mux.NewRouter()
	chain := alice.New(s.record, s.authenticate)
	router.Handle("/{resource}", chain.ThenFunc(s.serve)).
		Methods(http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete)

	s.Server = httptest.NewServer(router)
	t.Cleanup(s.Close)

	return s
}

// Handle sets the response for method on resource.
func (s *Server) Handle(method, resource string, resp Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[method+" "+resource] = resp
}

// Requests returns the requests received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// LastRequest returns the most recent request, or false if there was none.
func (s *Server) LastRequest() (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}, false
	}
	return s.requests[len(s.requests)-1], true
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:    r.Method,
			Resource:  mux.Vars(r)["resource"],
			Params:    cloneValues(r.Form),
			Header:    r.Header.Clone(),
			RequestID: r.Header.Get("X-Request-ID"),
		})
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Form.Get("userkey") == s.APIKey {
			next.ServeHTTP(w, r)
			return
		}

		if r.Form.Get("errormode") == "409" {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte("Invalid userkey"))
			return
		}
		w.Header().Set("X-API-Error", "Invalid userkey")
		w.WriteHeader(http.StatusOK)
	})
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	resource := mux.Vars(r)["resource"]
	if !known(resource) {
		http.NotFound(w, r)
		return
	}

	s.mu.Lock()
	resp, ok := s.responses[r.Method+" "+resource]
	s.mu.Unlock()
	if !ok {
		resp = Response{Status: http.StatusOK, Body: "{}"}
	}

	for k, v := range resp.Header {
		w.Header().Set(k, v)
	}
	if strings.HasPrefix(strings.TrimSpace(resp.Body), "<") {
		w.Header().Set("Content-Type", "application/xml")
	} else if resp.Body != "" {
		w.Header().Set("Content-Type", "application/json")
	}

	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	w.Write([]byte(resp.Body))
}

func known(resource string) bool {
	for _, r := range Resources {
		if r == resource {
			return true
		}
	}
	return false
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vs := range v {
		out[k] = append([]string(nil), vs...)
	}
	return out
}

package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/xmidt-org/httpaux/roundtrip"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vesselfinder/client-go/internal/apierrors"
	"github.com/vesselfinder/client-go/internal/apitest"
)

const testKey = "test-key"

func newTestClient(t *testing.T, opts ...Option) (*Client, *apitest.Server) {
	t.Helper()

	server := apitest.NewServer(t, testKey)
	client, err := New(testKey, append([]Option{WithBaseURL(server.URL)}, opts...)...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return client, server
}

// failingTransport fails the test if a request is ever sent.
func failingTransport(t *testing.T) *http.Client {
	return &http.Client{
		Transport: roundtrip.Func(func(req *http.Request) (*http.Response, error) {
			t.Errorf("unexpected request to %s", req.URL.Path)
			return nil, errors.New("unexpected request")
		}),
	}
}

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New("")
	if !errors.Is(err, apierrors.ErrMissingAPIKey) {
		t.Errorf("New() error = %v, want ErrMissingAPIKey", err)
	}
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New(testKey, WithBaseURL(""))
	if err == nil {
		t.Error("expected error for empty base URL")
	}
}

func TestNew_DefaultValues(t *testing.T) {
	client, err := New(testKey)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if client.BaseURL() != DefaultBaseURL {
		t.Errorf("BaseURL() = %s, want %s", client.BaseURL(), DefaultBaseURL)
	}
	if client.ErrorMode() {
		t.Error("ErrorMode() = true, want false")
	}
	if client.httpClient == nil {
		t.Error("httpClient is nil")
	}
	if client.httpClient == http.DefaultClient {
		t.Error("http.DefaultClient must not be modified")
	}
}

func TestNew_WithOptions(t *testing.T) {
	custom := &http.Client{}
	client, err := New(testKey,
		WithBaseURL("https://example.com/"),
		WithErrorMode(true),
		WithHTTPClient(custom),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if client.BaseURL() != "https://example.com" {
		t.Errorf("BaseURL() = %s, want https://example.com", client.BaseURL())
	}
	if !client.ErrorMode() {
		t.Error("ErrorMode() = false, want true")
	}
	if custom.Transport != nil {
		t.Error("caller's http.Client was modified")
	}
}

func TestClient_LogsRequestsWithoutKey(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	client, _ := newTestClient(t, WithLogger(zap.New(core)))

	if _, err := client.Status(context.Background(), Params{}); err != nil {
		t.Fatalf("Status() error = %v", err)
	}

	entries := logs.FilterMessage("vesselfinder request").All()
	if len(entries) != 1 {
		t.Fatalf("got %d log entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["path"] != "/status" {
		t.Errorf("path = %v, want /status", fields["path"])
	}
	if fields["status"] != int64(http.StatusOK) {
		t.Errorf("status = %v, want 200", fields["status"])
	}
	for k, v := range fields {
		if s, ok := v.(string); ok && strings.Contains(s, testKey) {
			t.Errorf("field %s leaks the API key: %q", k, s)
		}
	}
}

func TestClient_LogsTransportFailure(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	hc := &http.Client{
		Transport: roundtrip.Func(func(*http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		}),
	}
	client, err := New(testKey, WithHTTPClient(hc), WithLogger(zap.New(core)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = client.Status(context.Background(), Params{})

	var netErr *apierrors.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %T: %v", err, err)
	}
	if netErr.URL != DefaultBaseURL+"/status" {
		t.Errorf("URL = %s", netErr.URL)
	}
	if logs.FilterMessage("vesselfinder request failed").Len() != 1 {
		t.Error("transport failure was not logged")
	}
}

func TestClient_UsesCustomTransport(t *testing.T) {
	var called bool
	hc := &http.Client{
		Transport: roundtrip.Func(func(req *http.Request) (*http.Response, error) {
			called = true
			return &http.Response{
				StatusCode: http.StatusOK,
				Header:     http.Header{"X-Api-Credits": {"7"}},
				Body:       io.NopCloser(bytes.NewBufferString(`{"ok":true}`)),
				Request:    req,
			}, nil
		}),
	}
	client, err := New(testKey, WithHTTPClient(hc))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	res, err := client.Status(context.Background(), Params{})
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if !called {
		t.Error("custom transport was not used")
	}
	if res.Info["credits"] != "7" {
		t.Errorf("Info[credits] = %q, want 7", res.Info["credits"])
	}
}

//go:build integration

package integration

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	vesselfinder "github.com/vesselfinder/client-go"
)

var (
	apiKey  string
	baseURL string
)

func TestMain(m *testing.M) {
	// Load .env file if it exists (won't error if missing)
	if err := godotenv.Load("../.env"); err != nil {
		os.Stderr.WriteString("Note: .env file not found at project root\n")
	}

	apiKey = os.Getenv("VESSELFINDER_KEY")
	baseURL = os.Getenv("VESSELFINDER_URL")

	if apiKey == "" {
		os.Stderr.WriteString("Skipping integration tests: VESSELFINDER_KEY not set\n")
		os.Exit(0)
	}

	os.Stderr.WriteString("Running integration tests...\n")
	os.Exit(m.Run())
}

func newClient(t *testing.T, opts ...vesselfinder.Option) *vesselfinder.Client {
	t.Helper()

	if baseURL != "" {
		opts = append(opts, vesselfinder.WithBaseURL(baseURL))
	}

	client, err := vesselfinder.New(apiKey, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return client
}

func newContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestIntegration_Status(t *testing.T) {
	client := newClient(t)

	resp, err := client.Status(newContext(t))
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("StatusCode = %d, want 200", resp.StatusCode)
	}

	info, err := client.LastInfo()
	if err != nil {
		t.Fatalf("LastInfo() error = %v", err)
	}
	t.Logf("Status: %v, info: %v", resp.Body, info)
}

func TestIntegration_Vessels(t *testing.T) {
	client := newClient(t)

	resp, err := client.Vessels(newContext(t), []int{9228801, 9441271}, []int{227441980})
	if err != nil {
		t.Fatalf("Vessels() error = %v", err)
	}

	var vessels []map[string]any
	if err := resp.Decode(&vessels); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	t.Logf("Got %d vessel(s)", len(vessels))
}

func TestIntegration_VesselsXML(t *testing.T) {
	client := newClient(t)

	resp, err := client.Vessels(newContext(t), []int{9228801}, nil, vesselfinder.WithFormat(vesselfinder.FormatXML))
	if err != nil {
		t.Fatalf("Vessels() error = %v", err)
	}
	if _, ok := resp.Body.(string); !ok {
		t.Errorf("Body = %T, want raw XML string", resp.Body)
	}
}

func TestIntegration_PortCalls(t *testing.T) {
	client := newClient(t)

	_, err := client.PortCalls(newContext(t), 720,
		vesselfinder.WithLocode("BGVAR"),
		vesselfinder.WithExtraData(vesselfinder.ExtraVoyage))
	if err != nil {
		t.Fatalf("PortCalls() error = %v", err)
	}
}

func TestIntegration_Distance(t *testing.T) {
	client := newClient(t)

	_, err := client.Distance(newContext(t), "1.24703,51.94967", "28.68018,40.96205")
	if err != nil {
		t.Fatalf("Distance() error = %v", err)
	}
}

func TestIntegration_InvalidKey(t *testing.T) {
	opts := []vesselfinder.Option{vesselfinder.WithErrorMode(true)}
	if baseURL != "" {
		opts = append(opts, vesselfinder.WithBaseURL(baseURL))
	}
	client, err := vesselfinder.New("invalid-key", opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = client.Status(newContext(t))
	if !errors.Is(err, vesselfinder.ErrRequestError) {
		t.Errorf("Status() error = %v, want ErrRequestError", err)
	}
}

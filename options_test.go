package vesselfinder

import (
	"errors"
	"net/http"
	"reflect"
	"testing"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/vesselfinder/client-go/internal/api"
)

func TestClientOptions(t *testing.T) {
	hc := &http.Client{Timeout: 5 * time.Second}
	logger := zap.NewExample()

	cfg := &clientConfig{}
	for _, opt := range []Option{
		WithBaseURL("https://example.com"),
		WithHTTPClient(hc),
		WithErrorMode(true),
		WithSaveLastInfo(false),
		WithLogger(logger),
	} {
		opt(cfg)
	}

	if cfg.baseURL != "https://example.com" {
		t.Errorf("baseURL = %s", cfg.baseURL)
	}
	if cfg.httpClient != hc {
		t.Error("httpClient not set")
	}
	if !cfg.errorMode {
		t.Error("errorMode not set")
	}
	if cfg.saveLastInfo {
		t.Error("saveLastInfo should be false")
	}
	if cfg.logger != logger {
		t.Error("logger not set")
	}
}

func TestCallOptions(t *testing.T) {
	tests := []struct {
		name string
		opts []CallOption
		want api.Params
	}{
		{"format", []CallOption{WithFormat(FormatXML)}, api.Params{"format": "xml"}},
		{"interval", []CallOption{WithInterval(60)}, api.Params{"interval": 60}},
		{"extradata", []CallOption{WithExtraData(ExtraAIS, ExtraVoyage)}, api.Params{"extradata": "ais,voyage"}},
		{"sat", []CallOption{WithSat(true)}, api.Params{"sat": true}},
		{"limit", []CallOption{WithLimit(5)}, api.Params{"limit": 5}},
		{"event", []CallOption{WithEvent(EventDeparture)}, api.Params{"event": "DEPARTURE"}},
		{"dates", []CallOption{WithFromDate("2024-01-01 00:00:00"), WithToDate("2024-01-02 00:00:00")},
			api.Params{"fromdate": "2024-01-01 00:00:00", "todate": "2024-01-02 00:00:00"}},
		{"locode", []CallOption{WithLocode("BGVAR")}, api.Params{"locode": "BGVAR"}},
		{"imo list", []CallOption{WithIMO(9228801, 9441271)}, api.Params{"imo": []int{9228801, 9441271}}},
		{"empty imo omitted", []CallOption{WithIMO()}, api.Params{}},
		{"mmsi", []CallOption{WithMMSI(227441980)}, api.Params{"mmsi": []int{227441980}}},
		{"distance flags", []CallOption{WithECA(true), WithEPSG3857(true), WithGateways("panama")},
			api.Params{"ECA": true, "EPSG3857": true, "gateways": "panama"}},
		{"raw param", []CallOption{WithParam("custom", "x")}, api.Params{"custom": "x"}},
		{"nil removes", []CallOption{WithLimit(5), WithParam("limit", nil)}, api.Params{}},
		{"later wins", []CallOption{WithInterval(60), WithInterval(120)}, api.Params{"interval": 120}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildParams(tt.opts)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("buildParams() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 7, 8, 9, 0, time.UTC)
	if got := FormatDate(ts); got != "2024-03-05 07:08:09" {
		t.Errorf("FormatDate() = %q", got)
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(WithIMO(9175717), WithFromDate("2024-01-01 00:00:00")); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}

	err := Validate(WithIMO(12), WithMMSI(1), WithFromDate("2024-13-01 00:00:00"))
	errs := multierr.Errors(err)
	if len(errs) != 3 {
		t.Fatalf("Validate() returned %d errors, want 3: %v", len(errs), err)
	}
	if !errors.Is(errs[0], ErrInvalidArguments) {
		t.Errorf("errs[0] = %v, want ErrInvalidArguments", errs[0])
	}
}

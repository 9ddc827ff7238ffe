package vesselfinder

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vesselfinder/client-go/internal/api"
)

// Format selects the response body format.
type Format string

const (
	// FormatJSON asks for a JSON body, which is decoded into Response.Body.
	FormatJSON Format = "json"
	// FormatXML asks for an XML body, which is returned as raw text.
	FormatXML Format = "xml"
)

// ExtraData selects additional blocks in vessel and port call responses.
type ExtraData string

const (
	ExtraAIS    ExtraData = "ais"
	ExtraVoyage ExtraData = "voyage"
	ExtraMaster ExtraData = "master"
)

// PortCallEvent filters port calls by event type.
type PortCallEvent string

const (
	EventArrival   PortCallEvent = "ARRIVAL"
	EventDeparture PortCallEvent = "DEPARTURE"
)

// DateLayout is the layout of date parameters, see FormatDate.
const DateLayout = api.DateLayout

const defaultBaseURL = api.DefaultBaseURL

// clientConfig holds configuration for the client.
type clientConfig struct {
	baseURL      string
	httpClient   *http.Client
	errorMode    bool
	saveLastInfo bool
	logger       *zap.Logger
}

// callConfig holds the parameters of a single call.
type callConfig struct {
	params api.Params
}

// Option configures the client.
type Option func(*clientConfig)

// CallOption sets a request parameter.
type CallOption func(*callConfig)

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client. The client is copied; its
// transport is wrapped for logging but never modified in place.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithErrorMode makes the server report errors with HTTP 409 instead of
// embedding them in the payload.
// Default: false
func WithErrorMode(enabled bool) Option {
	return func(c *clientConfig) {
		c.errorMode = enabled
	}
}

// WithSaveLastInfo controls whether the client keeps the metadata of the
// most recent response for LastInfo.
// Default: true
func WithSaveLastInfo(enabled bool) Option {
	return func(c *clientConfig) {
		c.saveLastInfo = enabled
	}
}

// WithLogger sets the logger. Requests are logged at debug level.
// Default: no-op logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithFormat sets the response format.
func WithFormat(f Format) CallOption {
	return WithParam(api.ParamFormat, string(f))
}

// WithInterval limits results to the last interval minutes.
func WithInterval(minutes int) CallOption {
	return WithParam(api.ParamInterval, minutes)
}

// WithExtraData requests additional data blocks.
func WithExtraData(types ...ExtraData) CallOption {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return WithParam(api.ParamExtraData, strings.Join(parts, ","))
}

// WithSat includes satellite AIS positions.
func WithSat(enabled bool) CallOption {
	return WithParam(api.ParamSat, enabled)
}

// WithLimit caps the number of returned records.
func WithLimit(n int) CallOption {
	return WithParam(api.ParamLimit, n)
}

// WithEvent filters port calls by event.
func WithEvent(e PortCallEvent) CallOption {
	return WithParam(api.ParamEvent, string(e))
}

// WithFromDate sets the start of the timespan, in DateLayout.
func WithFromDate(date string) CallOption {
	return WithParam(api.ParamFromDate, date)
}

// WithToDate sets the end of the timespan, in DateLayout.
func WithToDate(date string) CallOption {
	return WithParam(api.ParamToDate, date)
}

// WithLocode selects a port by UN/LOCODE.
func WithLocode(locode string) CallOption {
	return WithParam(api.ParamLocode, locode)
}

// WithIMO selects vessels by IMO number.
func WithIMO(imo ...int) CallOption {
	return withIdentifiers(api.ParamIMO, imo)
}

// WithMMSI selects vessels by MMSI.
func WithMMSI(mmsi ...int) CallOption {
	return withIdentifiers(api.ParamMMSI, mmsi)
}

// WithGateways sets the gateways a distance route may pass.
func WithGateways(gateways string) CallOption {
	return WithParam(api.ParamGateways, gateways)
}

// WithECA makes distance routes avoid emission control areas.
func WithECA(enabled bool) CallOption {
	return WithParam(api.ParamECA, enabled)
}

// WithEPSG3857 returns route coordinates in the EPSG:3857 projection.
func WithEPSG3857(enabled bool) CallOption {
	return WithParam(api.ParamEPSG3857, enabled)
}

// WithParam sets an arbitrary parameter. A nil value removes it.
func WithParam(key string, value any) CallOption {
	return func(c *callConfig) {
		if value == nil {
			delete(c.params, key)
			return
		}
		c.params[key] = value
	}
}

// FormatDate formats t for WithFromDate and WithToDate.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func withIdentifiers(key string, ids []int) CallOption {
	return func(c *callConfig) {
		if len(ids) == 0 {
			delete(c.params, key)
			return
		}
		c.params[key] = ids
	}
}

func buildParams(opts []CallOption) api.Params {
	cfg := &callConfig{params: make(api.Params)}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg.params
}

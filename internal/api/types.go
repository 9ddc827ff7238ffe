package api

// Resource path segments.
const (
	ResourceStatus           = "status"
	ResourceVessels          = "vessels"
	ResourceVesselsList      = "vesselslist"
	ResourceLiveData         = "livedata"
	ResourcePortCalls        = "portcalls"
	ResourceExpectedArrivals = "expectedarrivals"
	ResourceMasterData       = "masterdata"
	ResourceDistance         = "distance"
	ResourceListManager      = "listmanager"
)

// Header names used by the client.
const (
	HeaderRequestID = "X-Request-ID"
	// HeaderInfoMarker marks response headers that carry metadata.
	HeaderInfoMarker = "X-API"
)

// Info holds response metadata taken from X-API-* headers, keyed by the
// lower-cased header name without its prefix and with "-" replaced by "_".
// For example X-API-Credits-Left becomes "credits_left".
type Info map[string]string

// Result is the outcome of a successful dispatch.
type Result struct {
	StatusCode int
	// Body is the decoded JSON value, the raw text for XML responses, or
	// map[string]any{"success": msg} when the response body was empty.
	Body      any
	Raw       string
	Info      Info
	RequestID string
}

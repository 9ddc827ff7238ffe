package vesselfinder

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/vesselfinder/client-go/internal/api"
	"github.com/vesselfinder/client-go/internal/apierrors"
)

// Info holds the metadata the API returns in X-API-* headers, such as the
// remaining credits. Keys are lower-cased without the prefix:
// X-API-Credits becomes "credits".
type Info = api.Info

// Response is the result of a successful call.
type Response struct {
	StatusCode int
	// Body is the decoded JSON value. For FormatXML it is the raw text, and
	// for empty responses it is map[string]any{"success": msg}.
	Body any
	// Raw is the undecoded response body.
	Raw string
	// Info is the metadata of this response.
	Info Info
	// RequestID is the X-Request-ID sent with the request.
	RequestID string
}

// Decode unmarshals the raw JSON body into v.
func (r *Response) Decode(v any) error {
	if r.Raw == "" {
		return fmt.Errorf("empty response body")
	}
	if err := json.Unmarshal([]byte(r.Raw), v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Success returns the message of an empty-body response.
func (r *Response) Success() (string, bool) {
	m, ok := r.Body.(map[string]any)
	if !ok || len(m) != 1 {
		return "", false
	}
	msg, ok := m["success"].(string)
	return msg, ok
}

// Client is the VesselFinder API client. It is safe for concurrent use;
// LastInfo reflects whichever call finished last.
type Client struct {
	apiClient    *api.Client
	logger       *zap.Logger
	saveLastInfo bool

	mu       sync.Mutex
	lastInfo Info
}

// New creates a new VesselFinder client with the given API key.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	cfg := &clientConfig{
		baseURL:      defaultBaseURL,
		saveLastInfo: true,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	apiOpts := []api.Option{
		api.WithBaseURL(cfg.baseURL),
		api.WithErrorMode(cfg.errorMode),
		api.WithLogger(cfg.logger),
	}
	if cfg.httpClient != nil {
		apiOpts = append(apiOpts, api.WithHTTPClient(cfg.httpClient))
	}

	apiClient, err := api.New(apiKey, apiOpts...)
	if err != nil {
		return nil, err
	}

	return &Client{
		apiClient:    apiClient,
		logger:       cfg.logger,
		saveLastInfo: cfg.saveLastInfo,
		lastInfo:     Info{},
	}, nil
}

// LastInfo returns the metadata of the most recent response. It fails
// with a general error matching ErrLastInfoDisabled when the client was
// created with WithSaveLastInfo(false).
func (c *Client) LastInfo() (Info, error) {
	if !c.saveLastInfo {
		return nil, apierrors.General("", ErrLastInfoDisabled)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(Info, len(c.lastInfo))
	for k, v := range c.lastInfo {
		out[k] = v
	}
	return out, nil
}

type endpoint func(context.Context, api.Params) (*api.Result, error)

func (c *Client) call(ctx context.Context, name string, fn endpoint, params api.Params) (*Response, error) {
	result, err := fn(ctx, params)
	if result != nil && c.saveLastInfo {
		c.mu.Lock()
		c.lastInfo = result.Info
		c.mu.Unlock()
	}
	if err != nil {
		c.logger.Debug("vesselfinder call failed", zap.String("call", name), zap.Error(err))
		return nil, err
	}

	return &Response{
		StatusCode: result.StatusCode,
		Body:       result.Body,
		Raw:        result.Raw,
		Info:       result.Info,
		RequestID:  result.RequestID,
	}, nil
}

// Status returns the account status.
func (c *Client) Status(ctx context.Context, opts ...CallOption) (*Response, error) {
	return c.call(ctx, "status", c.apiClient.Status, buildParams(opts))
}

// Vessels returns the latest AIS positions of the vessels identified by
// imo and mmsi. Either slice may be empty.
func (c *Client) Vessels(ctx context.Context, imo, mmsi []int, opts ...CallOption) (*Response, error) {
	opts = append([]CallOption{WithIMO(imo...), WithMMSI(mmsi...)}, opts...)
	return c.call(ctx, "vessels", c.apiClient.Vessels, buildParams(opts))
}

// VesselsList returns the positions of all vessels in the list manager.
func (c *Client) VesselsList(ctx context.Context, opts ...CallOption) (*Response, error) {
	return c.call(ctx, "vesselslist", c.apiClient.VesselsList, buildParams(opts))
}

// LiveData returns the live data feed of the account.
func (c *Client) LiveData(ctx context.Context, opts ...CallOption) (*Response, error) {
	return c.call(ctx, "livedata", c.apiClient.LiveData, buildParams(opts))
}

// PortCalls returns the port calls of the last interval minutes. Select
// vessels with WithIMO and WithMMSI, or a port with WithLocode; combining
// all three is rejected.
func (c *Client) PortCalls(ctx context.Context, interval int, opts ...CallOption) (*Response, error) {
	opts = append([]CallOption{WithInterval(interval)}, opts...)
	return c.call(ctx, "portcalls", c.apiClient.PortCalls, buildParams(opts))
}

// ExpectedArrivals returns the vessels expected at the port locode. A
// timespan is required: WithInterval, WithFromDate or WithToDate.
func (c *Client) ExpectedArrivals(ctx context.Context, locode string, opts ...CallOption) (*Response, error) {
	opts = append([]CallOption{WithLocode(locode)}, opts...)
	return c.call(ctx, "expectedarrivals", c.apiClient.ExpectedArrivals, buildParams(opts))
}

// MasterData returns the particulars of the given vessels.
func (c *Client) MasterData(ctx context.Context, imo []int, opts ...CallOption) (*Response, error) {
	opts = append([]CallOption{WithIMO(imo...)}, opts...)
	return c.call(ctx, "masterdata", c.apiClient.MasterData, buildParams(opts))
}

// Distance returns the sea route between two "lat,lon" points.
func (c *Client) Distance(ctx context.Context, from, to string, opts ...CallOption) (*Response, error) {
	opts = append([]CallOption{
		WithParam(api.ParamFrom, from),
		WithParam(api.ParamTo, to),
	}, opts...)
	return c.call(ctx, "distance", c.apiClient.Distance, buildParams(opts))
}

// GetListManager returns the vessels saved in the list manager.
func (c *Client) GetListManager(ctx context.Context, opts ...CallOption) (*Response, error) {
	return c.call(ctx, "listmanager", c.apiClient.GetListManager, buildParams(opts))
}

// ListManagerAdd adds vessels to the list manager. At least one of imo
// and mmsi must be non-empty.
func (c *Client) ListManagerAdd(ctx context.Context, imo, mmsi []int, opts ...CallOption) (*Response, error) {
	opts = append([]CallOption{WithIMO(imo...), WithMMSI(mmsi...)}, opts...)
	return c.call(ctx, "listmanager add", c.apiClient.ListManagerAdd, buildParams(opts))
}

// ListManagerReplace replaces the whole list manager with the given
// vessels.
func (c *Client) ListManagerReplace(ctx context.Context, imo, mmsi []int, opts ...CallOption) (*Response, error) {
	opts = append([]CallOption{WithIMO(imo...), WithMMSI(mmsi...)}, opts...)
	return c.call(ctx, "listmanager replace", c.apiClient.ListManagerReplace, buildParams(opts))
}

// ListManagerDelete removes vessels from the list manager.
func (c *Client) ListManagerDelete(ctx context.Context, imo, mmsi []int, opts ...CallOption) (*Response, error) {
	opts = append([]CallOption{WithIMO(imo...), WithMMSI(mmsi...)}, opts...)
	return c.call(ctx, "listmanager delete", c.apiClient.ListManagerDelete, buildParams(opts))
}

// Validate checks opts the way a call would, without sending anything,
// and reports every failure. Use multierr.Errors to split the result.
func Validate(opts ...CallOption) error {
	return api.CheckAll(buildParams(opts))
}

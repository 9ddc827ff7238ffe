package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/vesselfinder/client-go/internal/apierrors"
)

// Dispatch validates params, sends one request for resource using method
// and decodes the response. successFallback is reported as the "success"
// value when the server answers with an empty body.
//
// Validation failures are returned before any network I/O. Transport
// failures are returned as *apierrors.NetworkError. When the request
// reached the server, the returned Result is non-nil even on error so
// that its Info can still be inspected.
func (c *Client) Dispatch(ctx context.Context, resource, method, successFallback string, params Params) (*Result, error) {
	p := params.Clone()
	p[ParamUserKey] = c.apiKey
	if c.errorMode {
		p[ParamErrorMode] = ErrorModeStatus
	}

	if err := Validate(p); err != nil {
		return nil, err
	}
	p.Normalize()

	req, err := c.newRequest(ctx, resource, method, p)
	if err != nil {
		return nil, apierrors.General("failed to create request", err)
	}
	requestID := req.Header.Get(HeaderRequestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &apierrors.NetworkError{Err: err, URL: c.url(resource), RequestID: requestID}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apierrors.NetworkError{Err: err, URL: c.url(resource), RequestID: requestID}
	}

	result := &Result{
		StatusCode: resp.StatusCode,
		Raw:        string(body),
		Info:       ParseInfo(resp.Header),
		RequestID:  requestID,
	}

	if resp.StatusCode == ErrorModeStatus {
		return result, withRequestID(apierrors.RequestError(resp.StatusCode, result.Raw), requestID)
	}
	if msg, ok := result.Info["error"]; ok {
		return result, withRequestID(apierrors.RequestError(resp.StatusCode, msg), requestID)
	}

	if len(body) == 0 {
		result.Body = map[string]any{"success": successFallback}
		return result, nil
	}

	if p.Format() == "xml" {
		result.Body = result.Raw
		return result, nil
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return result, withRequestID(apierrors.General("failed to decode response", err), requestID)
	}
	result.Body = decoded

	return result, nil
}

func (c *Client) newRequest(ctx context.Context, resource, method string, p Params) (*http.Request, error) {
	if method == "" {
		method = http.MethodGet
	}
	encoded := p.Values().Encode()

	var (
		req *http.Request
		err error
	)
	switch method {
	case http.MethodPost, http.MethodPut:
		req, err = http.NewRequestWithContext(ctx, method, c.url(resource), strings.NewReader(encoded))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	case http.MethodGet, http.MethodDelete:
		req, err = http.NewRequestWithContext(ctx, method, c.url(resource)+"?"+encoded, nil)
	default:
		return nil, fmt.Errorf("unsupported method %q", method)
	}
	if err != nil {
		return nil, err
	}

	if p.Format() == "xml" {
		req.Header.Set("Accept", "application/xml")
	} else {
		req.Header.Set("Accept", "application/json")
	}
	req.Header.Set(HeaderRequestID, uuid.NewString())

	return req, nil
}

// ParseInfo extracts metadata from headers whose name contains X-API.
// Every "X-API-" occurrence is removed from the name and the rest is kept,
// so Foo-X-API-Bar becomes foo_bar. Matching is case-insensitive since
// net/http canonicalizes names (X-API-Credits arrives as X-Api-Credits).
func ParseInfo(h http.Header) Info {
	info := make(Info)
	for name, values := range h {
		if !strings.Contains(strings.ToUpper(name), HeaderInfoMarker) {
			continue
		}
		key := stripMarker(name, HeaderInfoMarker+"-")
		key = strings.ToLower(strings.ReplaceAll(key, "-", "_"))
		info[key] = strings.Join(values, ", ")
	}
	return info
}

func stripMarker(name, marker string) string {
	var b strings.Builder
	for {
		idx := strings.Index(strings.ToUpper(name), marker)
		if idx < 0 {
			b.WriteString(name)
			return b.String()
		}
		b.WriteString(name[:idx])
		name = name[idx+len(marker):]
	}
}

func withRequestID(err *apierrors.Error, requestID string) *apierrors.Error {
	err.RequestID = requestID
	return err
}

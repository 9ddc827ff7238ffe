package apitest

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_DefaultResponse(t *testing.T) {
	s := NewServer(t, "key")

	resp, err := http.Get(s.URL + "/status?userkey=key")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "{}", string(body))

	req, ok := s.LastRequest()
	require.True(t, ok)
	assert.Equal(t, "status", req.Resource)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "key", req.Params.Get("userkey"))
}

func TestServer_CannedResponse(t *testing.T) {
	s := NewServer(t, "key")
	s.Handle(http.MethodGet, "vessels", Response{
		Body:   `[{"AIS":{"MMSI":227441980}}]`,
		Header: map[string]string{"X-API-Credits": "42"},
	})

	resp, err := http.Get(s.URL + "/vessels?userkey=key&imo=9228801")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, `[{"AIS":{"MMSI":227441980}}]`, string(body))
	assert.Equal(t, "42", resp.Header.Get("X-API-Credits"))
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}

func TestServer_FormBody(t *testing.T) {
	s := NewServer(t, "key")

	form := url.Values{"userkey": {"key"}, "imo": {"9228801,9441271"}}
	resp, err := http.Post(s.URL+"/listmanager", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	resp.Body.Close()

	req, ok := s.LastRequest()
	require.True(t, ok)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "9228801,9441271", req.Params.Get("imo"))
}

func TestServer_RejectsUnknownKey(t *testing.T) {
	s := NewServer(t, "key")

	t.Run("header", func(t *testing.T) {
		resp, err := http.Get(s.URL + "/status?userkey=wrong")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Invalid userkey", resp.Header.Get("X-API-Error"))
	})

	t.Run("error mode", func(t *testing.T) {
		resp, err := http.Get(s.URL + "/status?userkey=wrong&errormode=409")
		require.NoError(t, err)
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "Invalid userkey", string(body))
	})
}

func TestServer_UnknownResource(t *testing.T) {
	s := NewServer(t, "key")

	resp, err := http.Get(s.URL + "/nope?userkey=key")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_Requests(t *testing.T) {
	s := NewServer(t, "key")

	for _, r := range []string{"status", "livedata"} {
		resp, err := http.Get(s.URL + "/" + r + "?userkey=key")
		require.NoError(t, err)
		resp.Body.Close()
	}

	reqs := s.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "status", reqs[0].Resource)
	assert.Equal(t, "livedata", reqs[1].Resource)
}

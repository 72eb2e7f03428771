package provider_test

import (
	"bytes"
	"io"
	"net/http"
)

// fakeTransport answers every request with a canned response and records
// the last request body.
type fakeTransport struct {
	status int
	body   string
	calls  int
	last   []byte
}

func (f *fakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	f.calls++
	if req.Body != nil {
		f.last, _ = io.ReadAll(req.Body)
		_ = req.Body.Close()
	}
	resp := &http.Response{
		StatusCode: f.status,
		Body:       io.NopCloser(bytes.NewReader([]byte(f.body))),
		Header:     make(http.Header),
		Request:    req,
	}
	resp.Header.Set("Content-Type", "application/json")
	return resp, nil
}

func (f *fakeTransport) client() *http.Client {
	return &http.Client{Transport: f}
}

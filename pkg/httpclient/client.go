package httpclient

import (
	"context"
	"net/http"
	"time"
)

// HttpClient wraps http.Client with a shared request timeout. A hung provider
// fails the request after the timeout instead of stalling the aggregation.
type HttpClient struct {
	client *http.Client
}

func NewHttpClient(timeout time.Duration) *HttpClient {
	return &HttpClient{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Get issues a GET bound to both ctx and the client timeout.
func (h *HttpClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return h.client.Do(req)
}

// Do forwards an arbitrary request through the shared client.
func (h *HttpClient) Do(req *http.Request) (*http.Response, error) {
	return h.client.Do(req)
}

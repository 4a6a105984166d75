// Package http provides stream adapters for HTTP operations.
// It enables making HTTP requests as part of flow pipelines.
//
// Every invocation of a stream sends its request again. Request bodies are
// byte slices so they can be replayed. A nil client means http.DefaultClient.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/lguimbarda/pushflow/flow/core"
	flowio "github.com/lguimbarda/pushflow/flow/io"
)

// Response contains HTTP response data.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// StatusError is returned by GetLines for responses outside the 2xx range.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http: GET %s: status %d", e.URL, e.StatusCode)
}

// Get creates a Stream that makes a GET request and emits the response.
func Get(ctx context.Context, client *http.Client, url string) core.Stream[core.Result[Response]] {
	return Request(ctx, client, http.MethodGet, url, nil)
}

// Post creates a Stream that makes a POST request with the given body.
func Post(ctx context.Context, client *http.Client, url, contentType string, body []byte) core.Stream[core.Result[Response]] {
	return request(ctx, client, http.MethodPost, url, body, contentType)
}

// PostJSON creates a Stream that posts v encoded as JSON.
// An encoding failure is emitted as the stream's only error.
func PostJSON[T any](ctx context.Context, client *http.Client, url string, v T) core.Stream[core.Result[Response]] {
	body, err := json.Marshal(v)
	if err != nil {
		return func(r core.Consumer[core.Result[Response]]) bool {
			return r(core.Err[Response](fmt.Errorf("encode: %w", err)))
		}
	}
	return Post(ctx, client, url, "application/json", body)
}

// Request creates a Stream that makes an HTTP request and emits the response.
func Request(ctx context.Context, client *http.Client, method, url string, body []byte) core.Stream[core.Result[Response]] {
	return request(ctx, client, method, url, body, "")
}

func request(ctx context.Context, client *http.Client, method, url string, body []byte, contentType string) core.Stream[core.Result[Response]] {
	return func(r core.Consumer[core.Result[Response]]) bool {
		return r(do(ctx, client, method, url, body, contentType))
	}
}

func do(ctx context.Context, client *http.Client, method, url string, body []byte, contentType string) core.Result[Response] {
	resp, err := send(ctx, client, method, url, body, contentType)
	if err != nil {
		return core.Err[Response](err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return core.Err[Response](fmt.Errorf("read body: %w", err))
	}
	return core.Ok(Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       respBody,
	})
}

func send(ctx context.Context, client *http.Client, method, url string, body []byte, contentType string) (*http.Response, error) {
	if client == nil {
		client = http.DefaultClient
	}
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return client.Do(req)
}

// GetLines creates a Stream that makes a GET request and emits the response
// body line by line. The body is closed when the consumer stops.
// A non-2xx status is emitted as a *StatusError.
func GetLines(ctx context.Context, client *http.Client, url string) core.Stream[core.Result[string]] {
	return flowio.ReadLinesFrom(func() (io.ReadCloser, error) {
		resp, err := send(ctx, client, http.MethodGet, url, nil, "")
		if err != nil {
			return nil, err
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			resp.Body.Close()
			return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
		}
		return resp.Body, nil
	})
}

// GetEach creates a Transformer that makes a GET request for each URL.
// A failed request is emitted as an error and the next URL is tried.
func GetEach(ctx context.Context, client *http.Client) core.Transformer[string, core.Result[Response]] {
	return core.TransformerFunc[string, core.Result[Response]](func(s core.Stream[string]) core.Stream[core.Result[Response]] {
		return core.Select(s, func(url string) core.Result[Response] {
			return do(ctx, client, http.MethodGet, url, nil, "")
		})
	})
}

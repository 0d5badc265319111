// Package http fetches HTTP resources into pipelines.
package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/lguimbarda/min-chain/chain"
	chainio "github.com/lguimbarda/min-chain/chain/io"
)

// ErrStatus is returned by Fetch for responses outside the 2xx range.
var ErrStatus = errors.New("unexpected status")

// Response contains HTTP response data.
type Response struct {
	URL        string
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Text returns the response body as a string.
func (r Response) Text() string { return string(r.Body) }

// Request makes an HTTP request and reads the whole response. Any status is
// returned without error.
func Request(ctx context.Context, client *http.Client, method, url string, body io.Reader) (Response, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return Response{}, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}
	return Response{
		URL:        url,
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       respBody,
	}, nil
}

// Fetch GETs url and fails with ErrStatus unless the status is 2xx.
func Fetch(ctx context.Context, client *http.Client, url string) (Response, error) {
	resp, err := Request(ctx, client, http.MethodGet, url, nil)
	if err != nil {
		return resp, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp, fmt.Errorf("%w: GET %s: %d %s", ErrStatus, url, resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return resp, nil
}

// GetLines GETs url and returns one string per line of the body.
func GetLines(ctx context.Context, url string, opts ...chain.Option) chain.Pipeline {
	resp, err := Fetch(ctx, nil, url)
	if err != nil {
		return chain.Fail(err, opts...)
	}
	return chainio.ReadLinesFrom(bytes.NewReader(resp.Body), opts...)
}

// GetEach returns a stage replacing every URL with its Response. The first
// transport error fails the Pipeline; HTTP error statuses do not.
func GetEach(ctx context.Context, client *http.Client) chain.Stage {
	return func(p chain.Pipeline) chain.Pipeline {
		return p.TryMap(func(v any) (any, error) {
			url, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("%T is not a URL", v)
			}
			return Request(ctx, client, http.MethodGet, url, nil)
		})
	}
}

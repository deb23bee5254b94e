// file: pkg/raw-client/rest/client.go

package rest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/fx147/kuberaw/pkg/raw-client/api"
	"github.com/google/uuid"
	"k8s.io/klog/v2"
)

// Interface 是上层组件（typed client, informer, CLI）对传输层的抽象。
type Interface interface {
	Do(ctx context.Context, spec *api.RequestSpec) *Result
}

// RESTClient executes RequestSpecs against an API server. It owns the
// connection concerns only: base URL resolution, headers, and the HTTP
// round trip. Routing decisions were already made by the synthesizer.
type RESTClient struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// NewRESTClient 创建一个新的传输客户端。
// httpClient carries the TLS/auth/timeout configuration; nil means
// http.DefaultClient.
func NewRESTClient(server string, httpClient *http.Client) (*RESTClient, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	baseURL, err := url.Parse(server)
	if err != nil {
		return nil, fmt.Errorf("failed to parse server url: %w", err)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("server url %q must include scheme and host", server)
	}

	return &RESTClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}, nil
}

// Do 执行一个 RequestSpec 并返回 Result。
// Transport-level failures are surfaced through the Result, so callers
// can keep the fluent Do(...).Into(...) shape.
func (c *RESTClient) Do(ctx context.Context, spec *api.RequestSpec) *Result {
	ref := &url.URL{Path: spec.Path, RawQuery: spec.Query}
	fullURL := c.baseURL.ResolveReference(ref)

	var bodyReader io.Reader
	if spec.Body != nil {
		bodyReader = bytes.NewReader(spec.Body)
	}

	req, err := http.NewRequestWithContext(ctx, spec.Method, fullURL.String(), bodyReader)
	if err != nil {
		return &Result{err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if spec.ContentType != "" {
		req.Header.Set("Content-Type", spec.ContentType)
	}

	// 每个请求分配一个 ID，便于在日志里关联请求和响应。
	rid := uuid.NewString()
	req.Header.Set("X-Request-ID", rid)

	klog.V(4).InfoS("Executing request", "id", rid, "method", req.Method, "url", req.URL)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Result{err: fmt.Errorf("request failed: %w", err)}
	}
	klog.V(4).InfoS("Received response", "id", rid, "status", resp.StatusCode)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		defer resp.Body.Close()
		data, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return &Result{err: fmt.Errorf("server returned HTTP %d and the body could not be read: %w", resp.StatusCode, readErr)}
		}
		return &Result{err: errorFromResponse(resp.StatusCode, data)}
	}

	return &Result{
		body:       resp.Body,
		statusCode: resp.StatusCode,
	}
}

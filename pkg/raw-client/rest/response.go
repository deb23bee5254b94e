// file: pkg/raw-client/rest/response.go

package rest

import (
	"encoding/json"
	"fmt"
	"io"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// errorFromResponse turns a non-2xx response body into an error. API
// servers answer failures with a metav1.Status document; decoding it
// into a StatusError keeps apierrors.IsNotFound / IsConflict / ...
// working for callers. Anything else degrades to a generic error.
func errorFromResponse(statusCode int, body []byte) error {
	var status metav1.Status
	if err := json.Unmarshal(body, &status); err == nil && status.Kind == "Status" {
		if status.Code == 0 {
			status.Code = int32(statusCode)
		}
		return &apierrors.StatusError{ErrStatus: status}
	}

	const maxBody = 256
	if len(body) > maxBody {
		body = body[:maxBody]
	}
	return fmt.Errorf("server returned HTTP %d: %s", statusCode, string(body))
}

// Result 封装了一次请求的结果。
type Result struct {
	body       io.ReadCloser
	statusCode int
	err        error
}

// Err returns the transport or API error, if any, without consuming the
// body.
func (r *Result) Err() error {
	return r.err
}

// Raw reads and returns the whole response body. It consumes the body
// and cannot be combined with Into or Stream.
func (r *Result) Raw() ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	defer r.body.Close()
	return io.ReadAll(r.body)
}

// Into decodes the response body into obj. A nil obj discards the body
// but still reports errors.
func (r *Result) Into(obj interface{}) error {
	data, err := r.Raw()
	if err != nil {
		return err
	}
	if obj == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, obj); err != nil {
		return fmt.Errorf("failed to unmarshal response into object: %w", err)
	}
	return nil
}

// Stream hands over the undecoded response body, for callers that
// consume it incrementally (watch). The caller owns closing it.
func (r *Result) Stream() (io.ReadCloser, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.body, nil
}

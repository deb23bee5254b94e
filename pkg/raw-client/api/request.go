// file: pkg/raw-client/api/request.go

package api

import (
	"fmt"
	"net/http"
	"net/url"

	"k8s.io/apimachinery/pkg/types"
)

// RequestSpec is a fully-routed request, ready to hand to a transport:
// method, absolute percent-safe path, encoded query string, and optional
// body. Specs are cheap value objects, built fresh per call.
type RequestSpec struct {
	Method string
	Path   string
	// Query is the encoded query string without the leading "?". Empty
	// when no options were set.
	Query string
	Body  []byte
	// ContentType is set for body-carrying verbs; for patches it encodes
	// the caller-chosen patch strategy.
	ContentType string
}

// URL joins path and query. An empty option set never produces a stray
// "?".
func (s *RequestSpec) URL() string {
	if s.Query == "" {
		return s.Path
	}
	return s.Path + "?" + s.Query
}

// collectionPath implements the routing rule shared by every verb:
//
//	prefix = group == "" ? "/api" : "/apis"
//	base   = {prefix}/{apiVersion}[/namespaces/{ns}]/{resource}
func (r *Resource) collectionPath() string {
	prefix := "/apis"
	if r.group == "" {
		prefix = "/api"
	}
	if ns, ok := r.Namespace(); ok {
		return fmt.Sprintf("%s/%s/namespaces/%s/%s", prefix, r.apiVersion, url.PathEscape(ns), r.resource)
	}
	return fmt.Sprintf("%s/%s/%s", prefix, r.apiVersion, r.resource)
}

// itemPath returns the path of a single named object.
func (r *Resource) itemPath(name string) string {
	return r.collectionPath() + "/" + url.PathEscape(name)
}

// Create returns the spec for POSTing a new object to the collection.
// The body is the serialized object, passed through unmodified.
func (r *Resource) Create(pp PostParams, body []byte) (*RequestSpec, error) {
	return &RequestSpec{
		Method:      http.MethodPost,
		Path:        r.collectionPath(),
		Query:       pp.queryValues().Encode(),
		Body:        body,
		ContentType: "application/json",
	}, nil
}

// Get returns the spec for fetching a single object by name.
func (r *Resource) Get(name string) (*RequestSpec, error) {
	if name == "" {
		return nil, fmt.Errorf("get %s: name may not be empty", r.resource)
	}
	return &RequestSpec{
		Method: http.MethodGet,
		Path:   r.itemPath(name),
	}, nil
}

// List returns the spec for listing the collection.
func (r *Resource) List(lp ListParams) (*RequestSpec, error) {
	return &RequestSpec{
		Method: http.MethodGet,
		Path:   r.collectionPath(),
		Query:  lp.queryValues().Encode(),
	}, nil
}

// Watch returns the spec for watching the whole collection from the
// given resourceVersion.
func (r *Resource) Watch(lp ListParams, resourceVersion string) (*RequestSpec, error) {
	v := lp.queryValues()
	v.Set("watch", "true")
	if resourceVersion != "" {
		v.Set("resourceVersion", resourceVersion)
	}
	return &RequestSpec{
		Method: http.MethodGet,
		Path:   r.collectionPath(),
		Query:  v.Encode(),
	}, nil
}

// WatchItem returns the spec for watching a single named object. Like
// the other item-level verbs it targets the object's own path.
func (r *Resource) WatchItem(name string, lp ListParams, resourceVersion string) (*RequestSpec, error) {
	if name == "" {
		return nil, fmt.Errorf("watch %s: name may not be empty", r.resource)
	}
	v := lp.queryValues()
	v.Set("watch", "true")
	if resourceVersion != "" {
		v.Set("resourceVersion", resourceVersion)
	}
	return &RequestSpec{
		Method: http.MethodGet,
		Path:   r.itemPath(name),
		Query:  v.Encode(),
	}, nil
}

// Patch returns the spec for PATCHing a named object. The patch payload
// is passed through unmodified; its semantics are declared by pt
// (merge, JSON patch, strategic merge or apply), chosen by the caller,
// never inferred.
func (r *Resource) Patch(name string, pt types.PatchType, pp PatchParams, patch []byte) (*RequestSpec, error) {
	if name == "" {
		return nil, fmt.Errorf("patch %s: name may not be empty", r.resource)
	}
	if pt == "" {
		return nil, fmt.Errorf("patch %s/%s: patch type may not be empty", r.resource, name)
	}
	return &RequestSpec{
		Method:      http.MethodPatch,
		Path:        r.itemPath(name),
		Query:       pp.queryValues().Encode(),
		Body:        patch,
		ContentType: string(pt),
	}, nil
}

// Replace returns the spec for PUTting a full replacement of a named
// object.
func (r *Resource) Replace(name string, pp PostParams, body []byte) (*RequestSpec, error) {
	if name == "" {
		return nil, fmt.Errorf("replace %s: name may not be empty", r.resource)
	}
	return &RequestSpec{
		Method:      http.MethodPut,
		Path:        r.itemPath(name),
		Query:       pp.queryValues().Encode(),
		Body:        body,
		ContentType: "application/json",
	}, nil
}

// Delete returns the spec for deleting a named object.
func (r *Resource) Delete(name string, dp DeleteParams) (*RequestSpec, error) {
	if name == "" {
		return nil, fmt.Errorf("delete %s: name may not be empty", r.resource)
	}
	return &RequestSpec{
		Method: http.MethodDelete,
		Path:   r.itemPath(name),
		Query:  dp.queryValues().Encode(),
	}, nil
}

// file: pkg/raw-client/typed/typed.go

package typed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fx147/kuberaw/pkg/raw-client/api"
	"github.com/fx147/kuberaw/pkg/raw-client/rest"
	"github.com/fx147/kuberaw/pkg/raw-client/watch"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/types"
)

// List is the standard collection envelope returned by list calls.
type List[K any] struct {
	metav1.TypeMeta `json:",inline"`
	Metadata        metav1.ListMeta `json:"metadata,omitempty"`
	Items           []K             `json:"items"`
}

// Api binds a resource descriptor to a transport handle and gives the
// usual verb methods over a concrete object type K. The type parameter
// carries no runtime data; it only fixes what responses decode into.
//
// An Api value is stateless and safe for concurrent use.
type Api[K any] struct {
	resource *api.Resource
	client   rest.Interface
}

// New binds resource and client.
func New[K any](resource *api.Resource, client rest.Interface) *Api[K] {
	return &Api[K]{resource: resource, client: client}
}

// Dynamic is the schemaless binding: objects stay unstructured.
func Dynamic(resource *api.Resource, client rest.Interface) *Api[unstructured.Unstructured] {
	return New[unstructured.Unstructured](resource, client)
}

// Resource returns the bound descriptor.
func (a *Api[K]) Resource() *api.Resource {
	return a.resource
}

// Create POSTs obj to the collection and returns the server's view of
// it.
func (a *Api[K]) Create(ctx context.Context, pp api.PostParams, obj *K) (*K, error) {
	body, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", a.resource.Kind(), err)
	}
	spec, err := a.resource.Create(pp, body)
	if err != nil {
		return nil, err
	}

	result := new(K)
	if err := a.client.Do(ctx, spec).Into(result); err != nil {
		return nil, err
	}
	return result, nil
}

// Get fetches a single object by name.
func (a *Api[K]) Get(ctx context.Context, name string) (*K, error) {
	spec, err := a.resource.Get(name)
	if err != nil {
		return nil, err
	}

	result := new(K)
	if err := a.client.Do(ctx, spec).Into(result); err != nil {
		return nil, err
	}
	return result, nil
}

// List fetches the collection.
func (a *Api[K]) List(ctx context.Context, lp api.ListParams) (*List[K], error) {
	spec, err := a.resource.List(lp)
	if err != nil {
		return nil, err
	}

	result := &List[K]{}
	if err := a.client.Do(ctx, spec).Into(result); err != nil {
		return nil, err
	}
	return result, nil
}

// Replace PUTs a full replacement of the named object.
func (a *Api[K]) Replace(ctx context.Context, name string, pp api.PostParams, obj *K) (*K, error) {
	body, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", a.resource.Kind(), err)
	}
	spec, err := a.resource.Replace(name, pp, body)
	if err != nil {
		return nil, err
	}

	result := new(K)
	if err := a.client.Do(ctx, spec).Into(result); err != nil {
		return nil, err
	}
	return result, nil
}

// Patch applies patch (raw payload, semantics declared by pt) to the
// named object.
func (a *Api[K]) Patch(ctx context.Context, name string, pt types.PatchType, pp api.PatchParams, patch []byte) (*K, error) {
	spec, err := a.resource.Patch(name, pt, pp, patch)
	if err != nil {
		return nil, err
	}

	result := new(K)
	if err := a.client.Do(ctx, spec).Into(result); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes the named object. The server's final object/status
// body is discarded.
func (a *Api[K]) Delete(ctx context.Context, name string, dp api.DeleteParams) error {
	spec, err := a.resource.Delete(name, dp)
	if err != nil {
		return err
	}
	return a.client.Do(ctx, spec).Into(nil)
}

// Watch opens a collection watch from resourceVersion and returns the
// event decoder. The caller closes it.
func (a *Api[K]) Watch(ctx context.Context, lp api.ListParams, resourceVersion string) (*watch.Decoder, error) {
	spec, err := a.resource.Watch(lp, resourceVersion)
	if err != nil {
		return nil, err
	}
	body, err := a.client.Do(ctx, spec).Stream()
	if err != nil {
		return nil, err
	}
	return watch.NewDecoder(body), nil
}

// file: pkg/raw-client/api/resource.go

package api

import (
	"fmt"

	"github.com/fx147/kuberaw/pkg/util"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

// Resource 是一个不依赖 schema 的资源描述符。
//
// This is the smallest amount of identity we need to address a resource
// (including a custom resource) against the API server: kind, group,
// version, and optionally a namespace. It is immutable once built and
// safe to share across goroutines.
type Resource struct {
	kind       string
	group      string
	version    string
	apiVersion string
	resource   string
	namespace  *string
}

// Kind returns the singular, capitalized kind, e.g. "Foo".
func (r *Resource) Kind() string { return r.kind }

// Group returns the API group; empty string is the core/legacy group.
func (r *Resource) Group() string { return r.group }

// Version returns the API version, e.g. "v1".
func (r *Resource) Version() string { return r.version }

// APIVersion returns "{group}/{version}", or just "{version}" for the
// core group. It is computed once at Build time.
func (r *Resource) APIVersion() string { return r.apiVersion }

// Name returns the plural resource name used in request paths, e.g.
// "foos". Derived from the kind, never user-supplied.
func (r *Resource) Name() string { return r.resource }

// Namespace returns the namespace and whether one is set. A descriptor
// without a namespace addresses the resource at cluster scope.
func (r *Resource) Namespace() (string, bool) {
	if r.namespace == nil {
		return "", false
	}
	return *r.namespace, true
}

// GroupVersionKind returns the descriptor's GVK.
func (r *Resource) GroupVersionKind() schema.GroupVersionKind {
	return schema.GroupVersionKind{Group: r.group, Version: r.version, Kind: r.kind}
}

// GroupVersionResource returns the descriptor's GVR, with the derived
// plural resource name.
func (r *Resource) GroupVersionResource() schema.GroupVersionResource {
	return schema.GroupVersionResource{Group: r.group, Version: r.version, Resource: r.resource}
}

// Builder 以链式方式组装一个 Resource。
//
// All validation is deferred to Build, so setters never fail:
//
//	foos, err := api.NewResource("Foo").
//		Group("clux.dev").
//		Version("v1").
//		Within("myns").
//		Build()
type Builder struct {
	kind      string
	group     *string
	version   *string
	namespace *string
}

// NewResource starts building a descriptor for the given kind. The kind
// must be a singular, capitalized-word name ("Foo", not "foos"); this is
// normally a compile-time-known literal, and Build fails loudly on a
// malformed one rather than producing a broken request path later.
func NewResource(kind string) *Builder {
	return &Builder{kind: kind}
}

// Group sets the API group. Required; use "" explicitly for the core
// group.
func (b *Builder) Group(group string) *Builder {
	b.group = &group
	return b
}

// Version sets the API version. Required.
func (b *Builder) Version(version string) *Builder {
	b.version = &version
	return b
}

// Within scopes the descriptor to a namespace. Without it the descriptor
// is cluster-scoped.
func (b *Builder) Within(namespace string) *Builder {
	b.namespace = &namespace
	return b
}

// Build validates the collected identity and returns the immutable
// descriptor. Mutating the builder afterwards has no effect on resources
// already built.
//
// The not-already-plural check is a best-effort guard: kinds whose
// singular and plural forms coincide (e.g. "Sheep") are rejected.
func (b *Builder) Build() (*Resource, error) {
	if b.kind == "" {
		return nil, fmt.Errorf("resource kind may not be empty")
	}
	if !util.IsCapitalizedWord(b.kind) {
		return nil, fmt.Errorf("resource kind %q must be a capitalized word, e.g. \"Foo\"", b.kind)
	}
	if util.IsPlural(b.kind) {
		return nil, fmt.Errorf("resource kind %q must be singular; the plural form is derived", b.kind)
	}
	if b.version == nil {
		return nil, fmt.Errorf("resource %q must have a version", b.kind)
	}
	if b.group == nil {
		return nil, fmt.Errorf("resource %q must have a group (use \"\" for the core group)", b.kind)
	}

	gv := schema.GroupVersion{Group: *b.group, Version: *b.version}

	r := &Resource{
		kind:       b.kind,
		group:      *b.group,
		version:    *b.version,
		apiVersion: gv.String(),
		resource:   util.ResourceName(b.kind),
	}
	if b.namespace != nil {
		ns := *b.namespace
		r.namespace = &ns
	}
	return r, nil
}

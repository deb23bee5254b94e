// file: pkg/cache/store.go

package cache

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/fx147/kuberaw/pkg/raw-client/api"
	bolt "go.etcd.io/bbolt"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/client-go/tools/cache"
)

var (
	// _metadataBucketKey 是一个特殊的 bucket，用于存放每种资源的
	// 最近一次 list 的 resourceVersion。
	_metadataBucketKey = []byte("_metadata")
)

// Store is a write-through local cache of API objects, keyed by the
// resource descriptor they were fetched with. It backs the CLI's
// offline mode; it is not a source of truth.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the cache database at the given path.
func Open(dbPath string) (*Store, error) {
	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(_metadataBucketKey)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// bucketKey 为一种资源返回它的 bucket 名，例如 "clux.dev/v1/foos"。
// Namespaces live inside the bucket, as part of the object key.
func bucketKey(resource *api.Resource) []byte {
	gvr := resource.GroupVersionResource()
	return []byte(path.Join(gvr.Group, gvr.Version, gvr.Resource))
}

// objectKey mirrors client-go's MetaNamespaceKeyFunc shape:
// "namespace/name" for scoped descriptors, "name" otherwise.
func objectKey(resource *api.Resource, name string) []byte {
	if ns, ok := resource.Namespace(); ok {
		return []byte(ns + "/" + name)
	}
	return []byte(name)
}

// Put stores obj under the descriptor's bucket. The object's own
// metadata decides the key, so a list response can be written item by
// item.
func (s *Store) Put(resource *api.Resource, obj *unstructured.Unstructured) error {
	key, err := cache.MetaNamespaceKeyFunc(obj)
	if err != nil {
		return fmt.Errorf("failed to derive cache key: %w", err)
	}

	data, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("failed to marshal object for cache: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketKey(resource))
		if err != nil {
			return err
		}
		return b.Put([]byte(key), data)
	})
}

// Get reads a single object back. A missing object (or an untouched
// bucket) is a standard NotFound API error, so callers can treat cache
// misses like server misses.
func (s *Store) Get(resource *api.Resource, name string) (*unstructured.Unstructured, error) {
	gr := resource.GroupVersionResource().GroupResource()

	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketKey(resource))
		if b == nil {
			return nil
		}
		if v := b.Get(objectKey(resource, name)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, apierrors.NewNotFound(gr, name)
	}

	obj := &unstructured.Unstructured{}
	if err := json.Unmarshal(data, obj); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached object: %w", err)
	}
	return obj, nil
}

// List returns every cached object for the descriptor. Scoped
// descriptors only see their namespace.
func (s *Store) List(resource *api.Resource) ([]unstructured.Unstructured, error) {
	var prefix string
	if ns, ok := resource.Namespace(); ok {
		prefix = ns + "/"
	}

	var items []unstructured.Unstructured
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketKey(resource))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			key := string(k)
			if prefix != "" && !strings.HasPrefix(key, prefix) {
				return nil
			}
			if prefix == "" && strings.Contains(key, "/") {
				// Cluster-scoped view of a bucket that also holds
				// namespaced entries from other descriptors.
				return nil
			}
			obj := unstructured.Unstructured{}
			if err := json.Unmarshal(v, &obj); err != nil {
				return fmt.Errorf("failed to unmarshal cached object %q: %w", key, err)
			}
			items = append(items, obj)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Delete removes a cached object. Deleting an absent object is not an
// error, matching server delete semantics for caches.
func (s *Store) Delete(resource *api.Resource, name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketKey(resource))
		if b == nil {
			return nil
		}
		return b.Delete(objectKey(resource, name))
	})
}

// SetResourceVersion records the resourceVersion of the last full list
// for the descriptor.
func (s *Store) SetResourceVersion(resource *api.Resource, rv string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(_metadataBucketKey).Put(bucketKey(resource), []byte(rv))
	})
}

// ResourceVersion returns the recorded list resourceVersion, or "" when
// the resource has never been listed.
func (s *Store) ResourceVersion(resource *api.Resource) (string, error) {
	var rv string
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(_metadataBucketKey).Get(bucketKey(resource)); v != nil {
			rv = string(v)
		}
		return nil
	})
	return rv, err
}

// file: pkg/raw-client/typed/typed_test.go

package typed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fx147/kuberaw/pkg/raw-client/api"
	"github.com/fx147/kuberaw/pkg/raw-client/rest"
	"github.com/fx147/kuberaw/pkg/raw-client/watch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/types"
)

func fooResource(t *testing.T) *api.Resource {
	t.Helper()
	r, err := api.NewResource("Foo").Group("clux.dev").Version("v1").Within("myns").Build()
	require.NoError(t, err)
	return r
}

func newClient(t *testing.T, server *httptest.Server) *rest.RESTClient {
	t.Helper()
	client, err := rest.NewRESTClient(server.URL, nil)
	require.NoError(t, err)
	return client
}

func newUnstructuredFoo(name string) *unstructured.Unstructured {
	return &unstructured.Unstructured{Object: map[string]interface{}{
		"apiVersion": "clux.dev/v1",
		"kind":       "Foo",
		"metadata": map[string]interface{}{
			"name":      name,
			"namespace": "myns",
		},
	}}
}

func fooJSON(name, rv string) string {
	return fmt.Sprintf(`{"apiVersion":"clux.dev/v1","kind":"Foo","metadata":{"name":%q,"namespace":"myns","resourceVersion":%q}}`, name, rv)
}

func TestApi_GetAndList(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/apis/clux.dev/v1/namespaces/myns/foos/baz":
			fmt.Fprint(w, fooJSON("baz", "1"))
		case "/apis/clux.dev/v1/namespaces/myns/foos":
			assert.Equal(t, "app=demo", r.URL.Query().Get("labelSelector"))
			fmt.Fprintf(w, `{"apiVersion":"clux.dev/v1","kind":"FooList","metadata":{"resourceVersion":"7"},"items":[%s,%s]}`,
				fooJSON("a", "1"), fooJSON("b", "2"))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer mockServer.Close()

	foos := Dynamic(fooResource(t), newClient(t, mockServer))
	ctx := context.Background()

	obj, err := foos.Get(ctx, "baz")
	require.NoError(t, err)
	assert.Equal(t, "baz", obj.GetName())
	assert.Equal(t, "Foo", obj.GetKind())

	list, err := foos.List(ctx, api.ListParams{LabelSelector: "app=demo"})
	require.NoError(t, err)
	assert.Equal(t, "7", list.Metadata.ResourceVersion)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "a", list.Items[0].GetName())
}

func TestApi_CreateEchoesServerView(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		// 服务器会补全 resourceVersion 等字段再返回。
		var obj map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &obj))
		meta := obj["metadata"].(map[string]interface{})
		meta["resourceVersion"] = "1"

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(obj)
	}))
	defer mockServer.Close()

	foos := Dynamic(fooResource(t), newClient(t, mockServer))

	obj := newUnstructuredFoo("baz")
	created, err := foos.Create(context.Background(), api.PostParams{FieldManager: "test"}, obj)
	require.NoError(t, err)
	assert.Equal(t, "baz", created.GetName())
	assert.Equal(t, "1", created.GetResourceVersion())
}

func TestApi_PatchSendsStrategyContentType(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PATCH", r.Method)
		assert.Equal(t, "/apis/clux.dev/v1/namespaces/myns/foos/baz", r.URL.Path)
		assert.Equal(t, "application/json-patch+json", r.Header.Get("Content-Type"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, fooJSON("baz", "2"))
	}))
	defer mockServer.Close()

	foos := Dynamic(fooResource(t), newClient(t, mockServer))

	patch := []byte(`[{"op":"replace","path":"/spec/size","value":3}]`)
	patched, err := foos.Patch(context.Background(), "baz", types.JSONPatchType, api.PatchParams{}, patch)
	require.NoError(t, err)
	assert.Equal(t, "2", patched.GetResourceVersion())
}

func TestApi_Delete(t *testing.T) {
	var sawDelete bool
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawDelete = r.Method == "DELETE"
		assert.Equal(t, "/apis/clux.dev/v1/namespaces/myns/foos/baz", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"kind":"Status","apiVersion":"v1","status":"Success"}`)
	}))
	defer mockServer.Close()

	foos := Dynamic(fooResource(t), newClient(t, mockServer))
	require.NoError(t, foos.Delete(context.Background(), "baz", api.DeleteParams{}))
	assert.True(t, sawDelete)
}

func TestApi_Watch(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("watch"))
		assert.Equal(t, "5", r.URL.Query().Get("resourceVersion"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"type":"ADDED","object":%s}`+"\n", fooJSON("a", "6"))
		fmt.Fprintf(w, `{"type":"DELETED","object":%s}`+"\n", fooJSON("a", "7"))
	}))
	defer mockServer.Close()

	foos := Dynamic(fooResource(t), newClient(t, mockServer))

	decoder, err := foos.Watch(context.Background(), api.ListParams{}, "5")
	require.NoError(t, err)
	defer decoder.Close()

	event, err := decoder.Decode()
	require.NoError(t, err)
	assert.Equal(t, watch.Added, event.Type)

	event, err = decoder.Decode()
	require.NoError(t, err)
	assert.Equal(t, watch.Deleted, event.Type)

	_, err = decoder.Decode()
	assert.Equal(t, io.EOF, err)
}

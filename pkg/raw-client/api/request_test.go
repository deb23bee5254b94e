// file: pkg/raw-client/api/request_test.go

package api

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/types"
)

func clusterScoped(t *testing.T) *Resource {
	t.Helper()
	r, err := NewResource("Foo").Group("clux.dev").Version("v1").Build()
	require.NoError(t, err)
	return r
}

func namespaceScoped(t *testing.T) *Resource {
	t.Helper()
	r, err := NewResource("Foo").Group("clux.dev").Version("v1").Within("myns").Build()
	require.NoError(t, err)
	return r
}

func TestCreate_ClusterScoped(t *testing.T) {
	spec, err := clusterScoped(t).Create(PostParams{}, []byte(`{}`))
	require.NoError(t, err)

	assert.Equal(t, "POST", spec.Method)
	assert.Equal(t, "/apis/clux.dev/v1/foos", spec.Path)
	assert.Equal(t, "application/json", spec.ContentType)
	assert.NotNil(t, spec.Body)
}

func TestCreate_NamespaceScoped(t *testing.T) {
	spec, err := namespaceScoped(t).Create(PostParams{}, []byte(`{}`))
	require.NoError(t, err)

	assert.Equal(t, "/apis/clux.dev/v1/namespaces/myns/foos", spec.Path)
}

func TestCreate_CoreGroup(t *testing.T) {
	// 核心组走 /api 前缀而不是 /apis。
	r, err := NewResource("Pod").Group("").Version("v1").Within("default").Build()
	require.NoError(t, err)

	spec, err := r.Create(PostParams{}, []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/namespaces/default/pods", spec.Path)
}

func TestPatch(t *testing.T) {
	spec, err := namespaceScoped(t).Patch("baz", types.MergePatchType, PatchParams{}, []byte(`{}`))
	require.NoError(t, err)

	assert.Equal(t, "PATCH", spec.Method)
	assert.Equal(t, "/apis/clux.dev/v1/namespaces/myns/foos/baz", spec.Path)
	assert.Equal(t, "application/merge-patch+json", spec.ContentType)
}

func TestPatch_RequiresNameAndType(t *testing.T) {
	r := namespaceScoped(t)

	_, err := r.Patch("", types.MergePatchType, PatchParams{}, nil)
	assert.Error(t, err)

	_, err = r.Patch("baz", "", PatchParams{}, nil)
	assert.Error(t, err)
}

func TestGet(t *testing.T) {
	spec, err := clusterScoped(t).Get("baz")
	require.NoError(t, err)

	assert.Equal(t, "GET", spec.Method)
	assert.Equal(t, "/apis/clux.dev/v1/foos/baz", spec.Path)
	assert.Nil(t, spec.Body)

	_, err = clusterScoped(t).Get("")
	assert.Error(t, err, "item-level verb without a name must fail")
}

func TestList_Query(t *testing.T) {
	timeout := int64(30)
	spec, err := clusterScoped(t).List(ListParams{
		LabelSelector:  "app=foo",
		FieldSelector:  "metadata.name=bar",
		Limit:          50,
		Continue:       "token",
		TimeoutSeconds: &timeout,
	})
	require.NoError(t, err)

	values, parseErr := url.ParseQuery(spec.Query)
	require.NoError(t, parseErr)
	assert.Equal(t, "app=foo", values.Get("labelSelector"))
	assert.Equal(t, "metadata.name=bar", values.Get("fieldSelector"))
	assert.Equal(t, "50", values.Get("limit"))
	assert.Equal(t, "token", values.Get("continue"))
	assert.Equal(t, "30", values.Get("timeoutSeconds"))
}

// TestEmptyQuery 验证空的选项集不会产生多余的分隔符。
func TestEmptyQuery(t *testing.T) {
	r := namespaceScoped(t)

	spec, err := r.List(ListParams{})
	require.NoError(t, err)
	assert.Empty(t, spec.Query)
	assert.Equal(t, "/apis/clux.dev/v1/namespaces/myns/foos", spec.URL())
	assert.False(t, strings.HasSuffix(spec.URL(), "?"))

	spec, err = r.Create(PostParams{}, []byte(`{}`))
	require.NoError(t, err)
	assert.NotContains(t, spec.URL(), "?")
}

func TestCreate_Params(t *testing.T) {
	spec, err := clusterScoped(t).Create(PostParams{
		DryRun:       true,
		FieldManager: "kuberaw",
	}, []byte(`{}`))
	require.NoError(t, err)

	values, parseErr := url.ParseQuery(spec.Query)
	require.NoError(t, parseErr)
	assert.Equal(t, "All", values.Get("dryRun"))
	assert.Equal(t, "kuberaw", values.Get("fieldManager"))
}

func TestWatch(t *testing.T) {
	spec, err := namespaceScoped(t).Watch(ListParams{}, "12345")
	require.NoError(t, err)

	assert.Equal(t, "GET", spec.Method)
	assert.Equal(t, "/apis/clux.dev/v1/namespaces/myns/foos", spec.Path)

	values, parseErr := url.ParseQuery(spec.Query)
	require.NoError(t, parseErr)
	assert.Equal(t, "true", values.Get("watch"))
	assert.Equal(t, "12345", values.Get("resourceVersion"))
}

func TestWatchItem(t *testing.T) {
	spec, err := namespaceScoped(t).WatchItem("baz", ListParams{}, "12345")
	require.NoError(t, err)

	// 单对象 watch 和其他 item 级动词一样走对象自己的路径。
	assert.Equal(t, "GET", spec.Method)
	assert.Equal(t, "/apis/clux.dev/v1/namespaces/myns/foos/baz", spec.Path)

	values, parseErr := url.ParseQuery(spec.Query)
	require.NoError(t, parseErr)
	assert.Equal(t, "true", values.Get("watch"))
	assert.Equal(t, "12345", values.Get("resourceVersion"))

	_, err = namespaceScoped(t).WatchItem("", ListParams{}, "")
	assert.Error(t, err)
}

func TestReplace(t *testing.T) {
	spec, err := namespaceScoped(t).Replace("baz", PostParams{}, []byte(`{}`))
	require.NoError(t, err)

	assert.Equal(t, "PUT", spec.Method)
	assert.Equal(t, "/apis/clux.dev/v1/namespaces/myns/foos/baz", spec.Path)

	_, err = namespaceScoped(t).Replace("", PostParams{}, nil)
	assert.Error(t, err)
}

func TestDelete(t *testing.T) {
	grace := int64(0)
	spec, err := clusterScoped(t).Delete("baz", DeleteParams{
		GracePeriodSeconds: &grace,
		PropagationPolicy:  "Foreground",
	})
	require.NoError(t, err)

	assert.Equal(t, "DELETE", spec.Method)
	assert.Equal(t, "/apis/clux.dev/v1/foos/baz", spec.Path)

	values, parseErr := url.ParseQuery(spec.Query)
	require.NoError(t, parseErr)
	assert.Equal(t, "0", values.Get("gracePeriodSeconds"))
	assert.Equal(t, "Foreground", values.Get("propagationPolicy"))

	_, err = clusterScoped(t).Delete("", DeleteParams{})
	assert.Error(t, err)
}

// TestPathEscaping 验证路径段是百分号安全的。
func TestPathEscaping(t *testing.T) {
	r, err := NewResource("Foo").Group("clux.dev").Version("v1").Within("my ns").Build()
	require.NoError(t, err)

	spec, err := r.Get("a/b")
	require.NoError(t, err)
	assert.Equal(t, "/apis/clux.dev/v1/namespaces/my%20ns/foos/a%2Fb", spec.Path)
}

// file: internal/kuberaw/util/client.go

package util

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fx147/kuberaw/pkg/cache"
	"github.com/fx147/kuberaw/pkg/raw-client/api"
	"github.com/fx147/kuberaw/pkg/raw-client/rest"
	"github.com/jinzhu/inflection"
	"github.com/spf13/viper"
	"github.com/stoewer/go-strcase"
)

// NewRESTClientFromFlags 从 viper 中读取全局标志并创建传输客户端。
func NewRESTClientFromFlags() (*rest.RESTClient, error) {
	server := viper.GetString("server")
	if server == "" {
		return nil, fmt.Errorf("server must be specified")
	}

	return rest.NewRESTClient(server, &http.Client{Timeout: 30 * time.Second})
}

// ResourceFromFlags builds the descriptor for the kind named on the
// command line, using the global group/version/namespace flags.
//
// The argument is forgiving like kubectl's: "foo", "foos" and "Foo" all
// mean kind "Foo". It is singularized and normalized before the builder
// sees it.
func ResourceFromFlags(kindArg string) (*api.Resource, error) {
	if kindArg == "" {
		return nil, fmt.Errorf("a resource kind is required")
	}
	kind := strcase.UpperCamelCase(inflection.Singular(strings.ToLower(kindArg)))

	b := api.NewResource(kind).
		Group(viper.GetString("group")).
		Version(viper.GetString("version"))
	if ns := viper.GetString("namespace"); ns != "" {
		b.Within(ns)
	}
	return b.Build()
}

// OpenCacheFromFlags opens the local object cache when --cache-dir is
// set. A disabled cache is (nil, nil); callers must check.
func OpenCacheFromFlags() (*cache.Store, error) {
	dbPath := viper.GetString("cache-dir")
	if dbPath == "" {
		return nil, nil
	}
	return cache.Open(dbPath)
}

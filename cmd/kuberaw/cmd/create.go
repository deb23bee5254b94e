// file: cmd/kuberaw/cmd/create.go

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fx147/kuberaw/internal/kuberaw/util"
	"github.com/fx147/kuberaw/pkg/raw-client/api"
	"github.com/fx147/kuberaw/pkg/raw-client/typed"
	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/yaml"
)

// newCreateCmd 创建 create 命令
func newCreateCmd() *cobra.Command {
	var filename string
	var dryRun bool
	var fieldManager string

	cmd := &cobra.Command{
		Use:   "create -f FILE",
		Short: "Create a resource from a file",
		Long: `Creates a resource from a YAML or JSON manifest. The resource's
identity (kind, apiVersion, namespace) is taken from the manifest
itself, so no --group/--version flags are needed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			obj, resource, err := loadManifest(filename)
			if err != nil {
				return err
			}

			client, err := util.NewRESTClientFromFlags()
			if err != nil {
				return err
			}

			created, err := typed.Dynamic(resource, client).Create(context.Background(), api.PostParams{
				DryRun:       dryRun,
				FieldManager: fieldManager,
			}, obj)
			if err != nil {
				return err
			}

			fmt.Printf("%s %q created\n", resource.Name(), created.GetName())
			return nil
		},
	}

	cmd.Flags().StringVarP(&filename, "filename", "f", "", "Manifest file to create from (required)")
	cmd.MarkFlagRequired("filename")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Submit the request without persisting it")
	cmd.Flags().StringVar(&fieldManager, "field-manager", "kuberaw", "Name of the field manager for this operation")

	return cmd
}

// loadManifest 读取 manifest 并从对象自身推导出资源描述符。
func loadManifest(filename string) (*unstructured.Unstructured, *api.Resource, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	obj := &unstructured.Unstructured{}
	if err := yaml.Unmarshal(data, &obj.Object); err != nil {
		return nil, nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	if obj.GetKind() == "" || obj.GetAPIVersion() == "" {
		return nil, nil, fmt.Errorf("manifest must carry kind and apiVersion")
	}
	gv, err := schema.ParseGroupVersion(obj.GetAPIVersion())
	if err != nil {
		return nil, nil, fmt.Errorf("invalid apiVersion %q: %w", obj.GetAPIVersion(), err)
	}

	b := api.NewResource(obj.GetKind()).
		Group(gv.Group).
		Version(gv.Version)
	if ns := obj.GetNamespace(); ns != "" {
		b.Within(ns)
	}

	resource, err := b.Build()
	if err != nil {
		return nil, nil, err
	}
	return obj, resource, nil
}

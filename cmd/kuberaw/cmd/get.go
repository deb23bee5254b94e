// file: cmd/kuberaw/cmd/get.go

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
)

// newGetCmd 创建 get 命令
func newGetCmd() *cobra.Command {
	var labelSelector, fieldSelector string
	var limit int64
	var cached bool
	var outputYAML bool

	cmd := &cobra.Command{
		Use:   "get KIND [NAME]",
		Short: "Display one or many resources",
		Long: `Prints a table of the named resources. The kind may be any resource
the server knows, including custom resources; kuberaw derives the
request path from KIND plus the global --group/--version/--namespace
flags.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resource, err := util.ResourceFromFlags(args[0])
			if err != nil {
				return err
			}

			store, err := util.OpenCacheFromFlags()
			if err != nil {
				return err
			}
			if store != nil {
				defer store.Close()
			}

			ctx := context.Background()

			// --cached 直接从本地缓存读，不访问服务器。
			if cached {
				if store == nil {
					return fmt.Errorf("--cached requires --cache-dir")
				}
				if len(args) == 2 {
					obj, err := store.Get(resource, args[1])
					if err != nil {
						return err
					}
					return printObjects(outputYAML, []unstructured.Unstructured{*obj})
				}
				items, err := store.List(resource)
				if err != nil {
					return err
				}
				return printObjects(outputYAML, items)
			}

			client, err := util.NewRESTClientFromFlags()
			if err != nil {
				return err
			}
			resourceAPI := typed.Dynamic(resource, client)

			if len(args) == 2 {
				obj, err := resourceAPI.Get(ctx, args[1])
				if err != nil {
					return err
				}
				if store != nil {
					if err := store.Put(resource, obj); err != nil {
						return fmt.Errorf("failed to cache object: %w", err)
					}
				}
				return printObjects(outputYAML, []unstructured.Unstructured{*obj})
			}

			list, err := resourceAPI.List(ctx, api.ListParams{
				LabelSelector: labelSelector,
				FieldSelector: fieldSelector,
				Limit:         limit,
			})
			if err != nil {
				return err
			}

			// write-through：成功的 list 顺手刷新缓存。
			if store != nil {
				for idx := range list.Items {
					if err := store.Put(resource, &list.Items[idx]); err != nil {
						return fmt.Errorf("failed to cache object: %w", err)
					}
				}
				if rv := list.Metadata.ResourceVersion; rv != "" {
					if err := store.SetResourceVersion(resource, rv); err != nil {
						return err
					}
				}
			}

			return printObjects(outputYAML, list.Items)
		},
	}

	cmd.Flags().StringVarP(&labelSelector, "selector", "l", "", "Label selector to filter on, e.g. app=foo")
	cmd.Flags().StringVar(&fieldSelector, "field-selector", "", "Field selector to filter on, e.g. metadata.name=foo")
	cmd.Flags().Int64Var(&limit, "limit", 0, "Maximum number of items to return (0 for no limit)")
	cmd.Flags().BoolVar(&cached, "cached", false, "Read from the local cache instead of the server")
	cmd.Flags().BoolVarP(&outputYAML, "yaml", "y", false, "Print full objects as YAML instead of a table")

	return cmd
}

func printObjects(outputYAML bool, items []unstructured.Unstructured) error {
	if len(items) == 0 {
		fmt.Println("No resources found.")
		return nil
	}
	if outputYAML {
		for idx := range items {
			if idx > 0 {
				fmt.Println("---")
			}
			if err := util.PrintObjectYAML(os.Stdout, &items[idx]); err != nil {
				return err
			}
		}
		return nil
	}
	util.PrintObjectsTable(os.Stdout, items)
	return nil
}

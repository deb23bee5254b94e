// file: cmd/kuberaw/cmd/delete.go

package cmd

import (
	"context"
	"fmt"

	"github.com/fx147/kuberaw/internal/kuberaw/util"
	"github.com/fx147/kuberaw/pkg/raw-client/api"
	"github.com/fx147/kuberaw/pkg/raw-client/typed"
	"github.com/spf13/cobra"
)

// newDeleteCmd 创建 delete 命令
func newDeleteCmd() *cobra.Command {
	var dryRun bool
	var gracePeriod int64
	var propagation string

	cmd := &cobra.Command{
		Use:   "delete KIND NAME",
		Short: "Delete a resource by name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resource, err := util.ResourceFromFlags(args[0])
			if err != nil {
				return err
			}

			client, err := util.NewRESTClientFromFlags()
			if err != nil {
				return err
			}

			dp := api.DeleteParams{
				DryRun:            dryRun,
				PropagationPolicy: propagation,
			}
			// 只有用户明确给出 --grace-period 时才发送它。
			if cmd.Flags().Changed("grace-period") {
				dp.GracePeriodSeconds = &gracePeriod
			}

			name := args[1]
			if err := typed.Dynamic(resource, client).Delete(context.Background(), name, dp); err != nil {
				return err
			}

			// 服务器删除成功后，顺手清掉本地缓存里的副本。
			store, err := util.OpenCacheFromFlags()
			if err != nil {
				return err
			}
			if store != nil {
				defer store.Close()
				if err := store.Delete(resource, name); err != nil {
					return err
				}
			}

			fmt.Printf("%s %q deleted\n", resource.Name(), name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Submit the request without persisting it")
	cmd.Flags().Int64Var(&gracePeriod, "grace-period", -1, "Termination grace period in seconds")
	cmd.Flags().StringVar(&propagation, "propagation", "", "Deletion propagation policy (Orphan, Background or Foreground)")

	return cmd
}

// file: cmd/kuberaw/cmd/patch.go

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fx147/kuberaw/internal/kuberaw/util"
	"github.com/fx147/kuberaw/pkg/raw-client/api"
	"github.com/fx147/kuberaw/pkg/raw-client/typed"
	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/types"
)

// patchTypes 把命令行上的策略名映射到对应的 PatchType。
var patchTypes = map[string]types.PatchType{
	"merge":     types.MergePatchType,
	"json":      types.JSONPatchType,
	"strategic": types.StrategicMergePatchType,
	"apply":     types.ApplyPatchType,
}

// newPatchCmd 创建 patch 命令
func newPatchCmd() *cobra.Command {
	var patchData string
	var patchFile string
	var patchType string
	var dryRun bool
	var fieldManager string

	cmd := &cobra.Command{
		Use:   "patch KIND NAME",
		Short: "Update fields of a resource",
		Long: `Applies a patch to the named resource. The payload is passed through
to the server unmodified; --type declares its semantics (merge, json,
strategic or apply).`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pt, ok := patchTypes[patchType]
			if !ok {
				return fmt.Errorf("unknown patch type %q (want merge, json, strategic or apply)", patchType)
			}

			var patch []byte
			switch {
			case patchData != "" && patchFile != "":
				return fmt.Errorf("--patch and --patch-file are mutually exclusive")
			case patchData != "":
				patch = []byte(patchData)
			case patchFile != "":
				data, err := os.ReadFile(patchFile)
				if err != nil {
					return fmt.Errorf("failed to read patch file: %w", err)
				}
				patch = data
			default:
				return fmt.Errorf("one of --patch or --patch-file is required")
			}

			resource, err := util.ResourceFromFlags(args[0])
			if err != nil {
				return err
			}

			client, err := util.NewRESTClientFromFlags()
			if err != nil {
				return err
			}

			patched, err := typed.Dynamic(resource, client).Patch(context.Background(), args[1], pt, api.PatchParams{
				DryRun:       dryRun,
				FieldManager: fieldManager,
			}, patch)
			if err != nil {
				return err
			}

			fmt.Printf("%s %q patched\n", resource.Name(), patched.GetName())
			return nil
		},
	}

	cmd.Flags().StringVarP(&patchData, "patch", "p", "", "Patch payload, inline")
	cmd.Flags().StringVar(&patchFile, "patch-file", "", "File containing the patch payload")
	cmd.Flags().StringVar(&patchType, "type", "merge", "Patch strategy: merge, json, strategic or apply")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Submit the request without persisting it")
	cmd.Flags().StringVar(&fieldManager, "field-manager", "kuberaw", "Name of the field manager for this operation")

	return cmd
}

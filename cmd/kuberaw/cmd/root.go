// file: cmd/kuberaw/cmd/root.go

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"
)

var (
	// cfgFile 用于存储配置文件的路径
	cfgFile string

	// rootCmd 代表没有调用子命令时的基础命令
	rootCmd = &cobra.Command{
		Use:   "kuberaw",
		Short: "A CLI for arbitrary resources of a Kubernetes-style API server",
		Long: `kuberaw talks to a Kubernetes-style REST API without any schema
knowledge. You name a kind, group and version on the command line and
kuberaw derives the request routing from there, so it works against
custom resources the same way it works against built-in ones.`,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}
)

// Execute 是 main.go 调用的入口。
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// --- 全局持久标志，对所有子命令生效 ---

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.kuberaw.yaml)")

	rootCmd.PersistentFlags().String("server", "http://localhost:8001", "The address of the API server")
	rootCmd.PersistentFlags().String("group", "", "API group of the resource (empty for the core group)")
	rootCmd.PersistentFlags().String("version", "v1", "API version of the resource")
	rootCmd.PersistentFlags().StringP("namespace", "n", "", "Namespace scope (omit for cluster scope)")
	rootCmd.PersistentFlags().String("cache-dir", "", "Path of the local object cache database (empty disables caching)")

	// --- 将标志与 Viper 绑定，配置文件和环境变量也能设置它们 ---
	viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server"))
	viper.BindPFlag("group", rootCmd.PersistentFlags().Lookup("group"))
	viper.BindPFlag("version", rootCmd.PersistentFlags().Lookup("version"))
	viper.BindPFlag("namespace", rootCmd.PersistentFlags().Lookup("namespace"))
	viper.BindPFlag("cache-dir", rootCmd.PersistentFlags().Lookup("cache-dir"))

	// --- 添加子命令 ---
	rootCmd.AddCommand(newGetCmd())
	rootCmd.AddCommand(newCreateCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newPatchCmd())
}

// initConfig 读取配置文件和环境变量（如果设置了的话）。
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)

		viper.SetConfigName(".kuberaw")
		viper.SetConfigType("yaml")
	}

	// 环境变量前缀，例如 KUBERAW_SERVER
	viper.SetEnvPrefix("KUBERAW")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			klog.Warningf("Error reading config file: %v", err)
		}
	}
}

// GetRootCmd 导出 rootCmd 以便 main.go 可以添加 klog 标志。
func GetRootCmd() *cobra.Command {
	return rootCmd
}

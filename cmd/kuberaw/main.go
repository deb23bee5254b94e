// file: cmd/kuberaw/main.go

package main

import (
	"flag"

	"github.com/fx147/kuberaw/cmd/kuberaw/cmd"
	"k8s.io/klog/v2"
)

func main() {
	// 把 klog 的标志挂到 cobra 根命令上，这样 -v 等参数也能被解析。
	fs := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(fs)
	cmd.GetRootCmd().PersistentFlags().AddGoFlagSet(fs)

	cmd.Execute()
}

// file: internal/kuberaw/util/printer.go

package util

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"sigs.k8s.io/yaml"
)

// PrintObjectsTable 将对象列表以表格形式打印到指定的 writer。
func PrintObjectsTable(out io.Writer, items []unstructured.Unstructured) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "NAMESPACE\tNAME\tKIND\tVERSION\tAGE")

	for _, obj := range items {
		namespace := obj.GetNamespace()
		if namespace == "" {
			namespace = "<none>"
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			namespace,
			obj.GetName(),
			obj.GetKind(),
			obj.GetAPIVersion(),
			formatAge(obj.GetCreationTimestamp().Time),
		)
	}
}

// formatAge 将对象年龄格式化为 kubectl 风格的 "3d4h" 形式。
func formatAge(created time.Time) string {
	if created.IsZero() {
		return "<unknown>"
	}
	d := time.Since(created)

	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd%dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh%dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

// PrintObjectYAML 以 YAML 形式打印单个对象。
func PrintObjectYAML(out io.Writer, obj *unstructured.Unstructured) error {
	data, err := yaml.Marshal(obj.Object)
	if err != nil {
		return fmt.Errorf("failed to marshal object to yaml: %w", err)
	}
	_, err = out.Write(data)
	return err
}

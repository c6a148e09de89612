package quickquery

import "fmt"

// FormatSize renders a byte count the way the UI shows file sizes:
// below 1 KiB the raw byte count, below 1 MiB a one-decimal KB figure,
// otherwise a two-decimal MB figure.
func FormatSize(n int64) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.2f MB", float64(n)/1024/1024)
	}
}

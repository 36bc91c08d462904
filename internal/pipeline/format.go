// internal/pipeline/format.go
package pipeline

import (
	"fmt"
	"math"
)

// FormatExecutionTime renders a millisecond duration for display: raw
// milliseconds under half a second, seconds to one decimal under a minute,
// minutes to one decimal beyond that.
func FormatExecutionTime(ms float64) string {
	if ms < 500 {
		return fmt.Sprintf("%dms", int64(math.Round(ms)))
	}
	if ms < 60_000 {
		return fmt.Sprintf("%.1fs", ms/1000)
	}
	return fmt.Sprintf("%.1fm", ms/60_000)
}

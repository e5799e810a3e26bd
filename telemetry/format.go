package telemetry

import (
	"fmt"
	"io"
	"time"

	"github.com/robinvdvleuten/finance/output"
)

// slowThreshold marks operations worth highlighting, such as a save on a
// slow disk.
const slowThreshold = 100 * time.Millisecond

// formatTimingTree writes one timer and its children:
//
//	menu: 2.41s
//	├─ store.load finance_data.json: 1ms
//	└─ store.save finance_data.json: 2ms
func formatTimingTree(w io.Writer, root *timerNode, stylesInterface interface{}) {
	styles, _ := stylesInterface.(*output.Styles)
	now := time.Now()

	name := root.name
	if styles != nil {
		name = styles.Keyword(name)
	}
	_, _ = fmt.Fprintf(w, "%s: %s\n", name, formatDuration(root.duration(now)))

	for i, child := range root.children {
		formatNode(w, child, "", i == len(root.children)-1, styles, now)
	}
}

func formatNode(w io.Writer, node *timerNode, prefix string, isLast bool, styles *output.Styles, now time.Time) {
	duration := node.duration(now)

	branch, extension := "├─ ", "│  "
	if isLast {
		branch, extension = "└─ ", "   "
	}

	if styles != nil {
		timing := styles.Timing(formatDuration(duration), duration >= slowThreshold)
		_, _ = fmt.Fprintf(w, "%s%s: %s\n", styles.Dim(prefix+branch), node.name, timing)
	} else {
		_, _ = fmt.Fprintf(w, "%s%s%s: %s\n", prefix, branch, node.name, formatDuration(duration))
	}

	for i, child := range node.children {
		formatNode(w, child, prefix+extension, i == len(node.children)-1, styles, now)
	}
}

// formatDuration shows milliseconds below one second and seconds above.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.2fs", float64(d)/float64(time.Second))
}

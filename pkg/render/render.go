// Package render provides output renderers for fiolens summaries.
package render

import "github.com/mstern/fiolens/pkg/summarize"

// Renderer converts one summarized consolidated input to formatted output.
type Renderer interface {
	Render(s summarize.Summary) string
}

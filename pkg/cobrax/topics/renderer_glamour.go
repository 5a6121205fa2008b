package topics

import (
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// GlamourRenderer renders markdown topics with glamour. Content in any
// other format passes through untouched.
type GlamourRenderer struct {
	// Style overrides the background detection: "dark", "light",
	// "notty", or a path to a custom style file.
	Style string

	// Width wraps output at the given column. Zero keeps glamour's
	// default.
	Width int
}

// NewGlamourRenderer creates a markdown renderer that picks its style
// from the terminal background.
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{}
}

func (r *GlamourRenderer) Render(content string, format string) string {
	if format != ".md" {
		return content
	}

	style := r.Style
	if style == "" {
		if termenv.HasDarkBackground() {
			style = "dark"
		} else {
			style = "light"
		}
	}

	options := []glamour.TermRendererOption{
		glamour.WithStylePath(style),
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

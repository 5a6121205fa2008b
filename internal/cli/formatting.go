package cli

import (
	"os"

	"github.com/mattn/go-isatty"

	"github.com/arthur-debert/flavor/pkg/cobrax/topics"
	"github.com/arthur-debert/flavor/pkg/style"
)

// newRenderer picks rich or plain rendering for the given stream, so
// reports stay readable when piped into a file or another program.
func newRenderer(f *os.File) style.Renderer {
	if isTerminal(f) {
		return style.NewTerminalRenderer()
	}
	return style.NewPlainRenderer()
}

// topicRenderer picks how help topics are rendered: glamour markdown
// on a terminal, raw text otherwise.
func topicRenderer() topics.Renderer {
	if isTerminal(os.Stdout) {
		return topics.NewGlamourRenderer()
	}
	return &topics.PlainRenderer{}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

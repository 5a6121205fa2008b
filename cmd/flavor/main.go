package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/arthur-debert/flavor/internal/cli"
	"github.com/arthur-debert/flavor/pkg/style"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorRenderer().RenderError(err))
		os.Exit(1)
	}
}

// errorRenderer picks rich or plain error output for stderr.
func errorRenderer() style.Renderer {
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return style.NewTerminalRenderer()
	}
	return style.NewPlainRenderer()
}

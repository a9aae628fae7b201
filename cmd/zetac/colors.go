package main

import (
	"os"
	"sync"

	"github.com/mattn/go-isatty"
)

var (
	colorOnce sync.Once
	colorOn   bool
)

// useColor reports whether stderr gets ANSI colors. Honors the NO_COLOR
// convention (https://no-color.org/), dumb terminals and redirected output.
func useColor() bool {
	colorOnce.Do(func() {
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return
		}
		if os.Getenv("TERM") == "dumb" {
			return
		}
		fd := os.Stderr.Fd()
		colorOn = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	})
	return colorOn
}

func errorLabel() string {
	if useColor() {
		return "\x1b[31merror:\x1b[0m"
	}
	return "error:"
}

package main

import (
	"fmt"
	"io"

	"github.com/vyevs/ansi"

	"github.com/vyevs/hinglish"
)

// console writes the human readable progress of a run. It implements
// hinglish.Reporter.
type console struct {
	w     io.Writer
	color bool
}

var _ hinglish.Reporter = (*console)(nil)

func (c *console) printf(format string, args ...any) {
	fmt.Fprintf(c.w, format, args...)
}

func (c *console) println(s string) {
	fmt.Fprintln(c.w, s)
}

// success prints a check-marked line, green unless colour is off.
func (c *console) success(msg string) {
	if c.color {
		fmt.Fprintf(c.w, "%s✓ %s%s\n", ansi.FGColorName("green"), msg, ansi.Clear)
		return
	}
	fmt.Fprintf(c.w, "✓ %s\n", msg)
}

// failure prints msg in red unless colour is off.
func (c *console) failure(msg string) {
	if c.color {
		fmt.Fprintf(c.w, "%s%s%s\n", ansi.FGColorName("red"), msg, ansi.Clear)
		return
	}
	fmt.Fprintln(c.w, msg)
}

func (c *console) Start(total int) {
	c.printf("Total lines: %d\n", total)
}

func (c *console) Progress(p hinglish.Progress) {
	c.println(p.String())
}

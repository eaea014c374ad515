package utils

import (
	"fmt"
	"log"
)

// Logger receives per-unit diagnostics (skipped blocks, unresolved edges)
type Logger interface {
	Printf(format string, a ...interface{})
}

type prefixLogger string

func (p prefixLogger) Printf(format string, a ...interface{}) {
	log.Printf("[%s] %s", string(p), fmt.Sprintf(format, a...))
}

// OrDefault falls back to the process log with a bracketed prefix
func OrDefault(l Logger, prefix string) Logger {
	if l == nil {
		return prefixLogger(prefix)
	}
	return l
}

// Collector keeps diagnostics in memory and forwards them to Next if set
type Collector struct {
	Messages []string
	Next     Logger
}

func (c *Collector) Printf(format string, a ...interface{}) {
	c.Messages = append(c.Messages, fmt.Sprintf(format, a...))
	if c.Next != nil {
		c.Next.Printf(format, a...)
	}
}

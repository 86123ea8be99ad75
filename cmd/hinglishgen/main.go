// Package main provides the entry point for the hinglishgen CLI, which writes
// synthetic code-mixed Hindi-English NLU training samples.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"hinglishgen/cmd/hinglishgen/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := commands.Execute(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

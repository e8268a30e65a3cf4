// Command textprep cleans and segments Ukrainian text from files or stdin
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"textprep/internal/cli"
	"textprep/internal/platform/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	// stdout carries results; logs go to stderr
	opts := logger.FromEnv()
	opts.Service = "textprep"
	opts.Writer = os.Stderr
	logger.Init(opts)

	code := cli.Execute(ctx)
	stop()
	os.Exit(code)
}

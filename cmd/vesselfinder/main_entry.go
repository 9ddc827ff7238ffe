//go:build !testcoverage

package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args, DefaultIO())
	stop()
	os.Exit(code)
}

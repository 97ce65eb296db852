// Command mycv is the command line client for the MyCV resume builder.
// Usage: mycv [--base-url URL] <command> ...   (see mycv --help)
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/raysh454/mycv/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:], cli.Options{})
	stop()
	os.Exit(code)
}

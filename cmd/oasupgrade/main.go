// Command oasupgrade upgrades Swagger 2.0 and OpenAPI 3.0 documents to
// OpenAPI 3.0 or 3.1.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/oasupgrade/cmd/oasupgrade/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := commands.Execute(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

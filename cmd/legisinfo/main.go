// cmd/legisinfo/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/law-makers/legisinfo/internal/cli"
)

func main() {
	// Cancelling the context stops the server gracefully and aborts in-flight fetches
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx)
	stop()
	os.Exit(code)
}

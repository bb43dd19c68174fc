package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/idilsaglam/nottodo/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Run(ctx, os.Args[1:], cli.Options{})
	cancel()
	os.Exit(code)
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/motoki317/fetchstate/cmd/users/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := commands.Execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

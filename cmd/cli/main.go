package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/batyok32/shipyuusell-sub001/internal/client/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cli.Execute(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}

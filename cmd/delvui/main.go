package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	app, err := newAppContext()
	if err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "failed to load theme tokens: %v\n", err)
		os.Exit(1)
	}

	err = newRootCmd(app).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

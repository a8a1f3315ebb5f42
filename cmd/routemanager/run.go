package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/fx"
)

// lifecycle is the part of *fx.App that run drives.
type lifecycle interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Done() <-chan os.Signal
	Err() error
	StopTimeout() time.Duration
}

// run starts app, blocks until ctx is cancelled or fx asks to shut down, then
// stops it. The return value is the process exit code.
func run(ctx context.Context, app lifecycle, stderr io.Writer) int {
	if err := app.Err(); err != nil {
		fmt.Fprintf(stderr, "failed to build application: %v\n", err)
		return 1
	}
	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(stderr, "failed to start route manager: %v\n", err)
		return 1
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		fmt.Fprintf(stderr, "failed to stop route manager: %v\n", err)
		return 1
	}
	return 0
}

var _ lifecycle = (*fx.App)(nil)

// Command timer records lane times and DQ calls from the pool deck. Submissions
// made while the service is unreachable are kept in a local queue and sent later.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "timer:", err)
		stop()
		os.Exit(1)
	}
}

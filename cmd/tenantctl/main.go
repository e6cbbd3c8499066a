// Command tenantctl is the operator CLI for the control store: it
// bootstraps the super-admin and inspects or repairs tenant stores.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/logging"
)

func main() {
	logging.Setup(os.Getenv("LOG_LEVEL"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

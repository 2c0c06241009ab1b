package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Apurer/game-storefront/internal/app/storefront"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := storefront.Run(ctx); err != nil {
		log.Fatalf("storefront exited: %v", err)
	}
}

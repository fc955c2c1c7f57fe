package main

import (
	"context"
	"log"
	"mars-photos/internal/app"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	photosApp := app.InitApp()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := photosApp.StartApp(ctx)
	if err != nil {
		log.Fatalf("failed to start mars-photos: %v", err)
		return
	}

	<-ctx.Done()

	log.Println("Shutting down mars-photos...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := photosApp.StopApp(shutdownCtx); err != nil {
		log.Fatalf("failed to stop mars-photos gracefully: %v", err)
	}

	log.Println("Exited cleanly")
}

package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aouyang1/theframe/access"
	"github.com/aouyang1/theframe/api"
	"github.com/aouyang1/theframe/config"
	"github.com/aouyang1/theframe/library"
	"github.com/aouyang1/theframe/screen"
	"github.com/aouyang1/theframe/store"
	"github.com/aouyang1/theframe/thumbnail"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	database, err := store.NewDatabase(cfg.DatabasePath())
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Initialize local library scanner
	scanner, err := library.NewScanner(database, cfg.LibraryPath(), cfg.ScanInterval)
	if err != nil {
		log.Fatalf("Failed to initialize library scanner: %v", err)
	}
	go scanner.Run(ctx)

	if cfg.RemoteEnabled() {
		remoteSync, err := library.NewRemoteSync(ctx, cfg.AWSProfile, cfg.S3Bucket, cfg.LibraryPath(), cfg.RemoteSyncInterval, scanner)
		if err != nil {
			log.Fatalf("Failed to initialize remote sync: %v", err)
		}
		slog.Info("syncing cloud photos", "bucket", cfg.S3Bucket, "path", cfg.CloudPath())
		go remoteSync.Run(ctx)
	}

	lib := library.New(database, cfg.LibraryPath())
	loader := thumbnail.NewLoader(lib)
	gate := access.NewGate(database, lib.Root(), "/settings", cfg.AccessSettingsURL)

	screens := screen.NewManager(ctx, lib, loader, database)
	defer screens.Close()

	webServer := api.NewWebServer(gate, screens, lib, loader)
	webServer.Updated = scanner.Updated
	webServer.Start(ctx, cfg.ListenAddr)
}

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ogurasousui/hrms-sync/internal/platform/config"
	"github.com/ogurasousui/hrms-sync/internal/platform/server"
	"github.com/ogurasousui/hrms-sync/internal/stubauthority"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	defaultPath := os.Getenv("CONFIG_PATH")
	if defaultPath == "" {
		defaultPath = "assets/local.yaml"
	}
	configPath := flag.String("config", defaultPath, "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	authority := stubauthority.New(cfg.Stub.AuthToken)
	srv := server.New(cfg.Stub.ListenAddr, authority.Handler())

	log.Printf("stub authority listening on %s", cfg.Stub.ListenAddr)

	if err := srv.Run(ctx); err != nil {
		log.Fatalf("server stopped with error: %v", err)
	}
}

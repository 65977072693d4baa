package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	webpush "github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"

	"github.com/bjo163/pairlink/config"
	"github.com/bjo163/pairlink/internal/api"
	"github.com/bjo163/pairlink/internal/app"
	"github.com/bjo163/pairlink/internal/push"
	"github.com/bjo163/pairlink/internal/relay"
	"github.com/bjo163/pairlink/internal/storage"
	"github.com/bjo163/pairlink/internal/webserver"
)

var (
	configFile = flag.String("c", "/etc/pairlink.yml", "config file")
	initDb     = flag.Bool("initdb", false, "drop and recreate all tables, then exit")
	genVapid   = flag.Bool("genvapid", false, "generate a VAPID keypair, then exit")
	debug      = flag.Bool("x", false, "debug mode")
)

func main() {
	flag.Parse()

	if *genVapid {
		private, public, err := webpush.GenerateVAPIDKeys()
		if err != nil {
			fmt.Fprintf(os.Stderr, "generate vapid keys: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("VAPID_PUBLIC_KEY=%s\nVAPID_PRIVATE_KEY=%s\n", public, private)
		return
	}

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if *debug {
		cfg.System.Debug = true
		cfg.Database.Debug = true
		cfg.Logger.Mode = "development"
	}

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initDb {
		application.InitDb()
		zap.L().Info("database initialized")
		return
	}

	// Repositories
	db := application.DB()
	pairings := relay.NewGormPairingRepository(db)
	subs := relay.NewGormSubscriptionRepository(db)
	messages := relay.NewGormMessageRepository(db)
	prefsRepo := relay.NewGormPreferenceRepository(db)

	// Services
	maxWorkers := int(application.GetSettingsInt64Value("push", "max_workers"))
	maxPageSize := int(application.GetSettingsInt64Value("history", "max_page_size"))

	registry := relay.NewRegistry(pairings)
	directory := relay.NewDirectory(pairings, subs)
	ledger := relay.NewLedger(messages, prefsRepo, maxPageSize)
	prefs := relay.NewPrefs(pairings, prefsRepo)
	monitor := relay.NewMonitor(registry, directory)
	transport := push.NewWebPush(cfg.Push)
	dispatcher := relay.NewDispatcher(directory, ledger, prefsRepo, transport, maxWorkers)

	blobs, err := storage.New(cfg.Storage)
	if err != nil {
		zap.S().Fatalf("init storage: %v", err)
	}

	server := webserver.NewWebServer(*cfg)
	handler := api.NewHandler(registry, directory, dispatcher, ledger, prefs, monitor, blobs, cfg.Push)
	handler.Register(server.Echo())

	// Local blob store doubles as a static file root.
	if local, ok := blobs.(*storage.LocalStore); ok {
		server.Echo().Static(cfg.Storage.BaseURL, local.Dir())
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			zap.S().Errorf("web server error: %v", err)
		}
	case sig := <-sigCh:
		zap.L().Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			zap.S().Errorf("shutdown error: %v", err)
		}
	}
}

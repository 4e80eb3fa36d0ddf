package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"SolarSentinel/internal/config"
	"SolarSentinel/internal/notifier"
	"SolarSentinel/internal/portfolio"
	"SolarSentinel/internal/recorder"
	"SolarSentinel/internal/scheduler"
	"SolarSentinel/internal/verdict"

	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] SolarSentinel starting...")

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] load .env: %v", err)
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := portfolio.NewFileSource(cfg.Portfolio.File)
	if _, err := src.Load(); err != nil {
		log.Fatalf("[FATAL] load portfolio: %v", err)
	}
	log.Printf("[INFO] portfolio source: %s", src.Name())

	vt, err := verdict.NewTracker(cfg.State.File)
	if err != nil {
		log.Fatalf("[FATAL] init verdict tracker: %v", err)
	}

	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	rec := openRecorder(ctx, cfg)
	defer rec.Close()

	sched := scheduler.NewScheduler(ctx, portfolio.NewEvaluator(src), vt, tn, rec, cfg.Export.Dir)
	if err := sched.RegisterAll(cfg.Schedule.EvaluateCron, cfg.Schedule.DigestCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, evaluating portfolio now")
		go sched.RunEvaluationNow()
	}

	log.Println("[INFO] SolarSentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] SolarSentinel stopped")
}

// openRecorder picks the history backend; a backend that fails to open
// degrades to the noop recorder instead of stopping the daemon.
func openRecorder(ctx context.Context, cfg *config.Config) recorder.Recorder {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		pr, err := recorder.NewPostgresRecorder(ctx, cfg.Database.PostgresURL)
		if err != nil {
			log.Printf("[WARN] init postgres recorder failed, using noop: %v", err)
			return recorder.NewNoopRecorder()
		}
		return pr
	case config.DriverSQLite:
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			return recorder.NewNoopRecorder()
		}
		return sr
	default:
		return recorder.NewNoopRecorder()
	}
}

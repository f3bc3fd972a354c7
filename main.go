package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/VeranoAtelier/verano-web/config"
	"github.com/VeranoAtelier/verano-web/internal/router"
	_ "github.com/VeranoAtelier/verano-web/internal/router/handlers"
)

var (
	configPath = flag.String("c", "config.yaml", "Path to the configuration file (in YAML format)")
)

func main() {
	flag.Parse()

	cfg, err := config.InitConfig(*configPath)
	if err != nil {
		slog.Error("fail to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.SetLogLoggerLevel(cfg.LogLevel)
	slog.Info("starting verano-web server...")

	r, err := router.NewRouter(cfg)
	if err != nil {
		slog.Error("fail to initialize router", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err = r.InitRoutes(); err != nil {
		slog.Error("fail to initialize routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		slog.Info("shutting down verano-web server...")
		if err := r.Close(); err != nil {
			slog.Error("fail to shut down cleanly", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	if err = r.Listen(cfg.Listen); err != nil {
		slog.Error("server stopped with an error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

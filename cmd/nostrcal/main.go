package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okunev/nostrcal/internal/app"
	"github.com/okunev/nostrcal/internal/bridge"
	"github.com/okunev/nostrcal/internal/logger"
	"github.com/okunev/nostrcal/internal/outbox"
	"github.com/okunev/nostrcal/internal/query"
	"github.com/okunev/nostrcal/internal/relaybuilder"
	internalhttp "github.com/okunev/nostrcal/internal/server/http"
	log "github.com/sirupsen/logrus"
)

var configFile string

func init() {
	flag.StringVar(&configFile, "config", "./configs/config.yaml", "Path to configuration file")
	log.SetFormatter(&log.TextFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.WarnLevel)
}

func main() {
	flag.Parse()

	config, err := NewConfig(configFile)
	if err != nil {
		log.Errorf("failed to start %v", err)
		return
	}
	err = logger.PrepareLogger(config.Logger)
	if err != nil {
		log.Errorf("failed to start %v", err)
		return
	}
	store, err := relaybuilder.New(config.Relay)
	if err != nil {
		log.Errorf("failed to start %v", err)
		return
	}

	queue := outbox.New(config.Rabbit)
	if err := queue.Connect(); err != nil {
		log.Errorf("failed to connect to outbox queue: %v", err)
		return
	}
	defer queue.Close()

	planner := query.New(store, config.Query)
	nostrcal := app.New(planner, bridge.New(config.User, queue))
	server := internalhttp.NewServer(config.HTTPServer, nostrcal)

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer cancel()

	go func() {
		<-ctx.Done()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
		defer cancel()

		if err := server.Stop(ctx); err != nil {
			log.Error("failed to stop http server: " + err.Error())
		}
	}()

	log.Info("nostrcal is running...")

	if err := server.Start(ctx); err != nil {
		log.Error("failed to start http server: " + err.Error())
		cancel()
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
		defer cancel()
		err := store.Close(ctx)
		if err != nil {
			log.Errorf("failed to close relay store: %v", err)
		}
		os.Exit(1) //nolint:gocritic
	}
	ctx, cancel = context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()
	err = store.Close(ctx)
	if err != nil {
		log.Errorf("failed to close relay store: %v", err)
	}
}

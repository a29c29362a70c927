package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okunev/nostrcal/internal/entity"
	"github.com/okunev/nostrcal/internal/logger"
	"github.com/okunev/nostrcal/internal/outbox"
	"github.com/okunev/nostrcal/internal/relay"
	"github.com/okunev/nostrcal/internal/relaybuilder"
	log "github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

var configFile string

func init() {
	flag.StringVar(&configFile, "config", "./configs/publisher_config.yaml", "Path to configuration file")
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
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
		defer cancel()
		store.Close(ctx)
	}()

	queue := outbox.New(config.Rabbit)
	if err := queue.Connect(); err != nil {
		log.Errorf("failed to connect to outbox queue: %v", err)
		return
	}
	defer queue.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer cancel()

	queue.Consume(ctx, func(msg amqp.Delivery) {
		m := outbox.Message{}
		err := json.Unmarshal(msg.Body, &m)
		if err != nil {
			log.Errorf("failed to parse bytes: %s", err)
			return
		}
		if _, known := entity.Decode(m.Record); !known {
			log.Warnf("dropping record %q with unsupported kind %d", m.Record.ID, m.Record.Kind)
			return
		}

		err = store.Publish(ctx, m.Record)
		if errors.Is(err, relay.ErrDuplicateRecordID) {
			log.Debugf("record %q already stored", m.Record.ID)
			return
		}
		if err != nil {
			log.Errorf("failed to store record %q: %s", m.Record.ID, err)
			return
		}
		log.Printf("stored record %s (kind %d, origin %s)", m.Record.ID, m.Record.Kind, m.Origin)
	})
}

package relaybuilder

import (
	"context"
	"fmt"
	"time"

	"github.com/okunev/nostrcal/internal/relay"
	memoryrelay "github.com/okunev/nostrcal/internal/relay/memory"
	sqlrelay "github.com/okunev/nostrcal/internal/relay/sql"
)

type Config struct {
	StoreType string
	Database  sqlrelay.Config
}

// New builds the process-wide relay store. It is acquired once at
// startup and shared by every query, not reconstructed per fetch.
func New(config Config) (relay.Client, error) {
	switch config.StoreType {
	case "memory":
		return memoryrelay.New(), nil
	case "sql":
		s := sqlrelay.New(config.Database)
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		err := s.Connect(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database %s %d: %w", config.Database.Host, config.Database.Port, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store type %s", config.StoreType)
	}
}

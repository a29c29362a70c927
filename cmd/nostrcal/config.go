package main

import (
	"fmt"
	"strings"

	"github.com/okunev/nostrcal/internal/bridge"
	"github.com/okunev/nostrcal/internal/logger"
	"github.com/okunev/nostrcal/internal/outbox"
	"github.com/okunev/nostrcal/internal/query"
	"github.com/okunev/nostrcal/internal/relaybuilder"
	internalhttp "github.com/okunev/nostrcal/internal/server/http"
	"github.com/spf13/viper"
)

const envConfigPrefix = "$env:"

type Config struct {
	HTTPServer internalhttp.Config
	Logger     logger.Config
	Relay      relaybuilder.Config
	Query      query.Config
	Rabbit     outbox.Config
	User       bridge.User
}

func NewConfig(configFile string) (Config, error) {
	config := Config{}
	viper.SetConfigFile(configFile)

	viper.SetDefault("httpServer.host", "127.0.0.1")
	viper.SetDefault("httpServer.port", "8005")
	viper.SetDefault("logger.level", "WARN")
	viper.SetDefault("relay.storeType", "memory")
	viper.SetDefault("query.fetchTimeout", "10s")
	viper.SetDefault("query.resultLimit", "20")
	viper.SetDefault("rabbit.host", "127.0.0.1")
	viper.SetDefault("rabbit.port", "5672")
	viper.SetDefault("rabbit.user", "user")
	viper.SetDefault("rabbit.password", "pass")
	viper.SetDefault("rabbit.queue", "nostrcal.publish")

	err := viper.ReadInConfig()
	if err != nil {
		return config, fmt.Errorf("failed to read config %q: %w", configFile, err)
	}
	keys := viper.AllKeys()
	for _, key := range keys {
		env := viper.GetString(key)
		if strings.HasPrefix(env, envConfigPrefix) {
			err := viper.BindEnv(key, env[len(envConfigPrefix):])
			if err != nil {
				return Config{}, fmt.Errorf("failed to prepare config: %w", err)
			}
		}
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return config, fmt.Errorf("unable to decode into config struct: %w", err)
	}
	return config, nil
}

// Package compiler parses compiler service flags and launches the service.
package compiler

import (
	"context"
	"flag"

	entrypoint "github.com/louisbranch/spore-warriors-resources/internal/platform/cmd"
	server "github.com/louisbranch/spore-warriors-resources/internal/services/compiler/app"
)

// Config holds compiler command configuration.
type Config struct {
	Port int `env:"SPORE_WARRIORS_COMPILER_PORT" envDefault:"8095"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	err := entrypoint.ParseConfigWithFlags(&cfg, fs, args, func(fs *flag.FlagSet, cfg *Config) {
		fs.IntVar(&cfg.Port, "port", cfg.Port, "The compiler gRPC server port")
	})
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the compiler gRPC API service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceCompiler, func(ctx context.Context) error {
		return server.Run(ctx, cfg.Port)
	})
}

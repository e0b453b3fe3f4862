// Package main compiles resource documents into a bundle file.
package main

import (
	"context"
	"flag"
	"os"

	entrypoint "github.com/louisbranch/spore-warriors-resources/internal/platform/cmd"
	"github.com/louisbranch/spore-warriors-resources/internal/platform/config"
	resourcecompiler "github.com/louisbranch/spore-warriors-resources/internal/tools/compiler"
)

func main() {
	cfg, err := resourcecompiler.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := entrypoint.SignalContext(context.Background())
	defer stop()

	err = entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceResourceCompiler, func(ctx context.Context) error {
		return resourcecompiler.Run(ctx, cfg, os.Stdout)
	})
	if err != nil {
		stop()
		config.ExitCodef(config.ExitCodeFor(err), "Error: %v", err)
	}
}

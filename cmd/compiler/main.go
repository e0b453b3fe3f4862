// Package main starts the compiler gRPC service process lifecycle.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	compilercmd "github.com/louisbranch/spore-warriors-resources/internal/cmd/compiler"
	entrypoint "github.com/louisbranch/spore-warriors-resources/internal/platform/cmd"
)

func main() {
	cfg, err := compilercmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[COMPILER] ")
	ctx, stop := entrypoint.SignalContext(context.Background())
	defer stop()

	if err := compilercmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}

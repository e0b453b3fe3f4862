// Package timeouts defines shared timeout constants used across commands.
package timeouts

import "time"

// GRPCDial caps the wait for a gRPC peer to connect and report SERVING.
const GRPCDial = 5 * time.Second

// GRPCRequest caps a single compile or fetch request to the compiler service.
const GRPCRequest = 30 * time.Second

// Shutdown limits how long telemetry flushing may delay process exit.
const Shutdown = 5 * time.Second

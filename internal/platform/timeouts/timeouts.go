// Package timeouts defines shared timeout constants used across the storefront.
// Centralizing these values keeps server and probe durations discoverable.
package timeouts

import "time"

// HealthProbe caps a single gRPC health check call.
const HealthProbe = time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// TelemetryShutdown limits how long span exporters may flush on exit.
const TelemetryShutdown = 5 * time.Second

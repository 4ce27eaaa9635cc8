// cmd/confdump/main.go
//
// confdump – resolves the layered configuration and prints it.
//
// Start-up sequence
// -----------------
//
//  1. Load env vars (host-wide file → .env fallback) so dotenv entries are
//     part of the environment layer.
//
//  2. Parse flags; `-D key=value` fills the runtime-property store.
//
//  3. Start the logger (file sink when --log-dir is set, console on stderr
//     otherwise).
//
//  4. Build the resolver from the embedded application.properties and run
//     the sub-command: dump, get, or is.
//
//  5. Optionally dump Prometheus metrics (--metrics).
package main

import (
	"embed"
	"os"

	"github.com/joho/godotenv"
)

const serverEnvPath = "/usr/local/etc/confresolver/confdump.env"

//go:embed application.properties
var resources embed.FS

// loadEnv prefers the host-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stderr is a character device.
func runningInTTY() bool {
	fi, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { loadEnv() }

func main() {
	if err := newRootCommand(nil).Execute(); err != nil {
		os.Exit(1)
	}
}

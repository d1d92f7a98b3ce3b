// Command docseek searches a file archive by file name and document content.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/docseek/internal/adapters/driving/cli"
)

// version is set with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// A missing .env is fine; the real environment still applies.
	_ = godotenv.Load()

	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

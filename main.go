package main

import (
	"fmt"
	"os"

	"github.com/idelchi/formcipher/internal/commands"
	"github.com/idelchi/formcipher/internal/config"
)

// version is set at build time.
var version = "unknown - unofficial & generated by unknown"

func main() {
	cfg := &config.Config{}

	if err := commands.NewRootCommand(cfg, version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

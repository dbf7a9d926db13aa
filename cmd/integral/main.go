// Command integral integrates single-variable functions from the command
// line, over HTTP and over MCP.
//
// Usage:
//
//	integral definite "x**2" --a 0 --b 1 --method symbolic
//	integral indefinite "x*exp(x)" --verify
//	integral sample "sin(x)" --a 0 --b 3.14 --fill --json
//	integral serve --listen :8080
//	integral mcp --mode stdio
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.WithError(err).Error("integral failed")
		os.Exit(1)
	}
}

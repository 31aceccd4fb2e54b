// cmd/server/main.go is the thin entry point for the server binary.
// All boot logic lives in internal/server so the CLI and this binary
// share it.
package main

import (
	"log"

	"github.com/tracechain/tracechain/internal/server"
)

func main() {
	if err := server.Start(); err != nil {
		log.Fatal(err)
	}
}

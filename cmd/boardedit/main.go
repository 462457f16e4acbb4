// boardedit is a terminal PCB layout editor.
//
// Run: go run ./cmd/boardedit/
package main

import (
	"log"

	"github.com/wesen/boardedit/internal/commands"
)

func main() {
	if err := commands.New().Execute(); err != nil {
		log.Fatalf("error during command execution: %v", err)
	}
}

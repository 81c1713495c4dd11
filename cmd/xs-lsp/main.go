// Command xs-lsp runs the XS language server over stdio, following the
// original implementation's shape of building the analysis pipeline once
// and then serving requests until the client disconnects.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Divy1211/xs-check/internal/lsp"
)

func main() {
	// LSP clients read stdout as the message stream; diagnostics about the
	// server itself must never land there.
	log.SetOutput(os.Stderr)
	log.SetFlags(0)

	srv, err := lsp.NewServer(os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, "xs-lsp: fatal:", err)
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "xs-lsp: fatal:", err)
		os.Exit(1)
	}
}

// Package cli defines the chatfill commands and the flag state they share.
package cli

import (
	"sync"

	"github.com/spf13/cobra"
)

var (
	// NoTUI disables the chat and form interfaces so fill runs against
	// plain stdin/stdout. This is set by the global --no-tui flag.
	NoTUI bool

	// noTUIMutex protects NoTUI for concurrent access.
	noTUIMutex sync.RWMutex
)

// AddGlobalFlags registers the flags shared by every chatfill command.
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVar(&NoTUI, "no-tui", false,
		"answer placeholder questions on plain stdin/stdout instead of the chat or form interface")
}

// IsNoTUI reports whether the plain prompt fallback was requested.
func IsNoTUI() bool {
	noTUIMutex.RLock()
	defer noTUIMutex.RUnlock()
	return NoTUI
}

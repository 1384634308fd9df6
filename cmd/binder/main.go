// Package main provides the binder CLI, a local-first notes and
// collections tool backed by SQLite.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/binder-notes/binder/pkg/types"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "binder:", err)
		if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrInvalidReference) || errors.Is(err, types.ErrInvalidData) {
			os.Exit(exitUserError)
		}
		os.Exit(exitSysError)
	}
}

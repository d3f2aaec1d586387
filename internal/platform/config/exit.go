package config

import (
	"fmt"
	"os"
)

// Exitf prints a formatted error to stderr and terminates with exit code 1.
// The portal binaries share it as their single fatal-exit path.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

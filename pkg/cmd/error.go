package cmd

import (
	"fmt"
	"os"
)

// Error prints an error message to standard error.
func Error(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
}

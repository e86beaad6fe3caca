// Command gitnav steps a git working tree through its commit history.
package main

import (
	"os"

	"github.com/kilupskalvis/gitnav/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

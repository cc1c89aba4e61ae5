// Package main provides the tasks CLI.
package main

import (
	"os"

	"github.com/mesh-intelligence/tasklist/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}

// Package main is the entry point for the shukketsu CLI binary.
package main

import (
	"os"

	"shukketsu/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}

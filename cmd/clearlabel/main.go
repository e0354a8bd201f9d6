// Package main is the entrypoint for the clearlabel CLI.
package main

import (
	"github.com/clearlabel/clearlabel/cmd"
	"github.com/clearlabel/clearlabel/internal/contract"
	"github.com/clearlabel/clearlabel/internal/iocache"
)

func main() {
	err := cmd.Execute()

	// Run cleanup before any exit; LogFatal skips deferred calls.
	cmd.Shutdown()
	iocache.CloseStores()

	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}

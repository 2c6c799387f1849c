// main is the command-line entry point for the plotsense CLI.
package main

import (
	"github.com/plotsense/plotsense/cmd"
	"github.com/plotsense/plotsense/internal/contract"
	"github.com/plotsense/plotsense/internal/iocache"
)

func main() {
	cmd.SetStoreManager(iocache.Manager)
	defer iocache.CloseTracking()

	if err := cmd.Execute(); err != nil {
		// Close explicitly: LogFatal exits and skips deferred calls.
		iocache.CloseTracking()
		contract.LogFatal("Command failed", err)
	}
}

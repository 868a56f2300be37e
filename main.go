// Package main is the entry point for the capsule CLI.
package main

import (
	"github.com/huangsam/capsule/cmd"
	"github.com/huangsam/capsule/internal/contract"
	"github.com/huangsam/capsule/internal/iocache"
)

func main() {
	cmd.SetStoreManager(iocache.Manager)

	err := cmd.Execute()
	iocache.CloseStore()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Cannot stop profiling", stopErr)
	}
	if err != nil {
		contract.LogFatal("Error executing command", err)
	}
}

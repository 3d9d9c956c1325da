// hingegen computes up-and-over box hinge pivot layouts.
//
// Build:
//
//	go build -o hingegen ./cmd/hingegen
//
// Cross-compile:
//
//	GOOS=windows GOARCH=amd64 go build -o hingegen.exe ./cmd/hingegen
//	GOOS=darwin  GOARCH=arm64 go build -o hingegen-darwin ./cmd/hingegen
package main

import (
	"os"

	"github.com/hugogrimmett/hinge-generator-sub000/internal/cli"
)

var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fortifile/fortifile/internal/cli"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	root := cli.NewRootCmd(cli.VersionInfo{
		Version: buildVersion,
		Commit:  buildCommit,
		Date:    buildDate,
	})
	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

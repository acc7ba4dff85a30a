// Command doccompare walks a directory tree and compares every same-folder
// pair of XML or PDF files, writing a per-pair report next to the inputs and
// a summary at the end of the run.
package main

import (
	"flag"
	"fmt"
	"os"

	"doccompare/internal/config"
	"doccompare/internal/logger"
	"doccompare/internal/runner"
)

func main() {
	configPath := flag.String("config", "", "path to the configuration file (default: ./doccompare.yaml)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logger.Init(*debug)

	settings, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger.L().WithField("root", settings.RootPath).
		WithField("exclusions", len(settings.Exclusions)).
		Info("starting comparison run")

	stats, err := runner.New(settings).Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	runner.WriteSummary(os.Stdout, stats)

	if manifestPath, err := runner.WriteManifest(settings.RootPath, stats); err != nil {
		logger.L().Warnf("unable to write run summary manifest: %v", err)
	} else {
		logger.L().WithField("manifest", manifestPath).Info("run summary manifest written")
	}
}

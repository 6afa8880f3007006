package main

import (
	"fmt"
	"os"
	"time"

	"github.com/meteoswiss-mdr/goesmirror/internal/config"
)

// Exit codes
const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitInvalidArgs  = 2
	ExitStorageError = 3
	ExitVerifyFailed = 4
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return ExitInvalidArgs
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "mirror":
		return runMirror(cmdArgs)
	case "verify":
		return runVerify(cmdArgs)
	case "organize":
		return runOrganize(cmdArgs)
	case "help", "-h", "--help":
		printUsage()
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		return ExitInvalidArgs
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: goesmirror <command> [options]

Commands:
  mirror    Synchronize a local directory with the GOES-R archive
  verify    Check a local mirror against the archive without downloading
  organize  Move an existing directory of GOES-R files into the mirror layout

Run 'goesmirror <command> -h' for command-specific help.`)
}

// timeFormats are the accepted -start/-end formats, most specific first.
var timeFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q (want RFC3339 or YYYY-MM-DD[THH:MM])", s)
}

// loadConfig merges the optional config file with environment overrides.
func loadConfig(path string) (config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		cfg, err = config.LoadFromFile(path)
		if err != nil {
			return config.Config{}, err
		}
	}
	if err := cfg.LoadFromEnv(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/cmcleod/classpulse/internal/walkthrough"
)

// Default configuration constants.
const (
	defaultSubmissions = 25
	defaultSeed        = 1
	defaultRunTimeout  = 2 * time.Minute
)

func main() {
	var (
		submissions = flag.Int("submissions", defaultSubmissions, "Number of scripted reviews to submit")
		seed        = flag.Int64("seed", defaultSeed, "Seed for the scripted random source")
		transcript  = flag.String("transcript", "", "Output file for the transcript (default: walkthrough_transcript_TIMESTAMP.json)")
		logFile     = flag.String("log", "", "Log file for walkthrough output (default: walkthrough_log_TIMESTAMP.log)")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		help        = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		walkthrough.ShowHelp()
		return
	}

	// Setup logging
	if err := walkthrough.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	// Create walkthrough configuration
	config := &walkthrough.Config{
		Submissions:    *submissions,
		Seed:           *seed,
		TranscriptPath: *transcript,
		LogFile:        *logFile,
		Verbose:        *verbose,
	}

	// Run the walkthrough
	if err := walkthrough.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Walkthrough failed: " + err.Error() + "\n")
		return
	}
}

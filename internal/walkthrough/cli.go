package walkthrough

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/cmcleod/classpulse/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	// Initialize the logger first
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "walkthrough_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the walkthrough tool.
func ShowHelp() {
	os.Stdout.WriteString(`ClassPulse Walkthrough Tool
===========================

A scripted driver that exercises the feedback widget end to end and
verifies the derived aggregates against its own transcript.

Usage:
  go run cmd/walkthrough/main.go [options]

Options:
  -submissions int
        Number of scripted reviews to submit (default 25)
  -seed int
        Seed for the scripted random source (default 1)
  -transcript string
        Output file for the transcript (default: walkthrough_transcript_TIMESTAMP.json)
  -log string
        Log file for walkthrough output (default: walkthrough_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Walk through with default settings
  go run cmd/walkthrough/main.go

  # Longer run on a different script
  go run cmd/walkthrough/main.go -submissions 200 -seed 7

  # Keep the transcript somewhere specific
  go run cmd/walkthrough/main.go -transcript out/reviews.json

  # Include rating statistics and a metrics snapshot
  go run cmd/walkthrough/main.go -verbose
`)
}

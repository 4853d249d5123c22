package cli

import (
	"fmt"
	"log"
	"time"

	"github.com/schollz/progressbar/v3"
)

// CLIProgressReporter implements progress reporting with progress bars.
type CLIProgressReporter struct {
	quiet   bool
	fileBar *progressbar.ProgressBar
}

// NewCLIProgressReporter creates a new CLI progress reporter.
func NewCLIProgressReporter(quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{quiet: quiet}
}

func (c *CLIProgressReporter) OnDiscoveryComplete(schemaFiles int) {
	if c.quiet {
		return
	}
	log.Printf("Found %d schema file(s)\n", schemaFiles)
}

func (c *CLIProgressReporter) OnFileStart(totalFiles int) {
	if c.quiet || totalFiles == 0 {
		return
	}
	c.fileBar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetDescription("Compiling schemas"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionClearOnFinish(),
	)
}

func (c *CLIProgressReporter) OnFileDone(processed, totalFiles int, fileName string) {
	if c.quiet || c.fileBar == nil {
		return
	}
	c.fileBar.Describe(fmt.Sprintf("Compiling %s", fileName))
	c.fileBar.Add(1)
}

func (c *CLIProgressReporter) OnRunComplete(classes, skippedInputs int, duration time.Duration) {
	if c.quiet {
		return
	}
	if c.fileBar != nil {
		c.fileBar.Finish()
	}
	log.Printf("Generated %d class(es) in %s (%d input(s) unchanged)\n",
		classes, duration.Round(time.Millisecond), skippedInputs)
}

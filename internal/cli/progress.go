package cli

import (
	"log"

	"github.com/schollz/progressbar/v3"
)

// cliProgressReporter renders pipeline progress with a progress bar.
type cliProgressReporter struct {
	quiet bool
	bar   *progressbar.ProgressBar
}

func newCLIProgressReporter(quiet bool) *cliProgressReporter {
	return &cliProgressReporter{quiet: quiet}
}

func (c *cliProgressReporter) OnAnalysisStart(totalFiles int) {
	if c.quiet {
		return
	}
	c.bar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetDescription("Analyzing files"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
	)
}

func (c *cliProgressReporter) OnFileAnalyzed(processed, total int, path string) {
	if c.quiet || c.bar == nil {
		return
	}
	_ = c.bar.Add(1)
}

func (c *cliProgressReporter) OnAnalysisComplete(entities, chunks int) {
	if c.quiet {
		return
	}
	if c.bar != nil {
		_ = c.bar.Finish()
	}
	log.Printf("Extracted %d entities into %d chunks\n", entities, chunks)
}

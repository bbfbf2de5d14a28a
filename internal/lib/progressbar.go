package lib

import (
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// NewProgressBar returns a byte progress bar sized for an 80-column terminal.
// A size of -1 renders a spinner for streams of unknown length.
func NewProgressBar(size int64, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions64(size,
		progressbar.OptionSetDescription(description+":"),
		progressbar.OptionSetWriter(progressWriter),
		progressbar.OptionSetWidth(20), // Fit in an 80-column terminal.
		progressbar.OptionShowBytes(true),
		progressbar.OptionUseIECUnits(true),
		progressbar.OptionShowCount(), // Show number of bytes moved.
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionShowTotalBytes(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
	)
}

// progressWriter is where progress bars render. Tests silence it.
var progressWriter io.Writer = os.Stderr

// SetProgressWriter redirects progress bars, e.g. to io.Discard for quiet runs.
func SetProgressWriter(w io.Writer) {
	progressWriter = w
}

package reporters

import (
	"context"

	"github.com/reaandrew/findingsexport/core"
)

// Reporter writes a header row followed by the projected rows to a
// destination. Implementations replace whatever the destination held before.
type Reporter interface {
	Report(ctx context.Context, header []string, rows []core.Row) error
	Destination() string
}

func destinationError(destination string, err error) error {
	return &core.DestinationWriteError{Destination: destination, Err: err}
}

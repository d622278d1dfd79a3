package engine

import (
	"fmt"
	"io"
	"log/slog"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// seqIDs returns an IDFunc yielding id-1, id-2, ...
func seqIDs() IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func intPtr(n int) *int { return &n }

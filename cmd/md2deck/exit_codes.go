package main

import (
	"context"
	"errors"

	md2deck "github.com/alnah/go-md2deck"
	"github.com/alnah/go-md2deck/internal/assets"
	"github.com/alnah/go-md2deck/internal/hints"
)

// Exit codes for the md2deck CLI. Every failure exits 1.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// exitCodeFor returns the exit code for an error.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return ExitFailure
}

// hintFor returns an actionable suffix for well-known errors, or "".
// Config lookup hints are added where the searched paths are known.
func hintFor(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, md2deck.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, md2deck.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.StyleNames())
	case errors.Is(err, md2deck.ErrInvalidFormat):
		return hints.ForOutputFormat()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}

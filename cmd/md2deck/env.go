package main

import (
	"context"
	"io"
	"os"
	"time"

	md2deck "github.com/alnah/go-md2deck"
)

// deckConverter is the part of md2deck.Converter the CLI uses.
type deckConverter interface {
	Convert(ctx context.Context, input md2deck.Input) (*md2deck.ConvertResult, error)
	Close() error
}

// Compile-time interface implementation check.
var _ deckConverter = (*md2deck.Converter)(nil)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now          func() time.Time
	Stdout       io.Writer
	Stderr       io.Writer
	Getenv       func(string) string
	Environ      func() []string
	NewConverter func(opts ...md2deck.Option) (deckConverter, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		Environ: os.Environ,
		NewConverter: func(opts ...md2deck.Option) (deckConverter, error) {
			return md2deck.NewConverter(opts...)
		},
	}
}

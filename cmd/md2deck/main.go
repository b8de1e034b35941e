package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain runs the CLI and returns the exit code. Failures print a single
// "md2deck: <message>" line on stderr.
func runMain(args []string, env *Environment) int {
	if len(args) > 0 {
		args = args[1:]
	}

	flags, err := parseFlags(args)
	if err != nil {
		return fail(env, err)
	}
	if flags.help {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	if flags.version {
		fmt.Fprintf(env.Stdout, "md2deck %s\n", Version)
		return ExitSuccess
	}

	// maxprocs.Set only fails on an invalid GOMAXPROCS, where runtime
	// defaults apply.
	logf := func(string, ...interface{}) {}
	if flags.common.verbose {
		logf = func(format string, args ...interface{}) {
			fmt.Fprintf(env.Stderr, format+"\n", args...)
		}
	}
	undo, _ := maxprocs.Set(maxprocs.Logger(logf))
	defer undo()

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runConvert(ctx, flags, env); err != nil {
		return fail(env, err)
	}
	return ExitSuccess
}

// fail prints err with its hint and returns the exit code.
func fail(env *Environment, err error) int {
	fmt.Fprintf(env.Stderr, "md2deck: %v%s\n", err, hintFor(err))
	return exitCodeFor(err)
}

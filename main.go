// Package main is the repoexplain command. Given a GitHub repository it
// fetches the README and prints what the project does, what it is built
// with, how to run it and what the documentation is missing.
//
// Usage:
//
//	repoexplain explain pallets/flask
//	repoexplain explain https://github.com/pallets/flask --markdown --render
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/UnitVectorY-Labs/repoexplain/internal/models"
	"github.com/joho/godotenv"
)

// Exit codes.
const (
	exitOK           = 0
	exitFailure      = 1
	exitInvalidUsage = 2
)

func main() {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI with args and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCode(err)
	}
	return exitOK
}

func exitCode(err error) int {
	if errors.Is(err, models.ErrInvalidReference) {
		return exitInvalidUsage
	}
	return exitFailure
}

// Package runner orchestrates linting across many files: discovery,
// a worker pool, and deterministic result aggregation.
package runner

import "github.com/yaklabco/prelint/pkg/config"

// Options controls a multi-file run.
type Options struct {
	// Paths are the user-specified files or directories to process.
	// Empty defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory for resolving relative Paths and
	// ignore patterns. Empty means the process working directory.
	WorkingDir string

	// ExcludeGlobs are glob patterns for files and directories to skip,
	// merged from config ignore rules and the command line.
	ExcludeGlobs []string

	// Jobs is the maximum number of concurrent workers. Zero or
	// negative means one per CPU.
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// effectivePaths returns the paths to process, defaulting to ".".
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

package lint

import (
	"context"
	"fmt"

	"github.com/yaklabco/prelint/pkg/config"
	"github.com/yaklabco/prelint/pkg/fsutil"
)

// PipelineResult is the outcome of processing one file end to end.
type PipelineResult struct {
	*FileResult

	// Written is true when the fixed content was written back.
	Written bool

	// BackedUp is true when a sidecar backup was created before writing.
	BackedUp bool
}

// Pipeline reads files, lints them, and writes fixes back safely.
type Pipeline struct {
	engine *Engine
	cfg    *config.Config
}

// NewPipeline creates a Pipeline around an engine and configuration.
func NewPipeline(engine *Engine, cfg *config.Config) *Pipeline {
	return &Pipeline{engine: engine, cfg: cfg}
}

// ProcessFile lints one file from disk. When fixing produced changes and
// dry-run is off, the file is snapshotted at read time, checked for
// external modification, optionally backed up, and rewritten atomically.
func (p *Pipeline) ProcessFile(ctx context.Context, path string) (*PipelineResult, error) {
	content, snap, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	fileResult, err := p.engine.LintFile(ctx, path, content, p.cfg)
	if err != nil {
		if fileResult != nil {
			return &PipelineResult{FileResult: fileResult}, err
		}
		return nil, err
	}

	result := &PipelineResult{FileResult: fileResult}
	if !fileResult.Modified || p.cfg.DryRun {
		return result, nil
	}

	modified, err := fsutil.Modified(ctx, snap)
	if err != nil {
		return result, err
	}
	if modified {
		return result, fmt.Errorf("%s: file changed during linting, not writing fixes", path)
	}

	if p.cfg.Backups.Enabled && !p.cfg.NoBackups {
		backedUp, err := fsutil.CreateBackup(ctx, path)
		if err != nil {
			return result, err
		}
		result.BackedUp = backedUp
	}

	if err := fsutil.WriteAtomic(ctx, path, []byte(fileResult.Fixed), snap.Mode); err != nil {
		return result, err
	}
	result.Written = true

	return result, nil
}

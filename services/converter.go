package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"ytconv/types"
)

// Engine is the external extraction capability: given a URL it can resolve
// metadata without downloading, and given a URL plus a resolved directive it
// produces a file in the output directory while emitting progress events.
type Engine interface {
	FetchInfo(ctx context.Context, url string) (types.VideoInfo, error)
	Download(ctx context.Context, url string, directive types.FormatDirective, progress func(types.ProgressEvent)) error
}

// ErrOutputNotFound marks a download that reported success without leaving a
// discoverable file behind. Kept distinct from execution errors so operators
// can tell "tool failed" from "tool produced nothing".
var ErrOutputNotFound = errors.New("downloaded file not found")

// Transfer progress is mapped into 0-80, post-processing pins 85, and the
// final stretch is reserved for the worker's own completion bookkeeping.
const (
	transferProgressCap   = 80
	postProcessCheckpoint = 85
	startingProgress      = 10
)

// Converter executes conversion jobs off the request path.
type Converter struct {
	store   JobStore
	engine  Engine
	policy  FormatPolicy
	locator OutputLocator
}

// NewConverter creates a converter writing artifacts into outputDir.
func NewConverter(store JobStore, engine Engine, outputDir string) *Converter {
	return &Converter{
		store:   store,
		engine:  engine,
		policy:  FormatPolicy{OutputDir: outputDir},
		locator: OutputLocator{Dir: outputDir},
	}
}

// Run executes a single job to completion. It is invoked exactly once per
// job, on its own goroutine: every failure is recorded on the job record
// instead of being returned, and nothing here may take down the service.
func (c *Converter) Run(ctx context.Context, jobID, url string, format types.Format) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Job %s: worker panic: %v", jobID, r)
			c.store.Fail(jobID, "internal error")
		}
	}()

	info, err := c.engine.FetchInfo(ctx, url)
	if err != nil {
		log.Printf("Job %s failed: %v", jobID, err)
		c.store.Fail(jobID, err.Error())
		return
	}

	c.store.SetTitle(jobID, info.Title)
	c.store.SetProcessing(jobID, startingProgress, "Starting download...")

	directive := c.policy.Resolve(format, url)

	err = c.engine.Download(ctx, url, directive, func(evt types.ProgressEvent) {
		if evt.Finished {
			c.store.SetProgress(jobID, postProcessCheckpoint, "Processing...")
			return
		}
		scaled := int(evt.Percent * 0.8)
		if scaled > transferProgressCap {
			scaled = transferProgressCap
		}
		c.store.SetProgress(jobID, scaled, fmt.Sprintf("Downloading... %.1f%%", evt.Percent))
	})
	if err != nil {
		log.Printf("Job %s failed: %v", jobID, err)
		c.store.Fail(jobID, err.Error())
		return
	}

	// The tool can exit cleanly without producing output; that still counts
	// as a failure here.
	path, ok := c.locator.Locate(info.VideoID, format, directive.Ext)
	if !ok {
		log.Printf("Job %s failed: %v", jobID, ErrOutputNotFound)
		c.store.Fail(jobID, ErrOutputNotFound.Error())
		return
	}

	c.store.Complete(jobID, path)
	log.Printf("Job %s completed successfully", jobID)
}

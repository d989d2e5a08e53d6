/*
NAME
  palcomb.go

DESCRIPTION
  palcomb.go dispatches filter.PALCombFilter across a run of decoded PAL
  fields through pipeline/workerpool, mirroring original_source/tools/
  ld-comb-pal/palcombfilter.cpp's process(), which hands a batch of
  frames to a fixed-size vector of FilterThreads and writes each one's
  result to the output file in frame order once every thread in the
  batch has finished (palcombfilter.cpp:131-175). The worker pool here
  generalises that to any number of fields and any number of workers,
  keeping the same in-order-drain guarantee without the fixed-batch
  bookkeeping the original needed to size its thread vector per round.

LICENSE
  Copyright (c) the ld-decode contributors. Licensed under the MIT license
  that can be found in the LICENSE file.
*/

package pipeline

import (
	"github.com/ld-decode/ldcore/container/video"
	"github.com/ld-decode/ldcore/filter"
	"github.com/ld-decode/ldcore/pipeline/workerpool"
)

// PALCombResult is one field's comb-separated output, carried through
// the worker pool keyed by its original field index.
type PALCombResult struct {
	Luma   video.Field
	Chroma [][]int16
}

// SeparatePALFields runs filter.PALCombFilter over every PAL field in
// fields using numWorkers workers, preserving field order in the
// returned slice regardless of completion order. NTSC fields pass
// through SeparateField unchanged, with a nil Chroma plane.
func SeparatePALFields(fields []video.Field, numWorkers int) []PALCombResult {
	results := make([]PALCombResult, len(fields))

	jobs := make([]workerpool.Job, len(fields))
	for i, f := range fields {
		jobs[i] = workerpool.Job{FrameNumber: i, Data: f}
	}

	pool := workerpool.New(jobs, func(frameNumber int, result interface{}) {
		results[frameNumber] = result.(PALCombResult)
	})

	if numWorkers < 1 {
		numWorkers = 1
	}
	comb := filter.NewPALCombFilter()
	pool.Run(numWorkers, func(workerID int, job workerpool.Job) interface{} {
		luma, chroma := comb.SeparateField(job.Data.(video.Field))
		return PALCombResult{Luma: luma, Chroma: chroma}
	})

	return results
}

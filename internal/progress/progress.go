// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package progress defines the progress-reporting collaborator a long
// compression run (§6.3, §9 "compression of large graphs may run for
// minutes to hours") reports through, plus the two implementations bvgraph
// ships: a no-op (the default) and a github.com/sirupsen/logrus-backed one
// for hosts that want structured field logging around each phase.
package progress

// Logger receives phase transitions and periodic counters during a
// compress or decompress run. Every method must be safe to call from the
// goroutines compress.go's parallel range workers run on.
type Logger interface {
	// Start announces the beginning of a named phase (e.g. "compress",
	// "offsets") over an expected total unit count (nodes, typically).
	Start(phase string, total int64)
	// Update reports done out of the total passed to the most recent
	// Start for phase.
	Update(phase string, done int64)
	// Done announces a phase's completion.
	Done(phase string)
}

// noopLogger discards every call; it is the default when
// CompressOptions.Progress is nil, so progress reporting never changes
// compress/decompress output.
type noopLogger struct{}

func (noopLogger) Start(string, int64)  {}
func (noopLogger) Update(string, int64) {}
func (noopLogger) Done(string)          {}

// NoOp is the zero-cost Logger used when a caller supplies none.
var NoOp Logger = noopLogger{}

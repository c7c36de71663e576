// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package progress

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNoOp(t *testing.T) {
	// Must not panic; there is nothing else to assert about a discard sink.
	NoOp.Start("compress", 100)
	NoOp.Update("compress", 50)
	NoOp.Done("compress")
}

func TestLogrusLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetLevel(logrus.DebugLevel)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	l := NewLogrus(log)
	l.Start("compress", 1000)
	l.Update("compress", 500)
	l.Done("compress")

	out := buf.String()
	for _, want := range []string{"phase=compress", "total=1000", "done=500", "phase started", "phase done"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %q:\n%s", want, out)
		}
	}
}

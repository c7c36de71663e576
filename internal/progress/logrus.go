// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package progress

import (
	"github.com/sirupsen/logrus"
)

// logrusLogger reports phase transitions as structured logrus entries with
// "phase", "done" and "total" fields, the same field-per-dimension style
// used around long-running pipelines elsewhere in the corpus this package
// is modeled on.
type logrusLogger struct {
	log *logrus.Logger
}

// NewLogrus wraps log (nil selects logrus.StandardLogger) as a Logger.
func NewLogrus(log *logrus.Logger) Logger {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &logrusLogger{log: log}
}

func (l *logrusLogger) Start(phase string, total int64) {
	l.log.WithFields(logrus.Fields{"phase": phase, "total": total}).Info("phase started")
}

func (l *logrusLogger) Update(phase string, done int64) {
	l.log.WithFields(logrus.Fields{"phase": phase, "done": done}).Debug("phase progress")
}

func (l *logrusLogger) Done(phase string) {
	l.log.WithFields(logrus.Fields{"phase": phase}).Info("phase done")
}

package storage

import (
	"os"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/gravbox/internal/sim"
)

// StepLogger is a sim.Observer that appends one summary record per
// completed step to a CSV file, in step order. The header is written
// once; reopening an existing log keeps appending without a second
// header.
type StepLogger struct {
	file      *os.File
	hasHeader bool
	err       error
}

func NewStepLogger(path string) (*StepLogger, error) {
	info, err := os.Stat(path)
	exists := err == nil && info.Size() > 0

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	return &StepLogger{file: f, hasHeader: exists}, nil
}

func (l *StepLogger) OnStep(snap sim.Snapshot) {
	if l.err != nil {
		return
	}

	records := []sim.StepRecord{snap.Record()}
	if l.hasHeader {
		l.err = gocsv.MarshalWithoutHeaders(records, l.file)
	} else {
		l.err = gocsv.Marshal(records, l.file)
		l.hasHeader = true
	}
}

// Err reports the first write failure, if any. The observer interface
// has no error return, so failures are sticky and surfaced here.
func (l *StepLogger) Err() error { return l.err }

func (l *StepLogger) Close() error {
	if err := l.file.Close(); err != nil {
		return err
	}
	return l.err
}

// Package logger provides a deduplicating wrapper around the standard
// logger. Search requests arrive on every keystroke of a client, so logging
// each one verbatim floods the output with identical lines; Dedup collapses
// consecutive repeats into a single line with a repeat count.
package logger

import (
	"fmt"
	"log"
	"sync"
	"time"
)

const defaultFlushDelay = 2 * time.Second

var std = NewDeduplicator(defaultFlushDelay)

// Dedup logs through the package-level deduplicator.
func Dedup(format string, args ...any) {
	std.Printf(format, args...)
}

// Deduplicator collapses consecutive identical messages. A message is held
// for flushDelay; repeats arriving within the window bump a counter instead
// of producing new lines.
type Deduplicator struct {
	mu         sync.Mutex
	lastMsg    string
	count      int
	flushDelay time.Duration
	timer      *time.Timer
}

func NewDeduplicator(flushDelay time.Duration) *Deduplicator {
	return &Deduplicator{flushDelay: flushDelay}
}

// Printf logs the formatted message, suppressing consecutive duplicates.
func (d *Deduplicator) Printf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	d.mu.Lock()
	defer d.mu.Unlock()

	if msg != d.lastMsg {
		d.flushLocked()
		d.lastMsg = msg
	}
	d.count++
	d.rearmLocked()
}

func (d *Deduplicator) rearmLocked() {
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.flushDelay, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.flushLocked()
		d.lastMsg = ""
	})
}

func (d *Deduplicator) flushLocked() {
	switch {
	case d.count == 1:
		log.Print(d.lastMsg)
	case d.count > 1:
		log.Printf("%s (%d)", d.lastMsg, d.count)
	}
	d.count = 0
}

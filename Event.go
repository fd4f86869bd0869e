/*
Copyright 2011-2026 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package entropylab

import (
	"fmt"
	"time"
)

const (
	// EvtExperimentStart fires once, before the first symbol of an
	// experiment is processed.
	EvtExperimentStart = 0
	// EvtProgress fires periodically while a long experiment runs (e.g.
	// the windowed-static-Huffman driver, once per window).
	EvtProgress = 1
	// EvtExperimentEnd fires once the Report for an experiment is ready.
	EvtExperimentEnd = 2
)

// Event reports progress of a single named experiment run by the driver.
// It plays the same role kanzi's compression Event does for block stages,
// adapted to report on experiment phases instead.
type Event struct {
	eventType int
	name      string
	processed uint64
	total     uint64
	eventTime time.Time
	msg       string
}

// NewEvent creates an Event for experiment name at the given processed/total
// symbol counts.
func NewEvent(evtType int, name string, processed, total uint64) *Event {
	return &Event{eventType: evtType, name: name, processed: processed, total: total, eventTime: time.Now()}
}

// NewEventFromString wraps a pre-formatted message, used for EvtExperimentEnd
// where the message is the Report's textual summary.
func NewEventFromString(evtType int, name, msg string) *Event {
	return &Event{eventType: evtType, name: name, msg: msg, eventTime: time.Now()}
}

// Type returns the event type.
func (e *Event) Type() int { return e.eventType }

// Name returns the experiment name that produced this event.
func (e *Event) Name() string { return e.name }

// Processed returns the number of symbols processed so far.
func (e *Event) Processed() uint64 { return e.processed }

// Total returns the expected number of symbols, if known (0 otherwise).
func (e *Event) Total() uint64 { return e.total }

// Time returns when the event was created.
func (e *Event) Time() time.Time { return e.eventTime }

// String renders a one-line human-readable summary of the event.
func (e *Event) String() string {
	if len(e.msg) > 0 {
		return e.msg
	}

	switch e.eventType {
	case EvtExperimentStart:
		return fmt.Sprintf("[%s] start", e.name)
	case EvtProgress:
		if e.total > 0 {
			return fmt.Sprintf("[%s] %d/%d symbols (%.1f%%)", e.name, e.processed, e.total, 100*float64(e.processed)/float64(e.total))
		}
		return fmt.Sprintf("[%s] %d symbols", e.name, e.processed)
	case EvtExperimentEnd:
		return fmt.Sprintf("[%s] done", e.name)
	default:
		return fmt.Sprintf("[%s] event %d", e.name, e.eventType)
	}
}

// Listener is implemented by anything that wants to observe experiment
// progress. cmd/entropylab's default stdout printer is the only
// implementation in this repository; it is deliberately kept outside the
// core so that entropy/bitstream never depend on presentation.
type Listener interface {
	ProcessEvent(evt *Event)
}

package logging

import (
	"bytes"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/coltab/coltab/internal/pubsub"
	"github.com/coltab/coltab/internal/resource"
	"github.com/go-logfmt/logfmt"
)

// writer is a slog TextHandler writer that both keeps the log records in
// memory and emits them as events.
type writer struct {
	messages []Message
	mu       sync.Mutex

	broker *pubsub.Broker[Message]
	serial uint
}

func (w *writer) Write(p []byte) (int, error) {
	msgs, err := w.decode(p)
	if err != nil {
		return 0, err
	}
	// Publish outside of the lock.
	for _, msg := range msgs {
		w.broker.Publish(resource.CreatedEvent, msg)
	}
	return len(p), nil
}

func (w *writer) decode(p []byte) ([]Message, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	msgs := make([]Message, 0, 1)
	d := logfmt.NewDecoder(bytes.NewReader(p))
	for d.ScanRecord() {
		msg := Message{Serial: w.serial}
		for d.ScanKeyval() {
			switch string(d.Key()) {
			case "time":
				parsed, err := time.Parse(time.RFC3339, string(d.Value()))
				if err != nil {
					return nil, fmt.Errorf("parsing time: %w", err)
				}
				msg.Time = parsed
			case "level":
				msg.Level = string(d.Value())
			case "msg":
				msg.Message = string(d.Value())
			default:
				msg.Attributes = append(msg.Attributes, Attr{
					Key:   string(d.Key()),
					Value: string(d.Value()),
				})
			}
		}
		msgs = append(msgs, msg)
		w.serial++
	}
	if d.Err() != nil {
		return nil, d.Err()
	}
	w.messages = append(w.messages, msgs...)
	return msgs, nil
}

func (w *writer) list() []Message {
	w.mu.Lock()
	defer w.mu.Unlock()

	return slices.Clone(w.messages)
}

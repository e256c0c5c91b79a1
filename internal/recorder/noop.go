package recorder

import "github.com/Jamesduongrx/Stock-Chatbot/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordExchange(_ *model.Exchange) error { return nil }
func (n *NoopRecorder) Close() error                           { return nil }

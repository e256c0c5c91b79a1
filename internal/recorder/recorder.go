package recorder

import "github.com/Jamesduongrx/Stock-Chatbot/internal/model"

// Recorder persists completed exchanges for offline review. It is an
// append-only transcript: nothing reads it back while answering, so it is
// not a cross-query cache.
type Recorder interface {
	RecordExchange(ex *model.Exchange) error
	Close() error
}

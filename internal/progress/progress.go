package progress

import (
	"fmt"
	"io"
)

// EventType tags the kinds of human-facing progress lines a run can emit.
type EventType int

const (
	EventInfo EventType = iota
	EventLanguageStart
	EventLanguageDone
	EventError
	EventComplete
)

// Event is the human-facing rendering of one Frame, produced by AsEvent.
type Event struct {
	Type     EventType
	Message  string
	Language string
	Count    int
}

// Handler renders an Event to its output medium.
type Handler interface {
	Handle(event Event)
}

// SimpleHandler writes one line per event, with no nesting.
type SimpleHandler struct {
	writer io.Writer
}

// NewSimpleHandler creates a Handler that writes flat lines to writer.
func NewSimpleHandler(writer io.Writer) *SimpleHandler {
	return &SimpleHandler{writer: writer}
}

func (h *SimpleHandler) Handle(event Event) {
	switch event.Type {
	case EventLanguageStart:
		fmt.Fprintf(h.writer, "[%s] %s\n", event.Language, event.Message)
	case EventLanguageDone:
		fmt.Fprintf(h.writer, "[%s] %s (%d files)\n", event.Language, event.Message, event.Count)
	case EventError:
		fmt.Fprintf(h.writer, "[error] %s\n", event.Message)
	case EventComplete:
		fmt.Fprintf(h.writer, "[done] %s\n", event.Message)
	default:
		fmt.Fprintf(h.writer, "%s\n", event.Message)
	}
}

// TreeHandler indents language-scoped events under their language, giving a
// shallow two-level tree instead of a flat log.
type TreeHandler struct {
	writer       io.Writer
	lastLanguage string
}

// NewTreeHandler creates a Handler that groups events by language.
func NewTreeHandler(writer io.Writer) *TreeHandler {
	return &TreeHandler{writer: writer}
}

func (h *TreeHandler) Handle(event Event) {
	switch event.Type {
	case EventLanguageStart:
		if event.Language != h.lastLanguage {
			fmt.Fprintf(h.writer, "%s\n", event.Language)
			h.lastLanguage = event.Language
		}
		fmt.Fprintf(h.writer, "  %s\n", event.Message)
	case EventLanguageDone:
		fmt.Fprintf(h.writer, "  %s (%d files)\n", event.Message, event.Count)
	case EventError:
		fmt.Fprintf(h.writer, "✗ %s\n", event.Message)
	case EventComplete:
		fmt.Fprintf(h.writer, "✓ %s\n", event.Message)
	default:
		fmt.Fprintf(h.writer, "%s\n", event.Message)
	}
}

// NullHandler discards every event.
type NullHandler struct{}

// NewNullHandler creates a Handler that renders nothing.
func NewNullHandler() *NullHandler {
	return &NullHandler{}
}

func (h *NullHandler) Handle(event Event) {}

var _ Handler = (*SimpleHandler)(nil)
var _ Handler = (*TreeHandler)(nil)
var _ Handler = (*NullHandler)(nil)

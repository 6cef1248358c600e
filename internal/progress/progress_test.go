package progress

import (
	"bytes"
	"strings"
	"testing"
)

func TestSimpleHandler(t *testing.T) {
	tests := []struct {
		name     string
		event    Event
		expected string
	}{
		{
			name:     "language start",
			event:    Event{Type: EventLanguageStart, Language: "go", Message: "indexing go (12 files)"},
			expected: "[go] indexing go (12 files)\n",
		},
		{
			name:     "language done",
			event:    Event{Type: EventLanguageDone, Language: "python", Message: "resolved", Count: 8},
			expected: "[python] resolved (8 files)\n",
		},
		{
			name:     "error",
			event:    Event{Type: EventError, Message: "repository not found"},
			expected: "[error] repository not found\n",
		},
		{
			name:     "complete",
			event:    Event{Type: EventComplete, Message: "complete"},
			expected: "[done] complete\n",
		},
		{
			name:     "info",
			event:    Event{Type: EventInfo, Message: "fetching repository"},
			expected: "fetching repository\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			handler := NewSimpleHandler(buf)
			handler.Handle(tt.event)

			if buf.String() != tt.expected {
				t.Errorf("expected:\n%s\ngot:\n%s", tt.expected, buf.String())
			}
		})
	}
}

func TestTreeHandlerGroupsByLanguage(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := NewTreeHandler(buf)

	handler.Handle(Event{Type: EventLanguageStart, Language: "go", Message: "indexing go (2 files)"})
	handler.Handle(Event{Type: EventLanguageStart, Language: "go", Message: "resolving go"})
	handler.Handle(Event{Type: EventLanguageStart, Language: "python", Message: "indexing python (1 files)"})
	handler.Handle(Event{Type: EventComplete, Message: "complete"})

	output := buf.String()
	for _, part := range []string{"go\n", "  indexing go", "  resolving go", "python\n", "  indexing python", "✓ complete"} {
		if !strings.Contains(output, part) {
			t.Errorf("expected output to contain %q, got:\n%s", part, output)
		}
	}
}

func TestNullHandlerDiscardsEvents(t *testing.T) {
	handler := NewNullHandler()
	handler.Handle(Event{Type: EventError, Message: "should be discarded"})
}

func TestAsEventParsesLanguageProgress(t *testing.T) {
	ev := AsEvent(Frame{Kind: FrameProgress, Message: "indexing java (4 files)"})
	if ev.Type != EventLanguageStart || ev.Language != "java" || ev.Count != 4 {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestAsEventTerminalFrames(t *testing.T) {
	errEvent := AsEvent(Frame{Kind: FrameError, Message: "boom"})
	if errEvent.Type != EventError || errEvent.Message != "boom" {
		t.Fatalf("unexpected error event: %+v", errEvent)
	}

	completeEvent := AsEvent(Frame{Kind: FrameComplete})
	if completeEvent.Type != EventComplete {
		t.Fatalf("unexpected complete event: %+v", completeEvent)
	}
}

package fetch

import "testing"

func TestSidebandWriterEmitsOnPhaseChange(t *testing.T) {
	var messages []string
	w := &sidebandWriter{onProgress: func(m string) { messages = append(messages, m) }, lastPercent: -1}

	w.Write([]byte("Counting objects: 10% "))
	w.Write([]byte("Counting objects: 12% "))
	w.Write([]byte("Compressing objects: 1% "))

	if len(messages) != 2 {
		t.Fatalf("expected 2 emitted messages (two phase changes; the 2%% advance is suppressed), got %d: %+v", len(messages), messages)
	}
}

func TestSidebandWriterSuppressesSmallAdvances(t *testing.T) {
	var messages []string
	w := &sidebandWriter{onProgress: func(m string) { messages = append(messages, m) }, lastPercent: -1}

	w.Write([]byte("Receiving objects: 50% "))
	w.Write([]byte("Receiving objects: 51% "))
	w.Write([]byte("Receiving objects: 52% "))

	if len(messages) != 1 {
		t.Fatalf("expected only the first emit, got %d: %+v", len(messages), messages)
	}
}

func TestCleanupHandlesNil(t *testing.T) {
	Cleanup(nil)
	Cleanup(&Result{})
}

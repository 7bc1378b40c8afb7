package capture

import (
	"context"
	"strings"
	"testing"
)

func TestCommandTranscriberTrimsOutput(t *testing.T) {
	transcriber := NewCommandTranscriber("echo  my spoken answer ")

	got, err := transcriber.Transcribe(context.Background())
	if err != nil {
		t.Fatalf("transcribing: %v", err)
	}
	if got != "my spoken answer" {
		t.Errorf("got %q, want %q", got, "my spoken answer")
	}
}

func TestCommandTranscriberEmptyCommand(t *testing.T) {
	transcriber := NewCommandTranscriber("")

	if _, err := transcriber.Transcribe(context.Background()); err == nil {
		t.Fatal("expected an error for a missing command")
	}
}

func TestCommandTranscriberFailingCommand(t *testing.T) {
	transcriber := NewCommandTranscriber("false")

	_, err := transcriber.Transcribe(context.Background())
	if err == nil {
		t.Fatal("expected an error from a failing recognizer")
	}
	if !strings.Contains(err.Error(), "run transcriber") {
		t.Errorf("error %q does not mention the transcriber", err)
	}
}

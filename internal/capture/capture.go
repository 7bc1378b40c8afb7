// Package capture collects candidate answers, either typed at the terminal
// or transcribed from speech through an external command.
package capture

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/manifoldco/promptui"
	"go.uber.org/zap"

	"github.com/spurge/netica/internal/interview"
)

const (
	PromptType  = "Type the answer"
	PromptSpeak = "Speak the answer"
)

// TypedCapture reads the answer from the terminal.
type TypedCapture struct{}

var _ interview.AnswerChannel = (*TypedCapture)(nil)

func NewTyped() *TypedCapture {
	return &TypedCapture{}
}

func (c *TypedCapture) AwaitAnswer(_ context.Context, question string) (string, error) {
	fmt.Println(question)

	prompt := promptui.Prompt{
		Label: "Your answer",
	}

	answer, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("read typed answer: %w", err)
	}

	return strings.TrimSpace(answer), nil
}

// Transcriber converts a spoken answer into text.
type Transcriber interface {
	Transcribe(ctx context.Context) (string, error)
}

// CommandTranscriber shells out to a recognizer command and uses its stdout
// as the transcription.
type CommandTranscriber struct {
	command string
	args    []string
}

func NewCommandTranscriber(command string) *CommandTranscriber {
	fields := strings.Fields(command)

	transcriber := &CommandTranscriber{}
	if len(fields) > 0 {
		transcriber.command = fields[0]
		transcriber.args = fields[1:]
	}

	return transcriber
}

func (t *CommandTranscriber) Transcribe(ctx context.Context) (string, error) {
	if t.command == "" {
		return "", fmt.Errorf("no transcriber command configured")
	}

	out, err := exec.CommandContext(ctx, t.command, t.args...).Output()
	if err != nil {
		return "", fmt.Errorf("run transcriber: %w", err)
	}

	return strings.TrimSpace(string(out)), nil
}

// ModalCapture lets the candidate choose per question between typing the
// answer and speaking it. Without a transcriber it degrades to typing only.
type ModalCapture struct {
	typed       *TypedCapture
	transcriber Transcriber
	logger      *zap.Logger
}

var _ interview.AnswerChannel = (*ModalCapture)(nil)

func NewModal(transcriber Transcriber, logger *zap.Logger) *ModalCapture {
	return &ModalCapture{
		typed:       NewTyped(),
		transcriber: transcriber,
		logger:      logger,
	}
}

func (c *ModalCapture) AwaitAnswer(ctx context.Context, question string) (string, error) {
	if c.transcriber == nil {
		return c.typed.AwaitAnswer(ctx, question)
	}

	fmt.Println(question)

	modePrompt := promptui.Select{
		Label: "How do you want to answer?",
		Items: []string{PromptType, PromptSpeak},
	}

	_, mode, err := modePrompt.Run()
	if err != nil {
		return "", fmt.Errorf("select answer mode: %w", err)
	}

	if mode == PromptSpeak {
		answer, err := c.transcriber.Transcribe(ctx)
		if err == nil {
			return answer, nil
		}
		c.logger.Warn("transcription failed, falling back to typing", zap.Error(err))
	}

	prompt := promptui.Prompt{
		Label: "Your answer",
	}

	answer, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("read typed answer: %w", err)
	}

	return strings.TrimSpace(answer), nil
}

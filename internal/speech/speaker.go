// Package speech voices interview prompts through an external synthesizer
// command such as say or espeak.
package speech

import (
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// CommandSpeaker runs a configured shell command with the text as its final
// argument. Synthesis runs in the background so the interview never waits on
// audio, and failures are logged and swallowed.
type CommandSpeaker struct {
	command string
	args    []string
	logger  *zap.Logger
}

// NewCommand builds a speaker from a command line such as "espeak -s 140".
// An empty command yields a silent speaker.
func NewCommand(command string, logger *zap.Logger) *CommandSpeaker {
	fields := strings.Fields(command)

	speaker := &CommandSpeaker{logger: logger}
	if len(fields) > 0 {
		speaker.command = fields[0]
		speaker.args = fields[1:]
	}

	return speaker
}

func (s *CommandSpeaker) Speak(text string) {
	if s.command == "" || strings.TrimSpace(text) == "" {
		return
	}

	args := append(append([]string{}, s.args...), text)
	cmd := exec.Command(s.command, args...)

	go func() {
		if err := cmd.Run(); err != nil {
			s.logger.Warn("speech synthesis failed",
				zap.String("command", s.command),
				zap.Error(err),
			)
		}
	}()
}

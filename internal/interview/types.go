package interview

import (
	"context"
	"time"
)

// Tier is the difficulty bucket assigned to a skill question.
type Tier string

const (
	TierEasy     Tier = "easy"
	TierNormal   Tier = "normal"
	TierHard     Tier = "hard"
	TierFollowUp Tier = "follow-up"
)

// HRSkill is the reserved transcript group for the closing HR round.
const HRSkill = "HR"

// Question is a single cleaned interview question. Immutable once created.
type Question struct {
	Text  string
	Skill string
	Tier  Tier
	// Depth is the follow-up depth within the current skill, zero for
	// tiered questions.
	Depth int
}

// QuestionSet holds at most one question per tier for a skill. Empty slots
// are valid terminal outcomes; the orchestrator skips them.
type QuestionSet struct {
	Easy   string
	Normal string
	Hard   string
}

// At returns the question text for the given tier, empty when the slot was
// not filled.
func (s QuestionSet) At(tier Tier) string {
	switch tier {
	case TierEasy:
		return s.Easy
	case TierNormal:
		return s.Normal
	case TierHard:
		return s.Hard
	default:
		return ""
	}
}

// Empty reports whether no tier received a question.
func (s QuestionSet) Empty() bool {
	return s.Easy == "" && s.Normal == "" && s.Hard == ""
}

// Evaluation is the verdict produced for one question/answer pair.
type Evaluation struct {
	ReferenceAnswer string
	Relevant        bool
}

// Entry is one append-only transcript record.
type Entry struct {
	Skill           string
	Question        string
	Answer          string
	ReferenceAnswer string
	Relevant        bool
	Tier            Tier
	Depth           int
	AskedAt         time.Time
}

// ContentGenerator produces text for a prompt. An empty result with a nil
// error means the generative service had no usable response and the step
// should be skipped.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// AnswerChannel captures the candidate's answer for a question. An empty
// string is a valid non-answer.
type AnswerChannel interface {
	AwaitAnswer(ctx context.Context, question string) (string, error)
}

// Speaker voices text to the candidate. Implementations must not block the
// interview and must swallow playback failures.
type Speaker interface {
	Speak(text string)
}

// TranscriptStore persists entries keyed by candidate, grouped by skill.
// Implementations must be safe for use by concurrent sessions.
type TranscriptStore interface {
	Append(ctx context.Context, candidateID, skill string, entry Entry) error
	ReadAll(ctx context.Context, candidateID string) ([]Entry, error)
}

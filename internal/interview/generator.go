package interview

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/spurge/netica/internal/utils"
	"go.uber.org/zap"
)

const defaultMaxLogLength = 200

// leadingMarkup matches list numbering and emphasis tokens the model tends
// to prepend ("1. ", "* ", "2) -").
var leadingMarkup = regexp.MustCompile(`^[\*\d+\.\)]+[\s\-]*`)

// bannedSubstrings disqualify a line as a direct question. Matched
// case-insensitively.
var bannedSubstrings = []string{
	"interview questions",
	"technical skills",
	"summary:",
	"**",
}

// QuestionGenerator turns a skill label into a cleaned, tier-stratified set
// of direct interview questions, and produces follow-up and HR questions.
type QuestionGenerator struct {
	generator ContentGenerator
	logger    *zap.Logger
	maxLogLen int
}

// NewQuestionGenerator creates a QuestionGenerator on top of the given
// content generator.
func NewQuestionGenerator(generator ContentGenerator, logger *zap.Logger, maxLogLength int) *QuestionGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &QuestionGenerator{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// Generate requests questions for the skill in a single model call and
// stratifies the surviving lines into tiers by position. A blank skill or an
// empty model response yields an all-empty set, not an error.
func (g *QuestionGenerator) Generate(ctx context.Context, skill string) (QuestionSet, error) {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return QuestionSet{}, nil
	}

	prompt := fmt.Sprintf(
		"Generate a list of specific interview questions directly related to the skill '%s'. "+
			"Only list clear, direct questions without any numbering, headings, or extra text.",
		skill,
	)

	raw, err := g.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return QuestionSet{}, fmt.Errorf("generate questions for %q: %w", skill, err)
	}

	questions := cleanseQuestions(raw)

	g.logger.Debug("generated skill questions",
		zap.String("skill", skill),
		zap.Int("survived", len(questions)),
		zap.String("response_preview", utils.TruncateForLog(raw, g.maxLogLen)),
	)

	return stratify(questions), nil
}

// FollowUp asks for a deeper question on the same topic. The response goes
// through the same cleansing filter as tiered questions; an empty return
// means no usable follow-up.
func (g *QuestionGenerator) FollowUp(ctx context.Context, question, answer string) (string, error) {
	prompt := fmt.Sprintf(
		"Based on the question: %s and the user's answer: %s, generate a single follow-up question "+
			"that delves deeper into that particular topic.",
		question, answer,
	)

	return g.firstValid(ctx, prompt)
}

// HRQuestion produces the closing HR-topic question.
func (g *QuestionGenerator) HRQuestion(ctx context.Context) (string, error) {
	prompt := "Generate a relevant HR question. Consider common HR topics such as teamwork, " +
		"challenges, strengths, or experience."

	return g.firstValid(ctx, prompt)
}

// HRFollowUp produces a follow-up exploring the candidate's HR answer.
func (g *QuestionGenerator) HRFollowUp(ctx context.Context, question, answer string) (string, error) {
	prompt := fmt.Sprintf(
		"Based on the HR question: %s and the user's answer: %s, generate a follow-up question "+
			"to explore the user's response further.",
		question, answer,
	)

	return g.firstValid(ctx, prompt)
}

func (g *QuestionGenerator) firstValid(ctx context.Context, prompt string) (string, error) {
	raw, err := g.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}

	questions := cleanseQuestions(raw)
	if len(questions) == 0 {
		g.logger.Debug("no valid question survived filtering",
			zap.Int("response_length", utf8.RuneCountInString(raw)),
			zap.String("response_preview", utils.TruncateForLog(raw, g.maxLogLen)),
		)
		return "", nil
	}

	return questions[0], nil
}

// cleanseQuestions splits raw model output into lines, strips leading
// numbering and markup, and keeps only direct questions: non-blank, free of
// banned boilerplate, ending with a question mark.
func cleanseQuestions(raw string) []string {
	var questions []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(leadingMarkup.ReplaceAllString(line, ""))
		if ValidQuestion(line) {
			questions = append(questions, line)
		}
	}
	return questions
}

// ValidQuestion reports whether the text passes the banned-substring filter
// and ends with a question mark.
func ValidQuestion(text string) bool {
	if text == "" || !strings.HasSuffix(text, "?") {
		return false
	}

	lower := strings.ToLower(text)
	for _, banned := range bannedSubstrings {
		if strings.Contains(lower, banned) {
			return false
		}
	}

	return true
}

// stratify maps the ordered, filtered question list onto tiers by position:
// element 0 becomes Easy, 1 Normal, 2 Hard. Extras are discarded; missing
// positions leave the tier empty.
func stratify(questions []string) QuestionSet {
	var set QuestionSet
	if len(questions) > 0 {
		set.Easy = questions[0]
	}
	if len(questions) > 1 {
		set.Normal = questions[1]
	}
	if len(questions) > 2 {
		set.Hard = questions[2]
	}
	return set
}

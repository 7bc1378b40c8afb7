package interview

import (
	"context"
	"fmt"
	"strings"

	"github.com/spurge/netica/internal/utils"
	"go.uber.org/zap"
)

// AnswerEvaluator produces a reference answer and a relevance verdict for a
// question/answer pair, delegating both judgments to the generative service.
type AnswerEvaluator struct {
	generator ContentGenerator
	logger    *zap.Logger
	maxLogLen int
}

// NewAnswerEvaluator creates an AnswerEvaluator on top of the given content
// generator.
func NewAnswerEvaluator(generator ContentGenerator, logger *zap.Logger, maxLogLength int) *AnswerEvaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &AnswerEvaluator{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// Evaluate makes two independent model calls: one for a reference answer,
// one for a strict Yes/No relevance verdict. An empty reference answer is
// valid. A client-level failure on either call yields a zero Evaluation and
// the error; callers proceed as though the answer was judged irrelevant.
func (e *AnswerEvaluator) Evaluate(ctx context.Context, question, answer string) (Evaluation, error) {
	refPrompt := fmt.Sprintf(
		"Generate a short and direct answer for the following question: %s. "+
			"Include only one answer and provide an example related to that answer.",
		question,
	)

	reference, err := e.generator.GenerateContent(ctx, refPrompt)
	if err != nil {
		return Evaluation{}, fmt.Errorf("generate reference answer: %w", err)
	}

	verdictPrompt := fmt.Sprintf(
		"Evaluate the following answer to determine if it is relevant to the question provided. "+
			"Question: %s Answer: %s "+
			"Is the answer relevant to the question? Respond with 'Yes' if it is relevant, otherwise respond with 'No'.",
		question, answer,
	)

	raw, err := e.generator.GenerateContent(ctx, verdictPrompt)
	if err != nil {
		return Evaluation{}, fmt.Errorf("generate relevance verdict: %w", err)
	}

	verdict := strings.ToLower(strings.TrimSpace(raw))
	relevant := verdict == "yes"

	if verdict != "yes" && verdict != "no" {
		e.logger.Warn("unexpected relevance verdict, treating as not relevant",
			zap.String("verdict_preview", utils.TruncateForLog(raw, e.maxLogLen)),
		)
	}

	return Evaluation{
		ReferenceAnswer: strings.TrimSpace(reference),
		Relevant:        relevant,
	}, nil
}

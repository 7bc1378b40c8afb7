package interview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrNoSkills rejects a session for a candidate with no detectable skills.
var ErrNoSkills = errors.New("no skills to interview on")

// ErrNoQuestions ends a session early when no skill yielded a single usable
// question.
var ErrNoQuestions = errors.New("no questions generated for any skill")

// State names a position in the session's forward-only machine.
type State int

const (
	StateSelectSkill State = iota
	StateAskTier
	StateAwaitAnswer
	StateEvaluate
	StateDecide
	StateHRQuestion
	StateHRFollowUp
	StateSummary
	StateDone
)

func (s State) String() string {
	switch s {
	case StateSelectSkill:
		return "select-skill"
	case StateAskTier:
		return "ask-tier"
	case StateAwaitAnswer:
		return "await-answer"
	case StateEvaluate:
		return "evaluate"
	case StateDecide:
		return "decide"
	case StateHRQuestion:
		return "hr-question"
	case StateHRFollowUp:
		return "hr-follow-up"
	case StateSummary:
		return "summary"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

var tierOrder = []Tier{TierEasy, TierNormal, TierHard}

// Config tunes a single session.
type Config struct {
	// FollowUpLimit caps consecutive follow-ups per skill; defaults to
	// DefaultFollowUpLimit.
	FollowUpLimit int
	// ScoreScale is the score upper bound; defaults to DefaultScoreScale.
	ScoreScale int
	// SkipHR disables the closing HR round.
	SkipHR bool
	// SkipIntro disables the spoken introduction.
	SkipIntro bool
}

// Deps are the collaborators a session drives. Store and Speaker are
// optional; everything else is required.
type Deps struct {
	Generator *QuestionGenerator
	Evaluator *AnswerEvaluator
	Channel   AnswerChannel
	Speaker   Speaker
	Store     TranscriptStore
	Logger    *zap.Logger
}

// Result is the terminal outcome of a completed session.
type Result struct {
	Score int
	Scale int
	// NoData is set when the transcript ended up empty and Score is not
	// meaningful.
	NoData bool
	// Entries is the session's in-memory transcript in append order.
	Entries []Entry
	// StorageDegraded warns that at least one persistence write failed and
	// the stored transcript may be incomplete.
	StorageDegraded bool
}

// Session drives one candidate through the adaptive interview: tiered skill
// questions, bounded follow-ups, a closing HR round, and score aggregation.
// All mutable state is owned by the session instance; sessions for different
// candidates may run concurrently as long as they share only the content
// generator and the transcript store.
type Session struct {
	candidate Candidate
	skills    []string
	cfg       Config
	deps      Deps
	planner   FollowUpPlanner
	agg       Aggregator
	logger    *zap.Logger

	state    State
	skillIdx int
	tierSet  QuestionSet
	tierIdx  int
	depth    int

	pending  Question
	answer   string
	lastEval Evaluation

	entries         []Entry
	askedAny        bool
	storageDegraded bool

	now func() time.Time
}

// NewSession validates the inputs and builds a session in its initial state.
// Duplicate skill labels are dropped, keeping first-seen order.
func NewSession(candidate Candidate, skills []string, cfg Config, deps Deps) (*Session, error) {
	if strings.TrimSpace(candidate.ID) == "" {
		return nil, errors.New("candidate id is required")
	}
	if deps.Generator == nil || deps.Evaluator == nil || deps.Channel == nil {
		return nil, errors.New("generator, evaluator, and answer channel are required")
	}

	unique := dedupeSkills(skills)
	if len(unique) == 0 {
		return nil, ErrNoSkills
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Session{
		candidate: candidate,
		skills:    unique,
		cfg:       cfg,
		deps:      deps,
		planner:   NewFollowUpPlanner(cfg.FollowUpLimit),
		agg:       NewAggregator(cfg.ScoreScale),
		logger:    logger.With(zap.String("candidate_id", candidate.ID)),
		state:     StateSelectSkill,
		skillIdx:  -1,
		now:       time.Now,
	}, nil
}

// Skills returns the session's skill labels in detection order.
func (s *Session) Skills() []string {
	out := make([]string, len(s.skills))
	copy(out, s.skills)
	return out
}

// Run advances the state machine to completion. It blocks on answer capture
// and model calls; cancelling the context aborts the session between states,
// leaving already-persisted entries valid.
func (s *Session) Run(ctx context.Context) (*Result, error) {
	if s.state != StateSelectSkill {
		return nil, errors.New("session has already run")
	}

	if !s.cfg.SkipIntro {
		s.speak(s.introText())
	}

	for s.state != StateDone {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var err error
		switch s.state {
		case StateSelectSkill:
			s.selectSkill(ctx)
		case StateAskTier:
			s.askTier()
		case StateAwaitAnswer:
			err = s.awaitAnswer(ctx)
		case StateEvaluate:
			err = s.evaluate(ctx)
		case StateDecide:
			s.decide(ctx)
		case StateHRQuestion:
			err = s.hrQuestion(ctx)
		case StateHRFollowUp:
			err = s.hrFollowUp(ctx)
		case StateSummary:
			return s.summarize()
		}
		if err != nil {
			return nil, err
		}
	}

	return nil, errors.New("session terminated without summary")
}

// selectSkill pops the next skill, generating its tiered question set in a
// single call. Skills without any surviving question are skipped.
func (s *Session) selectSkill(ctx context.Context) {
	for {
		s.skillIdx++
		if s.skillIdx >= len(s.skills) {
			if !s.askedAny {
				s.state = StateSummary
				return
			}
			if s.cfg.SkipHR {
				s.state = StateSummary
			} else {
				s.state = StateHRQuestion
			}
			return
		}

		skill := s.skills[s.skillIdx]
		set, err := s.deps.Generator.Generate(ctx, skill)
		if err != nil {
			s.logger.Warn("question generation degraded, skipping skill",
				zap.String("skill", skill),
				zap.Error(err),
			)
			continue
		}

		if set.Empty() {
			s.logger.Warn("no questions generated", zap.String("skill", skill))
			continue
		}

		s.tierSet = set
		s.tierIdx = 0
		s.depth = 0
		s.state = StateAskTier
		return
	}
}

// askTier picks the next non-empty tier slot, or moves to the next skill
// when the slots are exhausted.
func (s *Session) askTier() {
	for s.tierIdx < len(tierOrder) {
		tier := tierOrder[s.tierIdx]
		text := s.tierSet.At(tier)
		if text == "" {
			s.tierIdx++
			continue
		}

		s.pending = Question{
			Text:  text,
			Skill: s.skills[s.skillIdx],
			Tier:  tier,
		}
		s.state = StateAwaitAnswer
		return
	}

	s.state = StateSelectSkill
}

// awaitAnswer suspends on the external capture collaborator. This is the
// session's only true suspension point in an interactive deployment.
func (s *Session) awaitAnswer(ctx context.Context) error {
	s.speak(s.pending.Text)

	answer, err := s.deps.Channel.AwaitAnswer(ctx, s.pending.Text)
	if err != nil {
		return fmt.Errorf("awaiting answer: %w", err)
	}

	s.answer = strings.TrimSpace(answer)
	s.state = StateEvaluate
	return nil
}

// evaluate judges the pending answer and persists the entry unconditionally
// before any decision is made.
func (s *Session) evaluate(ctx context.Context) error {
	eval, err := s.deps.Evaluator.Evaluate(ctx, s.pending.Text, s.answer)
	if err != nil {
		s.logger.Warn("evaluation degraded, treating answer as not relevant",
			zap.String("skill", s.pending.Skill),
			zap.Error(err),
		)
		eval = Evaluation{}
	}

	s.lastEval = eval
	s.record(eval)
	s.askedAny = true

	if s.pending.Skill == HRSkill {
		if s.pending.Depth > 0 || !eval.Relevant {
			s.state = StateSummary
		} else {
			s.state = StateHRFollowUp
		}
		return nil
	}

	s.state = StateDecide
	return nil
}

// decide applies the follow-up policy. The tier passed to the planner is the
// one whose question spawned the current thread, so an irrelevant follow-up
// under Easy or Normal still abandons the skill.
func (s *Session) decide(ctx context.Context) {
	tier := tierOrder[s.tierIdx]
	decision := s.planner.Decide(tier, s.lastEval.Relevant, s.depth)

	s.logger.Debug("planner decision",
		zap.String("skill", s.pending.Skill),
		zap.String("tier", string(tier)),
		zap.Int("depth", s.depth),
		zap.Bool("relevant", s.lastEval.Relevant),
		zap.String("decision", decision.String()),
	)

	switch decision {
	case DecisionContinue:
		followUp, err := s.deps.Generator.FollowUp(ctx, s.pending.Text, s.answer)
		if err != nil {
			s.logger.Warn("follow-up generation degraded", zap.Error(err))
			followUp = ""
		}
		if followUp == "" {
			s.tierIdx++
			s.state = StateAskTier
			return
		}

		s.depth++
		s.pending = Question{
			Text:  followUp,
			Skill: s.skills[s.skillIdx],
			Tier:  TierFollowUp,
			Depth: s.depth,
		}
		s.state = StateAwaitAnswer
	case DecisionNextTier:
		s.tierIdx++
		s.state = StateAskTier
	case DecisionAbandonSkill:
		s.logger.Info("abandoning skill after irrelevant answer",
			zap.String("skill", s.pending.Skill),
			zap.String("tier", string(tier)),
		)
		s.state = StateSelectSkill
	}
}

// hrQuestion mirrors the skill loop for one fixed HR-topic question, without
// tiering.
func (s *Session) hrQuestion(ctx context.Context) error {
	question, err := s.deps.Generator.HRQuestion(ctx)
	if err != nil {
		s.logger.Warn("hr question generation degraded", zap.Error(err))
		question = ""
	}
	if question == "" {
		s.state = StateSummary
		return nil
	}

	s.pending = Question{Text: question, Skill: HRSkill, Tier: TierNormal}
	s.state = StateAwaitAnswer
	return nil
}

// hrFollowUp asks the single conditional HR follow-up.
func (s *Session) hrFollowUp(ctx context.Context) error {
	followUp, err := s.deps.Generator.HRFollowUp(ctx, s.pending.Text, s.answer)
	if err != nil {
		s.logger.Warn("hr follow-up generation degraded", zap.Error(err))
		followUp = ""
	}
	if followUp == "" {
		s.state = StateSummary
		return nil
	}

	s.pending = Question{Text: followUp, Skill: HRSkill, Tier: TierFollowUp, Depth: 1}
	s.state = StateAwaitAnswer
	return nil
}

// summarize aggregates the transcript into the final result. Terminal.
func (s *Session) summarize() (*Result, error) {
	s.state = StateDone

	if !s.askedAny {
		return nil, ErrNoQuestions
	}

	s.speak("Thank you for taking the interview. Have a great day!")

	result := &Result{
		Scale:           s.agg.Scale(),
		Entries:         s.entries,
		StorageDegraded: s.storageDegraded,
	}

	score, err := s.agg.Score(s.entries)
	if errors.Is(err, ErrNoData) {
		result.NoData = true
		return result, nil
	}
	if err != nil {
		return nil, err
	}

	result.Score = score
	s.logger.Info("interview complete",
		zap.Int("score", score),
		zap.Int("scale", result.Scale),
		zap.Int("entries", len(s.entries)),
	)

	return result, nil
}

// record appends the entry to the session transcript and persists it. A
// storage failure is logged and flagged but never aborts the interview.
func (s *Session) record(eval Evaluation) {
	entry := Entry{
		Skill:           s.pending.Skill,
		Question:        s.pending.Text,
		Answer:          s.answer,
		ReferenceAnswer: eval.ReferenceAnswer,
		Relevant:        eval.Relevant,
		Tier:            s.pending.Tier,
		Depth:           s.pending.Depth,
		AskedAt:         s.now(),
	}

	s.entries = append(s.entries, entry)

	if s.deps.Store == nil {
		return
	}

	// Persistence must not inherit the session's cancellation: an aborted
	// session keeps its partial transcript.
	if err := s.deps.Store.Append(context.Background(), s.candidate.ID, entry.Skill, entry); err != nil {
		s.storageDegraded = true
		s.logger.Error("transcript write failed, continuing in-memory",
			zap.String("skill", entry.Skill),
			zap.Error(err),
		)
	}
}

func (s *Session) speak(text string) {
	if s.deps.Speaker == nil || text == "" {
		return
	}
	s.deps.Speaker.Speak(text)
}

func (s *Session) introText() string {
	return fmt.Sprintf(
		"Hi %s, my name is Netica, and I will be your instructor for today's interview. "+
			"By going through your resume, you seem well-versed in skills like %s. "+
			"So let's get started with your interview.",
		s.candidate.DisplayName(), strings.Join(s.skills, ", "),
	)
}

func dedupeSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	unique := make([]string, 0, len(skills))
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		if _, ok := seen[skill]; ok {
			continue
		}
		seen[skill] = struct{}{}
		unique = append(unique, skill)
	}
	return unique
}

package interview

// Decision is the planner's verdict on how the session proceeds after an
// evaluation.
type Decision int

const (
	// DecisionContinue asks a follow-up on the same topic at depth+1.
	DecisionContinue Decision = iota
	// DecisionNextTier advances to the next tier (or skill, past Hard).
	DecisionNextTier
	// DecisionAbandonSkill drops the skill's remaining tiers.
	DecisionAbandonSkill
)

func (d Decision) String() string {
	switch d {
	case DecisionContinue:
		return "continue"
	case DecisionNextTier:
		return "next-tier"
	case DecisionAbandonSkill:
		return "abandon-skill"
	default:
		return "unknown"
	}
}

// DefaultFollowUpLimit caps consecutive follow-up questions per skill.
const DefaultFollowUpLimit = 2

// FollowUpPlanner decides whether to dig deeper on a topic, advance the
// tier, or abandon the skill. The policy is deliberately asymmetric: a
// relevant answer earns follow-ups until the depth cap, while an irrelevant
// answer on the Easy or Normal tier terminates the skill's remaining tiers
// outright. Past Hard an irrelevant answer simply moves on.
type FollowUpPlanner struct {
	limit int
}

// NewFollowUpPlanner creates a planner with the given follow-up depth cap.
// Non-positive caps fall back to DefaultFollowUpLimit.
func NewFollowUpPlanner(limit int) FollowUpPlanner {
	if limit <= 0 {
		limit = DefaultFollowUpLimit
	}
	return FollowUpPlanner{limit: limit}
}

// Limit returns the configured follow-up depth cap.
func (p FollowUpPlanner) Limit() int {
	return p.limit
}

// Decide maps the evaluation outcome at the given tier and follow-up depth
// to the next move. For follow-up questions the tier is the one whose
// question spawned them.
func (p FollowUpPlanner) Decide(tier Tier, relevant bool, depth int) Decision {
	if relevant {
		if depth < p.limit {
			return DecisionContinue
		}
		return DecisionNextTier
	}

	if tier == TierEasy || tier == TierNormal {
		return DecisionAbandonSkill
	}

	return DecisionNextTier
}

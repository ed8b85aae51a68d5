package pet

// Stat bounds and gameplay thresholds.
const (
	MinStat      = 0
	MaxStat      = 100
	PooThreshold = 50

	feedPooGrowth    = 5
	playHungerCost   = 10
	cleanReward      = 10
	cleanAnnoyance   = 5
	crossPenalty     = 5
	lowStatThreshold = 30
)

// DeathCause identifies which stat extreme ended a life. Causes are
// evaluated in a fixed order, so a pet that is simultaneously starved
// and buried reports the starvation.
type DeathCause int

const (
	CauseNone DeathCause = iota
	CauseStarved
	CauseOverfed
	CauseTooSad
	CauseExhausted
	CauseBuriedInPoo
)

func (c DeathCause) String() string {
	switch c {
	case CauseStarved:
		return "starved"
	case CauseOverfed:
		return "overfed"
	case CauseTooSad:
		return "too_sad"
	case CauseExhausted:
		return "exhausted"
	case CauseBuriedInPoo:
		return "buried_in_poo"
	}
	return ""
}

// Stats holds the three care stats, always kept in [MinStat, MaxStat].
type Stats struct {
	Hunger    int `json:"hunger"`    // 0=starving, 100=stuffed
	Happiness int `json:"happiness"` // 0=miserable, 100=overstimulated
	Poo       int `json:"poo"`       // 0=clean, 100=buried
}

// NewStats returns the starting stats of a fresh life.
func NewStats() Stats {
	return Stats{Hunger: 70, Happiness: 70, Poo: 0}
}

// ApplyDecay advances one decay step: hunger and happiness fall, poo
// grows, then the cross-penalties land (a hungry pet sulks, a dirty pet
// sulks). Returns the death cause if any stat hit an edge.
func (s *Stats) ApplyDecay(hungerDecay, happinessDecay, pooGrowth int) DeathCause {
	s.Hunger = Clamp(s.Hunger - hungerDecay)
	s.Happiness = Clamp(s.Happiness - happinessDecay)
	s.Poo = Clamp(s.Poo + pooGrowth)

	if s.Hunger < lowStatThreshold {
		s.Happiness = Clamp(s.Happiness - crossPenalty)
	}
	if s.Poo > PooThreshold {
		s.Happiness = Clamp(s.Happiness - crossPenalty)
	}

	return s.DeathCheck()
}

// ApplyFeed raises hunger by increment and grows poo a little. The
// overfed check looks at the unclamped total, before the poo side
// effect, so stuffing a nearly-full pet is fatal even though the stored
// stat caps at MaxStat.
func (s *Stats) ApplyFeed(increment int) DeathCause {
	raw := s.Hunger + increment
	s.Hunger = Clamp(raw)

	cause := CauseNone
	if raw >= MaxStat {
		cause = CauseOverfed
	}

	s.Poo = Clamp(s.Poo + feedPooGrowth)
	return cause
}

// ApplyPlay raises happiness by increment and burns some hunger. The
// exhausted check mirrors ApplyFeed: unclamped, before the hunger cost.
func (s *Stats) ApplyPlay(increment int) DeathCause {
	raw := s.Happiness + increment
	s.Happiness = Clamp(raw)

	cause := CauseNone
	if raw >= MaxStat {
		cause = CauseExhausted
	}

	s.Hunger = Clamp(s.Hunger - playHungerCost)
	return cause
}

// ApplyClean empties the poo stat. Cleaning a genuinely dirty pet is
// rewarded; cleaning an already-clean pet annoys it. Returns whether
// the pet appreciated it. Cleaning can never kill.
func (s *Stats) ApplyClean() bool {
	rewarded := s.Poo > PooThreshold
	if rewarded {
		s.Happiness = Clamp(s.Happiness + cleanReward)
	} else {
		s.Happiness = Clamp(s.Happiness - cleanAnnoyance)
	}
	s.Poo = MinStat
	return rewarded
}

// DeathCheck evaluates the death conditions in their fixed priority
// order and returns the first that holds. Idempotent on unchanged stats.
func (s Stats) DeathCheck() DeathCause {
	switch {
	case s.Hunger <= MinStat:
		return CauseStarved
	case s.Hunger >= MaxStat:
		return CauseOverfed
	case s.Happiness <= MinStat:
		return CauseTooSad
	case s.Happiness >= MaxStat:
		return CauseExhausted
	case s.Poo >= MaxStat:
		return CauseBuriedInPoo
	}
	return CauseNone
}

// Clamp bounds a stat value to [MinStat, MaxStat].
func Clamp(v int) int {
	if v < MinStat {
		return MinStat
	}
	if v > MaxStat {
		return MaxStat
	}
	return v
}

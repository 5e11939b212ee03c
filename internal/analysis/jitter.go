package analysis

import "math/rand"

// Jitter supplies every nondeterministic value the engine uses. The
// original system scattered unseeded randomness through the extractors;
// here it is one injectable provider so scoring is reproducible in tests.
//
// ConfidenceScore remains a cosmetic value in [80,100), not a computed
// confidence measure. Kept as an illustrative stub for a future real model
// integration.
type Jitter interface {
	// ScoreNoise is the additive noise term for requirement-based scores,
	// in [0,30).
	ScoreNoise() int
	// UnscoredScore is the uninformative fallback when no job requirements
	// were supplied, in [70,100).
	UnscoredScore() int
	// SkillLevel grades a matched skill of the given category.
	SkillLevel(category Category) Level
	// Confidence is the cosmetic confidence value, in [80,100).
	Confidence() int
}

type deterministic struct{}

// Deterministic returns the zero-noise provider: no score noise, midpoint
// fallback score and confidence, every skill Intermediate. This is the
// default, and the one tests rely on.
func Deterministic() Jitter { return deterministic{} }

func (deterministic) ScoreNoise() int           { return 0 }
func (deterministic) UnscoredScore() int        { return 85 }
func (deterministic) SkillLevel(Category) Level { return LevelIntermediate }
func (deterministic) Confidence() int           { return 90 }

type seeded struct {
	rng *rand.Rand
}

// Seeded returns a provider driven by a seeded PRNG, reproducing the
// original's varied levels and noisy scores while staying replayable.
func Seeded(seed int64) Jitter {
	return &seeded{rng: rand.New(rand.NewSource(seed))}
}

func (s *seeded) ScoreNoise() int    { return s.rng.Intn(30) }
func (s *seeded) UnscoredScore() int { return 70 + s.rng.Intn(30) }
func (s *seeded) Confidence() int    { return 80 + s.rng.Intn(20) }

func (s *seeded) SkillLevel(category Category) Level {
	if category == CategorySoft {
		levels := []Level{LevelIntermediate, LevelAdvanced}
		return levels[s.rng.Intn(len(levels))]
	}
	levels := []Level{LevelBasic, LevelIntermediate, LevelAdvanced, LevelExpert}
	return levels[s.rng.Intn(len(levels))]
}

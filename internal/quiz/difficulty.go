package quiz

// Difficulty is the ordered quiz difficulty scale.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// scale orders difficulties for step up/down moves.
var scale = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// SelectDifficulty picks the generation difficulty. An explicit request
// wins; otherwise the mastery score decides: easy below 40, medium below
// 70, hard from 70 up. A nil masteryScore means a learner with no history
// and maps to easy.
func SelectDifficulty(masteryScore *int, requested Difficulty) Difficulty {
	if requested.Valid() {
		return requested
	}

	score := 0
	if masteryScore != nil {
		score = *masteryScore
	}

	switch {
	case score < 40:
		return DifficultyEasy
	case score < 70:
		return DifficultyMedium
	default:
		return DifficultyHard
	}
}

// NextDifficulty applies the per-quiz step rules to a finished attempt's
// percentage score, clamping at the ends of the scale.
func NextDifficulty(current Difficulty, percentage int, t Thresholds) Difficulty {
	idx := indexOf(current)

	switch {
	case percentage >= t.LevelUp && idx < len(scale)-1:
		return scale[idx+1]
	case percentage < t.LevelDown && idx > 0:
		return scale[idx-1]
	default:
		return scale[idx]
	}
}

func indexOf(d Difficulty) int {
	for i, s := range scale {
		if s == d {
			return i
		}
	}
	// Unknown difficulties grade as easy rather than panicking.
	return 0
}

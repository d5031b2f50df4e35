// Package strength scores a password into a cosmetic Weak/Medium/Strong tier.
//
// The score is the number of satisfied predicates:
//
//   - at least 6 characters
//   - at least 10 characters
//   - both an ASCII lowercase and an ASCII uppercase letter
//   - an ASCII digit
//   - a character that is neither an ASCII letter nor an ASCII digit
//
// Scores 0–1 map to Weak, 2–3 to Medium and 4–5 to Strong. Length counts
// Unicode code points.
//
// # What this package must NOT do
//
//   - Gate authentication or enforce policy: the tier only drives an indicator.
//   - Hold state: Classify is pure.
package strength

import "unicode/utf8"

// MaxScore is the number of predicates.
const MaxScore = 5

// Tier is a strength bucket.
type Tier uint8

const (
	// Weak covers scores 0 and 1.
	Weak Tier = iota
	// Medium covers scores 2 and 3.
	Medium
	// Strong covers scores 4 and 5.
	Strong
)

// String returns the display label.
func (t Tier) String() string {
	switch t {
	case Weak:
		return "Weak"
	case Medium:
		return "Medium"
	case Strong:
		return "Strong"
	default:
		return "Unknown"
	}
}

// Class returns the text color class used for the indicator.
func (t Tier) Class() string {
	switch t {
	case Medium:
		return "text-warning"
	case Strong:
		return "text-success"
	default:
		return "text-danger"
	}
}

// Result is the classification of one password.
type Result struct {
	Score int
	Tier  Tier
	Label string
}

// Classify scores password and maps the score to a tier.
func Classify(password string) Result {
	score := Score(password)
	tier := TierForScore(score)
	return Result{
		Score: score,
		Tier:  tier,
		Label: tier.String(),
	}
}

// Score counts the satisfied predicates, 0 through MaxScore.
func Score(password string) int {
	var lower, upper, digit, other bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			other = true
		}
	}

	n := utf8.RuneCountInString(password)
	score := 0
	if n >= 6 {
		score++
	}
	if n >= 10 {
		score++
	}
	if lower && upper {
		score++
	}
	if digit {
		score++
	}
	if other {
		score++
	}
	return score
}

// TierForScore buckets a score. Out-of-range scores clamp to the nearest tier.
func TierForScore(score int) Tier {
	switch {
	case score <= 1:
		return Weak
	case score <= 3:
		return Medium
	default:
		return Strong
	}
}

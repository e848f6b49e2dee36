package classify

// sentimentThreshold is the polarity magnitude needed to promote a neutral
// tone to playful (positive) or blunt (negative).
const sentimentThreshold = 2

// polarity is a small AFINN-style lexicon covering the vocabulary that
// actually shows up in excuse text. Scores are summed over matching tokens.
var polarity = map[string]int{
	// positive
	"amazing":   4,
	"awesome":   4,
	"love":      3,
	"great":     3,
	"fantastic": 4,
	"fun":       4,
	"happy":     3,
	"excited":   3,
	"wonderful": 4,
	"enjoy":     2,
	"glad":      3,
	"nice":      3,
	"cool":      1,
	"good":      3,
	"thanks":    2,
	"yay":       2,

	// negative
	"terrible":   -3,
	"awful":      -3,
	"hate":       -3,
	"horrible":   -3,
	"bad":        -3,
	"worst":      -3,
	"refuse":     -2,
	"no":         -1,
	"never":      -1,
	"cannot":     -1,
	"cant":       -1,
	"wont":       -1,
	"annoying":   -2,
	"exhausted":  -2,
	"miserable":  -3,
	"disaster":   -2,
	"emergency":  -2,
	"impossible": -2,
}

// sentimentScore sums lexical polarity over the token set.
func sentimentScore(tokens map[string]bool) int {
	total := 0
	for token := range tokens {
		total += polarity[token]
	}
	return total
}

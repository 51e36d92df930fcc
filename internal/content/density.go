package content

import (
	"math"
	"regexp"
	"strings"
)

const (
	wordsPerFlashcard = 70.0
	MaxFlashcards     = 15

	bulletWeight     = 1.0
	numberedWeight   = 1.0
	definitionWeight = 2.0
	emphasisWeight   = 1.5
	questionWeight   = 0.5

	maxDensityBonus = 0.5
)

var (
	bulletPattern     = regexp.MustCompile(`(?m)^[ \t]*[-*•+][ \t]+\S`)
	numberedPattern   = regexp.MustCompile(`(?m)^[ \t]*\d+[.)][ \t]+\S`)
	definitionPattern = regexp.MustCompile(`(?i):[ \t]|[ \t]=[ \t]|\bmeans\b|\bis defined as\b|\brefers to\b|\bconsists of\b|\bis (?:a|an|the)\b`)

	strongPattern    = regexp.MustCompile(`\*\*[^*\n]+\*\*`)
	emphasisPatterns = []*regexp.Regexp{
		regexp.MustCompile(`"[^"\n]+"`),
		regexp.MustCompile(`“[^”\n]+”`),
		regexp.MustCompile(`(?:^|[^*\w])\*[^*\s][^*\n]*\*`),
		regexp.MustCompile(`(?:^|[^\w])_[^_\s][^_\n]*_`),
	}
)

// DensityScore weighs the informational markers in text: list items, definition cues,
// emphasized or quoted terms and questions. Every occurrence counts.
func DensityScore(text string) float64 {
	score := 0.0
	score += bulletWeight * float64(len(bulletPattern.FindAllStringIndex(text, -1)))
	score += numberedWeight * float64(len(numberedPattern.FindAllStringIndex(text, -1)))
	score += definitionWeight * float64(len(definitionPattern.FindAllStringIndex(text, -1)))

	strong := strongPattern.FindAllStringIndex(text, -1)
	score += emphasisWeight * float64(len(strong))
	rest := strongPattern.ReplaceAllString(text, " ")
	for _, p := range emphasisPatterns {
		score += emphasisWeight * float64(len(p.FindAllStringIndex(rest, -1)))
	}

	score += questionWeight * float64(strings.Count(text, "?"))
	return score
}

// SuggestCount estimates how many flashcards delta merits.
// It returns 0 for blank text and a value in [1, MaxFlashcards] otherwise.
func SuggestCount(delta string) int {
	words := len(strings.Fields(delta))
	if words == 0 {
		return 0
	}

	base := math.Ceil(float64(words) / wordsPerFlashcard)
	multiplier := 1 + math.Min(DensityScore(delta)/10, maxDensityBonus)
	n := int(math.Round(base * multiplier))
	switch {
	case n < 1:
		return 1
	case n > MaxFlashcards:
		return MaxFlashcards
	}
	return n
}

package matcher

import (
	"rockbot/internal/models"
	"slices"
	"strings"
)

const (
	minGuessLen  = 3
	minWordLen   = 4
	maxLenSpread = 2
)

// IsCorrect checks a raw guess against the entry's name and aliases. Rules are
// tried in order: exact normalized match, match on any single word of four or
// more characters, then a small typo allowance for answers of similar length.
func IsCorrect(rawGuess string, entry models.RockEntry) bool {
	guess := Normalize(rawGuess)
	if len(guess) < minGuessLen {
		return false
	}

	rawAnswers := entry.Answers()
	answers := make([]string, len(rawAnswers))
	for i, a := range rawAnswers {
		answers[i] = Normalize(a)
	}

	if slices.Contains(answers, guess) {
		return true
	}

	if slices.Contains(answerWords(rawAnswers), guess) {
		return true
	}

	for _, ans := range answers {
		if ans == "" {
			continue
		}
		if abs(len(ans)-len(guess)) > maxLenSpread {
			continue
		}
		if typoTolerated(Distance(guess, ans), len(ans)) {
			return true
		}
	}
	return false
}

// answerWords splits answers on whitespace and hyphens, keeping normalized
// words of at least minWordLen characters.
func answerWords(rawAnswers []string) []string {
	var words []string
	for _, raw := range rawAnswers {
		for _, w := range strings.Fields(strings.ReplaceAll(raw, "-", " ")) {
			if wn := Normalize(w); len(wn) >= minWordLen {
				words = append(words, wn)
			}
		}
	}
	return words
}

func typoTolerated(dist, answerLen int) bool {
	switch {
	case dist == 0:
		return true
	case dist == 1 && answerLen >= 4:
		return true
	case dist == 2 && answerLen >= 6:
		return float64(dist)/float64(answerLen) <= 0.25
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

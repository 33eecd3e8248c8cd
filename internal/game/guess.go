package game

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize prepares a guess or secret word for comparison: trimmed,
// lowercased, diacritics removed.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}
	return s
}

// Classify scores a raw guess against the secret word.
//
//	correct - normalized forms are equal
//	close   - within Damerau edit distance 1 (one substitution, insertion,
//	          deletion, or adjacent transposition); lenient on purpose to
//	          reward near-misses without revealing the answer
//	guess   - anything else
//
// Close guesses never end the round.
func Classify(guess, target string) string {
	g := Normalize(guess)
	t := Normalize(target)

	if g == "" || t == "" {
		return ClassGuess
	}
	if g == t {
		return ClassCorrect
	}
	if withinOneEdit(g, t) {
		return ClassClose
	}
	return ClassGuess
}

// withinOneEdit reports whether a and b differ by at most one substitution,
// insertion, deletion, or a single transposition of adjacent runes.
func withinOneEdit(a, b string) bool {
	ra, rb := []rune(a), []rune(b)
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}
	switch len(ra) - len(rb) {
	case 0:
		// Same length: allow one substitution or one adjacent transposition.
		diff := -1
		for i := range ra {
			if ra[i] != rb[i] {
				if diff >= 0 {
					// Second mismatch: only fine if it completes a swap of
					// the previous pair.
					if i == diff+1 && ra[diff] == rb[i] && ra[i] == rb[diff] {
						diff = len(ra) // consumed; any further mismatch fails
						continue
					}
					return false
				}
				diff = i
			}
		}
		return true

	case 1:
		// One insertion/deletion.
		skipped := false
		i, j := 0, 0
		for i < len(ra) && j < len(rb) {
			if ra[i] == rb[j] {
				i++
				j++
				continue
			}
			if skipped {
				return false
			}
			skipped = true
			i++
		}
		return true

	default:
		return false
	}
}

// guessAward is the score for the nth correct guess of a round (0-based):
// 100 for the first, decreasing by 10 per position, floored at 10.
func guessAward(priorCorrect int) int {
	award := 100 - 10*priorCorrect
	if award < 10 {
		award = 10
	}
	return award
}

// drawerBonus is what the drawer earns for every correct guess registered.
const drawerBonus = 5

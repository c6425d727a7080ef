package source

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/sahilm/fuzzy"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize removes diacritics and case, so that "Öl" matches "ol". Mn is the
// unicode class of nonspacing marks.
func Normalize(in string) (string, error) {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	out, _, err := transform.String(t, in)
	if err != nil {
		return "", fmt.Errorf("normalize: %w", err)
	}

	return strings.ToLower(out), nil
}

// Find returns the index of the first record at or after from that contains
// pattern, wrapping around to the start. When no record contains pattern,
// the best fuzzy match is returned instead.
func (s *Source) Find(pattern string, from int) (int, bool) {
	needle, err := Normalize(pattern)
	if err != nil || needle == "" {
		return 0, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.lines)
	if n == 0 {
		return 0, false
	}

	from = min(max(from, 0), n)

	haystack := make([]string, n)
	for i, line := range s.lines {
		haystack[i], err = Normalize(line)
		if err != nil {
			haystack[i] = strings.ToLower(line)
		}
	}

	for i := range n {
		idx := (from + i) % n
		if strings.Contains(haystack[idx], needle) {
			return idx, true
		}
	}

	matches := fuzzy.Find(needle, haystack)
	if len(matches) == 0 {
		return 0, false
	}

	return matches[0].Index, true
}

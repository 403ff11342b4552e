package expr

import "github.com/sahilm/fuzzy"

// Suggest returns the best fuzzy match for name among candidates, for
// "did you mean" hints on unknown-name errors and REPL completion.
func Suggest(name string, candidates []string) (string, bool) {
	matches := fuzzy.Find(name, candidates)
	if len(matches) == 0 {
		return "", false
	}

	return matches[0].Str, true
}

// Complete returns every candidate fuzzy-matching the (possibly partial)
// name, best match first. An empty name returns all candidates.
func Complete(name string, candidates []string) []string {
	if name == "" {
		return candidates
	}

	matches := fuzzy.Find(name, candidates)

	found := make([]string, len(matches))
	for i, m := range matches {
		found[i] = m.Str
	}

	return found
}

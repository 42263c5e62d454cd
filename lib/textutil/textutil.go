package textutil

import (
	"regexp"
	"strings"

	"github.com/antzucaro/matchr"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

func MatchName(name string, matchers []string) bool {
	name = NormalizeName(name)
	for _, m := range matchers {
		if strings.Contains(name, m) {
			return true
		}
	}
	return false
}

// ClosestMatch returns the index of the candidate most similar to the
// given name, along with its similarity score. Returns -1 when there
// are no candidates. Similarity is Jaro-Winkler over normalized names.
func ClosestMatch(name string, candidates []string) (int, float64) {
	name = NormalizeName(name)

	best := -1
	var bestSim float64
	for i, c := range candidates {
		sim := matchr.JaroWinkler(name, NormalizeName(c), false)
		if sim > bestSim {
			bestSim = sim
			best = i
		}
	}
	return best, bestSim
}

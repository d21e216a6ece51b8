package match

import (
	"strings"

	"golang.org/x/text/cases"
)

// LocalItem is a movie known to the media server. Year is the empty string
// when the server reports none; that absence is meaningful and is never
// collapsed into a placeholder year.
type LocalItem struct {
	RatingKey string
	Title     string
	Year      string
	FilePath  string
}

// RemoteFolder is one parsed folder from the cloud drive listing.
type RemoteFolder struct {
	Title string
	Year  string
	ID    string
}

// Match pairs a local item with the remote folder chosen for it.
type Match struct {
	Local  LocalItem
	Folder RemoteFolder
	Score  int
	Exact  bool
}

// fuzzyThreshold is the similarity score a fuzzy candidate must strictly
// exceed to be accepted.
const fuzzyThreshold = 80

var fold = cases.Fold()

// normalizeTitle folds case and rewrites "&" as "and" so that ampersand
// spelling differences compare equal in both directions.
func normalizeTitle(title string) string {
	return strings.ReplaceAll(fold.String(title), "&", "and")
}

// Movies matches every local item against the remote folder list. Each item
// maps to at most one folder. The exact pass accepts the first candidate in
// list order; the fuzzy pass runs only when the exact pass found nothing and
// never pairs items whose years conflict. Items with no acceptable candidate
// are returned as unmatched.
func Movies(items []LocalItem, folders []RemoteFolder) (matches []Match, unmatched []LocalItem) {
	for _, item := range items {
		if m, ok := matchOne(item, folders); ok {
			matches = append(matches, m)
		} else {
			unmatched = append(unmatched, item)
		}
	}
	return matches, unmatched
}

func matchOne(item LocalItem, folders []RemoteFolder) (Match, bool) {
	normalized := normalizeTitle(item.Title)

	for _, folder := range folders {
		if normalized != normalizeTitle(folder.Title) {
			continue
		}
		// When both sides carry a year it must agree; a missing year on
		// either side does not block an exact title match.
		if item.Year != "" && folder.Year != "" && item.Year != folder.Year {
			continue
		}
		return Match{Local: item, Folder: folder, Score: 100, Exact: true}, true
	}

	var best Match
	bestScore := 0
	for _, folder := range folders {
		if item.Year != "" && folder.Year != "" && item.Year != folder.Year {
			continue
		}
		score := similarity(normalized, normalizeTitle(folder.Title))
		if score > bestScore && score > fuzzyThreshold {
			bestScore = score
			best = Match{Local: item, Folder: folder, Score: score}
		}
	}
	if bestScore > 0 {
		return best, true
	}
	return Match{}, false
}

// similarity computes a Levenshtein-derived ratio from 0 to 100. Identical
// strings score 100; the score decays with edit distance relative to the
// longer string. Distances are counted in runes so a multi-byte character
// weighs as a single edit.
func similarity(a, b string) int {
	if a == b {
		return 100
	}
	runesA, runesB := []rune(a), []rune(b)
	if len(runesA) == 0 || len(runesB) == 0 {
		return 0
	}

	longer, shorter := runesA, runesB
	if len(runesA) < len(runesB) {
		longer, shorter = runesB, runesA
	}
	distance := levenshtein(longer, shorter)
	return int(float64(len(longer)-distance) / float64(len(longer)) * 100)
}

func levenshtein(a, b []rune) int {
	lenA, lenB := len(a), len(b)

	prev := make([]int, lenB+1)
	curr := make([]int, lenB+1)
	for j := 0; j <= lenB; j++ {
		prev[j] = j
	}

	for i := 1; i <= lenA; i++ {
		curr[0] = i
		for j := 1; j <= lenB; j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			curr[j] = minThree(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}
	return prev[lenB]
}

func minThree(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

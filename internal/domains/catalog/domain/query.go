package domain

import "strings"

const (
	// SuggestionMinLength is the shortest trimmed term that yields suggestions.
	SuggestionMinLength = 2
	// SuggestionLimit caps the number of suggestions returned.
	SuggestionLimit = 5
	// RecentSearchLimit caps the remembered search terms.
	RecentSearchLimit = 5
)

// Query narrows a catalog listing.
type Query struct {
	Search string
	Genre  Genre
}

// Filter returns the games matching q, in catalog order. Genre matches exactly
// unless empty or All; Search is a case-insensitive substring of the title or
// description.
func Filter(games []Game, q Query) []Game {
	term := strings.ToLower(q.Search)
	out := make([]Game, 0, len(games))
	for _, g := range games {
		if q.Genre != "" && q.Genre != GenreAll && g.Genre != q.Genre {
			continue
		}
		if term != "" && !containsFold(g.Title, term) && !containsFold(g.Description, term) {
			continue
		}
		out = append(out, g)
	}
	return out
}

// Suggest returns up to SuggestionLimit games whose title, genre or
// description contains term.
func Suggest(games []Game, term string) []Game {
	if len([]rune(strings.TrimSpace(term))) < SuggestionMinLength {
		return nil
	}
	needle := strings.ToLower(term)
	out := make([]Game, 0, SuggestionLimit)
	for _, g := range games {
		if containsFold(g.Title, needle) || containsFold(string(g.Genre), needle) || containsFold(g.Description, needle) {
			out = append(out, g)
			if len(out) == SuggestionLimit {
				break
			}
		}
	}
	return out
}

// FilterByTitle is the admin listing filter.
func FilterByTitle(games []Game, term string) []Game {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return games
	}
	out := make([]Game, 0, len(games))
	for _, g := range games {
		if containsFold(g.Title, needle) {
			out = append(out, g)
		}
	}
	return out
}

// RecordRecent puts term first, drops its earlier occurrence and keeps
// RecentSearchLimit entries. Blank terms leave recent unchanged.
func RecordRecent(recent []string, term string) []string {
	if strings.TrimSpace(term) == "" {
		return recent
	}
	out := make([]string, 0, RecentSearchLimit)
	out = append(out, term)
	for _, s := range recent {
		if s == term {
			continue
		}
		if len(out) == RecentSearchLimit {
			break
		}
		out = append(out, s)
	}
	return out
}

func containsFold(haystack, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(haystack), lowerNeedle)
}

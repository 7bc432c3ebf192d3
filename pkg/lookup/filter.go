package lookup

import (
	"strings"

	"github.com/agentstation/fieldscope/pkg/constants"
)

// MaxCandidates caps the number of autocomplete candidates.
const MaxCandidates = constants.MaxCandidates

// FilterCandidates returns the candidates containing query, compared
// case-insensitively, in their original order and capped at MaxCandidates.
// An empty query matches every candidate.
func FilterCandidates(query string, candidates []string) []string {
	out := make([]string, 0, min(len(candidates), MaxCandidates))
	for _, c := range candidates {
		if !Matches(query, c) {
			continue
		}
		out = append(out, c)
		if len(out) == MaxCandidates {
			break
		}
	}
	return out
}

// Matches reports whether candidate contains query, ignoring case.
func Matches(query, candidate string) bool {
	return strings.Contains(strings.ToLower(candidate), strings.ToLower(query))
}

// FilterAll is FilterCandidates without the cap.
func FilterAll(query string, candidates []string) []string {
	out := []string{}
	for _, c := range candidates {
		if Matches(query, c) {
			out = append(out, c)
		}
	}
	return out
}

// ApplicationCandidates filters the sorted application names by query.
func (e *Engine) ApplicationCandidates(query string) []string {
	return FilterCandidates(query, e.applicationNames)
}

// FieldCandidates filters field names by query. When app is non-empty the
// candidate set is that application's fields in table order; otherwise it is
// the sorted set of all field names.
func (e *Engine) FieldCandidates(query, app string) []string {
	if app != "" {
		return FilterCandidates(query, e.FieldNamesForApplication(app))
	}
	return FilterCandidates(query, e.fieldNames)
}

// StandardCandidates filters the standard names by query.
func (e *Engine) StandardCandidates(query string) []string {
	return FilterCandidates(query, e.standardNames)
}

// CandidatesVisible reports whether a candidate list should be shown:
// only when something was typed and at least one candidate matched.
func CandidatesVisible(query string, candidates []string) bool {
	return query != "" && len(candidates) > 0
}

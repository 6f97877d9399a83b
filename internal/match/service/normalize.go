package service

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Text cleaning applied to both descriptions and brand names before scoring.
// The steps run in a fixed order; changing it changes match quality, so each
// one is covered by tests.

// "Nike (EU) Inc." -> parenthesized segments carry sizes, regions, legal noise
var reParens = regexp.MustCompile(`\([^)]*\)`)

// straight and typographic apostrophes plus backtick
var reApostrophe = regexp.MustCompile("[’'‘`]")

// corporate suffixes as standalone words; removed before punctuation cleanup
// so "Nike, Inc." reduces to "nike"
var reCorpSuffix = regexp.MustCompile(`\b(inc|incorporated|ltd|llc|corp|co|company)\b`)

// everything outside letters/digits/underscore/whitespace becomes a space
var rePunct = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)

// CleanText normalizes free text for scoring: NFKC fold, lowercase, drop
// parenthesized segments and apostrophes, drop corporate suffix words, turn
// remaining punctuation into spaces and collapse whitespace.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	out := norm.NFKC.String(s)
	out = strings.ToLower(out)
	out = reParens.ReplaceAllString(out, "")
	out = reApostrophe.ReplaceAllString(out, "")
	out = reCorpSuffix.ReplaceAllString(out, "")
	out = rePunct.ReplaceAllString(out, " ")
	return collapseSpaces(out)
}

const byClause = " by "

// Query sources reported per row.
const (
	QuerySourceFull = "full"
	QuerySourceBy   = "by"
)

// DeriveQuery builds the scoring query for a description. With the by
// heuristic enabled, text like "Air Max sneakers by Nike" is queried with the
// part after the first " by ", which is usually the maker; the caller falls
// back to the full text when that part matches nothing.
func DeriveQuery(text string, byHeuristic bool) (query, source string) {
	if byHeuristic {
		lower := strings.ToLower(text)
		if i := strings.Index(lower, byClause); i >= 0 {
			after := lower[i+len(byClause):]
			return CleanText(after), QuerySourceBy
		}
	}
	return CleanText(text), QuerySourceFull
}

// collapseSpaces squeezes runs of whitespace into single spaces and trims.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

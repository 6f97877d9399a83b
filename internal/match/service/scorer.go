package service

import (
	"errors"
	"sort"
	"strings"
	"unicode/utf8"
)

// ErrNotText is returned by TokenSetRatio when an input is not valid UTF-8.
// Upload parsing is expected to sanitize text before scoring; hitting this
// means a raw value leaked through.
var ErrNotText = errors.New("similarity: input is not valid utf-8 text")

// TokenSetRatio scores two strings on a [0,100] scale using the token-set
// method: both sides are split into unique sorted whitespace tokens, and the
// score is the best indel ratio among the intersection paired with each
// side's leftovers. A side whose tokens are fully contained in the other
// scores 100, which makes short brand names score high against long
// descriptions that mention them.
//
// Inputs are scored as-is; callers normalize beforehand (see CleanText).
func TokenSetRatio(a, b string) (float64, error) {
	if !utf8.ValidString(a) || !utf8.ValidString(b) {
		return 0, ErrNotText
	}
	ta := tokenSet(a)
	tb := tokenSet(b)
	if len(ta) == 0 && len(tb) == 0 {
		return 100, nil
	}
	if len(ta) == 0 || len(tb) == 0 {
		return 0, nil
	}

	sect, onlyA, onlyB := splitTokens(ta, tb)
	if len(sect) > 0 && (len(onlyA) == 0 || len(onlyB) == 0) {
		// one token set contains the other
		return 100, nil
	}

	base := strings.Join(sect, " ")
	withA := joinTokens(sect, onlyA)
	withB := joinTokens(sect, onlyB)

	best := indelRatio(base, withA)
	if r := indelRatio(base, withB); r > best {
		best = r
	}
	if r := indelRatio(withA, withB); r > best {
		best = r
	}
	return best, nil
}

// tokenSet returns the unique whitespace-delimited tokens of s, sorted.
func tokenSet(s string) []string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// splitTokens partitions two sorted token slices into intersection and the
// tokens unique to each side. All three results stay sorted.
func splitTokens(a, b []string) (sect, onlyA, onlyB []string) {
	inB := make(map[string]struct{}, len(b))
	for _, t := range b {
		inB[t] = struct{}{}
	}
	for _, t := range a {
		if _, ok := inB[t]; ok {
			sect = append(sect, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}
	inA := make(map[string]struct{}, len(a))
	for _, t := range a {
		inA[t] = struct{}{}
	}
	for _, t := range b {
		if _, ok := inA[t]; !ok {
			onlyB = append(onlyB, t)
		}
	}
	return sect, onlyA, onlyB
}

func joinTokens(sect, rest []string) string {
	all := make([]string, 0, len(sect)+len(rest))
	all = append(all, sect...)
	all = append(all, rest...)
	return strings.Join(all, " ")
}

// indelRatio is the normalized insert/delete similarity of two strings in
// [0,100]: 200*LCS(a,b) / (len(a)+len(b)), computed over runes with a
// two-row DP table.
func indelRatio(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) < len(rb) {
		// keep the DP rows sized by the shorter string
		ra, rb = rb, ra
	}
	la, lb := len(ra), len(rb)
	if la == 0 && lb == 0 {
		return 100
	}
	if la == 0 || lb == 0 {
		return 0
	}

	prev := make([]int, lb+1)
	cur := make([]int, lb+1)
	for i := 1; i <= la; i++ {
		for j := 1; j <= lb; j++ {
			if ra[i-1] == rb[j-1] {
				cur[j] = prev[j-1] + 1
			} else if prev[j] >= cur[j-1] {
				cur[j] = prev[j]
			} else {
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	lcs := prev[lb]
	return 200 * float64(lcs) / float64(la+lb)
}

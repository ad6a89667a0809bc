// Package ident provides the case-insensitive edit-distance metric shared
// by the parser's keyword-typo recovery (§4.3) and the semantic analyzer's
// identifier-typo hints (§4.4), so both use exactly one implementation.
package ident

import "strings"

// Distance returns the Levenshtein edit distance between a and b, compared
// case-insensitively.
func Distance(a, b string) int {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			curr[j] = min3(del, ins, sub)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// BestMatch returns the candidate closest to target by Distance, provided
// the distance is <= maxDistance and strictly less than both the
// candidate's and the target's length (the "unique best" rule shared by
// §4.3 and §4.4). ok is false if no candidate qualifies or the best match
// is tied between two or more candidates.
func BestMatch(target string, candidates []string, maxDistance int) (best string, ok bool) {
	bestDist := maxDistance + 1
	tied := false
	for _, c := range candidates {
		d := Distance(target, c)
		if d > maxDistance {
			continue
		}
		if d >= len(c) || d >= len(target) {
			continue
		}
		if d < bestDist {
			bestDist = d
			best = c
			tied = false
		} else if d == bestDist {
			tied = true
		}
	}
	if bestDist > maxDistance || tied {
		return "", false
	}
	return best, true
}

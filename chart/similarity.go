package chart

// similarityRatio measures how alike two strings are as
// 2*M / (len(a)+len(b)), where M is the total length of their longest
// matching blocks. 1.0 means identical, 0.0 means nothing in common.
func similarityRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}

	matched := matchingBlockLength(ra, rb)
	return 2.0 * float64(matched) / float64(total)
}

// matchingBlockLength sums the lengths of the longest matching blocks:
// find the longest common substring, then recurse on the pieces to its
// left and right.
func matchingBlockLength(a, b []rune) int {
	i, j, size := longestMatch(a, b)
	if size == 0 {
		return 0
	}

	return size +
		matchingBlockLength(a[:i], b[:j]) +
		matchingBlockLength(a[i+size:], b[j+size:])
}

// longestMatch finds the longest common substring of a and b, returning
// its start in a, start in b, and length. Among equally long matches the
// earliest in a, then earliest in b, wins.
func longestMatch(a, b []rune) (besti, bestj, bestsize int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}

	b2j := make(map[rune][]int, len(b))
	for j, r := range b {
		b2j[r] = append(b2j[r], j)
	}

	// j2len[j] is the length of the match ending at a[i-1], b[j]
	j2len := make(map[int]int)
	for i, r := range a {
		newj2len := make(map[int]int)
		for _, j := range b2j[r] {
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti = i - k + 1
				bestj = j - k + 1
				bestsize = k
			}
		}
		j2len = newj2len
	}

	return besti, bestj, bestsize
}

package curate

// Ratio computes a longest-matching-blocks similarity between two strings on
// a 0.0–1.0 scale: twice the total matched length divided by the sum of both
// lengths (Ratcliff/Obershelp). It is symmetric and O(n*m) per pair.
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}
	return 2 * float64(matchingLen(ra, rb)) / float64(total)
}

// matchingLen sums the longest common block and recurses into the pieces on
// either side of it.
func matchingLen(a, b []rune) int {
	ai, bi, size := longestBlock(a, b)
	if size == 0 {
		return 0
	}
	return size + matchingLen(a[:ai], b[:bi]) + matchingLen(a[ai+size:], b[bi+size:])
}

// longestBlock finds the leftmost longest common substring of a and b.
func longestBlock(a, b []rune) (ai, bi, size int) {
	runLen := make(map[int]int)
	for i := range a {
		next := make(map[int]int, len(runLen))
		for j := range b {
			if a[i] != b[j] {
				continue
			}
			k := runLen[j-1] + 1
			next[j] = k
			if k > size {
				ai, bi, size = i-k+1, j-k+1, k
			}
		}
		runLen = next
	}
	return ai, bi, size
}

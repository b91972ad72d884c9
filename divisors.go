package img2sketch

// DefaultSplitLen is the grid cell size offered first when it divides the
// frame.
const DefaultSplitLen = 10

// CommonDivisors returns every integer that divides both a and b, in
// ascending order. Any valid split length for an a x b frame is in the
// list. Non-positive inputs yield nil.
func CommonDivisors(a, b int) []int {
	if a <= 0 || b <= 0 {
		return nil
	}
	var divs []int
	for d := 1; d <= min(a, b); d++ {
		if a%d == 0 && b%d == 0 {
			divs = append(divs, d)
		}
	}
	return divs
}

// PreferredSplitLen picks the split length to suggest from divs:
// DefaultSplitLen when offered, otherwise the smallest entry, or 1 for an
// empty list.
func PreferredSplitLen(divs []int) int {
	if len(divs) == 0 {
		return 1
	}
	for _, d := range divs {
		if d == DefaultSplitLen {
			return d
		}
	}
	return divs[0]
}

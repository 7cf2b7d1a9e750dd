package brackets

// SeedOrder returns the canonical single-elimination placement of seeds
// 1..size in round-1 slot order: consecutive entries pair up, and within
// each half of the draw the best two seeds of that half land in opposite
// quarters, so seeds 1 and 2 cannot meet before the final.
//
// The order is built by the standard mirroring construction: take the
// order for size/2 and replace every seed s with the pair (s, size+1-s).
// For size 8 this yields 1,8,4,5,2,7,3,6.
func SeedOrder(size int) []int {
	order := []int{1}
	for len(order) < size {
		doubled := len(order) * 2
		next := make([]int, 0, doubled)
		for _, s := range order {
			next = append(next, s, doubled+1-s)
		}
		order = next
	}
	return order
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// ConsolationSize picks the largest supported consolation draw that the
// eliminated teams can fill. Returns zero when fewer than four teams are
// available.
func ConsolationSize(eliminated int) int {
	for _, candidate := range []int{16, 8, 4} {
		if eliminated >= candidate {
			return candidate
		}
	}
	return 0
}

package reorder

// Move returns xs with the element at from relocated to index to. Elements between the two
// positions shift by one slot toward from; nothing is swapped.
//
// When from == to, or either index is out of range, xs itself is returned. Otherwise the result
// is a new slice and xs is not modified.
func Move[T any](xs []T, from, to int) []T {
	n := len(xs)
	if from == to || from < 0 || to < 0 || from >= n || to >= n {
		return xs
	}
	out := make([]T, n)
	if from < to {
		copy(out, xs[:from])
		copy(out[from:], xs[from+1:to+1])
		out[to] = xs[from]
		copy(out[to+1:], xs[to+1:])
		return out
	}
	copy(out, xs[:to])
	out[to] = xs[from]
	copy(out[to+1:], xs[to:from])
	copy(out[from+1:], xs[from+1:])
	return out
}

// IndexOf returns the index of the first element whose key is id, or -1.
func IndexOf[T any](xs []T, id string, key func(T) string) int {
	for i := range xs {
		if key(xs[i]) == id {
			return i
		}
	}
	return -1
}

// MoveByID moves the element keyed activeID to the position currently held by overID.
// ok is false when either id is missing or they are the same element.
func MoveByID[T any](xs []T, activeID, overID string, key func(T) string) (out []T, ok bool) {
	from := IndexOf(xs, activeID, key)
	to := IndexOf(xs, overID, key)
	if from < 0 || to < 0 || from == to {
		return xs, false
	}
	return Move(xs, from, to), true
}

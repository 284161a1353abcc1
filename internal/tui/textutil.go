package tui

// truncateEnd shortens s to at most limit characters, appending an ellipsis
// if truncation occurs. Handles negative or tiny limits gracefully.
func truncateEnd(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	if limit <= 1 {
		return "…"
	}
	return string(r[:limit-1]) + "…"
}

// truncateMiddle shortens s by preserving the start and end with a single
// ellipsis in the middle. Useful for URLs where both ends carry meaning.
func truncateMiddle(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	r := []rune(s)
	n := len(r)
	if n <= limit {
		return s
	}
	if limit <= 1 {
		return "…"
	}
	keep := limit - 1
	left := keep / 2
	right := keep - left
	if left <= 0 {
		return "…" + string(r[n-right:])
	}
	if right <= 0 {
		return string(r[:left]) + "…"
	}
	return string(r[:left]) + "…" + string(r[n-right:])
}

// padRight pads s with spaces to exactly width characters, truncating
// when it is longer. Keeps chart labels aligned.
func padRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) > width {
		return truncateEnd(s, width)
	}
	out := make([]rune, width)
	copy(out, r)
	for i := len(r); i < width; i++ {
		out[i] = ' '
	}
	return string(out)
}

package planner

// ScaledSize returns the dimensions of a width x height image bounded to
// maxWidth with the aspect ratio preserved. Images already within bounds,
// and any call with maxWidth <= 0, are returned unchanged. Height never
// drops below 1.
func ScaledSize(width, height, maxWidth int) (int, int) {
	if maxWidth <= 0 || width <= maxWidth || width <= 0 {
		return width, height
	}
	h := (height*maxWidth + width/2) / width
	if h < 1 {
		h = 1
	}
	return maxWidth, h
}

// NeedsResize reports whether an image of the given width must be
// downscaled to fit maxWidth. An unknown width (<= 0) is assumed to need it;
// the codec still never enlarges.
func NeedsResize(width, maxWidth int) bool {
	if maxWidth <= 0 {
		return false
	}
	return width <= 0 || width > maxWidth
}

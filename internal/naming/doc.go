// Package naming derives destination paths for converted images and resolves
// in-run collisions.
//
// Layout rule: a source at <input>/<rel> is written to <output>/<rel> with
// its extension replaced by the target format. The "skip" format keeps the
// original extension. Two sources that differ only by extension (pic.png,
// pic.jpg) map to the same destination; [Claims] gives the later
// one a " - dupN" suffix.
package naming

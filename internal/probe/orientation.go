package probe

import (
	"io"

	"github.com/rwcarlsen/goexif/exif"
)

// EXIF orientation values 5 through 8 rotate the stored raster by 90 or 270
// degrees, so the displayed width is the stored height.
const (
	orientationNormal     = 1
	orientationTransposed = 5
	orientationMax        = 8
)

// readOrientation returns the EXIF orientation tag from a JPEG stream, or 0
// when there is no EXIF block or the tag is absent or out of range.
func readOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 0
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 0
	}
	v, err := tag.Int(0)
	if err != nil || v < orientationNormal || v > orientationMax {
		return 0
	}
	return v
}

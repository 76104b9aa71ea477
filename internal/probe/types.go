package probe

import (
	"image/color"
	"strconv"
)

// ImageInfo is the result of a header-only probe.
type ImageInfo struct {
	Path   string
	Format string // Decoder name as registered with package image ("png", "jpeg", "webp", ...).
	Width  int
	Height int
	Size   int64 // On-disk size in bytes.

	// ColorModel is the decoder-reported model; nil when unknown.
	ColorModel color.Model

	// Orientation is the EXIF orientation (1-8) of a JPEG, 0 when absent.
	// Width and Height are the stored raster; see DisplaySize.
	Orientation int
}

// DisplaySize returns the dimensions after EXIF auto-orientation, which is
// what decoding produces.
func (i *ImageInfo) DisplaySize() (width, height int) {
	if i == nil {
		return 0, 0
	}
	if i.Orientation >= orientationTransposed {
		return i.Height, i.Width
	}
	return i.Width, i.Height
}

// Resolution returns the displayed "WxH", or "unknown".
func (i *ImageInfo) Resolution() string {
	w, h := i.DisplaySize()
	if w <= 0 || h <= 0 {
		return "unknown"
	}
	return strconv.Itoa(w) + "x" + strconv.Itoa(h)
}

// MayHaveAlpha reports whether the color model can carry transparency.
// Paletted images count when any palette entry is not fully opaque.
func (i *ImageInfo) MayHaveAlpha() bool {
	if i == nil || i.ColorModel == nil {
		return false
	}
	switch m := i.ColorModel.(type) {
	case color.Palette:
		for _, c := range m {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return true
			}
		}
		return false
	}
	switch i.ColorModel {
	case color.RGBAModel, color.RGBA64Model, color.NRGBAModel, color.NRGBA64Model,
		color.AlphaModel, color.Alpha16Model, color.NYCbCrAModel:
		return true
	}
	return false
}

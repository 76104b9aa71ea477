package codec

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/avif"
	"github.com/gen2brain/webp"

	"github.com/backmassage/pixmaster/internal/config"
)

// Options carries the per-file encoder settings.
type Options struct {
	Quality  int  // 0-100. Ignored by PNG.
	Lossless bool // WebP only.
}

// Codec is the narrow capability the pipeline needs from an image library.
type Codec interface {
	// Decode reads a full image from r.
	Decode(r io.Reader) (image.Image, error)
	// ResizeToWidth scales img to width with the aspect ratio preserved.
	// When enlarge is false, images already narrower than width are
	// returned unchanged.
	ResizeToWidth(img image.Image, width int, enlarge bool) image.Image
	// Encode writes img to w in the given format.
	Encode(w io.Writer, img image.Image, format config.Format, opts Options) error
}

// AVIF encoder speed (0 slowest/best, 10 fastest).
const avifSpeed = 6

// Imaging implements Codec with disintegration/imaging plus the gen2brain
// WebP and AVIF encoders.
type Imaging struct{}

// New returns the default Codec.
func New() *Imaging { return &Imaging{} }

// Decode reads an image from r, applying the EXIF orientation tag.
func (Imaging) Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, decodeError(err)
	}
	return img, nil
}

// ResizeToWidth scales img with a Lanczos filter.
func (Imaging) ResizeToWidth(img image.Image, width int, enlarge bool) image.Image {
	if width <= 0 {
		return img
	}
	w := img.Bounds().Dx()
	if w == width || (!enlarge && w <= width) {
		return img
	}
	return imaging.Resize(img, width, 0, imaging.Lanczos)
}

// Encode writes img in the requested format.
func (Imaging) Encode(w io.Writer, img image.Image, format config.Format, opts Options) error {
	q := config.Clamp(opts.Quality, config.QualityMin, config.QualityMax)

	var err error
	switch format {
	case config.FormatWebP:
		err = webp.Encode(w, img, webp.Options{Quality: q, Lossless: opts.Lossless})
	case config.FormatAVIF:
		err = avif.Encode(w, img, avif.Options{
			Quality:           q,
			QualityAlpha:      q,
			Speed:             avifSpeed,
			ChromaSubsampling: image.YCbCrSubsampleRatio420,
		})
	case config.FormatJPG, config.FormatJPEG:
		if q < 1 {
			q = 1
		}
		err = imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(q))
	case config.FormatPNG:
		err = imaging.Encode(w, img, imaging.PNG)
	default:
		return &Error{Op: "encode", Kind: ErrUnsupportedFormat, Err: fmt.Errorf("format %q", format)}
	}
	if err != nil {
		return encodeError(err)
	}
	return nil
}

// Flatten composites img over an opaque white background.
func Flatten(img image.Image) image.Image {
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}

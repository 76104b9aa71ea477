package probe

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"os"

	_ "github.com/gen2brain/avif" // register AVIF decoder
	_ "github.com/gen2brain/webp" // register WebP decoder
)

// ErrUnknownFormat is returned when no registered decoder recognizes the
// file header.
var ErrUnknownFormat = errors.New("unknown image format")

// Probe reads only the image header at path and returns its format,
// dimensions, and on-disk size. A truncated or corrupt header is an error.
func Probe(path string) (*ImageInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("probe %q: %w", path, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("probe %q: %w", path, err)
	}
	if st.IsDir() {
		return nil, fmt.Errorf("probe %q: is a directory", path)
	}

	cfg, format, err := image.DecodeConfig(bufio.NewReader(f))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("probe %q: %w", path, ErrUnknownFormat)
		}
		return nil, fmt.Errorf("probe %q: %w", path, err)
	}

	info := &ImageInfo{
		Path:       path,
		Format:     format,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Size:       st.Size(),
		ColorModel: cfg.ColorModel,
	}
	// Only JPEG orientation is applied on decode.
	if format == "jpeg" {
		if _, err := f.Seek(0, io.SeekStart); err == nil {
			info.Orientation = readOrientation(bufio.NewReader(f))
		}
	}
	return info, nil
}

// Package probe provides header-only image inspection and typed result
// structures. A single image.DecodeConfig call per file yields format and
// dimensions without decoding pixel data.
//
// Registered formats: png, jpeg, gif (stdlib), webp and avif
// (github.com/gen2brain). Anything else is reported as [ErrUnknownFormat].
// For JPEG the EXIF orientation is also read (github.com/rwcarlsen/goexif)
// so [ImageInfo.DisplaySize] matches the auto-oriented decode.
package probe

// Package codec decodes, resizes, and encodes images behind a narrow
// interface so the pipeline never touches an encoder library directly.
//
//   - Codec interface and the Imaging implementation (codec.go)
//   - BuildOptions: FilePlan to encoder options (builder.go)
//   - Executor: decode, resize, flatten, encode into memory, one at a time (executor.go)
//   - Error taxonomy: ErrDecode, ErrEncode, ErrUnsupportedFormat (errors.go)
//
// Decoding goes through github.com/disintegration/imaging with EXIF
// auto-orientation. WebP and AVIF use github.com/gen2brain/webp and
// github.com/gen2brain/avif; JPEG and PNG use imaging's encoders.
package codec

package planner

import (
	"fmt"

	"github.com/backmassage/pixmaster/internal/config"
)

// QualityResult holds the resolved per-file encoder settings.
type QualityResult struct {
	Quality  int
	Lossless bool
	Note     string
}

// ResolveQuality maps the configured quality and lossless flag onto what the
// target encoder actually honors. Lossless applies to WebP only; PNG accepts
// a quality value but always encodes losslessly.
func ResolveQuality(cfg *config.Config) QualityResult {
	q := config.Clamp(cfg.Quality, config.QualityMin, config.QualityMax)

	switch cfg.TargetFormat {
	case config.FormatWebP:
		if cfg.Lossless {
			return QualityResult{Quality: q, Lossless: true, Note: "webp lossless"}
		}
		return QualityResult{Quality: q, Note: fmt.Sprintf("webp q=%d", q)}
	case config.FormatPNG:
		return QualityResult{Quality: q, Note: "png (quality has no effect)"}
	case config.FormatSkip:
		return QualityResult{Note: "copy"}
	default:
		note := fmt.Sprintf("%s q=%d", cfg.TargetFormat, q)
		if cfg.Lossless {
			note += " (lossless is webp-only; ignored)"
		}
		return QualityResult{Quality: q, Note: note}
	}
}

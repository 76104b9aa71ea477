package codec

import "github.com/backmassage/pixmaster/internal/planner"

// BuildOptions derives encoder options from a plan.
func BuildOptions(plan *planner.FilePlan) Options {
	return Options{
		Quality:  plan.Quality,
		Lossless: plan.Lossless,
	}
}

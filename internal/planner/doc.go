// Package planner decides the per-file action (encode or copy) and builds a
// FilePlan that the codec package consumes.
//
//   - FilePlan, Action (types.go)
//   - BuildPlan: decision matrix (planner.go)
//   - ResolveQuality: per-format quality/lossless resolution (quality.go)
//   - ScaledSize: width-bound resize math (resize.go)
package planner

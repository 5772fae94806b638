package paperlabeler

import (
	"github.com/laurens1995s/paper-labeler/layout"
	"github.com/laurens1995s/paper-labeler/marker"
	"github.com/laurens1995s/paper-labeler/quality"
	"github.com/laurens1995s/paper-labeler/regions"
)

// Config aggregates the configuration of every pipeline stage. Zero-value
// fields are not meaningful; start from DefaultConfig and override.
type Config struct {
	Quality   quality.Config
	Lines     layout.LineConfig
	Geometry  layout.GeometryConfig
	Marker    marker.Config
	Normalize marker.NormalizeConfig
	Assembler regions.AssemblerConfig
	Merge     regions.MergeConfig

	// FallbackTop and FallbackBottom bound the single box suggested per
	// page when marker inference cannot run or produces nothing.
	FallbackTop    float64
	FallbackBottom float64
}

// DefaultConfig returns the default configuration for every stage.
func DefaultConfig() Config {
	return Config{
		Quality:        quality.DefaultConfig(),
		Lines:          layout.DefaultLineConfig(),
		Geometry:       layout.DefaultGeometryConfig(),
		Marker:         marker.DefaultConfig(),
		Normalize:      marker.DefaultNormalizeConfig(),
		Assembler:      regions.DefaultAssemblerConfig(),
		Merge:          regions.DefaultMergeConfig(),
		FallbackTop:    0.16,
		FallbackBottom: 0.98,
	}
}

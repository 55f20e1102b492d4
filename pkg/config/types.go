package config

import (
	"time"

	"github.com/jumpstat/jumpstat/pkg/movement"
)

type PhysicsSettings struct {
	MaxSpeed        float64 `json:"maxSpeed"`
	MaxAirWishSpeed float64 `json:"maxAirWishSpeed"`
	EdgeFriction    float64 `json:"edgeFriction"`
	ProbeAhead      float64 `json:"probeAhead"`
	ProbeDepth      float64 `json:"probeDepth"`
}

func (p PhysicsSettings) Physics() movement.Physics {
	return movement.Physics{
		MaxSpeed:        p.MaxSpeed,
		MaxAirWishSpeed: p.MaxAirWishSpeed,
		EdgeFriction:    p.EdgeFriction,
		ProbeAhead:      p.ProbeAhead,
		ProbeDepth:      p.ProbeDepth,
	}
}

type SegmentSettings struct {
	GroundTolerance int `json:"groundTolerance"`
	RunUpWindow     int `json:"runUpWindow"`
}

type OptimizerSettings struct {
	Window  float64 `json:"window"`
	Step    float64 `json:"step"`
	Workers int     `json:"workers"`
}

type AnalysisSettings struct {
	Physics   PhysicsSettings   `json:"physics"`
	Segments  SegmentSettings   `json:"segments"`
	Optimizer OptimizerSettings `json:"optimizer"`
}

type StorageSettings struct {
	CacheDirectory string `json:"cacheDirectory"`
	Redis          string `json:"redis"`
	CacheTTL       string `json:"cacheTTL"`
	Database       string `json:"database"`
}

// TTL is how long cached reports live. The schema guarantees the format.
func (s StorageSettings) TTL() time.Duration {
	ttl, err := time.ParseDuration(s.CacheTTL)
	if err != nil {
		return time.Hour
	}
	return ttl
}

type Config struct {
	Analysis AnalysisSettings `json:"analysis"`
	Storage  StorageSettings  `json:"storage"`
}

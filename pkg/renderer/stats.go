package renderer

import "time"

// RenderStats contains statistics about one rendered frame
type RenderStats struct {
	Pixels          int           // Pixels rendered
	Hits            int           // Primary rays that hit a shape
	ShadowRays      int           // Shadow rays cast
	ShadowedSamples int           // Shadow rays that found an occluder
	VolumeTests     int           // Bounding volume tests
	VolumeHits      int           // Bounding volume tests that passed
	Elapsed         time.Duration // Wall time of the frame
}

func (s *RenderStats) add(other RenderStats) {
	s.Pixels += other.Pixels
	s.Hits += other.Hits
	s.ShadowRays += other.ShadowRays
	s.ShadowedSamples += other.ShadowedSamples
	s.VolumeTests += other.VolumeTests
	s.VolumeHits += other.VolumeHits
}

// HitRatio returns the fraction of pixels that hit a shape
func (s RenderStats) HitRatio() float64 {
	if s.Pixels == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Pixels)
}

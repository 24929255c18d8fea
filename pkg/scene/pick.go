package scene

import (
	"strings"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
)

// Pick returns the nearest tagged shape that satisfies match and is hit by
// the ray. Only those shapes are tested, so untagged geometry never blocks a pick.
func (s *Scene) Pick(ray core.Ray, match func(tag string) bool) (ShapeID, bool) {
	ids := s.Tagged(match)
	hits := make([]geometry.Hit, len(ids))
	for i, id := range ids {
		hits[i] = s.shapes[id].Intersect(ray)
	}

	winner, _ := geometry.Nearest(hits)
	if winner < 0 {
		return -1, false
	}
	return ids[winner], true
}

// PickSeason reports which season button the ray hits. The ray and the
// scene must be in the same space; pick rays from the canvas are in camera
// space, so convert the scene first.
func PickSeason(s *Scene, ray core.Ray) (Season, bool) {
	id, ok := s.Pick(ray, func(tag string) bool {
		return strings.HasPrefix(tag, seasonTagPrefix)
	})
	if !ok {
		return "", false
	}
	return SeasonOf(s.Tag(id))
}

package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// OnOff paints hits with a fixed color and everything else with the background.
// Useful to check geometry and camera placement.
type OnOff struct {
	World      *geometry.World
	Background core.Color
	Color      core.Color
}

// NewOnOff creates an on/off renderer that paints hits white on black
func NewOnOff(world *geometry.World) *OnOff {
	return &OnOff{World: world, Background: core.Black, Color: core.White}
}

func (r *OnOff) RayColor(ray core.Ray) core.Color {
	if r.World.RayIntersection(ray).Hit {
		return r.Color
	}
	return r.Background
}

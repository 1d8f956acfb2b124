package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewDemoScene creates a sky dome over a checkered ground with a diffuse
// sphere and a mirror sphere
func NewDemoScene(opts Options) (*Scene, error) {
	var groundPigment material.Pigment = material.NewCheckeredPigment(
		core.NewColor(0.3, 0.5, 0.1),
		core.NewColor(0.1, 0.2, 0.5),
		4,
	)
	if opts.GroundTexture != nil {
		groundPigment = material.NewImagePigment(opts.GroundTexture)
	}

	materials := map[string]*material.Material{
		"sky": material.NewMaterial(
			material.NewDiffuseBRDF(material.NewUniformPigment(core.Black), 1.0),
			material.NewUniformPigment(core.NewColor(1.0, 0.9, 0.5)),
		),
		"ground": material.NewMaterial(
			material.NewDiffuseBRDF(groundPigment, 1.0),
			material.NewUniformPigment(core.Black),
		),
		"sphere": material.NewMaterial(
			material.NewDiffuseBRDF(material.NewUniformPigment(core.NewColor(0.3, 0.4, 0.8)), 1.0),
			material.NewUniformPigment(core.Black),
		),
		"mirror": material.NewMaterial(
			material.NewSpecularBRDF(material.NewUniformPigment(core.NewColor(0.6, 0.2, 0.3))),
			material.NewUniformPigment(core.Black),
		),
	}

	world := geometry.NewWorld(
		geometry.NewSphere(
			core.Scaling(core.NewVec(200, 200, 200)).Compose(core.Translation(core.NewVec(0, 0, 0.4))),
			materials["sky"],
		),
		geometry.NewPlane(core.IdentityTransformation(), materials["ground"]),
		geometry.NewSphere(core.Translation(core.NewVec(0, 0, 1)), materials["sphere"]),
		geometry.NewSphere(core.Translation(core.NewVec(1, 2.5, 0)), materials["mirror"]),
	)

	camera, err := NewCamera(opts, core.RotationZ(degToRad(opts.AngleDeg)).Compose(core.Translation(core.NewVec(-1, 0, 1))))
	if err != nil {
		return nil, err
	}

	return &Scene{World: world, Camera: camera, Materials: materials, Background: core.Black}, nil
}

// NewSpheresScene creates ten small white spheres: the eight corners of a
// cube plus two asymmetric ones that reveal the image orientation
func NewSpheresScene(opts Options) (*Scene, error) {
	mat := material.DefaultMaterial()
	scale := core.Scaling(core.NewVec(0.1, 0.1, 0.1))

	world := geometry.NewWorld()
	for _, x := range []float64{-0.5, 0.5} {
		for _, y := range []float64{-0.5, 0.5} {
			for _, z := range []float64{-0.5, 0.5} {
				world.Add(geometry.NewSphere(core.Translation(core.NewVec(x, y, z)).Compose(scale), mat))
			}
		}
	}
	world.Add(geometry.NewSphere(core.Translation(core.NewVec(0, 0, -0.5)).Compose(scale), mat))
	world.Add(geometry.NewSphere(core.Translation(core.NewVec(0, 0.5, 0)).Compose(scale), mat))

	camera, err := NewCamera(opts, core.RotationZ(degToRad(opts.AngleDeg)).Compose(core.Translation(core.NewVec(-1, 0, 0))))
	if err != nil {
		return nil, err
	}

	return &Scene{
		World:      world,
		Camera:     camera,
		Materials:  map[string]*material.Material{"white": mat},
		Background: core.Black,
	}, nil
}

// NewFurnaceScene encloses the camera in a large sphere with uniform
// reflectance and emitted radiance. Every path tracer pixel converges to
// emittedRadiance / (1 - reflectance).
func NewFurnaceScene(emittedRadiance, reflectance float64, opts Options) (*Scene, error) {
	mat := material.NewMaterial(
		material.NewDiffuseBRDF(material.NewUniformPigment(core.White.Multiply(reflectance)), 1.0),
		material.NewUniformPigment(core.White.Multiply(emittedRadiance)),
	)

	world := geometry.NewWorld(geometry.NewSphere(core.Scaling(core.NewVec(10, 10, 10)), mat))

	camera, err := NewCamera(opts, core.RotationZ(degToRad(opts.AngleDeg)))
	if err != nil {
		return nil, err
	}

	return &Scene{
		World:      world,
		Camera:     camera,
		Materials:  map[string]*material.Material{"furnace": mat},
		Background: core.Black,
	}, nil
}

// Package all assembles the complete demo catalog.
package all

import (
	"showcase/demos"
	"showcase/demos/audio"
	"showcase/demos/core"
	"showcase/demos/models"
	"showcase/demos/shaders"
	"showcase/demos/shapes"
	"showcase/demos/text"
	"showcase/demos/textures"
)

// Catalog returns a catalog holding every demo.
func Catalog() *demos.Catalog {
	c := demos.NewCatalog()
	core.Register(c)
	shapes.Register(c)
	text.Register(c)
	textures.Register(c)
	audio.Register(c)
	models.Register(c)
	shaders.Register(c)
	return c
}

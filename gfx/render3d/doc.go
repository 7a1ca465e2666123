// Package render3d is a small, predictable software 3D renderer.
//
// It draws generated meshes, wireframes and lines into a caller-provided
// Target. There is no GPU abstraction and no model file loading.
//
// Pipeline (fixed):
//
//	Mesh → Model/View/Projection → Near clipping → Rasterization → Target.
//
// Rasterization is depth-buffered with flat per-triangle lighting. The
// renderer never clears the target, so 3D passes compose with 2D drawing.
package render3d

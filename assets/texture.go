package assets

import (
	"path"
	"strings"

	"showcase/gfx"
	"showcase/gfx/render3d"
	"showcase/resource"
)

// LoadTexture decodes an image file straight into a texture.
func (l *Loader) LoadTexture(name string) gfx.Texture {
	pix := l.decodeImage(name)
	var t gfx.Texture
	if pix != nil {
		t = gfx.NewTexture(pix)
	}
	t.Handle = l.acquire(resource.KindTexture, name, t.Release)
	l.logTexture(t)
	return t
}

// LoadTextureFromImage copies img into a texture. img may be unloaded
// right after.
func (l *Loader) LoadTextureFromImage(img Image) gfx.Texture {
	var t gfx.Texture
	if l.live(img.Handle, "IMAGE") && img.Pix != nil {
		t = gfx.NewTexture(img.Pix)
	}
	t.Handle = l.acquire(resource.KindTexture, "image", t.Release)
	l.logTexture(t)
	return t
}

func (l *Loader) logTexture(t gfx.Texture) {
	if !t.Valid() {
		l.log.Warn().Msgf("TEXTURE: [ID %d] Failed to load texture", t.Handle.ID())
		return
	}
	l.log.Info().Msgf("TEXTURE: [ID %d] Texture loaded successfully (%dx%d | R8G8B8A8 | 1 mipmaps)", t.Handle.ID(), t.Width, t.Height)
}

func (l *Loader) UnloadTexture(t gfx.Texture) {
	l.release(t.Handle, "TEXTURE")
}

// LoadRenderTexture creates a transparent offscreen target.
func (l *Loader) LoadRenderTexture(w, h int) gfx.RenderTexture {
	var rt gfx.RenderTexture
	if w > 0 && h > 0 {
		rt = gfx.NewRenderTexture(w, h)
	} else {
		l.log.Warn().Msgf("FBO: Invalid render texture size %dx%d", w, h)
	}
	rt.Handle = l.acquire(resource.KindRenderTexture, "render_texture", rt.Release)
	rt.Texture.Handle = rt.Handle
	if rt.Valid() {
		l.log.Info().Msgf("FBO: [ID %d] Framebuffer object created successfully", rt.Handle.ID())
	}
	return rt
}

func (l *Loader) UnloadRenderTexture(rt gfx.RenderTexture) {
	l.release(rt.Handle, "FBO")
}

// baseName strips directories and the extension, so a font or shader file
// path selects the built-in of the same name.
func baseName(name string) string {
	b := path.Base(cleanPath(name))
	return strings.ToLower(strings.TrimSuffix(b, path.Ext(b)))
}

// LoadFont returns the built-in face called name (or the base name of a
// font file path). Unknown names load as a zero font that draws with the
// default face.
func (l *Loader) LoadFont(name string) gfx.Font {
	f, ok := gfx.BuiltinFont(baseName(name))
	if !ok {
		l.log.Warn().Msgf("FONT: [%s] Failed to load font, using default font", name)
		f = gfx.MissingFont(name)
	} else {
		l.log.Info().Msgf("FONT: [%s] Font loaded successfully (%d base size)", name, f.BaseSize)
	}
	f.Handle = l.acquire(resource.KindFont, name, f.Release)
	return f
}

func (l *Loader) UnloadFont(f gfx.Font) {
	l.release(f.Handle, "FONT")
}

// LoadShader selects a built-in post-processing program by name or by the
// base name of a shader file. Unknown names load as a zero shader that
// draws unmodified.
func (l *Loader) LoadShader(name string) gfx.Shader {
	sh, ok := gfx.BuiltinShader(baseName(name))
	if !ok {
		l.log.Warn().Msgf("SHADER: [%s] Failed to load shader, using default shader", name)
		sh = gfx.Shader{Name: name}
	} else {
		l.log.Info().Msgf("SHADER: [%s] Program shader loaded successfully", name)
	}
	sh.Handle = l.acquire(resource.KindShader, name, sh.Release)
	return sh
}

// SetShaderValue sets a float uniform of sh.
func (l *Loader) SetShaderValue(sh gfx.Shader, name string, v float32) {
	if !l.live(sh.Handle, "SHADER") || !sh.Valid() {
		return
	}
	sh.SetValue(name, v)
}

func (l *Loader) UnloadShader(sh gfx.Shader) {
	l.release(sh.Handle, "SHADER")
}

// Mesh generators. Subdivision counts below the minimum are raised to it.

func GenMeshCube(width, height, length float32) render3d.Mesh {
	return render3d.GenCube(width, height, length)
}

func GenMeshPlane(width, length float32, resX, resZ int) render3d.Mesh {
	return render3d.GenPlane(width, length, max(resX, 1), max(resZ, 1))
}

func GenMeshSphere(radius float32, rings, slices int) render3d.Mesh {
	return render3d.GenSphere(radius, max(rings, 3), max(slices, 3))
}

func GenMeshHemiSphere(radius float32, rings, slices int) render3d.Mesh {
	return render3d.GenHemiSphere(radius, max(rings, 3), max(slices, 3))
}

func GenMeshCylinder(radius, height float32, slices int) render3d.Mesh {
	return render3d.GenCylinder(radius, height, max(slices, 3))
}

func GenMeshCone(radius, height float32, slices int) render3d.Mesh {
	return render3d.GenCone(0, radius, height, max(slices, 3))
}

func GenMeshTorus(radius, size float32, radSeg, sides int) render3d.Mesh {
	return render3d.GenTorus(radius, size, max(radSeg, 3), max(sides, 3))
}

func GenMeshKnot(radius, size float32, radSeg, sides int) render3d.Mesh {
	return render3d.GenKnot(radius, size, max(radSeg, 3), max(sides, 3))
}

func GenMeshPoly(sides int, radius float32) render3d.Mesh {
	return render3d.GenPoly(max(sides, 3), radius)
}

// LoadModelFromMesh wraps mesh in a model with an identity transform.
func (l *Loader) LoadModelFromMesh(mesh render3d.Mesh) gfx.Model {
	m := gfx.NewModel(mesh)
	if !m.Valid() {
		l.log.Warn().Msg("MODEL: Empty mesh, model will not draw")
	}
	m.Handle = l.acquire(resource.KindModel, "mesh", m.Release)
	return m
}

func (l *Loader) UnloadModel(m gfx.Model) {
	l.release(m.Handle, "MODEL")
}

package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"
	"testing/fstest"
	"time"

	"showcase/gfx"
	"showcase/hal"
	"showcase/resource"
)

func wavFile(t *testing.T, d time.Duration) []byte {
	t.Helper()
	var buf bytes.Buffer
	pcm := GenWaveTone(44100, Tone{Freq: 440, Duration: d, Volume: 0.5})
	if err := EncodeWAV(&buf, 44100, 1, pcm); err != nil {
		t.Fatalf("EncodeWAV() err = %v", err)
	}
	return buf.Bytes()
}

func pngFile(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})
	img.SetNRGBA(2, 1, color.NRGBA{0, 0, 255, 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() err = %v", err)
	}
	return buf.Bytes()
}

func needDecoders(t *testing.T) {
	t.Helper()
	if !haveDecoders {
		t.Skip("audio decoders need cgo")
	}
}

func newTestLoader(t *testing.T) (*Loader, *resource.Registry) {
	t.Helper()
	fsys := fstest.MapFS{
		"resources/logo.png":  {Data: pngFile(t)},
		"resources/sound.wav": {Data: wavFile(t, 250*time.Millisecond)},
		"resources/music.wav": {Data: wavFile(t, time.Second)},
		"resources/bad.wav":   {Data: []byte("not a wave")},
	}
	host := hal.NewHeadless(hal.Config{Width: 32, Height: 32}, nil)
	reg := resource.NewRegistry()
	if err := reg.Open(); err != nil {
		t.Fatalf("Open() err = %v", err)
	}
	return NewLoader(reg, host.Audio(), WithFS(fsys), WithSeed(1)), reg
}

func TestMissingFileYieldsRegisteredZero(t *testing.T) {
	l, reg := newTestLoader(t)
	tex := l.LoadTexture("resources/missing.png")
	if tex.Valid() {
		t.Fatalf("LoadTexture(missing) Valid() = true")
	}
	if tex.Handle.IsZero() || !reg.Live(tex.Handle) {
		t.Fatalf("missing texture not registered: %v", tex.Handle)
	}
	l.UnloadTexture(tex)
	l.UnloadTexture(tex)
	st := reg.Stats()
	if st.Acquired != 1 || st.Released != 1 || st.Live != 0 {
		t.Fatalf("Stats() = %+v, want one acquire and one release", st)
	}
}

func TestLoadImageAndTexture(t *testing.T) {
	l, reg := newTestLoader(t)
	img := l.LoadImage("./resources/logo.png")
	if img.Width() != 3 || img.Height() != 2 {
		t.Fatalf("LoadImage() size = %dx%d, want 3x2", img.Width(), img.Height())
	}
	tex := l.LoadTextureFromImage(img)
	l.UnloadImage(img)
	if !tex.Valid() || tex.Width != 3 {
		t.Fatalf("LoadTextureFromImage() = %+v", tex)
	}
	if got := tex.Image().NRGBAAt(0, 0); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Fatalf("texel 0,0 = %v, want red", got)
	}
	l.ImageResize(&img, 6, 4)
	if img.Width() != 3 {
		t.Fatalf("ImageResize() changed an unloaded image")
	}
	l.UnloadTexture(tex)
	if reg.Stats().Live != 0 {
		t.Fatalf("Live = %d, want 0", reg.Stats().Live)
	}
}

func TestUnloadInvalidatesEveryCopy(t *testing.T) {
	l, reg := newTestLoader(t)
	img := l.GenImageColor(2, 2, gfx.Red)
	tex := l.LoadTextureFromImage(img)
	l.UnloadImage(img)
	rt := l.LoadRenderTexture(4, 4)
	font := l.LoadFont("resources/fonts/freemono12.ttf")
	sh := l.LoadShader("resources/shaders/glsl330/grayscale.fs")
	model := l.LoadModelFromMesh(GenMeshCube(1, 1, 1))
	if !tex.Valid() || !rt.Valid() || !font.Valid() || !sh.Valid() || !model.Valid() {
		t.Fatalf("loaded resources not valid")
	}

	held := struct {
		tex   gfx.Texture
		rt    gfx.RenderTexture
		font  gfx.Font
		sh    gfx.Shader
		model gfx.Model
	}{tex, rt, font, sh, model}
	l.UnloadTexture(tex)
	l.UnloadRenderTexture(rt)
	l.UnloadFont(font)
	l.UnloadShader(sh)
	l.UnloadModel(model)

	if held.tex.Valid() {
		t.Fatalf("texture Valid() = true, want false after UnloadTexture")
	}
	if held.rt.Valid() || held.rt.Texture.Valid() {
		t.Fatalf("render texture Valid() = true, want false after UnloadRenderTexture")
	}
	if held.font.Valid() {
		t.Fatalf("font Valid() = true, want false after UnloadFont")
	}
	if held.sh.Valid() {
		t.Fatalf("shader Valid() = true, want false after UnloadShader")
	}
	if held.model.Valid() {
		t.Fatalf("model Valid() = true, want false after UnloadModel")
	}
	if got := reg.Stats().Live; got != 0 {
		t.Fatalf("Live = %d, want 0", got)
	}
}

func TestImageResize(t *testing.T) {
	l, _ := newTestLoader(t)
	img := l.GenImageColor(4, 4, gfx.Red)
	l.ImageResizeNN(&img, 8, 2)
	if img.Width() != 8 || img.Height() != 2 {
		t.Fatalf("ImageResizeNN() size = %dx%d, want 8x2", img.Width(), img.Height())
	}
	if got := img.Pix.NRGBAAt(7, 1); got != (color.NRGBA{gfx.Red.R, gfx.Red.G, gfx.Red.B, 255}) {
		t.Fatalf("resized pixel = %v, want red", got)
	}
}

func TestGenerators(t *testing.T) {
	l, _ := newTestLoader(t)
	for name, img := range map[string]Image{
		"color":    l.GenImageColor(16, 8, gfx.Blue),
		"linear":   l.GenImageGradientLinear(16, 8, 45, gfx.Red, gfx.Blue),
		"radial":   l.GenImageGradientRadial(16, 8, 0, gfx.White, gfx.Black),
		"square":   l.GenImageGradientSquare(16, 8, 0, gfx.White, gfx.Black),
		"checked":  l.GenImageChecked(16, 8, 4, 4, gfx.Red, gfx.Blue),
		"white":    l.GenImageWhiteNoise(16, 8, 0.5),
		"perlin":   l.GenImagePerlinNoise(16, 8, 50, 50, 4),
		"cellular": l.GenImageCellular(16, 8, 4),
	} {
		if img.Width() != 16 || img.Height() != 8 || img.Handle.IsZero() {
			t.Fatalf("%s: size = %dx%d handle = %v", name, img.Width(), img.Height(), img.Handle)
		}
	}

	v := l.GenImageGradientLinear(4, 10, 0, gfx.Black, gfx.White)
	if top, bottom := v.Pix.NRGBAAt(0, 0).R, v.Pix.NRGBAAt(0, 9).R; top != 0 || bottom < 200 {
		t.Fatalf("vertical gradient = %d..%d, want 0..>200", top, bottom)
	}
	c := l.GenImageChecked(8, 8, 4, 4, gfx.Red, gfx.Blue)
	if got := c.Pix.NRGBAAt(0, 0).R; got != gfx.Red.R {
		t.Fatalf("checked 0,0 R = %d, want %d", got, gfx.Red.R)
	}
	if got := c.Pix.NRGBAAt(4, 0).B; got != gfx.Blue.B {
		t.Fatalf("checked 4,0 B = %d, want %d", got, gfx.Blue.B)
	}
	if none := l.GenImageWhiteNoise(8, 8, 0); none.Pix.NRGBAAt(3, 3).R != 0 {
		t.Fatalf("white noise with factor 0 has white pixels")
	}
}

func TestFontAndShaderFallback(t *testing.T) {
	l, reg := newTestLoader(t)
	f := l.LoadFont("resources/fonts/freemono12.ttf")
	if !f.Valid() {
		t.Fatalf("LoadFont(freemono12) not valid")
	}
	bad := l.LoadFont("comic")
	if bad.Valid() || bad.Handle.IsZero() {
		t.Fatalf("LoadFont(comic) = %+v, want registered zero font", bad)
	}
	sh := l.LoadShader("resources/shaders/glsl330/grayscale.fs")
	if !sh.Valid() {
		t.Fatalf("LoadShader(grayscale) not valid")
	}
	l.SetShaderValue(sh, "levels", 3)
	l.UnloadShader(sh)
	l.SetShaderValue(sh, "levels", 5)
	if got := sh.Float("levels", 0); got != 3 {
		t.Fatalf("uniform after unload = %v, want 3", got)
	}
	l.UnloadFont(f)
	l.UnloadFont(bad)
	if reg.Stats().Live != 0 {
		t.Fatalf("Live = %d, want 0", reg.Stats().Live)
	}
}

func TestSoundAliasesBeforeOwner(t *testing.T) {
	needDecoders(t)
	l, reg := newTestLoader(t)
	l.InitAudioDevice()
	if !l.IsAudioDeviceReady() {
		t.Fatalf("IsAudioDeviceReady() = false")
	}
	src := l.LoadSound("resources/sound.wav")
	if !src.Valid() || src.FrameCount != 44100/4 {
		t.Fatalf("LoadSound() = valid %v frames %d, want %d", src.Valid(), src.FrameCount, 44100/4)
	}
	alias := l.LoadSoundAlias(src)
	if owner, ok := reg.Owner(alias.Handle); !ok || owner != src.Handle {
		t.Fatalf("Owner(alias) = %v, %v", owner, ok)
	}

	l.UnloadSound(src)
	if !reg.Live(src.Handle) {
		t.Fatalf("owner released while alias live")
	}
	l.CloseAudioDevice()
	if !l.IsAudioDeviceReady() {
		t.Fatalf("device closed while sounds live")
	}

	l.PlaySound(alias)
	if !l.IsSoundPlaying(alias) || l.IsSoundPlaying(src) {
		t.Fatalf("alias and source must play independently")
	}
	l.UnloadSoundAlias(alias)
	l.UnloadSound(src)
	l.CloseAudioDevice()
	if l.IsAudioDeviceReady() {
		t.Fatalf("IsAudioDeviceReady() = true after close")
	}
	if st := reg.Stats(); st.Live != 0 || st.AutoReleased != 0 {
		t.Fatalf("Stats() = %+v", st)
	}
}

func TestSoundUnloadPathsAreDistinct(t *testing.T) {
	needDecoders(t)
	l, reg := newTestLoader(t)
	l.InitAudioDevice()
	src := l.LoadSound("resources/sound.wav")
	alias := l.LoadSoundAlias(src)

	l.UnloadSound(alias)
	if !reg.Live(alias.Handle) {
		t.Fatalf("alias released through UnloadSound")
	}
	l.UnloadSoundAlias(alias)
	if reg.Live(alias.Handle) {
		t.Fatalf("UnloadSoundAlias() left the alias live")
	}

	l.UnloadSoundAlias(src)
	if !reg.Live(src.Handle) {
		t.Fatalf("source released through UnloadSoundAlias")
	}
	l.UnloadSound(src)
	l.CloseAudioDevice()
	if st := reg.Stats(); st.Live != 0 {
		t.Fatalf("Stats() = %+v, want nothing live", st)
	}
}

func TestCloseReleasesSoundsBeforeDevice(t *testing.T) {
	needDecoders(t)
	l, reg := newTestLoader(t)
	l.InitAudioDevice()
	src := l.LoadSound("resources/sound.wav")
	l.LoadSoundAlias(src)
	l.LoadMusicStream("resources/music.wav")
	if err := reg.Close(); err != nil {
		t.Fatalf("Close() err = %v", err)
	}
	var order []resource.Kind
	for _, ev := range reg.Leaked() {
		order = append(order, ev.Handle.Kind())
	}
	if len(order) != 4 || order[len(order)-1] != resource.KindAudioDevice {
		t.Fatalf("release order = %v, want device last", order)
	}
	for i, k := range order {
		if k == resource.KindSound {
			for _, a := range order[i:] {
				if a == resource.KindSoundAlias {
					t.Fatalf("alias released after its sound: %v", order)
				}
			}
		}
	}
}

func TestUseAfterUnloadIsNoop(t *testing.T) {
	needDecoders(t)
	l, _ := newTestLoader(t)
	l.InitAudioDevice()
	s := l.LoadSound("resources/sound.wav")
	l.UnloadSound(s)
	l.PlaySound(s)
	if l.IsSoundPlaying(s) {
		t.Fatalf("unloaded sound plays")
	}
	if a := l.LoadSoundAlias(s); !a.Handle.IsZero() {
		t.Fatalf("alias of unloaded sound registered")
	}
}

func TestBadAudioAndNoDevice(t *testing.T) {
	needDecoders(t)
	l, reg := newTestLoader(t)
	s := l.LoadSound("resources/sound.wav")
	if s.Valid() || s.FrameCount == 0 {
		t.Fatalf("LoadSound() without device: valid %v frames %d", s.Valid(), s.FrameCount)
	}
	l.InitAudioDevice()
	bad := l.LoadSound("resources/bad.wav")
	if bad.Valid() || bad.Handle.IsZero() {
		t.Fatalf("LoadSound(bad) = %+v", bad)
	}
	odd := l.LoadMusicStream("resources/tune.flac")
	if odd.Valid() || odd.Handle.IsZero() {
		t.Fatalf("LoadMusicStream(flac) = %+v", odd)
	}
	if err := reg.Close(); err != nil {
		t.Fatalf("Close() err = %v", err)
	}
}

func TestMusicStream(t *testing.T) {
	needDecoders(t)
	l, _ := newTestLoader(t)
	l.InitAudioDevice()
	m := l.LoadMusicStream("resources/music.wav")
	if !m.Valid() || !m.Looping {
		t.Fatalf("LoadMusicStream() = %+v", m)
	}
	if got := l.GetMusicTimeLength(m); math.Abs(float64(got)-1) > 0.01 {
		t.Fatalf("GetMusicTimeLength() = %v, want 1", got)
	}
	l.PlayMusicStream(m)
	if !l.IsMusicStreamPlaying(m) {
		t.Fatalf("IsMusicStreamPlaying() = false after play")
	}
	l.PauseMusicStream(m)
	if l.IsMusicStreamPlaying(m) {
		t.Fatalf("IsMusicStreamPlaying() = true after pause")
	}
	l.ResumeMusicStream(m)
	l.StopMusicStream(m)
	if l.GetMusicTimePlayed(m) != 0 {
		t.Fatalf("GetMusicTimePlayed() = %v after stop, want 0", l.GetMusicTimePlayed(m))
	}
	l.UnloadMusicStream(m)
	l.CloseAudioDevice()
}

func TestLoadBeforeContextOpen(t *testing.T) {
	reg := resource.NewRegistry()
	l := NewLoader(reg, nil, WithFS(fstest.MapFS{}))
	if tex := l.LoadRenderTexture(4, 4); !tex.Handle.IsZero() {
		t.Fatalf("render texture registered before Open")
	}
	if img := l.GenImageColor(2, 2, gfx.Red); img.Handle.IsZero() {
		t.Fatalf("CPU image refused before Open")
	}
}

func TestRandomSequence(t *testing.T) {
	l, _ := newTestLoader(t)
	seq := l.LoadRandomSequence(10, 0, 9)
	seen := map[int]bool{}
	for _, v := range seq {
		if v < 0 || v > 9 || seen[v] {
			t.Fatalf("LoadRandomSequence() = %v, want a permutation of 0..9", seq)
		}
		seen[v] = true
	}
	if len(seen) != 10 {
		t.Fatalf("LoadRandomSequence() len = %d, want 10", len(seen))
	}
	if l.LoadRandomSequence(5, 0, 2) != nil {
		t.Fatalf("LoadRandomSequence(5, 0, 2) want nil")
	}
	for i := 0; i < 100; i++ {
		if v := l.GetRandomValue(5, -5); v < -5 || v > 5 {
			t.Fatalf("GetRandomValue() = %d out of range", v)
		}
	}
}

// Package audio holds the sound and music demos. Each one opens the audio
// device in Load and closes it last in Unload, after every sound.
package audio

import (
	"showcase/assets"
	"showcase/demos"
	"showcase/gfx"
	"showcase/hal"
	"showcase/loop"
)

func Register(c *demos.Catalog) {
	c.Register(demos.Entry{
		Name:  "audio/sound_loading",
		Title: "showcase [audio] example - sound loading and playing",
		New:   func() loop.Demo { return &soundLoading{} },
		Smoke: func() *hal.Script {
			return (&hal.Script{}).KeyTap(2, hal.KeySpace).KeyTap(4, hal.KeyEnter)
		},
	})
	c.Register(demos.Entry{
		Name:  "audio/sound_multi",
		Title: "showcase [audio] example - playing sound multiple times",
		New:   func() loop.Demo { return &soundMulti{} },
		Smoke: func() *hal.Script {
			s := &hal.Script{}
			for f := uint64(2); f < 26; f += 2 {
				s.KeyTap(f, hal.KeySpace)
			}
			return s
		},
	})
	c.Register(demos.Entry{
		Name:  "audio/music_stream",
		Title: "showcase [audio] example - music playing (streaming)",
		New:   func() loop.Demo { return &musicStream{} },
		Smoke: func() *hal.Script {
			return (&hal.Script{}).KeyTap(5, hal.KeyP).KeyTap(8, hal.KeyP).KeyTap(10, hal.KeySpace)
		},
	})
}

type soundLoading struct {
	wav, other assets.Sound
}

func (d *soundLoading) Load(ctx *loop.Context) error {
	ctx.Assets.InitAudioDevice()
	d.wav = ctx.Assets.LoadSound("resources/sound.wav")
	d.other = ctx.Assets.LoadSound("resources/target.wav")
	ctx.SetTargetFPS(60)
	return nil
}

func (d *soundLoading) Unload(ctx *loop.Context) error {
	ctx.Assets.UnloadSound(d.wav)
	ctx.Assets.UnloadSound(d.other)
	ctx.Assets.CloseAudioDevice()
	return nil
}

func (d *soundLoading) Update(ctx *loop.Context) {
	if ctx.IsKeyPressed(hal.KeySpace) {
		ctx.Assets.PlaySound(d.wav)
	}
	if ctx.IsKeyPressed(hal.KeyEnter) {
		ctx.Assets.PlaySound(d.other)
	}
}

func (d *soundLoading) Draw(_ *loop.Context, c *gfx.Canvas) {
	c.ClearBackground(gfx.RayWhite)
	c.DrawText("Press SPACE to PLAY the WAV sound!", 200, 180, 20, gfx.LightGray)
	c.DrawText("Press ENTER to PLAY the 8-bit WAV sound!", 200, 220, 20, gfx.LightGray)
}

const maxSounds = 10

// soundMulti plays overlapping copies of one clip through aliases that
// share its samples.
type soundMulti struct {
	sounds  [maxSounds]assets.Sound
	current int
}

func (d *soundMulti) Load(ctx *loop.Context) error {
	ctx.Assets.InitAudioDevice()
	d.sounds[0] = ctx.Assets.LoadSound("resources/sound.wav")
	for i := 1; i < maxSounds; i++ {
		d.sounds[i] = ctx.Assets.LoadSoundAlias(d.sounds[0])
	}
	ctx.SetTargetFPS(60)
	return nil
}

func (d *soundMulti) Unload(ctx *loop.Context) error {
	for i := 1; i < maxSounds; i++ {
		ctx.Assets.UnloadSoundAlias(d.sounds[i])
	}
	ctx.Assets.UnloadSound(d.sounds[0])
	ctx.Assets.CloseAudioDevice()
	return nil
}

func (d *soundMulti) Update(ctx *loop.Context) {
	if ctx.IsKeyPressed(hal.KeySpace) {
		ctx.Assets.PlaySound(d.sounds[d.current])
		d.current = (d.current + 1) % maxSounds
	}
}

func (d *soundMulti) Draw(_ *loop.Context, c *gfx.Canvas) {
	c.ClearBackground(gfx.RayWhite)
	c.DrawText("Press SPACE to PLAY a WAV sound!", 200, 180, 20, gfx.LightGray)
}

type musicStream struct {
	music  assets.Music
	played float32
	pause  bool
}

func (d *musicStream) Load(ctx *loop.Context) error {
	ctx.Assets.InitAudioDevice()
	d.music = ctx.Assets.LoadMusicStream("resources/music.wav")
	ctx.Assets.PlayMusicStream(d.music)
	ctx.SetTargetFPS(30)
	return nil
}

func (d *musicStream) Unload(ctx *loop.Context) error {
	ctx.Assets.UnloadMusicStream(d.music)
	ctx.Assets.CloseAudioDevice()
	return nil
}

func (d *musicStream) Update(ctx *loop.Context) {
	a := ctx.Assets
	if ctx.IsKeyPressed(hal.KeySpace) {
		a.StopMusicStream(d.music)
		a.PlayMusicStream(d.music)
	}
	if ctx.IsKeyPressed(hal.KeyP) {
		d.pause = !d.pause
		if d.pause {
			a.PauseMusicStream(d.music)
		} else {
			a.ResumeMusicStream(d.music)
		}
	}
	d.played = 0
	if length := a.GetMusicTimeLength(d.music); length > 0 {
		d.played = min(a.GetMusicTimePlayed(d.music)/length, 1)
	}
}

func (d *musicStream) Draw(_ *loop.Context, c *gfx.Canvas) {
	c.ClearBackground(gfx.RayWhite)
	c.DrawText("MUSIC SHOULD BE PLAYING!", 255, 150, 20, gfx.LightGray)
	c.DrawRectangle(200, 200, 400, 12, gfx.LightGray)
	c.DrawRectangle(200, 200, int(d.played*400), 12, gfx.Maroon)
	c.DrawRectangleLines(200, 200, 400, 12, gfx.Gray)
	c.DrawText("PRESS SPACE TO RESTART MUSIC", 215, 250, 20, gfx.LightGray)
	c.DrawText("PRESS P TO PAUSE/RESUME MUSIC", 208, 280, 20, gfx.LightGray)
}

package resource

import "fmt"

// Kind classifies a resource by where it lives and how it is released.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindAudioDevice
	KindImage
	KindTexture
	KindRenderTexture
	KindFont
	KindSound
	KindSoundAlias
	KindMusic
	KindModel
	KindShader

	kindCount
)

var kindNames = [...]string{
	KindUnknown:       "unknown",
	KindAudioDevice:   "audio_device",
	KindImage:         "image",
	KindTexture:       "texture",
	KindRenderTexture: "render_texture",
	KindFont:          "font",
	KindSound:         "sound",
	KindSoundAlias:    "sound_alias",
	KindMusic:         "music",
	KindModel:         "model",
	KindShader:        "shader",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// NeedsContext reports whether resources of this kind live on the rendering
// device and therefore can only be acquired while the registry is open.
func (k Kind) NeedsContext() bool {
	switch k {
	case KindTexture, KindRenderTexture, KindFont, KindModel, KindShader:
		return true
	}
	return false
}

// aliasKind returns the alias kind for an owner kind.
func aliasKind(owner Kind) Kind {
	if owner == KindSound {
		return KindSoundAlias
	}
	return owner
}

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := KindAudioDevice; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

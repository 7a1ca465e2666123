package assets

import (
	"math"
	"math/rand/v2"
)

// perlin is improved gradient noise over a shuffled permutation table.
type perlin struct {
	perm [512]uint8
}

func newPerlin(rng *rand.Rand) *perlin {
	p := &perlin{}
	for i, v := range rng.Perm(256) {
		p.perm[i] = uint8(v)
		p.perm[i+256] = uint8(v)
	}
	return p
}

func fade(t float64) float64 { return t * t * t * (t*(t*6-15) + 10) }

func lerp(a, b, t float64) float64 { return a + t*(b-a) }

func grad(hash uint8, x, y, z float64) float64 {
	h := hash & 15
	u, v := y, z
	if h < 8 {
		u = x
	}
	if h < 4 {
		v = y
	} else if h == 12 || h == 14 {
		v = x
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

// noise returns a value in about [-1, 1].
func (p *perlin) noise(x, y, z float64) float64 {
	fx, fy, fz := math.Floor(x), math.Floor(y), math.Floor(z)
	xi, yi, zi := int(fx)&255, int(fy)&255, int(fz)&255
	x, y, z = x-fx, y-fy, z-fz
	u, v, w := fade(x), fade(y), fade(z)

	pm := &p.perm
	a := int(pm[xi]) + yi
	aa, ab := int(pm[a])+zi, int(pm[a+1])+zi
	b := int(pm[xi+1]) + yi
	ba, bb := int(pm[b])+zi, int(pm[b+1])+zi

	return lerp(
		lerp(
			lerp(grad(pm[aa], x, y, z), grad(pm[ba], x-1, y, z), u),
			lerp(grad(pm[ab], x, y-1, z), grad(pm[bb], x-1, y-1, z), u),
			v),
		lerp(
			lerp(grad(pm[aa+1], x, y, z-1), grad(pm[ba+1], x-1, y, z-1), u),
			lerp(grad(pm[ab+1], x, y-1, z-1), grad(pm[bb+1], x-1, y-1, z-1), u),
			v),
		w)
}

// fbm sums octaves of noise sampled in the z plane.
func (p *perlin) fbm(x, y, z, lacunarity, gain float64, octaves int) float64 {
	freq, amp, sum := 1.0, 1.0, 0.0
	for i := 0; i < octaves; i++ {
		sum += p.noise(x*freq, y*freq, z*freq) * amp
		freq *= lacunarity
		amp *= gain
	}
	return sum
}

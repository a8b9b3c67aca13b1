package graphics

import "math"

// emphasisAttenuation is the fraction the 2C02 multiplies a non-emphasized
// channel by when a PPUMASK ($2001) color-emphasis bit is set: emphasizing
// a channel tints the picture by dimming the other two, it never brightens
// the emphasized one. This core doesn't decode $2001 (see internal/memory),
// so nothing in the bus/PPU path sets these; VideoProcessor exposes the
// effect as an explicit post-process for a host that wants to reproduce it
// (e.g. from ROM-specific knowledge of which bits a game leaves set).
const emphasisAttenuation = 0.8167

// VideoProcessor applies post-processing to a rendered PPU frame buffer:
// brightness/contrast/saturation correction, plus the NES's color-emphasis
// tint.
type VideoProcessor struct {
	brightness float32
	contrast   float32
	saturation float32

	emphasizeRed, emphasizeGreen, emphasizeBlue bool
}

// NewVideoProcessor creates a processor with the given brightness,
// contrast, and saturation; color emphasis starts disabled.
func NewVideoProcessor(brightness, contrast, saturation float32) *VideoProcessor {
	return &VideoProcessor{
		brightness: brightness,
		contrast:   contrast,
		saturation: saturation,
	}
}

// SetEmphasis sets which color channels are emphasized, mirroring
// PPUMASK bits 5-7.
func (vp *VideoProcessor) SetEmphasis(red, green, blue bool) {
	vp.emphasizeRed = red
	vp.emphasizeGreen = green
	vp.emphasizeBlue = blue
}

// isIdentity reports whether ProcessFrame would leave every pixel
// unchanged, letting ProcessFrame skip the per-pixel loop.
func (vp *VideoProcessor) isIdentity() bool {
	return vp.brightness == 1.0 && vp.contrast == 1.0 && vp.saturation == 1.0 &&
		!vp.emphasizeRed && !vp.emphasizeGreen && !vp.emphasizeBlue
}

// ProcessFrame applies brightness, contrast, saturation, and color
// emphasis to a frame buffer of packed 24-bit RGB pixels.
func (vp *VideoProcessor) ProcessFrame(frameBuffer []uint32) []uint32 {
	if vp.isIdentity() {
		return frameBuffer
	}

	processed := make([]uint32, len(frameBuffer))

	emphasizeAny := vp.emphasizeRed || vp.emphasizeGreen || vp.emphasizeBlue

	for i, pixel := range frameBuffer {
		r := float32((pixel >> 16) & 0xFF)
		g := float32((pixel >> 8) & 0xFF)
		b := float32(pixel & 0xFF)

		r *= vp.brightness
		g *= vp.brightness
		b *= vp.brightness

		r = ((r/255.0 - 0.5) * vp.contrast + 0.5) * 255.0
		g = ((g/255.0 - 0.5) * vp.contrast + 0.5) * 255.0
		b = ((b/255.0 - 0.5) * vp.contrast + 0.5) * 255.0

		if vp.saturation != 1.0 {
			h, s, l := rgbToHSL(r/255.0, g/255.0, b/255.0)
			s *= vp.saturation
			if s > 1.0 {
				s = 1.0
			}
			r, g, b = hslToRGB(h, s, l)
			r *= 255.0
			g *= 255.0
			b *= 255.0
		}

		if emphasizeAny {
			if !vp.emphasizeRed {
				r *= emphasisAttenuation
			}
			if !vp.emphasizeGreen {
				g *= emphasisAttenuation
			}
			if !vp.emphasizeBlue {
				b *= emphasisAttenuation
			}
		}

		r = clamp(r, 0, 255)
		g = clamp(g, 0, 255)
		b = clamp(b, 0, 255)

		processed[i] = (uint32(r) << 16) | (uint32(g) << 8) | uint32(b)
	}

	return processed
}

// clamp limits a value to [min, max].
func clamp(value, min, max float32) float32 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// rgbToHSL converts RGB (each in [0,1]) to HSL.
func rgbToHSL(r, g, b float32) (h, s, l float32) {
	max := math.Max(float64(r), math.Max(float64(g), float64(b)))
	min := math.Min(float64(r), math.Min(float64(g), float64(b)))

	l = float32((max + min) / 2.0)

	if max == min {
		h = 0
		s = 0
	} else {
		d := float32(max - min)
		if l > 0.5 {
			s = d / float32(2.0-max-min)
		} else {
			s = d / float32(max+min)
		}

		switch max {
		case float64(r):
			h = (g - b) / d
			if g < b {
				h += 6
			}
		case float64(g):
			h = (b-r)/d + 2
		case float64(b):
			h = (r-g)/d + 4
		}
		h /= 6
	}

	return h, s, l
}

// hslToRGB converts HSL back to RGB (each in [0,1]).
func hslToRGB(h, s, l float32) (r, g, b float32) {
	if s == 0 {
		r = l
		g = l
		b = l
	} else {
		var q float32
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p := 2*l - q
		r = hueToRGB(p, q, h+1.0/3.0)
		g = hueToRGB(p, q, h)
		b = hueToRGB(p, q, h-1.0/3.0)
	}

	return r, g, b
}

// hueToRGB maps one hue sector to an RGB channel for hslToRGB.
func hueToRGB(p, q, t float32) float32 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	if t < 1.0/6.0 {
		return p + (q-p)*6*t
	}
	if t < 1.0/2.0 {
		return q
	}
	if t < 2.0/3.0 {
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}

// SetBrightness updates the brightness multiplier.
func (vp *VideoProcessor) SetBrightness(brightness float32) {
	vp.brightness = brightness
}

// SetContrast updates the contrast multiplier.
func (vp *VideoProcessor) SetContrast(contrast float32) {
	vp.contrast = contrast
}

// SetSaturation updates the saturation multiplier.
func (vp *VideoProcessor) SetSaturation(saturation float32) {
	vp.saturation = saturation
}

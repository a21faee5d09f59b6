package engine

import "image/color"

// Pixel is an 8-bit RGBA colour.
type Pixel = color.RGBA

var (
	White        = Pixel{255, 255, 255, 255}
	Black        = Pixel{0, 0, 0, 255}
	Red          = Pixel{255, 0, 0, 255}
	Green        = Pixel{0, 255, 0, 255}
	Blue         = Pixel{0, 0, 255, 255}
	Yellow       = Pixel{255, 255, 0, 255}
	Cyan         = Pixel{0, 255, 255, 255}
	VeryDarkBlue = Pixel{0, 0, 64, 255}
	Blank        = Pixel{0, 0, 0, 0}
)

// Modulate multiplies two colours channel-wise, treating 255 as 1.
func Modulate(a, b Pixel) Pixel {
	return Pixel{
		R: uint8(uint32(a.R) * uint32(b.R) / 255),
		G: uint8(uint32(a.G) * uint32(b.G) / 255),
		B: uint8(uint32(a.B) * uint32(b.B) / 255),
		A: uint8(uint32(a.A) * uint32(b.A) / 255),
	}
}

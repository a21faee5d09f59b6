package engine

import (
	"image"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Sprite is a CPU-side pixel buffer the 2D drawing routines render into.
type Sprite struct {
	img *image.RGBA
}

// NewSprite returns a transparent sprite of the given size.
func NewSprite(w, h int) *Sprite {
	return &Sprite{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

// SpriteFromImage copies any image into a new sprite.
func SpriteFromImage(src image.Image) *Sprite {
	b := src.Bounds()
	s := NewSprite(b.Dx(), b.Dy())
	draw.Draw(s.img, s.img.Bounds(), src, b.Min, draw.Src)
	return s
}

func (s *Sprite) Width() int  { return s.img.Rect.Dx() }
func (s *Sprite) Height() int { return s.img.Rect.Dy() }

// Image exposes the backing buffer.
func (s *Sprite) Image() *image.RGBA { return s.img }

// Pixels returns the raw RGBA bytes, row-major, 4 bytes per pixel.
func (s *Sprite) Pixels() []byte { return s.img.Pix }

func (s *Sprite) Clear(p Pixel) {
	pix := s.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = p.R, p.G, p.B, p.A
	}
}

func (s *Sprite) SetPixel(x, y int, p Pixel) {
	if !(image.Point{x, y}.In(s.img.Rect)) {
		return
	}
	i := s.img.PixOffset(x, y)
	s.img.Pix[i], s.img.Pix[i+1], s.img.Pix[i+2], s.img.Pix[i+3] = p.R, p.G, p.B, p.A
}

func (s *Sprite) GetPixel(x, y int) Pixel {
	if !(image.Point{x, y}.In(s.img.Rect)) {
		return Blank
	}
	return s.img.RGBAAt(x, y)
}

// FillCircle fills a disc of radius r centred on c.
func (s *Sprite) FillCircle(c image.Point, r int, p Pixel) {
	if r < 0 {
		return
	}
	if r == 0 {
		s.SetPixel(c.X, c.Y, p)
		return
	}
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				s.SetPixel(c.X+dx, c.Y+dy, p)
			}
		}
	}
}

// DrawLine draws a one pixel wide line from a to b inclusive (Bresenham).
func (s *Sprite) DrawLine(a, b image.Point, p Pixel) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy
	x, y := a.X, a.Y
	for {
		s.SetPixel(x, y, p)
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// LineHeight is the vertical advance between lines of DrawString text.
const LineHeight = 13

// DrawString renders text with its top-left corner at pos. Newlines start a new line.
func (s *Sprite) DrawString(pos image.Point, text string, p Pixel) {
	face := basicfont.Face7x13
	d := font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(p),
		Face: face,
	}
	for i, line := range strings.Split(text, "\n") {
		d.Dot = fixed.P(pos.X, pos.Y+face.Ascent+i*LineHeight)
		d.DrawString(line)
	}
}

// DrawSprite copies src onto s at pos, scaled by (sx, sy) with nearest-neighbour sampling.
// Fully transparent source pixels are skipped.
func (s *Sprite) DrawSprite(pos image.Point, src *Sprite, sx, sy float32) {
	if src == nil || sx <= 0 || sy <= 0 {
		return
	}
	w := int(float32(src.Width()) * sx)
	h := int(float32(src.Height()) * sy)
	for y := 0; y < h; y++ {
		srcY := int(float32(y) / sy)
		for x := 0; x < w; x++ {
			c := src.GetPixel(int(float32(x)/sx), srcY)
			if c.A == 0 {
				continue
			}
			s.SetPixel(pos.X+x, pos.Y+y, c)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

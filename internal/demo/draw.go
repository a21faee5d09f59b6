package demo

import (
	"image"

	"hw3d-demo/internal/engine"
)

// DrawTargetPointer draws a filled circle at c with four arms of length n.
func DrawTargetPointer(e engine.Engine, c image.Point, n, radius int, p engine.Pixel) {
	e.FillCircle(c, radius, p)
	e.DrawLine(c, image.Pt(c.X, c.Y+n), p)
	e.DrawLine(c, image.Pt(c.X, c.Y-n), p)
	e.DrawLine(c, image.Pt(c.X+n, c.Y), p)
	e.DrawLine(c, image.Pt(c.X-n, c.Y), p)
}

// Badge is the built-in logo: three overlapping discs over a caption.
func Badge() *engine.Sprite {
	s := engine.NewSprite(180, 180)
	s.FillCircle(image.Pt(60, 70), 40, engine.Red)
	s.FillCircle(image.Pt(120, 70), 40, engine.Blue)
	s.FillCircle(image.Pt(90, 110), 40, engine.Green)
	s.DrawString(image.Pt(48, 158), "PGE MOBILE", engine.White)
	return s
}

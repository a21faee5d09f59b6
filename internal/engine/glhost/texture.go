package glhost

import (
	"image"

	"hw3d-demo/internal/engine"

	"github.com/go-gl/gl/v4.1-core/gl"
)

type texture struct {
	id       uint32
	w, h     int
	revision uint64
}

// textureCache keeps one GL texture per decal, re-uploading when the decal's
// revision moves.
type textureCache struct {
	textures map[*engine.Decal]*texture
}

func newTextureCache() *textureCache {
	return &textureCache{textures: make(map[*engine.Decal]*texture)}
}

func (c *textureCache) bind(d *engine.Decal) {
	t, ok := c.textures[d]
	img := d.Sprite().Image()
	if !ok {
		t = &texture{id: newTexture()}
		c.textures[d] = t
		upload(t, img)
		t.revision = d.Revision()
	} else if t.revision != d.Revision() {
		upload(t, img)
		t.revision = d.Revision()
	}
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}

// prune drops textures for decals that were not used this frame.
func (c *textureCache) prune(live map[*engine.Decal]bool) {
	for d, t := range c.textures {
		if !live[d] {
			gl.DeleteTextures(1, &t.id)
			delete(c.textures, d)
		}
	}
}

func (c *textureCache) dispose() {
	for d, t := range c.textures {
		gl.DeleteTextures(1, &t.id)
		delete(c.textures, d)
	}
}

func newTexture() uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	return id
}

// upload writes img into t, reallocating storage only when the size changes.
func upload(t *texture, img *image.RGBA) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	if w != t.w || h != t.h {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
		t.w, t.h = w, h
	} else {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	}
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
}

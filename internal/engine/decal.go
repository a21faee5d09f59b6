package engine

// Decal is a sprite prepared for the GPU. Hosts upload it lazily and re-upload
// whenever Revision changes.
type Decal struct {
	sprite   *Sprite
	revision uint64
}

// NewDecal wraps s.
func NewDecal(s *Sprite) *Decal {
	return &Decal{sprite: s, revision: 1}
}

func (d *Decal) Sprite() *Sprite { return d.sprite }

// Revision increases every time Update is called.
func (d *Decal) Revision() uint64 { return d.revision }

// Update marks the sprite's pixels as changed.
func (d *Decal) Update() { d.revision++ }

// Renderable pairs a sprite with its decal, for textures the application draws itself.
type Renderable struct {
	sprite *Sprite
	decal  *Decal
}

// NewRenderable creates a transparent w x h sprite and its decal.
func NewRenderable(w, h int) *Renderable {
	s := NewSprite(w, h)
	return &Renderable{sprite: s, decal: NewDecal(s)}
}

func (r *Renderable) Sprite() *Sprite { return r.sprite }
func (r *Renderable) Decal() *Decal   { return r.decal }

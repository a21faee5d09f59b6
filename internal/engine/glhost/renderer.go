package glhost

import (
	"fmt"

	"hw3d-demo/internal/engine"
	"hw3d-demo/internal/geom"
	"hw3d-demo/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// floats per vertex: position(3) uv(2) colour(4)
const vertexStride = 9

var layerQuad = []float32{
	// pos      uv
	-1, 1, 0, 0,
	-1, -1, 0, 1,
	1, 1, 1, 0,
	1, -1, 1, 1,
}

type meshBuffer struct {
	vao, vbo uint32
	capacity int
	count    int32
	frame    uint64
}

// renderer draws a presented engine.Frame with OpenGL.
type renderer struct {
	object *program
	layer  *program

	meshes   map[*geom.Mesh]*meshBuffer
	textures *textureCache
	scratch  []float32
	frame    uint64

	quadVAO, quadVBO uint32
	layerTex         texture
}

func newRenderer() (*renderer, error) {
	obj, err := loadProgram("object")
	if err != nil {
		return nil, err
	}
	lay, err := loadProgram("layer")
	if err != nil {
		obj.delete()
		return nil, err
	}
	r := &renderer{
		object:   obj,
		layer:    lay,
		meshes:   make(map[*geom.Mesh]*meshBuffer),
		textures: newTextureCache(),
	}
	r.setupQuad()
	r.layerTex.id = newTexture()
	return r, nil
}

func (r *renderer) setupQuad() {
	gl.GenVertexArrays(1, &r.quadVAO)
	gl.BindVertexArray(r.quadVAO)
	gl.GenBuffers(1, &r.quadVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(layerQuad)*4, gl.Ptr(layerQuad), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 4*4, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 4*4, 2*4)
	gl.BindVertexArray(0)
}

// render draws f: background, then objects, then the screen layer.
func (r *renderer) render(f engine.Frame) {
	r.frame++

	bg := f.Background
	gl.ClearColor(float32(bg.R)/255, float32(bg.G)/255, float32(bg.B)/255, 1)
	mask := uint32(gl.COLOR_BUFFER_BIT)
	if f.ClearDepth {
		mask |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(mask)

	func() {
		defer profiling.Track("gl.Objects")()
		r.drawObjects(f)
	}()
	func() {
		defer profiling.Track("gl.Layer")()
		r.drawLayer(f.Layer)
	}()
}

func (r *renderer) drawObjects(f engine.Frame) {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Disable(gl.BLEND)
	applyCull(f.Cull)

	r.object.use()
	r.object.setInt("tex", 0)

	live := make(map[*engine.Decal]bool)
	for _, o := range f.Objects {
		if o.Mesh == nil || len(o.Mesh.Pos) == 0 {
			continue
		}
		mb := r.meshBuffer(o.Mesh)

		r.object.setMat4("mvp", f.Projection.Mul4(o.Transform))
		r.object.setVec4("tint", pixelVec(o.Tint))
		r.object.setBool("useTexture", o.Decal != nil)
		if o.Decal != nil {
			live[o.Decal] = true
			r.textures.bind(o.Decal)
		}

		gl.BindVertexArray(mb.vao)
		gl.DrawArrays(primitive(o.Mesh.Layout), 0, mb.count)
	}
	gl.BindVertexArray(0)
	r.textures.prune(live)
}

// meshBuffer returns m's vertex buffer, refilled once per frame since the
// mesh colours are relit every frame.
func (r *renderer) meshBuffer(m *geom.Mesh) *meshBuffer {
	mb, ok := r.meshes[m]
	if !ok {
		mb = &meshBuffer{}
		gl.GenVertexArrays(1, &mb.vao)
		gl.BindVertexArray(mb.vao)
		gl.GenBuffers(1, &mb.vbo)
		gl.BindBuffer(gl.ARRAY_BUFFER, mb.vbo)
		gl.EnableVertexAttribArray(0)
		gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexStride*4, 0)
		gl.EnableVertexAttribArray(1)
		gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, vertexStride*4, 3*4)
		gl.EnableVertexAttribArray(2)
		gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, vertexStride*4, 5*4)
		r.meshes[m] = mb
	}
	if ok && mb.frame == r.frame {
		return mb
	}
	mb.frame = r.frame

	r.scratch = packVertices(r.scratch[:0], m)
	gl.BindBuffer(gl.ARRAY_BUFFER, mb.vbo)
	if len(r.scratch) > mb.capacity {
		gl.BufferData(gl.ARRAY_BUFFER, len(r.scratch)*4, gl.Ptr(r.scratch), gl.DYNAMIC_DRAW)
		mb.capacity = len(r.scratch)
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(r.scratch)*4, gl.Ptr(r.scratch))
	}
	mb.count = int32(m.VertexCount())
	return mb
}

func (r *renderer) drawLayer(layer *engine.Sprite) {
	if layer == nil {
		return
	}
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	upload(&r.layerTex, layer.Image())

	r.layer.use()
	r.layer.setInt("layer", 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.layerTex.id)
	gl.BindVertexArray(r.quadVAO)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)
	gl.Disable(gl.BLEND)
}

func (r *renderer) dispose() {
	for m, mb := range r.meshes {
		gl.DeleteVertexArrays(1, &mb.vao)
		gl.DeleteBuffers(1, &mb.vbo)
		delete(r.meshes, m)
	}
	r.textures.dispose()
	gl.DeleteTextures(1, &r.layerTex.id)
	gl.DeleteVertexArrays(1, &r.quadVAO)
	gl.DeleteBuffers(1, &r.quadVBO)
	r.object.delete()
	r.layer.delete()
}

func packVertices(dst []float32, m *geom.Mesh) []float32 {
	for i, p := range m.Pos {
		var uv mgl32.Vec2
		if i < len(m.UV) {
			uv = m.UV[i]
		}
		col := engine.White
		if i < len(m.Col) {
			col = m.Col[i]
		}
		c := pixelVec(col)
		dst = append(dst, p[0], p[1], p[2], uv[0], uv[1], c[0], c[1], c[2], c[3])
	}
	return dst
}

func pixelVec(p engine.Pixel) mgl32.Vec4 {
	return mgl32.Vec4{float32(p.R) / 255, float32(p.G) / 255, float32(p.B) / 255, float32(p.A) / 255}
}

func primitive(l geom.Layout) uint32 {
	switch l {
	case geom.LayoutStrip:
		return gl.TRIANGLE_STRIP
	case geom.LayoutFan:
		return gl.TRIANGLE_FAN
	default:
		return gl.TRIANGLES
	}
}

// applyCull maps the engine's front-face winding onto GL state.
func applyCull(m engine.CullMode) {
	switch m {
	case engine.CullCCW:
		gl.Enable(gl.CULL_FACE)
		gl.FrontFace(gl.CCW)
		gl.CullFace(gl.BACK)
	case engine.CullCW:
		gl.Enable(gl.CULL_FACE)
		gl.FrontFace(gl.CW)
		gl.CullFace(gl.BACK)
	case engine.CullNone:
		gl.Disable(gl.CULL_FACE)
	default:
		panic(fmt.Sprintf("glhost: unknown cull mode %d", m))
	}
}

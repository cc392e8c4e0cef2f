// Package render draws terrain layer entries with OpenGL: batched textured
// quads in an orthographic pixel projection.
package render

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/emberfall-mod/emberfall/internal/engine/atlas"
	"github.com/emberfall-mod/emberfall/internal/engine/shader"
	"github.com/emberfall-mod/emberfall/internal/engine/tiles"
	"github.com/emberfall-mod/emberfall/pkg/geom"
)

// missingColor is the flat color of the missing-placeholder quad so a bad
// tile is visible without crashing the draw.
var missingColor = [4]float32{1, 0, 1, 1}

// floatsPerVertex is position (2) + texcoord (2).
const floatsPerVertex = 4

// Renderer owns the GL state for terrain drawing: one shader program, one
// streaming quad buffer and one texture per atlas sheet.
type Renderer struct {
	program       uint32
	locProj       int32
	locTexture    int32
	locTint       int32
	locUseTexture int32

	vao uint32
	vbo uint32

	textures   []uint32
	sheetSizes []geom.Vec2

	proj [16]float32
}

// New initializes OpenGL, compiles the tile shader and uploads the atlas
// sheets as textures. Must run on the thread owning the GL context.
func New(sheets []*image.RGBA) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}

	program, err := shader.CompileProgram(tileVertexShader, tileFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("tile shader: %w", err)
	}

	r := &Renderer{
		program:       program,
		locProj:       shader.GetUniform(program, "uProj"),
		locTexture:    shader.GetUniform(program, "uTexture"),
		locTint:       shader.GetUniform(program, "uTint"),
		locUseTexture: shader.GetUniform(program, "uUseTexture"),
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	stride := int32(floatsPerVertex * 4)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 2*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)

	for _, sheet := range sheets {
		r.uploadSheet(sheet)
	}

	return r, nil
}

// uploadSheet creates a texture from one atlas sheet. Nearest filtering keeps
// tile pixels crisp.
func (r *Renderer) uploadSheet(img *image.RGBA) {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)

	w := int32(img.Bounds().Dx())
	h := int32(img.Bounds().Dy())
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	r.textures = append(r.textures, tex)
	r.sheetSizes = append(r.sheetSizes, geom.Vec2{X: float32(w), Y: float32(h)})
}

// Resize updates the viewport and the pixel-space orthographic projection.
func (r *Renderer) Resize(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	r.proj = ortho(0, float32(width), float32(height), 0)
}

// Clear clears the frame.
func (r *Renderer) Clear() {
	gl.ClearColor(0.08, 0.08, 0.1, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// Draw renders the layer entries with the given camera offset. Entries are
// batched by sheet and tint; consecutive map cells usually share both.
func (r *Renderer) Draw(entries []tiles.DrawEntry, camera geom.Vec2) {
	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.locProj, 1, false, &r.proj[0])

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	var batch []float32
	batchSheet := 0
	var batchTint [4]float32
	started := false

	flush := func() {
		if len(batch) > 0 {
			r.flush(batch, batchSheet, batchTint)
			batch = batch[:0]
		}
	}

	for _, e := range entries {
		sheet := e.Sprite.Sheet
		tint := e.Palette.Tint
		if sheet == atlas.MissingSheet {
			tint = mulTint(tint, missingColor)
		}

		if !started || sheet != batchSheet || tint != batchTint {
			flush()
			batchSheet = sheet
			batchTint = tint
			started = true
		}
		batch = r.appendQuad(batch, e, camera)
	}
	flush()

	gl.BindVertexArray(0)
}

// appendQuad emits two triangles for one draw entry.
func (r *Renderer) appendQuad(batch []float32, e tiles.DrawEntry, camera geom.Vec2) []float32 {
	pos := e.Pos.Sub(camera)
	size := e.Sprite.Size

	var u0, v0, u1, v1 float32
	if e.Sprite.Sheet >= 0 && e.Sprite.Sheet < len(r.sheetSizes) {
		sheetSize := r.sheetSizes[e.Sprite.Sheet]
		u0 = e.Sprite.Region.Min.X / sheetSize.X
		v0 = e.Sprite.Region.Min.Y / sheetSize.Y
		u1 = e.Sprite.Region.Max.X / sheetSize.X
		v1 = e.Sprite.Region.Max.Y / sheetSize.Y
	}

	x0, y0 := pos.X, pos.Y
	x1, y1 := pos.X+size.X, pos.Y+size.Y

	return append(batch,
		x0, y0, u0, v0,
		x1, y0, u1, v0,
		x1, y1, u1, v1,
		x0, y0, u0, v0,
		x1, y1, u1, v1,
		x0, y1, u0, v1,
	)
}

// flush streams one batch to the GPU and draws it.
func (r *Renderer) flush(batch []float32, sheet int, tint [4]float32) {
	gl.BufferData(gl.ARRAY_BUFFER, len(batch)*4, gl.Ptr(batch), gl.STREAM_DRAW)

	gl.Uniform4f(r.locTint, tint[0], tint[1], tint[2], tint[3])

	if sheet >= 0 && sheet < len(r.textures) {
		gl.Uniform1i(r.locUseTexture, 1)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, r.textures[sheet])
		gl.Uniform1i(r.locTexture, 0)
	} else {
		gl.Uniform1i(r.locUseTexture, 0)
	}

	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(batch)/floatsPerVertex))
}

// Destroy releases all GL resources.
func (r *Renderer) Destroy() {
	if len(r.textures) > 0 {
		gl.DeleteTextures(int32(len(r.textures)), &r.textures[0])
		r.textures = nil
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}

func mulTint(a, b [4]float32) [4]float32 {
	return [4]float32{a[0] * b[0], a[1] * b[1], a[2] * b[2], a[3] * b[3]}
}

// ortho builds a column-major orthographic projection matrix mapping the
// given pixel rectangle to clip space, with y pointing down.
func ortho(left, right, bottom, top float32) [16]float32 {
	var m [16]float32
	m[0] = 2 / (right - left)
	m[5] = 2 / (top - bottom)
	m[10] = -1
	m[12] = -(right + left) / (right - left)
	m[13] = -(top + bottom) / (top - bottom)
	m[15] = 1
	return m
}

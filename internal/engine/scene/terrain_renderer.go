package scene

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/spline-terrain/internal/engine/scene/shaders"
	"github.com/Faultbox/spline-terrain/internal/engine/shader"
	"github.com/Faultbox/spline-terrain/internal/engine/terrain"
	"github.com/Faultbox/spline-terrain/pkg/math"
)

// Lighting holds the terrain shading parameters.
type Lighting struct {
	LightDir math.Vec3
	Ambient  math.Vec3
	Diffuse  math.Vec3
	FogColor math.Vec3
	FogNear  float32
	FogFar   float32
}

// TerrainRenderer draws a tessellated terrain mesh with one texture.
type TerrainRenderer struct {
	program *shader.Program

	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
	texture    uint32
}

// NewTerrainRenderer compiles the terrain shader.
func NewTerrainRenderer() (*TerrainRenderer, error) {
	program, err := shader.New(shaders.TerrainVertexShader, shaders.TerrainFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("terrain shader: %w", err)
	}
	return &TerrainRenderer{program: program}, nil
}

// Upload replaces the GPU copy of the mesh and its texture.
func (tr *TerrainRenderer) Upload(mesh *terrain.Mesh, tex *image.RGBA) error {
	if len(mesh.Vertices) == 0 || len(mesh.Indices) == 0 {
		return fmt.Errorf("empty terrain mesh")
	}

	tr.clear()
	tr.uploadMesh(mesh.Vertices, mesh.Indices)
	tr.texture = uploadTexture(tex)
	return nil
}

func (tr *TerrainRenderer) uploadMesh(vertices []terrain.Vertex, indices []uint16) {
	gl.GenVertexArrays(1, &tr.vao)
	gl.BindVertexArray(tr.vao)

	gl.GenBuffers(1, &tr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, tr.vbo)
	vertexSize := int(unsafe.Sizeof(terrain.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*vertexSize, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	// Position (location 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), unsafe.Offsetof(terrain.Vertex{}.Position))
	gl.EnableVertexAttribArray(0)

	// Normal (location 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), unsafe.Offsetof(terrain.Vertex{}.Normal))
	gl.EnableVertexAttribArray(1)

	// TexCoord (location 2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, int32(vertexSize), unsafe.Offsetof(terrain.Vertex{}.TexCoord))
	gl.EnableVertexAttribArray(2)

	// 16-bit indices
	gl.GenBuffers(1, &tr.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, tr.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*2, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)
	tr.indexCount = int32(len(indices))

	gl.BindVertexArray(0)
}

func uploadTexture(img *image.RGBA) uint32 {
	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_2D, texID)

	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(img.Bounds().Dx()), int32(img.Bounds().Dy()),
		0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))

	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)

	return texID
}

// Render draws the terrain.
func (tr *TerrainRenderer) Render(viewProj math.Mat4, light Lighting) {
	if tr.vao == 0 {
		return
	}

	p := tr.program
	p.Use()
	p.SetMat4("uViewProj", viewProj)
	p.SetVec3("uLightDir", light.LightDir)
	p.SetVec3("uAmbient", light.Ambient)
	p.SetVec3("uDiffuse", light.Diffuse)
	p.SetVec3("uFogColor", light.FogColor)
	gl.Uniform1f(p.Uniform("uFogNear"), light.FogNear)
	gl.Uniform1f(p.Uniform("uFogFar"), light.FogFar)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tr.texture)
	p.SetInt("uTexture", 0)

	gl.BindVertexArray(tr.vao)
	gl.DrawElements(gl.TRIANGLES, tr.indexCount, gl.UNSIGNED_SHORT, nil)
	gl.BindVertexArray(0)
}

func (tr *TerrainRenderer) clear() {
	if tr.vao != 0 {
		gl.DeleteVertexArrays(1, &tr.vao)
		tr.vao = 0
	}
	if tr.vbo != 0 {
		gl.DeleteBuffers(1, &tr.vbo)
		tr.vbo = 0
	}
	if tr.ebo != 0 {
		gl.DeleteBuffers(1, &tr.ebo)
		tr.ebo = 0
	}
	if tr.texture != 0 {
		gl.DeleteTextures(1, &tr.texture)
		tr.texture = 0
	}
	tr.indexCount = 0
}

// Destroy releases all resources.
func (tr *TerrainRenderer) Destroy() {
	tr.clear()
	tr.program.Delete()
}

package renderer

import (
	"unsafe"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nbatch/buffers"
	"github.com/bloeys/nbatch/colors"
	"github.com/bloeys/nbatch/materials"
	"github.com/bloeys/nbatch/meshes"
	"github.com/bloeys/nbatch/shaders"
)

// instanceBatch is the per instance data of one instanced draw
type instanceBatch struct {
	loc    shaders.Loc
	layout []buffers.Element
	data   []float32
	count  int
}

// DrawMeshInstanced draws len(transforms) instances of the mesh in one draw call. Each transform
// is fed to the instance transform attribute of the material shader as 4 vec4 columns.
//
// The transforms are uploaded to a buffer that only lives for this call, so the slice
// can change freely between calls.
func DrawMeshInstanced(ctx *Context, mesh *meshes.Mesh, mat *materials.Material, transforms []gglm.Mat4) {

	var data []float32
	if len(transforms) > 0 {
		data = unsafe.Slice(&transforms[0].Data[0][0], len(transforms)*16)
	}

	drawInstanced(ctx, mesh, mat, instanceBatch{
		loc: shaders.Loc_VertexInstanceTransform,
		layout: []buffers.Element{
			{ElementType: buffers.DataTypeVec4},
			{ElementType: buffers.DataTypeVec4},
			{ElementType: buffers.DataTypeVec4},
			{ElementType: buffers.DataTypeVec4},
		},
		data:  data,
		count: len(transforms),
	})
}

// DrawParticlesInstanced draws len(particles) instances of the mesh in one draw call, with each vec4
// fed to the instance data attribute of the material shader. What the 4 values mean
// (e.g. position and size) is up to the shader.
func DrawParticlesInstanced(ctx *Context, mesh *meshes.Mesh, mat *materials.Material, particles []gglm.Vec4) {

	var data []float32
	if len(particles) > 0 {
		data = unsafe.Slice(&particles[0].Data[0], len(particles)*4)
	}

	drawInstanced(ctx, mesh, mat, instanceBatch{
		loc:    shaders.Loc_VertexInstanceData,
		layout: []buffers.Element{{ElementType: buffers.DataTypeVec4}},
		data:   data,
		count:  len(particles),
	})
}

func drawInstanced(ctx *Context, mesh *meshes.Mesh, mat *materials.Material, batch instanceBatch) {

	b := ctx.Backend
	if !b.SupportsVertexArrays() {
		ctx.logger().Error("Instanced drawing requires vertex array objects, which this context doesn't support. Nothing was drawn")
		return
	}

	if !checkDrawable(ctx, mesh) || !checkInstanceLocs(ctx, mesh, mat, &batch) {
		return
	}

	restore := ctx.acquire()
	defer restore()

	if !ensureUploaded(ctx, mesh) {
		return
	}

	texTargets := bindMaterial(ctx, mat)
	defer unbindTextures(b, texTargets)

	mesh.Vao.Bind(b)

	prog := &mat.ShaderProg
	mvp := ctx.ProjViewBase()
	if prog.HasLoc(shaders.Loc_MatrixMvp) {
		b.SetUniformMat4(prog.Id, prog.Locs.Get(shaders.Loc_MatrixMvp), &mvp)
	}

	instanceVbo := buffers.NewVertexBuffer(b, batch.layout...)
	instanceVbo.SetData(b, batch.data, buffers.BufUsage_Dynamic_Draw)

	var attribCount uint32
	attribLoc := uint32(prog.Locs.Get(batch.loc))
	if prog.HasLoc(batch.loc) {
		attribCount = uint32(len(batch.layout))
		mesh.Vao.BindVertexBuffer(b, &instanceVbo, attribLoc, 1)
	}

	if batch.count > 0 {

		if mesh.IsIndexed() {
			b.DrawElementsInstanced(mesh.ElementCount(), int32(batch.count))
		} else {
			b.DrawArraysInstanced(0, mesh.VertexCount, int32(batch.count))
		}
	}

	// The vao outlives the instance buffer, so it must not keep pointing at it
	if attribCount > 0 {
		mesh.Vao.DisableAttribs(b, attribLoc, attribCount)
	}

	instanceVbo.Delete(b)
}

// DrawMeshes draws every mesh once with the material, where meshes[i] is drawn with transforms[i].
// The material is bound once for the whole batch, and each draw gets its own model and mvp matrices.
func DrawMeshes(ctx *Context, mat *materials.Material, meshList []*meshes.Mesh, transforms []gglm.Mat4) {

	b := ctx.Backend
	if !b.SupportsVertexArrays() {
		ctx.logger().Error("Drawing meshes requires vertex array objects, which this context doesn't support. Nothing was drawn")
		return
	}

	if len(meshList) != len(transforms) {
		ctx.logger().Errorf("DrawMeshes got %d meshes but %d transforms. Nothing was drawn", len(meshList), len(transforms))
		return
	}

	if len(meshList) == 0 {
		return
	}

	restore := ctx.acquire()
	defer restore()

	texTargets := bindMaterial(ctx, mat)
	defer unbindTextures(b, texTargets)

	prog := &mat.ShaderProg
	projViewBase := ctx.ProjViewBase()
	for i := 0; i < len(meshList); i++ {

		mesh := meshList[i]
		if !checkDrawable(ctx, mesh) || !ensureUploaded(ctx, mesh) {
			continue
		}

		mesh.Vao.Bind(b)

		if prog.HasLoc(shaders.Loc_MatrixModel) {
			b.SetUniformMat4(prog.Id, prog.Locs.Get(shaders.Loc_MatrixModel), &transforms[i])
		}

		if prog.HasLoc(shaders.Loc_MatrixMvp) {
			mvp := projViewBase.Clone().Mul(&transforms[i])
			b.SetUniformMat4(prog.Id, prog.Locs.Get(shaders.Loc_MatrixMvp), mvp)
		}

		if mesh.IsIndexed() {
			b.DrawElements(mesh.ElementCount())
		} else {
			b.DrawArrays(0, mesh.VertexCount)
		}
	}
}

func checkDrawable(ctx *Context, mesh *meshes.Mesh) bool {

	if mesh == nil {
		ctx.logger().Error("Can't draw a nil mesh")
		return false
	}

	if mesh.IsUnloaded() {
		ctx.logger().Errorf("Can't draw mesh '%s' because it was unloaded", mesh.Name)
		return false
	}

	return true
}

// checkInstanceLocs refuses batches whose instance attributes would land on a location the mesh
// uses for its own vertex data. Binding there would replace the mesh attribute for this draw and
// leave it disabled for every later draw of the mesh.
func checkInstanceLocs(ctx *Context, mesh *meshes.Mesh, mat *materials.Material, batch *instanceBatch) bool {

	prog := &mat.ShaderProg
	if !prog.HasLoc(batch.loc) {
		return true
	}

	first := uint32(prog.Locs.Get(batch.loc))
	for loc := first; loc < first+uint32(len(batch.layout)); loc++ {

		if !mesh.HasAttrib(loc) {
			continue
		}

		ctx.logger().Errorf("Material '%s' puts %s at location %d, which mesh '%s' uses for its vertex data. Instance attributes must start at %d or higher. Nothing was drawn",
			mat.Name, batch.loc, loc, mesh.Name, meshes.AttribLoc_Count)
		return false
	}

	return true
}

// ensureUploaded uploads meshes that were never uploaded as static meshes
func ensureUploaded(ctx *Context, mesh *meshes.Mesh) bool {

	if mesh.IsUploaded() {
		return true
	}

	if err := mesh.Upload(ctx.Backend, false); err != nil {
		ctx.logger().Errorf("Can't draw mesh '%s'. Err: %v", mesh.Name, err)
		return false
	}

	return true
}

// bindMaterial activates the material program, uploads its colors and the camera matrices, and
// binds its textures to consecutive texture units starting at zero.
// The returned slice holds the target bound to each used unit.
func bindMaterial(ctx *Context, mat *materials.Material) []TextureTarget {

	b := ctx.Backend
	prog := &mat.ShaderProg
	b.UseProgram(prog.Id)

	if prog.HasLoc(shaders.Loc_ColorDiffuse) {
		c := colors.Normalize(mat.DiffuseColor())
		b.SetUniformVec4(prog.Id, prog.Locs.Get(shaders.Loc_ColorDiffuse), &c)
	}

	if prog.HasLoc(shaders.Loc_ColorSpecular) {
		c := colors.Normalize(mat.SpecularColor())
		b.SetUniformVec4(prog.Id, prog.Locs.Get(shaders.Loc_ColorSpecular), &c)
	}

	if prog.HasLoc(shaders.Loc_MatrixView) {
		b.SetUniformMat4(prog.Id, prog.Locs.Get(shaders.Loc_MatrixView), &ctx.View)
	}

	if prog.HasLoc(shaders.Loc_MatrixProjection) {
		b.SetUniformMat4(prog.Id, prog.Locs.Get(shaders.Loc_MatrixProjection), &ctx.Projection)
	}

	texTargets := make([]TextureTarget, 0, materials.MaxMaps)
	for i := 0; i < materials.MaxMaps; i++ {

		slot := materials.TextureSlot(i)
		if !mat.HasTexture(slot) {
			continue
		}

		target := TextureTarget_2D
		if slot.IsCubemap() {
			target = TextureTarget_Cube
		}

		unit := uint32(len(texTargets))
		b.ActiveTexture(unit)
		b.BindTexture(target, mat.Maps[slot].TexId)
		texTargets = append(texTargets, target)

		if prog.HasLoc(slot.SamplerLoc()) {
			b.SetUniformInt32(prog.Id, prog.Locs.Get(slot.SamplerLoc()), int32(unit))
		}
	}

	return texTargets
}

func unbindTextures(b Backend, texTargets []TextureTarget) {
	for unit := 0; unit < len(texTargets); unit++ {
		b.ActiveTexture(uint32(unit))
		b.BindTexture(texTargets[unit], 0)
	}
}

package shaders

type ShaderProgram struct {
	Id           uint32
	VertShaderId uint32
	FragShaderId uint32
	GeomShaderId uint32

	// Locs holds the uniform and attribute locations used by the renderer.
	// They are resolved once after linking, and -1 means the shader doesn't use it
	Locs Locations
}

func (sp *ShaderProgram) AttachShader(shader Shader) {

	switch shader.Type {
	case ShaderType_Vertex:
		sp.VertShaderId = shader.Id
	case ShaderType_Fragment:
		sp.FragShaderId = shader.Id
	case ShaderType_Geometry:
		sp.GeomShaderId = shader.Id
	}
}

// HasLoc returns true if the program exposes the uniform/attribute
func (sp *ShaderProgram) HasLoc(loc Loc) bool {
	return sp.Locs.Has(loc)
}

func NewShaderProgram(id uint32) ShaderProgram {
	return ShaderProgram{
		Id:   id,
		Locs: NewLocations(),
	}
}

type Shader struct {
	Id   uint32
	Type ShaderType
}

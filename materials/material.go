package materials

import (
	"image/color"

	"github.com/bloeys/nbatch/shaders"
)

var (
	lastMatId uint32
)

type TextureSlot uint32

const (
	TextureSlot_Diffuse TextureSlot = iota
	TextureSlot_Specular
	TextureSlot_Normal
	TextureSlot_Roughness
	TextureSlot_Occlusion
	TextureSlot_Emission
	TextureSlot_Height

	// Cube texture slots
	TextureSlot_Cubemap
	TextureSlot_Irradiance
	TextureSlot_Prefilter

	TextureSlot_Brdf
)

// MaxMaps is the fixed number of texture slots a material has
const MaxMaps = int(TextureSlot_Brdf) + 1

func (s TextureSlot) IsValid() bool {
	return int(s) < MaxMaps
}

// IsCubemap is true for slots whose textures must be bound as cube maps instead of 2D textures
func (s TextureSlot) IsCubemap() bool {
	return s == TextureSlot_Cubemap || s == TextureSlot_Irradiance || s == TextureSlot_Prefilter
}

// SamplerLoc returns the shader location of the sampler uniform of this slot
func (s TextureSlot) SamplerLoc() shaders.Loc {
	return shaders.Loc_MapDiffuse + shaders.Loc(s)
}

func (s TextureSlot) String() string {

	switch s {
	case TextureSlot_Diffuse:
		return "Diffuse"
	case TextureSlot_Specular:
		return "Specular"
	case TextureSlot_Normal:
		return "Normal"
	case TextureSlot_Roughness:
		return "Roughness"
	case TextureSlot_Occlusion:
		return "Occlusion"
	case TextureSlot_Emission:
		return "Emission"
	case TextureSlot_Height:
		return "Height"
	case TextureSlot_Cubemap:
		return "Cubemap"
	case TextureSlot_Irradiance:
		return "Irradiance"
	case TextureSlot_Prefilter:
		return "Prefilter"
	case TextureSlot_Brdf:
		return "Brdf"
	default:
		return "Unknown"
	}
}

type MaterialMap struct {
	// TexId is the backend texture id. Zero means the slot is empty
	TexId uint32
	// Color tints the texture (or is used alone when there is no texture).
	// Only the diffuse and specular colors are uploaded by the renderer
	Color color.RGBA
	Value float32
}

type Material struct {
	Id         uint32
	Name       string
	ShaderProg shaders.ShaderProgram
	Maps       [MaxMaps]MaterialMap
}

// HasTexture returns true if a texture is assigned to the slot
func (m *Material) HasTexture(slot TextureSlot) bool {
	return slot.IsValid() && m.Maps[slot].TexId != 0
}

func (m *Material) SetTexture(slot TextureSlot, texId uint32) {
	m.Maps[slot].TexId = texId
}

func (m *Material) SetColor(slot TextureSlot, c color.RGBA) {
	m.Maps[slot].Color = c
}

func (m *Material) DiffuseColor() color.RGBA {
	return m.Maps[TextureSlot_Diffuse].Color
}

func (m *Material) SpecularColor() color.RGBA {
	return m.Maps[TextureSlot_Specular].Color
}

func getNewMatId() uint32 {
	lastMatId++
	return lastMatId
}

// NewMaterial creates a material with no textures and white diffuse and specular colors.
// The shader program must already have its locations resolved.
func NewMaterial(matName string, shdrProg shaders.ShaderProgram) Material {

	mat := Material{
		Id:         getNewMatId(),
		Name:       matName,
		ShaderProg: shdrProg,
	}

	mat.Maps[TextureSlot_Diffuse].Color = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	mat.Maps[TextureSlot_Specular].Color = color.RGBA{R: 255, G: 255, B: 255, A: 255}

	return mat
}

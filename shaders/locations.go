package shaders

import "fmt"

// Loc identifies a uniform or vertex attribute the renderer knows how to feed
type Loc int32

const (
	Loc_MatrixMvp Loc = iota
	Loc_MatrixModel
	Loc_MatrixView
	Loc_MatrixProjection

	Loc_ColorDiffuse
	Loc_ColorSpecular

	// Sampler uniforms, one per material texture slot and in the same order
	Loc_MapDiffuse
	Loc_MapSpecular
	Loc_MapNormal
	Loc_MapRoughness
	Loc_MapOcclusion
	Loc_MapEmission
	Loc_MapHeight
	Loc_MapCubemap
	Loc_MapIrradiance
	Loc_MapPrefilter
	Loc_MapBrdf

	// Vertex attributes. The instance transform takes 4 consecutive locations, one per matrix column
	Loc_VertexInstanceTransform
	Loc_VertexInstanceData

	Loc_Count
)

// MapLocCount is the number of sampler locations, which is also the number of material map slots
const MapLocCount = int(Loc_MapBrdf-Loc_MapDiffuse) + 1

var locKeys = [Loc_Count]string{
	Loc_MatrixMvp:               "matrix_mvp",
	Loc_MatrixModel:             "matrix_model",
	Loc_MatrixView:              "matrix_view",
	Loc_MatrixProjection:        "matrix_projection",
	Loc_ColorDiffuse:            "color_diffuse",
	Loc_ColorSpecular:           "color_specular",
	Loc_MapDiffuse:              "map_diffuse",
	Loc_MapSpecular:             "map_specular",
	Loc_MapNormal:               "map_normal",
	Loc_MapRoughness:            "map_roughness",
	Loc_MapOcclusion:            "map_occlusion",
	Loc_MapEmission:             "map_emission",
	Loc_MapHeight:               "map_height",
	Loc_MapCubemap:              "map_cubemap",
	Loc_MapIrradiance:           "map_irradiance",
	Loc_MapPrefilter:            "map_prefilter",
	Loc_MapBrdf:                 "map_brdf",
	Loc_VertexInstanceTransform: "vertex_instance_transform",
	Loc_VertexInstanceData:      "vertex_instance_data",
}

func (l Loc) IsValid() bool {
	return l >= 0 && l < Loc_Count
}

// IsAttrib is true for vertex attributes, which are resolved with a different call than uniforms
func (l Loc) IsAttrib() bool {
	return l == Loc_VertexInstanceTransform || l == Loc_VertexInstanceData
}

// String returns the key used to refer to the location in config files (e.g. 'matrix_mvp')
func (l Loc) String() string {

	if !l.IsValid() {
		return "unknown"
	}

	return locKeys[l]
}

func LocFromString(key string) (Loc, bool) {

	for i := Loc(0); i < Loc_Count; i++ {
		if locKeys[i] == key {
			return i, true
		}
	}

	return -1, false
}

// Locations maps every Loc to its location in a linked program
type Locations [Loc_Count]int32

// NewLocations returns a table where nothing is present
func NewLocations() Locations {

	var l Locations
	for i := 0; i < len(l); i++ {
		l[i] = -1
	}

	return l
}

func (l *Locations) Has(loc Loc) bool {
	return loc.IsValid() && l[loc] >= 0
}

func (l *Locations) Get(loc Loc) int32 {

	if !loc.IsValid() {
		return -1
	}

	return l[loc]
}

// LocNames holds the GLSL identifier used for each Loc
type LocNames [Loc_Count]string

// DefaultLocNames are the names the bundled shaders use
var DefaultLocNames = LocNames{
	Loc_MatrixMvp:               "mvp",
	Loc_MatrixModel:             "modelMat",
	Loc_MatrixView:              "viewMat",
	Loc_MatrixProjection:        "projMat",
	Loc_ColorDiffuse:            "colDiffuse",
	Loc_ColorSpecular:           "colSpecular",
	Loc_MapDiffuse:              "diffuseTex",
	Loc_MapSpecular:             "specularTex",
	Loc_MapNormal:               "normalTex",
	Loc_MapRoughness:            "roughnessTex",
	Loc_MapOcclusion:            "occlusionTex",
	Loc_MapEmission:             "emissionTex",
	Loc_MapHeight:               "heightTex",
	Loc_MapCubemap:              "cubemapTex",
	Loc_MapIrradiance:           "irradianceTex",
	Loc_MapPrefilter:            "prefilterTex",
	Loc_MapBrdf:                 "brdfTex",
	Loc_VertexInstanceTransform: "instanceTransform",
	Loc_VertexInstanceData:      "instanceData",
}

// WithOverrides returns a copy of the names where entries of overrides replace the defaults.
// Keys of overrides are Loc keys (see Loc.String), and an empty value means the location is never resolved.
func (n LocNames) WithOverrides(overrides map[string]string) (LocNames, error) {

	out := n
	for k, v := range overrides {

		loc, ok := LocFromString(k)
		if !ok {
			return n, fmt.Errorf("unknown shader location key '%s'", k)
		}

		out[loc] = v
	}

	return out, nil
}

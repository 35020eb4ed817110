package shaders

import (
	"bytes"
	"errors"
)

var (
	ErrNoShaders        = errors.New("no valid shaders found. Please put '//shader:vertex' or '//shader:fragment' or '//shader:geometry' before your shaders")
	ErrNoVertexShader   = errors.New("no valid vertex shader found. Please put '//shader:vertex' before your vertex shader")
	ErrNoFragmentShader = errors.New("no valid fragment shader found. Please put '//shader:fragment' before your fragment shader")
	ErrUnknownShader    = errors.New("unknown shader type. Must be '//shader:vertex' or '//shader:fragment' or '//shader:geometry'")
)

type ShaderSource struct {
	Type ShaderType
	Src  []byte
}

// SplitCombinedSource splits a combined shader file into its stages.
//
// A combined shader has each stage preceded by a '//shader:<type>' line, for example:
//
//	//shader:vertex
//	...
//	//shader:fragment
//	...
//
// Vertex and fragment stages are required, geometry is optional.
func SplitCombinedSource(shaderSrc []byte) ([]ShaderSource, error) {

	shaderSources := bytes.Split(shaderSrc, []byte("//shader:"))
	if len(shaderSources) < 2 {
		return nil, errors.New("failed to read combined shader. The minimum shader types to have are '//shader:vertex' and '//shader:fragment'")
	}

	out := make([]ShaderSource, 0, len(shaderSources))
	hasVert := false
	hasFrag := false
	for i := 0; i < len(shaderSources); i++ {

		src := shaderSources[i]

		//This can happen when the shader type is at the start of the file
		if len(bytes.TrimSpace(src)) == 0 {
			continue
		}

		var shdrType ShaderType
		if bytes.HasPrefix(src, []byte("vertex")) {
			src = src[6:]
			shdrType = ShaderType_Vertex
			hasVert = true
		} else if bytes.HasPrefix(src, []byte("fragment")) {
			src = src[8:]
			shdrType = ShaderType_Fragment
			hasFrag = true
		} else if bytes.HasPrefix(src, []byte("geometry")) {
			src = src[8:]
			shdrType = ShaderType_Geometry
		} else {
			return nil, ErrUnknownShader
		}

		out = append(out, ShaderSource{Type: shdrType, Src: src})
	}

	if len(out) == 0 {
		return nil, ErrNoShaders
	}

	if !hasVert {
		return nil, ErrNoVertexShader
	}

	if !hasFrag {
		return nil, ErrNoFragmentShader
	}

	return out, nil
}

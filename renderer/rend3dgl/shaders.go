package rend3dgl

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bloeys/nbatch/logging"
	"github.com/bloeys/nbatch/shaders"
	"github.com/go-gl/gl/v4.1-core/gl"
)

func LoadAndCompileCombinedShader(shaderPath string, names shaders.LocNames) (shaders.ShaderProgram, error) {

	combinedSource, err := os.ReadFile(shaderPath)
	if err != nil {
		return shaders.ShaderProgram{}, fmt.Errorf("failed to read shader: %w", err)
	}

	return LoadAndCompileCombinedShaderSrc(combinedSource, names)
}

// LoadAndCompileCombinedShaderSrc compiles and links a combined shader (see shaders.SplitCombinedSource),
// then resolves the program locations using names
func LoadAndCompileCombinedShaderSrc(shaderSrc []byte, names shaders.LocNames) (shaders.ShaderProgram, error) {

	sources, err := shaders.SplitCombinedSource(shaderSrc)
	if err != nil {
		return shaders.ShaderProgram{}, err
	}

	progId := gl.CreateProgram()
	if progId == 0 {
		return shaders.ShaderProgram{}, errors.New("failed to create shader program")
	}

	shdrProg := shaders.NewShaderProgram(progId)
	for i := 0; i < len(sources); i++ {

		shdr, err := CompileShaderOfType(sources[i].Src, sources[i].Type)
		if err != nil {
			DeleteShaderProgram(&shdrProg)
			return shaders.ShaderProgram{}, err
		}

		gl.AttachShader(shdrProg.Id, shdr.Id)
		shdrProg.AttachShader(shdr)
	}

	if err := linkProgram(&shdrProg); err != nil {
		DeleteShaderProgram(&shdrProg)
		return shaders.ShaderProgram{}, err
	}

	ResolveLocs(&shdrProg, names)
	return shdrProg, nil
}

func CompileShaderOfType(shaderSource []byte, shaderType shaders.ShaderType) (shaders.Shader, error) {

	shaderId := gl.CreateShader(shaderTypeToGL(shaderType))
	if shaderId == 0 {
		return shaders.Shader{}, fmt.Errorf("failed to create OpenGl shader. OpenGl Error=%d", gl.GetError())
	}

	//Load shader source and compile
	shaderCStr, shaderFree := gl.Strs(string(shaderSource) + "\x00")
	defer shaderFree()
	gl.ShaderSource(shaderId, 1, shaderCStr, nil)

	gl.CompileShader(shaderId)
	if err := getShaderCompileErrors(shaderId, shaderType); err != nil {
		gl.DeleteShader(shaderId)
		return shaders.Shader{}, err
	}

	return shaders.Shader{Id: shaderId, Type: shaderType}, nil
}

func getShaderCompileErrors(shaderId uint32, shaderType shaders.ShaderType) error {

	var compiledSuccessfully int32
	gl.GetShaderiv(shaderId, gl.COMPILE_STATUS, &compiledSuccessfully)
	if compiledSuccessfully == gl.TRUE {
		return nil
	}

	var logLength int32
	gl.GetShaderiv(shaderId, gl.INFO_LOG_LENGTH, &logLength)

	log := gl.Str(strings.Repeat("\x00", int(logLength)))
	gl.GetShaderInfoLog(shaderId, logLength, nil, log)

	errMsg := gl.GoStr(log)
	logging.ErrLog.Error("Compilation of shader failed", "id", shaderId, "type", shaderType, "err", errMsg)
	return fmt.Errorf("failed to compile %s shader: %s", shaderType, errMsg)
}

// linkProgram links the program and deletes its shaders, which are no longer needed after linking
func linkProgram(sp *shaders.ShaderProgram) error {

	gl.LinkProgram(sp.Id)

	for _, id := range [3]uint32{sp.VertShaderId, sp.FragShaderId, sp.GeomShaderId} {
		if id != 0 {
			gl.DeleteShader(id)
		}
	}

	var linkedSuccessfully int32
	gl.GetProgramiv(sp.Id, gl.LINK_STATUS, &linkedSuccessfully)
	if linkedSuccessfully == gl.TRUE {
		return nil
	}

	var logLength int32
	gl.GetProgramiv(sp.Id, gl.INFO_LOG_LENGTH, &logLength)

	log := gl.Str(strings.Repeat("\x00", int(logLength)))
	gl.GetProgramInfoLog(sp.Id, logLength, nil, log)

	return fmt.Errorf("failed to link shader program: %s", gl.GoStr(log))
}

// ResolveLocs fills the location table of a linked program. Locations with an
// empty name, or that the program doesn't use, are set to -1
func ResolveLocs(sp *shaders.ShaderProgram, names shaders.LocNames) {

	sp.Locs = shaders.NewLocations()
	for loc := shaders.Loc(0); loc < shaders.Loc_Count; loc++ {

		name := names[loc]
		if name == "" {
			continue
		}

		cName := gl.Str(name + "\x00")
		if loc.IsAttrib() {
			sp.Locs[loc] = gl.GetAttribLocation(sp.Id, cName)
		} else {
			sp.Locs[loc] = gl.GetUniformLocation(sp.Id, cName)
		}
	}
}

func DeleteShaderProgram(sp *shaders.ShaderProgram) {

	if sp.Id == 0 {
		return
	}

	gl.DeleteProgram(sp.Id)
	sp.Id = 0
	sp.Locs = shaders.NewLocations()
}

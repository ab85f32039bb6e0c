package glprog

import (
	"strings"

	"github.com/db47h/glprog/driver"
	"github.com/pkg/errors"
)

// Stage is a shader stage.
//
type Stage driver.Enum

// Shader stages.
//
const (
	Vertex         Stage = Stage(driver.VERTEX_SHADER)
	TessControl    Stage = Stage(driver.TESS_CONTROL_SHADER)
	TessEvaluation Stage = Stage(driver.TESS_EVALUATION_SHADER)
	Geometry       Stage = Stage(driver.GEOMETRY_SHADER)
	Fragment       Stage = Stage(driver.FRAGMENT_SHADER)
	Compute        Stage = Stage(driver.COMPUTE_SHADER)
)

var stageNames = map[Stage]string{
	Vertex:         "vertex",
	TessControl:    "tess_control",
	TessEvaluation: "tess_evaluation",
	Geometry:       "geometry",
	Fragment:       "fragment",
	Compute:        "compute",
}

func (s Stage) String() string {
	if n, ok := stageNames[s]; ok {
		return n
	}
	return "unknown"
}

// ParseStage returns the Stage with the given name, as returned by
// Stage.String. It also accepts the usual file extensions: vert, tesc, tese,
// geom, frag and comp.
//
func ParseStage(name string) (Stage, error) {
	switch strings.ToLower(name) {
	case "vertex", "vert", "vs":
		return Vertex, nil
	case "tess_control", "tesc":
		return TessControl, nil
	case "tess_evaluation", "tese":
		return TessEvaluation, nil
	case "geometry", "geom", "gs":
		return Geometry, nil
	case "fragment", "frag", "fs":
		return Fragment, nil
	case "compute", "comp", "cs":
		return Compute, nil
	}
	return 0, argError("stage", "unknown shader stage %q", name)
}

// A Shader is a single shader stage. Shaders are owned by the caller: programs
// only borrow them while linking and never delete them.
//
type Shader struct {
	drv      driver.Driver
	id       driver.Shader
	stage    Stage
	name     string
	src      string
	compiled bool
	params   Params
}

// NewShader creates a new shader object for the given stage. The source is
// compiled by Compile or when linking a program the shader is attached to.
//
func NewShader(drv driver.Driver, stage Stage, name, source string) (*Shader, error) {
	if _, ok := stageNames[stage]; !ok {
		return nil, argError("stage", "unknown shader stage 0x%X", uint32(stage))
	}
	id := drv.CreateShader(driver.Enum(stage))
	if !id.Valid() {
		return nil, errors.Errorf("create %s shader %s: driver returned no name", stage, displayName(name))
	}
	return &Shader{drv: drv, id: id, stage: stage, name: name, src: source}, nil
}

// Name returns the shader name.
//
func (s *Shader) Name() string { return s.name }

// Stage returns the shader stage.
//
func (s *Shader) Stage() Stage { return s.stage }

// Source returns the shader source as given to NewShader or SetSource.
//
func (s *Shader) Source() string { return s.src }

// NativeID returns the native shader name.
//
func (s *Shader) NativeID() driver.Shader { return s.id }

// Compiled returns true if the shader has been successfully compiled and its
// source not changed since.
//
func (s *Shader) Compiled() bool { return s.compiled }

// SetSource replaces the shader source. The shader needs to be compiled
// again.
//
func (s *Shader) SetSource(src string) {
	s.src = src
	s.compiled = false
}

// Compile compiles the shader with the given parameters. A nil params uses
// the default parameters.
//
func (s *Shader) Compile(params *Params) error {
	return s.compile(paramsOrDefault(params))
}

func (s *Shader) compile(params Params) error {
	if !s.id.Valid() {
		return errors.Errorf("compile shader %s: shader deleted", displayName(s.name))
	}
	s.compiled = false
	s.drv.ShaderSource(s.id, withVersion(s.src, params.Version))
	s.drv.CompileShader(s.id)
	if s.drv.GetShaderi(s.id, driver.COMPILE_STATUS) == 0 {
		log := indentLog(s.drv.GetShaderInfoLog(s.id, MaxInfoLogLength))
		Logger().Warn("shader compilation failed", "shader", displayName(s.name), "stage", s.stage.String(), "log", log)
		return errors.WithStack(&CompileError{Shader: displayName(s.name), Log: log})
	}
	s.compiled = true
	s.params = params
	return nil
}

// Delete deletes the native shader object.
//
func (s *Shader) Delete() {
	if !s.id.Valid() {
		return
	}
	s.drv.DeleteShader(s.id)
	s.id = 0
	s.compiled = false
}

// withVersion prepends a #version directive to src unless the first
// non-blank line of src is already one.
//
func withVersion(src, version string) string {
	if version == "" {
		return src
	}
	rest := src
	for rest != "" {
		var line string
		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			line, rest = rest[:i], rest[i+1:]
		} else {
			line, rest = rest, ""
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, "#version") {
			return src
		}
		break
	}
	return "#version " + version + "\n" + src
}

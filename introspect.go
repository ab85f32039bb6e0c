package glprog

import (
	"fmt"
	"strings"

	"github.com/db47h/glprog/driver"
)

// Attribute describes an active vertex attribute.
//
type Attribute struct {
	Name     string
	Location int
	Type     driver.Enum
	Size     int
}

// Varying describes an active transform feedback varying.
//
type Varying struct {
	Name string
	Type driver.Enum
	Size int
}

// Components returns the number of scalar components written to the
// feedback buffer for v.
//
func (v Varying) Components() int {
	return TypeComponents(v.Type) * v.Size
}

// Uniform describes an active uniform. Members of uniform blocks have
// Location -1.
//
type Uniform struct {
	Name     string
	Location int
	Type     driver.Enum
	Size     int
}

// TypeComponents returns the number of scalar components of a GLSL type, or
// 1 for opaque types like samplers and images.
//
func TypeComponents(t driver.Enum) int {
	switch t {
	case driver.FLOAT_VEC2, driver.INT_VEC2:
		return 2
	case driver.FLOAT_VEC3, driver.INT_VEC3:
		return 3
	case driver.FLOAT_VEC4, driver.INT_VEC4, driver.FLOAT_MAT2:
		return 4
	case driver.FLOAT_MAT3:
		return 9
	case driver.FLOAT_MAT4:
		return 16
	}
	return 1
}

var typeNames = map[driver.Enum]string{
	driver.BOOL:           "bool",
	driver.FLOAT:          "float",
	driver.FLOAT_VEC2:     "vec2",
	driver.FLOAT_VEC3:     "vec3",
	driver.FLOAT_VEC4:     "vec4",
	driver.INT:            "int",
	driver.INT_VEC2:       "ivec2",
	driver.INT_VEC3:       "ivec3",
	driver.INT_VEC4:       "ivec4",
	driver.UNSIGNED_INT:   "uint",
	driver.FLOAT_MAT2:     "mat2",
	driver.FLOAT_MAT3:     "mat3",
	driver.FLOAT_MAT4:     "mat4",
	driver.SAMPLER_2D:     "sampler2D",
	driver.SAMPLER_3D:     "sampler3D",
	driver.SAMPLER_CUBE:   "samplerCube",
	driver.IMAGE_2D:       "image2D",
	driver.IMAGE_3D:       "image3D",
	driver.IMAGE_2D_ARRAY: "image2DArray",
	driver.IMAGE_CUBE:     "imageCube",
}

// TypeName returns the GLSL name of a resource type, or its hexadecimal value
// for types it does not know.
//
func TypeName(t driver.Enum) string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("0x%04X", uint32(t))
}

// introspect rebuilds the resource maps from the driver. The previous maps
// are replaced as a whole.
//
func (p *Program) introspect() {
	drv := p.drv
	caps := drv.Caps()

	attribs := make(map[string]Attribute)
	n := drv.GetProgrami(p.id, driver.ACTIVE_ATTRIBUTES)
	maxLen := drv.GetProgrami(p.id, driver.ACTIVE_ATTRIBUTE_MAX_LENGTH)
	for i := 0; i < n; i++ {
		r := drv.GetActiveAttrib(p.id, uint32(i), maxLen)
		if r.Name == "" || strings.HasPrefix(r.Name, "gl_") {
			continue
		}
		loc := drv.GetAttribLocation(p.id, r.Name)
		if loc < 0 {
			Logger().Debug("active attribute without location", "program", displayName(p.name), "attribute", r.Name)
			continue
		}
		attribs[r.Name] = Attribute{Name: r.Name, Location: loc, Type: r.Type, Size: r.Size}
	}

	if caps.Has(driver.CapFragDataLocation) {
		for name := range p.fragLocs {
			if loc := drv.GetFragDataLocation(p.id, name); loc >= 0 {
				p.fragLocs[name] = loc
			}
		}
	}

	feedback := make(map[string]Varying)
	if len(p.varyings) > 0 {
		switch {
		case caps.Has(driver.CapTransformFeedback):
			n := drv.GetProgrami(p.id, driver.TRANSFORM_FEEDBACK_VARYINGS)
			maxLen := drv.GetProgrami(p.id, driver.TRANSFORM_FEEDBACK_VARYING_MAX_LENGTH)
			for i := 0; i < n; i++ {
				r := drv.GetTransformFeedbackVarying(p.id, uint32(i), maxLen)
				feedback[r.Name] = Varying{Name: r.Name, Type: r.Type, Size: r.Size}
			}
		case caps.Has(driver.CapTransformFeedbackNV):
			p.introspectFeedbackNV(feedback)
		}
	}

	uniforms := make(map[string]Uniform)
	n = drv.GetProgrami(p.id, driver.ACTIVE_UNIFORMS)
	maxLen = drv.GetProgrami(p.id, driver.ACTIVE_UNIFORM_MAX_LENGTH)
	for i := 0; i < n; i++ {
		r := drv.GetActiveUniform(p.id, uint32(i), maxLen)
		name := strings.TrimSuffix(r.Name, "[0]")
		if name == "" {
			continue
		}
		uniforms[name] = Uniform{Name: name, Location: drv.GetUniformLocation(p.id, name), Type: r.Type, Size: r.Size}
	}

	var blocks []string
	n = drv.GetProgrami(p.id, driver.ACTIVE_UNIFORM_BLOCKS)
	maxLen = drv.GetProgrami(p.id, driver.ACTIVE_UNIFORM_BLOCK_MAX_NAME_LENGTH)
	for i := 0; i < n; i++ {
		blocks = append(blocks, drv.GetActiveUniformBlockName(p.id, uint32(i), maxLen))
	}

	var storage []string
	if caps.Has(driver.CapProgramInterfaceQuery) {
		n = drv.GetProgramInterfacei(p.id, driver.SHADER_STORAGE_BLOCK, driver.ACTIVE_RESOURCES)
		maxLen = drv.GetProgramInterfacei(p.id, driver.SHADER_STORAGE_BLOCK, driver.MAX_NAME_LENGTH)
		for i := 0; i < n; i++ {
			storage = append(storage, drv.GetProgramResourceName(p.id, driver.SHADER_STORAGE_BLOCK, uint32(i), maxLen))
		}
	}

	p.attribs, p.feedback, p.uniforms, p.blocks, p.storage = attribs, feedback, uniforms, blocks, storage
	Logger().Debug("program linked",
		"program", displayName(p.name),
		"backend", p.backend.String(),
		"attributes", len(attribs),
		"feedback", len(feedback),
		"uniforms", len(uniforms),
		"blocks", len(blocks),
		"storage", len(storage))
}

// introspectFeedbackNV activates the requested varyings, resolves their
// locations and registers them again by location. It mutates driver state
// and must run after LinkProgram.
//
func (p *Program) introspectFeedbackNV(feedback map[string]Varying) {
	drv := p.drv
	locs := make([]int32, 0, len(p.varyings))
	for _, name := range p.varyings {
		drv.ActiveVaryingNV(p.id, name)
	}
	for _, name := range p.varyings {
		loc := drv.GetVaryingLocationNV(p.id, name)
		if loc < 0 {
			Logger().Warn("inactive transform feedback varying", "program", displayName(p.name), "varying", name)
			continue
		}
		locs = append(locs, int32(loc))
	}
	drv.TransformFeedbackVaryingsNV(p.id, locs, driver.Enum(p.params.Feedback))
	maxLen := drv.GetProgrami(p.id, driver.ACTIVE_VARYING_MAX_LENGTH_NV)
	for _, loc := range locs {
		r := drv.GetActiveVaryingNV(p.id, uint32(loc), maxLen)
		feedback[r.Name] = Varying{Name: r.Name, Type: r.Type, Size: r.Size}
	}
}

package driver

import "strings"

// Caps is a set of optional driver capabilities.
//
type Caps uint32

// Capabilities. Drivers report the union of all capabilities they support
// either in core or through an extension.
//
const (
	// CapTransformFeedback: OpenGL 3.0 or EXT_transform_feedback.
	CapTransformFeedback Caps = 1 << iota
	// CapTransformFeedbackNV: NV_transform_feedback.
	CapTransformFeedbackNV
	// CapExplicitAttribLocation: OpenGL 3.3 or ARB_explicit_attrib_location.
	CapExplicitAttribLocation
	// CapFragDataLocation: OpenGL 3.0 or EXT_gpu_shader4.
	CapFragDataLocation
	// CapSeparateShaderObjects: OpenGL 4.1 or ARB_separate_shader_objects.
	CapSeparateShaderObjects
	// CapProgramBinary: OpenGL 4.1 or ARB_get_program_binary.
	CapProgramBinary
	// CapCompute: OpenGL 4.3 or ARB_compute_shader.
	CapCompute
	// CapImageLoadStore: OpenGL 4.2 or ARB_shader_image_load_store.
	CapImageLoadStore
	// CapProgramInterfaceQuery: OpenGL 4.3 or ARB_program_interface_query.
	CapProgramInterfaceQuery

	capLast
)

// AllCaps has every capability set.
//
const AllCaps = capLast - 1

// Has returns true if all capabilities in f are present in c.
//
func (c Caps) Has(f Caps) bool {
	return c&f == f
}

// Any returns true if any capability in f is present in c.
//
func (c Caps) Any(f Caps) bool {
	return c&f != 0
}

var capNames = [...]string{
	"TransformFeedback",
	"TransformFeedbackNV",
	"ExplicitAttribLocation",
	"FragDataLocation",
	"SeparateShaderObjects",
	"ProgramBinary",
	"Compute",
	"ImageLoadStore",
	"ProgramInterfaceQuery",
}

func (c Caps) String() string {
	if c == 0 {
		return "none"
	}
	var sb strings.Builder
	for i, n := range capNames {
		if c&(1<<uint(i)) == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString(n)
	}
	return sb.String()
}

// extensions maps extension names to the capability they provide.
//
var extensions = map[string]Caps{
	"GL_EXT_transform_feedback":       CapTransformFeedback,
	"GL_NV_transform_feedback":        CapTransformFeedbackNV,
	"GL_ARB_explicit_attrib_location": CapExplicitAttribLocation,
	"GL_EXT_gpu_shader4":              CapFragDataLocation,
	"GL_ARB_separate_shader_objects":  CapSeparateShaderObjects,
	"GL_ARB_get_program_binary":       CapProgramBinary,
	"GL_ARB_compute_shader":           CapCompute,
	"GL_ARB_shader_image_load_store":  CapImageLoadStore,
	"GL_ARB_program_interface_query":  CapProgramInterfaceQuery,
	"GL_EXT_shader_image_load_store":  CapImageLoadStore,
}

// DetectCaps returns the capabilities implied by an OpenGL version and a list
// of supported extensions.
//
func DetectCaps(major, minor int, exts []string) Caps {
	var c Caps
	v := major*10 + minor
	if v >= 30 {
		c |= CapTransformFeedback | CapFragDataLocation
	}
	if v >= 33 {
		c |= CapExplicitAttribLocation
	}
	if v >= 41 {
		c |= CapSeparateShaderObjects | CapProgramBinary
	}
	if v >= 42 {
		c |= CapImageLoadStore
	}
	if v >= 43 {
		c |= CapCompute | CapProgramInterfaceQuery
	}
	for _, e := range exts {
		c |= extensions[e]
	}
	return c
}

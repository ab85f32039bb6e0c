// Package driver defines the native graphics driver surface consumed by
// glprog. The gl sub-package provides an implementation over the OpenGL 4.6
// compatibility profile.
//
// All methods must be called with the driver's context current on the
// calling thread.
//
package driver

//go:generate curl -L --compressed -o gl.xml https://raw.githubusercontent.com/KhronosGroup/OpenGL-Registry/master/xml/gl.xml
//go:generate go run ../cmd/enumgen -i gl.xml -n enums.txt -p driver -o enums.go

// Native object names.
//
type (
	Program uint32
	Shader  uint32
	Texture uint32
	Enum    uint32
)

// Valid returns true if p is a valid program name.
//
func (p Program) Valid() bool { return p != 0 }

// Valid returns true if s is a valid shader name.
//
func (s Shader) Valid() bool { return s != 0 }

// Strings is a native array of C strings. The driver may keep a pointer to the
// array past the call that received it: Release must only be called once the
// driver is done with it.
//
type Strings interface {
	Len() int
	Release()
}

// ActiveResource describes an active program resource as returned by the
// GetActive* family of calls.
//
type ActiveResource struct {
	Name string
	Size int
	Type Enum
}

// Driver is the native driver surface.
//
type Driver interface {
	// Caps returns the optional capabilities of the driver.
	Caps() Caps
	// Renderer returns a string identifying the driver, suitable as a cache key.
	Renderer() string

	GetInteger(pname Enum) int

	CreateProgram() Program
	DeleteProgram(p Program)
	CreateShader(typ Enum) Shader
	DeleteShader(s Shader)
	ShaderSource(s Shader, src string)
	CompileShader(s Shader)
	GetShaderi(s Shader, pname Enum) int
	GetShaderInfoLog(s Shader, maxLen int) string

	AttachShader(p Program, s Shader)
	DetachShader(p Program, s Shader)
	GetAttachedShaders(p Program) []Shader

	BindAttribLocation(p Program, index uint32, name string)
	BindFragDataLocation(p Program, color uint32, name string)
	GetFragDataLocation(p Program, name string) int

	// NewStrings allocates a native array for names.
	NewStrings(names []string) Strings
	TransformFeedbackVaryings(p Program, varyings Strings, bufferMode Enum)

	// NV_transform_feedback
	ActiveVaryingNV(p Program, name string)
	GetVaryingLocationNV(p Program, name string) int
	TransformFeedbackVaryingsNV(p Program, locations []int32, bufferMode Enum)
	GetActiveVaryingNV(p Program, index uint32, bufSize int) ActiveResource

	LinkProgram(p Program)
	ValidateProgram(p Program)
	GetProgrami(p Program, pname Enum) int
	GetProgramInfoLog(p Program, maxLen int) string

	GetActiveAttrib(p Program, index uint32, bufSize int) ActiveResource
	GetAttribLocation(p Program, name string) int
	GetActiveUniform(p Program, index uint32, bufSize int) ActiveResource
	GetUniformLocation(p Program, name string) int
	GetActiveUniformBlockName(p Program, index uint32, bufSize int) string
	GetTransformFeedbackVarying(p Program, index uint32, bufSize int) ActiveResource
	GetProgramInterfacei(p Program, iface, pname Enum) int
	GetProgramResourceName(p Program, iface Enum, index uint32, bufSize int) string

	GetProgramBinary(p Program) (binary []byte, format Enum)
	ProgramBinary(p Program, format Enum, binary []byte)

	UseProgram(p Program)
	Uniform1i(location int, v int32)
	Uniform1f(location int, v float32)
	Uniform4f(location int, v0, v1, v2, v3 float32)
	UniformMatrix4fv(location int, m *[16]float32)
	ProgramUniform1i(p Program, location int, v int32)
	ProgramUniform1f(p Program, location int, v float32)
	ProgramUniform4f(p Program, location int, v0, v1, v2, v3 float32)
	ProgramUniformMatrix4fv(p Program, location int, m *[16]float32)

	BindImageTexture(unit uint32, t Texture, level int, layered bool, layer int, access, format Enum)
	DispatchCompute(x, y, z uint32)
	MemoryBarrier(barriers Enum)

	CreateTexture() Texture
	DeleteTexture(t Texture)
	BindTexture(target Enum, t Texture)
	TexParameteri(target, pname Enum, param int32)
	TexParameterfv(target, pname Enum, params []float32)
	TexImage2D(target Enum, level int, internalFormat Enum, width, height int, format, typ Enum, pix []byte)
	TexImage3D(target Enum, level int, internalFormat Enum, width, height, depth int, format, typ Enum, pix []byte)
	GenerateMipmap(target Enum)
}

package gl

import (
	"runtime"

	"github.com/db47h/glprog/driver"
	gogl "github.com/go-gl/gl/v4.6-compatibility/gl"
)

func (d *Driver) CreateProgram() driver.Program {
	return driver.Program(gogl.CreateProgram())
}

func (d *Driver) DeleteProgram(p driver.Program) {
	gogl.DeleteProgram(uint32(p))
}

func (d *Driver) CreateShader(typ driver.Enum) driver.Shader {
	return driver.Shader(gogl.CreateShader(uint32(typ)))
}

func (d *Driver) DeleteShader(s driver.Shader) {
	gogl.DeleteShader(uint32(s))
}

func (d *Driver) ShaderSource(s driver.Shader, src string) {
	csrc, free := gogl.Strs(src + "\x00")
	gogl.ShaderSource(uint32(s), 1, csrc, nil)
	free()
}

func (d *Driver) CompileShader(s driver.Shader) {
	gogl.CompileShader(uint32(s))
}

func (d *Driver) GetShaderi(s driver.Shader, pname driver.Enum) int {
	var v int32
	gogl.GetShaderiv(uint32(s), uint32(pname), &v)
	return int(v)
}

func (d *Driver) GetShaderInfoLog(s driver.Shader, maxLen int) string {
	n := d.GetShaderi(s, driver.INFO_LOG_LENGTH)
	if n > maxLen {
		n = maxLen
	}
	if n <= 0 {
		return ""
	}
	var l int32
	buf := nameBuffer(n)
	gogl.GetShaderInfoLog(uint32(s), int32(len(buf)), &l, &buf[0])
	return goString(buf, l)
}

func (d *Driver) AttachShader(p driver.Program, s driver.Shader) {
	gogl.AttachShader(uint32(p), uint32(s))
}

func (d *Driver) DetachShader(p driver.Program, s driver.Shader) {
	gogl.DetachShader(uint32(p), uint32(s))
}

func (d *Driver) GetAttachedShaders(p driver.Program) []driver.Shader {
	n := d.GetProgrami(p, driver.ATTACHED_SHADERS)
	if n <= 0 {
		return nil
	}
	var count int32
	names := make([]uint32, n)
	gogl.GetAttachedShaders(uint32(p), int32(n), &count, &names[0])
	ss := make([]driver.Shader, count)
	for i := range ss {
		ss[i] = driver.Shader(names[i])
	}
	return ss
}

func (d *Driver) BindAttribLocation(p driver.Program, index uint32, name string) {
	cs, keep := cstr(name)
	gogl.BindAttribLocation(uint32(p), index, cs)
	runtime.KeepAlive(keep)
}

func (d *Driver) BindFragDataLocation(p driver.Program, color uint32, name string) {
	cs, keep := cstr(name)
	gogl.BindFragDataLocation(uint32(p), color, cs)
	runtime.KeepAlive(keep)
}

func (d *Driver) GetFragDataLocation(p driver.Program, name string) int {
	cs, keep := cstr(name)
	loc := gogl.GetFragDataLocation(uint32(p), cs)
	runtime.KeepAlive(keep)
	return int(loc)
}

// NewStrings implements driver.Strings. The returned array lives in C memory
// and stays valid until Release is called.
//
func (d *Driver) NewStrings(names []string) driver.Strings {
	return newStrings(names)
}

func (d *Driver) TransformFeedbackVaryings(p driver.Program, varyings driver.Strings, bufferMode driver.Enum) {
	cs := varyings.(*cstrings)
	gogl.TransformFeedbackVaryings(uint32(p), int32(cs.n), cs.ptr, uint32(bufferMode))
}

func (d *Driver) ActiveVaryingNV(p driver.Program, name string) {
	cs, keep := cstr(name)
	gogl.ActiveVaryingNV(uint32(p), cs)
	runtime.KeepAlive(keep)
}

func (d *Driver) GetVaryingLocationNV(p driver.Program, name string) int {
	cs, keep := cstr(name)
	loc := gogl.GetVaryingLocationNV(uint32(p), cs)
	runtime.KeepAlive(keep)
	return int(loc)
}

func (d *Driver) TransformFeedbackVaryingsNV(p driver.Program, locations []int32, bufferMode driver.Enum) {
	if len(locations) == 0 {
		gogl.TransformFeedbackVaryingsNV(uint32(p), 0, nil, uint32(bufferMode))
		return
	}
	gogl.TransformFeedbackVaryingsNV(uint32(p), int32(len(locations)), &locations[0], uint32(bufferMode))
}

func (d *Driver) GetActiveVaryingNV(p driver.Program, index uint32, bufSize int) driver.ActiveResource {
	var (
		l, size int32
		typ     uint32
		buf     = nameBuffer(bufSize)
	)
	gogl.GetActiveVaryingNV(uint32(p), index, int32(len(buf)), &l, &size, &typ, &buf[0])
	return driver.ActiveResource{Name: goString(buf, l), Size: int(size), Type: driver.Enum(typ)}
}

func (d *Driver) LinkProgram(p driver.Program) {
	gogl.LinkProgram(uint32(p))
}

func (d *Driver) ValidateProgram(p driver.Program) {
	gogl.ValidateProgram(uint32(p))
}

func (d *Driver) GetProgrami(p driver.Program, pname driver.Enum) int {
	var v int32
	gogl.GetProgramiv(uint32(p), uint32(pname), &v)
	return int(v)
}

func (d *Driver) GetProgramInfoLog(p driver.Program, maxLen int) string {
	n := d.GetProgrami(p, driver.INFO_LOG_LENGTH)
	if n > maxLen {
		n = maxLen
	}
	if n <= 0 {
		return ""
	}
	var l int32
	buf := nameBuffer(n)
	gogl.GetProgramInfoLog(uint32(p), int32(len(buf)), &l, &buf[0])
	return goString(buf, l)
}

func (d *Driver) GetActiveAttrib(p driver.Program, index uint32, bufSize int) driver.ActiveResource {
	var (
		l, size int32
		typ     uint32
		buf     = nameBuffer(bufSize)
	)
	gogl.GetActiveAttrib(uint32(p), index, int32(len(buf)), &l, &size, &typ, &buf[0])
	return driver.ActiveResource{Name: goString(buf, l), Size: int(size), Type: driver.Enum(typ)}
}

func (d *Driver) GetAttribLocation(p driver.Program, name string) int {
	cs, keep := cstr(name)
	loc := gogl.GetAttribLocation(uint32(p), cs)
	runtime.KeepAlive(keep)
	return int(loc)
}

func (d *Driver) GetActiveUniform(p driver.Program, index uint32, bufSize int) driver.ActiveResource {
	var (
		l, size int32
		typ     uint32
		buf     = nameBuffer(bufSize)
	)
	gogl.GetActiveUniform(uint32(p), index, int32(len(buf)), &l, &size, &typ, &buf[0])
	return driver.ActiveResource{Name: goString(buf, l), Size: int(size), Type: driver.Enum(typ)}
}

func (d *Driver) GetUniformLocation(p driver.Program, name string) int {
	cs, keep := cstr(name)
	loc := gogl.GetUniformLocation(uint32(p), cs)
	runtime.KeepAlive(keep)
	return int(loc)
}

func (d *Driver) GetActiveUniformBlockName(p driver.Program, index uint32, bufSize int) string {
	var l int32
	buf := nameBuffer(bufSize)
	gogl.GetActiveUniformBlockName(uint32(p), index, int32(len(buf)), &l, &buf[0])
	return goString(buf, l)
}

func (d *Driver) GetTransformFeedbackVarying(p driver.Program, index uint32, bufSize int) driver.ActiveResource {
	var (
		l, size int32
		typ     uint32
		buf     = nameBuffer(bufSize)
	)
	gogl.GetTransformFeedbackVarying(uint32(p), index, int32(len(buf)), &l, &size, &typ, &buf[0])
	return driver.ActiveResource{Name: goString(buf, l), Size: int(size), Type: driver.Enum(typ)}
}

func (d *Driver) GetProgramInterfacei(p driver.Program, iface, pname driver.Enum) int {
	var v int32
	gogl.GetProgramInterfaceiv(uint32(p), uint32(iface), uint32(pname), &v)
	return int(v)
}

func (d *Driver) GetProgramResourceName(p driver.Program, iface driver.Enum, index uint32, bufSize int) string {
	var l int32
	buf := nameBuffer(bufSize)
	gogl.GetProgramResourceName(uint32(p), uint32(iface), index, int32(len(buf)), &l, &buf[0])
	return goString(buf, l)
}

func (d *Driver) GetProgramBinary(p driver.Program) ([]byte, driver.Enum) {
	n := d.GetProgrami(p, driver.PROGRAM_BINARY_LENGTH)
	if n <= 0 {
		return nil, 0
	}
	var (
		l      int32
		format uint32
		buf    = make([]byte, n)
	)
	gogl.GetProgramBinary(uint32(p), int32(n), &l, &format, gogl.Ptr(buf))
	return buf[:l], driver.Enum(format)
}

func (d *Driver) ProgramBinary(p driver.Program, format driver.Enum, binary []byte) {
	gogl.ProgramBinary(uint32(p), uint32(format), pixPtr(binary), int32(len(binary)))
}

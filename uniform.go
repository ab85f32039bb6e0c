package glprog

import (
	"github.com/db47h/glprog/driver"
	"github.com/pkg/errors"
)

type uniformSetter interface {
	uniform1i(loc int, v int32)
	uniform1f(loc int, v float32)
	uniform4f(loc int, v [4]float32)
	uniformMatrix4f(loc int, m *[16]float32)
}

// separateUniforms sets uniforms on the program object directly.
//
type separateUniforms struct {
	drv driver.Driver
	id  driver.Program
}

func (u separateUniforms) uniform1i(loc int, v int32)   { u.drv.ProgramUniform1i(u.id, loc, v) }
func (u separateUniforms) uniform1f(loc int, v float32) { u.drv.ProgramUniform1f(u.id, loc, v) }
func (u separateUniforms) uniform4f(loc int, v [4]float32) {
	u.drv.ProgramUniform4f(u.id, loc, v[0], v[1], v[2], v[3])
}
func (u separateUniforms) uniformMatrix4f(loc int, m *[16]float32) {
	u.drv.ProgramUniformMatrix4fv(u.id, loc, m)
}

// compatibleUniforms makes the program current before each call.
//
type compatibleUniforms struct {
	drv driver.Driver
	id  driver.Program
}

func (u compatibleUniforms) uniform1i(loc int, v int32) {
	u.drv.UseProgram(u.id)
	u.drv.Uniform1i(loc, v)
}

func (u compatibleUniforms) uniform1f(loc int, v float32) {
	u.drv.UseProgram(u.id)
	u.drv.Uniform1f(loc, v)
}

func (u compatibleUniforms) uniform4f(loc int, v [4]float32) {
	u.drv.UseProgram(u.id)
	u.drv.Uniform4f(loc, v[0], v[1], v[2], v[3])
}

func (u compatibleUniforms) uniformMatrix4f(loc int, m *[16]float32) {
	u.drv.UseProgram(u.id)
	u.drv.UniformMatrix4fv(loc, m)
}

// uniformLocation returns the location of an active uniform, or -1 if the
// uniform is not active. Setting an inactive uniform is a no-op, as in GL.
//
func (p *Program) uniformLocation(name string) (int, error) {
	if p.state != Linked {
		return -1, errors.WithStack(ErrNotLinked)
	}
	u, ok := p.uniforms[name]
	if !ok || u.Location < 0 {
		Logger().Debug("set inactive uniform", "program", displayName(p.name), "uniform", name)
		return -1, nil
	}
	return u.Location, nil
}

// SetUniform1i sets an int, bool, sampler or image uniform.
//
func (p *Program) SetUniform1i(name string, v int32) error {
	loc, err := p.uniformLocation(name)
	if err != nil || loc < 0 {
		return err
	}
	p.uniform.uniform1i(loc, v)
	return nil
}

// SetUniform1f sets a float uniform.
//
func (p *Program) SetUniform1f(name string, v float32) error {
	loc, err := p.uniformLocation(name)
	if err != nil || loc < 0 {
		return err
	}
	p.uniform.uniform1f(loc, v)
	return nil
}

// SetUniform4f sets a vec4 uniform.
//
func (p *Program) SetUniform4f(name string, v [4]float32) error {
	loc, err := p.uniformLocation(name)
	if err != nil || loc < 0 {
		return err
	}
	p.uniform.uniform4f(loc, v)
	return nil
}

// SetUniformMatrix4f sets a mat4 uniform. m is in column-major order.
//
func (p *Program) SetUniformMatrix4f(name string, m *[16]float32) error {
	if m == nil {
		return argError("matrix", "nil matrix")
	}
	loc, err := p.uniformLocation(name)
	if err != nil || loc < 0 {
		return err
	}
	p.uniform.uniformMatrix4f(loc, m)
	return nil
}

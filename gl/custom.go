// Package gl implements driver.Driver over the OpenGL 4.6 compatibility profile
// bindings of github.com/go-gl/gl.
//
// Capabilities are detected from the context version and extension list, so
// the same driver works on older contexts, down to the NV_transform_feedback
// path.
//
package gl

import (
	"fmt"
	"unsafe"

	"github.com/db47h/glprog/driver"
	gogl "github.com/go-gl/gl/v4.6-compatibility/gl"
	"github.com/pkg/errors"
)

// Driver implements driver.Driver for the context current at the time
// of the call to New.
//
type Driver struct {
	caps     driver.Caps
	major    int
	minor    int
	renderer string
}

// New loads the OpenGL entry points with getProcAddr and returns a Driver for
// the current context. If getProcAddr is nil, the platform's default loader is
// used.
//
func New(getProcAddr func(name string) unsafe.Pointer) (*Driver, error) {
	var err error
	if getProcAddr != nil {
		err = gogl.InitWithProcAddrFunc(getProcAddr)
	} else {
		err = gogl.Init()
	}
	if err != nil {
		return nil, errors.Wrap(err, "load OpenGL")
	}

	d := new(Driver)
	d.major = d.GetInteger(driver.MAJOR_VERSION)
	d.minor = d.GetInteger(driver.MINOR_VERSION)
	n := d.GetInteger(driver.NUM_EXTENSIONS)
	exts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		exts = append(exts, GetGoStringi(driver.EXTENSIONS, i))
	}
	d.caps = driver.DetectCaps(d.major, d.minor, exts)
	d.renderer = fmt.Sprintf("%s|%s|%s", GetGoString(driver.VENDOR), GetGoString(driver.RENDERER), GetGoString(driver.VERSION))
	return d, nil
}

// Version returns the OpenGL context version.
//
func (d *Driver) Version() (major, minor int) {
	return d.major, d.minor
}

// Caps implements driver.Driver.
//
func (d *Driver) Caps() driver.Caps { return d.caps }

// Renderer implements driver.Driver.
//
func (d *Driver) Renderer() string { return d.renderer }

func (d *Driver) GetInteger(pname driver.Enum) int {
	var v int32
	gogl.GetIntegerv(uint32(pname), &v)
	return int(v)
}

func (d *Driver) UseProgram(p driver.Program) {
	gogl.UseProgram(uint32(p))
}

func (d *Driver) Uniform1i(location int, v int32) {
	gogl.Uniform1i(int32(location), v)
}

func (d *Driver) Uniform1f(location int, v float32) {
	gogl.Uniform1f(int32(location), v)
}

func (d *Driver) Uniform4f(location int, v0, v1, v2, v3 float32) {
	gogl.Uniform4f(int32(location), v0, v1, v2, v3)
}

func (d *Driver) UniformMatrix4fv(location int, m *[16]float32) {
	gogl.UniformMatrix4fv(int32(location), 1, false, &m[0])
}

func (d *Driver) ProgramUniform1i(p driver.Program, location int, v int32) {
	gogl.ProgramUniform1i(uint32(p), int32(location), v)
}

func (d *Driver) ProgramUniform1f(p driver.Program, location int, v float32) {
	gogl.ProgramUniform1f(uint32(p), int32(location), v)
}

func (d *Driver) ProgramUniform4f(p driver.Program, location int, v0, v1, v2, v3 float32) {
	gogl.ProgramUniform4f(uint32(p), int32(location), v0, v1, v2, v3)
}

func (d *Driver) ProgramUniformMatrix4fv(p driver.Program, location int, m *[16]float32) {
	gogl.ProgramUniformMatrix4fv(uint32(p), int32(location), 1, false, &m[0])
}

func (d *Driver) BindImageTexture(unit uint32, t driver.Texture, level int, layered bool, layer int, access, format driver.Enum) {
	gogl.BindImageTexture(unit, uint32(t), int32(level), layered, int32(layer), uint32(access), uint32(format))
}

func (d *Driver) DispatchCompute(x, y, z uint32) {
	gogl.DispatchCompute(x, y, z)
}

func (d *Driver) MemoryBarrier(barriers driver.Enum) {
	gogl.MemoryBarrier(uint32(barriers))
}

var _ driver.Driver = (*Driver)(nil)

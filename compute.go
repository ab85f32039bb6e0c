package glprog

import (
	"math/bits"

	"github.com/db47h/glprog/driver"
	"github.com/pkg/errors"
)

// Barrier is a set of memory barrier bits.
//
type Barrier driver.Enum

// Barrier values map directly to their OpenGL equivalents.
//
const (
	VertexAttribArrayBarrier Barrier = Barrier(driver.VERTEX_ATTRIB_ARRAY_BARRIER_BIT)
	UniformBarrier           Barrier = Barrier(driver.UNIFORM_BARRIER_BIT)
	TextureFetchBarrier      Barrier = Barrier(driver.TEXTURE_FETCH_BARRIER_BIT)
	ShaderImageAccessBarrier Barrier = Barrier(driver.SHADER_IMAGE_ACCESS_BARRIER_BIT)
	BufferUpdateBarrier      Barrier = Barrier(driver.BUFFER_UPDATE_BARRIER_BIT)
	ShaderStorageBarrier     Barrier = Barrier(driver.SHADER_STORAGE_BARRIER_BIT)
	AllBarriers              Barrier = Barrier(driver.ALL_BARRIER_BITS)
)

// Dispatch runs the compute program with x*y*z work groups. It makes the
// program current and binds all images before dispatching.
//
// Dispatch returns an *ArgumentError, and dispatches nothing, if x*y*z exceeds
// the driver's MAX_COMPUTE_WORK_GROUP_INVOCATIONS.
//
func (p *Program) Dispatch(x, y, z uint32) error {
	if p.state != Linked {
		return errors.WithStack(ErrNotLinked)
	}
	if !p.drv.Caps().Has(driver.CapCompute) {
		return errors.WithStack(&UnsupportedFeatureError{Feature: "compute shaders"})
	}
	limit := p.drv.GetInteger(driver.MAX_COMPUTE_WORK_GROUP_INVOCATIONS)
	// x*y fits in 64 bits, the full product may not.
	if hi, n := bits.Mul64(uint64(x)*uint64(y), uint64(z)); hi != 0 || n > uint64(limit) {
		return argError("size", "dispatch of %dx%dx%d work groups exceeds the driver limit of %d", x, y, z, limit)
	}
	p.drv.UseProgram(p.id)
	if err := p.bindImages(); err != nil {
		return err
	}
	p.drv.DispatchCompute(x, y, z)
	return nil
}

// MemoryBarrier orders memory transactions issued before the barrier with
// those issued after it.
//
func (p *Program) MemoryBarrier(b Barrier) {
	p.drv.MemoryBarrier(driver.Enum(b))
}

package glprog

import (
	"testing"

	"github.com/db47h/glprog/driver"
	"github.com/db47h/glprog/internal/fakegl"
	"github.com/db47h/glprog/texture"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatch(t *testing.T) {
	drv := fakegl.New(driver.AllCaps)
	p := newComputeProgram(t, drv)
	src := texture.New(drv, 32, 32, texture.RGBA8)
	dst := texture.New(drv, 32, 32, texture.R32F)
	require.NoError(t, p.BindImage("src", src, ReadOnly))
	require.NoError(t, p.BindImage("dst", dst, WriteOnly, ImageFormat(driver.R32F)))
	drv.ResetCalls()

	require.NoError(t, p.Dispatch(4, 4, 1))

	// units are assigned in name order
	assert.Equal(t, [][]interface{}{
		{uint32(0), dst.NativeID(), 0, false, 0, driver.WRITE_ONLY, driver.R32F},
		{uint32(1), src.NativeID(), 0, false, 0, driver.READ_ONLY, driver.RGBA8},
	}, callArgs(t, drv, "BindImageTexture"))
	for unit, name := range []string{"dst", "src"} {
		u, ok := p.Uniform(name)
		require.True(t, ok, name)
		assert.Equal(t, int32(unit), drv.UniformValue(p.NativeID(), u.Location), name)
	}
	assert.Equal(t, [][]interface{}{{uint32(4), uint32(4), uint32(1)}}, callArgs(t, drv, "DispatchCompute"))
	assert.Less(t, drv.Index("UseProgram"), drv.Index("BindImageTexture"))
	assert.Less(t, drv.LastIndex("BindImageTexture"), drv.Index("DispatchCompute"))
	assert.Equal(t, p.NativeID(), drv.Current())
}

func TestDispatchCompatibleBackend(t *testing.T) {
	drv := fakegl.New(driver.AllCaps &^ driver.CapSeparateShaderObjects)
	p := newComputeProgram(t, drv)
	require.NoError(t, p.BindImage("src", texture.New(drv, 8, 8, texture.RGBA8), ReadOnly))
	require.NoError(t, p.Dispatch(1, 1, 1))
	u, _ := p.Uniform("src")
	assert.Equal(t, int32(0), drv.UniformValue(p.NativeID(), u.Location))
	assert.Equal(t, 1, drv.Count("Uniform1i"))
	assert.Equal(t, 0, drv.Count("ProgramUniform1i"))
}

func TestDispatchTooLarge(t *testing.T) {
	drv := fakegl.New(driver.AllCaps)
	drv.Ints[driver.MAX_COMPUTE_WORK_GROUP_INVOCATIONS] = 1024
	p := newComputeProgram(t, drv)
	require.NoError(t, p.BindImage("src", texture.New(drv, 8, 8, texture.RGBA8), ReadOnly))

	requireArgError(t, p.Dispatch(32, 32, 2))
	requireArgError(t, p.Dispatch(1<<31, 1<<31, 3))
	// product wraps to 0 in 64 bits
	requireArgError(t, p.Dispatch(1<<22, 1<<22, 1<<22))
	requireArgError(t, p.Dispatch(1<<31, 1<<31, 1<<31))
	assert.Equal(t, 0, drv.Count("DispatchCompute"))
	assert.Equal(t, 0, drv.Count("BindImageTexture"))

	require.NoError(t, p.Dispatch(32, 32, 1))
	require.NoError(t, p.Dispatch(0, 1, 1))
	assert.Equal(t, 2, drv.Count("DispatchCompute"))
}

func TestDispatchErrors(t *testing.T) {
	drv := fakegl.New(driver.AllCaps)
	p, err := New(drv, "unlinked", nil)
	require.NoError(t, err)
	assert.Equal(t, ErrNotLinked, errors.Cause(p.Dispatch(1, 1, 1)))

	drv.Ints[driver.MAX_IMAGE_UNITS] = 1
	p = newComputeProgram(t, drv)
	require.NoError(t, p.BindImage("src", texture.New(drv, 8, 8, texture.RGBA8), ReadOnly))
	require.NoError(t, p.BindImage("dst", texture.New(drv, 8, 8, texture.RGBA8), WriteOnly))
	requireArgError(t, p.Dispatch(1, 1, 1))
	assert.Equal(t, 0, drv.Count("DispatchCompute"))

	drv = fakegl.New(driver.AllCaps &^ driver.CapCompute)
	p = newComputeProgram(t, drv)
	_, ok := errors.Cause(p.Dispatch(1, 1, 1)).(*UnsupportedFeatureError)
	assert.True(t, ok)
}

func TestMemoryBarrier(t *testing.T) {
	drv := fakegl.New(driver.AllCaps)
	p := newComputeProgram(t, drv)
	p.MemoryBarrier(ShaderImageAccessBarrier | TextureFetchBarrier)
	assert.Equal(t, [][]interface{}{{driver.SHADER_IMAGE_ACCESS_BARRIER_BIT | driver.TEXTURE_FETCH_BARRIER_BIT}}, callArgs(t, drv, "MemoryBarrier"))
}

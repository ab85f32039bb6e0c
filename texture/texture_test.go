package texture_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/db47h/glprog/driver"
	"github.com/db47h/glprog/internal/fakegl"
	"github.com/db47h/glprog/texture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayout(t *testing.T) {
	assert.Equal(t, driver.RGBA8, texture.RGBA8.InternalFormat())
	assert.Equal(t, driver.R32UI, texture.R32UI.InternalFormat())
	assert.Equal(t, driver.Enum(0), texture.Layout{Format: driver.RGB, Type: driver.UNSIGNED_SHORT}.InternalFormat())
	assert.Equal(t, 16, texture.RGBA32F.PixelSize())
	assert.Equal(t, 6, texture.RGB16F.PixelSize())
	assert.Equal(t, 1, texture.R8.PixelSize())

	l, err := texture.ParseLayout("RGBA16F")
	require.NoError(t, err)
	assert.Equal(t, texture.RGBA16F, l)
	assert.Equal(t, "rgba16f", l.String())
	_, err = texture.ParseLayout("bgra")
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	drv := fakegl.New(driver.AllCaps)
	tex := texture.New(drv, 64, 32, texture.RGBA32F,
		texture.Wrap(texture.ClampToEdge, texture.Repeat),
		texture.Filter(texture.Nearest, texture.Linear))

	st := drv.Texture(tex.NativeID())
	require.NotNil(t, st)
	assert.Equal(t, driver.TEXTURE_2D, st.Target)
	assert.Equal(t, driver.RGBA32F, st.InternalFormat)
	assert.Equal(t, 64, st.Width)
	assert.Equal(t, 32, st.Height)
	assert.Equal(t, int32(driver.CLAMP_TO_EDGE), st.Params[driver.TEXTURE_WRAP_S])
	assert.Equal(t, int32(driver.REPEAT), st.Params[driver.TEXTURE_WRAP_T])
	assert.Equal(t, int32(driver.NEAREST), st.Params[driver.TEXTURE_MIN_FILTER])
	assert.Equal(t, int32(driver.LINEAR), st.Params[driver.TEXTURE_MAG_FILTER])
	assert.Equal(t, 0, drv.Count("GenerateMipmap"), "no data, no mipmaps")

	x, y, z := tex.Size()
	assert.Equal(t, [3]int{64, 32, 1}, [3]int{x, y, z})
	assert.Equal(t, texture.RGBA32F, tex.Layout())
	assert.Equal(t, driver.TEXTURE_2D, tex.Target())
}

func TestNewTargets(t *testing.T) {
	drv := fakegl.New(driver.AllCaps)

	t3 := texture.New3D(drv, 8, 8, 4, texture.R32F, texture.WrapR(texture.MirroredRepeat))
	st := drv.Texture(t3.NativeID())
	assert.Equal(t, driver.TEXTURE_3D, st.Target)
	assert.Equal(t, 4, st.Depth)
	assert.Equal(t, int32(driver.MIRRORED_REPEAT), st.Params[driver.TEXTURE_WRAP_R])

	arr := texture.NewArray(drv, 8, 8, 3, texture.RGBA8)
	assert.Equal(t, driver.TEXTURE_2D_ARRAY, drv.Texture(arr.NativeID()).Target)

	drv.ResetCalls()
	cube := texture.NewCube(drv, 16, texture.RGBA8)
	assert.Equal(t, driver.TEXTURE_CUBE_MAP, drv.Texture(cube.NativeID()).Target)
	faces := drv.Find("TexImage2D")
	require.Len(t, faces, 6)
	for i, c := range faces {
		assert.Equal(t, driver.TEXTURE_CUBE_MAP_POSITIVE_X+driver.Enum(i), c.Args[0])
	}
	_, _, z := cube.Size()
	assert.Equal(t, 6, z)
}

func TestFromImage(t *testing.T) {
	drv := fakegl.New(driver.AllCaps)

	gray := image.NewGray(image.Rect(0, 0, 4, 2))
	tex := texture.FromImage(drv, gray)
	assert.Equal(t, texture.R8, tex.Layout())
	assert.Equal(t, driver.R8, drv.Texture(tex.NativeID()).InternalFormat)

	nrgba := image.NewNRGBA(image.Rect(10, 10, 18, 14))
	tex = texture.FromImage(drv, nrgba, texture.Filter(texture.LinearMipmapLinear, texture.Linear))
	assert.Equal(t, texture.RGBA8, tex.Layout())
	st := drv.Texture(tex.NativeID())
	assert.Equal(t, 8, st.Width)
	assert.Equal(t, 4, st.Height)
	assert.Equal(t, 4, st.Levels)
	assert.Equal(t, 1, drv.Count("GenerateMipmap"))
	c := drv.Find("TexImage2D")
	assert.Equal(t, 8*4*4, c[len(c)-1].Args[7], "pixel data converted to RGBA")

	tex.Bind()
	assert.Equal(t, 1, drv.Count("GenerateMipmap"))
	tex.Invalidate()
	tex.Bind()
	assert.Equal(t, 2, drv.Count("GenerateMipmap"))
}

func TestBorderColor(t *testing.T) {
	drv := fakegl.New(driver.AllCaps)
	tex := texture.New(drv, 1, 1, texture.RGBA8)
	tex.Parameters(texture.Wrap(texture.ClampToBorder, texture.ClampToBorder), texture.BorderColor(color.RGBA{255, 0, 0, 255}))
	c := drv.Find("TexParameterfv")
	require.Len(t, c, 1)
	assert.Equal(t, []interface{}{driver.TEXTURE_2D, driver.TEXTURE_BORDER_COLOR, []float32{1, 0, 0, 1}}, c[0].Args)
}

func TestRefCount(t *testing.T) {
	drv := fakegl.New(driver.AllCaps)
	tex := texture.New(drv, 1, 1, texture.R8)
	id := tex.NativeID()
	assert.Equal(t, 1, tex.RefCount())
	tex.Retain()
	tex.Release()
	assert.False(t, drv.Texture(id).Deleted)
	tex.Release()
	assert.True(t, drv.Texture(id).Deleted)
	assert.Equal(t, 0, tex.RefCount())
	assert.Panics(t, tex.Release)
}

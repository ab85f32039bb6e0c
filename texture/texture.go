// Package texture provides reference counted textures usable as image units
// by glprog programs.
//
package texture

import (
	"image"
	"image/color"
	"image/draw"
	"sync/atomic"

	"github.com/db47h/glprog/driver"
)

// FilterMode selects how to filter textures.
//
type FilterMode int32

// FilterMode values map directly to their OpenGL equivalents.
//
const (
	Nearest              FilterMode = FilterMode(driver.NEAREST)
	Linear                          = FilterMode(driver.LINEAR)
	NearestMipmapNearest            = FilterMode(driver.NEAREST_MIPMAP_NEAREST)
	NearestMipmapLinear             = FilterMode(driver.NEAREST_MIPMAP_LINEAR)
	LinearMipmapNearest             = FilterMode(driver.LINEAR_MIPMAP_NEAREST)
	LinearMipmapLinear              = FilterMode(driver.LINEAR_MIPMAP_LINEAR)
)

// WrapMode selects how textures wrap when texture coordinates get outside of
// the range [0, 1].
//
type WrapMode int32

// WrapMode values map directly to their OpenGL equivalents.
//
const (
	Repeat         WrapMode = WrapMode(driver.REPEAT)
	MirroredRepeat          = WrapMode(driver.MIRRORED_REPEAT)
	ClampToEdge             = WrapMode(driver.CLAMP_TO_EDGE)
	ClampToBorder           = WrapMode(driver.CLAMP_TO_BORDER)
)

// A Texture is a reference counted OpenGL texture. New textures have a
// reference count of 1; the native texture is deleted when the count drops to
// zero. Release must be called with the texture's context current.
//
type Texture struct {
	drv    driver.Driver
	id     driver.Texture
	target driver.Enum
	layout Layout
	width  int
	height int
	depth  int
	mipmap bool
	dirty  bool
	refs   int32
}

type tp struct {
	wrapS, wrapT, wrapR  WrapMode
	minFilter, magFilter FilterMode
	border               color.Color
}

// Parameter is implemented by functions setting texture parameters. See New.
//
type Parameter interface {
	set(*tp)
}

type optionFunc func(*tp)

func (f optionFunc) set(p *tp) {
	f(p)
}

// Wrap sets the GL_TEXTURE_WRAP_S and GL_TEXTURE_WRAP_T texture parameters.
//
func Wrap(wrapS, wrapT WrapMode) Parameter {
	return optionFunc(func(p *tp) {
		p.wrapS = wrapS
		p.wrapT = wrapT
	})
}

// WrapR sets the GL_TEXTURE_WRAP_R texture parameter of 3D textures.
//
func WrapR(wrapR WrapMode) Parameter {
	return optionFunc(func(p *tp) {
		p.wrapR = wrapR
	})
}

// Filter sets the GL_TEXTURE_MIN_FILTER and GL_TEXTURE_MAG_FILTER texture parameters.
//
func Filter(min, mag FilterMode) Parameter {
	return optionFunc(func(p *tp) {
		p.minFilter = min
		p.magFilter = mag
	})
}

// BorderColor sets the GL_TEXTURE_BORDER_COLOR texture parameter.
//
func BorderColor(c color.Color) Parameter {
	return optionFunc(func(p *tp) {
		p.border = c
	})
}

// New returns a new uninitialized 2D texture.
//
func New(drv driver.Driver, width, height int, layout Layout, params ...Parameter) *Texture {
	return newTexture(drv, driver.TEXTURE_2D, width, height, 1, layout, nil, params...)
}

// New3D returns a new uninitialized 3D texture.
//
func New3D(drv driver.Driver, width, height, depth int, layout Layout, params ...Parameter) *Texture {
	return newTexture(drv, driver.TEXTURE_3D, width, height, depth, layout, nil, params...)
}

// NewArray returns a new uninitialized 2D array texture with the given
// number of layers.
//
func NewArray(drv driver.Driver, width, height, layers int, layout Layout, params ...Parameter) *Texture {
	return newTexture(drv, driver.TEXTURE_2D_ARRAY, width, height, layers, layout, nil, params...)
}

// NewCube returns a new uninitialized cube map texture with square faces of
// the given size.
//
func NewCube(drv driver.Driver, size int, layout Layout, params ...Parameter) *Texture {
	return newTexture(drv, driver.TEXTURE_CUBE_MAP, size, size, 6, layout, nil, params...)
}

// FromImage creates a new 2D texture of the same dimensions as the source
// image. Gray images produce an R8 texture, any other image type an RGBA8
// texture.
//
func FromImage(drv driver.Driver, src image.Image, params ...Parameter) *Texture {
	var (
		pix    []byte
		layout = RGBA8
		sr     = src.Bounds()
		dr     = image.Rectangle{Max: sr.Size()}
	)
	switch i := src.(type) {
	case *image.RGBA:
		if i.Stride == 4*dr.Dx() && i.Rect == dr {
			pix = i.Pix
			break
		}
		pix = toRGBA(src, dr)
	case *image.Gray:
		if i.Stride == dr.Dx() && i.Rect == dr {
			pix = i.Pix
		} else {
			dst := image.NewGray(dr)
			draw.Draw(dst, dr, src, sr.Min, draw.Src)
			pix = dst.Pix
		}
		layout = R8
	default:
		pix = toRGBA(src, dr)
	}
	return newTexture(drv, driver.TEXTURE_2D, dr.Dx(), dr.Dy(), 1, layout, pix, params...)
}

func toRGBA(src image.Image, dr image.Rectangle) []byte {
	dst := image.NewRGBA(dr)
	draw.Draw(dst, dr, src, src.Bounds().Min, draw.Src)
	return dst.Pix
}

func newTexture(drv driver.Driver, target driver.Enum, width, height, depth int, layout Layout, pix []byte, params ...Parameter) *Texture {
	t := &Texture{
		drv:    drv,
		id:     drv.CreateTexture(),
		target: target,
		layout: layout,
		width:  width,
		height: height,
		depth:  depth,
		refs:   1,
	}
	drv.BindTexture(target, t.id)
	t.setParams(params...)

	ifmt := layout.InternalFormat()
	if ifmt == 0 {
		ifmt = layout.Format
	}
	switch target {
	case driver.TEXTURE_2D:
		drv.TexImage2D(target, 0, ifmt, width, height, layout.Format, layout.Type, pix)
	case driver.TEXTURE_CUBE_MAP:
		for face := 0; face < 6; face++ {
			drv.TexImage2D(driver.TEXTURE_CUBE_MAP_POSITIVE_X+driver.Enum(face), 0, ifmt, width, height, layout.Format, layout.Type, nil)
		}
	default:
		drv.TexImage3D(target, 0, ifmt, width, height, depth, layout.Format, layout.Type, pix)
	}
	if t.dirty && pix != nil {
		drv.GenerateMipmap(target)
		t.dirty = false
	}
	return t
}

// Parameters sets the given texture parameters.
//
func (t *Texture) Parameters(params ...Parameter) {
	if len(params) == 0 {
		return
	}
	t.drv.BindTexture(t.target, t.id)
	t.setParams(params...)
}

func (t *Texture) setParams(params ...Parameter) {
	var tp tp
	for _, p := range params {
		p.set(&tp)
	}
	if tp.wrapS != 0 {
		t.drv.TexParameteri(t.target, driver.TEXTURE_WRAP_S, int32(tp.wrapS))
	}
	if tp.wrapT != 0 {
		t.drv.TexParameteri(t.target, driver.TEXTURE_WRAP_T, int32(tp.wrapT))
	}
	if tp.wrapR != 0 {
		t.drv.TexParameteri(t.target, driver.TEXTURE_WRAP_R, int32(tp.wrapR))
	}
	if tp.minFilter != 0 {
		t.drv.TexParameteri(t.target, driver.TEXTURE_MIN_FILTER, int32(tp.minFilter))
	}
	if tp.magFilter != 0 {
		t.drv.TexParameteri(t.target, driver.TEXTURE_MAG_FILTER, int32(tp.magFilter))
	}
	if tp.border != nil {
		c := color.RGBAModel.Convert(tp.border).(color.RGBA)
		bc := []float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255}
		t.drv.TexParameterfv(t.target, driver.TEXTURE_BORDER_COLOR, bc)
	}
	switch tp.minFilter {
	case NearestMipmapNearest, LinearMipmapLinear, LinearMipmapNearest, NearestMipmapLinear:
		t.mipmap = true
		t.dirty = true
	case Nearest, Linear:
		t.mipmap = false
		t.dirty = false
	}
}

// Bind binds the texture and regenerates mipmaps if needed.
//
func (t *Texture) Bind() {
	t.drv.BindTexture(t.target, t.id)
	if t.dirty {
		t.drv.GenerateMipmap(t.target)
		t.dirty = false
	}
}

// Invalidate marks the mipmaps of a mipmapped texture as stale, for instance
// after a compute shader wrote to level 0. They are regenerated by the next
// call to Bind.
//
func (t *Texture) Invalidate() {
	if t.mipmap {
		t.dirty = true
	}
}

// Size returns the size of the texture. For 2D textures, Z is 1; for arrays,
// the number of layers; for cube maps, 6.
//
func (t *Texture) Size() (x, y, z int) {
	return t.width, t.height, t.depth
}

// NativeID returns the native identifier of the texture.
//
func (t *Texture) NativeID() driver.Texture {
	return t.id
}

// Target returns the texture target, like driver.TEXTURE_2D.
//
func (t *Texture) Target() driver.Enum {
	return t.target
}

// Layout returns the pixel layout of the texture.
//
func (t *Texture) Layout() Layout {
	return t.layout
}

// Retain increments the reference count.
//
func (t *Texture) Retain() {
	atomic.AddInt32(&t.refs, 1)
}

// Release decrements the reference count and deletes the native texture when
// it reaches zero.
//
func (t *Texture) Release() {
	n := atomic.AddInt32(&t.refs, -1)
	switch {
	case n == 0:
		t.drv.DeleteTexture(t.id)
		t.id = 0
	case n < 0:
		panic("texture: Release called on a deleted texture")
	}
}

// RefCount returns the current reference count.
//
func (t *Texture) RefCount() int {
	return int(atomic.LoadInt32(&t.refs))
}

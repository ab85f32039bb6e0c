package glprog

import (
	"github.com/db47h/glprog/driver"
	"github.com/db47h/glprog/texture"
	"github.com/pkg/errors"
)

// Texture is a reference counted texture that can be bound to an image unit.
// *texture.Texture implements Texture.
//
type Texture interface {
	NativeID() driver.Texture
	Target() driver.Enum
	Layout() texture.Layout
	Retain()
	Release()
}

// Access is the access mode of an image binding.
//
type Access driver.Enum

// Access values map directly to their OpenGL equivalents.
//
const (
	ReadOnly  Access = Access(driver.READ_ONLY)
	WriteOnly Access = Access(driver.WRITE_ONLY)
	ReadWrite Access = Access(driver.READ_WRITE)
)

func (a Access) valid() bool {
	return a == ReadOnly || a == WriteOnly || a == ReadWrite
}

// Layer values.
//
const (
	// AllLayers binds all layers of a 3D or array texture.
	AllLayers = -1
	// AllFaces binds all faces of a cube map.
	AllFaces = -1
)

// ImageBinding is the binding of a texture to the image uniform of a
// program.
//
type ImageBinding struct {
	Texture Texture
	Level   int
	Layered bool
	Layer   int
	Access  Access
	// Format overrides the format the texture is accessed with. Zero means
	// the internal format matching the texture layout.
	Format driver.Enum
}

// format returns the format passed to the driver.
//
func (b *ImageBinding) format() driver.Enum {
	if b.Format != 0 {
		return b.Format
	}
	if f := b.Texture.Layout().InternalFormat(); f != 0 {
		return f
	}
	return driver.R8
}

// ImageOption is implemented by functions setting optional image binding
// parameters.
//
type ImageOption interface {
	set(*ImageBinding)
}

type imageOptionFunc func(*ImageBinding)

func (f imageOptionFunc) set(b *ImageBinding) {
	f(b)
}

// ImageFormat overrides the format an image is accessed with, like
// driver.R32F.
//
func ImageFormat(format driver.Enum) ImageOption {
	return imageOptionFunc(func(b *ImageBinding) {
		b.Format = format
	})
}

// Level sets the mipmap level to bind.
//
func Level(level int) ImageOption {
	return imageOptionFunc(func(b *ImageBinding) {
		b.Level = level
	})
}

// BindImage binds a 2D texture to the named image uniform. The binding takes
// effect at the next Dispatch. Rebinding a name replaces the previous binding.
//
func (p *Program) BindImage(name string, t Texture, access Access, opts ...ImageOption) error {
	return p.bindImage(name, t, driver.TEXTURE_2D, false, 0, access, opts)
}

// BindImage3D binds one layer of a 3D texture, or all layers if layer is
// AllLayers, to the named image uniform.
//
func (p *Program) BindImage3D(name string, t Texture, layer int, access Access, opts ...ImageOption) error {
	return p.bindImage(name, t, driver.TEXTURE_3D, layer == AllLayers, layer, access, opts)
}

// BindImageArray binds one layer of an array texture, or all layers if layer
// is AllLayers, to the named image uniform.
//
func (p *Program) BindImageArray(name string, t Texture, layer int, access Access, opts ...ImageOption) error {
	return p.bindImage(name, t, driver.TEXTURE_2D_ARRAY, layer == AllLayers, layer, access, opts)
}

// BindImageCube binds one face of a cube map, or all faces if face is
// AllFaces, to the named image uniform.
//
func (p *Program) BindImageCube(name string, t Texture, face int, access Access, opts ...ImageOption) error {
	if face != AllFaces && (face < 0 || face > 5) {
		return argError("face", "invalid cube map face %d", face)
	}
	return p.bindImage(name, t, driver.TEXTURE_CUBE_MAP, face == AllFaces, face, access, opts)
}

func (p *Program) bindImage(name string, t Texture, target driver.Enum, layered bool, layer int, access Access, opts []ImageOption) error {
	if name == "" {
		return argError("name", "empty image uniform name")
	}
	if t == nil {
		return argError("texture", "nil texture for image %q", name)
	}
	if t.Target() != target {
		return argError("texture", "image %q: texture target 0x%X, expected 0x%X", name, uint32(t.Target()), uint32(target))
	}
	if !access.valid() {
		return argError("access", "invalid access mode 0x%X for image %q", uint32(access), name)
	}
	if layer < 0 && !layered {
		return argError("layer", "invalid layer %d for image %q", layer, name)
	}
	if !p.drv.Caps().Has(driver.CapImageLoadStore) {
		return errors.WithStack(&UnsupportedFeatureError{Feature: "image load/store"})
	}
	b := &ImageBinding{Texture: t, Layered: layered, Layer: layer, Access: access}
	if layered {
		b.Layer = 0
	}
	for _, o := range opts {
		o.set(b)
	}
	if b.Level < 0 {
		return argError("level", "negative level %d for image %q", b.Level, name)
	}
	t.Retain()
	if old := p.images[name]; old != nil {
		old.Texture.Release()
	}
	p.images[name] = b
	return nil
}

// Image returns the binding for the named image uniform.
//
func (p *Program) Image(name string) (ImageBinding, bool) {
	b := p.images[name]
	if b == nil {
		return ImageBinding{}, false
	}
	return *b, true
}

// Images returns the names of bound image uniforms, sorted. This is also the
// order in which image units are assigned.
//
func (p *Program) Images() []string {
	return sortedKeys(p.images)
}

// UnbindImage removes the binding of the named image uniform, if any.
//
func (p *Program) UnbindImage(name string) {
	if b := p.images[name]; b != nil {
		b.Texture.Release()
		delete(p.images, name)
	}
}

// ClearImages removes all image bindings.
//
func (p *Program) ClearImages() {
	for name, b := range p.images {
		b.Texture.Release()
		delete(p.images, name)
	}
}

// bindImages assigns image units in name order, pushes each unit to its
// uniform and binds the textures. The program must be current.
//
func (p *Program) bindImages() error {
	if len(p.images) == 0 {
		return nil
	}
	names := sortedKeys(p.images)
	if limit := p.drv.GetInteger(driver.MAX_IMAGE_UNITS); len(names) > limit {
		return argError("images", "%d image bindings exceed the %d image units of the driver", len(names), limit)
	}
	for unit, name := range names {
		b := p.images[name]
		if loc, err := p.uniformLocation(name); err != nil {
			return err
		} else if loc >= 0 {
			p.uniform.uniform1i(loc, int32(unit))
		}
		Logger().Debug("bind image", "program", displayName(p.name), "image", name, "unit", unit)
		p.drv.BindImageTexture(uint32(unit), b.Texture.NativeID(), b.Level, b.Layered, b.Layer, driver.Enum(b.Access), b.format())
	}
	return nil
}

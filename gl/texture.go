package gl

import (
	"github.com/db47h/glprog/driver"
	gogl "github.com/go-gl/gl/v4.6-compatibility/gl"
)

func (d *Driver) CreateTexture() driver.Texture {
	var t uint32
	gogl.GenTextures(1, &t)
	return driver.Texture(t)
}

func (d *Driver) DeleteTexture(t driver.Texture) {
	id := uint32(t)
	gogl.DeleteTextures(1, &id)
}

func (d *Driver) BindTexture(target driver.Enum, t driver.Texture) {
	gogl.BindTexture(uint32(target), uint32(t))
}

func (d *Driver) TexParameteri(target, pname driver.Enum, param int32) {
	gogl.TexParameteri(uint32(target), uint32(pname), param)
}

func (d *Driver) TexParameterfv(target, pname driver.Enum, params []float32) {
	gogl.TexParameterfv(uint32(target), uint32(pname), &params[0])
}

func (d *Driver) TexImage2D(target driver.Enum, level int, internalFormat driver.Enum, width, height int, format, typ driver.Enum, pix []byte) {
	gogl.PixelStorei(uint32(driver.UNPACK_ALIGNMENT), 1)
	gogl.TexImage2D(uint32(target), int32(level), int32(internalFormat), int32(width), int32(height), 0, uint32(format), uint32(typ), pixPtr(pix))
}

func (d *Driver) TexImage3D(target driver.Enum, level int, internalFormat driver.Enum, width, height, depth int, format, typ driver.Enum, pix []byte) {
	gogl.PixelStorei(uint32(driver.UNPACK_ALIGNMENT), 1)
	gogl.TexImage3D(uint32(target), int32(level), int32(internalFormat), int32(width), int32(height), int32(depth), 0, uint32(format), uint32(typ), pixPtr(pix))
}

func (d *Driver) GenerateMipmap(target driver.Enum) {
	gogl.GenerateMipmap(uint32(target))
}

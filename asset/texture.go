package asset

import (
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/db47h/glprog/driver"
	"github.com/db47h/glprog/texture"
	"github.com/spf13/afero"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	"golang.org/x/xerrors"
)

type texImage struct {
	img image.Image
}

type tex struct {
	*texture.Texture
}

func (t tex) Close() error {
	t.Release()
	return nil
}

func loadImage(fs afero.Fs, name string) (interface{}, error) {
	r, err := fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return &texImage{src}, nil
}

// Image returns the decoded image of a texture asset. It fails if the asset
// has already been uploaded by Texture.
//
func (m *Manager) Image(name string) (image.Image, error) {
	m.m.Lock()
	defer m.m.Unlock()
	a, err := m.get(Texture(name))
	if err != nil {
		return nil, err
	}
	if t, ok := a.(*texImage); ok {
		return t.img, nil
	}
	return nil, xerrors.Errorf("asset %s has no image data", name)
}

// Texture returns the named texture asset. The first call uploads the decoded
// image; later calls return the same texture after applying params.
//
// The manager owns a reference to the returned texture, which is released by
// Discard or Close. Callers that keep the texture longer must Retain it.
//
func (m *Manager) Texture(drv driver.Driver, name string, params ...texture.Parameter) (*texture.Texture, error) {
	m.m.Lock()
	defer m.m.Unlock()
	a, err := m.get(Texture(name))
	if err != nil {
		return nil, err
	}
	switch t := a.(type) {
	case tex:
		t.Parameters(params...)
		return t.Texture, nil
	case *texImage:
		tx := texture.FromImage(drv, t.img, params...)
		m.assets[Texture(name)] = tex{tx}
		return tx, nil
	}
	return nil, xerrors.Errorf("asset %s is not a texture", name)
}

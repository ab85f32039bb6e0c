package asset

import (
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

type file []byte

func loadFile(fs afero.Fs, name string) (interface{}, error) {
	data, err := afero.ReadFile(fs, name)
	if err != nil {
		return nil, err
	}
	return file(data), nil
}

// File returns the content of the named raw file asset.
//
func (m *Manager) File(name string) ([]byte, error) {
	m.m.Lock()
	defer m.m.Unlock()
	a, err := m.get(File(name))
	if err != nil {
		return nil, err
	}
	if data, ok := a.(file); ok {
		return data, nil
	}
	return nil, xerrors.Errorf("asset %s is not a raw file", name)
}

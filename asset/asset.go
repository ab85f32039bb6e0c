// Package asset manages asynchronous loading and caching of shader sources,
// textures and raw files from an afero file system.
//
package asset

import (
	"path"
	"strings"

	"github.com/spf13/afero"
)

// Type designates the type of an asset.
//
type Type int

const (
	TypeShader Type = iota
	TypeTexture
	TypeFile

	typeLast
)

// Asset uniquely describes an asset.
//
type Asset struct {
	Type
	Name string
}

func (a Asset) String() string {
	switch a.Type {
	case TypeShader:
		return "shader asset " + a.Name
	case TypeTexture:
		return "texture asset " + a.Name
	case TypeFile:
		return "file asset " + a.Name
	}
	return "unknown asset " + a.Name
}

func Shader(name string) Asset  { return Asset{TypeShader, name} }
func Texture(name string) Asset { return Asset{TypeTexture, name} }
func File(name string) Asset    { return Asset{TypeFile, name} }

// Result wraps the result from preloading an asset.
//
type Result struct {
	Asset
	Err error
}

type config struct {
	shaderPath  string
	texturePath string
	filePath    string
}

func (cfg *config) assetPath(a Asset) string {
	switch a.Type {
	case TypeShader:
		return path.Join(cfg.shaderPath, a.Name)
	case TypeTexture:
		return path.Join(cfg.texturePath, a.Name)
	case TypeFile:
		return path.Join(cfg.filePath, a.Name)
	}
	return a.Name
}

// Option is implemented by option functions passed as arguments to NewManager.
//
type Option interface {
	set(*config)
}

type cfn func(*config)

func (f cfn) set(cfg *config) {
	f(cfg)
}

// ShaderPath returns an Option that sets the default path for shader sources.
// It is also the fallback search path for #include directives.
//
func ShaderPath(name string) Option {
	return cfn(func(cfg *config) {
		cfg.shaderPath = name
	})
}

// TexturePath returns an Option that sets the default texture path.
//
func TexturePath(name string) Option {
	return cfn(func(cfg *config) {
		cfg.texturePath = name
	})
}

// FilePath returns an Option that sets the default path for raw files.
//
func FilePath(name string) Option {
	return cfn(func(cfg *config) {
		cfg.filePath = name
	})
}

// Dir returns a read-only file system rooted at the given OS directory.
//
func Dir(root string) afero.Fs {
	return afero.NewReadOnlyFs(afero.NewBasePathFs(afero.NewOsFs(), root))
}

type closer interface {
	Close() error
}

type errorList []error

func (e errorList) Error() string {
	var sb strings.Builder
	for i, err := range e {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(err.Error())
	}
	return sb.String()
}

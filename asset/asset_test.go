package asset_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/db47h/glprog"
	"github.com/db47h/glprog/asset"
	"github.com/db47h/glprog/driver"
	"github.com/db47h/glprog/internal/fakegl"
	"github.com/db47h/glprog/texture"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"
)

func memFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, data := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(data), 0644))
	}
	return fs
}

func TestStageOf(t *testing.T) {
	for name, want := range map[string]glprog.Stage{
		"a.vert":           glprog.Vertex,
		"dir/a.frag":       glprog.Fragment,
		"blur.comp.glsl":   glprog.Compute,
		"x.geom":           glprog.Geometry,
		"x.tesc":           glprog.TessControl,
		"x.tese":           glprog.TessEvaluation,
		"shaders/post.fs":  glprog.Fragment,
		"shaders/post.vs":  glprog.Vertex,
		"shaders/post.cs":  glprog.Compute,
		"shaders/post.gs":  glprog.Geometry,
		"shaders/p.v.frag": glprog.Fragment,
	} {
		s, err := asset.StageOf(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, s, name)
	}
	for _, name := range []string{"noext", "lib.glsl", "a.txt"} {
		_, err := asset.StageOf(name)
		assert.Error(t, err, name)
	}
}

func TestShaderInclude(t *testing.T) {
	fs := memFs(t, map[string]string{
		"shaders/main.frag":        "#version 330 core\n#include \"common/util.glsl\"\nvoid main() {}\n",
		"shaders/common/util.glsl": "  #include <consts.glsl>\nfloat luma(vec3 c) { return dot(c, W); }\n",
		"shaders/common/consts.glsl": "const vec3 W = vec3(0.2126, 0.7152, 0.0722);\n",
		"shaders/lib/pi.glsl":      "const float PI = 3.14159;\n",
		"shaders/lib/user.comp":    "#include \"lib/pi.glsl\"\nvoid main() {}\n",
	})
	m := asset.NewManager(fs, asset.ShaderPath("shaders"))

	src, err := m.ShaderSource("main.frag")
	require.NoError(t, err)
	assert.Equal(t, "#version 330 core\n"+
		"// #include \"common/util.glsl\"\n"+
		"// #include <consts.glsl>\n"+
		"const vec3 W = vec3(0.2126, 0.7152, 0.0722);\n"+
		"float luma(vec3 c) { return dot(c, W); }\n"+
		"void main() {}\n", src)

	files, err := m.ShaderFiles("main.frag")
	require.NoError(t, err)
	assert.Equal(t, []string{"shaders/main.frag", "shaders/common/util.glsl", "shaders/common/consts.glsl"}, files)

	// falls back to the shader path
	src, err = m.ShaderSource("lib/user.comp")
	require.NoError(t, err)
	assert.Contains(t, src, "const float PI")

	drv := fakegl.New(driver.AllCaps)
	s, err := m.Shader(drv, "main.frag")
	require.NoError(t, err)
	assert.Equal(t, glprog.Fragment, s.Stage())
	assert.Equal(t, "main.frag", s.Name())
	assert.Contains(t, s.Source(), "float luma")
	require.NoError(t, s.Compile(nil))
}

func TestShaderIncludeErrors(t *testing.T) {
	fs := memFs(t, map[string]string{
		"a.vert":    "#include \"b.glsl\"\n",
		"b.glsl":    "#include \"a.vert\"\n",
		"c.frag":    "#include \"missing.glsl\"\n",
		"d.frag":    "#include missing.glsl\n",
		"e.frag":    "#include \"e.frag\"\n",
		"lib.glsl":  "float f();\n",
	})
	m := asset.NewManager(fs)

	_, err := m.ShaderSource("a.vert")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "include cycle: a.vert -> b.glsl -> a.vert")

	_, err = m.ShaderSource("c.frag")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `c.frag:1: include "missing.glsl" not found`)

	_, err = m.ShaderSource("d.frag")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "d.frag:1: malformed #include")

	_, err = m.ShaderSource("e.frag")
	assert.Error(t, err)

	_, err = m.ShaderSource("lib.glsl")
	assert.Error(t, err)

	_, err = m.ShaderSource("nope.vert")
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, os.ErrNotExist))
	assert.False(t, m.Loaded(asset.Shader("nope.vert")))
}

func pngData(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.NRGBA{255, 0, 0, 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.String()
}

func TestTexture(t *testing.T) {
	fs := memFs(t, map[string]string{"textures/box.png": pngData(t, 4, 2)})
	m := asset.NewManager(fs, asset.TexturePath("textures"))
	drv := fakegl.New(driver.AllCaps)

	img, err := m.Image("box.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 2), img.Bounds())

	tx, err := m.Texture(drv, "box.png", texture.Filter(texture.Nearest, texture.Nearest))
	require.NoError(t, err)
	assert.Equal(t, texture.RGBA8, tx.Layout())
	st := drv.Texture(tx.NativeID())
	assert.Equal(t, 4, st.Width)
	assert.Equal(t, int32(driver.NEAREST), st.Params[driver.TEXTURE_MIN_FILTER])

	tx2, err := m.Texture(drv, "box.png", texture.Filter(texture.Linear, texture.Linear))
	require.NoError(t, err)
	assert.Same(t, tx, tx2)
	assert.Equal(t, int32(driver.LINEAR), st.Params[driver.TEXTURE_MIN_FILTER])
	assert.Equal(t, 1, drv.Count("CreateTexture"))

	_, err = m.Image("box.png")
	assert.Error(t, err, "image data dropped after upload")

	require.NoError(t, m.Discard(asset.Texture("box.png")))
	assert.True(t, drv.Texture(tx.NativeID()).Deleted)
	assert.Error(t, m.Discard(asset.Texture("box.png")))
}

func TestTypeMismatch(t *testing.T) {
	fs := memFs(t, map[string]string{"a.vert": "void main() {}\n"})
	m := asset.NewManager(fs)
	_, err := m.ShaderSource("a.vert")
	require.NoError(t, err)
	data, err := m.File("a.vert")
	require.NoError(t, err)
	assert.Equal(t, "void main() {}\n", string(data))
	_, err = m.Texture(fakegl.New(driver.AllCaps), "a.vert")
	assert.Error(t, err)
}

func TestPreload(t *testing.T) {
	fs := memFs(t, map[string]string{
		"s/a.vert":  "void main() {}\n",
		"s/b.frag":  "void main() {}\n",
		"f/data.txt": "hello",
		"t/tile.png": pngData(t, 2, 2),
	})
	m := asset.NewManager(fs, asset.ShaderPath("s"), asset.FilePath("f"), asset.TexturePath("t"))

	rc, n := m.Preload([]asset.Asset{
		asset.Shader("a.vert"),
		asset.Shader("b.frag"),
		asset.File("data.txt"),
		asset.Texture("tile.png"),
		asset.File("missing"),
		asset.Shader("a.vert"),
	}, false)
	assert.Equal(t, 5, n)
	err := asset.Wait(rc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "preload file asset missing")

	for _, a := range []asset.Asset{asset.Shader("a.vert"), asset.Shader("b.frag"), asset.File("data.txt"), asset.Texture("tile.png")} {
		assert.True(t, m.Loaded(a), a.String())
	}
	assert.False(t, m.Loaded(asset.File("missing")))

	// already loaded assets are skipped
	rc, n = m.Preload([]asset.Asset{asset.Shader("a.vert")}, false)
	assert.Equal(t, 0, n)
	require.NoError(t, asset.Wait(rc))

	// flush drops everything not listed
	drv := fakegl.New(driver.AllCaps)
	tx, err := m.Texture(drv, "tile.png")
	require.NoError(t, err)
	rc, n = m.Preload([]asset.Asset{asset.File("data.txt")}, true)
	assert.Equal(t, 0, n)
	require.NoError(t, asset.Wait(rc))
	assert.True(t, m.Loaded(asset.File("data.txt")))
	assert.False(t, m.Loaded(asset.Shader("a.vert")))
	assert.True(t, drv.Texture(tx.NativeID()).Deleted)

	assert.Panics(t, func() { m.Preload([]asset.Asset{{Type: 42, Name: "x"}}, false) })
}

func TestClose(t *testing.T) {
	fs := memFs(t, map[string]string{"t.png": pngData(t, 1, 1)})
	m := asset.NewManager(fs)
	drv := fakegl.New(driver.AllCaps)
	tx, err := m.Texture(drv, "t.png")
	require.NoError(t, err)
	require.NoError(t, m.Close())
	assert.True(t, drv.Texture(tx.NativeID()).Deleted)
	assert.False(t, m.Loaded(asset.Texture("t.png")))
}

func TestOverlay(t *testing.T) {
	writeDir := func(files map[string]string) string {
		dir := t.TempDir()
		for name, data := range files {
			name = filepath.Join(dir, filepath.FromSlash(name))
			require.NoError(t, os.MkdirAll(filepath.Dir(name), 0755))
			require.NoError(t, os.WriteFile(name, []byte(data), 0644))
		}
		return dir
	}
	base := writeDir(map[string]string{
		"a.vert":          "base a",
		"b.vert":          "base b",
		"lib/common.glsl": "uniform float time;\n",
		"main.vert":       "#include \"lib/common.glsl\"\n",
	})
	layer := writeDir(map[string]string{"a.vert": "layer a", "lib/common.glsl": "uniform float t2;\n"})

	fs, err := asset.Overlay(base, layer)
	require.NoError(t, err)
	m := asset.NewManager(fs)
	data, err := m.File("a.vert")
	require.NoError(t, err)
	assert.Equal(t, "layer a", string(data))
	data, err = m.File("b.vert")
	require.NoError(t, err)
	assert.Equal(t, "base b", string(data))
	src, err := m.ShaderSource("main.vert")
	require.NoError(t, err)
	assert.Contains(t, src, "uniform float t2;")
	assert.NotContains(t, src, "uniform float time;")

	_, err = m.File("missing.vert")
	assert.Error(t, err)
	assert.Error(t, afero.WriteFile(fs, "b.vert", []byte("edited"), 0644), "read-only")
	data, err = os.ReadFile(filepath.Join(base, "b.vert"))
	require.NoError(t, err)
	assert.Equal(t, "base b", string(data))

	_, err = asset.Overlay(base, filepath.Join(base, "nope"))
	assert.Error(t, err)
	_, err = asset.Overlay()
	assert.Error(t, err)
}

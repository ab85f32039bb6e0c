package asset

import (
	"path"
	"strings"

	"github.com/db47h/glprog"
	"github.com/db47h/glprog/driver"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

const maxIncludeDepth = 32

type shaderSource struct {
	stage glprog.Stage
	src   string
	files []string
}

// StageOf returns the shader stage implied by a file name extension: .vert,
// .frag, .comp and so on, optionally followed by .glsl.
//
func StageOf(name string) (glprog.Stage, error) {
	ext := path.Ext(name)
	if ext == ".glsl" {
		ext = path.Ext(strings.TrimSuffix(name, ext))
	}
	if ext == "" {
		return 0, xerrors.Errorf("%s: no shader stage extension", name)
	}
	return glprog.ParseStage(ext[1:])
}

func (m *Manager) loadShader(name string) (interface{}, error) {
	stage, err := StageOf(name)
	if err != nil {
		return nil, err
	}
	s := &shaderSource{stage: stage}
	s.src, err = m.expand(name, nil, &s.files)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// expand reads the named file and replaces #include "file" lines with the
// content of the included file. Include paths are tried relative to the
// including file, then relative to the shader path.
//
func (m *Manager) expand(name string, stack []string, files *[]string) (string, error) {
	for _, s := range stack {
		if s == name {
			return "", xerrors.Errorf("include cycle: %s -> %s", strings.Join(stack, " -> "), name)
		}
	}
	if len(stack) >= maxIncludeDepth {
		return "", xerrors.Errorf("%s: includes nested too deeply", name)
	}
	data, err := afero.ReadFile(m.fs, name)
	if err != nil {
		return "", err
	}
	*files = append(*files, name)
	stack = append(stack, name)

	lines := strings.Split(string(data), "\n")
	for i, ln := range lines {
		t := strings.TrimSpace(ln)
		if !strings.HasPrefix(t, "#include") {
			continue
		}
		inc, ok := includeName(t[len("#include"):])
		if !ok {
			return "", xerrors.Errorf("%s:%d: malformed #include", name, i+1)
		}
		p, err := m.resolveInclude(name, inc)
		if err != nil {
			return "", xerrors.Errorf("%s:%d: %w", name, i+1, err)
		}
		src, err := m.expand(p, stack, files)
		if err != nil {
			return "", err
		}
		lines[i] = "// " + t + "\n" + strings.TrimRight(src, "\n")
	}
	return strings.Join(lines, "\n"), nil
}

func includeName(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 3 {
		return "", false
	}
	switch {
	case s[0] == '"' && s[len(s)-1] == '"':
	case s[0] == '<' && s[len(s)-1] == '>':
	default:
		return "", false
	}
	return s[1 : len(s)-1], true
}

func (m *Manager) resolveInclude(from, inc string) (string, error) {
	for _, p := range []string{path.Join(path.Dir(from), inc), path.Join(m.cfg.shaderPath, inc)} {
		if ok, _ := afero.Exists(m.fs, p); ok {
			return p, nil
		}
	}
	return "", xerrors.Errorf("include %q not found", inc)
}

func (m *Manager) shader(name string) (*shaderSource, error) {
	m.m.Lock()
	defer m.m.Unlock()
	a, err := m.get(Shader(name))
	if err != nil {
		return nil, err
	}
	if s, ok := a.(*shaderSource); ok {
		return s, nil
	}
	return nil, xerrors.Errorf("asset %s is not a shader", name)
}

// ShaderSource returns the source of the named shader with all includes
// expanded.
//
func (m *Manager) ShaderSource(name string) (string, error) {
	s, err := m.shader(name)
	if err != nil {
		return "", err
	}
	return s.src, nil
}

// ShaderFiles returns the paths, in the manager's file system, of all files
// read to build the named shader: the shader itself first, then its includes.
//
func (m *Manager) ShaderFiles(name string) ([]string, error) {
	s, err := m.shader(name)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), s.files...), nil
}

// Shader creates a new, uncompiled, shader from the named shader asset. The
// stage is derived from the file extension. The caller owns the returned
// shader.
//
func (m *Manager) Shader(drv driver.Driver, name string) (*glprog.Shader, error) {
	s, err := m.shader(name)
	if err != nil {
		return nil, err
	}
	return glprog.NewShader(drv, s.stage, name, s.src)
}

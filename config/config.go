// Package config reads TOML program descriptions.
//
// A configuration file lists programs with their shader files and the
// settings applied before linking:
//
//	shader_path = "shaders"
//	cache_dir = ".cache"
//	glsl_version = "410 core"
//
//	[[program]]
//	name = "particles"
//	shaders = ["particles.vert", "particles.geom"]
//	varyings = ["outPos", "outVel"]
//	feedback = "separate"
//	attributes = { pos = 0, vel = 1 }
//	semantics = { pos = "position" }
//
// Relative paths are relative to the directory of the configuration file.
//
package config

import (
	"bytes"
	"path"
	"strings"

	"github.com/db47h/glprog"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Config is a set of program descriptions.
//
type Config struct {
	// Dir is the directory of the file the configuration was loaded from.
	Dir string `toml:"-"`

	ShaderPath  string    `toml:"shader_path"`
	TexturePath string    `toml:"texture_path"`
	CacheDir    string    `toml:"cache_dir"`
	Version     string    `toml:"glsl_version"`
	Programs    []Program `toml:"program"`
}

// Program describes a single program.
//
type Program struct {
	Name       string            `toml:"name"`
	Shaders    []string          `toml:"shaders"`
	Version    string            `toml:"version"`
	Feedback   string            `toml:"feedback"`
	Varyings   []string          `toml:"varyings"`
	Attributes map[string]int    `toml:"attributes"`
	Outputs    map[string]int    `toml:"outputs"`
	Semantics  map[string]string `toml:"semantics"`
	// NoCache disables the binary cache for this program.
	NoCache bool `toml:"no_cache"`
}

// Load reads and validates the named configuration file from fs.
//
func Load(fs afero.Fs, name string) (*Config, error) {
	data, err := afero.ReadFile(fs, name)
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "load config %s", name)
	}
	cfg.Dir = path.Dir(name)
	return cfg, nil
}

// Parse decodes and validates a configuration. Unknown keys are errors.
//
func Parse(data []byte) (*Config, error) {
	cfg := new(Config)
	d := toml.NewDecoder(bytes.NewReader(data))
	d.DisallowUnknownFields()
	if err := d.Decode(cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, errors.Errorf("%d:%d: %s", row, col, derr.Error())
		}
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			return nil, errors.Errorf("unknown keys:\n%s", strings.TrimRight(serr.String(), "\n"))
		}
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks program names and settings.
//
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Programs))
	for i := range c.Programs {
		p := &c.Programs[i]
		if p.Name == "" {
			return errors.Errorf("program #%d: missing name", i+1)
		}
		if seen[p.Name] {
			return errors.Errorf("program %s: duplicate name", p.Name)
		}
		seen[p.Name] = true
		if err := p.validate(); err != nil {
			return errors.Wrapf(err, "program %s", p.Name)
		}
	}
	return nil
}

func (p *Program) validate() error {
	if len(p.Shaders) == 0 {
		return errors.New("no shaders")
	}
	if _, err := p.feedbackMode(); err != nil {
		return err
	}
	for name, s := range p.Semantics {
		if _, err := glprog.ParseSemantic(s); err != nil {
			return errors.Wrapf(err, "attribute %s", name)
		}
	}
	return nil
}

func (p *Program) feedbackMode() (glprog.FeedbackMode, error) {
	switch strings.ToLower(p.Feedback) {
	case "", "interleaved":
		return glprog.InterleavedAttribs, nil
	case "separate":
		return glprog.SeparateAttribs, nil
	}
	return 0, errors.Errorf("invalid feedback mode %q", p.Feedback)
}

// Program returns the named program description.
//
func (c *Config) Program(name string) (*Program, bool) {
	for i := range c.Programs {
		if c.Programs[i].Name == name {
			return &c.Programs[i], true
		}
	}
	return nil, false
}

// Path returns p joined to the configuration directory, unless p is absolute.
//
func (c *Config) Path(p string) string {
	if p == "" || path.IsAbs(p) {
		return p
	}
	return path.Join(c.Dir, p)
}

// Params returns the compilation parameters of p. The program's version
// overrides defaultVersion.
//
func (p *Program) Params(defaultVersion string) *glprog.Params {
	v := p.Version
	if v == "" {
		v = defaultVersion
	}
	m, _ := p.feedbackMode()
	return glprog.NewParams(glprog.GLSLVersion(v), glprog.Feedback(m))
}

// Apply sets the attribute and fragment locations, semantics and feedback
// varyings of p on prog.
//
func (p *Program) Apply(prog *glprog.Program) error {
	for name, loc := range p.Attributes {
		if err := prog.SetAttribLocation(name, loc); err != nil {
			return err
		}
	}
	for name, loc := range p.Outputs {
		if err := prog.SetFragLocation(name, loc); err != nil {
			return err
		}
	}
	for name, sem := range p.Semantics {
		s, err := glprog.ParseSemantic(sem)
		if err != nil {
			return err
		}
		if err := prog.SetAttribSemantic(name, s); err != nil {
			return err
		}
	}
	for _, v := range p.Varyings {
		if err := prog.AddFeedbackVarying(v); err != nil {
			return err
		}
	}
	return nil
}

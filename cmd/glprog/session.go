package main

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/db47h/glprog"
	"github.com/db47h/glprog/app"
	"github.com/db47h/glprog/asset"
	"github.com/db47h/glprog/cache"
	"github.com/db47h/glprog/config"
	"github.com/db47h/glprog/driver"
	"github.com/faiface/mainthread"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"
)

// A session holds everything needed to build programs. Except for
// newSession, its methods must be called from the main thread.
//
type session struct {
	cfg       *config.Config
	shaderDir string
	override  string
	ctx       *app.Context
	drv       driver.Driver
	assets    *asset.Manager
	cache     *cache.Cache
	out       io.Writer
}

func onMain(f func() error) error {
	var err error
	mainthread.Call(func() { err = f() })
	return err
}

func contextOptions(c *cli.Context) ([]app.Option, error) {
	opts := []app.Option{app.Title("glprog")}
	if v := c.String(glVersionFlag.Name); v != "" {
		major, minor, err := parseVersion(v)
		if err != nil {
			return nil, err
		}
		opts = append(opts, app.Version(major, minor))
	}
	if c.Bool(compatFlag.Name) {
		opts = append(opts, app.Compatibility())
	}
	if c.Bool(debugFlag.Name) {
		opts = append(opts, app.Debug())
	}
	return opts, nil
}

func parseVersion(v string) (major, minor int, err error) {
	ms, ns, _ := strings.Cut(v, ".")
	if major, err = strconv.Atoi(ms); err == nil && ns != "" {
		minor, err = strconv.Atoi(ns)
	}
	if err != nil || major < 1 {
		return 0, 0, errors.Errorf("invalid OpenGL version %q", v)
	}
	return major, minor, nil
}

func newSession(c *cli.Context) (*session, error) {
	cfgName := c.String(configFlag.Name)
	cfg, err := config.Load(afero.NewOsFs(), filepath.ToSlash(cfgName))
	if err != nil {
		return nil, err
	}
	opts, err := contextOptions(c)
	if err != nil {
		return nil, err
	}

	s := &session{
		cfg:       cfg,
		shaderDir: filepath.FromSlash(cfg.Path(cfg.ShaderPath)),
		override:  c.String(overrideFlag.Name),
		out:       c.App.Writer,
	}
	if s.shaderDir == "" {
		s.shaderDir = "."
	}
	fs := asset.Dir(s.shaderDir)
	if s.override != "" {
		if fs, err = asset.Overlay(s.shaderDir, s.override); err != nil {
			return nil, err
		}
	}
	s.assets = asset.NewManager(fs)

	err = onMain(func() error {
		s.ctx, err = app.New(opts...)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.drv = s.ctx.Driver()
	glprog.Logger().Info("context created", "context", s.ctx.String())

	if dir := cfg.Path(cfg.CacheDir); dir != "" && !c.Bool(noCacheFlag.Name) {
		cfs := afero.NewBasePathFs(afero.NewOsFs(), filepath.FromSlash(dir))
		if err := cfs.MkdirAll("/", 0755); err != nil {
			s.close()
			return nil, errors.Wrap(err, "create cache directory")
		}
		s.cache = cache.New(cfs, s.drv.Renderer())
	}
	return s, nil
}

func (s *session) close() {
	s.assets.Close()
	if s.ctx != nil {
		mainthread.Call(s.ctx.Destroy)
	}
}

// programs returns the program descriptions named in args, or all of them.
//
func (s *session) programs(args []string) ([]*config.Program, error) {
	if len(args) == 0 {
		ps := make([]*config.Program, len(s.cfg.Programs))
		for i := range s.cfg.Programs {
			ps[i] = &s.cfg.Programs[i]
		}
		return ps, nil
	}
	ps := make([]*config.Program, 0, len(args))
	for _, name := range args {
		p, ok := s.cfg.Program(name)
		if !ok {
			return nil, errors.Errorf("no program named %q in %s", name, s.cfg.Dir)
		}
		ps = append(ps, p)
	}
	return ps, nil
}

// preload loads all shader sources used by ps in parallel.
//
func (s *session) preload(ps []*config.Program) error {
	var as []asset.Asset
	for _, p := range ps {
		for _, name := range p.Shaders {
			as = append(as, asset.Shader(name))
		}
	}
	rc, _ := s.assets.Preload(as, false)
	return asset.Wait(rc)
}

// build creates and links the program described by p. Shaders are deleted
// once linked. hit reports whether the program was loaded from the binary
// cache.
//
func (s *session) build(p *config.Program) (prog *glprog.Program, hit bool, err error) {
	prog, err = glprog.New(s.drv, p.Name, p.Params(s.cfg.Version))
	if err != nil {
		return nil, false, err
	}
	var shaders []*glprog.Shader
	defer func() {
		for _, sh := range shaders {
			sh.Delete()
		}
	}()
	for _, name := range p.Shaders {
		sh, err := s.assets.Shader(s.drv, name)
		if err != nil {
			prog.Delete()
			return nil, false, err
		}
		shaders = append(shaders, sh)
		if err = prog.Attach(sh); err != nil {
			prog.Delete()
			return nil, false, err
		}
	}
	if err = p.Apply(prog); err != nil {
		prog.Delete()
		return nil, false, err
	}

	if s.cache == nil || p.NoCache {
		return prog, false, prog.Link()
	}
	linked, hit, err := s.cache.Link(s.drv, prog)
	if linked != prog {
		prog.Delete()
	}
	return linked, hit, err
}

// shaderFiles returns the OS paths of all files the shaders of p are built
// from, in both the shader directory and the override directory.
//
func (s *session) shaderFiles(p *config.Program) ([]string, error) {
	var files []string
	for _, name := range p.Shaders {
		fs, err := s.assets.ShaderFiles(name)
		if err != nil {
			return nil, err
		}
		for _, f := range fs {
			files = append(files, filepath.Join(s.shaderDir, filepath.FromSlash(f)))
			if s.override != "" {
				files = append(files, filepath.Join(s.override, filepath.FromSlash(f)))
			}
		}
	}
	return files, nil
}

func exists(name string) bool {
	_, err := os.Stat(name)
	return err == nil
}

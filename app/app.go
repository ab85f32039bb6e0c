// Package app creates offscreen OpenGL contexts for command line tools.
//
// All functions and methods of this package, as well as all calls to the
// returned driver, must be made from the main OS thread.
//
package app

// Option is implemented by options passed to New.
//
type Option interface {
	set(*ctxCfg)
}

type ctxCfg struct {
	major, minor int
	compat       bool
	debug        bool
	hidden       bool
	w, h         int
	title        string
}

type ctxOption func(*ctxCfg)

func (f ctxOption) set(cfg *ctxCfg) {
	f(cfg)
}

// Version requests a specific context version. Without it, New tries the
// highest version first and falls back to older ones.
//
func Version(major, minor int) Option {
	return ctxOption(func(cfg *ctxCfg) {
		cfg.major, cfg.minor = major, minor
	})
}

// Compatibility requests a compatibility profile context. Older drivers only
// expose NV_transform_feedback in that profile.
//
func Compatibility() Option {
	return ctxOption(func(cfg *ctxCfg) {
		cfg.compat = true
	})
}

// Debug requests a debug context.
//
func Debug() Option {
	return ctxOption(func(cfg *ctxCfg) {
		cfg.debug = true
	})
}

func Title(title string) Option {
	return ctxOption(func(cfg *ctxCfg) {
		cfg.title = title
	})
}

func Size(w, h int) Option {
	return ctxOption(func(cfg *ctxCfg) {
		cfg.w, cfg.h = w, h
	})
}

// Visible shows the context window. Contexts are hidden by default.
//
func Visible(b bool) Option {
	return ctxOption(func(cfg *ctxCfg) {
		cfg.hidden = !b
	})
}

// fallbacks are the context versions tried, in order, when none is requested.
//
var fallbacks = [][2]int{{4, 6}, {4, 3}, {4, 1}, {3, 3}, {3, 0}, {2, 1}}

func newConfig(opts []Option) ctxCfg {
	cfg := ctxCfg{hidden: true, w: 64, h: 64, title: "glprog"}
	for _, o := range opts {
		o.set(&cfg)
	}
	return cfg
}

// versions returns the list of context versions to try.
//
func (cfg *ctxCfg) versions() [][2]int {
	if cfg.major > 0 {
		return [][2]int{{cfg.major, cfg.minor}}
	}
	return fallbacks
}

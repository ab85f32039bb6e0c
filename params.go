package glprog

import "github.com/db47h/glprog/driver"

// FeedbackMode selects how transform feedback varyings are written to buffers.
//
type FeedbackMode driver.Enum

// FeedbackMode values map directly to their OpenGL equivalents.
//
const (
	InterleavedAttribs FeedbackMode = FeedbackMode(driver.INTERLEAVED_ATTRIBS)
	SeparateAttribs    FeedbackMode = FeedbackMode(driver.SEPARATE_ATTRIBS)
)

func (m FeedbackMode) String() string {
	switch m {
	case InterleavedAttribs:
		return "interleaved"
	case SeparateAttribs:
		return "separate"
	}
	return "unknown"
}

// DefaultVersion is the GLSL version used when none is specified.
//
const DefaultVersion = "330 core"

// Params are the compilation parameters of a program. Params values are
// comparable: two programs compiled with equal Params compile their shaders
// identically.
//
type Params struct {
	// Version is the argument of the #version directive inserted in shader
	// sources that do not start with one. Empty means DefaultVersion.
	Version string
	// Feedback is the layout of transform feedback varyings. Zero means
	// InterleavedAttribs.
	Feedback FeedbackMode
}

// ParamOption is implemented by functions setting compilation parameters. See
// NewParams.
//
type ParamOption interface {
	set(*Params)
}

type paramFunc func(*Params)

func (f paramFunc) set(p *Params) {
	f(p)
}

// GLSLVersion sets the GLSL version of a program, as in "430 core" or "300 es".
//
func GLSLVersion(v string) ParamOption {
	return paramFunc(func(p *Params) {
		p.Version = v
	})
}

// Feedback sets the transform feedback buffer mode.
//
func Feedback(m FeedbackMode) ParamOption {
	return paramFunc(func(p *Params) {
		p.Feedback = m
	})
}

// NewParams returns default Params modified by the given options.
//
func NewParams(opts ...ParamOption) *Params {
	var p Params
	for _, o := range opts {
		o.set(&p)
	}
	p = p.normalize()
	return &p
}

func (p Params) normalize() Params {
	if p.Version == "" {
		p.Version = DefaultVersion
	}
	if p.Feedback == 0 {
		p.Feedback = InterleavedAttribs
	}
	return p
}

func paramsOrDefault(p *Params) Params {
	if p == nil {
		return Params{}.normalize()
	}
	return p.normalize()
}

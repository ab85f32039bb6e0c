package glprog

import (
	"sort"

	"github.com/db47h/glprog/driver"
	"github.com/pkg/errors"
)

// State is the link state of a Program.
//
type State int

// Link states.
//
const (
	Unlinked State = iota
	Linked
	LinkFailed
)

func (s State) String() string {
	switch s {
	case Unlinked:
		return "unlinked"
	case Linked:
		return "linked"
	case LinkFailed:
		return "link failed"
	}
	return "unknown"
}

// UniformBackend selects how uniform values are pushed to the driver.
//
type UniformBackend int

const (
	// BackendCompatible binds the program then sets the uniform.
	BackendCompatible UniformBackend = iota
	// BackendSeparate sets uniforms directly on the program object.
	BackendSeparate
)

func (b UniformBackend) String() string {
	if b == BackendSeparate {
		return "separate"
	}
	return "compatible"
}

// A Program is a shader program. A program is either linked from the sources
// of its attached shaders, or loaded from a binary obtained with Binary.
//
// Mutating a program by attaching a shader, changing its parameters or loading
// a new binary resets it to the Unlinked state. Introspection results
// (attributes, feedback varyings, uniforms) are kept until the next successful
// link.
//
// Programs are not safe for concurrent use and all methods must be called
// with the driver's context current.
//
type Program struct {
	drv     driver.Driver
	id      driver.Program
	name    string
	state   State
	params  Params
	shaders []*Shader

	binary       []byte
	binaryFormat driver.Enum
	fromBinary   bool

	attribLocs map[string]int
	semantics  map[string]Semantic
	fragLocs   map[string]int
	varyings   []string

	backend  UniformBackend
	uniform  uniformSetter
	attribs  map[string]Attribute
	feedback map[string]Varying
	uniforms map[string]Uniform
	blocks   []string
	storage  []string

	images map[string]*ImageBinding
}

// New creates a new empty program. A nil params uses the default
// parameters.
//
func New(drv driver.Driver, name string, params *Params) (*Program, error) {
	id := drv.CreateProgram()
	if !id.Valid() {
		return nil, errors.Errorf("create program %s: driver returned no name", displayName(name))
	}
	return &Program{
		drv:        drv,
		id:         id,
		name:       name,
		params:     paramsOrDefault(params),
		attribLocs: make(map[string]int),
		semantics:  make(map[string]Semantic),
		fragLocs:   make(map[string]int),
		images:     make(map[string]*ImageBinding),
	}, nil
}

// NewFromBinary creates a new program from a binary returned by
// Program.Binary. The binary is loaded by the first call to Link and
// discarded afterwards.
//
func NewFromBinary(drv driver.Driver, name string, binary []byte, format driver.Enum) (*Program, error) {
	if len(binary) == 0 {
		return nil, argError("binary", "empty program binary")
	}
	p, err := New(drv, name, nil)
	if err != nil {
		return nil, err
	}
	p.binary = binary
	p.binaryFormat = format
	p.fromBinary = true
	return p, nil
}

// Name returns the program name.
//
func (p *Program) Name() string { return p.name }

// NativeID returns the native program name.
//
func (p *Program) NativeID() driver.Program { return p.id }

// State returns the program's link state.
//
func (p *Program) State() State { return p.state }

// IsLinked returns true if the program is in the Linked state.
//
func (p *Program) IsLinked() bool { return p.state == Linked }

// Params returns the program's compilation parameters.
//
func (p *Program) Params() Params { return p.params }

// Backend returns the uniform backend selected by the last successful link.
//
func (p *Program) Backend() UniformBackend { return p.backend }

// Shaders returns the attached shaders.
//
func (p *Program) Shaders() []*Shader {
	return append([]*Shader(nil), p.shaders...)
}

// Attach attaches a shader to the program. Attaching a shader that is already
// attached is an error and leaves the program unchanged.
//
func (p *Program) Attach(s *Shader) error {
	if s == nil {
		return argError("shader", "nil shader")
	}
	if p.fromBinary {
		return argError("shader", "cannot attach shader %s to program %s created from a binary", displayName(s.name), displayName(p.name))
	}
	for _, a := range p.shaders {
		if a == s {
			return argError("shader", "shader %s already attached to program %s", displayName(s.name), displayName(p.name))
		}
	}
	p.shaders = append(p.shaders, s)
	p.state = Unlinked
	return nil
}

// SetParams changes the compilation parameters. A nil params sets the default
// parameters. Setting parameters equal to the current ones is a no-op.
//
func (p *Program) SetParams(params *Params) {
	np := paramsOrDefault(params)
	if np == p.params {
		return
	}
	p.params = np
	p.state = Unlinked
}

// Link links the program. If the program was created with NewFromBinary, the
// binary is loaded instead.
//
// Shaders that are not compiled, or that were compiled with different
// parameters, are compiled first. A compilation failure returns a
// *CompileError and a link failure a *LinkError. Shaders are detached from the
// program once linking completes, whatever the outcome.
//
func (p *Program) Link() error {
	if !p.id.Valid() {
		return errors.Errorf("link program %s: program deleted", displayName(p.name))
	}
	if p.fromBinary {
		return p.loadBinary()
	}
	if Debug {
		if n := len(p.drv.GetAttachedShaders(p.id)); n > 0 {
			panic(errors.Errorf("link program %s: %d shaders still attached to the native program", displayName(p.name), n))
		}
	}
	if err := p.linkSources(); err != nil {
		if errors.As(err, new(*LinkError)) || errors.As(err, new(*CompileError)) {
			p.state = LinkFailed
		}
		return err
	}
	p.state = Linked
	p.introspect()
	if Debug {
		return p.Validate()
	}
	return nil
}

func (p *Program) linkSources() error {
	drv := p.drv
	caps := drv.Caps()
	var (
		attached []driver.Shader
		varyings driver.Strings
		done     bool
	)
	// the varyings array must outlive LinkProgram.
	cleanup := func() {
		if done {
			return
		}
		done = true
		for _, s := range attached {
			drv.DetachShader(p.id, s)
		}
		if varyings != nil {
			varyings.Release()
		}
	}
	defer cleanup()

	for _, s := range p.shaders {
		if !s.compiled || s.params != p.params {
			if err := s.compile(p.params); err != nil {
				return err
			}
		}
		drv.AttachShader(p.id, s.id)
		attached = append(attached, s.id)
	}

	if len(p.varyings) > 0 {
		switch {
		case caps.Has(driver.CapTransformFeedback):
			varyings = drv.NewStrings(p.varyings)
			drv.TransformFeedbackVaryings(p.id, varyings, driver.Enum(p.params.Feedback))
		case caps.Has(driver.CapTransformFeedbackNV):
			for _, v := range p.varyings {
				drv.ActiveVaryingNV(p.id, v)
			}
		default:
			return errors.WithStack(&UnsupportedFeatureError{Feature: "transform feedback varyings"})
		}
	}

	if !caps.Has(driver.CapExplicitAttribLocation) {
		for _, name := range sortedKeys(p.attribLocs) {
			drv.BindAttribLocation(p.id, uint32(p.attribLocs[name]), name)
		}
	}
	if caps.Has(driver.CapFragDataLocation) {
		for _, name := range sortedKeys(p.fragLocs) {
			drv.BindFragDataLocation(p.id, uint32(p.fragLocs[name]), name)
		}
	}

	p.selectBackend()

	drv.LinkProgram(p.id)
	ok := drv.GetProgrami(p.id, driver.LINK_STATUS) != 0
	cleanup()

	if !ok {
		log := indentLog(drv.GetProgramInfoLog(p.id, MaxInfoLogLength))
		Logger().Warn("program link failed", "program", displayName(p.name), "log", log)
		return errors.WithStack(&LinkError{Program: displayName(p.name), Log: log})
	}
	return nil
}

func (p *Program) selectBackend() {
	if p.drv.Caps().Has(driver.CapSeparateShaderObjects) {
		p.backend = BackendSeparate
		p.uniform = separateUniforms{p.drv, p.id}
	} else {
		p.backend = BackendCompatible
		p.uniform = compatibleUniforms{p.drv, p.id}
	}
}

// LoadBinary replaces the program with the given binary. The program must
// have been created with NewFromBinary.
//
// The driver does not report whether loading succeeded: a binary rejected by
// the driver yields a Linked program with no active resources.
//
func (p *Program) LoadBinary(binary []byte, format driver.Enum) error {
	if !p.fromBinary {
		return argError("binary", "program %s was not created from a binary", displayName(p.name))
	}
	if len(binary) == 0 {
		return argError("binary", "empty program binary")
	}
	p.binary = binary
	p.binaryFormat = format
	p.state = Unlinked
	return p.loadBinary()
}

func (p *Program) loadBinary() error {
	if p.binary == nil {
		return errors.Errorf("load program %s: binary already loaded, create a new program", displayName(p.name))
	}
	if !p.drv.Caps().Has(driver.CapProgramBinary) {
		return errors.WithStack(&NotSupportedError{Op: "load program binary"})
	}
	p.drv.ProgramBinary(p.id, p.binaryFormat, p.binary)
	p.binary = nil
	p.state = Linked
	p.selectBackend()
	p.introspect()
	return nil
}

// Binary returns the binary representation of a linked program, and its
// format.
//
func (p *Program) Binary() ([]byte, driver.Enum, error) {
	if p.state != Linked {
		return nil, 0, errors.WithStack(ErrNotLinked)
	}
	if !p.drv.Caps().Has(driver.CapProgramBinary) {
		return nil, 0, errors.WithStack(&NotSupportedError{Op: "get program binary"})
	}
	b, format := p.drv.GetProgramBinary(p.id)
	if len(b) == 0 {
		return nil, 0, errors.Errorf("get program binary %s: driver returned an empty binary", displayName(p.name))
	}
	return b, format, nil
}

// Validate checks whether the program can execute given the current driver
// state. It returns a *ValidationError with the driver log if not. Link calls
// Validate after linking when Debug is set.
//
func (p *Program) Validate() error {
	if p.state != Linked {
		return errors.WithStack(ErrNotLinked)
	}
	p.drv.ValidateProgram(p.id)
	if p.drv.GetProgrami(p.id, driver.VALIDATE_STATUS) != 0 {
		return nil
	}
	log := indentLog(p.drv.GetProgramInfoLog(p.id, MaxInfoLogLength))
	Logger().Warn("program validation failed", "program", displayName(p.name), "log", log)
	return errors.WithStack(&ValidationError{Program: displayName(p.name), Log: log})
}

// Use makes the program current.
//
func (p *Program) Use() error {
	if p.state != Linked {
		return errors.WithStack(ErrNotLinked)
	}
	p.drv.UseProgram(p.id)
	return nil
}

// Delete releases all image bindings and deletes the native program. Attached
// shaders are not deleted.
//
func (p *Program) Delete() {
	p.ClearImages()
	if p.id.Valid() {
		p.drv.DeleteProgram(p.id)
	}
	p.id = 0
	p.state = Unlinked
	p.binary = nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

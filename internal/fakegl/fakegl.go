// Package fakegl implements an in-memory driver.Driver for tests.
//
// Shaders "compile" unless their source contains an #error directive, and
// programs "link" by scanning the global declarations of their attached
// shaders. A shader can force a link failure with a comment of the form:
//
//	// link-error: message
//
// Every driver call is appended to a call log that tests can inspect.
//
package fakegl

import (
	"fmt"
	"sort"
	"strings"

	"github.com/db47h/glprog/driver"
)

// BinaryFormat is the format tag of program binaries produced by the driver.
//
const BinaryFormat driver.Enum = 0xFA4E

const binaryPrefix = "fakegl-binary:"

// Call is a logged driver call.
//
type Call struct {
	Name string
	Args []interface{}
}

func (c Call) String() string {
	var sb strings.Builder
	sb.WriteString(c.Name)
	sb.WriteByte('(')
	for i, a := range c.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprint(&sb, a)
	}
	sb.WriteByte(')')
	return sb.String()
}

// Texture is the state of a texture object.
//
type Texture struct {
	Target         driver.Enum
	InternalFormat driver.Enum
	Width          int
	Height         int
	Depth          int
	Levels         int
	Params         map[driver.Enum]int32
	Deleted        bool
}

type shader struct {
	typ     driver.Enum
	src     string
	status  bool
	log     string
	deleted bool
}

type resource struct {
	name     string
	size     int
	typ      driver.Enum
	location int
}

func (r *resource) active() driver.ActiveResource {
	return driver.ActiveResource{Name: r.name, Size: r.size, Type: r.typ}
}

type linked struct {
	attribs  []resource
	uniforms []resource
	blocks   []string
	storage  []string
	outputs  []resource
	feedback []resource
	frag     map[string]int
}

type program struct {
	attached   []driver.Shader
	attribBind map[string]uint32
	fragBind   map[string]uint32
	varyings   []string
	strs       *Strings
	activeNV   []string
	status     bool
	validated  bool
	log        string
	linked     *linked
	values     map[int]interface{}
	deleted    bool
}

// Driver is an in-memory driver.Driver.
//
type Driver struct {
	// Ints holds the values returned by GetInteger.
	Ints map[driver.Enum]int
	// FailValidation makes ValidateProgram fail on linked programs.
	FailValidation bool

	caps     driver.Caps
	renderer string
	calls    []Call
	next     uint32
	programs map[driver.Program]*program
	shaders  map[driver.Shader]*shader
	textures map[driver.Texture]*Texture
	bound    map[driver.Enum]driver.Texture
	binaries map[string]*linked
	current  driver.Program
}

// New returns a new Driver with the given capabilities.
//
func New(caps driver.Caps) *Driver {
	return &Driver{
		Ints: map[driver.Enum]int{
			driver.MAX_COMPUTE_WORK_GROUP_INVOCATIONS: 1024,
			driver.MAX_IMAGE_UNITS:                    8,
			driver.MAJOR_VERSION:                      4,
			driver.MINOR_VERSION:                      6,
		},
		caps:     caps,
		renderer: "fakegl|" + caps.String(),
		programs: make(map[driver.Program]*program),
		shaders:  make(map[driver.Shader]*shader),
		textures: make(map[driver.Texture]*Texture),
		bound:    make(map[driver.Enum]driver.Texture),
		binaries: make(map[string]*linked),
	}
}

func (d *Driver) record(name string, args ...interface{}) {
	d.calls = append(d.calls, Call{Name: name, Args: args})
}

// Calls returns the call log.
//
func (d *Driver) Calls() []Call { return d.calls }

// ResetCalls clears the call log.
//
func (d *Driver) ResetCalls() { d.calls = d.calls[:0] }

// Count returns the number of logged calls to the named function.
//
func (d *Driver) Count(name string) int {
	n := 0
	for _, c := range d.calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Index returns the index in the call log of the first call to the named
// function, or -1.
//
func (d *Driver) Index(name string) int {
	for i, c := range d.calls {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// LastIndex returns the index in the call log of the last call to the named
// function, or -1.
//
func (d *Driver) LastIndex(name string) int {
	for i := len(d.calls) - 1; i >= 0; i-- {
		if d.calls[i].Name == name {
			return i
		}
	}
	return -1
}

// Find returns all logged calls to the named function.
//
func (d *Driver) Find(name string) []Call {
	var cs []Call
	for _, c := range d.calls {
		if c.Name == name {
			cs = append(cs, c)
		}
	}
	return cs
}

func (d *Driver) id() uint32 {
	d.next++
	return d.next
}

func (d *Driver) program(p driver.Program) *program {
	prog := d.programs[p]
	if prog == nil || prog.deleted {
		panic(fmt.Sprintf("fakegl: invalid program %d", p))
	}
	return prog
}

func (d *Driver) shader(s driver.Shader) *shader {
	sh := d.shaders[s]
	if sh == nil {
		panic(fmt.Sprintf("fakegl: invalid shader %d", s))
	}
	return sh
}

// Source returns the source last set on shader s.
//
func (d *Driver) Source(s driver.Shader) string { return d.shader(s).src }

// ProgramDeleted returns true if p has been deleted.
//
func (d *Driver) ProgramDeleted(p driver.Program) bool {
	prog := d.programs[p]
	return prog == nil || prog.deleted
}

// ShaderDeleted returns true if s has been deleted.
//
func (d *Driver) ShaderDeleted(s driver.Shader) bool {
	sh := d.shaders[s]
	return sh == nil || sh.deleted
}

// Texture returns the state of texture t or nil if t was never created.
//
func (d *Driver) Texture(t driver.Texture) *Texture { return d.textures[t] }

// UniformValue returns the last value pushed to the uniform at location loc
// of program p.
//
func (d *Driver) UniformValue(p driver.Program, loc int) interface{} {
	return d.program(p).values[loc]
}

// Current returns the program currently in use.
//
func (d *Driver) Current() driver.Program { return d.current }

func (d *Driver) Caps() driver.Caps { return d.caps }

func (d *Driver) Renderer() string { return d.renderer }

func (d *Driver) GetInteger(pname driver.Enum) int {
	d.record("GetInteger", pname)
	return d.Ints[pname]
}

func (d *Driver) CreateProgram() driver.Program {
	p := driver.Program(d.id())
	d.programs[p] = &program{
		attribBind: make(map[string]uint32),
		fragBind:   make(map[string]uint32),
		values:     make(map[int]interface{}),
	}
	d.record("CreateProgram", p)
	return p
}

func (d *Driver) DeleteProgram(p driver.Program) {
	d.record("DeleteProgram", p)
	d.program(p).deleted = true
	if d.current == p {
		d.current = 0
	}
}

func (d *Driver) CreateShader(typ driver.Enum) driver.Shader {
	s := driver.Shader(d.id())
	d.shaders[s] = &shader{typ: typ}
	d.record("CreateShader", typ, s)
	return s
}

func (d *Driver) DeleteShader(s driver.Shader) {
	d.record("DeleteShader", s)
	d.shader(s).deleted = true
}

func (d *Driver) ShaderSource(s driver.Shader, src string) {
	d.record("ShaderSource", s)
	d.shader(s).src = src
}

func (d *Driver) CompileShader(s driver.Shader) {
	d.record("CompileShader", s)
	sh := d.shader(s)
	var errs []string
	for i, line := range strings.Split(sh.src, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#error") {
			errs = append(errs, fmt.Sprintf("0:%d: error: %s", i+1, strings.TrimSpace(line[len("#error"):])))
		}
	}
	sh.status = len(errs) == 0
	sh.log = ""
	if len(errs) > 0 {
		sh.log = strings.Join(errs, "\n") + "\n"
	}
}

func (d *Driver) GetShaderi(s driver.Shader, pname driver.Enum) int {
	d.record("GetShaderi", s, pname)
	sh := d.shader(s)
	switch pname {
	case driver.COMPILE_STATUS:
		return boolInt(sh.status)
	case driver.INFO_LOG_LENGTH:
		return logLength(sh.log)
	}
	return 0
}

func (d *Driver) GetShaderInfoLog(s driver.Shader, maxLen int) string {
	d.record("GetShaderInfoLog", s, maxLen)
	return truncate(d.shader(s).log, maxLen)
}

func (d *Driver) AttachShader(p driver.Program, s driver.Shader) {
	d.record("AttachShader", p, s)
	prog := d.program(p)
	for _, a := range prog.attached {
		if a == s {
			return
		}
	}
	prog.attached = append(prog.attached, s)
}

func (d *Driver) DetachShader(p driver.Program, s driver.Shader) {
	d.record("DetachShader", p, s)
	prog := d.program(p)
	for i, a := range prog.attached {
		if a == s {
			prog.attached = append(prog.attached[:i], prog.attached[i+1:]...)
			return
		}
	}
}

func (d *Driver) GetAttachedShaders(p driver.Program) []driver.Shader {
	d.record("GetAttachedShaders", p)
	return append([]driver.Shader(nil), d.program(p).attached...)
}

func (d *Driver) BindAttribLocation(p driver.Program, index uint32, name string) {
	d.record("BindAttribLocation", p, index, name)
	d.program(p).attribBind[name] = index
}

func (d *Driver) BindFragDataLocation(p driver.Program, color uint32, name string) {
	d.record("BindFragDataLocation", p, color, name)
	d.program(p).fragBind[name] = color
}

func (d *Driver) GetFragDataLocation(p driver.Program, name string) int {
	d.record("GetFragDataLocation", p, name)
	prog := d.program(p)
	if !prog.status {
		return -1
	}
	if loc, ok := prog.linked.frag[name]; ok {
		return loc
	}
	return -1
}

// Strings implements driver.Strings.
//
type Strings struct {
	d        *Driver
	names    []string
	released bool
}

func (s *Strings) Len() int { return len(s.names) }

// Release marks the array as released. Linking a program whose feedback
// varyings were registered with a released array fails.
//
func (s *Strings) Release() {
	s.d.record("ReleaseStrings", len(s.names))
	s.released = true
}

// Released returns true if Release has been called.
//
func (s *Strings) Released() bool { return s.released }

func (d *Driver) NewStrings(names []string) driver.Strings {
	d.record("NewStrings", strings.Join(names, ","))
	return &Strings{d: d, names: append([]string(nil), names...)}
}

func (d *Driver) TransformFeedbackVaryings(p driver.Program, varyings driver.Strings, bufferMode driver.Enum) {
	s := varyings.(*Strings)
	d.record("TransformFeedbackVaryings", p, strings.Join(s.names, ","), bufferMode)
	prog := d.program(p)
	prog.strs = s
	prog.varyings = s.names
}

func (d *Driver) ActiveVaryingNV(p driver.Program, name string) {
	d.record("ActiveVaryingNV", p, name)
	prog := d.program(p)
	for _, n := range prog.activeNV {
		if n == name {
			return
		}
	}
	prog.activeNV = append(prog.activeNV, name)
}

// activeVaryingsNV returns the NV active varyings of a linked program. Locations are
// indices in the returned slice.
//
func (prog *program) activeVaryingsNV() []resource {
	if !prog.status {
		return nil
	}
	var rs []resource
	for _, n := range prog.activeNV {
		if r := find(prog.linked.outputs, n); r != nil {
			rs = append(rs, *r)
		}
	}
	return rs
}

func (d *Driver) GetVaryingLocationNV(p driver.Program, name string) int {
	d.record("GetVaryingLocationNV", p, name)
	for i, r := range d.program(p).activeVaryingsNV() {
		if r.name == name {
			return i
		}
	}
	return -1
}

func (d *Driver) TransformFeedbackVaryingsNV(p driver.Program, locations []int32, bufferMode driver.Enum) {
	d.record("TransformFeedbackVaryingsNV", p, append([]int32(nil), locations...), bufferMode)
	prog := d.program(p)
	if !prog.status {
		return
	}
	active := prog.activeVaryingsNV()
	var fb []resource
	for _, loc := range locations {
		if loc >= 0 && int(loc) < len(active) {
			fb = append(fb, active[loc])
		}
	}
	prog.linked.feedback = fb
}

func (d *Driver) GetActiveVaryingNV(p driver.Program, index uint32, bufSize int) driver.ActiveResource {
	d.record("GetActiveVaryingNV", p, index, bufSize)
	active := d.program(p).activeVaryingsNV()
	if int(index) >= len(active) {
		return driver.ActiveResource{}
	}
	return truncateResource(active[index].active(), bufSize)
}

func (d *Driver) LinkProgram(p driver.Program) {
	d.record("LinkProgram", p)
	prog := d.program(p)
	prog.status, prog.validated, prog.log, prog.linked = false, false, "", nil

	var errs []string
	if len(prog.attached) == 0 {
		errs = append(errs, "error: no shaders attached")
	}
	stages := make(map[driver.Enum][]decl)
	for _, s := range prog.attached {
		sh := d.shader(s)
		if !sh.status {
			errs = append(errs, fmt.Sprintf("error: shader %d is not compiled", s))
			continue
		}
		for _, msg := range directives(sh.src, "link-error") {
			errs = append(errs, "error: "+msg)
		}
		stages[sh.typ] = append(stages[sh.typ], parse(sh.src)...)
	}
	if prog.strs != nil && prog.strs.released {
		errs = append(errs, "error: transform feedback varying names corrupted")
	}
	var l *linked
	if len(errs) == 0 {
		l, errs = d.resolve(prog, stages)
	}
	if len(errs) > 0 {
		prog.log = strings.Join(errs, "\n") + "\n"
		return
	}
	prog.status = true
	prog.linked = l
}

func (d *Driver) resolve(prog *program, stages map[driver.Enum][]decl) (*linked, []string) {
	var errs []string
	l := &linked{frag: make(map[string]int)}
	explicit := d.caps.Has(driver.CapExplicitAttribLocation)

	used := make(map[int]string)
	var auto []resource
	for _, v := range stages[driver.VERTEX_SHADER] {
		if v.qual != "in" || v.block || strings.HasPrefix(v.name, "gl_") {
			continue
		}
		r := resource{name: v.name, size: v.size, typ: TypeOf(v.typ), location: -1}
		if explicit && v.location >= 0 {
			r.location = v.location
		} else if loc, ok := prog.attribBind[v.name]; ok {
			r.location = int(loc)
		}
		if r.location < 0 {
			auto = append(auto, r)
			continue
		}
		if other, ok := used[r.location]; ok {
			errs = append(errs, fmt.Sprintf("error: attributes %q and %q share location %d", other, r.name, r.location))
		}
		used[r.location] = r.name
		l.attribs = append(l.attribs, r)
	}
	for _, r := range auto {
		r.location = nextFree(used)
		used[r.location] = r.name
		l.attribs = append(l.attribs, r)
	}
	sort.Slice(l.attribs, func(i, j int) bool { return l.attribs[i].name < l.attribs[j].name })

	fused := make(map[int]bool)
	var fauto []string
	for _, v := range stages[driver.FRAGMENT_SHADER] {
		if v.qual != "out" || v.block {
			continue
		}
		loc := -1
		if explicit && v.location >= 0 {
			loc = v.location
		} else if b, ok := prog.fragBind[v.name]; ok && d.caps.Has(driver.CapFragDataLocation) {
			loc = int(b)
		}
		if loc < 0 {
			fauto = append(fauto, v.name)
			continue
		}
		fused[loc] = true
		l.frag[v.name] = loc
	}
	for _, n := range fauto {
		loc := 0
		for fused[loc] {
			loc++
		}
		fused[loc] = true
		l.frag[n] = loc
	}

	seen := make(map[string]bool)
	loc := 0
	for _, st := range stageOrder {
		for _, v := range stages[st] {
			if seen[v.qual+" "+v.name] {
				continue
			}
			seen[v.qual+" "+v.name] = true
			switch {
			case v.qual == "uniform" && v.block:
				l.blocks = append(l.blocks, v.name)
			case v.qual == "buffer" && v.block:
				l.storage = append(l.storage, v.name)
			case v.qual == "uniform":
				l.uniforms = append(l.uniforms, resource{name: v.name, size: v.size, typ: TypeOf(v.typ), location: loc})
				loc += v.size
			}
		}
	}

	outStage := driver.VERTEX_SHADER
	if len(stages[driver.GEOMETRY_SHADER]) > 0 {
		outStage = driver.GEOMETRY_SHADER
	}
	l.outputs = append(l.outputs, resource{name: "gl_Position", size: 1, typ: driver.FLOAT_VEC4, location: -1})
	for _, v := range stages[outStage] {
		if v.qual == "out" && !v.block {
			l.outputs = append(l.outputs, resource{name: v.name, size: v.size, typ: TypeOf(v.typ), location: -1})
		}
	}
	for _, n := range prog.varyings {
		r := find(l.outputs, n)
		if r == nil {
			errs = append(errs, fmt.Sprintf("error: transform feedback varying %q is not an output", n))
			continue
		}
		l.feedback = append(l.feedback, *r)
	}
	return l, errs
}

var stageOrder = []driver.Enum{
	driver.VERTEX_SHADER,
	driver.TESS_CONTROL_SHADER,
	driver.TESS_EVALUATION_SHADER,
	driver.GEOMETRY_SHADER,
	driver.FRAGMENT_SHADER,
	driver.COMPUTE_SHADER,
}

func nextFree(used map[int]string) int {
	i := 0
	for {
		if _, ok := used[i]; !ok {
			return i
		}
		i++
	}
}

func find(rs []resource, name string) *resource {
	for i := range rs {
		if rs[i].name == name {
			return &rs[i]
		}
	}
	return nil
}

func (d *Driver) ValidateProgram(p driver.Program) {
	d.record("ValidateProgram", p)
	prog := d.program(p)
	prog.validated = prog.status && !d.FailValidation
	if prog.status && d.FailValidation {
		prog.log = "validation: program is not valid in the current state\n"
	}
}

func (d *Driver) GetProgrami(p driver.Program, pname driver.Enum) int {
	d.record("GetProgrami", p, pname)
	prog := d.program(p)
	l := prog.linked
	if l == nil {
		l = &linked{}
	}
	switch pname {
	case driver.LINK_STATUS:
		return boolInt(prog.status)
	case driver.VALIDATE_STATUS:
		return boolInt(prog.validated)
	case driver.INFO_LOG_LENGTH:
		return logLength(prog.log)
	case driver.ATTACHED_SHADERS:
		return len(prog.attached)
	case driver.ACTIVE_ATTRIBUTES:
		return len(l.attribs)
	case driver.ACTIVE_ATTRIBUTE_MAX_LENGTH:
		return maxNameLength(l.attribs)
	case driver.ACTIVE_UNIFORMS:
		return len(l.uniforms)
	case driver.ACTIVE_UNIFORM_MAX_LENGTH:
		return maxNameLength(l.uniforms)
	case driver.ACTIVE_UNIFORM_BLOCKS:
		return len(l.blocks)
	case driver.ACTIVE_UNIFORM_BLOCK_MAX_NAME_LENGTH:
		return maxStringLength(l.blocks)
	case driver.TRANSFORM_FEEDBACK_VARYINGS:
		return len(l.feedback)
	case driver.TRANSFORM_FEEDBACK_VARYING_MAX_LENGTH:
		return maxNameLength(l.feedback)
	case driver.ACTIVE_VARYINGS_NV:
		return len(prog.activeVaryingsNV())
	case driver.ACTIVE_VARYING_MAX_LENGTH_NV:
		return maxNameLength(prog.activeVaryingsNV())
	case driver.PROGRAM_BINARY_LENGTH:
		if !prog.status {
			return 0
		}
		return 64
	}
	return 0
}

func (d *Driver) GetProgramInfoLog(p driver.Program, maxLen int) string {
	d.record("GetProgramInfoLog", p, maxLen)
	return truncate(d.program(p).log, maxLen)
}

func (d *Driver) GetActiveAttrib(p driver.Program, index uint32, bufSize int) driver.ActiveResource {
	d.record("GetActiveAttrib", p, index, bufSize)
	return activeAt(d.program(p).linkedOrEmpty().attribs, index, bufSize)
}

func (d *Driver) GetAttribLocation(p driver.Program, name string) int {
	d.record("GetAttribLocation", p, name)
	if r := find(d.program(p).linkedOrEmpty().attribs, name); r != nil {
		return r.location
	}
	return -1
}

func (d *Driver) GetActiveUniform(p driver.Program, index uint32, bufSize int) driver.ActiveResource {
	d.record("GetActiveUniform", p, index, bufSize)
	return activeAt(d.program(p).linkedOrEmpty().uniforms, index, bufSize)
}

func (d *Driver) GetUniformLocation(p driver.Program, name string) int {
	d.record("GetUniformLocation", p, name)
	if r := find(d.program(p).linkedOrEmpty().uniforms, name); r != nil {
		return r.location
	}
	return -1
}

func (d *Driver) GetActiveUniformBlockName(p driver.Program, index uint32, bufSize int) string {
	d.record("GetActiveUniformBlockName", p, index, bufSize)
	bs := d.program(p).linkedOrEmpty().blocks
	if int(index) >= len(bs) {
		return ""
	}
	return truncate(bs[index], bufSize)
}

func (d *Driver) GetTransformFeedbackVarying(p driver.Program, index uint32, bufSize int) driver.ActiveResource {
	d.record("GetTransformFeedbackVarying", p, index, bufSize)
	return activeAt(d.program(p).linkedOrEmpty().feedback, index, bufSize)
}

func (d *Driver) GetProgramInterfacei(p driver.Program, iface, pname driver.Enum) int {
	d.record("GetProgramInterfacei", p, iface, pname)
	if iface != driver.SHADER_STORAGE_BLOCK {
		return 0
	}
	ss := d.program(p).linkedOrEmpty().storage
	switch pname {
	case driver.ACTIVE_RESOURCES:
		return len(ss)
	case driver.MAX_NAME_LENGTH:
		return maxStringLength(ss)
	}
	return 0
}

func (d *Driver) GetProgramResourceName(p driver.Program, iface driver.Enum, index uint32, bufSize int) string {
	d.record("GetProgramResourceName", p, iface, index, bufSize)
	if iface != driver.SHADER_STORAGE_BLOCK {
		return ""
	}
	ss := d.program(p).linkedOrEmpty().storage
	if int(index) >= len(ss) {
		return ""
	}
	return truncate(ss[index], bufSize)
}

func (prog *program) linkedOrEmpty() *linked {
	if prog.linked == nil {
		return &linked{}
	}
	return prog.linked
}

func (d *Driver) GetProgramBinary(p driver.Program) ([]byte, driver.Enum) {
	d.record("GetProgramBinary", p)
	prog := d.program(p)
	if !prog.status {
		return nil, 0
	}
	key := fmt.Sprintf("%d", d.id())
	d.binaries[key] = prog.linked
	return []byte(binaryPrefix + key), BinaryFormat
}

func (d *Driver) ProgramBinary(p driver.Program, format driver.Enum, binary []byte) {
	d.record("ProgramBinary", p, format, len(binary))
	prog := d.program(p)
	prog.status, prog.validated, prog.linked = false, false, nil
	prog.log = "error: invalid program binary\n"
	s := string(binary)
	if format != BinaryFormat || !strings.HasPrefix(s, binaryPrefix) {
		return
	}
	l, ok := d.binaries[strings.TrimPrefix(s, binaryPrefix)]
	if !ok {
		return
	}
	prog.status, prog.log, prog.linked = true, "", l
}

func (d *Driver) UseProgram(p driver.Program) {
	d.record("UseProgram", p)
	d.current = p
}

func (d *Driver) setCurrent(loc int, v interface{}) {
	if d.current == 0 {
		panic("fakegl: no program in use")
	}
	d.program(d.current).values[loc] = v
}

func (d *Driver) Uniform1i(location int, v int32) {
	d.record("Uniform1i", location, v)
	d.setCurrent(location, v)
}

func (d *Driver) Uniform1f(location int, v float32) {
	d.record("Uniform1f", location, v)
	d.setCurrent(location, v)
}

func (d *Driver) Uniform4f(location int, v0, v1, v2, v3 float32) {
	d.record("Uniform4f", location, v0, v1, v2, v3)
	d.setCurrent(location, [4]float32{v0, v1, v2, v3})
}

func (d *Driver) UniformMatrix4fv(location int, m *[16]float32) {
	d.record("UniformMatrix4fv", location)
	d.setCurrent(location, *m)
}

func (d *Driver) ProgramUniform1i(p driver.Program, location int, v int32) {
	d.record("ProgramUniform1i", p, location, v)
	d.program(p).values[location] = v
}

func (d *Driver) ProgramUniform1f(p driver.Program, location int, v float32) {
	d.record("ProgramUniform1f", p, location, v)
	d.program(p).values[location] = v
}

func (d *Driver) ProgramUniform4f(p driver.Program, location int, v0, v1, v2, v3 float32) {
	d.record("ProgramUniform4f", p, location, v0, v1, v2, v3)
	d.program(p).values[location] = [4]float32{v0, v1, v2, v3}
}

func (d *Driver) ProgramUniformMatrix4fv(p driver.Program, location int, m *[16]float32) {
	d.record("ProgramUniformMatrix4fv", p, location)
	d.program(p).values[location] = *m
}

func (d *Driver) BindImageTexture(unit uint32, t driver.Texture, level int, layered bool, layer int, access, format driver.Enum) {
	d.record("BindImageTexture", unit, t, level, layered, layer, access, format)
}

func (d *Driver) DispatchCompute(x, y, z uint32) {
	d.record("DispatchCompute", x, y, z)
}

func (d *Driver) MemoryBarrier(barriers driver.Enum) {
	d.record("MemoryBarrier", barriers)
}

func (d *Driver) CreateTexture() driver.Texture {
	t := driver.Texture(d.id())
	d.textures[t] = &Texture{Params: make(map[driver.Enum]int32)}
	d.record("CreateTexture", t)
	return t
}

func (d *Driver) DeleteTexture(t driver.Texture) {
	d.record("DeleteTexture", t)
	if tx := d.textures[t]; tx != nil {
		tx.Deleted = true
	}
}

func (d *Driver) BindTexture(target driver.Enum, t driver.Texture) {
	d.record("BindTexture", target, t)
	d.bound[target] = t
	if tx := d.textures[t]; tx != nil && tx.Target == 0 {
		tx.Target = target
	}
}

func (d *Driver) boundTexture(target driver.Enum) *Texture {
	if target >= driver.TEXTURE_CUBE_MAP_POSITIVE_X && target < driver.TEXTURE_CUBE_MAP_POSITIVE_X+6 {
		target = driver.TEXTURE_CUBE_MAP
	}
	tx := d.textures[d.bound[target]]
	if tx == nil {
		panic(fmt.Sprintf("fakegl: no texture bound to 0x%X", uint32(target)))
	}
	return tx
}

func (d *Driver) TexParameteri(target, pname driver.Enum, param int32) {
	d.record("TexParameteri", target, pname, param)
	d.boundTexture(target).Params[pname] = param
}

func (d *Driver) TexParameterfv(target, pname driver.Enum, params []float32) {
	d.record("TexParameterfv", target, pname, append([]float32(nil), params...))
}

func (d *Driver) TexImage2D(target driver.Enum, level int, internalFormat driver.Enum, width, height int, format, typ driver.Enum, pix []byte) {
	d.record("TexImage2D", target, level, internalFormat, width, height, format, typ, len(pix))
	tx := d.boundTexture(target)
	if level == 0 {
		tx.InternalFormat, tx.Width, tx.Height, tx.Depth = internalFormat, width, height, 1
	}
}

func (d *Driver) TexImage3D(target driver.Enum, level int, internalFormat driver.Enum, width, height, depth int, format, typ driver.Enum, pix []byte) {
	d.record("TexImage3D", target, level, internalFormat, width, height, depth, format, typ, len(pix))
	tx := d.boundTexture(target)
	if level == 0 {
		tx.InternalFormat, tx.Width, tx.Height, tx.Depth = internalFormat, width, height, depth
	}
}

func (d *Driver) GenerateMipmap(target driver.Enum) {
	d.record("GenerateMipmap", target)
	tx := d.boundTexture(target)
	n := 1
	for s := max3(tx.Width, tx.Height, tx.Depth); s > 1; s >>= 1 {
		n++
	}
	tx.Levels = n
}

func max3(a, b, c int) int {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func logLength(log string) int {
	if log == "" {
		return 0
	}
	return len(log) + 1
}

// truncate mimics the GL behavior of writing at most bufSize-1 bytes plus a
// null terminator.
//
func truncate(s string, bufSize int) string {
	if bufSize <= 0 {
		return ""
	}
	if len(s) > bufSize-1 {
		return s[:bufSize-1]
	}
	return s
}

func truncateResource(r driver.ActiveResource, bufSize int) driver.ActiveResource {
	r.Name = truncate(r.Name, bufSize)
	return r
}

func activeAt(rs []resource, index uint32, bufSize int) driver.ActiveResource {
	if int(index) >= len(rs) {
		return driver.ActiveResource{}
	}
	return truncateResource(rs[index].active(), bufSize)
}

func maxNameLength(rs []resource) int {
	n := 0
	for _, r := range rs {
		if len(r.name)+1 > n {
			n = len(r.name) + 1
		}
	}
	return n
}

func maxStringLength(ss []string) int {
	n := 0
	for _, s := range ss {
		if len(s)+1 > n {
			n = len(s) + 1
		}
	}
	return n
}

var _ driver.Driver = (*Driver)(nil)

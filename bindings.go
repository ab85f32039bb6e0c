package glprog

import (
	"sort"
	"strings"
)

// Semantic tags a vertex attribute with its meaning in a rendering pipeline.
//
type Semantic int

// Attribute semantics.
//
const (
	SemanticNone Semantic = iota
	Position
	Normal
	Tangent
	Color
	TexCoord
	BoneIndices
	BoneWeights
	Custom
)

var semanticNames = [...]string{
	"none",
	"position",
	"normal",
	"tangent",
	"color",
	"texcoord",
	"bone_indices",
	"bone_weights",
	"custom",
}

func (s Semantic) String() string {
	if s < 0 || int(s) >= len(semanticNames) {
		return "unknown"
	}
	return semanticNames[s]
}

// ParseSemantic returns the Semantic with the given name, as returned by
// Semantic.String.
//
func ParseSemantic(name string) (Semantic, error) {
	for i, n := range semanticNames {
		if strings.EqualFold(n, name) {
			return Semantic(i), nil
		}
	}
	return SemanticNone, argError("semantic", "unknown semantic %q", name)
}

func checkName(arg, name string) error {
	if name == "" {
		return argError(arg, "empty name")
	}
	if strings.HasPrefix(name, "gl_") {
		return argError(arg, "%q uses the reserved gl_ prefix", name)
	}
	return nil
}

// SetAttribLocation requests location loc for the named vertex attribute. The
// location is bound at the next link on drivers without explicit attribute
// location support; on others, layout qualifiers in the shader source win.
//
func (p *Program) SetAttribLocation(name string, loc int) error {
	if err := checkName("attribute", name); err != nil {
		return err
	}
	if loc < 0 {
		return argError("location", "negative location %d for attribute %q", loc, name)
	}
	p.attribLocs[name] = loc
	return nil
}

// AttribLocation returns the location of the named attribute: the linked
// location if the attribute is active, else the requested location, else -1.
//
func (p *Program) AttribLocation(name string) int {
	if a, ok := p.attribs[name]; ok {
		return a.Location
	}
	if loc, ok := p.attribLocs[name]; ok {
		return loc
	}
	return -1
}

// AttribLocations returns a copy of the requested attribute locations.
//
func (p *Program) AttribLocations() map[string]int {
	return copyMap(p.attribLocs)
}

// SetAttribSemantic tags the named attribute with a semantic.
//
func (p *Program) SetAttribSemantic(name string, s Semantic) error {
	if err := checkName("attribute", name); err != nil {
		return err
	}
	if s == SemanticNone {
		delete(p.semantics, name)
		return nil
	}
	p.semantics[name] = s
	return nil
}

// AttribSemantic returns the semantic of the named attribute.
//
func (p *Program) AttribSemantic(name string) Semantic {
	return p.semantics[name]
}

// AttribSemantics returns a copy of the attribute semantics.
//
func (p *Program) AttribSemantics() map[string]Semantic {
	return copyMap(p.semantics)
}

// AttribBySemantic returns the first attribute, in name order, tagged with
// semantic s.
//
func (p *Program) AttribBySemantic(s Semantic) (string, bool) {
	for _, name := range sortedKeys(p.semantics) {
		if p.semantics[name] == s {
			return name, true
		}
	}
	return "", false
}

// SetFragLocation binds the named fragment shader output to color number loc.
// Names using the reserved gl_ prefix are rejected.
//
func (p *Program) SetFragLocation(name string, loc int) error {
	if err := checkName("output", name); err != nil {
		return err
	}
	if loc < 0 {
		return argError("location", "negative location %d for output %q", loc, name)
	}
	p.fragLocs[name] = loc
	return nil
}

// FragLocation returns the color number of the named fragment output or -1.
// After a successful link, this is the location resolved by the driver.
//
func (p *Program) FragLocation(name string) int {
	if loc, ok := p.fragLocs[name]; ok {
		return loc
	}
	return -1
}

// FragLocations returns a copy of the fragment output locations.
//
func (p *Program) FragLocations() map[string]int {
	return copyMap(p.fragLocs)
}

// AddFeedbackVarying adds a varying to capture with transform feedback.
// Varyings are captured in the order they are added.
//
func (p *Program) AddFeedbackVarying(name string) error {
	if name == "" {
		return argError("varying", "empty name")
	}
	if containsString(p.varyings, name) {
		return argError("varying", "duplicate varying %q", name)
	}
	p.varyings = append(p.varyings, name)
	return nil
}

// FeedbackVaryings returns the requested feedback varyings in order.
//
func (p *Program) FeedbackVaryings() []string {
	return append([]string(nil), p.varyings...)
}

// CopyBindings copies the parameters, requested attribute and fragment
// locations, attribute semantics and feedback varyings of src to p. They take
// effect at the next Link. A program created with NewFromBinary needs them to
// report the same resources as the program its binary was saved from.
//
func (p *Program) CopyBindings(src *Program) {
	if src.params != p.params {
		p.params = src.params
		p.state = Unlinked
	}
	for name, loc := range src.attribLocs {
		p.attribLocs[name] = loc
	}
	for name, s := range src.semantics {
		p.semantics[name] = s
	}
	for name, loc := range src.fragLocs {
		p.fragLocs[name] = loc
	}
	for _, v := range src.varyings {
		if !containsString(p.varyings, v) {
			p.varyings = append(p.varyings, v)
		}
	}
}

func containsString(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}

// ActiveAttributes returns the names of the active attributes, sorted.
//
func (p *Program) ActiveAttributes() []string {
	return sortedKeys(p.attribs)
}

// Attribute returns the active attribute with the given name.
//
func (p *Program) Attribute(name string) (Attribute, bool) {
	a, ok := p.attribs[name]
	return a, ok
}

// ActiveFeedback returns the names of the active feedback varyings, sorted.
//
func (p *Program) ActiveFeedback() []string {
	return sortedKeys(p.feedback)
}

// Feedback returns the active feedback varying with the given name.
//
func (p *Program) Feedback(name string) (Varying, bool) {
	v, ok := p.feedback[name]
	return v, ok
}

// Uniforms returns the names of the active uniforms, sorted.
//
func (p *Program) Uniforms() []string {
	return sortedKeys(p.uniforms)
}

// Uniform returns the active uniform with the given name.
//
func (p *Program) Uniform(name string) (Uniform, bool) {
	u, ok := p.uniforms[name]
	return u, ok
}

// UniformBlocks returns the names of the active uniform blocks, sorted.
//
func (p *Program) UniformBlocks() []string {
	return sortedCopy(p.blocks)
}

// StorageBlocks returns the names of the active shader storage blocks,
// sorted. It is empty on drivers without program interface queries.
//
func (p *Program) StorageBlocks() []string {
	return sortedCopy(p.storage)
}

func sortedCopy(ss []string) []string {
	if len(ss) == 0 {
		return nil
	}
	ss = append([]string(nil), ss...)
	sort.Strings(ss)
	return ss
}

func copyMap[V any](m map[string]V) map[string]V {
	c := make(map[string]V, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

package glprog

import (
	"strings"
	"testing"

	"github.com/db47h/glprog/driver"
	"github.com/db47h/glprog/internal/fakegl"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkIntrospectsAttributes(t *testing.T) {
	drv := fakegl.New(driver.AllCaps)
	p := newProgram(t, drv)
	assert.Equal(t, Unlinked, p.State())

	require.NoError(t, p.Link())
	assert.True(t, p.IsLinked())
	assert.Equal(t, []string{"normal", "position", "uv"}, p.ActiveAttributes())
	for _, name := range p.ActiveAttributes() {
		a, ok := p.Attribute(name)
		require.True(t, ok)
		assert.GreaterOrEqual(t, a.Location, 0, name)
	}
	a, _ := p.Attribute("normal")
	assert.Equal(t, Attribute{Name: "normal", Location: 3, Type: driver.FLOAT_VEC3, Size: 1}, a)
	a, _ = p.Attribute("position")
	assert.Equal(t, driver.FLOAT_VEC4, a.Type)

	// shaders are detached once linked
	assert.Empty(t, drv.GetAttachedShaders(p.NativeID()))
	assert.Equal(t, drv.Count("AttachShader"), drv.Count("DetachShader"))
	assert.Less(t, drv.Index("LinkProgram"), drv.Index("DetachShader"))
}

func TestLinkFailureKeepsMaps(t *testing.T) {
	drv := fakegl.New(driver.AllCaps)
	p := newProgram(t, drv)
	require.NoError(t, p.Link())
	attribs := p.ActiveAttributes()
	before, _ := p.Attribute("uv")

	bad := newShader(t, drv, Geometry, "bad.geom", "// link-error: too many outputs\n// link-error: second line\n")
	require.NoError(t, p.Attach(bad))
	assert.False(t, p.IsLinked())

	err := p.Link()
	require.Error(t, err)
	le, ok := errors.Cause(err).(*LinkError)
	require.True(t, ok, "%T", err)
	assert.Equal(t, "test", le.Program)
	assert.Equal(t, "    error: too many outputs\n    error: second line", le.Log)
	assert.Equal(t, LinkFailed, p.State())
	assert.False(t, p.IsLinked())

	assert.Equal(t, attribs, p.ActiveAttributes())
	after, _ := p.Attribute("uv")
	assert.Equal(t, before, after)
	assert.Equal(t, drv.Count("AttachShader"), drv.Count("DetachShader"))
}

func TestRelinkAfterFailure(t *testing.T) {
	drv := fakegl.New(driver.AllCaps)
	p := newProgram(t, drv)
	frag := p.Shaders()[1]
	frag.SetSource("#error missing semicolon\n")
	err := p.Link()
	require.Error(t, err)
	ce, ok := errors.Cause(err).(*CompileError)
	require.True(t, ok, "%T", err)
	assert.Equal(t, "test.frag", ce.Shader)
	assert.Contains(t, ce.Log, "error: missing semicolon")
	assert.Equal(t, LinkFailed, p.State())
	assert.Equal(t, 0, drv.Count("LinkProgram"))
	assert.Equal(t, drv.Count("AttachShader"), drv.Count("DetachShader"))

	frag.SetSource(fragmentSrc)
	require.NoError(t, p.Link())
	assert.True(t, p.IsLinked())
}

func TestAttachTwice(t *testing.T) {
	drv := fakegl.New(driver.AllCaps)
	p := newProgram(t, drv)
	require.NoError(t, p.Link())
	shaders := p.Shaders()

	requireArgError(t, p.Attach(shaders[0]))
	assert.Equal(t, shaders, p.Shaders())
	assert.True(t, p.IsLinked())

	requireArgError(t, p.Attach(nil))
}

func TestSetParams(t *testing.T) {
	drv := fakegl.New(driver.AllCaps)
	p := newProgram(t, drv)
	require.NoError(t, p.Link())

	p.SetParams(nil)
	assert.True(t, p.IsLinked(), "default params are equal to the current ones")
	p.SetParams(&Params{Version: DefaultVersion, Feedback: InterleavedAttribs})
	assert.True(t, p.IsLinked())

	p.SetParams(NewParams(GLSLVersion("450 core")))
	assert.False(t, p.IsLinked())
	assert.Equal(t, Unlinked, p.State())
	assert.Equal(t, "450 core", p.Params().Version)

	require.NoError(t, p.Link())
	// shaders compiled with the previous version are compiled again
	for _, s := range p.Shaders() {
		assert.True(t, strings.HasPrefix(drv.Source(s.NativeID()), "#version 450 core\n"))
	}
	p.SetParams(NewParams(GLSLVersion("450 core")))
	assert.True(t, p.IsLinked())
}

func TestFeedbackVarying(t *testing.T) {
	drv := fakegl.New(driver.AllCaps)
	p := newProgram(t, drv)
	require.NoError(t, p.AddFeedbackVarying("outColor"))
	requireArgError(t, p.AddFeedbackVarying("outColor"))
	require.NoError(t, p.Link())

	assert.Equal(t, []string{"outColor"}, p.ActiveFeedback())
	v, ok := p.Feedback("outColor")
	require.True(t, ok)
	assert.Equal(t, Varying{Name: "outColor", Type: driver.FLOAT_VEC4, Size: 1}, v)
	assert.Equal(t, 4, v.Components())

	// the name array must outlive the link call
	assert.Less(t, drv.Index("TransformFeedbackVaryings"), drv.Index("LinkProgram"))
	assert.Less(t, drv.Index("LinkProgram"), drv.Index("ReleaseStrings"))
	assert.Equal(t, []interface{}{p.NativeID(), "outColor", driver.INTERLEAVED_ATTRIBS}, drv.Find("TransformFeedbackVaryings")[0].Args)
}

func TestFeedbackSeparateMode(t *testing.T) {
	drv := fakegl.New(driver.AllCaps)
	p, err := New(drv, "sep", NewParams(Feedback(SeparateAttribs)))
	require.NoError(t, err)
	require.NoError(t, p.Attach(newShader(t, drv, Vertex, "v", vertexSrc)))
	require.NoError(t, p.AddFeedbackVarying("gl_Position"))
	require.NoError(t, p.AddFeedbackVarying("outColor"))
	require.NoError(t, p.Link())
	assert.Equal(t, []string{"gl_Position", "outColor"}, p.ActiveFeedback())
	assert.Equal(t, driver.SEPARATE_ATTRIBS, drv.Find("TransformFeedbackVaryings")[0].Args[2])
}

func TestFeedbackUnknownVarying(t *testing.T) {
	drv := fakegl.New(driver.AllCaps)
	p := newProgram(t, drv)
	require.NoError(t, p.AddFeedbackVarying("nope"))
	err := p.Link()
	le, ok := errors.Cause(err).(*LinkError)
	require.True(t, ok, "%T", err)
	assert.Contains(t, le.Log, `"nope"`)
}

func TestFeedbackNV(t *testing.T) {
	drv := fakegl.New(driver.AllCaps &^ driver.CapTransformFeedback)
	p := newProgram(t, drv)
	require.NoError(t, p.AddFeedbackVarying("outColor"))
	require.NoError(t, p.Link())

	v, ok := p.Feedback("outColor")
	require.True(t, ok)
	assert.Equal(t, Varying{Name: "outColor", Type: driver.FLOAT_VEC4, Size: 1}, v)

	assert.Equal(t, 0, drv.Count("NewStrings"))
	assert.Less(t, drv.Index("ActiveVaryingNV"), drv.Index("LinkProgram"))
	assert.Less(t, drv.Index("LinkProgram"), drv.Index("GetVaryingLocationNV"))
	assert.Less(t, drv.Index("GetVaryingLocationNV"), drv.Index("TransformFeedbackVaryingsNV"))
	assert.Equal(t, []int32{0}, drv.Find("TransformFeedbackVaryingsNV")[0].Args[1])
}

func TestFeedbackUnsupported(t *testing.T) {
	drv := fakegl.New(driver.CapExplicitAttribLocation)
	p := newProgram(t, drv)
	require.NoError(t, p.AddFeedbackVarying("outColor"))
	err := p.Link()
	require.Error(t, err)
	_, ok := errors.Cause(err).(*UnsupportedFeatureError)
	assert.True(t, ok, "%T", err)
	assert.False(t, p.IsLinked())
	assert.Equal(t, 0, drv.Count("LinkProgram"))
	assert.Equal(t, drv.Count("AttachShader"), drv.Count("DetachShader"))
}

func TestAttribLocation(t *testing.T) {
	t.Run("legacy", func(t *testing.T) {
		drv := fakegl.New(driver.CapTransformFeedback | driver.CapFragDataLocation)
		p := newProgram(t, drv)
		require.NoError(t, p.SetAttribLocation("uv", 5))
		assert.Equal(t, 5, p.AttribLocation("uv"))
		require.NoError(t, p.Link())

		assert.Equal(t, [][]interface{}{{p.NativeID(), uint32(5), "uv"}}, callArgs(t, drv, "BindAttribLocation"))
		assert.Less(t, drv.Index("BindAttribLocation"), drv.Index("LinkProgram"))
		assert.Equal(t, 5, p.AttribLocation("uv"))
	})
	t.Run("explicit", func(t *testing.T) {
		drv := fakegl.New(driver.AllCaps)
		p := newProgram(t, drv)
		require.NoError(t, p.SetAttribLocation("normal", 7))
		require.NoError(t, p.Link())
		assert.Equal(t, 0, drv.Count("BindAttribLocation"))
		assert.Equal(t, 3, p.AttribLocation("normal"))
	})
	t.Run("invalid", func(t *testing.T) {
		drv := fakegl.New(driver.AllCaps)
		p := newProgram(t, drv)
		requireArgError(t, p.SetAttribLocation("", 1))
		requireArgError(t, p.SetAttribLocation("gl_Vertex", 1))
		requireArgError(t, p.SetAttribLocation("uv", -1))
		assert.Equal(t, -1, p.AttribLocation("uv"))
	})
}

func TestAttribSemantic(t *testing.T) {
	drv := fakegl.New(driver.AllCaps)
	p := newProgram(t, drv)
	require.NoError(t, p.SetAttribSemantic("position", Position))
	require.NoError(t, p.SetAttribSemantic("uv", TexCoord))
	requireArgError(t, p.SetAttribSemantic("", Normal))

	assert.Equal(t, Position, p.AttribSemantic("position"))
	assert.Equal(t, SemanticNone, p.AttribSemantic("normal"))
	name, ok := p.AttribBySemantic(TexCoord)
	assert.True(t, ok)
	assert.Equal(t, "uv", name)
	_, ok = p.AttribBySemantic(Normal)
	assert.False(t, ok)

	require.NoError(t, p.SetAttribSemantic("uv", SemanticNone))
	_, ok = p.AttribBySemantic(TexCoord)
	assert.False(t, ok)

	s, err := ParseSemantic("TexCoord")
	require.NoError(t, err)
	assert.Equal(t, TexCoord, s)
	_, err = ParseSemantic("nope")
	requireArgError(t, err)
}

func TestFragLocation(t *testing.T) {
	drv := fakegl.New(driver.AllCaps)
	p := newProgram(t, drv)

	n := len(drv.Calls())
	requireArgError(t, p.SetFragLocation("gl_FragColor", 0))
	requireArgError(t, p.SetFragLocation("", 0))
	requireArgError(t, p.SetFragLocation("fragColor", -2))
	assert.Len(t, drv.Calls(), n, "no driver call on invalid arguments")

	require.NoError(t, p.SetFragLocation("fragColor", 1))
	require.NoError(t, p.Link())
	assert.Equal(t, 1, p.FragLocation("fragColor"))
	assert.Equal(t, -1, p.FragLocation("other"))
	assert.Less(t, drv.Index("BindFragDataLocation"), drv.Index("LinkProgram"))
	assert.Less(t, drv.Index("LinkProgram"), drv.Index("GetFragDataLocation"))
}

func TestUniforms(t *testing.T) {
	drv := fakegl.New(driver.AllCaps)
	p, err := New(drv, "blocks", nil)
	require.NoError(t, err)
	require.NoError(t, p.Attach(newShader(t, drv, Vertex, "v", vertexSrc+`
uniform Lights {
	vec4 color;
} lights;
layout(std430) buffer Particles {
	vec4 pos[];
};
uniform vec4 tint[4];
`)))
	require.NoError(t, p.Attach(newShader(t, drv, Fragment, "f", fragmentSrc)))
	require.NoError(t, p.Link())

	assert.Equal(t, []string{"alpha", "mvp", "tex", "tint"}, p.Uniforms())
	u, ok := p.Uniform("tint")
	require.True(t, ok)
	assert.Equal(t, driver.FLOAT_VEC4, u.Type)
	assert.Equal(t, 4, u.Size)
	assert.Equal(t, []string{"Lights"}, p.UniformBlocks())
	assert.Equal(t, []string{"Particles"}, p.StorageBlocks())

	// no storage block query without program interface queries
	drv = fakegl.New(driver.AllCaps &^ driver.CapProgramInterfaceQuery)
	p, err = New(drv, "blocks", nil)
	require.NoError(t, err)
	require.NoError(t, p.Attach(newShader(t, drv, Vertex, "v", vertexSrc+"buffer Particles {\n vec4 pos[];\n};\n")))
	require.NoError(t, p.Link())
	assert.Empty(t, p.StorageBlocks())
}

func TestUniformBackend(t *testing.T) {
	t.Run("separate", func(t *testing.T) {
		drv := fakegl.New(driver.AllCaps)
		p := newProgram(t, drv)
		require.NoError(t, p.Link())
		assert.Equal(t, BackendSeparate, p.Backend())

		require.NoError(t, p.SetUniform1f("alpha", 0.5))
		u, _ := p.Uniform("alpha")
		assert.Equal(t, float32(0.5), drv.UniformValue(p.NativeID(), u.Location))
		assert.Equal(t, 1, drv.Count("ProgramUniform1f"))
		assert.Equal(t, 0, drv.Count("UseProgram"))
	})
	t.Run("compatible", func(t *testing.T) {
		drv := fakegl.New(driver.AllCaps &^ driver.CapSeparateShaderObjects)
		p := newProgram(t, drv)
		require.NoError(t, p.Link())
		assert.Equal(t, BackendCompatible, p.Backend())

		m := [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
		require.NoError(t, p.SetUniformMatrix4f("mvp", &m))
		require.NoError(t, p.SetUniform4f("nope", [4]float32{1, 2, 3, 4}))
		u, _ := p.Uniform("mvp")
		assert.Equal(t, m, drv.UniformValue(p.NativeID(), u.Location))
		assert.Equal(t, 0, drv.Count("ProgramUniformMatrix4fv"))
		assert.Equal(t, 0, drv.Count("Uniform4f"))
		assert.Less(t, drv.LastIndex("UseProgram"), drv.LastIndex("UniformMatrix4fv"))
		assert.Equal(t, p.NativeID(), drv.Current())
	})
	t.Run("unlinked", func(t *testing.T) {
		drv := fakegl.New(driver.AllCaps)
		p := newProgram(t, drv)
		err := p.SetUniform1i("tex", 0)
		assert.Equal(t, ErrNotLinked, errors.Cause(err))
		requireArgError(t, p.SetUniformMatrix4f("mvp", nil))
	})
}

func TestShaderVersion(t *testing.T) {
	drv := fakegl.New(driver.AllCaps)
	s := newShader(t, drv, Vertex, "v", vertexSrc)
	require.NoError(t, s.Compile(nil))
	assert.True(t, s.Compiled())
	assert.Equal(t, "#version "+DefaultVersion+"\n"+vertexSrc, drv.Source(s.NativeID()))

	c := newShader(t, drv, Compute, "c", computeSrc)
	require.NoError(t, c.Compile(nil))
	assert.Equal(t, computeSrc, drv.Source(c.NativeID()))

	s.SetSource("// header\n\n#version 100\nvoid main() {}\n")
	assert.False(t, s.Compiled())
	require.NoError(t, s.Compile(NewParams(GLSLVersion("300 es"))))
	assert.Equal(t, s.Source(), drv.Source(s.NativeID()))

	id := s.NativeID()
	s.Delete()
	assert.True(t, drv.ShaderDeleted(id))
	assert.Error(t, s.Compile(nil))
}

func TestParseStage(t *testing.T) {
	for name, want := range map[string]Stage{
		"vert":     Vertex,
		"fragment": Fragment,
		"COMP":     Compute,
		"geom":     Geometry,
		"tesc":     TessControl,
		"tese":     TessEvaluation,
	} {
		got, err := ParseStage(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err := ParseStage("pixel")
	requireArgError(t, err)
	assert.Equal(t, "compute", Compute.String())

	_, err = NewShader(fakegl.New(0), Stage(42), "bad", "")
	requireArgError(t, err)
}

func TestBinary(t *testing.T) {
	drv := fakegl.New(driver.AllCaps)
	p := newProgram(t, drv)
	_, _, err := p.Binary()
	assert.Equal(t, ErrNotLinked, errors.Cause(err))
	require.NoError(t, p.Link())

	bin, format, err := p.Binary()
	require.NoError(t, err)
	assert.Equal(t, fakegl.BinaryFormat, format)

	q, err := NewFromBinary(drv, "cached", bin, format)
	require.NoError(t, err)
	requireArgError(t, q.Attach(p.Shaders()[0]))
	require.NoError(t, q.Link())
	assert.True(t, q.IsLinked())
	assert.Equal(t, p.ActiveAttributes(), q.ActiveAttributes())
	assert.Equal(t, 2, drv.Count("CompileShader"), "no compilation for binaries")

	// the binary is consumed by the first load
	err = q.Link()
	require.Error(t, err)
	require.NoError(t, q.LoadBinary(bin, format))
	assert.Equal(t, p.Uniforms(), q.Uniforms())

	requireArgError(t, p.LoadBinary(bin, format))
	_, err = NewFromBinary(drv, "empty", nil, format)
	requireArgError(t, err)
}

func TestBinaryCopyBindings(t *testing.T) {
	drv := fakegl.New(driver.AllCaps)
	p := newProgram(t, drv)
	p.SetParams(NewParams(GLSLVersion("410 core"), Feedback(SeparateAttribs)))
	require.NoError(t, p.AddFeedbackVarying("outColor"))
	require.NoError(t, p.SetFragLocation("fragColor", 1))
	require.NoError(t, p.SetAttribLocation("uv", 2))
	require.NoError(t, p.SetAttribSemantic("position", Position))
	require.NoError(t, p.Link())
	bin, format, err := p.Binary()
	require.NoError(t, err)

	bare, err := NewFromBinary(drv, "bare", bin, format)
	require.NoError(t, err)
	require.NoError(t, bare.Link())
	assert.Empty(t, bare.ActiveFeedback(), "feedback varyings are not part of the binary")

	q, err := NewFromBinary(drv, "copy", bin, format)
	require.NoError(t, err)
	q.CopyBindings(p)
	q.CopyBindings(p)
	require.NoError(t, q.Link())
	assert.Equal(t, p.Params(), q.Params())
	assert.Equal(t, []string{"outColor"}, q.FeedbackVaryings())
	assert.Equal(t, p.ActiveFeedback(), q.ActiveFeedback())
	assert.Equal(t, p.FragLocations(), q.FragLocations())
	assert.Equal(t, 1, q.FragLocation("fragColor"))
	assert.Equal(t, p.AttribLocations(), q.AttribLocations())
	assert.Equal(t, p.AttribLocation("uv"), q.AttribLocation("uv"))
	assert.Equal(t, Position, q.AttribSemantic("position"))
}

func TestBinaryLoadNotChecked(t *testing.T) {
	drv := fakegl.New(driver.AllCaps)
	p, err := NewFromBinary(drv, "garbage", []byte("garbage"), fakegl.BinaryFormat)
	require.NoError(t, err)
	require.NoError(t, p.Link())
	assert.True(t, p.IsLinked())
	assert.Empty(t, p.ActiveAttributes())
	for _, c := range drv.Find("GetProgrami") {
		assert.NotEqual(t, driver.LINK_STATUS, c.Args[1])
	}
}

func TestBinaryNotSupported(t *testing.T) {
	drv := fakegl.New(driver.AllCaps &^ driver.CapProgramBinary)
	p := newProgram(t, drv)
	require.NoError(t, p.Link())
	_, _, err := p.Binary()
	_, ok := errors.Cause(err).(*NotSupportedError)
	assert.True(t, ok, "%T", err)

	q, err := NewFromBinary(drv, "q", []byte("x"), 1)
	require.NoError(t, err)
	_, ok = errors.Cause(q.Link()).(*NotSupportedError)
	assert.True(t, ok)
}

func TestDebug(t *testing.T) {
	Debug = true
	defer func() { Debug = false }()

	drv := fakegl.New(driver.AllCaps)
	p := newProgram(t, drv)
	require.NoError(t, p.Link())
	assert.Equal(t, 1, drv.Count("ValidateProgram"))

	drv.FailValidation = true
	p.SetParams(NewParams(GLSLVersion("450 core")))
	err := p.Link()
	_, ok := errors.Cause(err).(*ValidationError)
	assert.True(t, ok, "%T", err)

	drv.AttachShader(p.NativeID(), p.Shaders()[0].NativeID())
	assert.Panics(t, func() { _ = p.Link() })
}

func TestUseAndDelete(t *testing.T) {
	drv := fakegl.New(driver.AllCaps)
	p := newProgram(t, drv)
	assert.Equal(t, ErrNotLinked, errors.Cause(p.Use()))
	require.NoError(t, p.Link())
	require.NoError(t, p.Use())
	assert.Equal(t, p.NativeID(), drv.Current())

	id := p.NativeID()
	p.Delete()
	assert.True(t, drv.ProgramDeleted(id))
	assert.False(t, p.IsLinked())
	assert.Error(t, p.Link())
	for _, s := range p.Shaders() {
		assert.False(t, drv.ShaderDeleted(s.NativeID()), "shaders are borrowed")
	}
}

package glprog

import (
	"testing"

	"github.com/db47h/glprog/driver"
	"github.com/db47h/glprog/internal/fakegl"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

const vertexSrc = `
in vec4 position;
in vec2 uv;
layout(location = 3) in vec3 normal;
out vec4 outColor;
uniform mat4 mvp;

void main()
{
	gl_Position = mvp * position;
	outColor = vec4(uv, normal.x, 1.0);
}
`

const fragmentSrc = `
in vec4 outColor;
out vec4 fragColor;
uniform sampler2D tex;
uniform float alpha;

void main()
{
	fragColor = outColor * texture(tex, vec2(0)) * alpha;
}
`

const computeSrc = `#version 430 core
layout(local_size_x = 8, local_size_y = 8) in;
layout(rgba8) readonly uniform image2D src;
layout(r32f) writeonly uniform image2D dst;

void main()
{
	imageStore(dst, ivec2(gl_GlobalInvocationID.xy), imageLoad(src, ivec2(gl_GlobalInvocationID.xy)));
}
`

func newShader(t *testing.T, drv driver.Driver, stage Stage, name, src string) *Shader {
	t.Helper()
	s, err := NewShader(drv, stage, name, src)
	require.NoError(t, err)
	return s
}

// newProgram returns an unlinked program with a vertex and a fragment shader
// attached.
//
func newProgram(t *testing.T, drv driver.Driver) *Program {
	t.Helper()
	p, err := New(drv, "test", nil)
	require.NoError(t, err)
	require.NoError(t, p.Attach(newShader(t, drv, Vertex, "test.vert", vertexSrc)))
	require.NoError(t, p.Attach(newShader(t, drv, Fragment, "test.frag", fragmentSrc)))
	return p
}

func newComputeProgram(t *testing.T, drv driver.Driver) *Program {
	t.Helper()
	p, err := New(drv, "compute", NewParams(GLSLVersion("430 core")))
	require.NoError(t, err)
	require.NoError(t, p.Attach(newShader(t, drv, Compute, "test.comp", computeSrc)))
	require.NoError(t, p.Link())
	return p
}

func requireArgError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	_, ok := errors.Cause(err).(*ArgumentError)
	require.True(t, ok, "expected *ArgumentError, got %T: %v", errors.Cause(err), err)
}

func callArgs(t *testing.T, drv *fakegl.Driver, name string) [][]interface{} {
	t.Helper()
	var args [][]interface{}
	for _, c := range drv.Find(name) {
		args = append(args, c.Args)
	}
	return args
}

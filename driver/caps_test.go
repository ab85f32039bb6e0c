package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectCaps(t *testing.T) {
	for _, tc := range []struct {
		major, minor int
		exts         []string
		want         Caps
	}{
		{2, 1, nil, 0},
		{2, 1, []string{"GL_NV_transform_feedback", "GL_ARB_get_program_binary", "GL_KHR_debug"}, CapTransformFeedbackNV | CapProgramBinary},
		{3, 0, nil, CapTransformFeedback | CapFragDataLocation},
		{3, 3, nil, CapTransformFeedback | CapFragDataLocation | CapExplicitAttribLocation},
		{4, 1, nil, CapTransformFeedback | CapFragDataLocation | CapExplicitAttribLocation | CapSeparateShaderObjects | CapProgramBinary},
		{4, 2, []string{"GL_ARB_compute_shader"}, AllCaps &^ (CapTransformFeedbackNV | CapProgramInterfaceQuery)},
		{4, 6, []string{"GL_NV_transform_feedback"}, AllCaps},
	} {
		assert.Equal(t, tc.want, DetectCaps(tc.major, tc.minor, tc.exts), "%d.%d %v", tc.major, tc.minor, tc.exts)
	}
}

func TestCaps(t *testing.T) {
	c := CapCompute | CapImageLoadStore
	assert.True(t, c.Has(CapCompute))
	assert.True(t, c.Has(CapCompute|CapImageLoadStore))
	assert.False(t, c.Has(CapCompute|CapProgramBinary))
	assert.True(t, c.Any(CapCompute|CapProgramBinary))
	assert.False(t, c.Any(CapProgramBinary))
	assert.Equal(t, "Compute|ImageLoadStore", c.String())
	assert.Equal(t, "none", Caps(0).String())
}

func TestValid(t *testing.T) {
	assert.False(t, Program(0).Valid())
	assert.True(t, Shader(3).Valid())
}

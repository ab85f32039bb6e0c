package glprog

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/db47h/glprog/driver"
	"github.com/db47h/glprog/internal/fakegl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndentLog(t *testing.T) {
	for _, tc := range []struct{ in, want string }{
		{"", "    (no log)"},
		{"\x00", "    (no log)"},
		{"one line", "    one line"},
		{"0:1: error\r\n0:2: warning\n\n", "    0:1: error\n    0:2: warning"},
		{"a\n\nb\x00", "    a\n    \n    b"},
	} {
		assert.Equal(t, tc.want, indentLog(tc.in), "%q", tc.in)
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "<unnamed>", displayName(""))
	assert.Equal(t, "link program p:\n    log", (&LinkError{Program: "p", Log: "    log"}).Error())
	assert.Equal(t, "invalid argument x: bad value 3", argError("x", "bad value %d", 3).Error())
	assert.Equal(t, "get program binary: not supported by driver", (&NotSupportedError{Op: "get program binary"}).Error())
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	drv := fakegl.New(driver.AllCaps)
	p, err := New(drv, "", nil)
	require.NoError(t, err)
	require.NoError(t, p.Attach(newShader(t, drv, Vertex, "v", "// link-error: nope\n")))
	require.Error(t, p.Link())
	assert.Contains(t, buf.String(), "program link failed")
	assert.Contains(t, buf.String(), "program=<unnamed>")

	buf.Reset()
	SetLogger(nil)
	require.Error(t, p.Link())
	assert.Empty(t, buf.String())
}

package app

import (
	"fmt"

	"github.com/db47h/glprog/driver"
	"github.com/db47h/glprog/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"
)

// A Context is an OpenGL context backed by a, usually hidden, GLFW window.
//
type Context struct {
	win *glfw.Window
	drv *gl.Driver
}

// New initializes GLFW and creates a new context, made current on the calling
// thread.
//
func New(opts ...Option) (*Context, error) {
	cfg := newConfig(opts)
	if err := glfw.Init(); err != nil {
		return nil, errors.Wrap(err, "init GLFW")
	}

	var (
		w   *glfw.Window
		err error
	)
	for _, v := range cfg.versions() {
		w, err = createWindow(&cfg, v[0], v[1])
		if err == nil {
			break
		}
	}
	if err != nil {
		glfw.Terminate()
		return nil, errors.Wrap(err, "create OpenGL context")
	}

	w.MakeContextCurrent()
	drv, err := gl.New(glfw.GetProcAddress)
	if err != nil {
		w.Destroy()
		glfw.Terminate()
		return nil, err
	}
	return &Context{win: w, drv: drv}, nil
}

func createWindow(cfg *ctxCfg, major, minor int) (*glfw.Window, error) {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, major)
	glfw.WindowHint(glfw.ContextVersionMinor, minor)
	if major*10+minor >= 32 {
		if cfg.compat {
			glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCompatProfile)
		} else {
			glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
			glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
		}
	}
	if cfg.debug {
		glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	}
	if cfg.hidden {
		glfw.WindowHint(glfw.Visible, glfw.False)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.True)
	}
	return glfw.CreateWindow(cfg.w, cfg.h, cfg.title, nil, nil)
}

// Driver returns the driver for the context.
//
func (c *Context) Driver() *gl.Driver { return c.drv }

// ProcessEvents polls window events and reports whether the window has been
// closed.
//
func (c *Context) ProcessEvents() (quit bool) {
	glfw.PollEvents()
	return c.win.ShouldClose()
}

// Close requests the context's window to close. The next call to
// ProcessEvents returns true.
//
func (c *Context) Close() {
	c.win.SetShouldClose(true)
}

// Destroy destroys the context and terminates GLFW.
//
func (c *Context) Destroy() {
	c.win.Destroy()
	glfw.Terminate()
}

// String describes the context and its capabilities.
//
func (c *Context) String() string {
	major, minor := c.drv.Version()
	return fmt.Sprintf("GLFW %s - OpenGL %d.%d - %s - caps: %v",
		glfw.GetVersionString(), major, minor, gl.GetGoString(driver.RENDERER), c.drv.Caps())
}

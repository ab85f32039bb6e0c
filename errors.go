package glprog

import (
	"bufio"
	"strings"

	"github.com/pkg/errors"
)

// MaxInfoLogLength is the maximum length of the shader and program info logs
// retrieved from the driver.
//
const MaxInfoLogLength = 8192

const logIndent = "    "

// ErrNotLinked is returned by operations that require a linked program.
//
var ErrNotLinked = errors.New("program not linked")

// LinkError is returned by Link when the driver fails to link a program.
//
type LinkError struct {
	Program string // program name
	Log     string // driver info log, indented
}

func (e *LinkError) Error() string {
	return "link program " + e.Program + ":\n" + e.Log
}

// CompileError is returned by Shader.Compile or Program.Link when the
// driver fails to compile a shader.
//
type CompileError struct {
	Shader string
	Log    string
}

func (e *CompileError) Error() string {
	return "compile shader " + e.Shader + ":\n" + e.Log
}

// UnsupportedFeatureError is returned when a requested feature needs a driver
// capability that is not available. The object remains usable.
//
type UnsupportedFeatureError struct {
	Feature string
}

func (e *UnsupportedFeatureError) Error() string {
	return "unsupported feature: " + e.Feature
}

// NotSupportedError is returned when an operation is not supported by the
// driver, like retrieving a program binary.
//
type NotSupportedError struct {
	Op string
}

func (e *NotSupportedError) Error() string {
	return e.Op + ": not supported by driver"
}

// ArgumentError reports caller misuse: invalid names, invalid sizes or
// duplicate attachments.
//
type ArgumentError struct {
	Arg string
	Msg string
}

func (e *ArgumentError) Error() string {
	return "invalid argument " + e.Arg + ": " + e.Msg
}

func argError(arg, format string, args ...interface{}) error {
	return errors.WithStack(&ArgumentError{Arg: arg, Msg: errors.Errorf(format, args...).Error()})
}

// ValidationError is returned by Validate in debug mode.
//
type ValidationError struct {
	Program string
	Log     string
}

func (e *ValidationError) Error() string {
	return "validate program " + e.Program + ":\n" + e.Log
}

// indentLog trims the driver log and prefixes each line with logIndent.
//
func indentLog(log string) string {
	log = strings.TrimRight(log, "\x00 \t\r\n")
	if log == "" {
		return logIndent + "(no log)"
	}
	var sb strings.Builder
	s := bufio.NewScanner(strings.NewReader(log))
	for s.Scan() {
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(logIndent)
		sb.WriteString(strings.TrimRight(s.Text(), "\r"))
	}
	return sb.String()
}

func displayName(name string) string {
	if name == "" {
		return "<unnamed>"
	}
	return name
}

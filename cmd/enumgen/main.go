// Command enumgen generates Go constants for a selected list of OpenGL enums
// from the Khronos gl.xml registry.
//
//	enumgen -i gl.xml -n enums.txt -p driver -o enums.go
//
// The names file lists one enum per line, with its GL_ prefix. Blank lines and
// lines starting with # are ignored.
//
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"io"
	"io/ioutil"
	"os"
	"strings"
	"text/template"

	"github.com/pkg/errors"
)

var (
	api     string
	version Version
	profile string
)

func main() {
	var (
		out   string
		in    string
		names string
		pkg   string
	)

	flag.StringVar(&api, "api", "gl", "api to generate: gl, gles1 or gles2")
	flag.Var(&version, "v", "api version (default 1.0 for gles1, 2.0 for gles2, 4.6 for gl)")
	flag.StringVar(&profile, "profile", "core", "default profile")
	flag.StringVar(&out, "o", "", "output `filename` (default stdout)")
	flag.StringVar(&in, "i", "gl.xml", "input `filename`")
	flag.StringVar(&names, "n", "enums.txt", "`filename` of the list of enums to generate")
	flag.StringVar(&pkg, "p", "driver", "package `name`")

	flag.Parse()

	switch api {
	case "gles1", "gles2", "gl":
	default:
		fatal(errors.Errorf("invalid api %q", api))
	}

	if version.Major == 0 && version.Minor == 0 {
		switch api {
		case "gles1":
			version.Set("1.0")
		case "gles2":
			version.Set("2.0")
		case "gl":
			version.Set("4.6")
		}
	}

	want, err := readNames(names)
	if err != nil {
		fatal(err)
	}

	x, err := os.Open(in)
	if err != nil {
		fatal(err)
	}
	r, err := decodeRegistry(x)
	x.Close()
	if err != nil {
		fatal(errors.Wrap(err, in))
	}

	enums, err := r.Select(want)
	if err != nil {
		fatal(err)
	}

	src, err := generate(pkg, strings.Join(os.Args[1:], " "), enums)
	if err != nil {
		fatal(err)
	}
	if out == "" {
		os.Stdout.Write(src)
		return
	}
	if err = ioutil.WriteFile(out, src, 0644); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "enumgen:", err)
	os.Exit(1)
}

func readNames(name string) ([]string, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseNames(f)
}

func parseNames(r io.Reader) ([]string, error) {
	var names []string
	s := bufio.NewScanner(r)
	for s.Scan() {
		l := strings.TrimSpace(s.Text())
		if l == "" || l[0] == '#' {
			continue
		}
		names = append(names, l)
	}
	return names, s.Err()
}

var tmpl = template.Must(template.New("enums").Parse(`// Code generated by enumgen {{.Args}}; DO NOT EDIT.

package {{.Package}}

// OpenGL enums used by glprog.
const (
{{- range .Enums}}
	{{.GoName}} Enum = {{.Value}}
{{- end}}
)
`))

func generate(pkg, args string, enums []Enum) ([]byte, error) {
	var buf bytes.Buffer
	err := tmpl.Execute(&buf, struct {
		Package string
		Args    string
		Enums   []Enum
	}{pkg, args, enums})
	if err != nil {
		return nil, err
	}
	return format.Source(buf.Bytes())
}

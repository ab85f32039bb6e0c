package fakegl

import (
	"strconv"
	"strings"

	"github.com/db47h/glprog/driver"
)

// decl is a global variable or block declaration found in a shader source.
//
type decl struct {
	qual     string // in, out, uniform, buffer
	typ      string
	name     string
	size     int
	location int // explicit layout location or -1
	block    bool
}

var types = map[string]driver.Enum{
	"float":        driver.FLOAT,
	"vec2":         driver.FLOAT_VEC2,
	"vec3":         driver.FLOAT_VEC3,
	"vec4":         driver.FLOAT_VEC4,
	"int":          driver.INT,
	"ivec2":        driver.INT_VEC2,
	"ivec3":        driver.INT_VEC3,
	"ivec4":        driver.INT_VEC4,
	"bool":         driver.BOOL,
	"mat2":         driver.FLOAT_MAT2,
	"mat3":         driver.FLOAT_MAT3,
	"mat4":         driver.FLOAT_MAT4,
	"sampler2D":    driver.SAMPLER_2D,
	"sampler3D":    driver.SAMPLER_3D,
	"samplerCube":  driver.SAMPLER_CUBE,
	"image2D":      driver.IMAGE_2D,
	"image3D":      driver.IMAGE_3D,
	"imageCube":    driver.IMAGE_CUBE,
	"image2DArray": driver.IMAGE_2D_ARRAY,
}

// TypeOf returns the GL type of a GLSL type name, or 0 if unknown.
//
func TypeOf(glslType string) driver.Enum {
	return types[glslType]
}

// parse scans src for global declarations of the form:
//
//	[layout(...)] [qualifiers] (in|out|attribute|varying|uniform|buffer) type name[N];
//	[layout(...)] (uniform|buffer) Name {
//
// It is by no means a GLSL parser, just enough to drive tests.
//
func parse(src string) []decl {
	var ds []decl
	depth := 0
	for _, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if i := strings.Index(line, "//"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if line == "" || line[0] == '#' {
			continue
		}
		opens, closes := strings.Count(line, "{"), strings.Count(line, "}")
		if depth > 0 {
			depth += opens - closes
			continue
		}
		loc := -1
		if strings.HasPrefix(line, "layout") {
			end := strings.IndexByte(line, ')')
			if end < 0 {
				continue
			}
			loc = layoutLocation(line[:end])
			line = strings.TrimSpace(line[end+1:])
		}
		f := strings.Fields(strings.TrimSuffix(strings.TrimSpace(strings.TrimSuffix(line, "{")), ";"))
		for len(f) > 0 && isModifier(f[0]) {
			f = f[1:]
		}
		depth += opens - closes
		if len(f) < 2 {
			continue
		}
		qual := f[0]
		switch qual {
		case "attribute":
			qual = "in"
		case "varying":
			qual = "out"
		case "in", "out", "uniform", "buffer":
		default:
			continue
		}
		if opens > 0 && len(f) == 2 {
			ds = append(ds, decl{qual: qual, name: f[1], size: 1, location: loc, block: true})
			continue
		}
		if len(f) < 3 {
			continue
		}
		name, size := arrayName(f[2])
		ds = append(ds, decl{qual: qual, typ: f[1], name: name, size: size, location: loc})
	}
	return ds
}

func isModifier(s string) bool {
	switch s {
	case "flat", "smooth", "noperspective", "centroid", "highp", "mediump", "lowp",
		"readonly", "writeonly", "coherent", "volatile", "restrict":
		return true
	}
	return false
}

func layoutLocation(layout string) int {
	i := strings.Index(layout, "location")
	if i < 0 {
		return -1
	}
	s := strings.TrimLeft(layout[i+len("location"):], " =")
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return -1
	}
	return n
}

func arrayName(s string) (string, int) {
	i := strings.IndexByte(s, '[')
	if i < 0 {
		return s, 1
	}
	n, err := strconv.Atoi(strings.TrimSuffix(s[i+1:], "]"))
	if err != nil || n < 1 {
		n = 1
	}
	return s[:i], n
}

// directives returns the arguments of every "// name: arg" comment in src.
//
func directives(src, name string) []string {
	var args []string
	tag := "// " + name + ":"
	for _, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, tag) {
			args = append(args, strings.TrimSpace(line[len(tag):]))
		}
	}
	return args
}

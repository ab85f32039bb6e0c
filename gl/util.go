package gl

import (
	"strings"
	"unsafe"

	"github.com/db47h/glprog/driver"
	gogl "github.com/go-gl/gl/v4.6-compatibility/gl"
)

// GetGoString is a wrapper around GetString that returns a Go string.
//
func GetGoString(name driver.Enum) string {
	p := gogl.GetString(uint32(name))
	if p == nil {
		return ""
	}
	return gogl.GoStr(p)
}

// GetGoStringi is a wrapper around GetStringi that returns a Go string.
//
func GetGoStringi(name driver.Enum, index int) string {
	p := gogl.GetStringi(uint32(name), uint32(index))
	if p == nil {
		return ""
	}
	return gogl.GoStr(p)
}

// cstr returns a null terminated copy of s. The returned pointer is only valid
// as long as the returned string is reachable.
//
func cstr(s string) (*uint8, string) {
	if !strings.HasSuffix(s, "\x00") {
		s += "\x00"
	}
	return gogl.Str(s), s
}

// nameBuffer returns a buffer suitable to receive a resource name of at most
// bufSize bytes including the null terminator.
//
func nameBuffer(bufSize int) []uint8 {
	if bufSize < 1 {
		bufSize = 1
	}
	return make([]uint8, bufSize)
}

func goString(buf []uint8, length int32) string {
	if length <= 0 {
		return ""
	}
	if int(length) > len(buf) {
		length = int32(len(buf))
	}
	return string(buf[:length])
}

func pixPtr(pix []byte) unsafe.Pointer {
	if len(pix) == 0 {
		return nil
	}
	return gogl.Ptr(pix)
}

// cstrings implements driver.Strings over a C array of C strings.
//
type cstrings struct {
	ptr  **uint8
	n    int
	free func()
}

func (s *cstrings) Len() int { return s.n }

func (s *cstrings) Release() {
	if s.free != nil {
		s.free()
		s.free = nil
		s.ptr = nil
	}
}

func newStrings(names []string) *cstrings {
	zs := make([]string, len(names))
	for i, n := range names {
		zs[i] = n + "\x00"
	}
	ptr, free := gogl.Strs(zs...)
	return &cstrings{ptr: ptr, n: len(names), free: free}
}

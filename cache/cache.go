// Package cache stores program binaries on an afero file system, keyed by a
// hash of everything that affects the result of a link.
//
package cache

import (
	"encoding/binary"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/db47h/glprog"
	"github.com/db47h/glprog/driver"
	"github.com/golang/snappy"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// ErrMiss is returned by Get when no binary is cached for a key.
//
var ErrMiss = errors.New("not in cache")

const (
	magic = "GLPB"
	// bump when the key derivation changes
	keyVersion = "1"
)

// A Key identifies a cached program binary.
//
type Key uint64

func (k Key) String() string {
	return fmt.Sprintf("%016x", uint64(k))
}

// A Cache stores program binaries for a single renderer.
//
type Cache struct {
	fs       afero.Fs
	renderer string
}

// New returns a cache storing binaries in fs for the given renderer, usually
// driver.Driver.Renderer().
//
func New(fs afero.Fs, renderer string) *Cache {
	return &Cache{fs: fs, renderer: renderer}
}

// Key returns the cache key for p in its current, unlinked, state: shader
// stages and sources, link parameters, requested attribute and fragment
// locations and feedback varyings.
//
func (c *Cache) Key(p *glprog.Program) Key {
	h := xxhash.New()
	field := func(s string) {
		h.WriteString(s)
		h.Write([]byte{0})
	}
	field(keyVersion)
	field(c.renderer)
	params := p.Params()
	field(params.Version)
	field(params.Feedback.String())
	for _, s := range p.Shaders() {
		field(s.Stage().String())
		field(s.Source())
	}
	for _, v := range p.FeedbackVaryings() {
		field(v)
	}
	field("")
	for _, m := range []map[string]int{p.AttribLocations(), p.FragLocations()} {
		names := make([]string, 0, len(m))
		for n := range m {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			field(n)
			field(strconv.Itoa(m[n]))
		}
		field("")
	}
	return Key(h.Sum64())
}

func (c *Cache) path(k Key) string {
	return k.String() + ".bin"
}

// Get returns the cached binary for k and its format.
//
func (c *Cache) Get(k Key) ([]byte, driver.Enum, error) {
	data, err := afero.ReadFile(c.fs, c.path(k))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, ErrMiss
		}
		return nil, 0, errors.Wrapf(err, "read cache entry %v", k)
	}
	data, err = snappy.Decode(nil, data)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "decode cache entry %v", k)
	}
	if len(data) <= len(magic)+4 || string(data[:len(magic)]) != magic {
		return nil, 0, errors.Errorf("decode cache entry %v: bad header", k)
	}
	format := driver.Enum(binary.LittleEndian.Uint32(data[len(magic):]))
	return data[len(magic)+4:], format, nil
}

// Put stores a binary for k, replacing any previous one.
//
func (c *Cache) Put(k Key, blob []byte, format driver.Enum) error {
	if len(blob) == 0 {
		return errors.Errorf("store cache entry %v: empty binary", k)
	}
	data := make([]byte, len(magic)+4, len(magic)+4+len(blob))
	copy(data, magic)
	binary.LittleEndian.PutUint32(data[len(magic):], uint32(format))
	data = append(data, blob...)
	if err := afero.WriteFile(c.fs, c.path(k), snappy.Encode(nil, data), 0644); err != nil {
		return errors.Wrapf(err, "store cache entry %v", k)
	}
	return nil
}

// Remove deletes the entry for k. Removing a missing entry is not an error.
//
func (c *Cache) Remove(k Key) error {
	if err := c.fs.Remove(c.path(k)); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "remove cache entry %v", k)
	}
	return nil
}

// Link links p, going through the cache when the driver supports program
// binaries.
//
// On a cache hit, Link returns a new program created from the cached binary,
// carrying the bindings of p (see glprog.Program.CopyBindings), and p is left
// untouched. A cached
// binary rejected by the driver is removed and p is linked from source. On a
// miss, p is linked from source, its binary stored, and p itself returned.
//
func (c *Cache) Link(drv driver.Driver, p *glprog.Program) (prog *glprog.Program, hit bool, err error) {
	if !drv.Caps().Has(driver.CapProgramBinary) {
		return p, false, p.Link()
	}
	k := c.Key(p)
	log := glprog.Logger().With("program", p.Name(), "key", k.String())

	blob, format, err := c.Get(k)
	switch {
	case err == nil:
		bp, err := c.load(drv, p, blob, format)
		if err == nil {
			log.Debug("program binary cache hit")
			return bp, true, nil
		}
		log.Warn("cached program binary rejected", "err", err)
		if err := c.Remove(k); err != nil {
			log.Warn("remove cache entry", "err", err)
		}
	case err != ErrMiss:
		log.Warn("program binary cache", "err", err)
	}

	if err := p.Link(); err != nil {
		return p, false, err
	}
	blob, format, err = p.Binary()
	if err != nil {
		log.Warn("get program binary", "err", err)
		return p, false, nil
	}
	if err := c.Put(k, blob, format); err != nil {
		log.Warn("program binary cache", "err", err)
	}
	log.Debug("program binary cache miss")
	return p, false, nil
}

func (c *Cache) load(drv driver.Driver, p *glprog.Program, blob []byte, format driver.Enum) (*glprog.Program, error) {
	bp, err := glprog.NewFromBinary(drv, p.Name(), blob, format)
	if err != nil {
		return nil, err
	}
	bp.CopyBindings(p)
	if err = bp.Link(); err == nil && drv.GetProgrami(bp.NativeID(), driver.LINK_STATUS) == 0 {
		err = errors.New(drv.GetProgramInfoLog(bp.NativeID(), glprog.MaxInfoLogLength))
	}
	if err != nil {
		bp.Delete()
		return nil, err
	}
	return bp, nil
}

// Clear removes all cache entries.
//
func (c *Cache) Clear() error {
	entries, err := afero.Glob(c.fs, "*.bin")
	if err != nil {
		return errors.Wrap(err, "clear cache")
	}
	for _, e := range entries {
		if err := c.fs.Remove(e); err != nil {
			return errors.Wrap(err, "clear cache")
		}
	}
	return nil
}

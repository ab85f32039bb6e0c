package main

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type registry struct {
	All   map[string]string
	Enums map[string]string
}

func (r *registry) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	r.All = make(map[string]string)
	r.Enums = make(map[string]string)

	for {
		t, err := d.Token()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		switch t := t.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "enums":
				if err = r.decodeEnums(d, &t); err != nil {
					return err
				}
			case "feature", "extension":
				if err = r.decodeFeature(d, &t); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name == start.Name {
				return nil
			}
		case xml.CharData:
		case xml.Comment:
		case xml.ProcInst:
		case xml.Directive:
		default:
			return fmt.Errorf("unexpected token type %T", t)
		}
	}
}

// decodeFeature collects the enums required by a feature up to the requested
// version, or by any extension supported by the requested api.
//
func (r *registry) decodeFeature(d *xml.Decoder, start *xml.StartElement) error {
	var ft struct {
		Require []struct {
			Enums []struct {
				Name string `xml:"name,attr"`
			} `xml:"enum"`
		} `xml:"require"`
		Remove []struct {
			Profile string `xml:"profile,attr"`
			Enums   []struct {
				Name string `xml:"name,attr"`
			} `xml:"enum"`
		} `xml:"remove"`
	}
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "api":
			if a.Value != api {
				return d.Skip()
			}
		case "supported":
			if !supported(a.Value) {
				return d.Skip()
			}
		case "number":
			var v Version
			if err := v.Set(a.Value); err != nil {
				return err
			}
			if version.Less(&v) {
				return d.Skip()
			}
		}
	}
	err := d.DecodeElement(&ft, start)
	if err != nil {
		return err
	}
	for _, req := range ft.Require {
		for _, e := range req.Enums {
			v, ok := r.All[e.Name]
			if !ok {
				return fmt.Errorf("unknown enum %s in %s", e.Name, start.Name.Local)
			}
			r.Enums[e.Name] = v
		}
	}
	for i := range ft.Remove {
		if ft.Remove[i].Profile != profile {
			continue
		}
		for _, e := range ft.Remove[i].Enums {
			delete(r.Enums, e.Name)
		}
	}

	return nil
}

func supported(apis string) bool {
	for _, a := range strings.Split(apis, "|") {
		if a == api || (api == "gl" && a == "glcore") {
			return true
		}
	}
	return false
}

func (r *registry) decodeEnums(d *xml.Decoder, start *xml.StartElement) error {
	var es struct {
		Enums []struct {
			Name  string `xml:"name,attr"`
			Value string `xml:"value,attr"`
			API   string `xml:"api,attr"`
		} `xml:"enum"`
	}
	err := d.DecodeElement(&es, start)
	if err != nil {
		return err
	}
	for _, e := range es.Enums {
		if e.API != "" && e.API != api {
			continue
		}
		if _, ok := r.All[e.Name]; ok {
			return fmt.Errorf("duplicate enum %s", e.Name)
		}
		r.All[e.Name] = e.Value
	}
	return nil
}

type Version struct {
	Major int
	Minor int
}

func (v *Version) String() string {
	return strconv.Itoa(v.Major) + "." + strconv.Itoa(v.Minor)
}

func (v *Version) Get() interface{} {
	return *v
}

func (v *Version) Set(s string) error {
	end := strings.IndexRune(s, '.')
	if end < 0 {
		end = len(s)
	}

	n, err := strconv.ParseInt(s[:end], 10, 32)
	if err != nil {
		return err
	}
	v.Major = int(n)
	if end >= len(s) {
		v.Minor = 0
		return nil
	}
	n, err = strconv.ParseInt(s[end+1:], 10, 32)
	if err != nil {
		return err
	}
	v.Minor = int(n)
	return nil
}

func (v *Version) Less(rhs *Version) bool {
	if v.Major == rhs.Major {
		return v.Minor < rhs.Minor
	}
	return v.Major < rhs.Major
}

func decodeRegistry(r io.Reader) (*Registry, error) {
	var reg registry
	d := xml.NewDecoder(r)
	err := d.Decode(&reg)
	if err != nil {
		return nil, err
	}
	return &Registry{API: api, Enums: reg.Enums}, nil
}

// Registry holds the enums available for the requested api and version.
//
type Registry struct {
	API   string
	Enums map[string]string
}

// Select returns the named enums sorted by name. It fails if any of them is
// not available.
//
func (r *Registry) Select(names []string) ([]Enum, error) {
	enums := make([]Enum, 0, len(names))
	for _, n := range names {
		v, ok := r.Enums[n]
		if !ok {
			return nil, errors.Errorf("enum %s not available in %s %s", n, r.API, version.String())
		}
		enums = append(enums, Enum{n, v})
	}
	sort.Slice(enums, func(i, j int) bool { return enums[i].Name < enums[j].Name })
	return enums, nil
}

type Enum struct {
	Name  string
	Value string
}

func (e *Enum) GoName() string {
	if strings.HasPrefix(e.Name, "GL_") {
		return e.Name[3:]
	}
	return e.Name
}

package main

import (
	"sort"

	"github.com/db47h/glprog"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

var errLinkFailed = errors.New("some programs failed to link")

func linkAction(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}
	defer s.close()

	ps, err := s.programs(c.Args().Slice())
	if err != nil {
		return err
	}
	if err := s.preload(ps); err != nil {
		return err
	}

	failed := 0
	for _, p := range ps {
		err := onMain(func() error {
			prog, hit, err := s.build(p)
			if err != nil {
				if prog != nil {
					prog.Delete()
				}
				return err
			}
			report(s.out, prog, hit)
			prog.Delete()
			return nil
		})
		if err != nil {
			reportFailure(s.out, p.Name, err)
			failed++
		}
	}
	if failed > 0 {
		return errors.Wrapf(errLinkFailed, "%d of %d", failed, len(ps))
	}
	return nil
}

// linkedResources returns the active attribute, uniform and feedback varying
// names of p, used to compare programs.
//
func linkedResources(p *glprog.Program) []string {
	r := append(p.ActiveAttributes(), p.Uniforms()...)
	return append(r, p.ActiveFeedback()...)
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

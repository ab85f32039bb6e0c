package main

import (
	"fmt"
	"path/filepath"
	"reflect"

	"github.com/db47h/glprog"
	"github.com/db47h/glprog/driver"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"
)

// binaryName returns the file name of a saved binary. The format is part of
// the name so that the file holds nothing but the driver's blob.
//
func binaryName(program string, format driver.Enum) string {
	return fmt.Sprintf("%s.%04x.glbin", program, uint32(format))
}

func binaryAction(c *cli.Context) error {
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
	out := afero.NewBasePathFs(afero.NewOsFs(), c.String(outFlag.Name))
	if err := out.MkdirAll("/", 0755); err != nil {
		return errors.Wrap(err, "create output directory")
	}
	check := c.Bool(checkFlag.Name)

	failed := 0
	for _, p := range ps {
		err := onMain(func() error {
			prog, _, err := s.build(p)
			if prog != nil {
				defer prog.Delete()
			}
			if err != nil {
				return err
			}
			blob, format, err := prog.Binary()
			if err != nil {
				return err
			}
			name := binaryName(p.Name, format)
			if err := afero.WriteFile(out, name, blob, 0644); err != nil {
				return errors.Wrapf(err, "save binary %s", name)
			}
			fmt.Fprintf(s.out, "%s %s -> %s (%d bytes)\n", okLabel("SAVED"), p.Name, filepath.Join(c.String(outFlag.Name), name), len(blob))
			if check {
				return s.checkBinary(out, name, prog, format)
			}
			return nil
		})
		if err != nil {
			reportFailure(s.out, p.Name, err)
			failed++
		}
	}
	if failed > 0 {
		return errors.Errorf("%d of %d binaries not saved", failed, len(ps))
	}
	return nil
}

// checkBinary reloads a saved binary into a new program and compares its
// active resources with those of the program it was saved from.
//
func (s *session) checkBinary(fs afero.Fs, name string, src *glprog.Program, format driver.Enum) error {
	blob, err := afero.ReadFile(fs, name)
	if err != nil {
		return err
	}
	p, err := glprog.NewFromBinary(s.drv, src.Name(), blob, format)
	if err != nil {
		return err
	}
	defer p.Delete()
	p.CopyBindings(src)
	if err := p.Link(); err != nil {
		return err
	}
	if s.drv.GetProgrami(p.NativeID(), driver.LINK_STATUS) == 0 {
		return errors.Errorf("binary %s rejected by the driver", name)
	}
	if !reflect.DeepEqual(linkedResources(src), linkedResources(p)) {
		return errors.Errorf("binary %s: active resources differ from source program", name)
	}
	fmt.Fprintf(s.out, "%s %s\n", okLabel("CHECKED"), name)
	return nil
}

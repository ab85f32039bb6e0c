package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/db47h/glprog"
	"github.com/db47h/glprog/asset"
	"github.com/db47h/glprog/config"
	"github.com/db47h/glprog/loop"
	"github.com/faiface/mainthread"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// minimum delay between two relinks, also debounces editor writes.
const watchFrameTime = 200 * time.Millisecond

type watched struct {
	cfg   *config.Program
	prog  *glprog.Program
	files []string
}

// watcher relinks programs when their shader files change. It implements
// loop.Updater.
//
type watcher struct {
	s        *session
	fsw      *fsnotify.Watcher
	sig      chan os.Signal
	programs []*watched
	byFile   map[string][]*watched
	dirs     map[string]bool
	dirty    map[*watched]bool
	timer    loop.Timer
}

func watchAction(c *cli.Context) error {
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
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "watch")
	}
	defer fsw.Close()

	w := &watcher{
		s:      s,
		fsw:    fsw,
		sig:    make(chan os.Signal, 1),
		byFile: make(map[string][]*watched),
		dirs:   make(map[string]bool),
		dirty:  make(map[*watched]bool),
	}
	signal.Notify(w.sig, os.Interrupt)
	defer signal.Stop(w.sig)

	for _, p := range ps {
		wp := &watched{cfg: p}
		w.programs = append(w.programs, wp)
		w.dirty[wp] = true
	}
	defer w.release()

	var l loop.Simple
	l.MinFrameTime(watchFrameTime)
	l.Run(w)
	return nil
}

func (w *watcher) ProcessEvents() (quit bool) {
	for {
		select {
		case <-w.sig:
			return true
		case e, ok := <-w.fsw.Events:
			if !ok {
				return true
			}
			if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) && !e.Has(fsnotify.Rename) {
				continue
			}
			for _, wp := range w.byFile[filepath.Clean(e.Name)] {
				glprog.Logger().Debug("shader changed", "file", e.Name, "program", wp.cfg.Name)
				w.dirty[wp] = true
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return true
			}
			glprog.Logger().Warn("watch", "err", err)
		default:
			mainthread.Call(func() { quit = w.s.ctx.ProcessEvents() })
			return quit
		}
	}
}

func (w *watcher) Update() {
	if len(w.dirty) == 0 {
		return
	}
	// drop cached sources first: programs may share shaders
	for wp := range w.dirty {
		for _, name := range wp.cfg.Shaders {
			w.s.assets.Discard(asset.Shader(name))
		}
	}
	for _, wp := range w.programs {
		if w.dirty[wp] {
			w.relink(wp)
		}
	}
	w.dirty = make(map[*watched]bool)
}

func (w *watcher) relink(wp *watched) {
	link := func() error {
		prog, hit, err := w.s.build(wp.cfg)
		if err != nil {
			if prog != nil {
				prog.Delete()
			}
			return err
		}
		if wp.prog != nil {
			wp.prog.Delete()
		}
		wp.prog = prog
		report(w.s.out, prog, hit)
		return nil
	}
	var err error
	w.timer.Time(func() { err = onMain(link) })
	if err != nil {
		reportFailure(w.s.out, wp.cfg.Name, err)
	}
	glprog.Logger().Debug("relink", "program", wp.cfg.Name, "avg", w.timer.Average())
	w.track(wp)
}

// track updates the watched files of wp. Missing sources keep their previous
// files so that fixing them triggers a relink.
//
func (w *watcher) track(wp *watched) {
	files, err := w.s.shaderFiles(wp.cfg)
	if err != nil {
		if wp.files != nil {
			return
		}
		// first build with a missing file: watch the top-level paths
		for _, name := range wp.cfg.Shaders {
			files = append(files, filepath.Join(w.s.shaderDir, filepath.FromSlash(name)))
		}
	}
	for _, f := range wp.files {
		w.byFile[f] = remove(w.byFile[f], wp)
	}
	wp.files = wp.files[:0]
	for _, f := range files {
		f = filepath.Clean(f)
		wp.files = append(wp.files, f)
		w.byFile[f] = append(w.byFile[f], wp)
		dir := filepath.Dir(f)
		if w.dirs[dir] || !exists(dir) {
			continue
		}
		if err := w.fsw.Add(dir); err != nil {
			glprog.Logger().Warn("watch", "dir", dir, "err", err)
			continue
		}
		w.dirs[dir] = true
	}
}

func remove(ws []*watched, wp *watched) []*watched {
	for i, x := range ws {
		if x == wp {
			return append(ws[:i], ws[i+1:]...)
		}
	}
	return ws
}

// Draw does nothing, the context is never displayed.
//
func (w *watcher) Draw() {}

func (w *watcher) release() {
	mainthread.Call(func() {
		for _, wp := range w.programs {
			if wp.prog != nil {
				wp.prog.Delete()
			}
		}
	})
	fmt.Fprintln(w.s.out, faint("watch stopped"))
}

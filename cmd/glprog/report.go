package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/db47h/glprog"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
)

var (
	okLabel     = color.New(color.FgGreen, color.Bold).SprintFunc()
	cachedLabel = color.New(color.FgCyan, color.Bold).SprintFunc()
	failLabel   = color.New(color.FgRed, color.Bold).SprintFunc()
	section     = color.New(color.FgYellow).SprintFunc()
	faint       = color.New(color.Faint).SprintFunc()
)

// reportFailure prints the driver log of a failed link or compile.
//
func reportFailure(w io.Writer, name string, err error) {
	fmt.Fprintf(w, "%s %s\n", failLabel("FAIL"), name)
	var (
		le *glprog.LinkError
		ce *glprog.CompileError
	)
	switch {
	case errors.As(err, &le):
		fmt.Fprintln(w, le.Log)
	case errors.As(err, &ce):
		fmt.Fprintf(w, "    %s\n%s\n", ce.Shader, ce.Log)
	default:
		fmt.Fprintf(w, "    %v\n", err)
	}
}

// report prints the state and active resources of a linked program.
//
func report(w io.Writer, p *glprog.Program, hit bool) {
	label := okLabel("OK")
	if hit {
		label = cachedLabel("CACHED")
	}
	fmt.Fprintf(w, "%s %s %s\n", label, p.Name(), faint(fmt.Sprintf("(%v, %v uniforms)", p.Params().Version, p.Backend())))

	var rows [][]string
	for _, n := range p.ActiveAttributes() {
		a, _ := p.Attribute(n)
		sem := ""
		if s := p.AttribSemantic(n); s != glprog.SemanticNone {
			sem = s.String()
		}
		rows = append(rows, []string{strconv.Itoa(a.Location), glprog.TypeName(a.Type), arrayName(n, a.Size), sem})
	}
	table(w, section("attributes"), rows)

	rows = rows[:0]
	locs := p.FragLocations()
	for _, n := range sortedNames(locs) {
		rows = append(rows, []string{strconv.Itoa(locs[n]), n})
	}
	table(w, section("outputs"), rows)

	rows = rows[:0]
	for _, n := range p.ActiveFeedback() {
		v, _ := p.Feedback(n)
		rows = append(rows, []string{glprog.TypeName(v.Type), arrayName(n, v.Size), fmt.Sprintf("%d components", v.Components())})
	}
	table(w, section("feedback")+" "+faint(p.Params().Feedback), rows)

	rows = rows[:0]
	for _, n := range p.Uniforms() {
		u, _ := p.Uniform(n)
		rows = append(rows, []string{strconv.Itoa(u.Location), glprog.TypeName(u.Type), arrayName(n, u.Size)})
	}
	table(w, section("uniforms"), rows)

	rows = rows[:0]
	for _, n := range p.UniformBlocks() {
		rows = append(rows, []string{n})
	}
	table(w, section("uniform blocks"), rows)

	rows = rows[:0]
	for _, n := range p.StorageBlocks() {
		rows = append(rows, []string{n})
	}
	table(w, section("storage blocks"), rows)
}

// table prints an indented, borderless table of rows under title. Nothing is
// printed for empty rows.
//
func table(w io.Writer, title string, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintf(w, "  %s\n", title)
	t := tablewriter.NewWriter(w)
	t.SetAutoWrapText(false)
	t.SetAutoFormatHeaders(false)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	t.SetBorder(false)
	t.SetHeaderLine(false)
	t.SetCenterSeparator("")
	t.SetColumnSeparator("")
	t.SetRowSeparator("")
	t.SetTablePadding("  ")
	t.SetNoWhiteSpace(true)
	for _, r := range rows {
		t.Append(append([]string{"  "}, r...))
	}
	t.Render()
}

func arrayName(name string, size int) string {
	if size > 1 {
		return fmt.Sprintf("%s[%d]", name, size)
	}
	return name
}

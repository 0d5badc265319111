package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/lguimbarda/min-chain/chain"
	"github.com/lguimbarda/min-chain/chain/core"
	chaincsv "github.com/lguimbarda/min-chain/chain/csv"
	chainio "github.com/lguimbarda/min-chain/chain/io"
	chainjson "github.com/lguimbarda/min-chain/chain/json"
	chainyaml "github.com/lguimbarda/min-chain/chain/yaml"
)

type styles struct {
	header lipgloss.Style
	name   lipgloss.Style
	value  lipgloss.Style
	dim    lipgloss.Style
	err    lipgloss.Style
}

// newStyles returns the styles for w. Colors are only emitted when w is a
// terminal and color is not turned off.
func newStyles(w io.Writer, noColor bool) styles {
	r := lipgloss.NewRenderer(w)
	if noColor {
		return styles{
			header: r.NewStyle(),
			name:   r.NewStyle(),
			value:  r.NewStyle(),
			dim:    r.NewStyle(),
			err:    r.NewStyle(),
		}
	}
	return styles{
		header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
		name:   r.NewStyle().Foreground(lipgloss.Color("6")),
		value:  r.NewStyle().Foreground(lipgloss.Color("2")),
		dim:    r.NewStyle().Faint(true),
		err:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
	}
}

func printResult(w io.Writer, result any, cfg *config) error {
	p, isPipeline := result.(chain.Pipeline)
	if !isPipeline {
		if cfg.Output == "lines" {
			_, err := fmt.Fprintln(w, core.Str(result))
			return err
		}
		p = chain.Of(result)
		if cfg.Output == "" || cfg.Output == "repr" {
			st := newStyles(w, cfg.NoColor)
			_, err := fmt.Fprintln(w, st.value.Render(core.Repr(result)))
			return err
		}
	}

	switch cfg.Output {
	case "", "repr":
		st := newStyles(w, cfg.NoColor)
		rows := p.Must()
		_, err := fmt.Fprintf(w, "%s %s\n", st.header.Render("Pipeline :"), st.value.Render(core.Repr(core.List(rows))))
		return err
	case "lines":
		return chainio.WriteTo(w, p)
	case "json":
		return chainjson.Encode(w, p)
	case "yaml":
		return chainyaml.Encode(w, p)
	case "csv":
		return chaincsv.WriteRecordsTo(w, p)
	}
	return fmt.Errorf("unknown output format %q", cfg.Output)
}

func printError(w io.Writer, err error, noColor bool) {
	st := newStyles(w, noColor)
	fmt.Fprintln(w, st.err.Render("error:"), err)
}

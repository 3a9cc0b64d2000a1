package cli

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/dmitrijs2005/cpguide/internal/client/models"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

type palette struct {
	prompt  *color.Color
	info    *color.Color
	success *color.Color
	errors  *color.Color
}

var palettes = map[models.ColorMode]palette{
	models.ColorModeLight: {
		prompt:  color.New(color.FgBlue, color.Bold),
		info:    color.New(color.FgBlack),
		success: color.New(color.FgGreen),
		errors:  color.New(color.FgRed),
	},
	models.ColorModeDark: {
		prompt:  color.New(color.FgHiCyan, color.Bold),
		info:    color.New(color.FgHiWhite),
		success: color.New(color.FgHiGreen),
		errors:  color.New(color.FgHiRed),
	},
}

// Printer writes user-facing output in the colors of the current mode.
type Printer struct {
	out  io.Writer
	mode models.ColorMode
}

func NewPrinter(out io.Writer, mode models.ColorMode) *Printer {
	return &Printer{out: out, mode: mode}
}

func (p *Printer) SetMode(mode models.ColorMode) { p.mode = mode }

func (p *Printer) Mode() models.ColorMode { return p.mode }

func (p *Printer) palette() palette {
	if pl, ok := palettes[p.mode]; ok {
		return pl
	}
	return palettes[models.ColorModeLight]
}

func (p *Printer) Prompt(status string) {
	p.palette().prompt.Fprintf(p.out, "cpg %s> ", status)
}

func (p *Printer) Info(format string, args ...any) {
	p.palette().info.Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) Success(format string, args ...any) {
	p.palette().success.Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) Error(format string, args ...any) {
	p.palette().errors.Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) Print(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// ProgressTable renders one row per topic known from either the completion
// map or the solved index, sorted by topic id.
func (p *Printer) ProgressTable(m models.ProgressMap, idx models.SolvedIndex) {
	topics := make(map[string]struct{}, len(m)+len(idx))
	for id := range m {
		topics[id] = struct{}{}
	}
	for _, st := range idx {
		topics[st.TopicID] = struct{}{}
	}

	ids := make([]string, 0, len(topics))
	for id := range topics {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		done := "no"
		if m.IsCompleted(id) {
			done = "yes"
		}
		rows = append(rows, []string{id, done, strconv.Itoa(len(idx.Problems(id)))})
	}

	table := newTable(p.out)
	table.Header([]string{"Topic", "Completed", "Solved"})
	table.Bulk(rows)
	table.Render()
}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoWrap: tw.WrapNone,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoFormat: tw.On,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{
					ShowHeader: tw.Off,
				},
			},
		}),
	)
}

// printer.go renders the table for the CLI in the plain, colored or YAML layouts.
package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// Formats lists the accepted --output values.
func Formats() []string {
	return []string{FormatText, FormatYAML}
}

// TableSource is what a Printer needs from the table.
type TableSource interface {
	Render(w io.Writer) error
	Slots() [][]int
}

// Printer writes table snapshots in a fixed format.
type Printer struct {
	format string
	color  bool

	slotColor  *color.Color
	emptyColor *color.Color
}

// NewPrinter returns a printer for format; colorize only applies to text output.
func NewPrinter(format string, colorize bool) (*Printer, error) {
	switch format {
	case "", FormatText:
		format = FormatText
	case FormatYAML:
	default:
		return nil, fmt.Errorf("unknown output format %q (expected %s)", format, strings.Join(Formats(), ", "))
	}
	p := &Printer{
		format:     format,
		color:      colorize && format == FormatText,
		slotColor:  color.New(color.FgCyan, color.Bold),
		emptyColor: color.New(color.Faint),
	}
	if p.color {
		p.slotColor.EnableColor()
		p.emptyColor.EnableColor()
	}
	return p, nil
}

// Print writes the current state of src to w.
func (p *Printer) Print(w io.Writer, src TableSource) error {
	switch {
	case p.format == FormatYAML:
		return p.printYAML(w, src.Slots())
	case p.color:
		return p.printColored(w, src.Slots())
	default:
		return src.Render(w)
	}
}

func (p *Printer) printColored(w io.Writer, slots [][]int) error {
	var b strings.Builder
	for i, stack := range slots {
		label := p.slotColor.Sprintf("%d:", i)
		if len(stack) == 0 {
			label = p.emptyColor.Sprintf("%d:", i)
		}
		b.WriteString(label)
		for _, block := range stack {
			b.WriteByte(' ')
			b.WriteString(strconv.Itoa(block))
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

type yamlSlot struct {
	Slot   int   `yaml:"slot"`
	Blocks []int `yaml:"blocks,flow"`
}

type yamlTable struct {
	Slots []yamlSlot `yaml:"slots"`
}

func (p *Printer) printYAML(w io.Writer, slots [][]int) error {
	doc := yamlTable{Slots: make([]yamlSlot, 0, len(slots))}
	for i, stack := range slots {
		if stack == nil {
			stack = []int{}
		}
		doc.Slots = append(doc.Slots, yamlSlot{Slot: i, Blocks: stack})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode table: %w", err)
	}
	return enc.Close()
}

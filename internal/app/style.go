package app

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/coltab/coltab/internal/sample"
	"github.com/coltab/coltab/internal/tui/table"
	"gopkg.in/yaml.v3"
)

// styleFile is the YAML representation of the table styles. Unset fields
// keep their default.
type styleFile struct {
	Border           *bool        `yaml:"border"`
	BorderShape      string       `yaml:"border_shape"`
	BorderColor      string       `yaml:"border_color"`
	Background       string       `yaml:"background"`
	Padding          *int         `yaml:"padding"`
	HeaderBackground string       `yaml:"header_background"`
	CursorBackground string       `yaml:"cursor_background"`
	StripeBackground string       `yaml:"stripe_background"`
	FocusColor       string       `yaml:"focus_color"`
	ColumnDivider    *dividerFile `yaml:"column_divider"`
	HeaderDivider    *dividerFile `yaml:"header_divider"`
	RowDivider       *dividerFile `yaml:"row_divider"`
}

type dividerFile struct {
	Thickness int    `yaml:"thickness"`
	Padding   int    `yaml:"padding"`
	Color     string `yaml:"color"`
}

func (d dividerFile) style(fallback lipgloss.TerminalColor) (table.DividerStyle, error) {
	if d.Thickness < 0 || d.Padding < 0 {
		return table.DividerStyle{}, fmt.Errorf("divider thickness and padding must not be negative: %+v", d)
	}
	return table.DividerStyle{
		Thickness: d.Thickness,
		Padding:   d.Padding,
		Color:     colorOr(d.Color, fallback),
	}, nil
}

var borderShapes = map[string]lipgloss.Border{
	"rounded": lipgloss.RoundedBorder(),
	"normal":  lipgloss.NormalBorder(),
	"thick":   lipgloss.ThickBorder(),
	"double":  lipgloss.DoubleBorder(),
	"hidden":  lipgloss.HiddenBorder(),
}

// loadStyles reads the table styles from the YAML file at path. An empty path
// returns the default styles.
func loadStyles(path string) (table.Styles[sample.User], error) {
	styles := table.DefaultStyles[sample.User]()
	if path == "" {
		return styles, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return styles, fmt.Errorf("opening style file: %w", err)
	}
	defer f.Close()

	var sf styleFile
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&sf); err != nil && !errors.Is(err, io.EOF) {
		return styles, fmt.Errorf("decoding style file %s: %w", path, err)
	}
	if err := sf.apply(&styles); err != nil {
		return styles, fmt.Errorf("style file %s: %w", path, err)
	}
	return styles, nil
}

func (sf styleFile) apply(styles *table.Styles[sample.User]) error {
	if sf.Border != nil && !*sf.Border {
		styles.Table.BorderThickness = 0
	}
	if sf.BorderShape != "" {
		shape, ok := borderShapes[sf.BorderShape]
		if !ok {
			return fmt.Errorf("unknown border shape: %s", sf.BorderShape)
		}
		styles.Table.Border = shape
	}
	styles.Table.BorderColor = colorOr(sf.BorderColor, styles.Table.BorderColor)
	styles.Table.Background = colorOr(sf.Background, styles.Table.Background)
	if sf.Padding != nil {
		if *sf.Padding < 0 {
			return fmt.Errorf("padding must not be negative: %d", *sf.Padding)
		}
		styles.Table.HorizontalPadding = *sf.Padding
	}
	styles.Header.Background = colorOr(sf.HeaderBackground, styles.Header.Background)
	styles.Cursor.Background = colorOr(sf.CursorBackground, styles.Cursor.Background)
	styles.FocusedDivider = colorOr(sf.FocusColor, styles.FocusedDivider)

	if sf.StripeBackground != "" {
		stripe := lipgloss.Color(sf.StripeBackground)
		styles.Row = func(index int, _ sample.User) table.RowStyle {
			if index%2 == 1 {
				return table.RowStyle{Background: stripe}
			}
			return table.RowStyle{}
		}
	}
	if sf.ColumnDivider != nil {
		s, err := sf.ColumnDivider.style(table.DefaultDividerColor)
		if err != nil {
			return fmt.Errorf("column_divider: %w", err)
		}
		styles.ColumnDivider = func(int) table.DividerStyle { return s }
	}
	if sf.HeaderDivider != nil || sf.RowDivider != nil {
		var (
			header = styles.RowDivider(0)
			row    = styles.RowDivider(1)
			err    error
		)
		if sf.HeaderDivider != nil {
			if header, err = sf.HeaderDivider.style(table.DefaultDividerColor); err != nil {
				return fmt.Errorf("header_divider: %w", err)
			}
		}
		if sf.RowDivider != nil {
			if row, err = sf.RowDivider.style(table.DefaultDividerColor); err != nil {
				return fmt.Errorf("row_divider: %w", err)
			}
		}
		styles.RowDivider = func(index int) table.DividerStyle {
			if index == 0 {
				return header
			}
			return row
		}
	}
	return nil
}

func colorOr(s string, fallback lipgloss.TerminalColor) lipgloss.TerminalColor {
	if s == "" {
		return fallback
	}
	return lipgloss.Color(s)
}

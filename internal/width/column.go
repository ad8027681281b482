package width

import "fmt"

// Column describes one column of a table.
type Column[T any] struct {
	Key    string
	Sizing Sizing
	// Header renders the header cell. If nil the key is used.
	Header func() string
	// Cell renders the column's cell for an item.
	Cell func(T) string
	// Filter is accepted for forward compatibility; tables do not filter
	// on it yet.
	Filter Filter
}

// HeaderText returns the rendered header cell.
func (c Column[T]) HeaderText() string {
	if c.Header == nil {
		return c.Key
	}
	return c.Header()
}

// CellText returns the rendered cell for item.
func (c Column[T]) CellText(item T) string {
	if c.Cell == nil {
		return ""
	}
	return c.Cell(item)
}

// Filter is a placeholder for per-column filtering.
type Filter interface {
	filter()
}

// NumberFilter marks a column as filterable by numeric range.
type NumberFilter struct{}

func (NumberFilter) filter() {}

// Content declares the columns of a table. It is invoked once per build and
// must call Builder.Column for each column in display order. Columns that
// should be hidden are simply not declared.
type Content[T any] func(b *Builder[T])

// Builder collects column declarations.
type Builder[T any] struct {
	cols []Column[T]
}

// Column declares a column.
func (b *Builder[T]) Column(key string, sizing Sizing, header func() string, cell func(T) string) {
	b.cols = append(b.cols, Column[T]{
		Key:    key,
		Sizing: sizing,
		Header: header,
		Cell:   cell,
	})
}

// Add declares a fully specified column.
func (b *Builder[T]) Add(col Column[T]) {
	b.cols = append(b.cols, col)
}

// Model is the ordered, immutable set of columns produced by one build.
type Model[T any] struct {
	cols  []Column[T]
	index map[string]int
}

// Build runs content and validates the declared columns. The first invalid
// declaration is returned as a *ConfigError.
func Build[T any](content Content[T]) (Model[T], error) {
	var b Builder[T]
	if content != nil {
		content(&b)
	}
	m := Model[T]{
		cols:  b.cols,
		index: make(map[string]int, len(b.cols)),
	}
	for i, col := range m.cols {
		if col.Key == "" {
			return Model[T]{}, &ConfigError{Index: i, Err: ErrEmptyKey}
		}
		if prev, ok := m.index[col.Key]; ok {
			return Model[T]{}, &ConfigError{
				Index: i,
				Key:   col.Key,
				Err:   fmt.Errorf("%w: also declared at column %d", ErrDuplicateKey, prev),
			}
		}
		if err := col.Sizing.validate(); err != nil {
			return Model[T]{}, &ConfigError{Index: i, Key: col.Key, Err: err}
		}
		m.index[col.Key] = i
	}
	return m, nil
}

// Len returns the number of columns.
func (m Model[T]) Len() int { return len(m.cols) }

// Columns returns the columns in display order.
func (m Model[T]) Columns() []Column[T] { return m.cols }

// Column returns the column at index i.
func (m Model[T]) Column(i int) Column[T] { return m.cols[i] }

// Keys returns the column keys in display order.
func (m Model[T]) Keys() []string {
	keys := make([]string, len(m.cols))
	for i, col := range m.cols {
		keys[i] = col.Key
	}
	return keys
}

// Index returns the position of the column with the given key.
func (m Model[T]) Index(key string) (int, bool) {
	i, ok := m.index[key]
	return i, ok
}

// Sizings returns the sizing of each column in display order.
func (m Model[T]) Sizings() []Sizing {
	sizings := make([]Sizing, len(m.cols))
	for i, col := range m.cols {
		sizings[i] = col.Sizing
	}
	return sizings
}

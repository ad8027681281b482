package table

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/coltab/coltab/internal/width"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRow struct {
	id   int
	name string
	age  int
}

func testRows(n int) []testRow {
	rows := make([]testRow, n)
	for i := range rows {
		rows[i] = testRow{id: i, name: fmt.Sprintf("user-%d", i), age: 20 + i}
	}
	return rows
}

// testContent declares three weighted columns: {1,1,2}. With showID false the
// first column is left out.
func testContent(showID bool) width.Content[testRow] {
	return func(b *width.Builder[testRow]) {
		if showID {
			b.Column("id", width.Weight(1), func() string { return "ID" }, func(r testRow) string {
				return strconv.Itoa(r.id)
			})
		}
		b.Column("age", width.Weight(1), func() string { return "AGE" }, func(r testRow) string {
			return strconv.Itoa(r.age)
		})
		b.Column("name", width.Weight(2), func() string { return "NAME" }, func(r testRow) string {
			return r.name
		})
	}
}

// setupTest returns a table 46 cells wide: a border and a cell of padding
// either side and two dividers leave 40 cells for the columns.
func setupTest(t *testing.T, rows int) Model[testRow] {
	t.Helper()

	tbl := New(testContent(true), testRows(rows))
	require.NoError(t, tbl.Err())
	assert.Nil(t, tbl.Widths())

	assert.True(t, tbl.SetSize(46, 10))
	require.Equal(t, []float64{10, 10, 20}, tbl.Widths())
	return tbl
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func mouse(action tea.MouseAction, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

func widthsChanged(t *testing.T, cmd tea.Cmd) WidthsChangedMsg {
	t.Helper()

	require.NotNil(t, cmd)
	msg, ok := cmd().(WidthsChangedMsg)
	require.True(t, ok)
	return msg
}

func TestTable_Resize(t *testing.T) {
	tbl := setupTest(t, 3)

	tbl, cmd := tbl.Update(tea.WindowSizeMsg{Width: 86, Height: 10})
	assert.Equal(t, []float64{20, 20, 40}, tbl.Widths())

	msg := widthsChanged(t, cmd)
	assert.Equal(t, []string{"id", "age", "name"}, msg.Keys)
	assert.Equal(t, []float64{20, 20, 40}, msg.Widths)

	// Only the height has changed.
	tbl, cmd = tbl.Update(tea.WindowSizeMsg{Width: 86, Height: 20})
	assert.Nil(t, cmd)
	assert.Equal(t, []float64{20, 20, 40}, tbl.Widths())
}

func TestTable_ResizeFromDegenerateWidth(t *testing.T) {
	tbl := New(testContent(true), testRows(3))

	// Too narrow for even the decoration.
	assert.True(t, tbl.SetSize(4, 10))
	require.NotNil(t, tbl.Widths())

	assert.True(t, tbl.SetSize(46, 10))
	assert.Equal(t, []float64{10, 10, 20}, tbl.Widths())
}

func TestTable_DragDivider(t *testing.T) {
	tbl := setupTest(t, 3)

	// The first divider sits after the left border, the padding and the
	// first column.
	tbl, cmd := tbl.Update(mouse(tea.MouseActionPress, 12, 1))
	assert.Nil(t, cmd)
	require.True(t, tbl.Dragging())
	assert.Equal(t, 0, tbl.FocusedDivider())

	tbl, cmd = tbl.Update(mouse(tea.MouseActionMotion, 17, 1))
	assert.Equal(t, []float64{15, 5, 20}, tbl.Widths())
	assert.Equal(t, []float64{15, 5, 20}, widthsChanged(t, cmd).Widths)

	// Dragging back past the start.
	tbl, _ = tbl.Update(mouse(tea.MouseActionMotion, 10, 1))
	assert.Equal(t, []float64{8, 12, 20}, tbl.Widths())

	tbl, cmd = tbl.Update(mouse(tea.MouseActionRelease, 10, 1))
	assert.Nil(t, cmd)
	assert.False(t, tbl.Dragging())

	// Motion after release is ignored.
	tbl, cmd = tbl.Update(mouse(tea.MouseActionMotion, 30, 1))
	assert.Nil(t, cmd)
	assert.Equal(t, []float64{8, 12, 20}, tbl.Widths())

	// Rescaling preserves the dragged proportions.
	tbl.SetSize(86, 10)
	assert.Equal(t, []float64{16, 24, 40}, tbl.Widths())
}

func TestTable_DragDividerWithOrigin(t *testing.T) {
	tbl := setupTest(t, 3)
	tbl.SetOrigin(5, 2)

	tbl, _ = tbl.Update(mouse(tea.MouseActionPress, 28, 3))
	require.True(t, tbl.Dragging())
	assert.Equal(t, 1, tbl.FocusedDivider())

	tbl, _ = tbl.Update(mouse(tea.MouseActionMotion, 26, 3))
	assert.Equal(t, []float64{10, 8, 22}, tbl.Widths())
}

func TestTable_PressMissesDivider(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.MouseMsg
	}{
		{"inside column", mouse(tea.MouseActionPress, 5, 1)},
		{"on top border", mouse(tea.MouseActionPress, 12, 0)},
		{"on bottom border", mouse(tea.MouseActionPress, 12, 9)},
		{"right button", tea.MouseMsg{X: 12, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonRight}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := setupTest(t, 3)

			tbl, _ = tbl.Update(tt.msg)
			assert.False(t, tbl.Dragging())

			tbl, cmd := tbl.Update(mouse(tea.MouseActionMotion, 20, 1))
			assert.Nil(t, cmd)
			assert.Equal(t, []float64{10, 10, 20}, tbl.Widths())
		})
	}
}

func TestTable_KeyboardResize(t *testing.T) {
	tbl := setupTest(t, 3)
	assert.Equal(t, -1, tbl.FocusedDivider())

	tbl, _ = tbl.Update(keyPress("]"))
	assert.Equal(t, 0, tbl.FocusedDivider())

	tbl, cmd := tbl.Update(keyPress(">"))
	assert.Equal(t, []float64{11, 9, 20}, tbl.Widths())
	assert.Equal(t, []float64{11, 9, 20}, widthsChanged(t, cmd).Widths)

	tbl, _ = tbl.Update(keyPress("]"))
	tbl, _ = tbl.Update(keyPress("]"))
	assert.Equal(t, 1, tbl.FocusedDivider(), "focus is clamped to last divider")

	tbl, _ = tbl.Update(keyPress("<"))
	assert.Equal(t, []float64{11, 8, 21}, tbl.Widths())

	tbl, _ = tbl.Update(keyPress("["))
	tbl, _ = tbl.Update(keyPress("["))
	assert.Equal(t, 0, tbl.FocusedDivider())

	tbl, cmd = tbl.Update(keyPress("="))
	assert.Equal(t, []float64{10, 10, 20}, tbl.Widths())
	assert.Equal(t, []float64{10, 10, 20}, widthsChanged(t, cmd).Widths)
}

func TestTable_KeyboardIgnoredWhenBlurred(t *testing.T) {
	tbl := setupTest(t, 3)
	tbl.Blur()

	tbl, _ = tbl.Update(keyPress("]"))
	tbl, cmd := tbl.Update(keyPress(">"))
	assert.Nil(t, cmd)
	assert.Equal(t, -1, tbl.FocusedDivider())
	assert.Equal(t, []float64{10, 10, 20}, tbl.Widths())
}

func TestTable_MinWidth(t *testing.T) {
	tbl := New(testContent(true), testRows(3), WithLimits[testRow](width.Limits{MinWidth: 8}))
	tbl.SetSize(46, 10)

	tbl, _ = tbl.Update(mouse(tea.MouseActionPress, 12, 1))
	tbl, _ = tbl.Update(mouse(tea.MouseActionMotion, 20, 1))
	assert.Equal(t, []float64{12, 8, 20}, tbl.Widths(), "clamped to the minimum")

	tbl, _ = tbl.Update(mouse(tea.MouseActionMotion, 5, 1))
	assert.Equal(t, []float64{8, 12, 20}, tbl.Widths())
}

func TestTable_MinWidthDividerFollowsPointer(t *testing.T) {
	tbl := New(testContent(true), testRows(3), WithLimits[testRow](width.Limits{MinWidth: 8}))
	tbl.SetSize(46, 10)

	// Drag the first divider 8 cells right; only 2 can be taken.
	tbl, _ = tbl.Update(mouse(tea.MouseActionPress, 12, 1))
	tbl, _ = tbl.Update(mouse(tea.MouseActionMotion, 20, 1))
	require.Equal(t, []float64{12, 8, 20}, tbl.Widths())

	// Coming back, the divider stays put until the pointer reaches it.
	tbl, cmd := tbl.Update(mouse(tea.MouseActionMotion, 15, 1))
	assert.Nil(t, cmd)
	assert.Equal(t, []float64{12, 8, 20}, tbl.Widths())

	tbl, _ = tbl.Update(mouse(tea.MouseActionMotion, 13, 1))
	assert.Equal(t, []float64{11, 9, 20}, tbl.Widths())
}

func TestTable_SetContent(t *testing.T) {
	tbl := setupTest(t, 3)

	// Same version: the columns are not rebuilt.
	tbl.SetContent(0, testContent(false))
	assert.Equal(t, 3, tbl.Columns().Len())
	assert.Equal(t, []float64{10, 10, 20}, tbl.Widths())

	// Bumping the version rebuilds the columns and re-allocates widths over
	// the remaining 41 cells.
	tbl.SetContent(1, testContent(false))
	assert.Equal(t, []string{"age", "name"}, tbl.Columns().Keys())
	assert.InDeltaSlice(t, []float64{41.0 / 3, 82.0 / 3}, tbl.Widths(), width.Tolerance)

	tbl.SetContent(2, testContent(true))
	assert.Equal(t, []string{"id", "age", "name"}, tbl.Columns().Keys())
	assert.Equal(t, []float64{10, 10, 20}, tbl.Widths())
}

func TestTable_SetContentReallocatesWidths(t *testing.T) {
	tbl := setupTest(t, 3)

	tbl, _ = tbl.Update(keyPress(">"))
	require.Equal(t, []float64{11, 9, 20}, tbl.Widths())

	// Same columns, new version: widths are derived afresh.
	tbl.SetContent(1, testContent(true))
	assert.Equal(t, []float64{10, 10, 20}, tbl.Widths())
}

func TestTable_ConfigError(t *testing.T) {
	duplicate := func(b *width.Builder[testRow]) {
		b.Column("name", width.Weight(1), nil, nil)
		b.Column("name", width.Weight(1), nil, nil)
	}
	tbl := New(duplicate, testRows(3))
	tbl.SetSize(46, 10)

	assert.ErrorIs(t, tbl.Err(), width.ErrDuplicateKey)
	assert.Nil(t, tbl.Widths())
	assert.Contains(t, ansi.Strip(tbl.View()), "Error:")

	// Recovers once the content is fixed.
	tbl.SetContent(1, testContent(true))
	assert.NoError(t, tbl.Err())
	assert.Equal(t, []float64{10, 10, 20}, tbl.Widths())
}

func TestTable_WrapContent(t *testing.T) {
	content := func(b *width.Builder[testRow]) {
		b.Column("name", width.WrapContent(), func() string { return "NAME" }, func(r testRow) string {
			return r.name
		})
		b.Column("rest", width.Weight(1), nil, nil)
	}
	tbl := New(content, []testRow{{name: "a"}, {name: "abcdefgh"}})
	tbl.SetSize(46, 10)

	// Two cells of padding and one divider leave 41 cells.
	assert.Equal(t, []float64{8, 33}, tbl.Widths())
}

func TestTable_CursorWindow(t *testing.T) {
	tbl := setupTest(t, 20)

	got, ok := tbl.CurrentRow()
	require.True(t, ok)
	assert.Equal(t, 0, got.id)
	assert.Equal(t, "1-6 of 20", tbl.RowInfo())

	tbl.MoveDown(7)
	got, _ = tbl.CurrentRow()
	assert.Equal(t, 7, got.id)
	assert.Equal(t, "3-8 of 20", tbl.RowInfo())

	tbl.GotoBottom()
	got, _ = tbl.CurrentRow()
	assert.Equal(t, 19, got.id)
	assert.Equal(t, "15-20 of 20", tbl.RowInfo())

	tbl.GotoTop()
	got, _ = tbl.CurrentRow()
	assert.Equal(t, 0, got.id)
	assert.Equal(t, "1-6 of 20", tbl.RowInfo())

	tbl, _ = tbl.Update(keyPress("j"))
	got, _ = tbl.CurrentRow()
	assert.Equal(t, 1, got.id)
}

func TestTable_SetItems(t *testing.T) {
	tbl := setupTest(t, 20)
	tbl.GotoBottom()

	tbl, _ = tbl.Update(SetItemsMsg[testRow](testRows(2)))
	got, ok := tbl.CurrentRow()
	require.True(t, ok)
	assert.Equal(t, 1, got.id)
	assert.Equal(t, "1-2 of 2", tbl.RowInfo())

	tbl.SetItems(nil)
	_, ok = tbl.CurrentRow()
	assert.False(t, ok)
	assert.Equal(t, "0 rows", tbl.RowInfo())
}

func TestTable_View(t *testing.T) {
	tbl := setupTest(t, 20)

	lines := strings.Split(tbl.View(), "\n")
	require.Len(t, lines, 10)
	for i, line := range lines {
		assert.Equal(t, 46, lipgloss.Width(line), "line %d", i)
	}

	assert.Contains(t, ansi.Strip(lines[0]), "1-6 of 20")

	header := ansi.Strip(lines[1])
	assert.Equal(t, "│ ID        │AGE       │NAME                 │", header)

	assert.Contains(t, ansi.Strip(lines[3]), "user-0")
	assert.Contains(t, ansi.Strip(lines[8]), "user-5")
}

func TestTable_ViewTruncates(t *testing.T) {
	rows := []testRow{{name: "a-rather-long-name-that-will-not-fit"}}
	tbl := New(testContent(true), rows)
	tbl.SetSize(46, 10)

	lines := strings.Split(ansi.Strip(tbl.View()), "\n")
	assert.Contains(t, lines[3], "a-rather-long-name-…")
}

func TestTable_StyleOptions(t *testing.T) {
	tbl := New(testContent(true), testRows(3),
		WithTableStyle[testRow](TableStyle{}),
		WithColumnDividerStyle[testRow](func(int) DividerStyle {
			return DividerStyle{Thickness: 1, Padding: 1}
		}),
		WithRowDividerStyle[testRow](func(int) DividerStyle { return DividerStyle{} }),
	)
	// No border or padding, and two dividers three cells wide.
	tbl.SetSize(46, 5)
	assert.Equal(t, []float64{10, 10, 20}, tbl.Widths())

	lines := strings.Split(tbl.View(), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "ID         │ AGE        │ NAME                ", ansi.Strip(lines[0]))

	// The first divider occupies cells 10-12.
	tbl, _ = tbl.Update(mouse(tea.MouseActionPress, 12, 0))
	assert.True(t, tbl.Dragging())
}

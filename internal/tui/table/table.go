package table

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/coltab/coltab/internal/logging"
	"github.com/coltab/coltab/internal/width"
)

const (
	// Height of the table header
	headerHeight = 1
	// Minimum recommended height for the table widget. Respecting this minimum
	// ensures the header and the borders and at least one row are visible.
	MinHeight = 5
)

// Model defines a state for the table widget.
type Model[T any] struct {
	content width.Content[T]
	version uint64
	cache   width.Cache[T]
	cols    width.Model[T]
	err     error

	widths *width.Store
	limits width.Limits
	drag   width.DragSession
	// divider selected for keyboard resizing, or -1
	divider int

	items  []T
	cursor int
	// index of first visible row
	start int

	styles     Styles[T]
	truncation map[string]TruncationFunc
	keys       KeyMap
	logger     logging.Interface
	focus      bool

	width  int
	height int
	// screen position of the top left corner, for translating mouse events
	x, y int
}

type Option[T any] func(m *Model[T])

// WithStyles sets the styles of the table.
func WithStyles[T any](styles Styles[T]) Option[T] {
	return func(m *Model[T]) {
		m.styles = styles
	}
}

// WithHeaderStyle sets the style of the header row.
func WithHeaderStyle[T any](style RowStyle) Option[T] {
	return func(m *Model[T]) {
		m.styles.Header = style
	}
}

// WithRowStyle sets the style of each body row.
func WithRowStyle[T any](fn func(index int, item T) RowStyle) Option[T] {
	return func(m *Model[T]) {
		m.styles.Row = fn
	}
}

// WithRowDividerStyle sets the style of the divider above each body row. The
// divider at index 0 separates the header from the first row.
func WithRowDividerStyle[T any](fn func(index int) DividerStyle) Option[T] {
	return func(m *Model[T]) {
		m.styles.RowDivider = fn
	}
}

// WithColumnDividerStyle sets the style of the divider after each column.
func WithColumnDividerStyle[T any](fn func(index int) DividerStyle) Option[T] {
	return func(m *Model[T]) {
		m.styles.ColumnDivider = fn
	}
}

// WithTableStyle sets the style of the table chrome.
func WithTableStyle[T any](style TableStyle) Option[T] {
	return func(m *Model[T]) {
		m.styles.Table = style
	}
}

// WithLimits bounds the column widths.
func WithLimits[T any](limits width.Limits) Option[T] {
	return func(m *Model[T]) {
		m.limits = limits
	}
}

// WithLogger sets the logger.
func WithLogger[T any](logger logging.Interface) Option[T] {
	return func(m *Model[T]) {
		m.logger = logger
	}
}

// WithKeyMap overrides the default keybindings.
func WithKeyMap[T any](keys KeyMap) Option[T] {
	return func(m *Model[T]) {
		m.keys = keys
	}
}

// WithTruncation sets the truncation func for the column with the given key.
func WithTruncation[T any](key string, fn TruncationFunc) Option[T] {
	return func(m *Model[T]) {
		m.truncation[key] = fn
	}
}

// New creates a new model for the table widget. Widths are allocated once the
// table is given a size.
func New[T any](content width.Content[T], items []T, opts ...Option[T]) Model[T] {
	m := Model[T]{
		content:    content,
		items:      items,
		divider:    -1,
		styles:     DefaultStyles[T](),
		truncation: make(map[string]TruncationFunc),
		keys:       DefaultKeyMap(),
		logger:     logging.Discard,
		focus:      true,
	}
	for _, fn := range opts {
		fn(&m)
	}
	m.rebuild()
	return m
}

func (m Model[T]) Init() tea.Cmd {
	return nil
}

// Update is the Bubble Tea update loop.
func (m Model[T]) Update(msg tea.Msg) (Model[T], tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if m.SetSize(msg.Width, msg.Height) {
			return m, m.widthsChanged()
		}
		return m, nil
	case tea.MouseMsg:
		if m.handleMouse(msg) {
			return m, m.widthsChanged()
		}
		return m, nil
	case SetItemsMsg[T]:
		m.SetItems(msg)
		return m, nil
	}

	if !m.focus {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.LineUp):
			m.MoveUp(1)
		case key.Matches(msg, m.keys.LineDown):
			m.MoveDown(1)
		case key.Matches(msg, m.keys.PageUp):
			m.MoveUp(max(1, m.visibleCount(m.start)))
		case key.Matches(msg, m.keys.PageDown):
			m.MoveDown(max(1, m.visibleCount(m.start)))
		case key.Matches(msg, m.keys.GotoTop):
			m.GotoTop()
		case key.Matches(msg, m.keys.GotoBottom):
			m.GotoBottom()
		case key.Matches(msg, m.keys.PrevDivider):
			m.FocusDivider(m.divider - 1)
		case key.Matches(msg, m.keys.NextDivider):
			m.FocusDivider(m.divider + 1)
		case key.Matches(msg, m.keys.Shrink):
			if m.moveFocusedDivider(-1) {
				return m, m.widthsChanged()
			}
		case key.Matches(msg, m.keys.Grow):
			if m.moveFocusedDivider(1) {
				return m, m.widthsChanged()
			}
		case key.Matches(msg, m.keys.Reset):
			m.ResetWidths()
			return m, m.widthsChanged()
		}
	}
	return m, nil
}

// SetContent replaces the column declarations. The columns are only rebuilt,
// and the widths only re-allocated, when version differs from the version of
// the current columns.
func (m *Model[T]) SetContent(version uint64, content width.Content[T]) {
	m.version = version
	m.content = content
	m.rebuild()
}

func (m *Model[T]) rebuild() {
	cols, err := m.cache.Get(m.version, m.content)
	if !m.cache.Changed() {
		return
	}
	m.drag.End()
	if err != nil {
		m.logger.Error("building columns", "error", err)
		m.err = err
		m.cols = width.Model[T]{}
		m.widths = nil
		m.divider = -1
		return
	}
	m.err = nil
	m.cols = cols
	m.initWidths()
	if m.divider >= cols.Len()-1 {
		m.divider = -1
	}
}

// Err returns the error from building the columns, if any.
func (m Model[T]) Err() error {
	return m.err
}

// Columns returns the current columns.
func (m Model[T]) Columns() width.Model[T] {
	return m.cols
}

// Widths returns the current column widths, or nil if they have yet to be
// allocated.
func (m Model[T]) Widths() []float64 {
	if m.widths == nil {
		return nil
	}
	return m.widths.Widths()
}

// available returns the width within the border.
func (m Model[T]) available() int {
	return m.width - 2*m.styles.Table.borderWidth()
}

func (m Model[T]) decoration() int {
	return DecorationWidth(m.cols.Len(), m.styles.ColumnDivider, m.styles.Table)
}

// initWidths allocates widths from the column declarations, discarding any
// existing widths.
func (m *Model[T]) initWidths() {
	if m.width <= 0 {
		m.widths = nil
		return
	}
	m.widths = width.Init(
		m.cols.Sizings(),
		float64(m.available()),
		float64(m.decoration()),
		width.MeasureFunc(m.measure),
		width.WithLimits(m.limits),
	)
	m.logger.Debug("allocated column widths", "columns", m.cols.Keys(), "widths", m.widths.Widths())
}

// ResetWidths re-allocates widths from the column declarations, discarding
// any adjustments made by dragging.
func (m *Model[T]) ResetWidths() {
	m.drag.End()
	m.initWidths()
}

// SetSize sets the dimensions of the table and rescales the columns to the
// new width. It reports whether the widths changed.
func (m *Model[T]) SetSize(w, h int) bool {
	m.width = w
	m.height = h
	changed := m.reconcile()
	m.ensureCursorVisible()
	return changed
}

// SetOrigin sets the screen position of the table's top left corner. Mouse
// events are translated relative to it.
func (m *Model[T]) SetOrigin(x, y int) {
	m.x = x
	m.y = y
}

func (m *Model[T]) reconcile() bool {
	if m.err != nil || m.width <= 0 {
		return false
	}
	if m.widths == nil {
		m.initWidths()
		return true
	}
	var (
		available  = float64(m.available())
		decoration = float64(m.decoration())
	)
	if decoration != m.widths.Decoration() {
		m.initWidths()
		return true
	}
	if available == m.widths.Available() {
		return false
	}
	if m.widths.Reconcile(available, decoration) {
		m.logger.Debug("rescaled column widths", "available", available, "widths", m.widths.Widths())
		return true
	}
	if m.widths.Available()-decoration <= 0 && available-decoration > 0 {
		// The widths were allocated without any usable space so there are
		// no proportions to preserve: allocate afresh.
		m.initWidths()
		return true
	}
	m.logger.Debug("skipped rescaling column widths", "available", available, "decoration", decoration)
	return false
}

func (m Model[T]) widthsChanged() tea.Cmd {
	if m.widths == nil {
		return nil
	}
	msg := WidthsChangedMsg{
		Keys:   m.cols.Keys(),
		Widths: m.widths.Widths(),
	}
	return func() tea.Msg {
		return msg
	}
}

// handleMouse translates a divider drag into width transfers. It reports
// whether the widths changed.
func (m *Model[T]) handleMouse(msg tea.MouseMsg) bool {
	if m.widths == nil {
		return false
	}
	x := msg.X - m.x - m.styles.Table.borderWidth()
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !m.withinRows(msg.Y-m.y) {
			return false
		}
		k, ok := dividerAt(x, m.styles.Table.HorizontalPadding, cellWidths(m.widths.Widths()), m.dividerWidth)
		if !ok {
			return false
		}
		m.drag.Begin(k, float64(x))
		m.divider = k
		m.logger.Debug("started dragging divider", "divider", k)
	case tea.MouseActionMotion:
		k, delta, ok := m.drag.Move(float64(x))
		if !ok {
			return false
		}
		applied := m.applyDrag(k, delta)
		m.drag.Advance(applied)
		return applied != 0
	case tea.MouseActionRelease:
		if m.drag.Active() {
			m.logger.Debug("finished dragging divider", "divider", m.drag.Divider(), "widths", m.widths.Widths())
			m.drag.End()
		}
	}
	return false
}

// withinRows reports whether the line y, relative to the top of the table,
// lies within the header, body or filler rows.
func (m Model[T]) withinRows(y int) bool {
	border := m.styles.Table.borderWidth()
	return y >= border && y < m.height-border
}

func (m Model[T]) dividerWidth(i int) int {
	return m.styles.ColumnDivider(i).FullWidth()
}

// applyDrag returns the part of delta transferred across divider k.
func (m *Model[T]) applyDrag(k int, delta float64) float64 {
	applied, err := m.widths.ApplyDrag(k, delta)
	if err != nil {
		m.logger.Error("resizing columns", "error", err)
		return 0
	}
	return applied
}

// FocusDivider selects the divider to move from the keyboard. The index is
// clamped to the dividers that exist.
func (m *Model[T]) FocusDivider(k int) {
	if m.cols.Len() < 2 {
		m.divider = -1
		return
	}
	m.divider = clamp(k, 0, m.cols.Len()-2)
}

// FocusedDivider returns the divider selected for keyboard resizing, or -1.
func (m Model[T]) FocusedDivider() int {
	return m.divider
}

// Dragging reports whether a divider is being dragged.
func (m Model[T]) Dragging() bool {
	return m.drag.Active()
}

func (m *Model[T]) moveFocusedDivider(delta float64) bool {
	if m.widths == nil || m.cols.Len() < 2 {
		return false
	}
	if m.divider < 0 {
		m.divider = 0
	}
	return m.applyDrag(m.divider, delta) != 0
}

// Focused returns the focus state of the table.
func (m Model[T]) Focused() bool {
	return m.focus
}

// Focus focuses the table, allowing the user to move around the rows and
// interact.
func (m *Model[T]) Focus() {
	m.focus = true
}

// Blur blurs the table, preventing selection or movement.
func (m *Model[T]) Blur() {
	m.focus = false
}

// SetItems sets new items on the table, overwriting existing items.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.ensureCursorVisible()
}

// Items returns the items in the table.
func (m Model[T]) Items() []T {
	return m.items
}

// CurrentRow returns the item on which the cursor currently sits. If there
// are no items then false is returned.
func (m Model[T]) CurrentRow() (T, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return *new(T), false
	}
	return m.items[m.cursor], true
}

// MoveUp moves the current row up by any number of rows.
// It can not go above the first row.
func (m *Model[T]) MoveUp(n int) {
	m.cursor -= n
	m.ensureCursorVisible()
}

// MoveDown moves the current row down by any number of rows.
// It can not go below the last row.
func (m *Model[T]) MoveDown(n int) {
	m.cursor += n
	m.ensureCursorVisible()
}

// GotoTop makes the top row the current row.
func (m *Model[T]) GotoTop() {
	m.MoveUp(m.cursor)
}

// GotoBottom makes the bottom row the current row.
func (m *Model[T]) GotoBottom() {
	m.MoveDown(len(m.items))
}

func (m *Model[T]) ensureCursorVisible() {
	m.cursor = clamp(m.cursor, 0, max(0, len(m.items)-1))
	m.start = clamp(m.start, 0, max(0, len(m.items)-1))
	if m.cursor < m.start {
		m.start = m.cursor
	}
	for m.start < m.cursor && m.start+m.visibleCount(m.start) <= m.cursor {
		m.start++
	}
	// In case the height has been increased, pull rows back into view rather
	// than leaving space beneath the last row.
	for m.start > 0 && m.visibleCount(m.start-1) > len(m.items)-m.start {
		m.start--
	}
}

// bodyHeight returns the number of lines available to rows.
func (m Model[T]) bodyHeight() int {
	border := m.styles.Table.borderWidth()
	return m.height - 2*border - headerHeight - rowDividerHeight(m.styles.RowDivider(0))
}

func rowDividerHeight(s DividerStyle) int {
	return max(s.Thickness, 0) + 2*max(s.Padding, 0)
}

// rowHeight returns the lines taken by row i and the divider beneath it.
func (m Model[T]) rowHeight(i int) int {
	return 1 + rowDividerHeight(m.styles.RowDivider(i+1))
}

// visibleCount returns the number of rows, beginning with row start, that fit
// in the body.
func (m Model[T]) visibleCount(start int) int {
	var (
		avail = m.bodyHeight()
		n     int
	)
	for i := start; i < len(m.items); i++ {
		h := m.rowHeight(i)
		if avail < h {
			break
		}
		avail -= h
		n++
	}
	return n
}

// RowInfo returns human-readable row information.
func (m Model[T]) RowInfo() string {
	if len(m.items) == 0 {
		return "0 rows"
	}
	top := m.start + 1
	bottom := m.start + m.visibleCount(m.start)
	return fmt.Sprintf("%d-%d of %d", top, bottom, len(m.items))
}

// View renders the component.
func (m Model[T]) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	var (
		inner = max(0, m.available())
		lines = make([]string, 0, m.height)
	)
	switch {
	case m.err != nil:
		lines = append(lines, m.inline(inner, "Error: "+m.err.Error()))
	case m.widths == nil:
	default:
		cells := cellWidths(m.widths.Widths())
		lines = append(lines, m.renderRow(cells, m.styles.Header, true, func(col width.Column[T]) string {
			return col.HeaderText()
		}))
		lines = append(lines, m.renderRowDivider(0, inner)...)

		var (
			body = m.bodyHeight()
			used int
		)
		for i := m.start; i < m.start+m.visibleCount(m.start); i++ {
			item := m.items[i]
			current := m.focus && i == m.cursor
			style := m.styles.Row(i, item)
			if current {
				style = m.styles.Cursor
			}
			lines = append(lines, m.renderRow(cells, style, false, func(col width.Column[T]) string {
				s := col.CellText(item)
				if current {
					// Remove ANSI escape codes so that the cursor background
					// is uniform.
					s = ansi.Strip(s)
				}
				return s
			}))
			lines = append(lines, m.renderRowDivider(i+1, inner)...)
			used += m.rowHeight(i)
		}
		// Filler rows extend the column dividers to the bottom of the table.
		for ; used < body; used++ {
			lines = append(lines, m.renderRow(cells, RowStyle{}, false, nil))
		}
	}
	return m.chrome(lines, inner)
}

func (m Model[T]) inline(w int, s string) string {
	return lipgloss.NewStyle().Width(w).MaxWidth(w).Inline(true).Render(s)
}

// renderRow renders a header, body or filler row. text renders the content of
// each cell; a nil text leaves the cells empty.
func (m Model[T]) renderRow(cells []int, style RowStyle, bold bool, text func(width.Column[T]) string) string {
	bg := background(lipgloss.NewStyle(), style.Background).Bold(bold)

	var (
		b   strings.Builder
		pad = bg.Render(strings.Repeat(" ", max(0, m.styles.Table.HorizontalPadding)))
	)
	b.WriteString(pad)
	for i, col := range m.cols.Columns() {
		w := max(cells[i], 0)
		if w > 0 {
			var content string
			if text != nil {
				content = m.truncate(col.Key, text(col), w)
			}
			b.WriteString(bg.Width(w).MaxWidth(w).Inline(true).Render(content))
		}
		if i < m.cols.Len()-1 {
			b.WriteString(m.renderColumnDivider(i, bg))
		}
	}
	b.WriteString(pad)
	return m.inline(max(0, m.available()), b.String())
}

func (m Model[T]) renderColumnDivider(i int, bg lipgloss.Style) string {
	var (
		s     = m.styles.ColumnDivider(i)
		pad   = strings.Repeat(" ", max(0, s.Padding))
		line  = strings.Repeat("│", max(0, s.Thickness))
		color = s.Color
	)
	if i == m.divider && m.focus && m.styles.FocusedDivider != nil {
		color = m.styles.FocusedDivider
	}
	return bg.Render(pad) + foreground(bg, color).Render(line) + bg.Render(pad)
}

func (m Model[T]) renderRowDivider(i, w int) []string {
	var (
		s     = m.styles.RowDivider(i)
		lines = make([]string, 0, rowDividerHeight(s))
		blank = strings.Repeat(" ", w)
	)
	for range s.Padding {
		lines = append(lines, blank)
	}
	style := foreground(lipgloss.NewStyle(), s.Color)
	for range s.Thickness {
		lines = append(lines, style.Render(strings.Repeat("─", w)))
	}
	for range s.Padding {
		lines = append(lines, blank)
	}
	return lines
}

// chrome wraps the rendered lines in the table's border, with the row info
// embedded in the top border.
func (m Model[T]) chrome(lines []string, inner int) string {
	var (
		t      = m.styles.Table
		border = t.borderWidth()
		height = max(0, m.height-2*border)
	)
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", inner))
	}
	box := background(lipgloss.NewStyle(), t.Background)
	content := box.Render(strings.Join(lines, "\n"))
	if border == 0 {
		return content
	}

	metadata := m.RowInfo()
	if lipgloss.Width(metadata) > inner {
		metadata = ""
	}
	// total length of top border runes, not including corners
	topBorderLength := max(0, inner-lipgloss.Width(metadata))
	topBorderLeftLength := topBorderLength / 2
	topBorderRightLength := topBorderLength - topBorderLeftLength

	borderStyle := foreground(lipgloss.NewStyle(), t.BorderColor)
	topBorder := borderStyle.Render(fmt.Sprintf("%s%s%s%s%s",
		t.Border.TopLeft,
		strings.Repeat(t.Border.Top, topBorderLeftLength),
		metadata,
		strings.Repeat(t.Border.Top, topBorderRightLength),
		t.Border.TopRight,
	))

	sides := lipgloss.NewStyle().Border(t.Border, false, true, true, true)
	if t.BorderColor != nil {
		sides = sides.BorderForeground(t.BorderColor)
	}
	return lipgloss.JoinVertical(lipgloss.Top, topBorder, sides.Render(content))
}

func background(s lipgloss.Style, c lipgloss.TerminalColor) lipgloss.Style {
	if c == nil {
		return s
	}
	return s.Background(c)
}

func foreground(s lipgloss.Style, c lipgloss.TerminalColor) lipgloss.Style {
	if c == nil {
		return s
	}
	return s.Foreground(c)
}

func clamp(v, low, high int) int {
	if high < low {
		low, high = high, low
	}
	return min(high, max(low, v))
}

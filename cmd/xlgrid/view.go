package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/javajack/xlgrid"
)

func newViewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "view <workbook.xlsx>",
		Short: "Browse a workbook and select cells interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scr := newScreen()
			status := &statusLine{}
			wb, g, err := a.open(args[0], xlgrid.WithVisualSink(scr), xlgrid.WithEventSink(status))
			if err != nil {
				return err
			}
			defer wb.Close()

			m := newViewModel(wb, g, scr, status)
			if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
				return fmt.Errorf("run viewer: %w", err)
			}
			return nil
		},
	}
}

// mark is the on-screen state of one element.
type mark struct {
	selected    bool
	highlighted bool
}

func (m *mark) SetSelected(v bool)    { m.selected = v }
func (m *mark) SetHighlighted(v bool) { m.highlighted = v }

// screen is the window of elements currently drawn. Elements outside it have
// no handle, the grid only records their state.
type screen struct {
	section int
	top     int
	rows    int
	columns int

	cells   map[xlgrid.FlatIndex]*mark
	headers map[int]*mark
}

func newScreen() *screen {
	return &screen{cells: map[xlgrid.FlatIndex]*mark{}, headers: map[int]*mark{}}
}

func (s *screen) Element(kind xlgrid.ElementKind, flat xlgrid.FlatIndex) (xlgrid.ElementHandle, bool) {
	switch kind {
	case xlgrid.KindCell:
		if s.columns == 0 || flat.Section != s.section {
			return nil, false
		}
		if row := flat.Item / s.columns; row < s.top || row >= s.top+s.rows {
			return nil, false
		}
		m, ok := s.cells[flat]
		if !ok {
			m = &mark{}
			s.cells[flat] = m
		}
		return m, true
	case xlgrid.KindHeader:
		m, ok := s.headers[flat.Item]
		if !ok {
			m = &mark{}
			s.headers[flat.Item] = m
		}
		return m, true
	}
	return nil, false
}

// recycle rebuilds the window and asks the grid for the state of every element
// that came on screen.
func (s *screen) recycle(g *xlgrid.Grid, section, top, rows, columns int) {
	s.section, s.top, s.rows, s.columns = section, top, rows, columns
	s.cells = map[xlgrid.FlatIndex]*mark{}
	s.headers = map[int]*mark{}

	total, _ := g.RowCount(section)
	for r := top; r < min(top+rows, total); r++ {
		for c := 0; c < columns; c++ {
			addr := xlgrid.NewAddress(section, r, c)
			s.cells[xlgrid.FlatIndex{Section: section, Item: r*columns + c}] = &mark{selected: g.IsSelected(xlgrid.KindCell, addr)}
		}
	}
	for c := 0; c < columns; c++ {
		s.headers[c] = &mark{selected: g.IsSelected(xlgrid.KindHeader, xlgrid.NewAddress(0, 0, c))}
	}
}

func (s *screen) cell(flat xlgrid.FlatIndex) mark {
	if m, ok := s.cells[flat]; ok {
		return *m
	}
	return mark{}
}

// statusLine keeps the last user-facing selection event.
type statusLine struct {
	xlgrid.NopEventSink
	text string
}

func (s *statusLine) CellSelected(a xlgrid.GridAddress)   { s.text = "selected " + a.CellName() }
func (s *statusLine) CellDeselected(a xlgrid.GridAddress) { s.text = "deselected " + a.CellName() }

func (s *statusLine) HeaderSelected(c int) {
	s.text = "selected column " + xlgrid.ColToName(c)
}

func (s *statusLine) HeaderDeselected(c int) {
	s.text = "deselected column " + xlgrid.ColToName(c)
}

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	headerSelStyle = headerStyle.Background(lipgloss.Color("136"))
	selectedStyle  = lipgloss.NewStyle().Background(lipgloss.Color("24")).Foreground(lipgloss.Color("231"))
	highlightStyle = lipgloss.NewStyle().Background(lipgloss.Color("238"))
	cursorStyle    = lipgloss.NewStyle().Reverse(true)
	frozenStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	helpStyle      = lipgloss.NewStyle().Faint(true)
	errStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

const (
	minCellWidth = 4
	maxCellWidth = 18
	chromeLines  = 6
)

type viewModel struct {
	wb     *xlgrid.Workbook
	g      *xlgrid.Grid
	scr    *screen
	status *statusLine

	cursor xlgrid.GridAddress
	top    int
	height int
	width  int

	query    textinput.Model
	querying bool
	err      error
}

func newViewModel(wb *xlgrid.Workbook, g *xlgrid.Grid, scr *screen, status *statusLine) *viewModel {
	ti := textinput.New()
	ti.Placeholder = "column == 2 && number > 10"
	ti.Prompt = "/ "
	ti.CharLimit = 256
	ti.Width = 60

	m := &viewModel{wb: wb, g: g, scr: scr, status: status, query: ti, height: 24, width: 80}
	m.recycle()
	return m
}

func (m *viewModel) Init() tea.Cmd {
	return nil
}

func (m *viewModel) columns() int {
	n, _ := m.g.ColumnCount()
	return n
}

func (m *viewModel) visibleRows() int {
	return max(m.height-chromeLines, 1)
}

func (m *viewModel) recycle() {
	m.scr.recycle(m.g, m.cursor.Section, m.top, m.visibleRows(), m.columns())
}

func (m *viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.scroll()
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.querying {
			return m, m.updateQuery(msg)
		}
		return m, m.updateGrid(msg)
	}
	return m, nil
}

func (m *viewModel) updateQuery(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		expression := strings.TrimSpace(m.query.Value())
		m.querying = false
		m.query.Blur()
		if expression == "" {
			return nil
		}
		n, err := m.g.SelectWhere(expression)
		m.err = err
		if err == nil {
			m.status.text = fmt.Sprintf("%d cells match %s", n, expression)
		}
		m.recycle()
		return nil
	case "esc":
		m.querying = false
		m.query.Blur()
		return nil
	}
	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	return cmd
}

func (m *viewModel) updateGrid(msg tea.KeyMsg) tea.Cmd {
	m.err = nil
	switch msg.String() {
	case "q":
		return tea.Quit
	case "/":
		m.querying = true
		m.query.SetValue("")
		return m.query.Focus()
	case "up", "k":
		m.move(-1, 0)
	case "down", "j":
		m.move(1, 0)
	case "left", "h":
		m.move(0, -1)
	case "right", "l":
		m.move(0, 1)
	case "tab":
		m.nextSection()
	case "enter", " ":
		m.toggleCell()
	case "c":
		m.toggleColumn()
	case "x":
		m.g.Reload()
		m.status.text = "selection cleared"
		m.recycle()
	}
	return nil
}

func (m *viewModel) flat() (xlgrid.FlatIndex, bool) {
	flat, err := m.g.ToFlat(m.cursor)
	return flat, err == nil
}

func (m *viewModel) move(dr, dc int) {
	rows, _ := m.g.RowCount(m.cursor.Section)
	next := m.cursor
	next.Row = min(max(next.Row+dr, 0), max(rows-1, 0))
	next.Column = min(max(next.Column+dc, 0), max(m.columns()-1, 0))
	if next == m.cursor {
		return
	}
	if flat, ok := m.flat(); ok {
		m.err = m.g.DidUnhighlightItem(flat)
	}
	m.cursor = next
	m.scroll()
	if flat, ok := m.flat(); ok {
		m.err = m.g.DidHighlightItem(flat)
	}
}

func (m *viewModel) scroll() {
	rows := m.visibleRows()
	switch {
	case m.cursor.Row < m.top:
		m.top = m.cursor.Row
	case m.cursor.Row >= m.top+rows:
		m.top = m.cursor.Row - rows + 1
	}
	m.recycle()
}

func (m *viewModel) nextSection() {
	sections, _ := m.g.SectionCount()
	if sections == 0 {
		return
	}
	m.cursor = xlgrid.NewAddress((m.cursor.Section+1)%sections, 0, m.cursor.Column)
	m.top = 0
	m.recycle()
}

func (m *viewModel) toggleCell() {
	flat, ok := m.flat()
	if !ok {
		return
	}
	if m.g.IsSelected(xlgrid.KindCell, m.cursor) {
		if m.g.ShouldDeselectItem(flat) {
			m.err = m.g.DidDeselectItem(flat)
		}
	} else if m.g.ShouldSelectItem(flat) {
		m.err = m.g.DidSelectItem(flat)
	}
	// cascades outside the window are picked up on the next recycle
	m.recycle()
}

func (m *viewModel) toggleColumn() {
	header := xlgrid.NewAddress(0, 0, m.cursor.Column)
	if m.g.IsSelected(xlgrid.KindHeader, header) {
		m.err = m.g.DeselectSingleColumnSelection(header)
	} else {
		col := m.cursor.Column
		if m.err = m.g.DeselectColumnsSelection(&col); m.err == nil {
			m.err = m.g.SelectSingleColumnSelection(header)
		}
	}
	m.recycle()
}

func (m *viewModel) cellWidth(c int) int {
	w := int(m.wb.ColumnWidth(c))
	return min(max(w, minCellWidth), maxCellWidth)
}

func fit(s string, w int) string {
	r := []rune(s)
	if len(r) > w {
		r = r[:w]
	}
	return string(r) + strings.Repeat(" ", w-len(r))
}

func (m *viewModel) View() string {
	var b strings.Builder
	cols := m.columns()
	frozen := m.g.FrozenColumnCount()

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s  (section %d)", m.wb.SheetName(m.cursor.Section), m.cursor.Section)))
	b.WriteString("\n")

	b.WriteString("     ")
	for c := 0; c < cols; c++ {
		style := headerStyle
		if h, ok := m.scr.headers[c]; ok && h.selected {
			style = headerSelStyle
		}
		b.WriteString(style.Render(fit(m.wb.ColumnTitle(c), m.cellWidth(c))))
		b.WriteString(" ")
	}
	b.WriteString("\n")

	rows, _ := m.g.RowCount(m.cursor.Section)
	for r := m.top; r < min(m.top+m.visibleRows(), rows); r++ {
		b.WriteString(frozenStyle.Render(fmt.Sprintf("%4d ", r+1)))
		for c := 0; c < cols; c++ {
			addr := xlgrid.NewAddress(m.cursor.Section, r, c)
			st := m.scr.cell(xlgrid.FlatIndex{Section: addr.Section, Item: r*cols + c})
			style := lipgloss.NewStyle()
			switch {
			case addr == m.cursor:
				style = cursorStyle
			case st.selected:
				style = selectedStyle
			case st.highlighted:
				style = highlightStyle
			case c < frozen:
				style = frozenStyle
			}
			b.WriteString(style.Render(fit(m.wb.CellValue(addr), m.cellWidth(c))))
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.querying:
		b.WriteString(m.query.View())
	case m.err != nil:
		b.WriteString(errStyle.Render(m.err.Error()))
	default:
		b.WriteString(m.status.text)
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("arrows move  space select  c column  / query  x clear  tab sheet  q quit"))
	return b.String()
}

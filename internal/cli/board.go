package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/bizbook/internal/cli/formatter"
	"github.com/alexanderramin/bizbook/internal/domain"
	"github.com/alexanderramin/bizbook/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	boardMinColWidth  = 18
	boardDefaultWidth = 100
)

type boardKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Prev  key.Binding
	Next  key.Binding
	Jump  key.Binding
	Quit  key.Binding
}

func newBoardKeyMap() boardKeyMap {
	return boardKeyMap{
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "column")),
		Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "column")),
		Prev:  key.NewBinding(key.WithKeys("h", "<"), key.WithHelp("h/<", "move back")),
		Next:  key.NewBinding(key.WithKeys("l", ">"), key.WithHelp("l/>", "move on")),
		Jump:  key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "move to stage")),
		Quit:  key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k boardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Prev, k.Next, k.Jump, k.Quit}
}

func (k boardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// boardLoadedMsg carries the board contents read by load.
type boardLoadedMsg struct {
	columns []service.StageColumn
	clients map[string]string
	err     error
}

// opportunityMovedMsg reports the outcome of a stage change.
type opportunityMovedMsg struct {
	opp domain.Opportunity
	err error
}

// boardModel is the pipeline board: one column per stage, one card per
// opportunity. Moving a card changes the opportunity's stage.
type boardModel struct {
	opps     service.OpportunityService
	clients  service.ClientService
	currency string

	columns     []service.StageColumn
	clientNames map[string]string
	col, row    int

	// follow is the id of a card to select after the next load.
	follow string

	keys    boardKeyMap
	help    help.Model
	width   int
	loading bool
	status  string
	err     error
}

func newBoardModel(app *App) *boardModel {
	return &boardModel{
		opps:     app.Opportunities,
		clients:  app.Clients,
		currency: app.Currency,
		keys:     newBoardKeyMap(),
		help:     help.New(),
		width:    boardDefaultWidth,
		loading:  true,
	}
}

func (m *boardModel) Init() tea.Cmd {
	return m.load()
}

func (m *boardModel) load() tea.Cmd {
	opps, clients := m.opps, m.clients
	return func() tea.Msg {
		ctx := context.Background()
		cols, err := opps.ListByStage(ctx)
		if err != nil {
			return boardLoadedMsg{err: err}
		}
		list, err := clients.List(ctx)
		if err != nil {
			return boardLoadedMsg{err: err}
		}
		names := make(map[string]string, len(list))
		for _, c := range list {
			names[c.ID] = c.DisplayName()
		}
		return boardLoadedMsg{columns: cols, clients: names}
	}
}

func (m *boardModel) move(id string, to domain.Stage) tea.Cmd {
	opps := m.opps
	return func() tea.Msg {
		o, err := opps.MoveStage(context.Background(), id, to)
		return opportunityMovedMsg{opp: o, err: err}
	}
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case boardLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.columns = msg.columns
		m.clientNames = msg.clients
		m.selectFollowed()
		m.clamp()
		return m, nil

	case opportunityMovedMsg:
		switch {
		case msg.err == nil:
			m.status = fmt.Sprintf("%s → %s", msg.opp.Title, msg.opp.Stage)
		case errors.Is(msg.err, domain.ErrPersistence):
			m.status = formatter.Warning("moved but not saved: " + msg.err.Error())
		default:
			m.status = formatter.StyleRed.Render(msg.err.Error())
			return m, nil
		}
		m.follow = msg.opp.ID
		return m, m.load()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *boardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.row > 0 {
			m.row--
		}
	case key.Matches(msg, m.keys.Down):
		if m.row < len(m.cards())-1 {
			m.row++
		}
	case key.Matches(msg, m.keys.Left):
		m.stepColumn(-1)
	case key.Matches(msg, m.keys.Right):
		m.stepColumn(1)
	case key.Matches(msg, m.keys.Prev):
		if o, ok := m.selected(); ok && o.Stage.Prev() != o.Stage {
			return m, m.move(o.ID, o.Stage.Prev())
		}
	case key.Matches(msg, m.keys.Next):
		if o, ok := m.selected(); ok && o.Stage.Next() != o.Stage {
			return m, m.move(o.ID, o.Stage.Next())
		}
	case key.Matches(msg, m.keys.Jump):
		idx := int(msg.String()[0] - '1')
		if o, ok := m.selected(); ok && idx < len(domain.Stages) && domain.Stages[idx] != o.Stage {
			return m, m.move(o.ID, domain.Stages[idx])
		}
	}
	return m, nil
}

func (m *boardModel) cards() []domain.Opportunity {
	if m.col < 0 || m.col >= len(m.columns) {
		return nil
	}
	return m.columns[m.col].Opportunities
}

func (m *boardModel) selected() (domain.Opportunity, bool) {
	cards := m.cards()
	if m.row < 0 || m.row >= len(cards) {
		return domain.Opportunity{}, false
	}
	return cards[m.row], true
}

func (m *boardModel) stepColumn(delta int) {
	next := m.col + delta
	if next < 0 || next >= len(m.columns) {
		return
	}
	m.col = next
	m.clamp()
}

func (m *boardModel) selectFollowed() {
	if m.follow == "" {
		return
	}
	for c, column := range m.columns {
		for r, o := range column.Opportunities {
			if o.ID == m.follow {
				m.col, m.row = c, r
			}
		}
	}
	m.follow = ""
}

func (m *boardModel) clamp() {
	if m.col >= len(m.columns) {
		m.col = max(len(m.columns)-1, 0)
	}
	if n := len(m.cards()); m.row >= n {
		m.row = max(n-1, 0)
	}
}

func (m *boardModel) View() string {
	if m.loading {
		return "\n  " + formatter.Dim("Loading pipeline...")
	}
	if m.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+m.err.Error())
	}

	n := max(len(m.columns), 1)
	colWidth := max(m.width/n-1, boardMinColWidth)

	rendered := make([]string, 0, len(m.columns))
	for c, column := range m.columns {
		rendered = append(rendered, m.renderColumn(c, column, colWidth))
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(" " + m.status + "\n")
	}
	b.WriteString(" " + m.help.View(m.keys))
	return b.String()
}

func (m *boardModel) renderColumn(c int, column service.StageColumn, width int) string {
	color := formatter.StageColor(column.Stage)
	inner := width - 2

	total := domain.ZeroAmount
	for _, o := range column.Opportunities {
		total = total.Add(o.Value)
	}

	lines := []string{
		lipgloss.NewStyle().Foreground(color).Bold(true).Render(
			fmt.Sprintf("%d %s (%d)", column.Stage.Index()+1, column.Stage, len(column.Opportunities))),
		formatter.Dim(formatter.Money(total, m.currency)),
		"",
	}
	for r, o := range column.Opportunities {
		lines = append(lines, m.renderCard(o, inner, c == m.col && r == m.row))
	}
	if len(column.Opportunities) == 0 {
		lines = append(lines, formatter.Dim("empty"))
	}

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(formatter.ColorDim).
		Width(inner)
	if c == m.col {
		border = border.BorderForeground(color)
	}
	return border.Render(strings.Join(lines, "\n"))
}

func (m *boardModel) renderCard(o domain.Opportunity, width int, selected bool) string {
	client, ok := m.clientNames[o.ClientID]
	if !ok {
		client = "? " + formatter.ShortID(o.ClientID)
	}
	title := formatter.Truncate(o.Title, width-2)
	body := title + "\n" +
		formatter.Dim(formatter.Truncate(client, width-2)) + "\n" +
		formatter.Money(o.Value, m.currency)

	if selected {
		return lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(formatter.ColorHeader).
			PaddingLeft(1).
			Render(body)
	}
	return lipgloss.NewStyle().PaddingLeft(2).Render(body)
}

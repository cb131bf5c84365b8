package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/user/gifdeck/internal/clipboard"
	"github.com/user/gifdeck/internal/config"
	"github.com/user/gifdeck/internal/db"
	"github.com/user/gifdeck/internal/klipy"
	"github.com/user/gifdeck/internal/media"
	"github.com/user/gifdeck/internal/search"
)

type model struct {
	cfg      *config.Config
	store    *db.Store
	coord    *search.Coordinator
	client   *klipy.Client
	actions  *Actions
	settings *db.Settings

	input textinput.Model
	items []search.Item
	sel   Selection

	width  int
	height int

	showSettings   bool
	settingsCursor int

	toast string
	err   error

	updates chan struct{}
}

type stateMsg struct{}

type trendingMsg struct {
	page *klipy.Page
	err  error
}

type actionMsg struct {
	desc string
	err  error
	quit bool
}

type clearToastMsg struct{}

func newModel(cfg *config.Config, store *db.Store, settings *db.Settings) model {
	ti := textinput.New()
	ti.Placeholder = "Search GIFs..."
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	client := klipy.NewClientWithBaseURL(cfg.APIKey(settings.ShowAds), cfg.API.BaseURL)

	coord := search.NewCoordinator(client, store, search.Options{
		PerPage:  cfg.Search.PerPage,
		Debounce: time.Duration(cfg.Debounce()) * time.Millisecond,
		Watchdog: time.Duration(cfg.Watchdog()) * time.Millisecond,
	})

	downloader := media.NewDownloader(cfg.MediaDir())
	actions := NewActions(store, clipboard.System{}, downloader)

	m := model{
		cfg:      cfg,
		store:    store,
		coord:    coord,
		client:   client,
		actions:  actions,
		settings: settings,
		input:    ti,
		sel:      NewSelection(),
		updates:  make(chan struct{}, 1),
	}

	coord.SetNotify(func() {
		select {
		case m.updates <- struct{}{}:
		default:
		}
	})

	return m
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.waitForState()}
	if m.cfg.APIKey(m.settings.ShowAds) != "" {
		cmds = append(cmds, m.loadTrending)
	} else {
		cmds = append(cmds, m.loadFavorites)
	}
	return tea.Batch(cmds...)
}

// waitForState blocks on the coordinator's notify channel and turns each
// change into a message.
func (m model) waitForState() tea.Cmd {
	updates := m.updates
	return func() tea.Msg {
		<-updates
		return stateMsg{}
	}
}

func (m model) loadFavorites() tea.Msg {
	m.coord.SetQuery("")
	return nil
}

func (m model) loadTrending() tea.Msg {
	perPage := m.cfg.Search.PerPage
	if perPage <= 0 {
		perPage = search.DefaultPerPage
	}
	page, err := m.client.Trending(context.Background(), 1, perPage)
	return trendingMsg{page: page, err: err}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 20
		return m, nil

	case stateMsg:
		snap := m.coord.Snapshot()
		old := m.items
		m.items = snap.Items
		m.sel.Apply(old, m.items)
		if snap.Err != "" {
			m.err = fmt.Errorf("%s", snap.Err)
		} else {
			m.err = nil
		}
		return m, m.waitForState()

	case trendingMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		if m.input.Value() == "" {
			m.items = itemsFromPage(msg.page)
			m.sel.Reset()
			m.err = nil
		}
		return m, nil

	case actionMsg:
		if msg.err != nil {
			m.toast = "error: " + msg.err.Error()
		} else {
			m.toast = msg.desc
		}
		cmds := []tea.Cmd{tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return clearToastMsg{}
		})}
		if msg.quit {
			return m, tea.Quit
		}
		// The favorites view changed if we were looking at it.
		if msg.err == nil && m.input.Value() == "" {
			cmds = append(cmds, m.loadFavorites)
		}
		return m, tea.Batch(cmds...)

	case clearToastMsg:
		m.toast = ""
		return m, nil
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showSettings {
		return m.handleSettingsKey(msg)
	}

	switch msg.String() {
	case "ctrl+c":
		m.coord.CancelPending()
		return m, tea.Quit

	case "esc":
		if m.input.Value() != "" {
			m.input.SetValue("")
			m.coord.SetQuery("")
			return m, nil
		}
		return m, tea.Quit

	case "up", "down", "left", "right":
		count := len(m.items)
		columns := ColumnsForWidth(m.width)
		switch msg.String() {
		case "up":
			m.sel.MoveRow(-1, columns, count)
		case "down":
			m.sel.MoveRow(1, columns, count)
		case "left":
			m.sel.Move(-1, count)
		case "right":
			m.sel.Move(1, count)
		}
		// Nearing the tail of the grid pulls in the next page.
		if count > 0 && m.sel.Index() >= count-columns {
			m.coord.LoadMore()
		}
		return m, nil

	case "enter":
		return m, m.activateSelected()

	case "ctrl+f":
		return m, m.toggleSelected()

	case "ctrl+t":
		m.input.SetValue("")
		m.coord.CancelPending()
		return m, m.loadTrending

	case "ctrl+s":
		m.showSettings = true
		m.settingsCursor = 0
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.coord.SetQuery(m.input.Value())
	}
	return m, cmd
}

func (m model) selectedItem() (search.Item, bool) {
	i := m.sel.Index()
	if i == NoSelection || i >= len(m.items) {
		return search.Item{}, false
	}
	return m.items[i], true
}

func (m model) activateSelected() tea.Cmd {
	it, ok := m.selectedItem()
	if !ok {
		return nil
	}
	mode := m.settings.ClipboardMode
	quit := m.settings.CloseAfterSelection
	return func() tea.Msg {
		desc, err := m.actions.Activate(context.Background(), it, mode)
		return actionMsg{desc: desc, err: err, quit: quit && err == nil}
	}
}

func (m model) toggleSelected() tea.Cmd {
	it, ok := m.selectedItem()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		desc, err := m.actions.ToggleFavorite(context.Background(), it)
		return actionMsg{desc: desc, err: err}
	}
}

func itemsFromPage(page *klipy.Page) []search.Item {
	items := make([]search.Item, 0, len(page.Gifs))
	seen := map[string]struct{}{}
	for _, g := range page.Gifs {
		it := search.RemoteItem(g)
		if _, dup := seen[it.ID()]; dup {
			continue
		}
		items = append(items, it)
		seen[it.ID()] = struct{}{}
	}
	return items
}

// Run starts the picker TUI.
func Run(cfg *config.Config) error {
	store, err := db.NewStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	settings, err := store.Settings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	p := tea.NewProgram(newModel(cfg, store, settings), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// --- view ---

var (
	searchBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	selectedCellStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("86")).
				Padding(0, 1)

	faintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	toastStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

func (m model) View() string {
	if m.showSettings {
		return m.settingsView()
	}

	var b strings.Builder

	b.WriteString(searchBoxStyle.Render(m.input.View()))
	b.WriteString("\n\n")
	b.WriteString(m.gridView())
	b.WriteString("\n")
	b.WriteString(m.statusView())
	b.WriteString("\n")
	b.WriteString(faintStyle.Render("[↑↓←→]nav [Enter]copy [^F]avorite [^T]rending [^S]ettings [Esc]clear/quit"))

	return b.String()
}

func (m model) gridView() string {
	if len(m.items) == 0 {
		return faintStyle.Render("  No results.")
	}

	columns := ColumnsForWidth(m.width)
	cellWidth := 24
	if m.width > 0 {
		if w := m.width/columns - 4; w > 10 {
			cellWidth = w
		}
	}

	var rows []string
	for start := 0; start < len(m.items); start += columns {
		end := start + columns
		if end > len(m.items) {
			end = len(m.items)
		}

		cells := make([]string, 0, columns)
		for i := start; i < end; i++ {
			cells = append(cells, m.cellView(i, cellWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return strings.Join(rows, "\n")
}

func (m model) cellView(i, cellWidth int) string {
	it := m.items[i]

	marker := " "
	if it.Kind == search.KindFavorite {
		marker = "♥"
	}

	title := it.Title()
	if title == "" {
		title = "(untitled)"
	}
	if len(title) > cellWidth {
		title = title[:cellWidth-3] + "..."
	}

	w, h := it.Dimensions()
	meta := fmt.Sprintf("%s %dx%d", marker, w, h)

	content := lipgloss.NewStyle().Width(cellWidth).Render(title + "\n" + faintStyle.Render(meta))
	if i == m.sel.Index() {
		return selectedCellStyle.Render(content)
	}
	return cellStyle.Render(content)
}

func (m model) statusView() string {
	snap := m.coord.Snapshot()

	var parts []string
	if snap.Searching {
		parts = append(parts, "searching...")
	}
	if snap.LoadingMore {
		parts = append(parts, "loading more...")
	}
	if snap.Total > 0 {
		parts = append(parts, fmt.Sprintf("%d of %d", len(m.items), snap.Total))
	} else if len(m.items) > 0 {
		parts = append(parts, fmt.Sprintf("%d items", len(m.items)))
	}
	if m.toast != "" {
		parts = append(parts, toastStyle.Render(m.toast))
	}
	if m.err != nil {
		parts = append(parts, errStyle.Render(m.err.Error()))
	}

	return faintStyle.Render(strings.Join(parts, "  "))
}

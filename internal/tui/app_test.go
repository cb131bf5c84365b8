package tui

import (
	"context"
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/user/gifdeck/internal/db"
	"github.com/user/gifdeck/internal/klipy"
	"github.com/user/gifdeck/internal/search"
)

type stubRemote struct{}

func (stubRemote) Search(ctx context.Context, query string, page, perPage int) (*klipy.Page, error) {
	return &klipy.Page{Page: page, PerPage: perPage}, nil
}

func testModel(t *testing.T) model {
	t.Helper()

	store, err := db.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ti := textinput.New()
	ti.Focus()

	return model{
		store:    store,
		coord:    search.NewCoordinator(stubRemote{}, store, search.Options{}),
		settings: db.DefaultSettings(),
		input:    ti,
		sel:      NewSelection(),
		updates:  make(chan struct{}, 1),
		width:    100,
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up", "down", "left", "right", "enter", "esc", "ctrl+s":
		types := map[string]tea.KeyType{
			"up":     tea.KeyUp,
			"down":   tea.KeyDown,
			"left":   tea.KeyLeft,
			"right":  tea.KeyRight,
			"enter":  tea.KeyEnter,
			"esc":    tea.KeyEsc,
			"ctrl+s": tea.KeyCtrlS,
		}
		return tea.KeyMsg{Type: types[s]}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestItemsFromPageSuppressesDuplicates(t *testing.T) {
	page := &klipy.Page{Gifs: []klipy.Gif{
		{ID: "1", Title: "a"},
		{ID: "2", Title: "b"},
		{ID: "1", Title: "a again"},
	}}

	items := itemsFromPage(page)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].ID() != "klipy:1" || items[1].ID() != "klipy:2" {
		t.Errorf("items = %s, %s", items[0].ID(), items[1].ID())
	}
}

func TestArrowKeysMoveSelection(t *testing.T) {
	m := testModel(t)
	m.items = remoteItems(0, 10)
	m.width = 100 // 3 columns

	next, _ := m.handleKey(keyMsg("right"))
	m = next.(model)
	if m.sel.Index() != 0 {
		t.Fatalf("first movement should select the first item, got %d", m.sel.Index())
	}

	next, _ = m.handleKey(keyMsg("right"))
	m = next.(model)
	if m.sel.Index() != 1 {
		t.Errorf("index = %d, want 1", m.sel.Index())
	}

	next, _ = m.handleKey(keyMsg("down"))
	m = next.(model)
	if m.sel.Index() != 4 {
		t.Errorf("down one row in a 3-column grid: index = %d, want 4", m.sel.Index())
	}

	next, _ = m.handleKey(keyMsg("up"))
	m = next.(model)
	if m.sel.Index() != 1 {
		t.Errorf("index = %d, want 1", m.sel.Index())
	}
}

func TestEscClearsQueryBeforeQuitting(t *testing.T) {
	m := testModel(t)
	m.input.SetValue("cat")

	next, cmd := m.handleKey(keyMsg("esc"))
	m = next.(model)
	if m.input.Value() != "" {
		t.Errorf("input = %q, want cleared", m.input.Value())
	}
	if cmd != nil {
		t.Error("clearing the query must not quit")
	}

	_, cmd = m.handleKey(keyMsg("esc"))
	if cmd == nil {
		t.Fatal("esc on an empty query should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("cmd returned %T, want tea.QuitMsg", cmd())
	}
}

func TestTypingForwardsQueryToCoordinator(t *testing.T) {
	m := testModel(t)

	next, _ := m.handleKey(keyMsg("c"))
	m = next.(model)
	if m.input.Value() != "c" {
		t.Fatalf("input = %q", m.input.Value())
	}
	if got := m.coord.Snapshot().Query; got != "c" {
		t.Errorf("coordinator query = %q, want %q", got, "c")
	}
	m.coord.CancelPending()
}

func TestWindowResizeUpdatesLayout(t *testing.T) {
	m := testModel(t)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 24})
	m = next.(model)
	if m.width != 60 {
		t.Errorf("width = %d", m.width)
	}
	if ColumnsForWidth(m.width) != 2 {
		t.Errorf("columns = %d, want 2", ColumnsForWidth(m.width))
	}
}

func TestStateMsgAppliesSnapshotAndRearms(t *testing.T) {
	m := testModel(t)
	m.items = remoteItems(0, 5)
	m.sel.Select(2)

	// The coordinator holds a different result set, so the selection resets.
	next, cmd := m.Update(stateMsg{})
	m = next.(model)
	if m.sel.Index() != NoSelection {
		t.Errorf("index = %d, want NoSelection", m.sel.Index())
	}
	if cmd == nil {
		t.Error("the state watcher must re-arm after every state message")
	}
}

func TestTrendingMsgIgnoredWhileQueryActive(t *testing.T) {
	m := testModel(t)
	m.input.SetValue("cat")
	m.items = remoteItems(0, 3)

	page := &klipy.Page{Gifs: []klipy.Gif{{ID: "99", Title: "late trending"}}}
	next, _ := m.Update(trendingMsg{page: page})
	m = next.(model)
	if len(m.items) != 3 {
		t.Errorf("a late trending response must not clobber active search results, got %d items", len(m.items))
	}
}

func TestSettingsScreenToggle(t *testing.T) {
	m := testModel(t)

	next, _ := m.handleKey(keyMsg("ctrl+s"))
	m = next.(model)
	if !m.showSettings {
		t.Fatal("ctrl+s should open the settings screen")
	}

	next, _ = m.handleKey(keyMsg("down"))
	m = next.(model)
	if m.settingsCursor != 1 {
		t.Errorf("cursor = %d, want 1", m.settingsCursor)
	}

	next, _ = m.handleKey(keyMsg("esc"))
	m = next.(model)
	if m.showSettings {
		t.Error("esc should close the settings screen")
	}
}

func TestToggleClipboardModeSetting(t *testing.T) {
	m := testModel(t)
	m.showSettings = true
	m.settingsCursor = 0 // clipboard_mode

	// The default mode is file, so one toggle lands on url.
	next, cmd := m.handleKey(keyMsg("enter"))
	m = next.(model)
	if m.settings.ClipboardMode != db.ClipboardURL {
		t.Errorf("mode = %s, want url", m.settings.ClipboardMode)
	}
	if cmd == nil {
		t.Fatal("toggling must persist")
	}
	if msg, ok := cmd().(actionMsg); !ok || msg.err != nil {
		t.Fatalf("save failed: %+v", msg)
	}

	stored, err := m.store.Settings()
	if err != nil {
		t.Fatalf("read settings: %v", err)
	}
	if stored.ClipboardMode != db.ClipboardURL {
		t.Errorf("stored mode = %s, want url", stored.ClipboardMode)
	}
}

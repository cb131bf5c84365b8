package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/user/gifdeck/internal/db"
)

// settingsFields lists the toggleable settings in display order.
var settingsFields = []string{
	"clipboard_mode",
	"theme",
	"close_after_selection",
	"show_ads",
	"launch_at_startup",
}

func (m model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+s", "q":
		m.showSettings = false
		return m, nil

	case "up", "k":
		if m.settingsCursor > 0 {
			m.settingsCursor--
		}
		return m, nil

	case "down", "j":
		if m.settingsCursor < len(settingsFields)-1 {
			m.settingsCursor++
		}
		return m, nil

	case "enter", " ", "left", "right":
		m.toggleSetting(settingsFields[m.settingsCursor])
		return m, m.saveSettings()
	}

	return m, nil
}

func (m *model) toggleSetting(field string) {
	switch field {
	case "clipboard_mode":
		if m.settings.ClipboardMode == db.ClipboardFile {
			m.settings.ClipboardMode = db.ClipboardURL
		} else {
			m.settings.ClipboardMode = db.ClipboardFile
		}
	case "theme":
		switch m.settings.Theme {
		case db.ThemeSystem:
			m.settings.Theme = db.ThemeLight
		case db.ThemeLight:
			m.settings.Theme = db.ThemeDark
		default:
			m.settings.Theme = db.ThemeSystem
		}
	case "close_after_selection":
		m.settings.CloseAfterSelection = !m.settings.CloseAfterSelection
	case "show_ads":
		m.settings.ShowAds = !m.settings.ShowAds
	case "launch_at_startup":
		m.settings.LaunchAtStartup = !m.settings.LaunchAtStartup
	}
}

func (m model) saveSettings() tea.Cmd {
	settings := *m.settings
	store := m.store
	return func() tea.Msg {
		if err := store.SaveSettings(&settings); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{desc: "settings saved"}
	}
}

func (m model) settingsValue(field string) string {
	switch field {
	case "clipboard_mode":
		return string(m.settings.ClipboardMode)
	case "theme":
		return string(m.settings.Theme)
	case "close_after_selection":
		return onOff(m.settings.CloseAfterSelection)
	case "show_ads":
		return onOff(m.settings.ShowAds)
	case "launch_at_startup":
		return onOff(m.settings.LaunchAtStartup)
	}
	return ""
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

var settingsTitleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)

func (m model) settingsView() string {
	var b strings.Builder

	b.WriteString(settingsTitleStyle.Render("Settings"))
	b.WriteString("\n")

	for i, field := range settingsFields {
		cursor := "  "
		if i == m.settingsCursor {
			cursor = "> "
		}
		label := strings.ReplaceAll(field, "_", " ")
		b.WriteString(fmt.Sprintf("%s%-24s %s\n", cursor, label, m.settingsValue(field)))
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %-24s %s\n", "hotkey", m.settings.Hotkey))
	b.WriteString("\n")
	b.WriteString(faintStyle.Render("[↑↓]select [Enter/Space]toggle [Esc]back"))

	return b.String()
}

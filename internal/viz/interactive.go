package viz

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/orbitsim/internal/config"
)

var scenarioInfo = map[string]string{
	"ring":      "bodies orbiting one sun",
	"binary":    "two suns, shared ring",
	"disk":      "dense accretion disk",
	"hierarchy": "planets with moons",
	"cloud":     "random cloud, no sun",
}

const (
	stateMenu = iota
	stateSim
)

type entry struct {
	scenario, preset string
}

func (e entry) String() string { return e.scenario + "/" + e.preset }

type picker struct {
	state, cursor int
	entries       []entry
	width, height int
	snapshotDir   string
	err           error
	live          Model
}

func presetEntries() []entry {
	scenarios := make([]string, 0, len(config.Presets))
	for s := range config.Presets {
		scenarios = append(scenarios, s)
	}
	sort.Strings(scenarios)

	var out []entry
	for _, s := range scenarios {
		for _, p := range config.ListPresets(s) {
			out = append(out, entry{s, p})
		}
	}
	return out
}

func newPicker(snapshotDir string) picker {
	return picker{state: stateMenu, entries: presetEntries(), snapshotDir: snapshotDir}
}

func (m picker) Init() tea.Cmd { return nil }

func (m picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateSim {
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.menuKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	return m, nil
}

func (m picker) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "enter", " ":
		return m.start()
	}
	return m, nil
}

func (m picker) start() (tea.Model, tea.Cmd) {
	if len(m.entries) == 0 {
		return m, nil
	}
	e := m.entries[m.cursor]
	live, err := NewModel(Options{
		Config:      config.GetPreset(e.scenario, e.preset),
		SnapshotDir: m.snapshotDir,
	})
	if err != nil {
		m.err = err
		return m, nil
	}
	if m.width > 0 && m.height > 0 {
		live.resize(m.width, m.height)
	}
	m.live, m.state, m.err = live, stateSim, nil
	return m, m.live.Init()
}

func (m picker) View() string {
	if m.state == stateSim {
		return m.live.View()
	}

	title := lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	sub := lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	cursor := lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	selected := lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	desc := lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	faded := lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	key := lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)

	var b strings.Builder
	b.WriteString("\n\n    " + title.Render("ORBITSIM") + "\n    " + sub.Render("2-d orbit simulation") + "\n    " + sub.Render("─────────────────────────") + "\n\n")
	for i, e := range m.entries {
		name := fmt.Sprintf("%-20s", e.String())
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", cursor.Render("▸"), selected.Render(name), desc.Render(scenarioInfo[e.scenario])))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", faded.Render(name), faded.Render(scenarioInfo[e.scenario])))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + lipgloss.NewStyle().Foreground(lipgloss.Color("#ff8800")).Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + key.Render("j/k") + faded.Render(" navigate  ") + key.Render("enter") + faded.Render(" start  ") + key.Render("q") + faded.Render(" quit") + "\n")
	return b.String()
}

// RunInteractive shows the preset picker and runs the chosen preset live.
func RunInteractive(snapshotDir string) error {
	_, err := tea.NewProgram(newPicker(snapshotDir), tea.WithAltScreen()).Run()
	return err
}

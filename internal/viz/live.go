package viz

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/orbitsim/internal/body"
	"github.com/san-kum/orbitsim/internal/collision"
	"github.com/san-kum/orbitsim/internal/compute"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/engine"
	"github.com/san-kum/orbitsim/internal/export"
	"github.com/san-kum/orbitsim/internal/force"
	"github.com/san-kum/orbitsim/internal/integrate"
)

const (
	historyCapacity = 600
	statsWidth      = 42
	snapshotSize    = 800
)

type TickMsg time.Time

type configMsg struct{ cfg *config.Config }

type errMsg struct{ err error }

// Options configures a live Model.
type Options struct {
	Config *config.Config
	// Updates delivers reloaded configs; only the physics section is applied.
	Updates <-chan *config.Config
	Errors  <-chan error
	// Backend runs the parallel force model. Nil uses the process-wide one.
	Backend     compute.Backend
	SnapshotDir string
}

// Model is the live view of one scene.
type Model struct {
	cfg     *config.Config
	engine  *engine.Engine
	world   *body.World
	initial []body.Body
	params  engine.Params

	canvas *Canvas
	camera Camera
	theme  Theme
	focus  int

	running  bool
	showHelp bool
	tick     int
	last     engine.Report

	energy     []float64
	population []float64

	status string
	err    error

	updates     <-chan *config.Config
	errs        <-chan error
	snapshotDir string
}

// NewModel generates the configured scene and prepares the view.
func NewModel(opts Options) (Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	params, err := cfg.Physics.EngineParams()
	if err != nil {
		return Model{}, err
	}
	world, err := cfg.World()
	if err != nil {
		return Model{}, err
	}

	w, h := cfg.View.Width, cfg.View.Height
	if w <= 0 {
		w = config.DefaultWidth
	}
	if h <= 0 {
		h = config.DefaultHeight
	}

	m := Model{
		cfg:         cfg,
		engine:      engine.New(opts.Backend, cfg.Seed),
		world:       world,
		initial:     world.Snapshot(),
		params:      params,
		canvas:      NewCanvas(w, h),
		theme:       GetTheme(cfg.View.Theme),
		focus:       integrate.NoBody,
		running:     true,
		energy:      make([]float64, 0, historyCapacity),
		population:  make([]float64, 0, historyCapacity),
		updates:     opts.Updates,
		errs:        opts.Errors,
		snapshotDir: opts.SnapshotDir,
	}
	m.fit()
	m.record()
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tickCmd(), waitConfig(m.updates), waitErr(m.errs))
}

func (m Model) tickCmd() tea.Cmd {
	fps := m.cfg.View.FPS
	if fps <= 0 {
		fps = config.DefaultFPS
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func waitConfig(ch <-chan *config.Config) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return nil
		}
		return configMsg{cfg}
	}
}

func waitErr(ch <-chan error) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		err, ok := <-ch
		if !ok {
			return nil
		}
		return errMsg{err}
	}
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tickCmd()
	case configMsg:
		m.apply(msg.cfg)
		return m, waitConfig(m.updates)
	case errMsg:
		m.err = msg.err
		return m, waitErr(m.errs)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case ".":
		if !m.running {
			m.step()
		}
	case "r":
		m.reset()
	case "l":
		m.params.Law = nextLaw(m.params.Law)
	case "c":
		m.params.Collision = (m.params.Collision + 1) % (collision.PolicyBounce + 1)
	case "p":
		if m.params.Interaction == body.AllPairs {
			m.params.Interaction = body.ParentOnly
		} else {
			m.params.Interaction = body.AllPairs
		}
	case "f":
		m.followNext()
	case "[":
		m.params.TimeScale /= 2
	case "]":
		m.params.TimeScale *= 2
	case "+", "=":
		m.camera.ZoomBy(1.25)
	case "-", "_":
		m.camera.ZoomBy(0.8)
	case "up":
		m.pan(0, -0.1)
	case "down":
		m.pan(0, 0.1)
	case "left":
		m.pan(-0.1, 0)
	case "right":
		m.pan(0.1, 0)
	case "0":
		m.focus = integrate.NoBody
		m.fit()
	case "t":
		m.theme = NextTheme(m.theme)
	case "s":
		m.snapshot()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// step advances the scene by one engine tick.
func (m *Model) step() {
	rep, err := m.engine.Tick(m.world, m.params)
	if err != nil {
		m.err = err
		m.running = false
		return
	}
	m.tick++
	m.last = rep
	if len(rep.Deleted) > 0 {
		m.focus = rep.Retarget(m.focus)
	}
	m.record()
}

func (m *Model) record() {
	m.energy = appendCapped(m.energy, body.KineticEnergy(m.world.Bodies()))
	m.population = appendCapped(m.population, float64(m.world.Len()))
}

func appendCapped(s []float64, v float64) []float64 {
	s = append(s, v)
	if len(s) > historyCapacity {
		s = s[len(s)-historyCapacity:]
	}
	return s
}

// reset restores the initial scene and clears history.
func (m *Model) reset() {
	m.world = body.NewWorld(m.initial...)
	m.tick = 0
	m.last = engine.Report{}
	m.focus = integrate.NoBody
	m.energy = m.energy[:0]
	m.population = m.population[:0]
	m.err = nil
	m.status = "reset"
	m.fit()
	m.record()
}

// apply swaps in the physics section of a reloaded config.
func (m *Model) apply(cfg *config.Config) {
	if cfg == nil {
		return
	}
	params, err := cfg.Physics.EngineParams()
	if err != nil {
		m.err = err
		return
	}
	m.params = params
	m.cfg.Physics = cfg.Physics
	m.err = nil
	m.status = "config reloaded"
}

func nextLaw(l force.Law) force.Law {
	laws := force.Laws()
	for i, law := range laws {
		if law == l {
			return laws[(i+1)%len(laws)]
		}
	}
	return laws[0]
}

// followNext cycles the focus through the bodies and back to a free camera.
func (m *Model) followNext() {
	n := m.world.Len()
	if n == 0 || m.focus >= n-1 {
		m.focus = integrate.NoBody
		return
	}
	m.focus++
}

func (m *Model) pan(fx, fy float64) {
	m.focus = integrate.NoBody
	m.camera.Pan(fx, fy, m.canvas)
}

func (m *Model) fit() {
	m.camera.Fit(m.world.Bodies(), m.canvas)
	if z := m.cfg.View.Zoom; z > 0 {
		m.camera.ZoomBy(z)
	}
}

func (m *Model) resize(w, h int) {
	cw := max(w-statsWidth-6, 10)
	ch := max(h-2, 5)
	m.canvas = NewCanvas(cw, ch)
	if m.focus == integrate.NoBody {
		m.fit()
	}
}

func (m *Model) snapshot() {
	name := fmt.Sprintf("%s_%06d.svg", m.cfg.Scenario, m.tick)
	path := filepath.Join(m.snapshotDir, name)
	if err := export.WriteFile(path, export.SceneSVG(m.world.Bodies(), snapshotSize, snapshotSize)); err != nil {
		m.err = err
		return
	}
	m.status = "saved " + path
}

// draw renders the scene into the canvas, following the focused body.
func (m *Model) draw() {
	m.canvas.Clear()
	bodies := m.world.Bodies()
	if m.focus >= 0 && m.focus < len(bodies) {
		m.camera.Follow(&bodies[m.focus])
	}

	if m.params.Interaction == body.ParentOnly {
		link, _ := colorful.Hex(string(m.theme.Muted))
		for i := range bodies {
			b := &bodies[i]
			if !b.HasParent(len(bodies)) || b.Parent == i {
				continue
			}
			p := &bodies[b.Parent]
			x0, y0 := m.camera.Project(b.X, b.Y, m.canvas)
			x1, y1 := m.camera.Project(p.X, p.Y, m.canvas)
			if onCanvas(x0, y0, m.canvas) || onCanvas(x1, y1, m.canvas) {
				m.canvas.DrawLine(x0, y0, x1, y1, link)
			}
		}
	}

	for i := range bodies {
		b := &bodies[i]
		if math.IsNaN(b.X) || math.IsNaN(b.Y) {
			continue
		}
		x, y := m.camera.Project(b.X, b.Y, m.canvas)
		r := int(b.Radius * m.camera.Zoom)
		if x+r < 0 || y+r < 0 || x-r >= m.canvas.SubWidth() || y-r >= m.canvas.SubHeight() {
			continue
		}
		m.canvas.DrawDisc(x, y, r, b.Color)
	}
}

func onCanvas(x, y int, cv *Canvas) bool {
	return x >= 0 && y >= 0 && x < cv.SubWidth() && y < cv.SubHeight()
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()

	th := m.theme
	label := lipgloss.NewStyle().Foreground(th.Muted).Width(12)
	value := lipgloss.NewStyle().Foreground(th.Text)
	graph := lipgloss.NewStyle().Foreground(th.Graph)
	warn := lipgloss.NewStyle().Foreground(th.Warning)
	panel := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(th.Muted).
		Padding(1, 2).
		Width(statsWidth)

	row := func(k, v string) string { return label.Render(k) + value.Render(v) + "\n" }

	var s strings.Builder
	s.WriteString(GradientText("ORBITSIM", th.Primary, th.Accent) + "  " + value.Render(m.cfg.Scenario) + "\n")
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(lipgloss.NewStyle().Foreground(th.Accent).Bold(true).Render(status) + "\n\n")

	s.WriteString(row("Tick", fmt.Sprintf("%d", m.tick)))
	s.WriteString(row("Bodies", fmt.Sprintf("%d", m.world.Len())))
	if n := len(m.energy); n > 0 {
		s.WriteString(row("Kinetic", fmt.Sprintf("%.4g", m.energy[n-1])))
	}
	s.WriteString(row("Pairs", fmt.Sprintf("%d", m.last.Pairs)))
	if g := m.engine.Grid(); m.params.Collision != collision.PolicyNone && g.Len() > 0 {
		s.WriteString(row("Cells", fmt.Sprintf("%d of %g", g.Len(), g.CellSize())))
	}
	s.WriteString(row("Law", m.params.Law.String()))
	s.WriteString(row("Collision", m.params.Collision.String()))
	s.WriteString(row("Mode", m.params.Interaction.String()))
	s.WriteString(row("Time scale", fmt.Sprintf("%g", m.params.TimeScale)))
	if m.focus != integrate.NoBody {
		s.WriteString(row("Follow", fmt.Sprintf("#%d", m.focus)))
	}
	model := m.last.Model
	if model == "" {
		model = "-"
	}
	s.WriteString(row("Force", model))
	s.WriteString(row("Backend", m.engine.Backend().Name()))

	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(4), asciigraph.Width(statsWidth-12), asciigraph.Caption("kinetic energy"))
		s.WriteString("\n" + graph.Render(chart) + "\n")
	}
	s.WriteString("\n" + SparklineChart(m.population, statsWidth-6, graph) + "\n")

	if m.err != nil {
		s.WriteString("\n" + warn.Render(m.err.Error()) + "\n")
	} else if m.status != "" {
		s.WriteString("\n" + label.UnsetWidth().Render(m.status) + "\n")
	}
	s.WriteString("\n" + Separator(statsWidth-6, label.UnsetWidth()) + "\n")
	s.WriteString(label.UnsetWidth().Render("SP:Pause R:Reset Q:Quit ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Padding(1, 2).Render(m.canvas.Render()),
		panel.Render(s.String()))
	if m.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

const helpText = `
  Space  pause/resume       .    single tick
  R      reset              L    cycle force law
  C      cycle collision    P    toggle parent mode
  F      follow next body   [ ]  time scale
  + -    zoom               0    fit scene
  arrows pan                T    cycle theme
  S      save SVG snapshot  Q    quit
`

// RunLive runs the viewer until the user quits.
func RunLive(opts Options) error {
	m, err := NewModel(opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

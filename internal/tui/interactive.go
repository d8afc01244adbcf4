package tui

import (
	"context"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/solowirf/internal/analysis"
	"github.com/san-kum/solowirf/internal/config"
	"github.com/san-kum/solowirf/internal/irf"
	"github.com/san-kum/solowirf/internal/viz"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

type state int

const (
	stateMenu state = iota
	stateConfig
	stateChart
)

const customEntry = "custom"

// paramStep is the left/right adjustment of an impulse value.
const paramStep = 0.01

type model struct {
	state  state
	cursor int
	menu   []string

	base   *config.Config
	cfg    *config.Config
	params []string

	paramCursor int
	editing     bool
	editBuf     string

	variable irf.Variable
	bgp      bool
	logScale bool
	theme    int

	table   *irf.Table
	scaling irf.Scaling
	summary analysis.Convergence
	err     error
	gen     int

	width  int
	height int
}

// builtMsg carries the result of build generation gen. Results of older
// generations are dropped.
type builtMsg struct {
	gen     int
	table   *irf.Table
	scaling irf.Scaling
	summary analysis.Convergence
	err     error
}

// NewExplorer starts the explorer on the preset menu. base is offered as
// the "custom" entry and supplies the parameters of every preset.
func NewExplorer(base *config.Config) *model {
	return &model{
		state:    stateMenu,
		menu:     append([]string{customEntry}, config.ListPresets()...),
		base:     base.Clone(),
		params:   base.ModelParams().Names(),
		variable: irf.Capital,
		bgp:      true,
		width:    80,
		height:   24,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case builtMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.table, m.scaling, m.summary, m.err = msg.table, msg.scaling, msg.summary, msg.err
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateChart:
		return m.chartKey(msg)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.menu)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.cfg = m.selected()
		m.state = stateConfig
		m.paramCursor = 0
	}
	return m, nil
}

func (m model) selected() *config.Config {
	name := m.menu[m.cursor]
	if name == customEntry {
		return m.base.Clone()
	}
	cfg := config.GetPreset(name)
	cfg.Params = m.base.Params
	cfg.Integrator = m.base.Integrator
	cfg.Tolerance, cfg.MaxDt = m.base.Tolerance, m.base.MaxDt
	if p := config.Presets[name].Params; p.Sigma != 0 {
		cfg.Params.Sigma = p.Sigma
	}
	return cfg
}

func (m model) configKey(msg tea.KeyMsg) (model, tea.Cmd) {
	name := m.params[m.paramCursor]

	if m.editing {
		switch msg.String() {
		case "enter":
			if v, err := strconv.ParseFloat(m.editBuf, 64); err == nil {
				m.cfg.Impulse[name] = v
			}
			m.editing = false
			m.editBuf = ""
		case "esc":
			m.editing = false
			m.editBuf = ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 && strings.ContainsAny(s, "0123456789.-e") {
				m.editBuf += s
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(m.params)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		m.editing = true
		m.editBuf = strconv.FormatFloat(m.shocked(name), 'g', -1, 64)
	case "left", "h":
		m.cfg.Impulse[name] = m.shocked(name) - paramStep
	case "right", "l":
		m.cfg.Impulse[name] = m.shocked(name) + paramStep
	case "x":
		delete(m.cfg.Impulse, name)
	case "K":
		m.cfg.Kind = nextKind(m.cfg.Kind)
	case "s":
		m.state = stateChart
		m.gen++
		return m, tea.Batch(tea.ClearScreen, build(m.cfg.Clone(), m.gen))
	}
	return m, nil
}

func (m model) chartKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
		m.table, m.err = nil, nil
		return m, tea.ClearScreen
	case "c":
		m.state = stateConfig
		return m, tea.ClearScreen
	case "v":
		m.variable = (m.variable + 1) % irf.Variable(len(irf.Variables()))
	case "K":
		m.cfg.Kind = nextKind(m.cfg.Kind)
		m.gen++
		return m, build(m.cfg.Clone(), m.gen)
	case "b":
		m.bgp = !m.bgp
	case "L":
		m.logScale = !m.logScale
	case "t":
		m.theme = (m.theme + 1) % len(viz.Themes)
	}
	return m, nil
}

// shocked is the post-shock value of name: the impulse if set, else the
// baseline parameter.
func (m model) shocked(name string) float64 {
	if v, ok := m.cfg.Impulse[name]; ok {
		return v
	}
	return m.cfg.ModelParams()[name]
}

func nextKind(name string) string {
	k, err := irf.ParseKind(name)
	if err != nil {
		return irf.EfficiencyUnits.String()
	}
	kinds := irf.Kinds()
	return kinds[(int(k)+1)%len(kinds)].String()
}

// build runs one impulse response off the UI goroutine.
func build(cfg *config.Config, gen int) tea.Cmd {
	return func() tea.Msg {
		b, model, err := cfg.NewBuilder()
		if err != nil {
			return builtMsg{gen: gen, err: err}
		}

		table, err := b.Build(context.Background())
		if err != nil {
			return builtMsg{gen: gen, err: err}
		}
		scaling, err := b.Scaling()
		if err != nil {
			return builtMsg{gen: gen, err: err}
		}

		summary, err := analysis.CapitalConvergence(context.Background(), model, cfg.ImpulseMap(), cfg.BuilderOptions()...)
		if err != nil {
			return builtMsg{gen: gen, err: err}
		}
		return builtMsg{gen: gen, table: table, scaling: scaling, summary: summary}
	}
}

package tui

import (
	"fmt"
	"strings"

	"github.com/san-kum/solowirf/internal/irf"
	"github.com/san-kum/solowirf/internal/viz"
)

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateChart:
		return m.viewChart()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("          " + cyan.Render("s o l o w i r f") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n\n")

	for i, name := range m.menu {
		desc := "configured economy"
		if p, ok := presetDescription(name); ok {
			desc = p
		}
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-24s", name)) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-24s", name)) + dimmer.Render(desc) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter configure   q quit") + "\n")
	return b.String()
}

func (m model) viewConfig() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("      " + cyan.Render(m.menu[m.cursor]) + "  " + dim.Render(m.cfg.Production+" · "+m.cfg.Kind) + "\n")
	b.WriteString(dimmer.Render("      "+strings.Repeat("─", 40)) + "\n\n")
	b.WriteString(dim.Render(fmt.Sprintf("        %-10s%10s%12s", "param", "baseline", "shocked")) + "\n")

	baseline := m.cfg.ModelParams()
	for i, name := range m.params {
		shock := "—"
		if v, ok := m.cfg.Impulse[name]; ok {
			shock = fmt.Sprintf("%.4g", v)
		}
		if m.editing && i == m.paramCursor {
			shock = m.editBuf + "▋"
		}

		line := fmt.Sprintf("%-10s%10.4g", name, baseline[name])
		if i == m.paramCursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(line) + magenta.Render(fmt.Sprintf("%12s", shock)) + "\n")
		} else {
			b.WriteString("        " + dim.Render(line) + dim.Render(fmt.Sprintf("%12s", shock)) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select  ←→ adjust  enter edit  x clear  K kind  s run  esc back") + "\n")
	return b.String()
}

func (m model) viewChart() string {
	var b strings.Builder

	b.WriteString("\n   " + cyan.Render(m.menu[m.cursor]) + "  " + dim.Render(impulseLabel(m.cfg.Impulse)) + "\n\n")

	switch {
	case m.err != nil:
		b.WriteString("   " + red.Render(m.err.Error()) + "\n")
	case m.table == nil:
		b.WriteString("   " + dim.Render("building…") + "\n")
	default:
		theme := viz.Themes[m.theme]
		chart, err := viz.Chart(m.table, m.scaling, viz.ChartOptions{
			Variable: m.variable,
			Log:      m.logScale,
			BGP:      m.bgp,
			Width:    max(m.width-16, 40),
			Height:   max(m.height-22, 8),
			Theme:    theme,
		})
		if err != nil {
			b.WriteString("   " + red.Render(err.Error()) + "\n")
		} else {
			b.WriteString(chart + "\n\n")
		}
		b.WriteString(viz.Summary("capital convergence", m.summary, theme) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("   v variable  K kind  b growth path  L log  t theme  c configure  esc menu") + "\n")
	return b.String()
}

func impulseLabel(imp map[string]float64) string {
	if len(imp) == 0 {
		return "no shock"
	}
	parts := make([]string, 0, len(imp))
	for _, k := range irf.Impulse(imp).Keys() {
		parts = append(parts, fmt.Sprintf("%s→%.4g", k, imp[k]))
	}
	return strings.Join(parts, "  ")
}

var descriptions = map[string]string{
	"savings_boom":          "s rises to 0.25",
	"productivity_slowdown": "g falls to 1%",
	"baby_boom":             "n rises to 3%",
	"depreciation_shock":    "delta doubles",
	"ces_complements":       "s rises, sigma = 0.5",
}

func presetDescription(name string) (string, bool) {
	d, ok := descriptions[name]
	return d, ok
}

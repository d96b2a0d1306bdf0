package tui

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/vitaminmoo/m18-tool/internal/render"
	"github.com/vitaminmoo/m18-tool/internal/store"
)

// View renders the UI.
func (m Model) View() string {
	var content string

	switch m.view {
	case ViewPorts:
		content = m.viewPorts()
	case ViewMenu:
		content = m.viewMenu()
	case ViewReport:
		content = m.viewReport()
	case ViewSimulate:
		content = m.viewSimulate()
	case ViewStore:
		content = m.viewStore()
	case ViewStoreDetail:
		content = m.viewStoreDetail()
	}

	helpView := m.styles.Help.Render(m.help.View(m.keys))
	return m.styles.App.Render(content + "\n" + helpView)
}

func (m Model) renderTitleBar(title string) string {
	var status string
	switch {
	case m.busy != "":
		status = m.spinner.View() + " " + m.styles.Warning.Render(m.busy)
	case m.client != nil:
		status = m.styles.StatusOnline.Render("● " + m.port)
	default:
		status = m.styles.StatusOffline.Render("○ no port")
	}
	return m.styles.Title.Render(title) + "  " + status + "\n\n"
}

func (m Model) renderMessages() string {
	var b strings.Builder
	if m.errorMsg != "" {
		b.WriteString("\n" + m.styles.Error.Render("Error: "+m.errorMsg) + "\n")
	}
	if m.statusMsg != "" {
		b.WriteString("\n" + m.styles.Success.Render(m.statusMsg) + "\n")
	}
	return b.String()
}

func (m Model) renderList(titles, descriptions []string) string {
	var b strings.Builder
	for i, title := range titles {
		cursor := "  "
		style := m.styles.MenuItem
		if i == m.cursor {
			cursor = "> "
			style = m.styles.MenuItemSelected
		}
		b.WriteString(cursor + style.Render(title))
		if descriptions[i] != "" {
			b.WriteString(" " + m.styles.MenuItemDim.Render(descriptions[i]))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewPorts() string {
	var b strings.Builder
	b.WriteString(m.renderTitleBar("M18 Battery Tool"))
	b.WriteString(m.styles.Subtitle.Render("Select the serial adapter wired to the pack") + "\n\n")

	if m.scanning {
		b.WriteString(m.spinner.View() + " Scanning for serial ports...\n")
	} else if len(m.ports) > 0 {
		titles := make([]string, len(m.ports))
		descs := make([]string, len(m.ports))
		for i, p := range m.ports {
			titles[i] = p.Name
			descs[i] = truncate(p.Description(), 50)
		}
		b.WriteString(m.renderList(titles, descs))
	}

	b.WriteString(m.renderMessages())
	return b.String()
}

func (m Model) viewMenu() string {
	var b strings.Builder
	b.WriteString(m.renderTitleBar("M18 Battery Tool"))

	titles := make([]string, len(m.menuItems))
	descs := make([]string, len(m.menuItems))
	for i, item := range m.menuItems {
		titles[i] = item.Title
		descs[i] = item.Description
	}
	b.WriteString(m.renderList(titles, descs))

	b.WriteString(m.renderMessages())
	return b.String()
}

func (m Model) viewReport() string {
	var b strings.Builder
	b.WriteString(m.renderTitleBar(m.reportTitle))
	if m.busy != "" {
		b.WriteString(m.styles.Muted.Render("Talking to the pack, this takes a few seconds.") + "\n")
		return b.String()
	}
	b.WriteString(m.styles.Report.Render(m.viewport.View()) + "\n")
	if m.errorMsg != "" {
		b.WriteString("\n" + m.styles.Error.Render("Error: "+m.errorMsg) + "\n")
	}
	return b.String()
}

func (m Model) viewSimulate() string {
	var b strings.Builder
	b.WriteString(m.renderTitleBar("Simulate charger"))
	b.WriteString(renderField(m.styles, "Duration", m.opts.SimulateDuration.String()))
	if m.progress.IsActive() {
		b.WriteString("\n" + m.progress.View() + "\n\n")
		b.WriteString(m.styles.Muted.Render("esc stops the simulation") + "\n")
	}
	b.WriteString(m.renderMessages())
	return b.String()
}

func (m Model) viewStore() string {
	var b strings.Builder
	b.WriteString(m.renderTitleBar("Stored dumps"))

	switch {
	case m.storeLoading:
		b.WriteString(m.spinner.View() + " Loading...\n")
	case len(m.storeEntries) == 0:
		b.WriteString(m.styles.Muted.Render("No dumps stored yet. Use Dump memory or Health report to add one.") + "\n")
	default:
		now := time.Now()
		titles := make([]string, len(m.storeEntries))
		descs := make([]string, len(m.storeEntries))
		for i, e := range m.storeEntries {
			titles[i] = fmt.Sprintf("%s  %-14s", store.ShortHash(e.Hash), truncate(e.Description, 14))
			descs[i] = fmt.Sprintf("#%d, %s", e.Serial, humanize.RelTime(e.CreatedAt, now, "ago", "from now"))
		}
		b.WriteString(m.renderList(titles, descs))
	}

	b.WriteString(m.renderMessages())
	return b.String()
}

func (m Model) viewStoreDetail() string {
	var b strings.Builder
	b.WriteString(m.renderTitleBar("Stored dump"))
	if m.detail == nil {
		b.WriteString(m.spinner.View() + " Loading...\n")
		return b.String()
	}
	b.WriteString(m.styles.Report.Render(m.viewport.View()) + "\n")
	return b.String()
}

func (m Model) renderDetail(meta *store.Metadata) string {
	var b strings.Builder
	id := meta.Identity
	b.WriteString(renderField(m.styles, "Hash", meta.ContentHash))
	b.WriteString(renderField(m.styles, "Type", fmt.Sprintf("%d (%s)", id.BatteryType, id.Description)))
	b.WriteString(renderField(m.styles, "Serial", fmt.Sprint(id.Serial)))
	if id.ManufactureDate != nil {
		b.WriteString(renderField(m.styles, "Manufactured", id.ManufactureDate.Format(time.DateOnly)))
	}
	if id.Note != "" {
		b.WriteString(renderField(m.styles, "Note", id.Note))
	}
	b.WriteString(renderField(m.styles, "Size", fmt.Sprintf("%d bytes in %d blocks", meta.Size, meta.Blocks)))
	b.WriteString(renderField(m.styles, "Saved", humanize.Time(meta.CreatedAt)))
	for _, src := range meta.Sources {
		b.WriteString(renderField(m.styles, "Source", fmt.Sprintf("%s %s %s", src.Method, src.Port, src.Timestamp.Format(time.DateTime))))
	}
	if meta.Report != nil {
		var report bytes.Buffer
		if err := render.HealthReport(&report, meta.Report); err == nil {
			b.WriteString(report.String())
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// Helper functions

func renderField(s Styles, label, value string) string {
	return s.Label.Render(label+":") + " " + s.Value.Render(value) + "\n"
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"warecopilot/copilot"
)

type styles struct {
	title     lipgloss.Style
	prompt    lipgloss.Style
	spinner   lipgloss.Style
	system    lipgloss.Style
	user      lipgloss.Style
	assistant lipgloss.Style
	errMsg    lipgloss.Style
	success   lipgloss.Style
	warning   lipgloss.Style
	gridHead  lipgloss.Style
	gridRow   lipgloss.Style
	gridEdit  lipgloss.Style
	gridNote  lipgloss.Style
	editPanel lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		prompt:    lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
		spinner:   lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
		system:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		user:      lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		assistant: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		errMsg:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		success:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		gridHead:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		gridRow:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		gridEdit:  lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214")),
		gridNote:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		editPanel: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("214")).Padding(0, 1),
	}
}

func (m chatModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.title.Render("🏭 Warehouse Copilot"))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderGrid())
	if m.draft != nil {
		b.WriteString(m.renderEditPanel())
	}
	b.WriteString("\n")
	if m.busy {
		b.WriteString(m.spinner.View() + " working...\n")
	}
	b.WriteString(m.textinput.View())
	b.WriteString("\n")
	return b.String()
}

func (m *chatModel) refreshTranscript() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m chatModel) renderTranscript() string {
	var lines []string
	for _, e := range m.transcript {
		lines = append(lines, m.renderEntry(e))
	}
	return strings.Join(lines, "\n")
}

func (m chatModel) renderEntry(e transcriptEntry) string {
	switch e.kind {
	case copilot.MessageUser:
		return m.styles.user.Render("you ▸ ") + e.text
	case copilot.MessageSystem:
		return m.styles.system.Render("· " + e.text)
	case copilot.MessageError:
		return m.styles.errMsg.Render(e.text)
	case copilot.MessageSuccess:
		return m.styles.success.Render(e.text)
	case copilot.MessageWarning:
		return m.styles.warning.Render(e.text)
	default:
		return m.styles.assistant.Render("bot ▸ ") + e.text
	}
}

// gridHeight reports the rendered height of the grid so the viewport
// can use the rest of the terminal.
func gridHeight(g copilot.GridView) int {
	if g.Failed || g.Empty() {
		return 1
	}
	return len(g.Rows) + 2
}

const gridRowFormat = "%3s  %-10s  %-12s  %-18s  %-10s  %-8s  %-10s  %5s  %-8s"

func (m chatModel) renderGrid() string {
	if m.grid.Failed {
		return m.styles.errMsg.Render("inventory unavailable, try :refresh") + "\n"
	}
	if m.grid.Empty() {
		return m.styles.gridNote.Render("no inventory rows, try \"check inventory\"") + "\n"
	}

	var b strings.Builder
	b.WriteString(m.styles.gridHead.Render(fmt.Sprintf(gridRowFormat,
		"#", "Reference", "Customer", "Date", "Item", "Loc", "Batch", "Qty", "Status")))
	b.WriteString("\n")
	for i, r := range m.grid.Rows {
		line := fmt.Sprintf(gridRowFormat,
			fmt.Sprintf("%d", i+1),
			clip(r.ReferenceNo, 10),
			clip(r.Customer, 12),
			clip(r.ReceivingDate, 18),
			clip(r.ItemCode, 10),
			clip(r.Location, 8),
			clip(r.BatchNo, 10),
			fmt.Sprintf("%d", r.Quantity),
			clip(r.Status, 8),
		)
		if i == m.grid.EditRow {
			b.WriteString(m.styles.gridEdit.Render(line))
		} else {
			b.WriteString(m.styles.gridRow.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.styles.gridNote.Render(fmt.Sprintf("%d rows", len(m.grid.Rows))))
	b.WriteString("\n")
	return b.String()
}

func (m chatModel) renderEditPanel() string {
	d := m.draft
	body := fmt.Sprintf(
		"editing line %d\ncustomer=%s  date=%s  reference=%s  warehouse=%s\nitem=%s  location=%s  batch=%s  qty=%d  status=%s\n:set <field> <value>, :save, :cancel",
		d.LineID,
		d.Customer, d.ReceivingDate, d.ReferenceNo, d.Warehouse,
		d.ItemCode, d.Location, d.BatchNo, d.Quantity, d.Status,
	)
	return m.styles.editPanel.Render(body) + "\n"
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}

package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Travis-Gilbert/collage/pkg/manifest"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// EssayListModel - Interactive essay selection
// =============================================================================

// EssayListModel is the bubbletea model for interactive essay selection.
type EssayListModel struct {
	Essays   []manifest.Essay
	Cursor   int
	Selected *manifest.Essay
	Height   int
	Offset   int
}

// NewEssayListModel creates a new essay list model.
func NewEssayListModel(essays []manifest.Essay) EssayListModel {
	return EssayListModel{
		Essays: essays,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
}

func (m EssayListModel) Init() tea.Cmd {
	return nil
}

func (m EssayListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Essays)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			essay := m.Essays[m.Cursor]
			m.Selected = &essay
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m EssayListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Essay"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Essays) {
		end = len(m.Essays)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := m.Essays[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		title := e.Title
		if title == "" {
			title = "—"
		}

		ground := e.Ground
		if ground == "" {
			ground = "olive"
		}

		rows = append(rows, []string{cursor, e.Slug, title, assetSummary(e), ground})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Slug", "Title", "Assets", "Ground").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Essays) {
				return lipgloss.NewStyle()
			}

			base := lipgloss.NewStyle()
			if col == 3 || col == 4 {
				base = base.Foreground(colorDim)
			} else {
				base = base.Foreground(colorWhite)
			}
			if actualIdx == m.Cursor {
				return base.Foreground(colorCyan).Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Essays))))

	return b.String()
}

// assetSummary describes an essay's inputs, e.g. "hero +3 +1".
func assetSummary(e manifest.Essay) string {
	var parts []string
	if e.Hero != "" {
		parts = append(parts, "hero")
	}
	if n := len(e.Supports); n > 0 {
		parts = append(parts, fmt.Sprintf("+%d", n))
	}
	if n := len(e.Strips); n > 0 {
		parts = append(parts, fmt.Sprintf("+%d strips", n))
	}
	if len(parts) == 0 {
		return "decorative only"
	}
	return strings.Join(parts, " ")
}

// selectEssay runs the interactive picker over the manifest and returns the
// chosen slug. Returns empty string if the user quit without selecting.
func selectEssay(m *manifest.Manifest) (string, error) {
	model := NewEssayListModel(m.Essays)
	p := tea.NewProgram(model)

	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("interactive selection: %w", err)
	}

	result, ok := final.(EssayListModel)
	if !ok || result.Selected == nil {
		return "", nil
	}
	return result.Selected.Slug, nil
}

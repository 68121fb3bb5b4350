package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/spriteforge/pkg/pipeline"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// SpritePickerModel - Interactive catalog selection
// =============================================================================

// SpritePickerModel is the bubbletea model for choosing which catalog sprites
// to render. All sprites start selected.
type SpritePickerModel struct {
	Sprites   []pipeline.Sprite
	Chosen    []bool
	Cursor    int
	Height    int
	Offset    int
	Confirmed bool
}

// NewSpritePickerModel creates a picker over sprites.
func NewSpritePickerModel(sprites []pipeline.Sprite) SpritePickerModel {
	chosen := make([]bool, len(sprites))
	for i := range chosen {
		chosen[i] = true
	}
	return SpritePickerModel{Sprites: sprites, Chosen: chosen, Height: 15}
}

func (m SpritePickerModel) Init() tea.Cmd {
	return nil
}

func (m SpritePickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Sprites)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "x":
			if len(m.Chosen) > 0 {
				m.Chosen = toggled(m.Chosen, m.Cursor)
			}
		case "a":
			all := m.count() < len(m.Sprites)
			m.Chosen = make([]bool, len(m.Sprites))
			for i := range m.Chosen {
				m.Chosen[i] = all
			}
		case "enter":
			if m.count() == 0 {
				return m, nil
			}
			m.Confirmed = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 7
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

// toggled returns a copy of chosen with index i flipped.
func toggled(chosen []bool, i int) []bool {
	out := append([]bool(nil), chosen...)
	out[i] = !out[i]
	return out
}

func (m SpritePickerModel) count() int {
	n := 0
	for _, c := range m.Chosen {
		if c {
			n++
		}
	}
	return n
}

// Selection returns the chosen sprites in catalog order, or nil if the picker
// was aborted.
func (m SpritePickerModel) Selection() []pipeline.Sprite {
	if !m.Confirmed {
		return nil
	}
	var out []pipeline.Sprite
	for i, s := range m.Sprites {
		if m.Chosen[i] {
			out = append(out, s)
		}
	}
	return out
}

func (m SpritePickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Sprites"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all/none  ⏎ render  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Sprites) {
		end = len(m.Sprites)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		s := m.Sprites[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		box := "[ ]"
		if m.Chosen[i] {
			box = "[x]"
		}
		fx := ""
		if s.Glow {
			fx = "glow"
		}
		rows = append(rows, []string{cursor + box, s.Name, s.Source(), fx})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Sprite", "Source", "FX").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			idx := m.Offset + row
			if idx >= len(m.Sprites) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if col == 2 || col == 3 {
				base = base.Foreground(colorDim)
			}
			switch {
			case idx == m.Cursor && m.Chosen[idx]:
				return base.Foreground(colorGreen).Bold(true)
			case idx == m.Cursor:
				return base.Bold(true)
			case m.Chosen[idx] && col < 2:
				return base.Foreground(colorGreen)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d of %d selected", m.count(), len(m.Sprites))))

	return b.String()
}

package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/FabioUrbina/rdkit/pkg/mol"
)

var (
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	listBorderStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// MoleculeListModel - Interactive molecule selection
// =============================================================================

// MoleculeListModel is the bubbletea model for picking one molecule of a
// document. Molecules without coordinates cannot be drawn and are not
// selectable.
type MoleculeListModel struct {
	Molecules []*mol.Molecule
	Cursor    int
	// Selected is the chosen index, or -1 when the user quit.
	Selected int
	Height   int
	Offset   int
}

// NewMoleculeListModel creates a list starting on the first molecule.
func NewMoleculeListModel(mols []*mol.Molecule) MoleculeListModel {
	return MoleculeListModel{
		Molecules: mols,
		Selected:  -1,
		Height:    15,
	}
}

func (m MoleculeListModel) Init() tea.Cmd {
	return nil
}

func (m MoleculeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Molecules)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Molecules) == 0 || !drawable(m.Molecules[m.Cursor]) {
				return m, nil
			}
			m.Selected = m.Cursor
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m MoleculeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Molecule"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  ⏎ draw  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Molecules))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		rows = append(rows, moleculeRow(i, m.Molecules[i], i == m.Cursor))
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(listBorderStyle).
		Headers("", "#", "Name", "Atoms", "Bonds", "Rings", "2D").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return listHeaderStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Molecules) {
				return lipgloss.NewStyle()
			}
			style := lipgloss.NewStyle()
			if !drawable(m.Molecules[idx]) {
				style = style.Foreground(colorDim)
			}
			if idx == m.Cursor {
				if drawable(m.Molecules[idx]) {
					return styleSelected
				}
				return style.Bold(true)
			}
			return style
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Molecules))))

	return b.String()
}

func moleculeRow(i int, m *mol.Molecule, current bool) []string {
	cursor := "  "
	if current {
		cursor = "▸ "
	}
	if m == nil {
		return []string{cursor, strconv.Itoa(i), "—", "0", "0", "0", ""}
	}
	name := m.Name
	if name == "" {
		name = "—"
	}
	coords := ""
	if m.HasCoords() {
		coords = "✓"
	}
	return []string{
		cursor,
		strconv.Itoa(i),
		name,
		strconv.Itoa(m.NumAtoms()),
		strconv.Itoa(len(m.Bonds)),
		strconv.Itoa(len(m.BondRings())),
		coords,
	}
}

func drawable(m *mol.Molecule) bool {
	return m != nil && m.HasCoords()
}

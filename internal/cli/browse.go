package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/paragon/pkg/io"
	"github.com/matzehuels/paragon/pkg/stitch"
)

// Browser styles
var (
	browserFrameStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
	browserDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <file>",
		Short: "Page through a stitched layout file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layouts, err := io.ImportLayouts(args[0])
			if err != nil {
				return err
			}
			if len(layouts) == 0 {
				printInfo("No layouts in %s", args[0])
				return nil
			}

			p := tea.NewProgram(NewLayoutBrowserModel(layouts), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}
}

// =============================================================================
// LayoutBrowserModel - Interactive layout pager
// =============================================================================

// LayoutBrowserModel is the bubbletea model for paging through layouts.
// Left and right move between layouts; up and down scroll within one.
type LayoutBrowserModel struct {
	Layouts []stitch.Layout
	Index   int
	Offset  int // first visible line of the current layout
	Height  int // visible lines
}

// NewLayoutBrowserModel creates a browser positioned on the first layout.
func NewLayoutBrowserModel(layouts []stitch.Layout) LayoutBrowserModel {
	return LayoutBrowserModel{
		Layouts: layouts,
		Height:  30,
	}
}

func (m LayoutBrowserModel) Init() tea.Cmd {
	return nil
}

func (m LayoutBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l", "n", " ":
			m = m.show(m.Index + 1)
		case "left", "h", "p":
			m = m.show(m.Index - 1)
		case "g", "home":
			m = m.show(0)
		case "G", "end":
			m = m.show(len(m.Layouts) - 1)
		case "down", "j":
			if m.Offset < m.maxOffset() {
				m.Offset++
			}
		case "up", "k":
			if m.Offset > 0 {
				m.Offset--
			}
		}
	case tea.WindowSizeMsg:
		// Title, help, footer and the frame border.
		m.Height = max(msg.Height-7, 5)
		m.Offset = min(m.Offset, m.maxOffset())
	}
	return m, nil
}

// show moves to layout i, clamped to the valid range, and resets scrolling.
func (m LayoutBrowserModel) show(i int) LayoutBrowserModel {
	i = max(0, min(i, len(m.Layouts)-1))
	if i != m.Index {
		m.Index = i
		m.Offset = 0
	}
	return m
}

func (m LayoutBrowserModel) maxOffset() int {
	if len(m.Layouts) == 0 {
		return 0
	}
	return max(len(m.Layouts[m.Index])-m.Height, 0)
}

func (m LayoutBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Layout %d/%d", m.Index+1, len(m.Layouts))))
	b.WriteString("\n")
	b.WriteString(browserDimStyle.Render("←/→ layout  ↑/↓ scroll  g/G first/last  q quit"))
	b.WriteString("\n")

	if len(m.Layouts) == 0 {
		return b.String()
	}

	lines := m.Layouts[m.Index]
	end := min(m.Offset+m.Height, len(lines))
	b.WriteString(browserFrameStyle.Render(strings.Join(lines[m.Offset:end], "\n")))
	b.WriteString("\n")
	b.WriteString(browserDimStyle.Render(fmt.Sprintf("  lines %d-%d of %d", m.Offset+1, end, len(lines))))

	return b.String()
}

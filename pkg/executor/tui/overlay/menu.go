package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/entrhq/scribby/pkg/actions"
	"github.com/entrhq/scribby/pkg/executor/tui/types"
)

// ActionMenu lists the menu items offered for the current editor state and
// lets the user filter and pick one.
type ActionMenu struct {
	items         []actions.MenuItem
	filteredItems []actions.MenuItem
	selectedIndex int
	filter        string
	active        bool
}

// NewActionMenu creates an inactive menu.
func NewActionMenu() *ActionMenu {
	return &ActionMenu{}
}

// Activate shows the menu with items.
func (am *ActionMenu) Activate(items []actions.MenuItem) {
	am.items = items
	am.active = true
	am.filter = ""
	am.selectedIndex = 0
	am.updateFiltered()
}

// Deactivate hides the menu
func (am *ActionMenu) Deactivate() {
	am.active = false
	am.filter = ""
	am.selectedIndex = 0
}

// IsActive reports whether the menu is shown
func (am *ActionMenu) IsActive() bool {
	return am.active
}

// Filter returns the current filter text.
func (am *ActionMenu) Filter() string {
	return am.filter
}

// UpdateFilter updates the filter string and refreshes filtered items
func (am *ActionMenu) UpdateFilter(filter string) {
	newFilter := strings.ToLower(filter)
	if newFilter != am.filter {
		am.filter = newFilter
		am.selectedIndex = 0
		am.updateFiltered()
	}
}

func (am *ActionMenu) updateFiltered() {
	needle := strings.TrimSpace(am.filter)
	if needle == "" {
		am.filteredItems = am.items
		return
	}

	var matches []actions.MenuItem
	for _, item := range am.items {
		if strings.Contains(strings.ToLower(item.Title), needle) {
			matches = append(matches, item)
		}
	}
	am.filteredItems = matches

	if am.selectedIndex >= len(am.filteredItems) {
		am.selectedIndex = 0
	}
}

// SelectNext moves selection down
func (am *ActionMenu) SelectNext() {
	if len(am.filteredItems) == 0 {
		return
	}
	am.selectedIndex = (am.selectedIndex + 1) % len(am.filteredItems)
}

// SelectPrev moves selection up
func (am *ActionMenu) SelectPrev() {
	if len(am.filteredItems) == 0 {
		return
	}
	am.selectedIndex--
	if am.selectedIndex < 0 {
		am.selectedIndex = len(am.filteredItems) - 1
	}
}

// Selected returns the highlighted item, or nil when nothing matches.
func (am *ActionMenu) Selected() *actions.MenuItem {
	if am.selectedIndex < 0 || am.selectedIndex >= len(am.filteredItems) {
		return nil
	}
	return &am.filteredItems[am.selectedIndex]
}

// View renders the menu
func (am *ActionMenu) View() string {
	if !am.active {
		return ""
	}

	var sb strings.Builder
	width := 52

	headerStyle := lipgloss.NewStyle().
		Foreground(types.SalmonPink).
		Bold(true).
		PaddingLeft(1)
	sb.WriteString(headerStyle.Render("Scribby"))
	sb.WriteString("\n")

	filterStyle := lipgloss.NewStyle().Foreground(types.MutedGray).PaddingLeft(1)
	if am.filter == "" {
		sb.WriteString(filterStyle.Render("Type to filter"))
	} else {
		sb.WriteString(filterStyle.Render("Filter: " + am.filter))
	}
	sb.WriteString("\n\n")

	if len(am.filteredItems) == 0 {
		sb.WriteString(filterStyle.Render("No matching actions"))
		sb.WriteString("\n")
	}

	for i, item := range am.filteredItems {
		prefix := "  "
		if i == am.selectedIndex {
			prefix = "> "
		}

		titleStyle := lipgloss.NewStyle().
			Foreground(types.BrightWhite).
			Bold(i == am.selectedIndex)
		if item.OpensIntake() {
			titleStyle = titleStyle.Foreground(types.MintGreen)
		}

		line := prefix + titleStyle.Render(item.Title)
		if i == am.selectedIndex {
			line = lipgloss.NewStyle().
				Background(types.PaletteBg).
				Width(width - 2).
				PaddingLeft(1).
				Render(line)
		} else {
			line = " " + line
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(lipgloss.NewStyle().Foreground(types.MutedGray).Italic(true).PaddingLeft(1).
		Render("↑/↓ select • Enter run • Esc close"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(types.SalmonPink).
		Width(width).
		Render(sb.String())
}

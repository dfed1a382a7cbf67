package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"astropath/kmeans"
)

// plot dimensions in character cells.
const (
	plotCols = 64
	plotRows = 20
)

// LabModel animates a finished clustering run: the user steps through
// the recorded per-iteration snapshots with the arrow keys and watches
// assignments and centroids settle.
type LabModel struct {
	styles  Styles
	dataset string
	points  []kmeans.Point
	history []*kmeans.Result

	step     int
	quitting bool
}

// NewLabModel creates the lab view over a precomputed iteration history.
func NewLabModel(dataset string, points []kmeans.Point, history []*kmeans.Result) LabModel {
	return LabModel{
		styles:  DefaultStyles(),
		dataset: dataset,
		points:  points,
		history: history,
	}
}

// Init implements tea.Model.
func (m LabModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m LabModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "right", "n", " ", "enter":
			if m.step < len(m.history)-1 {
				m.step++
			}
		case "left", "p":
			if m.step > 0 {
				m.step--
			}
		case "home":
			m.step = 0
		case "end":
			m.step = len(m.history) - 1
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m LabModel) View() string {
	if m.quitting || len(m.history) == 0 {
		return ""
	}

	snap := m.history[m.step]

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(fmt.Sprintf("k-means on %s", m.dataset)) + "\n")
	b.WriteString(m.styles.Plot.Render(m.renderScatter(snap)) + "\n")

	status := fmt.Sprintf("iteration %d/%d", m.step+1, len(m.history))
	if snap.Converged {
		status += " — converged"
	}
	b.WriteString(m.styles.Status.Render(status) + "\n")
	b.WriteString(m.styles.Help.Render("←/→: step • home/end: jump • q: quit"))
	return b.String()
}

// renderScatter draws points and centroids onto a character grid,
// coloring each point by its cluster in this snapshot.
func (m LabModel) renderScatter(snap *kmeans.Result) string {
	minX, maxX, minY, maxY := bounds(m.points)

	// Padding keeps edge points and origin-collapsed centroids visible.
	for _, c := range snap.Centroids {
		if c.X < minX {
			minX = c.X
		}
		if c.X > maxX {
			maxX = c.X
		}
		if c.Y < minY {
			minY = c.Y
		}
		if c.Y > maxY {
			maxY = c.Y
		}
	}
	if maxX == minX {
		maxX = minX + 1
	}
	if maxY == minY {
		maxY = minY + 1
	}

	grid := make([][]string, plotRows)
	for r := range grid {
		grid[r] = make([]string, plotCols)
		for c := range grid[r] {
			grid[r][c] = " "
		}
	}

	cell := func(p kmeans.Point) (int, int) {
		col := int((p.X - minX) / (maxX - minX) * float64(plotCols-1))
		row := int((maxY - p.Y) / (maxY - minY) * float64(plotRows-1))
		return row, col
	}

	for i, p := range m.points {
		row, col := cell(p)
		style := m.styles.Clusters[snap.Assignments[i]%len(m.styles.Clusters)]
		grid[row][col] = style.Render("●")
	}
	for _, c := range snap.Centroids {
		row, col := cell(c)
		grid[row][col] = m.styles.Centroid.Render("◆")
	}

	lines := make([]string, plotRows)
	for r := range grid {
		lines[r] = strings.Join(grid[r], "")
	}
	return strings.Join(lines, "\n")
}

// bounds returns the bounding box of a point set.
func bounds(points []kmeans.Point) (minX, maxX, minY, maxY float64) {
	minX, maxX = points[0].X, points[0].X
	minY, maxY = points[0].Y, points[0].Y
	for _, p := range points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return minX, maxX, minY, maxY
}

// RunLab starts the step-through program.
func RunLab(dataset string, points []kmeans.Point, history []*kmeans.Result) error {
	if len(history) == 0 {
		return fmt.Errorf("no iteration history to display")
	}
	p := tea.NewProgram(
		NewLabModel(dataset, points, history),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

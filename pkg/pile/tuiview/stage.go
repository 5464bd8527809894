package tuiview

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/BrandonKowalski/pile/pkg/pile"
)

// Cards fainter than this are not drawn at all.
const hiddenAlpha = 0.05

// Stage margins in cells.
const (
	marginX = 4
	marginY = 1
)

type cell struct {
	r    rune
	card int // index into Stage.cards, -1 for background
	tail bool
}

// Stage is a pile.Container that paints cards onto a grid of terminal
// cells. Cards are painted in attach order, so the most recently
// attached card is on top.
type Stage struct {
	width, height int
	cards         []*Card
}

// NewStage returns a stage of the given size in cells.
func NewStage(width, height int) *Stage {
	return &Stage{width: max(width, 0), height: max(height, 0)}
}

// Bounds returns the drawable area inside the stage margins.
func (s *Stage) Bounds() pile.Rect {
	return pile.Rect{W: float64(s.width), H: float64(s.height)}.Inset(marginX, marginY)
}

// Attach adds a card, or raises it to the top if already attached.
// Elements that are not *Card are ignored.
func (s *Stage) Attach(el pile.Element) {
	c, ok := el.(*Card)
	if !ok {
		return
	}
	s.remove(c)
	s.cards = append(s.cards, c)
}

// Detach removes a card.
func (s *Stage) Detach(el pile.Element) {
	if c, ok := el.(*Card); ok {
		s.remove(c)
	}
}

// Resize changes the stage size. Callers relayout the pile afterwards.
func (s *Stage) Resize(width, height int) {
	s.width, s.height = max(width, 0), max(height, 0)
}

// Size returns the stage size in cells.
func (s *Stage) Size() (width, height int) {
	return s.width, s.height
}

// Cards returns the attached cards, bottom first.
func (s *Stage) Cards() []*Card {
	return append([]*Card(nil), s.cards...)
}

// View renders the stage as height lines of width cells.
func (s *Stage) View() string {
	if s.width == 0 || s.height == 0 {
		return ""
	}

	grid := make([][]cell, s.height)
	for y := range grid {
		grid[y] = make([]cell, s.width)
		for x := range grid[y] {
			grid[y][x] = cell{r: ' ', card: -1}
		}
	}

	styles := make([]lipgloss.Style, len(s.cards))
	for i, c := range s.cards {
		styles[i] = c.style()
		if c.alpha < hiddenAlpha {
			continue
		}
		s.paint(grid, i, c)
	}

	var b strings.Builder
	for y, row := range grid {
		if y > 0 {
			b.WriteByte('\n')
		}
		writeRow(&b, row, styles)
	}
	return b.String()
}

func (s *Stage) remove(c *Card) {
	for i, a := range s.cards {
		if a == c {
			s.cards = append(s.cards[:i], s.cards[i+1:]...)
			return
		}
	}
}

func (s *Stage) paint(grid [][]cell, idx int, c *Card) {
	r := c.Projected()
	x0, y0 := int(math.Round(r.X)), int(math.Round(r.Y))
	x1, y1 := int(math.Round(r.X+r.W))-1, int(math.Round(r.Y+r.H))-1
	if x1 < x0 || y1 < y0 {
		return
	}

	// Only the visible part of the card is walked; a card seen nearly
	// edge-on under perspective can project far outside the grid.
	border := lipgloss.RoundedBorder()
	for y := max(y0, 0); y <= min(y1, len(grid)-1); y++ {
		for x := max(x0, 0); x <= min(x1, len(grid[y])-1); x++ {
			top, bottom := y == y0, y == y1
			left, right := x == x0, x == x1

			edge := " "
			switch {
			case top && left:
				edge = border.TopLeft
			case top && right:
				edge = border.TopRight
			case bottom && left:
				edge = border.BottomLeft
			case bottom && right:
				edge = border.BottomRight
			case top:
				edge = border.Top
			case bottom:
				edge = border.Bottom
			case left:
				edge = border.Left
			case right:
				edge = border.Right
			}
			set(grid, x, y, cell{r: []rune(edge)[0], card: idx})
		}
	}

	inner := x1 - x0 - 1
	mid := (y0 + y1) / 2
	if inner <= 0 || mid <= y0 || mid >= y1 {
		return
	}

	title := runewidth.Truncate(c.Title, inner, "…")
	x := x0 + 1 + (inner-runewidth.StringWidth(title))/2
	for _, ch := range title {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		set(grid, x, mid, cell{r: ch, card: idx})
		if w == 2 {
			set(grid, x+1, mid, cell{card: idx, tail: true})
		}
		x += w
	}
}

// set writes one cell, clipping to the grid and clearing any wide rune
// the write would split.
func set(grid [][]cell, x, y int, c cell) {
	if !inGrid(grid, x, y) {
		return
	}
	row := grid[y]
	if row[x].tail && x > 0 {
		row[x-1] = cell{r: ' ', card: row[x-1].card}
	}
	if x+1 < len(row) && row[x+1].tail {
		row[x+1] = cell{r: ' ', card: row[x+1].card}
	}
	row[x] = c
}

func inGrid(grid [][]cell, x, y int) bool {
	return y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y])
}

func writeRow(b *strings.Builder, row []cell, styles []lipgloss.Style) {
	var run strings.Builder
	current := -1

	flush := func() {
		if run.Len() == 0 {
			return
		}
		if current < 0 {
			b.WriteString(run.String())
		} else {
			b.WriteString(styles[current].Render(run.String()))
		}
		run.Reset()
	}

	for x, c := range row {
		if c.tail {
			continue
		}
		r := c.r
		// A wide rune clipped at the right edge has no room.
		if runewidth.RuneWidth(r) == 2 && (x+1 >= len(row) || !row[x+1].tail) {
			r = ' '
		}
		if c.card != current {
			flush()
			current = c.card
		}
		run.WriteRune(r)
	}
	flush()
}

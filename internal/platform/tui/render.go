package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/beambox/internal/board"
	"github.com/vovakirdan/beambox/internal/geom"
)

// BoardView selects what RenderBoard draws on top of the board.
type BoardView struct {
	Cursor *geom.Coord // highlighted ring tile
	Path   *board.Path // beam path overlay
	Reveal bool        // show hidden obstacles
}

// pointGlyphs are the two-character marks drawn at path events.
var pointGlyphs = map[board.PointType]string{
	board.PointEntry:         "»»",
	board.PointDeflect:       "<>",
	board.PointDoubleDeflect: "<<",
	board.PointPhase:         "~~",
	board.PointIgnoreDeflect: "||",
	board.PointDestroy:       "xx",
	board.PointEmit:          "**",
	board.PointHit:           "##",
}

// RenderBoard draws the board including its ring of prize tiles.
// Each cell is four columns wide.
func RenderBoard(b *board.Board, view BoardView, theme Theme) string {
	n := b.Config.Length
	grid := b.Grid()
	trail, points := pathCells(view.Path)

	var sb strings.Builder
	for row := -1; row <= n; row++ {
		if row > -1 {
			sb.WriteRune('\n')
		}
		for col := -1; col <= n; col++ {
			c := geom.C(row, col)
			text, style := cellContent(b, grid, c, view.Reveal, theme)

			if pt, ok := points[c]; ok {
				text = pointGlyphs[pt]
				style = theme.PathPoint
				if pt.Terminal() {
					style = theme.PathEnd
				}
			} else if trail.Has(c) && grid.Contains(c) {
				text = "··"
				style = theme.PathTrail
			}

			cell := " " + text + " "
			if view.Cursor != nil && view.Cursor.Equal(c) {
				sb.WriteString(theme.Cursor.Render(cell))
				continue
			}
			sb.WriteString(style.Render(cell))
		}
	}
	return sb.String()
}

func cellContent(b *board.Board, grid geom.Grid, c geom.Coord, reveal bool, theme Theme) (string, lipgloss.Style) {
	if grid.Contains(c) {
		o := b.ObstacleAt(c)
		switch {
		case o == nil:
			return "  ", theme.Empty
		case !o.Active && (o.Visible || reveal):
			return "..", theme.Destroyed
		case o.Active && o.Visible:
			return "()", theme.Obstacle
		case o.Active && reveal:
			return "()", theme.HiddenObstacle
		default:
			return "  ", theme.Empty
		}
	}

	if !b.OnRing(c) {
		return "  ", theme.Corner
	}
	p := b.PrizeAt(c)
	switch {
	case p == nil:
		return "--", theme.Empty
	case p.Resolved():
		return "..", theme.Resolved
	default:
		return p.Prize.Short(), theme.PrizeStyle(p.Prize)
	}
}

// pathCells returns the cells a path passes through and the event at each
// point. A later event on the same cell wins.
func pathCells(path *board.Path) (geom.CoordSet, map[geom.Coord]board.PointType) {
	trail := geom.NewCoordSet()
	points := make(map[geom.Coord]board.PointType)
	if path == nil {
		return trail, points
	}

	for i, pt := range path.Points {
		points[pt.Coord] = pt.Type
		if i == 0 || path.Beam.EmitsOpposite() {
			continue
		}
		prev := path.Points[i-1].Coord
		for _, c := range segmentBetween(prev, pt.Coord) {
			trail.Add(c)
		}
	}
	return trail, points
}

// segmentBetween lists the cells strictly between a and b when they share a
// row or a column.
func segmentBetween(a, b geom.Coord) []geom.Coord {
	if a.Row != b.Row && a.Col != b.Col {
		return nil
	}
	for _, d := range geom.Directions {
		dist := geom.DistanceInDirection(a, b, d)
		if dist <= 0 || !geom.InDirection(a, b, d) {
			continue
		}
		out := make([]geom.Coord, 0, dist-1)
		for i := 1; i < dist; i++ {
			out = append(out, a.At(d, i))
		}
		return out
	}
	return nil
}

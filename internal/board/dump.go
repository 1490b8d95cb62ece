package board

import (
	"strings"

	"github.com/vovakirdan/beambox/internal/geom"
)

// String returns a plain-text dump of the board for debugging.
// The prize ring surrounds the obstacle grid:
//
//	[##] | [JP] [  ] ... | [##]
//	-----|---------------|-----
//	[$S] | [  ] [B ] ... | [  ]
//
// Hidden obstacles are shown as [h ], destroyed ones as [x ], taken prizes
// as [..].
func (b *Board) String() string {
	n := b.Config.Length
	var sb strings.Builder

	divider := "-----|" + strings.Repeat("-", 5*n+1) + "|-----"

	for row := -1; row <= n; row++ {
		switch row {
		case -1:
			sb.WriteString(b.endRow(row))
			sb.WriteString("\n")
			sb.WriteString(divider)
		case n:
			sb.WriteString(divider)
			sb.WriteString("\n")
			sb.WriteString(b.endRow(row))
		default:
			sb.WriteString(b.prizeCell(geom.C(row, -1)))
			sb.WriteString(" | ")
			for col := 0; col < n; col++ {
				if col > 0 {
					sb.WriteString(" ")
				}
				sb.WriteString(b.obstacleCell(geom.C(row, col)))
			}
			sb.WriteString(" | ")
			sb.WriteString(b.prizeCell(geom.C(row, n)))
		}
		if row != n {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (b *Board) endRow(row int) string {
	cells := make([]string, b.Config.Length)
	for col := range cells {
		cells[col] = b.prizeCell(geom.C(row, col))
	}
	return "[##] | " + strings.Join(cells, " ") + " | [##]"
}

func (b *Board) prizeCell(c geom.Coord) string {
	p := b.PrizeAt(c)
	switch {
	case p == nil:
		return "[  ]"
	case p.Resolved():
		return "[..]"
	default:
		return "[" + p.Prize.Short() + "]"
	}
}

func (b *Board) obstacleCell(c geom.Coord) string {
	o := b.ObstacleAt(c)
	switch {
	case o == nil:
		return "[  ]"
	case !o.Active:
		return "[x ]"
	case !o.Visible:
		return "[h ]"
	default:
		return "[B ]"
	}
}

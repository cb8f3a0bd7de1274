// Package board implements the 4x4 tile grid and move rules for 2048.
// Boards are immutable values: every operation returns a new board and
// never touches its input.
package board

// Direction represents a move direction.
// The declaration order doubles as the fixed tie-break and fallback
// priority used by the engine: Left < Up < Right < Down.
type Direction int

const (
	Left Direction = iota
	Up
	Right
	Down
)

// Directions lists all move directions in priority order.
var Directions = [4]Direction{Left, Up, Right, Down}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// Size is the board dimension.
const Size = 4

// Board represents a 4x4 game board. 0 is an empty cell, any other
// value is a power of two >= 2.
type Board [Size][Size]int

// Cell is a board coordinate (row-major).
type Cell struct {
	Row, Col int
}

// Outcome is the result of applying a move to a board.
type Outcome struct {
	Board      Board
	Moved      bool
	ScoreDelta int
	Merges     []Cell // final positions of tiles created by merges
}

// slideRow slides and merges a single row to the left.
// Returns the updated row, the score gained from merges, and the
// columns (in the slid row) where merged tiles landed.
func slideRow(row [Size]int) (result [Size]int, score int, merges []int) {
	writePos := 0
	merged := false

	for i := range Size {
		if row[i] == 0 {
			continue
		}

		if writePos > 0 && result[writePos-1] == row[i] && !merged {
			// Merge with previous tile; at most one merge per pair.
			result[writePos-1] *= 2
			score += result[writePos-1]
			merges = append(merges, writePos-1)
			merged = true
		} else {
			result[writePos] = row[i]
			writePos++
			merged = false
		}
	}

	return result, score, merges
}

// reverseRow reverses a row.
func reverseRow(row [Size]int) [Size]int {
	var result [Size]int
	for i := range Size {
		result[i] = row[Size-1-i]
	}
	return result
}

// transpose returns the matrix transpose.
func transpose(b Board) Board {
	var result Board
	for y := range Size {
		for x := range Size {
			result[y][x] = b[x][y]
		}
	}
	return result
}

func slideLeft(b Board) Outcome {
	out := Outcome{}
	for y := range Size {
		newRow, score, merges := slideRow(b[y])
		out.Board[y] = newRow
		out.ScoreDelta += score
		for _, col := range merges {
			out.Merges = append(out.Merges, Cell{Row: y, Col: col})
		}
		if b[y] != newRow {
			out.Moved = true
		}
	}
	return out
}

// Apply performs a move in the given direction. Right, up, and down
// reuse the left-slide kernel through reverse/transpose, with merge
// coordinates mapped back into the original orientation.
func Apply(b Board, dir Direction) Outcome {
	switch dir {
	case Left:
		return slideLeft(b)

	case Right:
		var reversed Board
		for y := range Size {
			reversed[y] = reverseRow(b[y])
		}
		out := slideLeft(reversed)
		for y := range Size {
			out.Board[y] = reverseRow(out.Board[y])
		}
		for i, m := range out.Merges {
			out.Merges[i] = Cell{Row: m.Row, Col: Size - 1 - m.Col}
		}
		return out

	case Up:
		out := slideLeft(transpose(b))
		out.Board = transpose(out.Board)
		for i, m := range out.Merges {
			out.Merges[i] = Cell{Row: m.Col, Col: m.Row}
		}
		return out

	case Down:
		var reversed Board
		t := transpose(b)
		for y := range Size {
			reversed[y] = reverseRow(t[y])
		}
		out := slideLeft(reversed)
		for y := range Size {
			out.Board[y] = reverseRow(out.Board[y])
		}
		out.Board = transpose(out.Board)
		for i, m := range out.Merges {
			out.Merges[i] = Cell{Row: Size - 1 - m.Col, Col: m.Row}
		}
		return out

	default:
		return Outcome{Board: b}
	}
}

// Legal returns true if moving in the given direction changes the board.
func Legal(b Board, dir Direction) bool {
	return Apply(b, dir).Moved
}

// LegalMoves returns all legal directions in priority order.
func LegalMoves(b Board) []Direction {
	var moves []Direction
	for _, dir := range Directions {
		if Legal(b, dir) {
			moves = append(moves, dir)
		}
	}
	return moves
}

// EmptyCells returns coordinates of all empty cells in row-major order.
func EmptyCells(b Board) []Cell {
	var cells []Cell
	for y := range Size {
		for x := range Size {
			if b[y][x] == 0 {
				cells = append(cells, Cell{Row: y, Col: x})
			}
		}
	}
	return cells
}

// CountEmpty returns the number of empty cells.
func CountEmpty(b Board) int {
	count := 0
	for y := range Size {
		for x := range Size {
			if b[y][x] == 0 {
				count++
			}
		}
	}
	return count
}

// WithTile returns a copy of the board with a tile placed at the cell.
func WithTile(b Board, c Cell, value int) Board {
	b[c.Row][c.Col] = value
	return b
}

// CanMove returns true if any move is possible.
func CanMove(b Board) bool {
	if CountEmpty(b) > 0 {
		return true
	}
	for y := range Size {
		for x := range Size {
			val := b[y][x]
			if x < Size-1 && b[y][x+1] == val {
				return true
			}
			if y < Size-1 && b[y+1][x] == val {
				return true
			}
		}
	}
	return false
}

// MaxTile returns the maximum tile value on the board.
func MaxTile(b Board) int {
	maxVal := 0
	for y := range Size {
		for x := range Size {
			if b[y][x] > maxVal {
				maxVal = b[y][x]
			}
		}
	}
	return maxVal
}

// rotate returns the board rotated 90 degrees clockwise.
func rotate(b Board) Board {
	var result Board
	for y := range Size {
		for x := range Size {
			result[x][Size-1-y] = b[y][x]
		}
	}
	return result
}

// less compares two boards by their flattened row-major representation.
func less(a, b Board) bool {
	for y := range Size {
		for x := range Size {
			if a[y][x] != b[y][x] {
				return a[y][x] < b[y][x]
			}
		}
	}
	return false
}

// Canonical returns the lexicographically smallest of the board's four
// rotational images. Symmetric positions share a canonical form, which
// the search uses to fold transposition-cache entries together.
func Canonical(b Board) Board {
	best := b
	cur := b
	for range 3 {
		cur = rotate(cur)
		if less(cur, best) {
			best = cur
		}
	}
	return best
}

// FromFlat builds a board from 16 row-major values.
func FromFlat(flat []int) (Board, bool) {
	if len(flat) != Size*Size {
		return Board{}, false
	}
	var b Board
	for i, v := range flat {
		if v < 0 {
			return Board{}, false
		}
		b[i/Size][i%Size] = v
	}
	return b, true
}

// Flatten returns the board's 16 values in row-major order.
func Flatten(b Board) []int {
	flat := make([]int, 0, Size*Size)
	for y := range Size {
		for x := range Size {
			flat = append(flat, b[y][x])
		}
	}
	return flat
}

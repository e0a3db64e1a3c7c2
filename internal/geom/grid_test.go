package geom

import "testing"

func TestManhattanDistance(t *testing.T) {
	tests := []struct {
		a, b Position
		want int
	}{
		{Position{0, 0}, Position{0, 0}, 0},
		{Position{0, 0}, Position{3, 4}, 7},
		{Position{5, 5}, Position{2, 1}, 7},
	}

	for _, tt := range tests {
		if got := ManhattanDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("ManhattanDistance(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestFloodFillReachesOpenGrid(t *testing.T) {
	width, height := 5, 5
	walls := map[Position]bool{{2, 0}: true, {2, 1}: true, {2, 2}: true, {2, 3}: true, {2, 4}: true}
	passable := func(p Position) bool { return !walls[p] }

	reached := FloodFill(Position{0, 0}, width, height, passable)

	if reached[Position{4, 4}] {
		t.Errorf("expected (4,4) unreachable behind the wall column, got reachable")
	}
	if !reached[Position{1, 4}] {
		t.Errorf("expected (1,4) reachable on the near side of the wall")
	}
}

func TestFloodFillStartBlocked(t *testing.T) {
	passable := func(p Position) bool { return p != (Position{0, 0}) }
	reached := FloodFill(Position{0, 0}, 3, 3, passable)
	if len(reached) != 0 {
		t.Errorf("expected empty reachable set when start is impassable, got %d cells", len(reached))
	}
}

func TestLineCarveEndsMatch(t *testing.T) {
	a := Position{1, 1}
	b := Position{6, 9}

	for _, horizontalFirst := range []bool{true, false} {
		cells := LineCarve(a, b, horizontalFirst)
		if cells[0] != a {
			t.Errorf("LineCarve start = %v, want %v", cells[0], a)
		}
		if cells[len(cells)-1] != b {
			t.Errorf("LineCarve end = %v, want %v", cells[len(cells)-1], b)
		}
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
	}{
		{"up", true},
		{"down", true},
		{"left", true},
		{"right", true},
		{"sideways", false},
	}

	for _, tt := range tests {
		_, ok := ParseDirection(tt.input)
		if ok != tt.ok {
			t.Errorf("ParseDirection(%q) ok = %v, want %v", tt.input, ok, tt.ok)
		}
	}
}

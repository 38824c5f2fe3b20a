package payline

import (
	"reflect"
	"testing"

	"github.com/ahmeterdemserceoglu/sloter/internal/model"
)

func testConfig() Config {
	return Config{
		Wild:                "WILD",
		Scatter:             "SCATTER",
		MinRun:              3,
		ScatterMin:          3,
		ScatterRate:         2,
		JackpotMultiplier:   100,
		MaxPayoutMultiplier: 10000,
		Paytable: map[string]map[int]int{
			"CHERRY": {3: 20, 4: 50, 5: 100},
			"SEVEN":  {3: 100, 4: 300, 5: 700},
		},
		Patterns: [][]int{
			{1, 1, 1, 1, 1},
			{0, 0, 0, 0, 0},
		},
	}
}

// grid строится по колонкам: reel x row
func gridOf(rows ...[5]string) model.ReelGrid {
	grid := make(model.ReelGrid, 5)
	for r := 0; r < 5; r++ {
		grid[r] = make([]string, len(rows))
		for i, row := range rows {
			grid[r][i] = row[r]
		}
	}
	return grid
}

func TestEvaluate_SimpleLineWin(t *testing.T) {
	e := NewEvaluator(testConfig())
	grid := gridOf(
		[5]string{"SEVEN", "SEVEN", "SEVEN", "SEVEN", "SEVEN"},
		[5]string{"CHERRY", "CHERRY", "CHERRY", "SEVEN", "SEVEN"},
	)

	out := e.Evaluate(grid, 100)

	if len(out.LineWins) != 2 {
		t.Fatalf("expected 2 line wins, got %d", len(out.LineWins))
	}

	// Линия 1 (средний ряд): 3 вишни, 20% ставки
	if out.LineWins[0].Symbol != "CHERRY" || out.LineWins[0].Count != 3 || out.LineWins[0].Payout != 20 {
		t.Errorf("unexpected middle line win: %+v", out.LineWins[0])
	}
	// Линия 2 (верхний ряд): 5 семёрок, 700% ставки
	if out.LineWins[1].Symbol != "SEVEN" || out.LineWins[1].Count != 5 || out.LineWins[1].Payout != 700 {
		t.Errorf("unexpected top line win: %+v", out.LineWins[1])
	}
	if out.TotalPayout != 720 {
		t.Errorf("total payout = %d, want 720", out.TotalPayout)
	}
}

func TestEvaluate_BelowMinRun(t *testing.T) {
	e := NewEvaluator(testConfig())
	grid := gridOf(
		[5]string{"CHERRY", "CHERRY", "SEVEN", "CHERRY", "CHERRY"},
		[5]string{"SEVEN", "CHERRY", "CHERRY", "SEVEN", "CHERRY"},
	)

	out := e.Evaluate(grid, 100)
	if len(out.LineWins) != 0 || out.TotalPayout != 0 {
		t.Errorf("expected no wins for runs shorter than 3, got %+v", out.LineWins)
	}
}

func TestEvaluate_WildExtendsRun(t *testing.T) {
	e := NewEvaluator(testConfig())
	grid := gridOf(
		[5]string{"SEVEN", "WILD", "SEVEN", "WILD", "CHERRY"},
		[5]string{"CHERRY", "SEVEN", "SEVEN", "SEVEN", "SEVEN"},
	)

	out := e.Evaluate(grid, 100)
	if len(out.LineWins) != 1 {
		t.Fatalf("expected 1 line win, got %d", len(out.LineWins))
	}
	// Верхний ряд: SEVEN WILD SEVEN WILD = 4 подряд
	win := out.LineWins[0]
	if win.Symbol != "SEVEN" || win.Count != 4 || win.Payout != 300 {
		t.Errorf("unexpected wild run win: %+v", win)
	}
}

func TestEvaluate_WildLeadingUsesFirstRealSymbol(t *testing.T) {
	e := NewEvaluator(testConfig())
	grid := gridOf(
		[5]string{"WILD", "WILD", "SEVEN", "SEVEN", "CHERRY"},
		[5]string{"CHERRY", "CHERRY", "CHERRY", "CHERRY", "CHERRY"},
	)

	out := e.Evaluate(grid, 100)
	found := false
	for _, win := range out.LineWins {
		if win.Symbol == "SEVEN" && win.Count == 4 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected SEVEN x4 from leading wilds, got %+v", out.LineWins)
	}
}

func TestEvaluate_ScatterBonus(t *testing.T) {
	e := NewEvaluator(testConfig())
	grid := gridOf(
		[5]string{"CHERRY", "SCATTER", "SEVEN", "SCATTER", "CHERRY"},
		[5]string{"SCATTER", "CHERRY", "SEVEN", "CHERRY", "SCATTER"},
	)

	out := e.Evaluate(grid, 10)
	if out.ScatterCount != 4 {
		t.Fatalf("scatter count = %d, want 4", out.ScatterCount)
	}
	if !out.IsBonus {
		t.Error("expected bonus for 4 scatters")
	}
	// Ставка 10, 4 скаттера, множитель 2
	if out.ScatterPayout != 80 {
		t.Errorf("scatter payout = %d, want 80", out.ScatterPayout)
	}
}

func TestEvaluate_ScatterFirstLineSkipped(t *testing.T) {
	e := NewEvaluator(testConfig())
	grid := gridOf(
		[5]string{"SCATTER", "SEVEN", "SEVEN", "SEVEN", "SEVEN"},
		[5]string{"CHERRY", "LEMON", "LEMON", "LEMON", "LEMON"},
	)

	out := e.Evaluate(grid, 100)
	if len(out.LineWins) != 0 {
		t.Errorf("line starting with scatter must not pay, got %+v", out.LineWins)
	}
}

func TestEvaluate_JackpotThreshold(t *testing.T) {
	cfg := testConfig()
	cfg.Paytable["SEVEN"][5] = 20000 // 200x ставки
	e := NewEvaluator(cfg)

	grid := gridOf(
		[5]string{"SEVEN", "SEVEN", "SEVEN", "SEVEN", "SEVEN"},
		[5]string{"CHERRY", "LEMON", "BAR", "LEMON", "CHERRY"},
	)

	out := e.Evaluate(grid, 10)
	if out.TotalPayout != 2000 {
		t.Fatalf("total payout = %d, want 2000", out.TotalPayout)
	}
	if !out.IsJackpot {
		t.Error("payout above 100x bet must flag jackpot")
	}
}

func TestEvaluate_MaxPayoutCap(t *testing.T) {
	cfg := testConfig()
	cfg.MaxPayoutMultiplier = 5
	cfg.Paytable["SEVEN"][5] = 20000
	e := NewEvaluator(cfg)

	grid := gridOf(
		[5]string{"SEVEN", "SEVEN", "SEVEN", "SEVEN", "SEVEN"},
		[5]string{"CHERRY", "LEMON", "BAR", "LEMON", "CHERRY"},
	)

	out := e.Evaluate(grid, 10)
	if out.TotalPayout != 50 {
		t.Errorf("total payout = %d, want cap of 50", out.TotalPayout)
	}
}

func TestEvaluate_Pure(t *testing.T) {
	e := NewEvaluator(testConfig())
	grid := gridOf(
		[5]string{"SEVEN", "WILD", "SEVEN", "CHERRY", "SCATTER"},
		[5]string{"CHERRY", "CHERRY", "CHERRY", "SEVEN", "SEVEN"},
	)

	first := e.Evaluate(grid, 50)
	second := e.Evaluate(grid, 50)
	if !reflect.DeepEqual(first, second) {
		t.Error("evaluation of the same grid must be deterministic")
	}
}

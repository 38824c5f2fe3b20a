package payline

import (
	"github.com/ahmeterdemserceoglu/sloter/internal/model"
)

// Config — статичная конфигурация оценки: шаблоны линий, таблица выплат
// и правила скаттера/джекпота. Разделяется всеми оценками только на чтение
type Config struct {
	Wild    string
	Scatter string
	// MinRun — минимальная длина последовательности для выплаты по линии
	MinRun int
	// ScatterMin — минимум скаттеров на поле для бонуса
	ScatterMin int
	// ScatterRate — выплата за скаттеры: ставка * количество * ScatterRate
	ScatterRate int
	// JackpotMultiplier — порог джекпота в кратности ставки (политика, не правило символов)
	JackpotMultiplier int
	// MaxPayoutMultiplier — потолок общей выплаты в кратности ставки
	MaxPayoutMultiplier int
	// Paytable: символ -> длина последовательности -> выплата в сотых долях ставки
	Paytable map[string]map[int]int
	// Patterns: для каждой линии — индекс ряда на каждом барабане
	Patterns [][]int
}

type Evaluator struct {
	cfg Config
}

func NewEvaluator(cfg Config) *Evaluator {
	return &Evaluator{cfg: cfg}
}

// Evaluate — оценка поля. Чистая функция от (поле, ставка) и конфигурации:
// одинаковые входы дают одинаковый исход, скрытого состояния нет
func (e *Evaluator) Evaluate(grid model.ReelGrid, bet int) model.SpinOutcome {
	var wins []model.LineWin
	var lineTotal int

	for i, pattern := range e.cfg.Patterns {
		win, ok := e.evaluateLine(grid, pattern, bet)
		if !ok {
			continue
		}
		win.Line = i + 1
		wins = append(wins, win)
		lineTotal += win.Payout
	}

	// Скаттеры считаются по всему полю независимо от линий
	scatterCount := 0
	for _, reel := range grid {
		for _, sym := range reel {
			if sym == e.cfg.Scatter {
				scatterCount++
			}
		}
	}

	var scatterPayout int
	isBonus := false
	if scatterCount >= e.cfg.ScatterMin {
		isBonus = true
		scatterPayout = bet * scatterCount * e.cfg.ScatterRate
	}

	total := applyMaxPayout(lineTotal+scatterPayout, bet, e.cfg.MaxPayoutMultiplier)

	isJackpot := e.cfg.JackpotMultiplier > 0 && total > bet*e.cfg.JackpotMultiplier

	return model.SpinOutcome{
		Board:         grid,
		LineWins:      wins,
		ScatterCount:  scatterCount,
		ScatterPayout: scatterPayout,
		TotalPayout:   total,
		IsBonus:       isBonus,
		IsJackpot:     isJackpot,
	}
}

// evaluateLine — оценка одной линии слева направо
func (e *Evaluator) evaluateLine(grid model.ReelGrid, pattern []int, bet int) (model.LineWin, bool) {
	symbols := make([]string, len(pattern))
	for r, row := range pattern {
		symbols[r] = grid[r][row]
	}

	// Линии, начинающиеся со скаттера, не оцениваются
	if symbols[0] == e.cfg.Scatter {
		return model.LineWin{}, false
	}

	// Базовый символ — первый не-вайлд и не-скаттер
	var base string
	for _, sym := range symbols {
		if sym != e.cfg.Wild && sym != e.cfg.Scatter {
			base = sym
			break
		}
	}
	if base == "" {
		return model.LineWin{}, false
	}

	// Длина последовательности base + wild с первого барабана
	count := 0
	for _, sym := range symbols {
		if sym == base || sym == e.cfg.Wild {
			count++
		} else {
			break
		}
	}

	if count < e.cfg.MinRun {
		return model.LineWin{}, false
	}

	payTable, ok := e.cfg.Paytable[base]
	if !ok {
		return model.LineWin{}, false
	}
	val, ok := payTable[count]
	if !ok {
		return model.LineWin{}, false
	}

	return model.LineWin{
		Symbol: base,
		Count:  count,
		Payout: val * bet / 100,
	}, true
}

func applyMaxPayout(amount, bet, maxMult int) int {
	if maxMult <= 0 {
		return amount
	}
	maxPay := maxMult * bet
	if amount > maxPay {
		return maxPay
	}
	return amount
}

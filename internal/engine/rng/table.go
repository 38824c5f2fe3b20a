package rng

import (
	"errors"
	"fmt"
)

// SymbolWeight — вес одного символа в таблице
type SymbolWeight struct {
	Symbol string
	Weight int
}

// WeightTable — упорядоченная таблица весов символов. Сумма весов обязана
// совпадать с номиналом, это проверяется один раз при загрузке конфигурации,
// а не на каждый розыгрыш. После создания таблица не изменяется
type WeightTable struct {
	entries []SymbolWeight
	total   int
}

func NewWeightTable(entries []SymbolWeight, denomination int) (*WeightTable, error) {
	if len(entries) == 0 {
		return nil, errors.New("symbol weight table is empty")
	}
	if denomination <= 0 {
		return nil, fmt.Errorf("invalid denomination: %d", denomination)
	}

	sum := 0
	for _, e := range entries {
		if e.Symbol == "" {
			return nil, errors.New("symbol weight table contains empty symbol id")
		}
		if e.Weight <= 0 {
			return nil, fmt.Errorf("symbol %q has non-positive weight %d", e.Symbol, e.Weight)
		}
		sum += e.Weight
	}
	if sum != denomination {
		return nil, fmt.Errorf("symbol weights sum to %d, expected denomination %d", sum, denomination)
	}

	cp := make([]SymbolWeight, len(entries))
	copy(cp, entries)

	return &WeightTable{entries: cp, total: denomination}, nil
}

func (t *WeightTable) Denomination() int {
	return t.total
}

// pick — выбор символа по равномерному розыгрышу в [0, номинал).
// Идём по накопленным границам в фиксированном порядке таблицы и берём
// первый символ, чья верхняя граница больше выпавшего числа. Это даёт
// точную долговременную частоту weight/denomination для каждого символа
func (t *WeightTable) pick(draw int) string {
	cumulative := 0
	for _, e := range t.entries {
		cumulative += e.Weight
		if draw < cumulative {
			return e.Symbol
		}
	}
	// Недостижимо при валидной таблице и draw < total
	return t.entries[len(t.entries)-1].Symbol
}

package model

// ReelGrid — игровое поле (барабаны x ряды идентификаторов символов).
// Создаётся заново на каждый спин и после генерации не изменяется.
type ReelGrid [][]string

type SpinRequest struct {
	Bet int
}

type LineWin struct {
	Line   int
	Symbol string
	Count  int
	Payout int
}

// SpinOutcome — результат одного спина: поле, выигрышные линии и флаги.
// Чистое значение, считается один раз и дальше только читается.
type SpinOutcome struct {
	Board         ReelGrid
	LineWins      []LineWin
	ScatterCount  int
	ScatterPayout int
	TotalPayout   int
	IsBonus       bool
	IsJackpot     bool
}

// SpinResult — то, что уходит клиенту: исход спина плюс баланс после зачисления
type SpinResult struct {
	Outcome SpinOutcome
	Balance int
}

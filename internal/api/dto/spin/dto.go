package spin

type SpinRequest struct {
	Bet int `json:"bet"` // Размер ставки (положительное целое, >0)
}

type SpinResponse struct {
	Board         [][]string `json:"board"`          // Символы (ID)
	LineWins      []LineWin  `json:"line_wins"`      // Выигрышные линии
	ScatterCount  int        `json:"scatter_count"`  // Кол-во скаттеров
	ScatterPayout int        `json:"scatter_payout"` // Выплата по скаттерам
	TotalPayout   int        `json:"total_payout"`   // Общая выплата
	IsBonus       bool       `json:"is_bonus"`       // Сработал бонусный режим
	IsJackpot     bool       `json:"is_jackpot"`     // Сработал джекпот
	Balance       int        `json:"balance"`        // Баланс после
}

type LineWin struct {
	Line   int    `json:"line"`   // 1-20
	Symbol string `json:"symbol"` // ID символа
	Count  int    `json:"count"`  // 3-5
	Payout int    `json:"payout"` // Выплата
}

type StatsResponse struct {
	TotalWagered     int64   `json:"total_wagered"`      // Сумма ставок
	TotalWon         int64   `json:"total_won"`          // Сумма выплат
	SpinCount        int64   `json:"spin_count"`         // Всего спинов
	WinningSpinCount int64   `json:"winning_spin_count"` // Спинов с выплатой
	RTP              float64 `json:"rtp"`                // Реализованный RTP, %
	WindowRTP        float64 `json:"window_rtp"`         // RTP по скользящему окну, %
}

package rtp

import "sync"

type spinSample struct {
	bet int64
	win int64
}

// Snapshot — копия счётчиков на момент чтения
type Snapshot struct {
	TotalWagered     int64
	TotalWon         int64
	SpinCount        int64
	WinningSpinCount int64
	// RTP — реализованный return-to-player в процентах; 0, пока ставок не было
	RTP float64
	// WindowRTP — RTP по скользящему окну последних спинов (для мониторинга)
	WindowRTP float64
}

// Ledger — накопительный учёт ставок и выплат. Счётчики только растут,
// обнуление — только явным Reset (административное/тестовое действие)
type Ledger struct {
	mtx sync.RWMutex

	totalWagered     int64
	totalWon         int64
	spinCount        int64
	winningSpinCount int64

	window     []spinSample
	windowSize int
}

func NewLedger(windowSize int) *Ledger {
	return &Ledger{
		windowSize: windowSize,
	}
}

// Record — учёт одного спина: ставка, выплата, счётчики
func (l *Ledger) Record(bet, win int64) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	l.totalWagered += bet
	l.totalWon += win
	l.spinCount++
	if win > 0 {
		l.winningSpinCount++
	}

	if l.windowSize > 0 {
		l.window = append(l.window, spinSample{bet: bet, win: win})
		if len(l.window) > l.windowSize {
			l.window = l.window[1:]
		}
	}
}

// CurrentRTP — реализованный RTP в процентах. При нулевой сумме ставок
// RTP не определён и возвращается 0, чтобы не делить на ноль
func (l *Ledger) CurrentRTP() float64 {
	l.mtx.RLock()
	defer l.mtx.RUnlock()
	return l.rtpLocked()
}

func (l *Ledger) rtpLocked() float64 {
	if l.totalWagered == 0 {
		return 0
	}
	return float64(l.totalWon) / float64(l.totalWagered) * 100
}

func (l *Ledger) Snapshot() Snapshot {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	var windowBet, windowWin int64
	for _, s := range l.window {
		windowBet += s.bet
		windowWin += s.win
	}
	windowRTP := 0.0
	if windowBet > 0 {
		windowRTP = float64(windowWin) / float64(windowBet) * 100
	}

	return Snapshot{
		TotalWagered:     l.totalWagered,
		TotalWon:         l.totalWon,
		SpinCount:        l.spinCount,
		WinningSpinCount: l.winningSpinCount,
		RTP:              l.rtpLocked(),
		WindowRTP:        windowRTP,
	}
}

// Reset — атомарное обнуление всех счётчиков
func (l *Ledger) Reset() {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	l.totalWagered = 0
	l.totalWon = 0
	l.spinCount = 0
	l.winningSpinCount = 0
	l.window = nil
}

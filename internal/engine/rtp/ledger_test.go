package rtp

import (
	"sync"
	"testing"
)

func TestLedger_RTPUndefinedWithoutWagers(t *testing.T) {
	l := NewLedger(0)
	if got := l.CurrentRTP(); got != 0 {
		t.Errorf("RTP with no wagers = %f, want 0", got)
	}
}

func TestLedger_Record(t *testing.T) {
	l := NewLedger(0)
	l.Record(100, 0)
	l.Record(100, 96)
	l.Record(100, 192)

	snap := l.Snapshot()
	if snap.TotalWagered != 300 || snap.TotalWon != 288 {
		t.Fatalf("wagered/won = %d/%d, want 300/288", snap.TotalWagered, snap.TotalWon)
	}
	if snap.SpinCount != 3 || snap.WinningSpinCount != 2 {
		t.Errorf("counts = %d/%d, want 3/2", snap.SpinCount, snap.WinningSpinCount)
	}
	if snap.RTP != 96 {
		t.Errorf("RTP = %f, want 96", snap.RTP)
	}
}

func TestLedger_WindowRTP(t *testing.T) {
	l := NewLedger(2)
	l.Record(100, 0)
	l.Record(100, 50)
	l.Record(100, 150)

	snap := l.Snapshot()
	// Окно хранит два последних спина: 50 + 150 на 200 ставки
	if snap.WindowRTP != 100 {
		t.Errorf("window RTP = %f, want 100", snap.WindowRTP)
	}
	// Накопительный RTP считает все три
	if snap.RTP < 66 || snap.RTP > 67 {
		t.Errorf("RTP = %f, want ~66.67", snap.RTP)
	}
}

func TestLedger_Reset(t *testing.T) {
	l := NewLedger(10)
	l.Record(100, 90)
	l.Reset()

	snap := l.Snapshot()
	if snap.TotalWagered != 0 || snap.SpinCount != 0 || snap.RTP != 0 || snap.WindowRTP != 0 {
		t.Errorf("snapshot after reset not zeroed: %+v", snap)
	}
}

func TestLedger_ConcurrentRecord(t *testing.T) {
	l := NewLedger(100)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				l.Record(10, 9)
			}
		}()
	}
	wg.Wait()

	snap := l.Snapshot()
	if snap.SpinCount != 5000 {
		t.Errorf("spin count = %d, want 5000", snap.SpinCount)
	}
	if snap.TotalWagered != 50000 || snap.TotalWon != 45000 {
		t.Errorf("wagered/won = %d/%d, want 50000/45000", snap.TotalWagered, snap.TotalWon)
	}
}

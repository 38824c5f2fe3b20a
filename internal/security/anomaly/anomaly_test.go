package anomaly

import (
	"math/rand"
	"testing"
	"time"
)

func testDetector() *Detector {
	return New(Config{
		MaxSamples:   100,
		MinSamples:   10,
		Tolerance:    10 * time.Millisecond,
		RegularRatio: 0.8,
	})
}

func TestDetector_RegularIntervals(t *testing.T) {
	d := testDetector()
	ts := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	flagged := false
	for i := 0; i < 20; i++ {
		if d.RecordAndCheck("user-1", "spin", ts) {
			flagged = true
		}
		ts = ts.Add(500 * time.Millisecond)
	}

	if !flagged {
		t.Error("identical intervals must trigger the automation signature")
	}
}

func TestDetector_HumanJitter(t *testing.T) {
	d := testDetector()
	r := rand.New(rand.NewSource(3))
	ts := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 50; i++ {
		if d.RecordAndCheck("user-1", "spin", ts) {
			t.Fatalf("jittered intervals flagged as automation on sample %d", i)
		}
		// 0.5-2.5 секунды между действиями
		ts = ts.Add(500*time.Millisecond + time.Duration(r.Intn(2000))*time.Millisecond)
	}
}

func TestDetector_BelowMinSamples(t *testing.T) {
	d := testDetector()
	ts := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 9; i++ {
		if d.RecordAndCheck("user-1", "spin", ts) {
			t.Fatal("history shorter than minimum must never flag")
		}
		ts = ts.Add(500 * time.Millisecond)
	}
}

func TestDetector_KeysIndependent(t *testing.T) {
	d := testDetector()
	ts := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 20; i++ {
		d.RecordAndCheck("bot", "spin", ts.Add(time.Duration(i)*500*time.Millisecond))
	}

	// Другой субъект с той же историей длины 1 не должен наследовать вердикт
	if d.RecordAndCheck("human", "spin", ts) {
		t.Error("verdict must be scoped to the (subject, action) key")
	}
}

func TestDetector_HistoryTrimmed(t *testing.T) {
	d := New(Config{
		MaxSamples:   10,
		MinSamples:   5,
		Tolerance:    10 * time.Millisecond,
		RegularRatio: 0.8,
	})
	ts := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	// Долгая рваная история, затем ровный хвост длиной с максимум выборки:
	// старые метки должны быть вытеснены и не портить сигнатуру
	r := rand.New(rand.NewSource(9))
	for i := 0; i < 30; i++ {
		d.RecordAndCheck("user-1", "spin", ts)
		ts = ts.Add(time.Duration(500+r.Intn(3000)) * time.Millisecond)
	}

	flagged := false
	for i := 0; i < 10; i++ {
		if d.RecordAndCheck("user-1", "spin", ts) {
			flagged = true
		}
		ts = ts.Add(time.Second)
	}
	if !flagged {
		t.Error("regular tail after trimming must trigger the signature")
	}
}

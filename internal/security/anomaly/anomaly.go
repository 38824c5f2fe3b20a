package anomaly

import (
	"sync"
	"time"
)

// Config — параметры детектора регулярных интервалов
type Config struct {
	// MaxSamples — сколько последних меток времени хранится на ключ
	MaxSamples int
	// MinSamples — минимум меток для вычисления сигнатуры
	MinSamples int
	// Tolerance — абсолютный допуск отклонения интервала от среднего
	Tolerance time.Duration
	// RegularRatio — доля «ровных» интервалов, выше которой ключ подозрителен
	RegularRatio float64
}

type key struct {
	subject string
	action  string
}

type history struct {
	mu     sync.Mutex
	stamps []time.Time
}

// Detector помечает статистически слишком ровные интервалы между действиями —
// сигнатуру автоматизации. Это эвристика, а не доказательство: работает
// в паре с лимитером частоты, не вместо него
type Detector struct {
	cfg Config

	mtx     sync.RWMutex
	samples map[key]*history
}

func New(cfg Config) *Detector {
	return &Detector{
		cfg:     cfg,
		samples: make(map[key]*history),
	}
}

func (d *Detector) get(k key) *history {
	d.mtx.RLock()
	h, ok := d.samples[k]
	d.mtx.RUnlock()
	if ok {
		return h
	}

	d.mtx.Lock()
	defer d.mtx.Unlock()
	if h, ok = d.samples[k]; ok {
		return h
	}
	h = &history{}
	d.samples[k] = h
	return h
}

// RecordAndCheck — записывает метку времени и возвращает true, если
// накопленная история выглядит как автоматизация
func (d *Detector) RecordAndCheck(subject, action string, ts time.Time) bool {
	h := d.get(key{subject: subject, action: action})
	h.mu.Lock()
	defer h.mu.Unlock()

	h.stamps = append(h.stamps, ts)
	if d.cfg.MaxSamples > 0 && len(h.stamps) > d.cfg.MaxSamples {
		h.stamps = h.stamps[len(h.stamps)-d.cfg.MaxSamples:]
	}

	if len(h.stamps) < d.cfg.MinSamples {
		return false
	}

	intervals := make([]time.Duration, 0, len(h.stamps)-1)
	for i := 1; i < len(h.stamps); i++ {
		intervals = append(intervals, h.stamps[i].Sub(h.stamps[i-1]))
	}

	var sum time.Duration
	for _, iv := range intervals {
		sum += iv
	}
	mean := sum / time.Duration(len(intervals))

	regular := 0
	for _, iv := range intervals {
		diff := iv - mean
		if diff < 0 {
			diff = -diff
		}
		if diff < d.cfg.Tolerance {
			regular++
		}
	}

	return float64(regular) > float64(len(intervals))*d.cfg.RegularRatio
}

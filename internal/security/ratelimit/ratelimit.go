package ratelimit

import (
	"sync"
	"time"
)

// Имена действий, под которые в конфигурации задаются политики
const (
	ActionLogin           = "login"
	ActionRegister        = "register"
	ActionSpin            = "spin"
	ActionPayment         = "payment"
	ActionPaymentVelocity = "payment_velocity"
)

// Policy — порог и окно для одного действия
type Policy struct {
	Limit  int
	Window time.Duration
}

type Config struct {
	Policies map[string]Policy
	Default  Policy
}

type key struct {
	subject string
	action  string
}

type entry struct {
	mu     sync.Mutex
	stamps []time.Time
}

// Limiter — общий скользящий лимитер, ключ (субъект, действие).
// Один процессный экземпляр передаётся всем точкам вызова; окна разных
// ключей полностью независимы и не блокируют друг друга
type Limiter struct {
	cfg Config
	now func() time.Time

	mtx     sync.RWMutex
	entries map[key]*entry
}

func New(cfg Config) *Limiter {
	return NewWithClock(cfg, time.Now)
}

// NewWithClock — конструктор с внедрённым временем для тестов
func NewWithClock(cfg Config, now func() time.Time) *Limiter {
	return &Limiter{
		cfg:     cfg,
		now:     now,
		entries: make(map[key]*entry),
	}
}

func (l *Limiter) policy(action string) Policy {
	if p, ok := l.cfg.Policies[action]; ok {
		return p
	}
	return l.cfg.Default
}

func (l *Limiter) get(k key) *entry {
	l.mtx.RLock()
	e, ok := l.entries[k]
	l.mtx.RUnlock()
	if ok {
		return e
	}

	l.mtx.Lock()
	defer l.mtx.Unlock()
	if e, ok = l.entries[k]; ok {
		return e
	}
	e = &entry{}
	l.entries[k] = e
	return e
}

// evict — ленивое удаление меток старше окна. Вызывается под мьютексом записи,
// поэтому долго простаивавший ключ самоочищается при следующем обращении
// без фонового обхода
func evict(e *entry, now time.Time, window time.Duration) {
	cutoff := now.Add(-window)
	i := 0
	for i < len(e.stamps) && !e.stamps[i].After(cutoff) {
		i++
	}
	if i > 0 {
		e.stamps = append(e.stamps[:0], e.stamps[i:]...)
	}
}

// IsLimited — true, если в окне действия уже набран порог.
// Состояние ключа при проверке не пополняется
func (l *Limiter) IsLimited(subject, action string) bool {
	p := l.policy(action)
	if p.Limit <= 0 || p.Window <= 0 {
		return false
	}

	e := l.get(key{subject: subject, action: action})
	e.mu.Lock()
	defer e.mu.Unlock()

	evict(e, l.now(), p.Window)
	return len(e.stamps) >= p.Limit
}

// RecordAttempt — фиксация попытки после принятого решения о допуске
func (l *Limiter) RecordAttempt(subject, action string) {
	p := l.policy(action)
	if p.Window <= 0 {
		return
	}

	e := l.get(key{subject: subject, action: action})
	e.mu.Lock()
	defer e.mu.Unlock()

	now := l.now()
	evict(e, now, p.Window)
	e.stamps = append(e.stamps, now)
}

package rng

import (
	"crypto/rand"
	"encoding/binary"
	mathRand "math/rand"
	"sync"
)

// Source — источник равномерных случайных чисел для генератора исходов
type Source interface {
	Intn(n int) int
}

// PooledSource — пул math/rand генераторов, каждый засевается 64-битным
// зерном из crypto/rand при создании. Зерно не выводимо внешним наблюдателем,
// а пул снимает гонку за один генератор между конкурентными спинами
type PooledSource struct {
	pool *sync.Pool
}

func NewPooledSource() *PooledSource {
	return &PooledSource{
		pool: &sync.Pool{
			New: func() any {
				var seed int64
				_ = binary.Read(rand.Reader, binary.LittleEndian, &seed)
				return mathRand.New(mathRand.NewSource(seed))
			},
		},
	}
}

func (s *PooledSource) Intn(n int) int {
	r := s.pool.Get().(*mathRand.Rand)
	v := r.Intn(n)
	s.pool.Put(r)
	return v
}

// SeededSource — детерминированный источник с явным зерном для тестовых прогонов
type SeededSource struct {
	mu sync.Mutex
	r  *mathRand.Rand
}

func NewSeededSource(seed int64) *SeededSource {
	return &SeededSource{r: mathRand.New(mathRand.NewSource(seed))}
}

func (s *SeededSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Intn(n)
}

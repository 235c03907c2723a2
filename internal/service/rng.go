package service

import (
	"math/rand"
	"sync"
)

// Rand - источник случайности боевых бросков. Интерфейс позволяет
// подставить в тесты детерминированный генератор.
type Rand interface {
	// Intn возвращает равномерное число из [0, n).
	Intn(n int) int
	// Float64 возвращает равномерное число из [0, 1).
	Float64() float64
}

// lockedRand оборачивает *rand.Rand мьютексом: сервисы зовут его из
// нескольких горутин.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRand создает потокобезопасный источник с заданным сидом.
func NewRand(seed int64) Rand {
	return &lockedRand{r: rand.New(rand.NewSource(seed))}
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

// randRange возвращает целое из [min, max] включительно.
func randRange(rng Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + rng.Intn(max-min+1)
}

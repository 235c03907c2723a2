package service

import "sync"

// PlayerLocks сериализует команды одного игрока. Все игровые операции
// читают документ, меняют его и сохраняют целиком, поэтому два
// одновременных запроса одного игрока без блокировки затерли бы
// изменения друг друга.
type PlayerLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewPlayerLocks() *PlayerLocks {
	return &PlayerLocks{locks: make(map[string]*sync.Mutex)}
}

func (p *PlayerLocks) get(playerID string) *sync.Mutex {
	p.mu.Lock()
	defer p.mu.Unlock()
	if l, ok := p.locks[playerID]; ok {
		return l
	}
	l := &sync.Mutex{}
	p.locks[playerID] = l
	return l
}

// Lock захватывает мьютекс игрока и возвращает функцию освобождения.
func (p *PlayerLocks) Lock(playerID string) func() {
	l := p.get(playerID)
	l.Lock()
	return l.Unlock
}

// LockPair захватывает мьютексы двух игроков в стабильном порядке,
// чтобы два встречных PVP-запроса не взяли их крест-накрест.
func (p *PlayerLocks) LockPair(a, b string) func() {
	if a == b {
		return p.Lock(a)
	}
	first, second := a, b
	if second < first {
		first, second = second, first
	}
	l1 := p.get(first)
	l2 := p.get(second)
	l1.Lock()
	l2.Lock()
	return func() {
		l2.Unlock()
		l1.Unlock()
	}
}

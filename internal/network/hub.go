package network

import (
	"sync"
	"sync/atomic"

	"github.com/Zanice/2D-Game-Framework/pkg/api"
	"github.com/Zanice/2D-Game-Framework/pkg/logger"
	"github.com/google/uuid"
)

// SubscriberBuffer - сколько снимков может отстать зритель, прежде чем кадры начнут теряться
const SubscriberBuffer = 64

// Broadcaster занимается только рассылкой снимков подписчикам
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: сессия зрителя -> Личный канал
	subscribers map[uuid.UUID]chan api.Snapshot
	dropped     atomic.Uint64
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[uuid.UUID]chan api.Snapshot),
	}
}

// Subscribe создает личный канал для новой сессии
func (b *Broadcaster) Subscribe() (uuid.UUID, <-chan api.Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := uuid.New()
	ch := make(chan api.Snapshot, SubscriberBuffer)
	b.subscribers[id] = ch
	logger.For("broadcaster").WithField("session", id).Debug("Subscriber added")
	return id, ch
}

// Unsubscribe удаляет подписчика и закрывает его канал
func (b *Broadcaster) Unsubscribe(id uuid.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
}

// Broadcast отправляет снимок всем. Медленные зрители пропускают кадр.
func (b *Broadcaster) Broadcast(msg api.Snapshot) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- msg:
		default:
			b.dropped.Add(1)
		}
	}
}

// Close отключает всех подписчиков (конец прогона)
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, id)
	}
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Dropped - сколько кадров потеряно медленными зрителями
func (b *Broadcaster) Dropped() uint64 {
	return b.dropped.Load()
}

package engine

import (
	"container/heap"

	"github.com/Zanice/2D-Game-Framework/internal/domain"
)

// CommandItem обертка для элемента очереди команд
type CommandItem struct {
	Cmd   domain.Command
	Seq   uint64 // Порядок поступления: при равном тике раньше пришедшая идет первой
	Index int    // Индекс в куче
}

// CommandQueue реализует heap.Interface: мин-куча по (Tick, Seq)
type CommandQueue []*CommandItem

func (pq CommandQueue) Len() int { return len(pq) }

func (pq CommandQueue) Less(i, j int) bool {
	if pq[i].Cmd.Tick != pq[j].Cmd.Tick {
		return pq[i].Cmd.Tick < pq[j].Cmd.Tick
	}
	return pq[i].Seq < pq[j].Seq
}

func (pq CommandQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *CommandQueue) Push(x any) {
	item := x.(*CommandItem)
	item.Index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *CommandQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // избегаем утечки памяти
	item.Index = -1 // для безопасности
	*pq = old[0 : n-1]
	return item
}

// Scheduler раздает команды по тикам в порядке поступления
type Scheduler struct {
	queue CommandQueue
	seq   uint64
}

func NewScheduler() *Scheduler {
	return &Scheduler{queue: make(CommandQueue, 0)}
}

// Schedule ставит команду в очередь на ее тик
func (s *Scheduler) Schedule(cmd domain.Command) {
	heap.Push(&s.queue, &CommandItem{Cmd: cmd, Seq: s.seq})
	s.seq++
}

// Due извлекает все команды с Tick <= tick
func (s *Scheduler) Due(tick uint64) []domain.Command {
	var out []domain.Command
	for s.queue.Len() > 0 && s.queue[0].Cmd.Tick <= tick {
		out = append(out, heap.Pop(&s.queue).(*CommandItem).Cmd)
	}
	return out
}

func (s *Scheduler) Len() int {
	return s.queue.Len()
}

// DebugDump возвращает снимок очереди для отладки
func (s *Scheduler) DebugDump() []map[string]any {
	// Пустой слайс, а не nil: в JSON будет "[]"
	result := make([]map[string]any, 0, s.queue.Len())
	for _, item := range s.queue {
		result = append(result, map[string]any{
			"tick":   item.Cmd.Tick,
			"actor":  item.Cmd.Actor,
			"action": item.Cmd.Action.String(),
			"index":  item.Index,
		})
	}
	return result
}

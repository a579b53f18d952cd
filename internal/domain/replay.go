package domain

// ReplaySession - полная запись прогона: зерно и все команды по тикам
type ReplaySession struct {
	RunID     string    `json:"runId"`
	Seed      int64     `json:"seed"`
	Timestamp int64     `json:"timestamp"`
	Ticks     uint64    `json:"ticks"`
	Commands  []Command `json:"commands"`
}

// Record добавляет команду в запись
func (s *ReplaySession) Record(cmd Command) {
	s.Commands = append(s.Commands, cmd)
}

// CommandsAt возвращает команды тика tick (команды хранятся по возрастанию тика)
func (s *ReplaySession) CommandsAt(tick uint64) []Command {
	var out []Command
	for _, c := range s.Commands {
		if c.Tick == tick {
			out = append(out, c)
		}
		if c.Tick > tick {
			break
		}
	}
	return out
}

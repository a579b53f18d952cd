package engine

import (
	"fmt"
	"strings"

	"github.com/Zanice/2D-Game-Framework/internal/systems"
	"github.com/Zanice/2D-Game-Framework/pkg/api"
	"github.com/sirupsen/logrus"
)

// AddLog добавляет запись в журнал текущего тика
func (s *Simulation) AddLog(text, logType string) {
	s.logs = append(s.logs, api.LogEntry{
		ID:   fmt.Sprintf("%d_%d", s.tick, len(s.logs)),
		Tick: s.tick,
		Text: text,
		Type: logType,
	})
	s.log.WithFields(logrus.Fields{
		"component": "game_log",
		"tick":      s.tick,
		"log_type":  logType,
	}).Debug(text)
}

func strikeText(st systems.Strike) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s hits %d with %s", st.Actor, len(st.Hits), st.Weapon)
	if len(st.Kills) > 0 {
		fmt.Fprintf(&b, ", %d down", len(st.Kills))
	}
	return b.String()
}

package engine

import (
	"context"
	"sync"
	"time"

	"github.com/Zanice/2D-Game-Framework/internal/domain"
	"github.com/Zanice/2D-Game-Framework/internal/network"
	"github.com/Zanice/2D-Game-Framework/internal/storage"
	"github.com/Zanice/2D-Game-Framework/pkg/api"
	"github.com/Zanice/2D-Game-Framework/pkg/logger"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CommandBuffer - емкость канала команд от клиентов
const CommandBuffer = 256

// RunSummary - итог прогона
type RunSummary struct {
	RunID      string
	Seed       int64
	Ticks      uint64
	Survivors  int
	Deaths     int
	ReplayPath string
}

// Instance - один запущенный прогон: симуляция, ее цикл и рассылка снимков.
// Симуляцией владеет горутина Run, остальные читают ее через View.
type Instance struct {
	RunID string

	CommandChan chan domain.Command // Команды от клиентов
	Hub         *network.Broadcaster

	cfg     Config
	mu      sync.RWMutex
	sim     *Simulation
	session *domain.ReplaySession
	latest  api.Snapshot

	replays *storage.ReplayService
	history *storage.HistoryDB
	log     *logrus.Entry
}

// NewInstance оборачивает симуляцию в прогон и включает запись команд
func NewInstance(cfg Config, sim *Simulation, hub *network.Broadcaster) *Instance {
	if hub == nil {
		hub = network.NewBroadcaster()
	}
	runID := uuid.NewString()
	session := &domain.ReplaySession{
		RunID:     runID,
		Timestamp: time.Now().Unix(),
	}
	sim.Record(session)

	return &Instance{
		RunID:       runID,
		CommandChan: make(chan domain.Command, CommandBuffer),
		Hub:         hub,
		cfg:         cfg,
		sim:         sim,
		session:     session,
		log: logger.Log.WithFields(logrus.Fields{
			"component": "instance",
			"run_id":    runID,
		}),
	}
}

// WithReplays - сохранять запись прогона в конце
func (i *Instance) WithReplays(svc *storage.ReplayService) *Instance {
	i.replays = svc
	return i
}

// WithHistory - писать итог прогона в историю
func (i *Instance) WithHistory(db *storage.HistoryDB) *Instance {
	i.history = db
	return i
}

// Submit передает команду в цикл без блокировки
func (i *Instance) Submit(cmd domain.Command) error {
	select {
	case i.CommandChan <- cmd:
		return nil
	default:
		return domain.Rejectedf("command queue is full")
	}
}

// View дает доступ к симуляции на чтение между тиками
func (i *Instance) View(fn func(sim *Simulation)) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	fn(i.sim)
}

// Latest - последний разосланный снимок
func (i *Instance) Latest() api.Snapshot {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.latest
}

// Run крутит цикл тиков до отмены ctx или до cfg.Ticks тиков.
// При TickRate == 0 тики идут без пауз.
func (i *Instance) Run(ctx context.Context) (RunSummary, error) {
	i.log.WithFields(logrus.Fields{
		"seed":      i.sim.Seed,
		"tick_rate": i.cfg.TickRate,
		"ticks":     i.cfg.Ticks,
	}).Info("Instance loop started")

	var tickC <-chan time.Time
	if i.cfg.TickRate > 0 {
		ticker := time.NewTicker(i.cfg.TickRate)
		defer ticker.Stop()
		tickC = ticker.C
	}

	for !i.done() {
		if tickC == nil {
			// 1. Без пауз: забираем накопленные команды и сразу тикаем
			if err := ctx.Err(); err != nil {
				break
			}
			i.drainCommands()
			i.step()
			continue
		}

		// 2. Реальное время
		select {
		case <-ctx.Done():
			return i.finish()
		case cmd := <-i.CommandChan:
			i.submit(cmd)
		case <-tickC:
			i.drainCommands()
			i.step()
		}
	}
	return i.finish()
}

func (i *Instance) done() bool {
	return i.cfg.Ticks > 0 && i.sim.Tick() >= i.cfg.Ticks
}

func (i *Instance) drainCommands() {
	for {
		select {
		case cmd := <-i.CommandChan:
			i.submit(cmd)
		default:
			return
		}
	}
}

func (i *Instance) submit(cmd domain.Command) {
	i.mu.Lock()
	err := i.sim.Submit(cmd)
	i.mu.Unlock()
	if err != nil {
		i.log.WithError(err).WithField("actor", cmd.Actor).Debug("Command dropped")
	}
}

func (i *Instance) step() {
	i.mu.Lock()
	snap := i.sim.Step()
	i.latest = snap
	i.mu.Unlock()

	i.Hub.Broadcast(snap)
}

// finish сохраняет запись и историю и отключает зрителей
func (i *Instance) finish() (RunSummary, error) {
	defer i.Hub.Close()

	i.mu.RLock()
	summary := RunSummary{
		RunID:  i.RunID,
		Seed:   i.sim.Seed,
		Ticks:  i.sim.Tick(),
		Deaths: i.sim.Deaths(),
	}
	for _, n := range i.sim.Survivors() {
		summary.Survivors += n
	}
	i.mu.RUnlock()

	// 1. Запись прогона
	if i.replays != nil {
		path, err := i.replays.Save(i.session)
		if err != nil {
			return summary, err
		}
		summary.ReplayPath = path
	}

	// 2. История
	if i.history != nil {
		if err := i.history.RecordRun(storage.RunRow{
			RunID:      summary.RunID,
			Seed:       summary.Seed,
			Ticks:      summary.Ticks,
			Survivors:  summary.Survivors,
			Deaths:     summary.Deaths,
			ReplayPath: summary.ReplayPath,
			CreatedAt:  time.Now(),
		}); err != nil {
			return summary, err
		}
	}

	i.log.WithFields(logrus.Fields{
		"ticks":     summary.Ticks,
		"survivors": summary.Survivors,
		"deaths":    summary.Deaths,
	}).Info("Instance loop finished")
	return summary, nil
}

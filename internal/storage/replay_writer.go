package storage

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Zanice/2D-Game-Framework/internal/domain"
	"github.com/Zanice/2D-Game-Framework/pkg/logger"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	MagicHeader string = `GSRP` // 4 байта
	Version1    uint32 = 1

	// ReplayExtension - расширение файлов записи
	ReplayExtension = ".gsrp"
)

// ReplayFileHeader - точное представление заголовка файла в памяти.
// binary.Write пишет его целиком: только массивы и числа.
type ReplayFileHeader struct {
	Magic        [4]byte  // 4 байта
	Version      uint32   // 4 байта
	RunID        [16]byte // 16 байт, UUID прогона
	Seed         int64    // 8 байт
	Timestamp    int64    // 8 байт
	Ticks        uint64   // 8 байт
	CommandCount uint32   // 4 байта
}

// CommandHeader - заголовок каждой записи команды. Тело - msgpack payload.
type CommandHeader struct {
	Tick       uint64 // 8
	Actor      uint64 // 8
	Action     uint8  // 1
	PayloadLen uint16 // 2
}

// ReplayService сохраняет и читает записи прогонов в каталоге SaveDir
type ReplayService struct {
	SaveDir string
}

// NewReplayService создает сервис и каталог, если его нет
func NewReplayService(dir string) (*ReplayService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create replay dir: %w", err)
	}
	return &ReplayService{SaveDir: dir}, nil
}

// Save пишет сессию в файл и возвращает путь к нему
func (s *ReplayService) Save(session *domain.ReplaySession) (string, error) {
	filename := fmt.Sprintf("replay_%d_%s%s", session.Seed, session.RunID, ReplayExtension)
	path := filepath.Join(s.SaveDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := WriteReplay(w, session); err != nil {
		return "", err
	}
	if err := w.Flush(); err != nil {
		return "", err
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "replay",
		"run_id":    session.RunID,
		"commands":  len(session.Commands),
		"path":      path,
	}).Info("Replay saved")
	return path, nil
}

// WriteReplay кодирует сессию в бинарный формат
func WriteReplay(w io.Writer, s *domain.ReplaySession) error {
	// 1. Глобальный заголовок
	header := ReplayFileHeader{
		Version:      Version1,
		Seed:         s.Seed,
		Timestamp:    s.Timestamp,
		Ticks:        s.Ticks,
		CommandCount: uint32(len(s.Commands)),
	}
	copy(header.Magic[:], MagicHeader)

	if s.RunID != "" {
		id, err := uuid.Parse(s.RunID)
		if err != nil {
			return fmt.Errorf("invalid run id %q: %w", s.RunID, err)
		}
		header.RunID = id
	}

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	// 2. Команды
	for _, cmd := range s.Commands {
		payloadLen := len(cmd.Payload)
		if payloadLen > 65535 {
			return fmt.Errorf("payload too long: %d", payloadLen)
		}

		cmdHeader := CommandHeader{
			Tick:       cmd.Tick,
			Actor:      uint64(cmd.Actor),
			Action:     uint8(cmd.Action),
			PayloadLen: uint16(payloadLen),
		}
		if err := binary.Write(w, binary.LittleEndian, &cmdHeader); err != nil {
			return err
		}
		if payloadLen > 0 {
			if _, err := w.Write(cmd.Payload); err != nil {
				return err
			}
		}
	}
	return nil
}

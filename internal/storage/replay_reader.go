package storage

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/Zanice/2D-Game-Framework/internal/domain"
	"github.com/google/uuid"
)

// maxPrealloc - сколько команд резервировать заранее
const maxPrealloc = 1024

// Load читает запись прогона из файла
func (s *ReplayService) Load(path string) (*domain.ReplaySession, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadReplay(bufio.NewReader(f))
}

// ReadReplay декодирует запись из бинарного формата
func ReadReplay(r io.Reader) (*domain.ReplaySession, error) {
	// 1. Заголовок целиком
	var header ReplayFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Валидация
	if string(header.Magic[:]) != MagicHeader {
		return nil, domain.Newf(domain.CodeFormat, "invalid replay magic %q", header.Magic[:])
	}
	if header.Version != Version1 {
		return nil, domain.Newf(domain.CodeFormat, "unsupported version: %d (expected %d)", header.Version, Version1)
	}

	session := &domain.ReplaySession{
		Seed:      header.Seed,
		Timestamp: header.Timestamp,
		Ticks:     header.Ticks,
		// Счетчик из файла не проверен: память растет по мере чтения
		Commands: make([]domain.Command, 0, min(header.CommandCount, maxPrealloc)),
	}
	if header.RunID != (uuid.UUID{}) {
		session.RunID = uuid.UUID(header.RunID).String()
	}

	// 2. Команды
	for i := uint32(0); i < header.CommandCount; i++ {
		var ch CommandHeader
		if err := binary.Read(r, binary.LittleEndian, &ch); err != nil {
			return nil, fmt.Errorf("failed to read command %d: %w", i, err)
		}

		cmd := domain.Command{
			Tick:   ch.Tick,
			Actor:  domain.EntityID(ch.Actor),
			Action: domain.ActionType(ch.Action),
		}
		if ch.PayloadLen > 0 {
			cmd.Payload = make([]byte, ch.PayloadLen)
			if _, err := io.ReadFull(r, cmd.Payload); err != nil {
				return nil, fmt.Errorf("failed to read command %d payload: %w", i, err)
			}
		}
		session.Commands = append(session.Commands, cmd)
	}

	return session, nil
}

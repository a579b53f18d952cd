package domain

import (
	"fmt"
	"strconv"
)

// EntityID - упакованный идентификатор (Kind + Allegiance + Index)
type EntityID uint64

// Конфигурация битов
const (
	bitsIndex      = 40
	bitsAllegiance = 8
	bitsKind       = 8

	shiftAllegiance = bitsIndex
	shiftKind       = bitsIndex + bitsAllegiance

	maskIndex      = (1 << bitsIndex) - 1
	maskAllegiance = (1 << bitsAllegiance) - 1
	maskKind       = (1 << bitsKind) - 1
)

// PackEntityID создает ID из компонентов
func PackEntityID(kind EntityKind, allegiance Allegiance, index uint64) EntityID {
	id := index & maskIndex
	id |= (uint64(allegiance) & maskAllegiance) << shiftAllegiance
	id |= (uint64(kind) & maskKind) << shiftKind
	return EntityID(id)
}

func (id EntityID) Kind() EntityKind {
	return EntityKind((id >> shiftKind) & maskKind)
}

func (id EntityID) Allegiance() Allegiance {
	return Allegiance((id >> shiftAllegiance) & maskAllegiance)
}

func (id EntityID) Index() uint64 {
	return uint64(id & maskIndex)
}

// MarshalJSON сериализует ID в строку, так как JS теряет точность для больших int64
func (id EntityID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strconv.FormatUint(uint64(id), 10) + `"`), nil
}

// UnmarshalJSON парсит строку или число из JSON
func (id *EntityID) UnmarshalJSON(data []byte) error {
	if len(data) > 1 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	val, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return err
	}
	*id = EntityID(val)
	return nil
}

// String для логов: [Kind:Allegiance:Idx]
func (id EntityID) String() string {
	return fmt.Sprintf("[%s:%s:%d]", id.Kind(), id.Allegiance(), id.Index())
}

package domain

import "fmt"

// Allegiance - сторона сущности
type Allegiance uint8

const (
	AllegianceNeutral Allegiance = 0
	AllegianceCop     Allegiance = 1
	AllegianceRobber  Allegiance = 2
)

func (a Allegiance) String() string {
	switch a {
	case AllegianceNeutral:
		return "NEUTRAL"
	case AllegianceCop:
		return "COP"
	case AllegianceRobber:
		return "ROBBER"
	default:
		return "UNKNOWN"
	}
}

// IsAlliedWith - союзники только внутри одной стороны
func (a Allegiance) IsAlliedWith(other Allegiance) bool {
	return a == other
}

// ParseAllegiance разбирает имя стороны из сценария
func ParseAllegiance(s string) (Allegiance, error) {
	switch s {
	case "", "neutral", "NEUTRAL":
		return AllegianceNeutral, nil
	case "cop", "COP":
		return AllegianceCop, nil
	case "robber", "ROBBER":
		return AllegianceRobber, nil
	default:
		return AllegianceNeutral, Configf("unknown allegiance %q", s)
	}
}

// EntityKind - тип сущности (определяет пресет)
type EntityKind uint8

const (
	KindUnknown EntityKind = iota
	KindPlayer
	KindBystander
)

func (k EntityKind) String() string {
	switch k {
	case KindPlayer:
		return "PLAYER"
	case KindBystander:
		return "BYSTANDER"
	default:
		return fmt.Sprintf("KIND_%d", uint8(k))
	}
}

// ParseEntityKind разбирает имя типа из сценария
func ParseEntityKind(s string) (EntityKind, error) {
	switch s {
	case "player", "PLAYER":
		return KindPlayer, nil
	case "bystander", "BYSTANDER":
		return KindBystander, nil
	default:
		return KindUnknown, Configf("unknown entity kind %q", s)
	}
}

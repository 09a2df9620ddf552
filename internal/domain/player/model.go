package player

import "fmt"

// Characteristic classifies how a player tends to play on the pitch.
type Characteristic string

const (
	CharacteristicGoalkeeper Characteristic = "GK"
	CharacteristicDefensive  Characteristic = "DEF"
	CharacteristicOffensive  Characteristic = "ATT"
	CharacteristicAllAround  Characteristic = "ALL"
)

var AllCharacteristics = map[Characteristic]struct{}{
	CharacteristicGoalkeeper: {},
	CharacteristicDefensive:  {},
	CharacteristicOffensive:  {},
	CharacteristicAllAround:  {},
}

// HebrewLabel returns the display label used in rendered summaries.
func (c Characteristic) HebrewLabel() string {
	switch c {
	case CharacteristicGoalkeeper:
		return "שוער"
	case CharacteristicDefensive:
		return "הגנה"
	case CharacteristicOffensive:
		return "התקפה"
	case CharacteristicAllAround:
		return "כל המגרש"
	default:
		return string(c)
	}
}

// Player is a registered participant. The name is the unique key and is
// immutable once created; the characteristic may be edited later.
type Player struct {
	Name           string
	Characteristic Characteristic
}

func (p Player) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllCharacteristics[p.Characteristic]; !ok {
		return fmt.Errorf("invalid player characteristic: %s", p.Characteristic)
	}

	return nil
}

package memory

import (
	"github.com/kaduregel/matchday/internal/domain/player"
)

// SeedPlayers is a small registry for local runs: one keeper, a couple of
// players per outfield role and a few all-rounders.
func SeedPlayers() []player.Player {
	return []player.Player{
		{Name: "איתי", Characteristic: player.CharacteristicGoalkeeper},
		{Name: "דני", Characteristic: player.CharacteristicOffensive},
		{Name: "יוסי", Characteristic: player.CharacteristicOffensive},
		{Name: "אבי", Characteristic: player.CharacteristicDefensive},
		{Name: "שלומי", Characteristic: player.CharacteristicDefensive},
		{Name: "עידן", Characteristic: player.CharacteristicAllAround},
		{Name: "משה", Characteristic: player.CharacteristicAllAround},
		{Name: "רועי", Characteristic: player.CharacteristicAllAround},
		{Name: "תומר", Characteristic: player.CharacteristicAllAround},
	}
}

// SeedRankers registers the rankers allowed to submit rating sheets.
func SeedRankers() []string {
	return []string{"100001", "100002", "100003"}
}

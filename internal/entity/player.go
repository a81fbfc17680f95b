package entity

// BotPlayerID is the id the automated opponent is listed under.
const BotPlayerID = "BOT"

type Player struct {
	ID    string `json:"id"`
	Mark  string `json:"mark"`
	IsBot bool   `json:"isBot,omitempty"`
}

func NewBotPlayer() *Player {
	return &Player{ID: BotPlayerID, Mark: PlayerO.String(), IsBot: true}
}

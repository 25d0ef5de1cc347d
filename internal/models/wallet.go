package models

type BankrollState struct {
	Balance float64     `json:"balance"`
	History []BetRecord `json:"history"`
}

// Busted reports whether no further wager can be accepted.
func (s BankrollState) Busted() bool {
	return s.Balance <= 0
}

type StateResponse struct {
	Balance  float64     `json:"balance"`
	History  []BetRecord `json:"history"`
	GameOver bool        `json:"game_over"`
}

func NewStateResponse(s BankrollState) StateResponse {
	history := s.History
	if history == nil {
		history = []BetRecord{}
	}
	return StateResponse{
		Balance:  s.Balance,
		History:  history,
		GameOver: s.Busted(),
	}
}

type StatsResponse struct {
	Bets         int     `json:"bets"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	TotalWagered float64 `json:"total_wagered"`
	NetProfit    float64 `json:"net_profit"`
	BiggestWin   float64 `json:"biggest_win"`
}

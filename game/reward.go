package game

const (
	DefaultWinBonus    = 100.0
	DefaultLossPenalty = -50.0
)

// RewardConfig holds the terminal shaping terms added to the lead margin.
type RewardConfig struct {
	WinBonus    float64 `yaml:"win_bonus" json:"win_bonus"`
	LossPenalty float64 `yaml:"loss_penalty" json:"loss_penalty"`
}

func DefaultRewardConfig() RewardConfig {
	return RewardConfig{
		WinBonus:    DefaultWinBonus,
		LossPenalty: DefaultLossPenalty,
	}
}

// Reward scores the position for p: its disk lead over the best-placed
// opponent, plus the win bonus once the game is over and p shares the top
// score, or the loss penalty once the game is over and it does not.
func (g *Game) Reward(p Player, cfg RewardConfig) float64 {
	scores := g.Score()
	reward := float64(scores[p] - scores.BestOpponent(p))
	if !g.IsTerminal() {
		return reward
	}
	if scores[p] == scores.Max() {
		return reward + cfg.WinBonus
	}
	return reward + cfg.LossPenalty
}

package leveling

import (
	"errors"
	"fmt"
	"time"

	"github.com/fallencrown/gamecore/gamecore/database/models"
)

// ErrDailyRewardUnavailable is returned while the daily cooldown is active.
var ErrDailyRewardUnavailable = errors.New("daily reward already claimed in the last 24 hours")

// Service applies XP progression and daily rewards to a player record.
// It only mutates the structs it is handed; persistence stays with the
// caller's transaction.
type Service struct {
	cfg *Config
}

func NewService(cfg *Config) *Service {
	if cfg == nil {
		cfg = NewDefaultConfig()
	}
	return &Service{cfg: cfg}
}

// GrantXP adds XP to the player and resolves however many level-ups the
// amount spans. Non-positive amounts are a zero-effect no-op.
func (s *Service) GrantXP(player *models.Player, amount int64) Result {
	if amount <= 0 {
		return Result{
			NewLevel:    player.Level,
			XPIntoLevel: player.XP,
			XPToNext:    s.cfg.Curve.RequirementFor(player.Level),
		}
	}

	player.XP += amount
	var rewards []LevelReward
	levelsGained := 0

	for player.XP >= s.cfg.Curve.RequirementFor(player.Level) {
		player.XP -= s.cfg.Curve.RequirementFor(player.Level)
		player.Level++
		levelsGained++

		energyBefore := player.Energy
		player.Energy = min(player.MaxEnergy, player.Energy+s.cfg.LevelEnergyBonus)

		rewards = append(rewards, LevelReward{
			Level:          player.Level,
			Title:          s.titleFor(player.Level),
			EnergyBonus:    player.Energy - energyBefore,
			CosmeticUnlock: s.cfg.LevelCosmetics[player.Level],
		})
	}

	return Result{
		XPGained:     amount,
		LevelsGained: levelsGained,
		NewLevel:     player.Level,
		XPIntoLevel:  player.XP,
		XPToNext:     s.cfg.Curve.RequirementFor(player.Level),
		Rewards:      rewards,
	}
}

// CanClaimDaily reports daily-reward eligibility. A missing last-claim
// timestamp is always eligible. Stored timestamps may round-trip without
// zone information, so the value is normalized to UTC before subtraction.
func (s *Service) CanClaimDaily(player *models.Player, now time.Time) bool {
	if player.LastDailyClaimAt == nil {
		return true
	}
	lastClaim := player.LastDailyClaimAt.UTC()
	return now.UTC().Sub(lastClaim) >= s.cfg.DailyCooldown
}

// ClaimDaily grants the fixed daily reward: XP (with level cascade), a
// capped energy top-up and gold credited to the wallet.
func (s *Service) ClaimDaily(player *models.Player, wallet *models.Wallet, now time.Time) (*DailyResult, error) {
	if !s.CanClaimDaily(player, now) {
		return nil, ErrDailyRewardUnavailable
	}

	xpResult := s.GrantXP(player, s.cfg.DailyXP)

	energyBefore := player.Energy
	player.Energy = min(player.MaxEnergy, player.Energy+s.cfg.DailyEnergy)

	wallet.Gold += s.cfg.DailyGold
	player.Gold = wallet.Gold

	claimedAt := now.UTC()
	player.LastDailyClaimAt = &claimedAt

	return &DailyResult{
		XPGained:     s.cfg.DailyXP,
		LevelsGained: xpResult.LevelsGained,
		NewLevel:     player.Level,
		XPIntoLevel:  player.XP,
		XPToNext:     xpResult.XPToNext,
		EnergyGained: player.Energy - energyBefore,
		NewEnergy:    player.Energy,
		GoldGained:   s.cfg.DailyGold,
		NewGoldTotal: wallet.Gold,
		ClaimedAt:    claimedAt,
		LevelRewards: xpResult.Rewards,
	}, nil
}

func (s *Service) titleFor(level int) string {
	if title, ok := s.cfg.LevelTitles[level]; ok {
		return title
	}
	return fmt.Sprintf(s.cfg.FallbackTitle, level)
}

package converter

import (
	dto "github.com/ahmeterdemserceoglu/sloter/internal/api/dto/spin"
	"github.com/ahmeterdemserceoglu/sloter/internal/engine/rtp"
	"github.com/ahmeterdemserceoglu/sloter/internal/model"
)

func ToSpinRequest(req dto.SpinRequest) model.SpinRequest {
	return model.SpinRequest{
		Bet: req.Bet,
	}
}

func ToSpinResponse(res model.SpinResult) dto.SpinResponse {
	return dto.SpinResponse{
		Board:         res.Outcome.Board,
		LineWins:      toLineWins(res.Outcome.LineWins),
		ScatterCount:  res.Outcome.ScatterCount,
		ScatterPayout: res.Outcome.ScatterPayout,
		TotalPayout:   res.Outcome.TotalPayout,
		IsBonus:       res.Outcome.IsBonus,
		IsJackpot:     res.Outcome.IsJackpot,
		Balance:       res.Balance,
	}
}

func toLineWins(lineWins []model.LineWin) []dto.LineWin {
	result := make([]dto.LineWin, len(lineWins))
	for i, l := range lineWins {
		result[i] = dto.LineWin{
			Line:   l.Line,
			Symbol: l.Symbol,
			Count:  l.Count,
			Payout: l.Payout,
		}
	}
	return result
}

func ToStatsResponse(snap rtp.Snapshot) dto.StatsResponse {
	return dto.StatsResponse{
		TotalWagered:     snap.TotalWagered,
		TotalWon:         snap.TotalWon,
		SpinCount:        snap.SpinCount,
		WinningSpinCount: snap.WinningSpinCount,
		RTP:              snap.RTP,
		WindowRTP:        snap.WindowRTP,
	}
}

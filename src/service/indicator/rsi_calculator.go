package indicator

import "gitlab.com/open-soft/go-rsi-bot/src/model"

type RsiCalculatorInterface interface {
	CalculateRsi(kLines []model.KLine, period int) (float64, bool)
}

type RsiCalculator struct {
}

// CalculateRsi uses simple moving averages of gains and losses over the trailing period.
// It needs period+1 candles, the oldest one only provides the first delta.
func (r *RsiCalculator) CalculateRsi(kLines []model.KLine, period int) (float64, bool) {
	return Rsi(model.Closes(kLines), period)
}

func Rsi(closes []float64, period int) (float64, bool) {
	if period < 1 || len(closes) < period+1 {
		return 0, false
	}

	var gainSum, lossSum float64
	for i := len(closes) - period; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gainSum += delta
		} else if delta < 0 {
			lossSum += -delta
		}
	}

	avgGain := gainSum / float64(period)
	avgLoss := lossSum / float64(period)

	if avgLoss == 0 {
		return 100, true
	}

	relativeStrength := avgGain / avgLoss

	return 100 - (100 / (1 + relativeStrength)), true
}

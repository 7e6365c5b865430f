package model

type KLine struct {
	Symbol   string         `json:"s"`
	Interval string         `json:"i"`
	OpenTime TimestampMilli `json:"t"`
	Open     Price          `json:"o"`
	High     Price          `json:"h"`
	Low      Price          `json:"l"`
	Close    Price          `json:"c"`
	Volume   Price          `json:"v"`
}

func (k KLine) GetClose() float64 {
	return k.Close.Value()
}

// Closes extracts the close prices in the order the candles were given.
func Closes(kLines []KLine) []float64 {
	closes := make([]float64, 0, len(kLines))
	for _, kLine := range kLines {
		closes = append(closes, kLine.GetClose())
	}

	return closes
}

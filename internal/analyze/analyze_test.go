package analyze

import (
	"reflect"
	"testing"

	"github.com/Alias1177/TradeVault/internal/model"
)

func bands(upper, mid, lower float64) *model.Bands {
	return &model.Bands{Upper: upper, Mid: mid, Lower: lower}
}

func TestScoreSnapshot(t *testing.T) {
	tests := []struct {
		name      string
		snap      model.IndicatorSnapshot
		last      float64
		fiveStep  float64
		wantScore int
		want      []string
	}{
		{
			name:      "oversold at lower band",
			snap:      model.IndicatorSnapshot{RSI: model.Present(30), Bollinger: bands(11, 10, 9)},
			last:      9.0,
			wantScore: 45,
			want:      []string{LabelRSIOversold, LabelBandLower},
		},
		{
			name:      "below lower band counts as at band",
			snap:      model.IndicatorSnapshot{RSI: model.Present(30), Bollinger: bands(11, 10, 9)},
			last:      8.5,
			wantScore: 45,
			want:      []string{LabelRSIOversold, LabelBandLower},
		},
		{
			name:      "rsi 35 is not oversold",
			snap:      model.IndicatorSnapshot{RSI: model.Present(35)},
			last:      10,
			wantScore: 0,
			want:      []string{},
		},
		{
			name:      "rsi 65 is healthy not overbought",
			snap:      model.IndicatorSnapshot{RSI: model.Present(65)},
			last:      10,
			wantScore: 10,
			want:      []string{LabelRSIHealthy},
		},
		{
			name:      "overbought at upper band",
			snap:      model.IndicatorSnapshot{RSI: model.Present(70), Bollinger: bands(11, 10, 9)},
			last:      11,
			wantScore: -18,
			want:      []string{LabelRSIOverbought, LabelBandUpper},
		},
		{
			name:      "above mid band",
			snap:      model.IndicatorSnapshot{Bollinger: bands(11, 10, 9)},
			last:      10.5,
			wantScore: 8,
			want:      []string{LabelAboveBandMid},
		},
		{
			name:      "on mid band fires nothing",
			snap:      model.IndicatorSnapshot{Bollinger: bands(11, 10, 9)},
			last:      10,
			wantScore: 0,
			want:      []string{},
		},
		{
			name:      "bullish trend",
			snap:      model.IndicatorSnapshot{SMAShort: model.Present(105), SMALong: model.Present(100)},
			last:      10,
			wantScore: 20,
			want:      []string{LabelTrendBullish},
		},
		{
			name:      "equal averages are bearish",
			snap:      model.IndicatorSnapshot{SMAShort: model.Present(100), SMALong: model.Present(100)},
			last:      10,
			wantScore: -10,
			want:      []string{LabelTrendBearish},
		},
		{
			name:      "missing long average skips trend",
			snap:      model.IndicatorSnapshot{SMAShort: model.Present(100)},
			last:      10,
			wantScore: 0,
			want:      []string{},
		},
		{
			name:      "momentum at threshold fires nothing",
			last:      10,
			fiveStep:  5,
			wantScore: 0,
			want:      []string{},
		},
		{
			name:      "positive momentum",
			last:      10,
			fiveStep:  5.01,
			wantScore: 15,
			want:      []string{LabelPositiveMomentum},
		},
		{
			name:      "selling pressure",
			last:      10,
			fiveStep:  -7,
			wantScore: -10,
			want:      []string{LabelSellingPressure},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreSnapshot(tt.snap, tt.last, tt.fiveStep)
			if got.Score != tt.wantScore {
				t.Errorf("score = %d, want %d", got.Score, tt.wantScore)
			}
			if labels := got.Labels(); !reflect.DeepEqual(labels, tt.want) {
				t.Errorf("labels = %v, want %v", labels, tt.want)
			}
		})
	}
}

func TestScoreShortSeries(t *testing.T) {
	closes := []float64{100, 101, 102}
	got := Score(closes, 102, 101)

	if got.Snapshot.RSI.IsPresent() {
		t.Error("RSI should be absent for a short series")
	}
	if got.Snapshot.Bollinger != nil {
		t.Error("bands should be absent for a short series")
	}
	if got.Snapshot.SMAShort.IsPresent() {
		t.Error("20-step average should be absent")
	}
	if v, ok := got.Snapshot.SMALong.Get(); !ok || v != 101 {
		t.Errorf("long average = %v, want 101 over the whole series", got.Snapshot.SMALong)
	}
	if got.Score != 0 || len(got.Signals) != 0 {
		t.Errorf("expected no signals, got score %d %v", got.Score, got.Labels())
	}
	if got.DayChangePercent != 0.99 {
		t.Errorf("day change = %v, want 0.99", got.DayChangePercent)
	}
	if got.FiveStepChangePercent != 0 {
		t.Errorf("five-step change = %v, want 0", got.FiveStepChangePercent)
	}
}

func TestScoreFiveStepMomentum(t *testing.T) {
	closes := model.PriceSeries{100, 100, 100, 100, 100, 110}
	got := ScoreSeries(closes)

	if got.FiveStepChangePercent != 10 {
		t.Errorf("five-step change = %v, want 10", got.FiveStepChangePercent)
	}
	if got.DayChangePercent != 10 {
		t.Errorf("day change = %v, want 10", got.DayChangePercent)
	}
	if !got.HasSignal(LabelPositiveMomentum) {
		t.Errorf("expected %q in %v", LabelPositiveMomentum, got.Labels())
	}
	if got.Score != 15 {
		t.Errorf("score = %d, want 15", got.Score)
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	closes := make([]float64, 60)
	p := 100.0
	for i := range closes {
		if i%7 < 4 {
			p *= 1.012
		} else {
			p *= 0.985
		}
		closes[i] = p
	}

	first := Score(closes, closes[59], closes[58])
	second := Score(closes, closes[59], closes[58])
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("scores differ:\n%+v\n%+v", first, second)
	}
	if !first.Snapshot.RSI.IsPresent() || first.Snapshot.Bollinger == nil {
		t.Fatal("expected full indicator snapshot for 60 closes")
	}
	if !first.Snapshot.SMALong.IsPresent() {
		t.Fatal("expected 50-step average for 60 closes")
	}
}

func TestScoreLive(t *testing.T) {
	tests := []struct {
		name      string
		quote     model.LiveQuote
		wantScore int
		want      []string
	}{
		{
			name: "oversold positive day",
			quote: model.LiveQuote{
				LastPrice: 9, PreviousPrice: 8.8, DayChangePercent: 2.27,
				RSI: model.Present(30), Bollinger: bands(11, 10, 9), SMA20: model.Present(10),
			},
			wantScore: 55,
			want:      []string{LabelRSIOversold, LabelBandLower, LabelPositiveDay},
		},
		{
			name: "selling today without indicators",
			quote: model.LiveQuote{
				LastPrice: 95, PreviousPrice: 100, DayChangePercent: -5,
			},
			wantScore: -10,
			want:      []string{LabelSellingToday},
		},
		{
			name: "flat day",
			quote: model.LiveQuote{
				LastPrice: 100, PreviousPrice: 99.5, DayChangePercent: 0.5,
				RSI: model.Present(50),
			},
			wantScore: 10,
			want:      []string{LabelRSIHealthy},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreLive(tt.quote)
			if !got.Live {
				t.Error("live flag not set")
			}
			if got.Score != tt.wantScore {
				t.Errorf("score = %d, want %d", got.Score, tt.wantScore)
			}
			if labels := got.Labels(); !reflect.DeepEqual(labels, tt.want) {
				t.Errorf("labels = %v, want %v", labels, tt.want)
			}
			if got.FiveStepChangePercent != tt.quote.DayChangePercent {
				t.Errorf("five-step change = %v, want day change %v", got.FiveStepChangePercent, tt.quote.DayChangePercent)
			}
		})
	}
}

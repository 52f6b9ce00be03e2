package model

// TwelveQuote is the /quote response from Twelve Data.
// Numeric fields arrive as strings.
type TwelveQuote struct {
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	Exchange      string `json:"exchange"`
	Close         string `json:"close"`
	PreviousClose string `json:"previous_close"`
	PercentChange string `json:"percent_change"`
	Status        string `json:"status"`
	Code          int    `json:"code,omitempty"`
	Message       string `json:"message,omitempty"`
}

// TwelveIndicatorResponse is the shared envelope of the /rsi, /bbands and
// /sma endpoints. Values are newest first.
type TwelveIndicatorResponse struct {
	Meta struct {
		Symbol    string `json:"symbol"`
		Interval  string `json:"interval"`
		Indicator struct {
			Name       string `json:"name"`
			TimePeriod int    `json:"time_period"`
		} `json:"indicator"`
	} `json:"meta"`
	Values []struct {
		Datetime   string `json:"datetime"`
		RSI        string `json:"rsi,omitempty"`
		SMA        string `json:"sma,omitempty"`
		UpperBand  string `json:"upper_band,omitempty"`
		MiddleBand string `json:"middle_band,omitempty"`
		LowerBand  string `json:"lower_band,omitempty"`
	} `json:"values"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// LiveQuote is a quote plus server-side indicators for one symbol.
// Indicators the provider failed to return are absent.
type LiveQuote struct {
	Symbol           string
	LastPrice        float64
	PreviousPrice    float64
	DayChangePercent float64
	RSI              Optional
	Bollinger        *Bands
	SMA20            Optional
}

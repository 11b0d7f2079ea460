package models

import "time"

// EODBar represents one day of OHLC price data from the market-data provider.
type EODBar struct {
	Date     time.Time `json:"date"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	AdjClose float64   `json:"adj_close"`
	Volume   int64     `json:"volume"`
}

// EODResponse wraps a historical EOD series, chronological ascending.
type EODResponse struct {
	Ticker string   `json:"ticker"`
	Data   []EODBar `json:"data"`
}

// TickerSearchResult is one raw item from the reference-data ticker search.
// Any field may be empty when the upstream omits it.
type TickerSearchResult struct {
	Name            string `json:"name"`
	Ticker          string `json:"ticker"`
	PrimaryExchange string `json:"primary_exchange"`
}

package models

import "time"

// IndexBar is one cached day of historical index-level data.
// The store keys bars by calendar date.
type IndexBar struct {
	Date   time.Time `json:"date" badgerhold:"key"`
	Open   float64   `json:"open_price"`
	High   float64   `json:"high_price"`
	Low    float64   `json:"low_price"`
	Close  float64   `json:"close_price"`
	Volume int64     `json:"volume"`
}

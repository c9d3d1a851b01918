package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// StockStatus classifies an inventory item's remaining amount against its
// thresholds. It is a pure function of amount, recomputed on every mutation.
type StockStatus int

const (
	StockStatusNormal   StockStatus = 0
	StockStatusLow      StockStatus = 1
	StockStatusCritical StockStatus = 2
)

// StockStatusFor returns the threshold-consistent status for an amount.
// The critical threshold wins on the boundary: amount == critical is Critical.
func StockStatusFor(amount, minThreshold, criticalThreshold float64) StockStatus {
	switch {
	case amount <= criticalThreshold:
		return StockStatusCritical
	case amount <= minThreshold:
		return StockStatusLow
	default:
		return StockStatusNormal
	}
}

func (s StockStatus) String() string {
	return [...]string{"Normal", "Low", "Critical"}[s]
}

func (s StockStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *StockStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = StockStatus(i)
		return nil
	}
	switch str {
	case "Normal":
		*s = StockStatusNormal
	case "Low":
		*s = StockStatusLow
	case "Critical":
		*s = StockStatusCritical
	}
	return nil
}

func (s StockStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *StockStatus) Scan(value interface{}) error {
	if value == nil {
		*s = StockStatusNormal
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = StockStatus(v)
	case int:
		*s = StockStatus(v)
	}
	return nil
}

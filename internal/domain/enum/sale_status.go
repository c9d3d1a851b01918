package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// SaleStatus tracks the write-ahead lifecycle of a sale record. The record
// is inserted Pending before any side effects run, marked Committed after
// finalization, and reconciled to Abandoned if the process died in between.
type SaleStatus int

const (
	SaleStatusPending   SaleStatus = 0
	SaleStatusCommitted SaleStatus = 1
	SaleStatusAbandoned SaleStatus = 2
)

func (s SaleStatus) String() string {
	return [...]string{"Pending", "Committed", "Abandoned"}[s]
}

func (s SaleStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SaleStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = SaleStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = SaleStatusPending
	case "Committed":
		*s = SaleStatusCommitted
	case "Abandoned":
		*s = SaleStatusAbandoned
	}
	return nil
}

func (s SaleStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *SaleStatus) Scan(value interface{}) error {
	if value == nil {
		*s = SaleStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = SaleStatus(v)
	case int:
		*s = SaleStatus(v)
	}
	return nil
}

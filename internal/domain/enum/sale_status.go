package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// SaleStatus represents the status of a sale
type SaleStatus int

const (
	SaleStatusCompleted SaleStatus = 0
	SaleStatusPending   SaleStatus = 1
)

func (s SaleStatus) String() string {
	if s == SaleStatusPending {
		return "pending"
	}
	return "completed"
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
	case "pending", "pendente":
		*s = SaleStatusPending
	default:
		*s = SaleStatusCompleted
	}
	return nil
}

func (s SaleStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *SaleStatus) Scan(value interface{}) error {
	switch v := value.(type) {
	case int64:
		*s = SaleStatus(v)
	case int:
		*s = SaleStatus(v)
	default:
		*s = SaleStatusCompleted
	}
	return nil
}

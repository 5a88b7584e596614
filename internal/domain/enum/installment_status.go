package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// InstallmentStatus is the stored or resolved state of an installment.
// Only pending and paid are ever persisted; overdue is derived at read time.
type InstallmentStatus int

const (
	InstallmentStatusPending InstallmentStatus = 0
	InstallmentStatusPaid    InstallmentStatus = 1
	InstallmentStatusOverdue InstallmentStatus = 2
)

var installmentStatusNames = [...]string{"pending", "paid", "overdue"}

func (s InstallmentStatus) String() string {
	if s < 0 || int(s) >= len(installmentStatusNames) {
		return "unknown"
	}
	return installmentStatusNames[s]
}

// IsValid reports whether s is one of the declared statuses.
func (s InstallmentStatus) IsValid() bool {
	return s >= InstallmentStatusPending && s <= InstallmentStatusOverdue
}

// ParseInstallmentStatus accepts the English names and the Portuguese
// labels used by the back-office screens.
func ParseInstallmentStatus(str string) (InstallmentStatus, error) {
	switch str {
	case "pending", "pendente":
		return InstallmentStatusPending, nil
	case "paid", "pago":
		return InstallmentStatusPaid, nil
	case "overdue", "atrasado":
		return InstallmentStatusOverdue, nil
	}
	return InstallmentStatusPending, fmt.Errorf("unknown installment status %q", str)
}

func (s InstallmentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *InstallmentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = InstallmentStatus(i)
		return nil
	}
	parsed, err := ParseInstallmentStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s InstallmentStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *InstallmentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = InstallmentStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = InstallmentStatus(v)
	case int32:
		*s = InstallmentStatus(v)
	case int:
		*s = InstallmentStatus(v)
	default:
		return fmt.Errorf("cannot scan %T into InstallmentStatus", value)
	}
	return nil
}

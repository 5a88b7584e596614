package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PaymentMethod is how a sale was settled at the counter.
type PaymentMethod string

const (
	PaymentMethodCash              PaymentMethod = "cash"
	PaymentMethodPix               PaymentMethod = "pix"
	PaymentMethodDebit             PaymentMethod = "debit"
	PaymentMethodCreditLump        PaymentMethod = "credit_lump"
	PaymentMethodCreditInstallment PaymentMethod = "credit_installment"
)

var paymentMethodAliases = map[string]PaymentMethod{
	"cash":               PaymentMethodCash,
	"dinheiro":           PaymentMethodCash,
	"pix":                PaymentMethodPix,
	"debit":              PaymentMethodDebit,
	"debito":             PaymentMethodDebit,
	"credit_lump":        PaymentMethodCreditLump,
	"credito_avista":     PaymentMethodCreditLump,
	"credit_installment": PaymentMethodCreditInstallment,
	"credito_parcelado":  PaymentMethodCreditInstallment,
}

var paymentMethodLabels = map[PaymentMethod]string{
	PaymentMethodCash:              "Dinheiro",
	PaymentMethodPix:               "PIX",
	PaymentMethodDebit:             "Débito",
	PaymentMethodCreditLump:        "Crédito à vista",
	PaymentMethodCreditInstallment: "Crédito parcelado",
}

// ParsePaymentMethod normalizes both API names and legacy Portuguese codes.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	if m, ok := paymentMethodAliases[s]; ok {
		return m, nil
	}
	return "", fmt.Errorf("unknown payment method %q", s)
}

func (m PaymentMethod) String() string {
	return string(m)
}

// Label is the customer facing name printed on booklets.
func (m PaymentMethod) Label() string {
	if l, ok := paymentMethodLabels[m]; ok {
		return l
	}
	return string(m)
}

func (m PaymentMethod) IsValid() bool {
	_, ok := paymentMethodLabels[m]
	return ok
}

// IsInstallment reports whether the sale is financed by an installment plan.
func (m PaymentMethod) IsInstallment() bool {
	return m == PaymentMethodCreditInstallment
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParsePaymentMethod(str)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return string(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*m = PaymentMethod(v)
	case []byte:
		*m = PaymentMethod(v)
	case nil:
		*m = ""
	default:
		return fmt.Errorf("cannot scan %T into PaymentMethod", value)
	}
	return nil
}

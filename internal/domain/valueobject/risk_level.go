package valueobject

import "errors"

// RiskLevel представляет уровень риска фактора или аномалии (Value Object)
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Validate проверяет валидность уровня риска
func (r RiskLevel) Validate() error {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return nil
	default:
		return errors.New("invalid risk level")
	}
}

// String возвращает строковое представление
func (r RiskLevel) String() string {
	return string(r)
}

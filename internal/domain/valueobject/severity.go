package valueobject

import "errors"

// Severity представляет серьезность alert (Value Object).
// warning/error используются пороговыми проверками сессии,
// medium/high — аномальными сигналами детектора риска.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
	SeverityMedium  Severity = "medium"
	SeverityHigh    Severity = "high"
)

// Validate проверяет валидность severity
func (s Severity) Validate() error {
	switch s {
	case SeverityWarning, SeverityError, SeverityMedium, SeverityHigh:
		return nil
	default:
		return errors.New("invalid alert severity")
	}
}

// IsCritical проверяет, требует ли severity немедленного внимания
func (s Severity) IsCritical() bool {
	return s == SeverityError || s == SeverityHigh
}

// String возвращает строковое представление
func (s Severity) String() string {
	return string(s)
}

package valueobject

import "errors"

// SessionStatus представляет статус сессии печати (Value Object)
type SessionStatus string

const (
	StatusPrinting  SessionStatus = "printing"
	StatusCompleted SessionStatus = "completed"
)

// Validate проверяет валидность статуса
func (s SessionStatus) Validate() error {
	switch s {
	case StatusPrinting, StatusCompleted:
		return nil
	default:
		return errors.New("invalid session status")
	}
}

// String возвращает строковое представление статуса
func (s SessionStatus) String() string {
	return string(s)
}

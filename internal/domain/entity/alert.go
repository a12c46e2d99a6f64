package entity

import (
	"time"

	"github.com/Ofr3d/FADA/internal/domain/valueobject"
)

// AlertTTL определяет время жизни alert в списке сессии.
// Записи старше часа лениво вычищаются при каждом обращении к списку.
const AlertTTL = time.Hour

// Alert представляет одно предупреждение, привязанное к сессии печати
type Alert struct {
	alertType string
	severity  valueobject.Severity
	message   string
	value     float64
	timestamp time.Time
}

// NewAlert создает новый Alert
func NewAlert(alertType string, severity valueobject.Severity, message string, value float64, timestamp time.Time) Alert {
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	return Alert{
		alertType: alertType,
		severity:  severity,
		message:   message,
		value:     value,
		timestamp: timestamp,
	}
}

// Type возвращает тип alert (например "high_temperature", "low_flow")
func (a Alert) Type() string {
	return a.alertType
}

// Severity возвращает серьезность
func (a Alert) Severity() valueobject.Severity {
	return a.severity
}

// Message возвращает сообщение для оператора
func (a Alert) Message() string {
	return a.message
}

// Value возвращает значение, вызвавшее alert (или confidence детектора)
func (a Alert) Value() float64 {
	return a.value
}

// Timestamp возвращает время создания alert
func (a Alert) Timestamp() time.Time {
	return a.timestamp
}

// IsExpired проверяет, истек ли alert на момент now
func (a Alert) IsExpired(now time.Time) bool {
	return now.Sub(a.timestamp) > AlertTTL
}

// PruneAlerts возвращает только не истекшие на момент now alerts,
// сохраняя исходный порядок
func PruneAlerts(alerts []Alert, now time.Time) []Alert {
	return PruneAlertsWithin(alerts, now, AlertTTL)
}

// PruneAlertsWithin отбрасывает alerts старше ttl на момент now.
// Порядок оставшихся записей сохраняется.
func PruneAlertsWithin(alerts []Alert, now time.Time, ttl time.Duration) []Alert {
	if ttl <= 0 {
		ttl = AlertTTL
	}

	pruned := alerts[:0:0]
	for _, a := range alerts {
		if now.Sub(a.timestamp) <= ttl {
			pruned = append(pruned, a)
		}
	}
	return pruned
}

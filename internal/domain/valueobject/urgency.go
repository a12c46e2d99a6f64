package valueobject

// Urgency представляет срочность рекомендации детектора (Value Object)
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// String возвращает строковое представление
func (u Urgency) String() string {
	return string(u)
}

// RecommendedAction представляет действие, рекомендованное оператору
type RecommendedAction string

const (
	ActionImmediateIntervention RecommendedAction = "immediate_intervention"
	ActionMonitorClosely        RecommendedAction = "monitor_closely"
	ActionContinueMonitoring    RecommendedAction = "continue_monitoring"
)

// String возвращает строковое представление
func (a RecommendedAction) String() string {
	return string(a)
}

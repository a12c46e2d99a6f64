package service

import "sync"

// DefaultAccuracy используется, пока оператор не дал ни одного отзыва
const DefaultAccuracy = 0.8

// FeedbackTracker хранит счетчики подтвержденных исходов и выводит из них
// адаптивный множитель точности детектора (Domain Service).
// Переживает сессии; сбрасывается только явной операцией оператора.
// Потокобезопасен: отзыв может прийти во время оценки.
type FeedbackTracker struct {
	mu             sync.Mutex
	truePositives  int
	falsePositives int
}

// NewFeedbackTracker создает новый tracker с нулевыми счетчиками
func NewFeedbackTracker() *FeedbackTracker {
	return &FeedbackTracker{}
}

// Report фиксирует один подтвержденный исход
func (t *FeedbackTracker) Report(wasActualFailure bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if wasActualFailure {
		t.truePositives++
	} else {
		t.falsePositives++
	}
}

// Accuracy возвращает множитель точности:
// truePositives / (truePositives + falsePositives), либо значение по
// умолчанию при отсутствии отзывов
func (t *FeedbackTracker) Accuracy() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	total := t.truePositives + t.falsePositives
	if total == 0 {
		return DefaultAccuracy
	}
	return float64(t.truePositives) / float64(total)
}

// Counters возвращает текущие счетчики
func (t *FeedbackTracker) Counters() (truePositives, falsePositives int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.truePositives, t.falsePositives
}

// Reset обнуляет счетчики (явное действие оператора)
func (t *FeedbackTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.truePositives = 0
	t.falsePositives = 0
}

package service

import (
	"math"

	"github.com/Ofr3d/FADA/internal/domain/entity"
)

// DefaultLayerHeight — высота слоя по умолчанию, мм
const DefaultLayerHeight = 0.2

// EvaluationPolicy решает, нужна ли оценка риска на данном слое.
// Политика по слоям независима от счетчика обновлений в SessionMonitor;
// оба триггера могут сработать для одного слоя.
type EvaluationPolicy func(layer int) bool

// Параметры политики оценки по умолчанию
const (
	DefaultEarlyLayers   = 5
	DefaultLayerInterval = 20
)

// NewIntervalEvaluationPolicy строит политику "первые earlyLayers слоев,
// затем каждый layerInterval-й". Невалидные параметры заменяются
// значениями по умолчанию.
func NewIntervalEvaluationPolicy(earlyLayers, layerInterval int) EvaluationPolicy {
	if earlyLayers < 0 {
		earlyLayers = DefaultEarlyLayers
	}
	if layerInterval <= 0 {
		layerInterval = DefaultLayerInterval
	}

	return func(layer int) bool {
		return layer <= earlyLayers || layer%layerInterval == 0
	}
}

// DefaultEvaluationPolicy — оценка на первых слоях (<= 5) и далее на
// каждом двадцатом слое
func DefaultEvaluationPolicy(layer int) bool {
	return layer <= DefaultEarlyLayers || layer%DefaultLayerInterval == 0
}

// LayerTracker выводит монотонно растущий индекс слоя из потока
// вертикальных позиций (Domain Service).
// Не потокобезопасен: доступ сериализует владелец.
type LayerTracker struct {
	currentLayer int
	layerHeight  float64
	policy       EvaluationPolicy
}

// NewLayerTracker создает новый tracker
func NewLayerTracker(layerHeight float64, policy EvaluationPolicy) *LayerTracker {
	if layerHeight <= 0 {
		layerHeight = DefaultLayerHeight
	}
	if policy == nil {
		policy = DefaultEvaluationPolicy
	}

	return &LayerTracker{
		layerHeight: layerHeight,
		policy:      policy,
	}
}

// ObservePosition обновляет индекс слоя по вертикальной позиции.
// Индекс продвигается только на строгом увеличении: Z-провалы при
// ретракции не откатывают слой назад. Возвращает true, если на новом
// слое должна быть выполнена оценка риска.
func (t *LayerTracker) ObservePosition(sample entity.PositionSample) bool {
	newLayer := int(math.Floor(sample.Z() / t.layerHeight))
	if newLayer <= t.currentLayer {
		return false
	}

	t.currentLayer = newLayer
	return t.policy(newLayer)
}

// CurrentLayer возвращает текущий индекс слоя
func (t *LayerTracker) CurrentLayer() int {
	return t.currentLayer
}

// LayerHeight возвращает настроенную высоту слоя
func (t *LayerTracker) LayerHeight() float64 {
	return t.layerHeight
}

// Reset сбрасывает tracker в начало новой сессии
func (t *LayerTracker) Reset() {
	t.currentLayer = 0
}

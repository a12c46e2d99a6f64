package visual

import (
	"sync"

	"github.com/Ofr3d/FADA/internal/domain/entity"
)

// Registry хранит последний сигнал внешнего визуального коллаборатора.
// Реализует port.VisualRegistry на прием и service.VisualSource на чтение.
type Registry struct {
	mu     sync.RWMutex
	signal entity.VisualSignal
}

// NewRegistry создает новый registry с нулевым сигналом
func NewRegistry() *Registry {
	return &Registry{}
}

// Push сохраняет последний визуальный сигнал
func (r *Registry) Push(signal entity.VisualSignal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.signal = signal.Normalize()
}

// LatestSignal возвращает последний сигнал.
// До первого push возвращается нулевой сигнал: визуальный вклад в
// confidence равен нулю.
func (r *Registry) LatestSignal() entity.VisualSignal {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.signal
}

// StubSource — детерминированный двойник визуального коллаборатора для
// тестов и стендов без камеры: всегда возвращает заданный сигнал.
type StubSource struct {
	Signal entity.VisualSignal
}

// LatestSignal возвращает заданный сигнал
func (s StubSource) LatestSignal() entity.VisualSignal {
	return s.Signal.Normalize()
}

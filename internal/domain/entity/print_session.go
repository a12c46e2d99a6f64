package entity

import (
	"time"

	"github.com/Ofr3d/FADA/internal/domain/valueobject"
	"github.com/google/uuid"
)

// PrintSession представляет одну сессию мониторинга печати (Aggregate Root).
// Создается при запуске мониторинга, завершается при остановке.
type PrintSession struct {
	id        string
	name      string
	startTime time.Time
	endTime   time.Time
	status    valueobject.SessionStatus
	progress  int
}

// NewPrintSession создает новую сессию печати (Factory Method)
func NewPrintSession(name string, startTime time.Time) *PrintSession {
	if name == "" {
		name = "print-" + startTime.Format("20060102-150405")
	}

	return &PrintSession{
		id:        uuid.New().String(),
		name:      name,
		startTime: startTime,
		status:    valueobject.StatusPrinting,
	}
}

// ReconstructPrintSession восстанавливает сессию из хранилища (для Repository)
func ReconstructPrintSession(
	id, name string,
	startTime, endTime time.Time,
	status valueobject.SessionStatus,
	progress int,
) *PrintSession {
	return &PrintSession{
		id:        id,
		name:      name,
		startTime: startTime,
		endTime:   endTime,
		status:    status,
		progress:  progress,
	}
}

// Clone возвращает независимую копию сессии.
// Живую сессию мутирует монитор под своим mutex; читатели вне блокировки
// получают копию, а не разделяемый указатель.
func (s *PrintSession) Clone() *PrintSession {
	if s == nil {
		return nil
	}

	clone := *s
	return &clone
}

// ID возвращает идентификатор сессии
func (s *PrintSession) ID() string {
	return s.id
}

// Name возвращает имя задания печати
func (s *PrintSession) Name() string {
	return s.name
}

// StartTime возвращает время начала сессии
func (s *PrintSession) StartTime() time.Time {
	return s.startTime
}

// EndTime возвращает время завершения (нулевое, пока сессия активна)
func (s *PrintSession) EndTime() time.Time {
	return s.endTime
}

// Status возвращает статус сессии
func (s *PrintSession) Status() valueobject.SessionStatus {
	return s.status
}

// Progress возвращает прогресс печати [0,100]
func (s *PrintSession) Progress() int {
	return s.progress
}

// Domain Methods (бизнес-логика)

// UpdateProgress пересчитывает прогресс по текущей высоте.
// Значение клампится к [0,100] и никогда не уменьшается.
func (s *PrintSession) UpdateProgress(z, maxExpectedHeight float64) {
	if maxExpectedHeight <= 0 {
		return
	}

	progress := int(z / maxExpectedHeight * 100)
	if progress > 100 {
		progress = 100
	}
	if progress > s.progress {
		s.progress = progress
	}
}

// Complete завершает сессию
func (s *PrintSession) Complete(endTime time.Time) {
	s.endTime = endTime
	s.status = valueobject.StatusCompleted
}

// IsActive проверяет, активна ли сессия
func (s *PrintSession) IsActive() bool {
	return s.status == valueobject.StatusPrinting
}

// Runtime возвращает длительность сессии на момент now
func (s *PrintSession) Runtime(now time.Time) time.Duration {
	if !s.endTime.IsZero() {
		return s.endTime.Sub(s.startTime)
	}
	return now.Sub(s.startTime)
}

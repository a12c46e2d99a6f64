package usecase

import (
	"time"

	"github.com/Ofr3d/FADA/internal/application/port"
	"github.com/Ofr3d/FADA/internal/domain/entity"
	"github.com/Ofr3d/FADA/pkg/logger"
)

// PushVisualSignalCommand — сигнал внешнего визуального коллаборатора
type PushVisualSignalCommand struct {
	Confidence float64
	Patterns   []string
}

// PushVisualSignalUseCase принимает сигналы визуальной инспекции.
// Ядро не анализирует изображения само: сигнал непрозрачен.
type PushVisualSignalUseCase struct {
	registry port.VisualRegistry
	logger   *logger.Logger
}

// NewPushVisualSignalUseCase создает новый use case
func NewPushVisualSignalUseCase(registry port.VisualRegistry, logger *logger.Logger) *PushVisualSignalUseCase {
	return &PushVisualSignalUseCase{
		registry: registry,
		logger:   logger,
	}
}

// Execute сохраняет последний визуальный сигнал
func (uc *PushVisualSignalUseCase) Execute(cmd PushVisualSignalCommand) error {
	signal := entity.VisualSignal{
		Confidence: cmd.Confidence,
		Patterns:   cmd.Patterns,
		ReportedAt: time.Now(),
	}.Normalize()

	uc.registry.Push(signal)
	uc.logger.Debug("Visual signal pushed", "confidence", signal.Confidence, "patterns", len(signal.Patterns))

	return nil
}

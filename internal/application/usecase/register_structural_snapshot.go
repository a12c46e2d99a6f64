package usecase

import (
	"errors"

	"github.com/Ofr3d/FADA/internal/application/port"
	"github.com/Ofr3d/FADA/internal/domain/entity"
	"github.com/Ofr3d/FADA/pkg/logger"
)

// RegisterStructuralSnapshotCommand — структурные метаданные одного слоя
type RegisterStructuralSnapshotCommand struct {
	Layer    int
	Snapshot entity.StructuralSnapshot
}

// RegisterStructuralSnapshotUseCase принимает послойные метаданные риска
// от внешнего geometry/slicing коллаборатора
type RegisterStructuralSnapshotUseCase struct {
	registry port.StructuralRegistry
	logger   *logger.Logger
}

// NewRegisterStructuralSnapshotUseCase создает новый use case
func NewRegisterStructuralSnapshotUseCase(registry port.StructuralRegistry, logger *logger.Logger) *RegisterStructuralSnapshotUseCase {
	return &RegisterStructuralSnapshotUseCase{
		registry: registry,
		logger:   logger,
	}
}

// Execute регистрирует snapshot для слоя
func (uc *RegisterStructuralSnapshotUseCase) Execute(cmd RegisterStructuralSnapshotCommand) error {
	if cmd.Layer < 0 {
		return errors.New("layer index cannot be negative")
	}

	uc.registry.Register(cmd.Layer, cmd.Snapshot.Normalize())
	uc.logger.Debug("Structural snapshot registered", "layer", cmd.Layer)

	return nil
}

package usecase

import (
	"context"

	"github.com/Ofr3d/FADA/internal/application/dto"
	"github.com/Ofr3d/FADA/internal/application/port"
	"github.com/Ofr3d/FADA/internal/domain/service"
	"github.com/Ofr3d/FADA/pkg/logger"
)

const statusCacheKey = "fada:status"

// GetStatusUseCase возвращает снимок состояния мониторинга.
// Снимок кэшируется с коротким TTL: status опрашивается presentation
// слоем значительно чаще, чем меняется.
type GetStatusUseCase struct {
	monitor *service.SessionMonitor
	host    port.HostCollector
	cache   port.Cache
	logger  *logger.Logger
}

// NewGetStatusUseCase создает новый use case
func NewGetStatusUseCase(
	monitor *service.SessionMonitor,
	host port.HostCollector,
	cache port.Cache,
	logger *logger.Logger,
) *GetStatusUseCase {
	return &GetStatusUseCase{
		monitor: monitor,
		host:    host,
		cache:   cache,
		logger:  logger,
	}
}

// Execute возвращает текущий статус
func (uc *GetStatusUseCase) Execute(ctx context.Context) (*dto.StatusDTO, error) {
	if uc.cache != nil {
		var cached dto.StatusDTO
		if err := uc.cache.Get(ctx, statusCacheKey, &cached); err == nil {
			uc.logger.Debug("Status served from cache")
			return &cached, nil
		}
	}

	status := dto.StatusFromMonitor(uc.monitor.Status())

	if uc.host != nil {
		if health, err := uc.host.Collect(ctx); err == nil {
			status.Host = &dto.HostHealthDTO{
				CPUPercent:    health.CPUPercent,
				MemoryPercent: health.MemoryPercent,
			}
		} else {
			uc.logger.Debug("Host health unavailable", "error", err.Error())
		}
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, statusCacheKey, status); err != nil {
			uc.logger.Debug("Failed to cache status", "error", err.Error())
		}
	}

	return status, nil
}

// Invalidate сбрасывает кэшированный статус (при start/stop сессии)
func (uc *GetStatusUseCase) Invalidate(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Delete(ctx, statusCacheKey); err != nil {
		uc.logger.Debug("Failed to invalidate status cache", "error", err.Error())
	}
}

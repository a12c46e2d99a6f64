package port

import (
	"context"

	"github.com/Ofr3d/FADA/internal/domain/entity"
)

// MetricsPublisher defines the interface for publishing detection metrics
// to external observability platforms. This port allows the application
// layer to publish without coupling to specific implementations.
type MetricsPublisher interface {
	// PublishDetection publishes the risk/confidence pair of one detection.
	// Implementations may buffer; CloudWatch limits apply (1000 metrics/request).
	PublishDetection(ctx context.Context, detection *entity.Detection) error

	// PublishAlertCount publishes the number of alerts raised by severity.
	PublishAlertCount(ctx context.Context, severity string, count int) error

	// Flush forces immediate publication of any buffered metrics.
	// Should be called during graceful shutdown to prevent data loss.
	Flush(ctx context.Context) error
}

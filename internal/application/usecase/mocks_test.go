package usecase

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Ofr3d/FADA/internal/application/dto"
	"github.com/Ofr3d/FADA/internal/application/port"
	"github.com/Ofr3d/FADA/internal/domain/entity"
	"github.com/Ofr3d/FADA/internal/domain/service"
)

// Ручные моки портов application слоя. Все моки записывают вызовы для
// проверок и позволяют инжектировать ошибки.

type mockNotifier struct {
	statuses   []*dto.StatusDTO
	alerts     []*dto.AlertDTO
	detections []*dto.DetectionDTO
}

func (m *mockNotifier) BroadcastStatus(status *dto.StatusDTO) {
	m.statuses = append(m.statuses, status)
}

func (m *mockNotifier) BroadcastAlert(alert *dto.AlertDTO) {
	m.alerts = append(m.alerts, alert)
}

func (m *mockNotifier) BroadcastDetection(detection *dto.DetectionDTO) {
	m.detections = append(m.detections, detection)
}

func (m *mockNotifier) ClientCount() int {
	return 1
}

type publishedEvent struct {
	subject string
	event   interface{}
}

type mockEventPublisher struct {
	events []publishedEvent
	err    error
}

func (m *mockEventPublisher) PublishEvent(ctx context.Context, subject string, event interface{}) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, publishedEvent{subject: subject, event: event})
	return nil
}

func (m *mockEventPublisher) Close() error {
	return nil
}

func (m *mockEventPublisher) subjects() []string {
	out := make([]string, len(m.events))
	for i, e := range m.events {
		out[i] = e.subject
	}
	return out
}

type mockLogPublisher struct {
	entries []port.LogEntry
	err     error
}

func (m *mockLogPublisher) Publish(ctx context.Context, entry port.LogEntry) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockLogPublisher) PublishBatch(ctx context.Context, entries []port.LogEntry) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, entries...)
	return nil
}

func (m *mockLogPublisher) Flush(ctx context.Context) error {
	return nil
}

type mockMetricsPublisher struct {
	detections  []*entity.Detection
	alertCounts map[string]int
	err         error
}

func (m *mockMetricsPublisher) PublishDetection(ctx context.Context, detection *entity.Detection) error {
	if m.err != nil {
		return m.err
	}
	m.detections = append(m.detections, detection)
	return nil
}

func (m *mockMetricsPublisher) PublishAlertCount(ctx context.Context, severity string, count int) error {
	if m.err != nil {
		return m.err
	}
	if m.alertCounts == nil {
		m.alertCounts = make(map[string]int)
	}
	m.alertCounts[severity] += count
	return nil
}

func (m *mockMetricsPublisher) Flush(ctx context.Context) error {
	return nil
}

// mockCache хранит значения как JSON, повторяя поведение Redis адаптера
type mockCache struct {
	data     map[string][]byte
	getErr   error
	setErr   error
	getCalls int
	setCalls int
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (m *mockCache) Get(ctx context.Context, key string, dest interface{}) error {
	m.getCalls++
	if m.getErr != nil {
		return m.getErr
	}
	raw, ok := m.data[key]
	if !ok {
		return errors.New("cache miss")
	}
	return json.Unmarshal(raw, dest)
}

func (m *mockCache) Set(ctx context.Context, key string, value interface{}) error {
	m.setCalls++
	if m.setErr != nil {
		return m.setErr
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *mockCache) DeletePattern(ctx context.Context, pattern string) error {
	return nil
}

func (m *mockCache) Close() error {
	return nil
}

type mockHostCollector struct {
	health port.HostHealth
	err    error
}

func (m *mockHostCollector) Collect(ctx context.Context) (port.HostHealth, error) {
	if m.err != nil {
		return port.HostHealth{}, m.err
	}
	return m.health, nil
}

type mockDetectionArchive struct {
	sessions     []*entity.PrintSession
	detections   map[string][]*entity.Detection
	recent       []*entity.Detection
	saveSessErr  error
	saveDetErr   error
	recentDetErr error
}

func newMockDetectionArchive() *mockDetectionArchive {
	return &mockDetectionArchive{detections: make(map[string][]*entity.Detection)}
}

func (m *mockDetectionArchive) SaveSession(ctx context.Context, session *entity.PrintSession) error {
	if m.saveSessErr != nil {
		return m.saveSessErr
	}
	m.sessions = append(m.sessions, session)
	return nil
}

func (m *mockDetectionArchive) SaveDetections(ctx context.Context, sessionID string, detections []*entity.Detection) error {
	if m.saveDetErr != nil {
		return m.saveDetErr
	}
	m.detections[sessionID] = append(m.detections[sessionID], detections...)
	return nil
}

func (m *mockDetectionArchive) RecentDetections(ctx context.Context, limit int) ([]*entity.Detection, error) {
	if m.recentDetErr != nil {
		return nil, m.recentDetErr
	}
	return m.recent, nil
}

type mockReportStorage struct {
	keys []string
	err  error
}

func (m *mockReportStorage) PutObject(ctx context.Context, key, contentType string, body []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.keys = append(m.keys, key)
	return "https://storage.local/" + key, nil
}

type stubStructuralSource struct {
	snapshot entity.StructuralSnapshot
}

func (s stubStructuralSource) SnapshotForLayer(layer int) entity.StructuralSnapshot {
	return s.snapshot
}

type stubVisualSource struct {
	signal entity.VisualSignal
}

func (s stubVisualSource) LatestSignal() entity.VisualSignal {
	return s.signal
}

func newTestMonitor() *service.SessionMonitor {
	return service.NewSessionMonitor(
		service.NewRiskDetector(nil),
		stubStructuralSource{},
		stubVisualSource{},
		service.SessionMonitorConfig{},
	)
}

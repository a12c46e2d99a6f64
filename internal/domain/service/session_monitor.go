package service

import (
	"errors"
	"sync"
	"time"

	"github.com/Ofr3d/FADA/internal/domain/entity"
	"github.com/Ofr3d/FADA/internal/domain/valueobject"
)

// Типизированные ошибки невалидного состояния
var (
	ErrSessionActive      = errors.New("a print session is already being monitored")
	ErrNotMonitoring      = errors.New("no active print session")
	ErrNoDetections       = errors.New("no detections recorded yet")
	ErrNoCompletedSession = errors.New("no completed print session")
)

// UpdateCadence — каждое десятое принятое обновление телеметрии принтера
// запускает оценку риска независимо от послойной политики
const UpdateCadence = 10

// Пороги real-time проверок мониторинга. Частично дублируют пороги
// детектора: это простые мгновенные проверки последнего значения.
const (
	thresholdTempHigh = 250.0
	thresholdTempLow  = 180.0
	thresholdVibHigh  = 80.0
	thresholdFlowLow  = 100.0
)

// StructuralSource поставляет структурные метаданные риска по слоям.
// Реализуется внешним slicing/geometry коллаборатором.
type StructuralSource interface {
	SnapshotForLayer(layer int) entity.StructuralSnapshot
}

// VisualSource поставляет последний сигнал визуальной инспекции.
// Ядро не делает предположений о реализации.
type VisualSource interface {
	LatestSignal() entity.VisualSignal
}

// SensorUpdateResult — результат приема одного наблюдения сенсора
type SensorUpdateResult struct {
	Recorded bool
	Alerts   []entity.Alert
}

// TelemetryUpdateResult — результат приема одного обновления телеметрии принтера
type TelemetryUpdateResult struct {
	Recorded  bool
	Layer     int
	Detection *entity.Detection
	Alerts    []entity.Alert
}

// MonitorStatus — моментальный снимок состояния мониторинга
type MonitorStatus struct {
	Monitoring      bool
	Session         *entity.PrintSession
	Runtime         time.Duration
	RecentAlerts    []entity.Alert
	DataPointCounts map[valueobject.Channel]int
}

// SessionMonitorConfig настраивает одну инсталляцию монитора.
// Нулевые UpdateCadence и AlertTTL заменяются значениями по умолчанию.
type SessionMonitorConfig struct {
	LayerHeight       float64
	MaxExpectedHeight float64
	UpdateCadence     int
	AlertTTL          time.Duration
	EvaluationPolicy  EvaluationPolicy
	Clock             func() time.Time
}

// SessionMonitor оркестрирует конвейер обнаружения отказов: владеет
// состоянием мониторинга, активной сессией, списком alerts и запускает
// оценки риска по обеим каденциям (Domain Service).
//
// Один mutex сериализует все сессионное состояние: оба асинхронных
// продюсера и Stop конкурируют на нем (требование единственного писателя).
type SessionMonitor struct {
	mu sync.Mutex

	buffer     *TelemetryBuffer
	tracker    *LayerTracker
	analyzer   *QualityAnalyzer
	detector   *RiskDetector
	structural StructuralSource
	visual     VisualSource

	clock             func() time.Time
	maxExpectedHeight float64
	updateCadence     int
	alertTTL          time.Duration

	session     *entity.PrintSession
	alerts      []entity.Alert
	updateCount int
	env         Environment
	finalReport *entity.QualityReport
}

// NewSessionMonitor создает новый монитор в состоянии idle
func NewSessionMonitor(
	detector *RiskDetector,
	structural StructuralSource,
	visual VisualSource,
	cfg SessionMonitorConfig,
) *SessionMonitor {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.MaxExpectedHeight <= 0 {
		cfg.MaxExpectedHeight = 100
	}
	if cfg.UpdateCadence <= 0 {
		cfg.UpdateCadence = UpdateCadence
	}
	if cfg.AlertTTL <= 0 {
		cfg.AlertTTL = entity.AlertTTL
	}

	return &SessionMonitor{
		buffer:            NewTelemetryBuffer(),
		tracker:           NewLayerTracker(cfg.LayerHeight, cfg.EvaluationPolicy),
		analyzer:          NewQualityAnalyzer(),
		detector:          detector,
		structural:        structural,
		visual:            visual,
		clock:             cfg.Clock,
		maxExpectedHeight: cfg.MaxExpectedHeight,
		updateCadence:     cfg.UpdateCadence,
		alertTTL:          cfg.AlertTTL,
	}
}

// Start начинает мониторинг новой сессии печати.
// Возвращает ErrSessionActive, если сессия уже идет: прежнюю сессию
// нужно явно завершить через Stop. Наружу отдается копия сессии:
// живой объект мутируется только под mutex монитора.
func (m *SessionMonitor) Start(name string) (*entity.PrintSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session != nil && m.session.IsActive() {
		return nil, ErrSessionActive
	}

	m.buffer.Reset()
	m.tracker.Reset()
	m.alerts = nil
	m.updateCount = 0
	m.env = Environment{}
	m.finalReport = nil
	m.session = entity.NewPrintSession(name, m.clock())

	return m.session.Clone(), nil
}

// Stop завершает активную сессию и возвращает финальный QualityReport.
// Сессионное состояние (истории каналов, alerts) уничтожается; история
// detections детектора переживает сессию.
func (m *SessionMonitor) Stop() (entity.QualityReport, *entity.PrintSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil || !m.session.IsActive() {
		return entity.QualityReport{}, nil, ErrNotMonitoring
	}

	now := m.clock()
	report := m.analyzer.BuildReport(m.buffer, m.env, now)
	m.session.Complete(now)
	m.finalReport = &report

	session := m.session.Clone()
	m.buffer.Reset()
	m.alerts = nil

	return report, session, nil
}

// UpdateSensorData принимает одно наблюдение шлюза сенсоров.
// В состоянии idle — no-op (явный guard, не ошибка).
func (m *SessionMonitor) UpdateSensorData(sample entity.SensorSample) SensorUpdateResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil || !m.session.IsActive() {
		return SensorUpdateResult{}
	}

	m.buffer.Record(sample)
	m.noteEnvironment(sample)

	alerts := m.thresholdChecks(sample)
	m.appendAlerts(alerts)

	return SensorUpdateResult{Recorded: true, Alerts: alerts}
}

// UpdatePrinterData принимает одно обновление телеметрии принтера:
// позицию головки и температуры hotend/стола.
// В состоянии idle — no-op. Запускает не более одной оценки риска,
// если сработала послойная политика или каденция по числу обновлений.
func (m *SessionMonitor) UpdatePrinterData(position entity.PositionSample, hotendTemp, bedTemp float64) TelemetryUpdateResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil || !m.session.IsActive() {
		return TelemetryUpdateResult{}
	}

	m.buffer.RecordPosition(position)

	hotend, err := entity.NewSensorSample(valueobject.Temperature, hotendTemp, position.Timestamp())
	if err == nil {
		m.buffer.Record(hotend)
	}
	m.env.BedTemperature = bedTemp
	m.env.HasBed = true

	m.session.UpdateProgress(position.Z(), m.maxExpectedHeight)

	layerDue := m.tracker.ObservePosition(position)
	m.updateCount++
	countDue := m.updateCount%m.updateCadence == 0

	result := TelemetryUpdateResult{
		Recorded: true,
		Layer:    m.tracker.CurrentLayer(),
	}

	alerts := m.thresholdChecks(hotend)
	m.appendAlerts(alerts)
	result.Alerts = alerts

	// Обе каденции могут сработать на одном обновлении; оценка при этом
	// выполняется ровно один раз.
	if layerDue || countDue {
		detection := m.evaluate()
		result.Detection = detection
		result.Alerts = append(result.Alerts, detection.Alerts()...)
	}

	return result
}

// evaluate запускает детектор для текущего слоя и вливает его alerts
// в сессионный список. Вызывается под mutex.
func (m *SessionMonitor) evaluate() *entity.Detection {
	layer := m.tracker.CurrentLayer()

	var snapshot entity.StructuralSnapshot
	if m.structural != nil {
		snapshot = m.structural.SnapshotForLayer(layer)
	}

	var visual entity.VisualSignal
	if m.visual != nil {
		visual = m.visual.LatestSignal()
	}

	detection := m.detector.Evaluate(snapshot, m.buffer, visual, layer, m.clock())
	m.appendAlerts(detection.Alerts())

	return detection
}

// thresholdChecks выполняет мгновенные пороговые проверки одного
// наблюдения. Вызывается под mutex.
func (m *SessionMonitor) thresholdChecks(sample entity.SensorSample) []entity.Alert {
	var alerts []entity.Alert
	now := m.clock()

	switch sample.Channel() {
	case valueobject.Temperature:
		if sample.Value() > thresholdTempHigh {
			alerts = append(alerts, entity.NewAlert(
				"high_temperature", valueobject.SeverityWarning,
				"temperature above safe printing range", sample.Value(), now))
		}
		if sample.Value() < thresholdTempLow {
			alerts = append(alerts, entity.NewAlert(
				"low_temperature", valueobject.SeverityError,
				"temperature below printing range while printing", sample.Value(), now))
		}
	case valueobject.Vibration:
		if sample.Value() > thresholdVibHigh {
			alerts = append(alerts, entity.NewAlert(
				"high_vibration", valueobject.SeverityWarning,
				"vibration above safe threshold", sample.Value(), now))
		}
	case valueobject.MaterialFlow:
		if sample.Value() < thresholdFlowLow {
			alerts = append(alerts, entity.NewAlert(
				"low_flow", valueobject.SeverityError,
				"material flow below minimum threshold", sample.Value(), now))
		}
	}

	return alerts
}

// noteEnvironment извлекает показания окружения из наблюдений шлюза.
// Показания температуры ниже 100°C считаются температурой камеры, а не
// сопла. Вызывается под mutex.
func (m *SessionMonitor) noteEnvironment(sample entity.SensorSample) {
	if sample.Channel() == valueobject.Temperature && sample.Value() < 100 {
		m.env.AmbientTemperature = sample.Value()
		m.env.HasAmbient = true
	}
}

// appendAlerts добавляет alerts в сессионный список с ленивой вычисткой
// истекших записей. Вызывается под mutex.
func (m *SessionMonitor) appendAlerts(alerts []entity.Alert) {
	m.alerts = entity.PruneAlertsWithin(append(m.alerts, alerts...), m.clock(), m.alertTTL)
}

// Status возвращает моментальный снимок состояния мониторинга.
// Вычистка alerts детерминирована для фиксированных часов: повторный
// вызов без записей возвращает идентичный список.
func (m *SessionMonitor) Status() MonitorStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock()
	m.alerts = entity.PruneAlertsWithin(m.alerts, now, m.alertTTL)

	status := MonitorStatus{
		Monitoring:      m.session != nil && m.session.IsActive(),
		Session:         m.session.Clone(),
		RecentAlerts:    append([]entity.Alert(nil), m.alerts...),
		DataPointCounts: m.buffer.DataPointCounts(),
	}

	if m.session != nil {
		status.Runtime = m.session.Runtime(now)
	}

	return status
}

// LiveReport возвращает QualityReport по текущим данным активной сессии
func (m *SessionMonitor) LiveReport() (entity.QualityReport, *entity.PrintSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil || !m.session.IsActive() {
		return entity.QualityReport{}, nil, ErrNotMonitoring
	}

	return m.analyzer.BuildReport(m.buffer, m.env, m.clock()), m.session.Clone(), nil
}

// FinalReport возвращает отчет последней завершенной сессии
func (m *SessionMonitor) FinalReport() (entity.QualityReport, *entity.PrintSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.finalReport == nil || m.session == nil {
		return entity.QualityReport{}, nil, ErrNoCompletedSession
	}

	return *m.finalReport, m.session.Clone(), nil
}

// CurrentLayer возвращает текущий слой активной сессии
func (m *SessionMonitor) CurrentLayer() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tracker.CurrentLayer()
}

// Detector возвращает детектор риска (для статистики detections)
func (m *SessionMonitor) Detector() *RiskDetector {
	return m.detector
}

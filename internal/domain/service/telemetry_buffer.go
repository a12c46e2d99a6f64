package service

import (
	"math"

	"github.com/Ofr3d/FADA/internal/domain/entity"
	"github.com/Ofr3d/FADA/internal/domain/valueobject"
)

// HistoryCapacity определяет максимальную длину истории одного канала.
// При переполнении самые старые значения вытесняются (строгий FIFO).
const HistoryCapacity = 100

// TelemetryBuffer хранит ограниченную историю значений по каждому каналу
// телеметрии плюс журнал позиций головки (Domain Service).
// Не потокобезопасен: весь доступ сериализует владелец (SessionMonitor).
type TelemetryBuffer struct {
	channels  map[valueobject.Channel][]entity.SensorSample
	positions []entity.PositionSample
}

// NewTelemetryBuffer создает новый пустой буфер
func NewTelemetryBuffer() *TelemetryBuffer {
	return &TelemetryBuffer{
		channels: make(map[valueobject.Channel][]entity.SensorSample, len(valueobject.AllChannels())),
	}
}

// Record добавляет наблюдение в историю канала.
// Всегда успешен для валидного канала: при переполнении вытесняется
// самое старое значение.
func (b *TelemetryBuffer) Record(sample entity.SensorSample) {
	history := append(b.channels[sample.Channel()], sample)
	if len(history) > HistoryCapacity {
		history = history[len(history)-HistoryCapacity:]
	}
	b.channels[sample.Channel()] = history
}

// RecordPosition добавляет позицию головки в журнал
func (b *TelemetryBuffer) RecordPosition(sample entity.PositionSample) {
	b.positions = append(b.positions, sample)
	if len(b.positions) > HistoryCapacity {
		b.positions = b.positions[len(b.positions)-HistoryCapacity:]
	}
}

// Latest возвращает последнее значение канала или 0 для пустого канала
func (b *TelemetryBuffer) Latest(channel valueobject.Channel) float64 {
	history := b.channels[channel]
	if len(history) == 0 {
		return 0
	}
	return history[len(history)-1].Value()
}

// Average возвращает среднее по каналу или 0 для пустого канала
func (b *TelemetryBuffer) Average(channel valueobject.Channel) float64 {
	return mean(b.Values(channel))
}

// Variation возвращает стандартное отклонение (population) по каналу
// или 0 для пустого канала
func (b *TelemetryBuffer) Variation(channel valueobject.Channel) float64 {
	return stddev(b.Values(channel))
}

// Values возвращает все значения канала в порядке записи
func (b *TelemetryBuffer) Values(channel valueobject.Channel) []float64 {
	history := b.channels[channel]
	values := make([]float64, len(history))
	for i, s := range history {
		values[i] = s.Value()
	}
	return values
}

// Window возвращает последние n значений канала в порядке записи.
// Для канала короче n возвращается вся история.
func (b *TelemetryBuffer) Window(channel valueobject.Channel, n int) []float64 {
	values := b.Values(channel)
	if len(values) > n {
		values = values[len(values)-n:]
	}
	return values
}

// Len возвращает длину истории канала
func (b *TelemetryBuffer) Len(channel valueobject.Channel) int {
	return len(b.channels[channel])
}

// Positions возвращает журнал позиций в порядке записи
func (b *TelemetryBuffer) Positions() []entity.PositionSample {
	out := make([]entity.PositionSample, len(b.positions))
	copy(out, b.positions)
	return out
}

// DataPointCounts возвращает количество записей по каждому каналу
func (b *TelemetryBuffer) DataPointCounts() map[valueobject.Channel]int {
	counts := make(map[valueobject.Channel]int, len(b.channels)+1)
	for _, ch := range valueobject.AllChannels() {
		counts[ch] = len(b.channels[ch])
	}
	return counts
}

// Reset очищает все истории (при завершении сессии)
func (b *TelemetryBuffer) Reset() {
	b.channels = make(map[valueobject.Channel][]entity.SensorSample, len(valueobject.AllChannels()))
	b.positions = nil
}

// mean возвращает среднее значение или 0 для пустого окна
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stddev возвращает population standard deviation или 0 для пустого окна
func stddev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	avg := mean(values)
	var sumSq float64
	for _, v := range values {
		d := v - avg
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)))
}

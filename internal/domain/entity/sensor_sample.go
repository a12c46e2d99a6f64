package entity

import (
	"time"

	"github.com/Ofr3d/FADA/internal/domain/valueobject"
)

// SensorSample представляет одно наблюдение на одном канале телеметрии.
// Иммутабельный объект: после записи не изменяется.
type SensorSample struct {
	channel   valueobject.Channel
	value     float64
	timestamp time.Time
}

// NewSensorSample создает новый SensorSample с валидацией канала
func NewSensorSample(channel valueobject.Channel, value float64, timestamp time.Time) (SensorSample, error) {
	if err := channel.Validate(); err != nil {
		return SensorSample{}, err
	}

	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	return SensorSample{
		channel:   channel,
		value:     value,
		timestamp: timestamp,
	}, nil
}

// Channel возвращает канал наблюдения
func (s SensorSample) Channel() valueobject.Channel {
	return s.channel
}

// Value возвращает значение наблюдения
func (s SensorSample) Value() float64 {
	return s.value
}

// Timestamp возвращает время наблюдения
func (s SensorSample) Timestamp() time.Time {
	return s.timestamp
}

// PositionSample представляет позицию печатающей головки.
// Иммутабельный объект.
type PositionSample struct {
	x, y, z   float64
	timestamp time.Time
}

// NewPositionSample создает новый PositionSample
func NewPositionSample(x, y, z float64, timestamp time.Time) PositionSample {
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	return PositionSample{x: x, y: y, z: z, timestamp: timestamp}
}

// X возвращает координату X
func (p PositionSample) X() float64 {
	return p.x
}

// Y возвращает координату Y
func (p PositionSample) Y() float64 {
	return p.y
}

// Z возвращает высоту (вертикальную координату)
func (p PositionSample) Z() float64 {
	return p.z
}

// Timestamp возвращает время наблюдения
func (p PositionSample) Timestamp() time.Time {
	return p.timestamp
}

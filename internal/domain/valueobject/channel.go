package valueobject

import "errors"

// Channel представляет канал телеметрии (Value Object)
type Channel string

const (
	Temperature  Channel = "temperature"
	Vibration    Channel = "vibration"
	MaterialFlow Channel = "material_flow"
	Humidity     Channel = "humidity"
)

// ErrUnknownChannel возвращается при попытке записи в неизвестный канал
var ErrUnknownChannel = errors.New("unknown telemetry channel")

// Validate проверяет валидность канала
func (c Channel) Validate() error {
	switch c {
	case Temperature, Vibration, MaterialFlow, Humidity:
		return nil
	default:
		return ErrUnknownChannel
	}
}

// String возвращает строковое представление канала
func (c Channel) String() string {
	return string(c)
}

// AllChannels возвращает список всех допустимых каналов
func AllChannels() []Channel {
	return []Channel{Temperature, Vibration, MaterialFlow, Humidity}
}

package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock abstracts time for services so tests can control it.
type Clock interface {
	Now() time.Time
}

// Module provides the system clock through fx.
var Module = fx.Module("clock", fx.Provide(NewSystemClock))

type systemClock struct{}

func NewSystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

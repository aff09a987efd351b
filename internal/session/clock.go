package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Clock abstracts time for deterministic tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall-clock implementation used outside tests.
var SystemClock Clock = systemClock{}

// IDSource produces new session identifiers.
type IDSource interface {
	NewID() ID
}

// timestampIDSource generates "debate-<unix-ms>-<suffix>" ids. The uuid
// suffix keeps ids unique when the clock is frozen or two sessions start in
// the same millisecond.
type timestampIDSource struct {
	clock Clock
}

// NewIDSource returns the default id source backed by the given clock.
func NewIDSource(clock Clock) IDSource {
	if clock == nil {
		clock = SystemClock
	}
	return &timestampIDSource{clock: clock}
}

func (s *timestampIDSource) NewID() ID {
	return ID(fmt.Sprintf("debate-%d-%s", s.clock.Now().UnixMilli(), uuid.New().String()[:8]))
}

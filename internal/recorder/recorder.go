package recorder

import "PoolSentinel/internal/model"

// Recorder keeps an append-only audit trail of readings and alerts.
// Nothing is read back into the monitor on restart.
type Recorder interface {
	RecordReading(r *model.Reading) error
	RecordAlert(a *model.Alert) error
	Close() error
}

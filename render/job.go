package render

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Job wraps one renderer invocation (a single tile, chunk, or region
// render) with a correlation ID attached to every log line it emits,
// mirroring the teacher's uuid.UUID-keyed APIs (e.g.
// LoadPlayerSpawnPosition(id uuid.UUID)) and its logrus.FieldLogger-based
// Config.Log convention (seen throughout mcdb/db.go's db.conf.Log.Errorf
// calls), generalised here from per-entity identity to per-render-job
// identity.
type Job struct {
	ID  uuid.UUID
	log logrus.FieldLogger
}

// NewJob mints a fresh correlation ID and binds it to every field log
// emitted through the returned Job.
func NewJob(base logrus.FieldLogger) *Job {
	if base == nil {
		base = logrus.StandardLogger()
	}
	id := uuid.New()
	return &Job{ID: id, log: base.WithField("job_id", id.String())}
}

// Log returns the job's correlation-tagged logger.
func (j *Job) Log() logrus.FieldLogger { return j.log }

// WithFields returns a derived logger carrying both the job's
// correlation ID and the given extra fields, for call sites that want
// to attach e.g. chunk coordinates to one log line.
func (j *Job) WithFields(fields logrus.Fields) logrus.FieldLogger {
	return j.log.WithFields(fields)
}

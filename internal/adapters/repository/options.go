package repository

// Option applies a configuration option to the MemLog.
type Option func(*MemLog)

// WithTeacherCapacityHint presizes per-teacher bookkeeping for the
// expected roster size.
func WithTeacherCapacityHint(teachers int) Option {
	return func(l *MemLog) {
		if teachers > 0 {
			l.teacherHint = teachers
		}
	}
}

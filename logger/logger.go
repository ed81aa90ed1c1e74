package logger

// Logger is the structured logging surface the SDK emits through.
type Logger interface {
	Debug(msg string, fields map[string]any)
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

type NoopLogger struct{}

func (NoopLogger) Debug(string, map[string]any) {}
func (NoopLogger) Info(string, map[string]any)  {}
func (NoopLogger) Warn(string, map[string]any)  {}
func (NoopLogger) Error(string, map[string]any) {}

// WithFields returns a logger that attaches the given fields to every entry.
// Entry-level fields win on key collision. Used to scope a logger to one
// network or contract without threading the fields through every call site.
func WithFields(base Logger, fields map[string]any) Logger {
	if len(fields) == 0 {
		return base
	}
	return &fieldLogger{base: base, fields: fields}
}

type fieldLogger struct {
	base   Logger
	fields map[string]any
}

func (l *fieldLogger) Debug(msg string, fields map[string]any) { l.base.Debug(msg, l.merge(fields)) }
func (l *fieldLogger) Info(msg string, fields map[string]any)  { l.base.Info(msg, l.merge(fields)) }
func (l *fieldLogger) Warn(msg string, fields map[string]any)  { l.base.Warn(msg, l.merge(fields)) }
func (l *fieldLogger) Error(msg string, fields map[string]any) { l.base.Error(msg, l.merge(fields)) }

func (l *fieldLogger) merge(fields map[string]any) map[string]any {
	out := make(map[string]any, len(l.fields)+len(fields))
	for k, v := range l.fields {
		out[k] = v
	}
	for k, v := range fields {
		out[k] = v
	}
	return out
}

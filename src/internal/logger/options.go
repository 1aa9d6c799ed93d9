package logger

// emission collects the optional fields of a single log call.
type emission struct {
	context       map[string]any
	humanNote     string
	aiTodo        string
	correlationID string
}

// EmitOption attaches optional fields to a single emission.
type EmitOption func(*emission)

// WithContext merges ctx into the entry's context. Repeated options merge
// key by key; later values win.
func WithContext(ctx map[string]any) EmitOption {
	return func(em *emission) {
		if em.context == nil {
			em.context = make(map[string]any, len(ctx))
		}
		for k, v := range ctx {
			em.context[k] = v
		}
	}
}

// WithHumanNote attaches a free-text note intended for a human or AI
// reader of the log.
func WithHumanNote(note string) EmitOption {
	return func(em *emission) { em.humanNote = note }
}

// WithAITodo attaches an instruction for automated analysis of the entry.
func WithAITodo(todo string) EmitOption {
	return func(em *emission) { em.aiTodo = todo }
}

// WithCorrelationID overrides the logger's correlation id for one entry.
// Empty or blank values are ignored.
func WithCorrelationID(id string) EmitOption {
	return func(em *emission) { em.correlationID = id }
}

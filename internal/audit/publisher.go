package audit

// Publisher forwards security events to an external sink.
type Publisher interface {
	Publish(ev Event) error
}

// NoopPublisher keeps events local to the log file.
type NoopPublisher struct{}

func (NoopPublisher) Publish(Event) error { return nil }

var _ Publisher = NoopPublisher{}

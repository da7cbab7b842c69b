package observer

import "tweet-collector/models/entities"

type EventType int

const (
	RunCompletedEvent EventType = 1
)

type Event struct {
	E      EventType
	Report entities.RunReport
}

func NewRunEvent(report entities.RunReport) Event {
	return Event{Report: report, E: RunCompletedEvent}
}

type Observer interface {
	OnNotify(Event)
}

type Notifier interface {
	Register(Observer)
	Notify(Event)
}

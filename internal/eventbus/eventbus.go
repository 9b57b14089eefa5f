package eventbus

import (
	"encoding/json"
	"sync"
)

type (
	// Bus fans events out to in-process subscribers. Publishing never blocks
	// the caller's success path: slow subscribers drop events once their
	// buffer is full.
	Bus interface {
		Subscribe(topic Topic) chan Event
		Publish(topic Topic, message string)
		PublishWithData(topic Topic, message string, data []byte)
	}

	Event struct {
		Topic   Topic           `json:"topic"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data,omitempty"`
	}

	Topic string
)

const (
	TopicBackupCompleted    Topic = "backup.completed"
	TopicBackupFailed       Topic = "backup.failed"
	TopicRestoreCompleted   Topic = "restore.completed"
	TopicSubmissionReceived Topic = "tradein.submission.received"
	TopicSubmissionReviewed Topic = "tradein.submission.reviewed"
)

type eventPublisher struct {
	subscribers map[Topic][]chan Event
	lock        sync.Mutex
}

func New() Bus {
	return &eventPublisher{
		subscribers: make(map[Topic][]chan Event),
	}
}

func (e *eventPublisher) Subscribe(topic Topic) chan Event {
	e.lock.Lock()
	defer e.lock.Unlock()

	ch := make(chan Event, 100)
	e.subscribers[topic] = append(e.subscribers[topic], ch)
	return ch
}

func (e *eventPublisher) Publish(topic Topic, message string) {
	e.PublishWithData(topic, message, nil)
}

func (e *eventPublisher) PublishWithData(topic Topic, message string, data []byte) {
	e.lock.Lock()
	clients := e.subscribers[topic]
	e.lock.Unlock()

	ev := Event{
		Topic:   topic,
		Message: message,
		Data:    data,
	}

	for _, ch := range clients {
		select {
		case ch <- ev:
		default:
		}
	}
}

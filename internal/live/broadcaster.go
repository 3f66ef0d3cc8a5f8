package live

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/mcoot/classquiz/internal/model"
)

// Broadcaster publishes domain events to the matching classroom hub and
// the whole-school hub
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "live-broadcaster")),
	}
}

// message is the JSON data of a live event
type message struct {
	Type      model.EventType `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Classroom string          `json:"classroom"`
	PlayerID  string          `json:"player_id"`
	FirstName string          `json:"first_name,omitempty"`
	LastName  string          `json:"last_name,omitempty"`
	Kind      string          `json:"kind,omitempty"`
	Value     string          `json:"value,omitempty"`
	Levels    []string        `json:"levels,omitempty"`
}

func messageFromEvent(e model.Event) message {
	m := message{
		Type:      e.Type,
		Timestamp: e.Timestamp,
		Classroom: e.Classroom,
		PlayerID:  string(e.PlayerID),
	}
	switch p := e.Payload.(type) {
	case model.StudentLoggedInPayload:
		m.FirstName = p.FirstName
		m.LastName = p.LastName
	case model.ProgressRecordedPayload:
		m.Kind = p.Kind
		m.Value = p.Value
	case model.ProgressResetPayload:
		m.Levels = p.Levels
	}
	return m
}

// Publish sends the event to every dashboard watching its classroom.
// Hubs nobody listens to are skipped.
func (b *Broadcaster) Publish(e model.Event) {
	hubs := []*Hub{b.hubManager.GetHub(AllClassrooms)}
	if key := groupKeyForStored(e.Classroom); key != AllClassrooms {
		hubs = append(hubs, b.hubManager.GetHub(key))
	}

	var data []byte
	for _, hub := range hubs {
		if hub == nil {
			continue
		}
		if data == nil {
			var err error
			data, err = json.Marshal(messageFromEvent(e))
			if err != nil {
				b.logger.Error("live failed to encode event",
					slog.String("type", string(e.Type)),
					slog.Any("error", err))
				return
			}
		}
		hub.BroadcastEvent(string(e.Type), string(data))
	}
}

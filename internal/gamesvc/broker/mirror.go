package broker

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/avvvet/cardgame-services/internal/comm"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

// Mirror republishes room broadcasts on NATS for observers outside the
// process. It never affects delivery to websocket clients.
type Mirror struct {
	Conn     *nats.Conn
	Instance string
}

// MirrorEvent is the NATS payload of a mirrored broadcast.
type MirrorEvent struct {
	Instance  string          `json:"instance"`
	SessionID int64           `json:"session_id"`
	Timestamp time.Time       `json:"timestamp"`
	Event     *comm.WSMessage `json:"event"`
}

func NewMirror(conn *nats.Conn, instance string) *Mirror {
	return &Mirror{Conn: conn, Instance: instance}
}

func SessionSubject(sessionID int64) string {
	return fmt.Sprintf("cardgame.session.%d", sessionID)
}

// Publish matches ws.Ws.OnBroadcast.
func (m *Mirror) Publish(sessionID int64, msg *comm.WSMessage) {
	if m == nil || m.Conn == nil {
		return
	}

	payload, err := json.Marshal(MirrorEvent{
		Instance:  m.Instance,
		SessionID: sessionID,
		Timestamp: time.Now().UTC(),
		Event:     msg,
	})
	if err != nil {
		log.Errorf("unable to marshal mirrored %s event: %v", msg.Type, err)
		return
	}

	topic := SessionSubject(sessionID)
	if err := m.Conn.Publish(topic, payload); err != nil {
		log.Errorf("Error publishing to topic %s: %s", topic, err)
	}
}

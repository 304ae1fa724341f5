package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/avvvet/cardgame-services/internal/comm"
	"github.com/avvvet/cardgame-services/internal/gamesvc/models"
	"github.com/avvvet/cardgame-services/internal/gamesvc/service"
	"github.com/avvvet/cardgame-services/internal/socketsvc/ws"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

const internalErrorMessage = "internal error"

// Broker routes inbound socket messages to the game handlers and fans the
// results out to session rooms.
type Broker struct {
	Rooms          *ws.Ws
	UserService    *service.UserService
	SessionService *service.SessionService
	CardService    *service.CardService
	StateService   *service.StateService

	timeout time.Duration
}

func NewBroker(rooms *ws.Ws, userService *service.UserService, sessionService *service.SessionService,
	cardService *service.CardService, stateService *service.StateService, timeout time.Duration) *Broker {
	return &Broker{
		Rooms:          rooms,
		UserService:    userService,
		SessionService: sessionService,
		CardService:    cardService,
		StateService:   stateService,
		timeout:        timeout,
	}
}

// HandleMessage runs one inbound message to completion. Failures are logged and
// reported to the sending client only; the connection stays open.
func (b *Broker) HandleMessage(c *ws.Client, msg *comm.WSMessage) {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	label := metricType(msg.Type)
	timer := prometheus.NewTimer(handleDuration.WithLabelValues(label))
	defer timer.ObserveDuration()

	var err error
	switch msg.Type {
	case comm.TypeJoinGame:
		err = b.handleJoin(ctx, c, msg.Data)
	case comm.TypeCreateCard:
		err = b.handleCreateCard(ctx, msg.Data)
	case comm.TypeMoveCard:
		err = b.handleMoveCard(ctx, msg.Data)
	case comm.TypePlayCard:
		err = b.handlePlayCard(ctx, msg.Data)
	default:
		err = fmt.Errorf("%w: unknown message type %q", models.ErrInvalidRequest, msg.Type)
	}

	if err != nil {
		messagesTotal.WithLabelValues(label, "error").Inc()
		log.WithFields(log.Fields{
			"socket": c.ID,
			"type":   msg.Type,
		}).Errorf("handler failed: %v", err)
		b.sendError(c, err)
		return
	}
	messagesTotal.WithLabelValues(label, "ok").Inc()
}

func decode(data json.RawMessage, v interface{ Validate() error }) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: malformed payload", models.ErrInvalidRequest)
	}
	return v.Validate()
}

func (b *Broker) handleJoin(ctx context.Context, c *ws.Client, data json.RawMessage) error {
	var request comm.JoinGameRequest
	if err := decode(data, &request); err != nil {
		return err
	}

	m, err := b.SessionService.Join(ctx, request.SessionName, request.Username)
	if err != nil {
		return err
	}

	return b.Rooms.JoinWith(m.Session.ID, c, m.User, func() (*comm.WSMessage, error) {
		state, err := b.StateService.Snapshot(ctx, m.Session, m.User.ID)
		if err != nil {
			return nil, err
		}
		return comm.NewMessage(comm.TypeGameState, state)
	})
}

func (b *Broker) handleCreateCard(ctx context.Context, data json.RawMessage) error {
	var request comm.CreateCardRequest
	if err := decode(data, &request); err != nil {
		return err
	}

	user, err := b.UserService.Resolve(ctx, request.Username)
	if err != nil {
		return err
	}

	card, err := b.CardService.Create(ctx, user.ID, request.SessionID, request.CardData)
	if err != nil {
		return err
	}

	return b.broadcast(request.SessionID, comm.TypeCardCreated, comm.CardEvent{Card: card})
}

func (b *Broker) handleMoveCard(ctx context.Context, data json.RawMessage) error {
	var request comm.MoveCardRequest
	if err := decode(data, &request); err != nil {
		return err
	}

	user, err := b.UserService.Resolve(ctx, request.Username)
	if err != nil {
		return err
	}

	card, err := b.CardService.Move(ctx, user.ID, request.SessionID, request.InstanceID,
		request.ToZone, request.SlotID, request.IsActive)
	if err != nil {
		return err
	}

	return b.broadcast(request.SessionID, comm.TypeCardMoved, comm.CardEvent{Card: card, FromZone: request.FromZone})
}

func (b *Broker) handlePlayCard(ctx context.Context, data json.RawMessage) error {
	var request comm.PlayCardRequest
	if err := decode(data, &request); err != nil {
		return err
	}

	user, err := b.UserService.Resolve(ctx, request.Username)
	if err != nil {
		return err
	}

	card, err := b.CardService.Play(ctx, user.ID, request.SessionID, request.InstanceID)
	if err != nil {
		return err
	}

	return b.broadcast(request.SessionID, comm.TypeCardPlayed, comm.CardEvent{Card: card, FromZone: request.FromZone})
}

func (b *Broker) broadcast(sessionID int64, msgType string, payload any) error {
	msg, err := comm.NewMessage(msgType, payload)
	if err != nil {
		return err
	}
	n := b.Rooms.Broadcast(sessionID, msg, nil)
	log.Debugf("%s delivered to %d sockets in session %d", msgType, n, sessionID)
	return nil
}

// clientMessage hides persistence details from clients. Validation and
// ownership failures are reported as is.
func clientMessage(err error) string {
	switch {
	case errors.Is(err, models.ErrInvalidRequest),
		errors.Is(err, models.ErrInvalidCard),
		errors.Is(err, models.ErrCardNotOwned):
		return err.Error()
	default:
		return internalErrorMessage
	}
}

func (b *Broker) sendError(c *ws.Client, err error) {
	msg, mErr := comm.NewMessage(comm.TypeError, comm.ErrorPayload{Message: clientMessage(err)})
	if mErr != nil {
		log.Errorf("unable to build error message: %v", mErr)
		return
	}
	c.Send(msg)
}

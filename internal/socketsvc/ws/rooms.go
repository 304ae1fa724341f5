package ws

import (
	"sync"

	"github.com/avvvet/cardgame-services/internal/comm"
	"github.com/avvvet/cardgame-services/internal/gamesvc/models"
	log "github.com/sirupsen/logrus"
)

type room struct {
	mu      sync.Mutex
	members map[string]*Client
	dead    bool // removed from the registry, must not gain members
}

// Ws keeps track of live connections and of the room (session) each one is in.
type Ws struct {
	connMap sync.Map // socketId -> *Client

	mu    sync.Mutex
	rooms map[int64]*room

	// OnBroadcast, when set, is called with every message sent to a whole room.
	OnBroadcast func(sessionID int64, msg *comm.WSMessage)
}

func NewWs() *Ws {
	return &Ws{rooms: make(map[int64]*room)}
}

func (s *Ws) StoreConnection(c *Client) {
	s.connMap.Store(c.ID, c)
}

func (s *Ws) GetConnection(socketId string) (*Client, bool) {
	c, ok := s.connMap.Load(socketId)
	if !ok {
		return nil, false
	}
	return c.(*Client), true
}

// lockRoom returns the room for sessionID, locked, creating it if needed.
func (s *Ws) lockRoom(sessionID int64) *room {
	for {
		s.mu.Lock()
		r, ok := s.rooms[sessionID]
		if !ok {
			r = &room{members: make(map[string]*Client)}
			s.rooms[sessionID] = r
		}
		s.mu.Unlock()

		r.mu.Lock()
		if !r.dead {
			return r
		}
		r.mu.Unlock()
	}
}

// JoinWith adds c to the room of sessionID. build produces the snapshot for c
// and runs while the room is locked, so no broadcast to the room can slip in
// between the snapshot and the membership. If build fails, c is not added and
// nothing is sent. On success c receives the snapshot, the other members get
// player-joined and c leaves any room it was in before.
func (s *Ws) JoinWith(sessionID int64, c *Client, user *models.User, build func() (*comm.WSMessage, error)) error {
	r := s.lockRoom(sessionID)

	snapshot, err := build()
	if err != nil {
		r.mu.Unlock()
		return err
	}

	joined, err := comm.NewMessage(comm.TypePlayerJoined, comm.PlayerPresence{UserID: user.ID, Username: user.Username})
	if err != nil {
		r.mu.Unlock()
		return err
	}

	prevSession, prevUser := c.Room()
	r.members[c.ID] = c
	c.setRoom(sessionID, user)
	c.Send(snapshot)
	for id, m := range r.members {
		if id != c.ID {
			m.Send(joined)
		}
	}
	r.mu.Unlock()

	if prevSession != 0 && prevSession != sessionID {
		s.leaveRoom(prevSession, c, prevUser)
	}

	log.Infof("socket %s (%s) joined session %d", c.ID, user.Username, sessionID)
	return nil
}

// Broadcast sends msg to every member of the session's room except skip,
// which may be nil. It returns the number of members the message was queued for.
func (s *Ws) Broadcast(sessionID int64, msg *comm.WSMessage, skip *Client) int {
	s.mu.Lock()
	r, ok := s.rooms[sessionID]
	s.mu.Unlock()

	delivered := 0
	if ok {
		r.mu.Lock()
		for _, m := range r.members {
			if m == skip {
				continue
			}
			if m.Send(msg) {
				delivered++
			}
		}
		r.mu.Unlock()
	}

	if s.OnBroadcast != nil {
		s.OnBroadcast(sessionID, msg)
	}
	return delivered
}

// leaveRoom removes c from sessionID's room and tells the remaining members.
func (s *Ws) leaveRoom(sessionID int64, c *Client, user *models.User) {
	s.mu.Lock()
	r, ok := s.rooms[sessionID]
	s.mu.Unlock()
	if !ok {
		return
	}

	r.mu.Lock()
	if _, member := r.members[c.ID]; !member {
		r.mu.Unlock()
		return
	}
	delete(r.members, c.ID)

	if user != nil {
		left, err := comm.NewMessage(comm.TypePlayerLeft, comm.PlayerPresence{UserID: user.ID, Username: user.Username})
		if err == nil {
			for _, m := range r.members {
				m.Send(left)
			}
		}
	}

	if len(r.members) == 0 {
		r.dead = true
		s.mu.Lock()
		if s.rooms[sessionID] == r {
			delete(s.rooms, sessionID)
		}
		s.mu.Unlock()
	}
	r.mu.Unlock()
}

// HandleDisconnect drops a closed connection from the registry and its room.
func (s *Ws) HandleDisconnect(c *Client) {
	s.connMap.Delete(c.ID)

	sessionID, user := c.Room()
	if sessionID != 0 {
		s.leaveRoom(sessionID, c, user)
		c.setRoom(0, nil)
		log.Infof("socket %s left session %d", c.ID, sessionID)
	}
	c.Close()
}

// RoomSize returns the number of connections in the session's room.
func (s *Ws) RoomSize(sessionID int64) int {
	s.mu.Lock()
	r, ok := s.rooms[sessionID]
	s.mu.Unlock()
	if !ok {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}

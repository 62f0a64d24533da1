package transport

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/Onyxxx17/Skribble-Clone/game"
)

const (
	sendBufferSize = 256
	pingInterval   = 30 * time.Second
)

// Client is one websocket session. The coordinator only ever sees its
// connection id.
type Client struct {
	id       string
	username string
	roomCode string
	conn     Conn
	send     chan []byte   // never closed; see Hub.Unregister
	done     chan struct{} // closed on unregister, stops the write pump
	limiter  *rate.Limiter
	hub      *Hub
}

func NewClient(id string, conn Conn, hub *Hub) *Client {
	return &Client{
		id:      id,
		conn:    conn,
		send:    make(chan []byte, sendBufferSize),
		done:    make(chan struct{}),
		limiter: rate.NewLimiter(1, 5),
		hub:     hub,
	}
}

// ReadPump owns all inbound traffic for the session. On any read error
// the session is torn down and treated as a disconnect, which removes
// the player from their room like the original server's disconnect
// handler did.
func (c *Client) ReadPump() {
	defer c.disconnect()

	for {
		data, err := c.conn.Read()
		if err != nil {
			return
		}

		var pkt Packet
		if err := json.Unmarshal(data, &pkt); err != nil {
			c.reply(errorPacket("malformed packet"))
			continue
		}
		c.handle(pkt)
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	defer c.conn.Close("")

	for {
		select {
		case data := <-c.send:
			if err := c.conn.Write(data); err != nil {
				return
			}
		case <-c.done:
			// Flush whatever was queued before the unregister won.
			for {
				select {
				case data := <-c.send:
					if err := c.conn.Write(data); err != nil {
						return
					}
				default:
					return
				}
			}
		case <-ticker.C:
			if err := c.conn.Ping(); err != nil {
				return
			}
		}
	}
}

func (c *Client) handle(pkt Packet) {
	switch pkt.Type {
	case "create_room":
		c.handleCreateRoom(pkt.Data)
	case "join_room":
		c.handleJoinRoom(pkt.Data)
	case "leave_room":
		c.handleLeaveRoom()
	case "send_message":
		c.handleChat(pkt.Data)
	case "start_game":
		c.handleStartGame(pkt.Data)
	case "choose_word":
		c.handleChooseWord(pkt.Data)
	case "send_line":
		// Pure pass-through; the server never inspects stroke data.
		c.relay("receive_line", pkt.Data)
	case "clear_canvas":
		c.relay("clear_canvas", nil)
	default:
		log.Debug().Str("type", pkt.Type).Msg("unknown packet type")
	}
}

func (c *Client) handleCreateRoom(data json.RawMessage) {
	var p createRoomPayload
	if err := json.Unmarshal(data, &p); err != nil || p.Username == "" {
		c.reply(errorPacket("invalid username"))
		return
	}

	room, err := c.hub.coord.CreateRoom(p.Username, c.id)
	if err != nil {
		c.reply(errorPacket("could not create room"))
		return
	}
	c.username = p.Username
	c.roomCode = room.Code
	c.reply(marshal("room_created", viewRoom(room)))
}

func (c *Client) handleJoinRoom(data json.RawMessage) {
	var p joinRoomPayload
	if err := json.Unmarshal(data, &p); err != nil || p.Username == "" {
		c.reply(errorPacket("invalid join request"))
		return
	}

	room, err := c.hub.coord.JoinRoom(p.RoomCode, p.Username, c.id)
	if err != nil {
		c.replyError(err)
		return
	}
	c.username = p.Username
	c.roomCode = room.Code
	c.reply(marshal("room_joined", viewRoom(room)))
	c.hub.BroadcastExcept(room, c.id, marshal("user_joined", struct {
		Username string `json:"username"`
	}{Username: p.Username}))
}

func (c *Client) handleLeaveRoom() {
	res, err := c.hub.coord.LeaveRoom(c.id, c.roomCode)
	c.roomCode = ""
	if err != nil {
		return
	}
	if !res.RoomDeleted {
		c.hub.Broadcast(res.Room, marshal("user_left", struct {
			Username string `json:"username"`
		}{Username: res.Player.Name}))
	}
}

func (c *Client) handleChat(data json.RawMessage) {
	if !c.limiter.Allow() {
		c.reply(errorPacket("slow down"))
		return
	}
	var p chatPayload
	if err := json.Unmarshal(data, &p); err != nil {
		c.reply(errorPacket("invalid message"))
		return
	}

	res, err := c.hub.coord.PostMessage(c.id, c.roomCode, p.Message)
	if err != nil {
		c.replyError(err)
		return
	}

	// A scored guess is announced by the coordinator through the sink,
	// ahead of any turn advance it caused. Only the chat echo is ours.
	echo := marshal("message_sent", viewMessage(res.Message))
	switch res.EchoScope {
	case game.ScopeSender:
		c.reply(echo)
	case game.ScopeRoom:
		c.hub.Broadcast(res.Room, echo)
	}
}

func (c *Client) handleStartGame(data json.RawMessage) {
	var p startGamePayload
	if err := json.Unmarshal(data, &p); err != nil || p.TotalRounds < 1 || p.RoundTime < 1 {
		c.reply(errorPacket("invalid game settings"))
		return
	}

	room, err := c.hub.coord.StartGame(c.roomCode, p.TotalRounds, p.RoundTime, p.Category)
	if err != nil {
		c.replyError(err)
		return
	}

	drawer := room.Drawer()
	for _, player := range room.Players {
		c.hub.SendTo(player.ConnectionID, marshal("is_drawer", struct {
			IsDrawer bool `json:"isDrawer"`
		}{IsDrawer: player.ConnectionID == drawer.ConnectionID}))
	}
	c.hub.Broadcast(room, marshal("game_started", struct {
		TotalRounds   int    `json:"totalRounds"`
		RoundDuration int    `json:"roundDuration"`
		CurrentRound  int    `json:"currentRound"`
		CurrentDrawer string `json:"currentDrawer"`
	}{
		TotalRounds:   room.TotalRounds,
		RoundDuration: p.RoundTime,
		CurrentRound:  room.CurrentRound,
		CurrentDrawer: drawer.Name,
	}))
}

func (c *Client) handleChooseWord(data json.RawMessage) {
	var p chooseWordPayload
	if err := json.Unmarshal(data, &p); err != nil || p.Word == "" {
		c.reply(errorPacket("invalid word choice"))
		return
	}
	if err := c.hub.coord.ChooseWord(c.id, c.roomCode, p.Word); err != nil {
		c.replyError(err)
	}
}

// relay fans a drawing frame out to everyone else in the room.
func (c *Client) relay(packetType string, data json.RawMessage) {
	if c.roomCode == "" {
		return
	}
	room, ok := c.hub.coord.RoomByCode(c.roomCode)
	if !ok {
		return
	}
	c.hub.BroadcastExcept(room, c.id, marshal(packetType, data))
}

func (c *Client) reply(data []byte) {
	select {
	case c.send <- data:
	default:
	}
}

// replyError maps the core's typed failures to a notice for this
// connection only.
func (c *Client) replyError(err error) {
	switch {
	case errors.Is(err, game.ErrRoomNotFound):
		c.reply(errorPacket("Room not found"))
	case errors.Is(err, game.ErrPlayerNotFound):
		c.reply(errorPacket("Player not found"))
	case errors.Is(err, game.ErrNoActiveWord):
		c.reply(errorPacket("No word found"))
	case errors.Is(err, game.ErrNotEnoughPlayers):
		c.reply(errorPacket("Not enough players to start"))
	case errors.Is(err, game.ErrGameInProgress):
		c.reply(errorPacket("Game already in progress"))
	default:
		log.Error().Err(err).Str("conn", c.id).Msg("unexpected game error")
		c.reply(errorPacket("unknown error"))
	}
}

func (c *Client) disconnect() {
	log.Debug().Str("conn", c.id).Str("user", c.username).Msg("client disconnected")

	res, err := c.hub.coord.LeaveRoom(c.id, "")
	if err == nil && !res.RoomDeleted {
		c.hub.Broadcast(res.Room, marshal("user_left", struct {
			Username string `json:"username"`
		}{Username: res.Player.Name}))
	}
	c.hub.Unregister(c.id)
}

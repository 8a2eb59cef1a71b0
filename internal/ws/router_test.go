package ws

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/minerace/minerace-go/internal/dependencies/mocks"
	"github.com/minerace/minerace-go/internal/model"
	"github.com/minerace/minerace-go/internal/protocol"
	"github.com/minerace/minerace-go/internal/services/registry"
	"github.com/minerace/minerace-go/internal/services/session"
	"github.com/minerace/minerace-go/internal/storage/memory"
	"github.com/minerace/minerace-go/internal/testutil"
)

// RouterSuite drives the router handlers directly, with clients that have
// no real socket behind them. Handlers run inline rather than through the
// dispatch loop so assertions stay synchronous; ordering is covered by the
// hub tests.
type RouterSuite struct {
	suite.Suite

	store  *memory.Storage
	random *mocks.MockRandom
	hub    *Hub
	router *Router
}

func (s *RouterSuite) SetupTest() {
	logger := testutil.NopLogger()
	s.store = memory.New()
	s.random = mocks.NewMockRandom()
	clk := mocks.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	leaderboard := memory.NewLeaderboard()

	s.hub = NewHub(logger)
	registryController := registry.NewController(s.store, clk, s.random, logger)
	sessionController := session.NewController(s.store, registryController, leaderboard, s.hub, s.hub, clk, logger, session.Config{
		CountdownSeconds: 5,
		TickInterval:     0,
	})
	s.router = NewRouter(s.hub, registryController, sessionController, leaderboard, logger)
}

func (s *RouterSuite) connect() *Client {
	c := newClient(s.hub, nil, testutil.NopLogger())
	s.hub.register(c)
	return c
}

// drain pops every queued message off a client
func (s *RouterSuite) drain(c *Client) []*protocol.Message {
	var msgs []*protocol.Message
	for {
		select {
		case data := <-c.send:
			msg, err := protocol.Decode(data)
			s.Require().NoError(err)
			msgs = append(msgs, msg)
		default:
			return msgs
		}
	}
}

// lastOfType returns the most recent message of the given type, or nil
func lastOfType(msgs []*protocol.Message, t protocol.EventType) *protocol.Message {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Type == t {
			return msgs[i]
		}
	}
	return nil
}

func (s *RouterSuite) TestCreateRoomFlow() {
	s.random.QueueString("ab12")
	s.random.QueueSeed(42)

	c := s.connect()
	s.router.handleMessage(c, protocol.MustNewMessage(protocol.EventCreateRoom, protocol.CreateRoomPayload{
		Difficulty: model.DifficultyEasy,
		PlayerName: "Alice",
	}))

	msgs := s.drain(c)
	created := lastOfType(msgs, protocol.EventRoomCreated)
	s.Require().NotNil(created)

	payload, err := protocol.ParsePayload[protocol.RoomPayload](created)
	s.Require().NoError(err)
	s.Equal(model.RoomCode("ab12"), payload.Room.Code)
	s.Equal(c.ID, payload.You)
	s.Equal(model.RoomCode("ab12"), c.Room())
}

func (s *RouterSuite) TestJoinRoomNotifiesBothPlayers() {
	s.random.QueueString("ab12")
	s.random.QueueSeed(42)

	host := s.connect()
	s.router.handleMessage(host, protocol.MustNewMessage(protocol.EventCreateRoom, protocol.CreateRoomPayload{
		Difficulty: model.DifficultyEasy,
		PlayerName: "Alice",
	}))
	s.drain(host)

	guest := s.connect()
	s.router.handleMessage(guest, protocol.MustNewMessage(protocol.EventJoinRoom, protocol.JoinRoomPayload{
		RoomID:     "ab12",
		PlayerName: "Bob",
	}))

	guestMsgs := s.drain(guest)
	s.NotNil(lastOfType(guestMsgs, protocol.EventRoomJoined))
	s.NotNil(lastOfType(guestMsgs, protocol.EventPlayerJoined))
	s.NotNil(lastOfType(s.drain(host), protocol.EventPlayerJoined))
}

func (s *RouterSuite) TestJoinUnknownRoomSendsError() {
	c := s.connect()
	s.router.handleMessage(c, protocol.MustNewMessage(protocol.EventJoinRoom, protocol.JoinRoomPayload{
		RoomID:     "zzzz",
		PlayerName: "Bob",
	}))

	errMsg := lastOfType(s.drain(c), protocol.EventError)
	s.Require().NotNil(errMsg)
	payload, err := protocol.ParsePayload[protocol.ErrorPayload](errMsg)
	s.Require().NoError(err)
	s.Equal("Room not found", payload.Message)
}

func (s *RouterSuite) TestUnknownMessageTypeSendsError() {
	c := s.connect()
	s.router.handleMessage(c, &protocol.Message{Type: "teleport"})
	s.NotNil(lastOfType(s.drain(c), protocol.EventError))
}

func (s *RouterSuite) TestMalformedPayloadSendsError() {
	c := s.connect()
	s.router.handleMessage(c, &protocol.Message{Type: protocol.EventCellClick, Payload: []byte(`"nope"`)})
	s.NotNil(lastOfType(s.drain(c), protocol.EventError))
}

func (s *RouterSuite) TestPingPong() {
	c := s.connect()
	s.router.handleMessage(c, &protocol.Message{Type: protocol.EventPing})

	msgs := s.drain(c)
	s.Require().Len(msgs, 1)
	s.Equal(protocol.EventPong, msgs[0].Type)
}

func (s *RouterSuite) TestDisconnectRemovesPlayerFromRoom() {
	s.random.QueueString("ab12")
	s.random.QueueSeed(42)

	host := s.connect()
	s.router.handleMessage(host, protocol.MustNewMessage(protocol.EventCreateRoom, protocol.CreateRoomPayload{
		Difficulty: model.DifficultyEasy,
		PlayerName: "Alice",
	}))

	guest := s.connect()
	s.router.handleMessage(guest, protocol.MustNewMessage(protocol.EventJoinRoom, protocol.JoinRoomPayload{
		RoomID:     "ab12",
		PlayerName: "Bob",
	}))
	s.drain(host)
	s.drain(guest)

	s.router.handleDisconnect(guest)

	room, err := s.store.GetRoom(context.Background(), "ab12")
	s.Require().NoError(err)
	s.Require().Len(room.Players, 1)
	s.Equal(host.ID, room.Players[0].ID)
	s.NotNil(lastOfType(s.drain(host), protocol.EventPlayerLeft))
}

func (s *RouterSuite) TestLeaderboardQuery() {
	c := s.connect()
	s.router.handleMessage(c, &protocol.Message{Type: protocol.EventGetLeaderboard})

	result := lastOfType(s.drain(c), protocol.EventLeaderboardResult)
	s.Require().NotNil(result)
	payload, err := protocol.ParsePayload[protocol.LeaderboardPayload](result)
	s.Require().NoError(err)
	s.Empty(payload.Entries)
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

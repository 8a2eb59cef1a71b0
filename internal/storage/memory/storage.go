package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/minerace/minerace-go/internal/model"
	"github.com/minerace/minerace-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	rooms  map[model.RoomCode]*model.Room
	boards map[boardKey]*model.Board
}

type boardKey struct {
	code     model.RoomCode
	playerID model.PlayerID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		rooms:  make(map[model.RoomCode]*model.Room),
		boards: make(map[boardKey]*model.Board),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Room operations

func (s *Storage) SaveRoom(ctx context.Context, room *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[room.Code] = room
	return nil
}

func (s *Storage) GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[code]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return room, nil
}

func (s *Storage) DeleteRoom(ctx context.Context, code model.RoomCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, code)
	return nil
}

func (s *Storage) RoomExists(ctx context.Context, code model.RoomCode) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.rooms[code]
	return ok, nil
}

// Board operations

func (s *Storage) SaveBoard(ctx context.Context, code model.RoomCode, playerID model.PlayerID, board *model.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boards[boardKey{code: code, playerID: playerID}] = board
	return nil
}

func (s *Storage) GetBoard(ctx context.Context, code model.RoomCode, playerID model.PlayerID) (*model.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	board, ok := s.boards[boardKey{code: code, playerID: playerID}]
	if !ok {
		return nil, model.ErrBoardNotFound
	}
	return board, nil
}

func (s *Storage) DeleteBoard(ctx context.Context, code model.RoomCode, playerID model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.boards, boardKey{code: code, playerID: playerID})
	return nil
}

func (s *Storage) DeleteBoardsForRoom(ctx context.Context, code model.RoomCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.boards {
		if key.code == code {
			delete(s.boards, key)
		}
	}
	return nil
}

// Leaderboard is an in-memory implementation of the leaderboard
type Leaderboard struct {
	mu      sync.RWMutex
	entries map[string]*model.LeaderboardEntry
}

// NewLeaderboard creates a new in-memory leaderboard
func NewLeaderboard() *Leaderboard {
	return &Leaderboard{
		entries: make(map[string]*model.LeaderboardEntry),
	}
}

// Ensure Leaderboard implements the interface
var _ storage.Leaderboard = (*Leaderboard)(nil)

func (l *Leaderboard) RecordWin(ctx context.Context, name string, byForfeit bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry := l.getOrCreate(name)
	entry.Wins++
	if byForfeit {
		entry.ForfeitWins++
	}
	return nil
}

func (l *Leaderboard) RecordLoss(ctx context.Context, name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.getOrCreate(name).Losses++
	return nil
}

func (l *Leaderboard) Top(ctx context.Context, n int) ([]model.LeaderboardEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]model.LeaderboardEntry, 0, len(l.entries))
	for _, entry := range l.entries {
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Wins != result[j].Wins {
			return result[i].Wins > result[j].Wins
		}
		return result[i].Name < result[j].Name
	})
	if n >= 0 && len(result) > n {
		result = result[:n]
	}
	return result, nil
}

// getOrCreate must be called with the write lock held
func (l *Leaderboard) getOrCreate(name string) *model.LeaderboardEntry {
	entry, ok := l.entries[name]
	if !ok {
		entry = &model.LeaderboardEntry{Name: name}
		l.entries[name] = entry
	}
	return entry
}

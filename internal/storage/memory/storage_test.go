package memory

import (
	"context"
	"testing"
	"time"

	"github.com/mcoot/classquiz/internal/model"
	"github.com/stretchr/testify/suite"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
	base    time.Time
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
	s.base = time.Date(2024, 9, 2, 8, 0, 0, 0, time.UTC)
}

func (s *StorageSuite) player(id, first, last, classroom string, offset time.Duration) *model.Player {
	return &model.Player{
		ID:        model.PlayerID(id),
		FirstName: first,
		LastName:  last,
		Classroom: classroom,
		CreatedAt: s.base.Add(offset),
	}
}

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := s.player("player-1", "Alice", "Martin", "5A", 0)
	player.ValidatedLevels = []string{"lvl1"}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player, retrieved)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestReturnedPlayerIsACopy() {
	player := s.player("player-1", "Alice", "Martin", "5A", 0)
	player.ValidatedLevels = []string{"lvl1"}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	// Mutating the saved value or a fetched value must not leak into the store
	player.ValidatedLevels[0] = "changed"
	fetched, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	fetched.ValidatedLevels = append(fetched.ValidatedLevels, "lvl2")

	again, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal([]string{"lvl1"}, again.ValidatedLevels)
}

func (s *StorageSuite) TestListPlayersOrderedByCreation() {
	_ = s.storage.SavePlayer(s.ctx, s.player("c", "Cara", "Petit", "5A", 2*time.Minute))
	_ = s.storage.SavePlayer(s.ctx, s.player("b", "Bruno", "Roux", "6", time.Minute))
	_ = s.storage.SavePlayer(s.ctx, s.player("a", "Anna", "Blanc", "5A", time.Minute))

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 3)
	s.Equal(model.PlayerID("a"), players[0].ID)
	s.Equal(model.PlayerID("b"), players[1].ID)
	s.Equal(model.PlayerID("c"), players[2].ID)
}

func (s *StorageSuite) TestListPlayersByClassroom() {
	_ = s.storage.SavePlayer(s.ctx, s.player("p1", "Jean", "Martin", "2CD", 0))
	_ = s.storage.SavePlayer(s.ctx, s.player("p2", "Lea", "Durand", "2C", time.Minute))
	_ = s.storage.SavePlayer(s.ctx, s.player("p3", "Hugo", "Bernard", "5A", 2*time.Minute))

	players, err := s.storage.ListPlayersByClassroom(s.ctx, []string{"2C", "2D", "2CD"})
	s.Require().NoError(err)
	s.Require().Len(players, 2)
	s.Equal(model.PlayerID("p1"), players[0].ID)
	s.Equal(model.PlayerID("p2"), players[1].ID)
}

func (s *StorageSuite) TestListPlayersByClassroomNoMatch() {
	_ = s.storage.SavePlayer(s.ctx, s.player("p1", "Jean", "Martin", "2CD", 0))

	players, err := s.storage.ListPlayersByClassroom(s.ctx, []string{"6", "6D"})
	s.Require().NoError(err)
	s.Empty(players)
}

func (s *StorageSuite) TestSaveOverwritesClassroom() {
	_ = s.storage.SavePlayer(s.ctx, s.player("p1", "Jean", "Martin", "5A", 0))
	_ = s.storage.SavePlayer(s.ctx, s.player("p1", "Jean", "Martin", "5B", 0))

	inOld, err := s.storage.ListPlayersByClassroom(s.ctx, []string{"5A"})
	s.Require().NoError(err)
	s.Empty(inOld)

	inNew, err := s.storage.ListPlayersByClassroom(s.ctx, []string{"5B"})
	s.Require().NoError(err)
	s.Len(inNew, 1)
}

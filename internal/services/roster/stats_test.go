package roster

import (
	"time"

	"github.com/mcoot/classquiz/internal/model"
)

func (s *ServiceSuite) connectAt(id string, at time.Time) {
	player, err := s.storage.GetPlayer(s.ctx, model.PlayerID(id))
	s.Require().NoError(err)
	player.LastConnection = at
	s.Require().NoError(s.storage.Storage.SavePlayer(s.ctx, player))
}

func (s *ServiceSuite) TestClassStatsCountsActiveToday() {
	s.enroll("p1", "Jean", "Martin", "2CD", 0)
	s.enroll("p2", "Anna", "Blanc", "2C", time.Minute)
	s.enroll("p3", "Adèle", "Dupont", "2", 2*time.Minute)
	s.enroll("p4", "Émile", "Zola", "5A", 3*time.Minute)

	// The clock reads 2024-09-03 08:00 UTC
	s.connectAt("p1", s.clock.Now().Add(-time.Hour))
	s.connectAt("p2", s.clock.Now().Add(-9*time.Hour))
	s.connectAt("p4", s.clock.Now())

	stats, err := s.service.ClassStats(s.ctx, "2de")
	s.Require().NoError(err)
	s.Equal(ClassStats{Classroom: "2", TotalStudents: 3, ActiveToday: 1}, stats)

	stats, err = s.service.ClassStats(s.ctx, "all")
	s.Require().NoError(err)
	s.Equal(ClassStats{Classroom: allClassrooms, TotalStudents: 4, ActiveToday: 2}, stats)

	stats, err = s.service.ClassStats(s.ctx, "")
	s.Require().NoError(err)
	s.Equal(4, stats.TotalStudents)
}

func (s *ServiceSuite) TestClassStatsCountsLoginsToday() {
	s.enroll("p1", "Jean", "Martin", "5A", 0)
	s.enroll("p2", "Anna", "Blanc", "5A", time.Minute)

	_, err := s.service.Login(s.ctx, LoginRequest{FirstName: "Anna", LastName: "Blanc", Classroom: "5eA"})
	s.Require().NoError(err)

	stats, err := s.service.ClassStats(s.ctx, "5A")
	s.Require().NoError(err)
	s.Equal(2, stats.TotalStudents)
	s.Equal(1, stats.ActiveToday)

	// Yesterday's login no longer counts
	s.clock.Advance(24 * time.Hour)
	stats, err = s.service.ClassStats(s.ctx, "5A")
	s.Require().NoError(err)
	s.Zero(stats.ActiveToday)
}

func (s *ServiceSuite) TestClassStatsEmptyClassroom() {
	stats, err := s.service.ClassStats(s.ctx, "3B")
	s.Require().NoError(err)
	s.Equal(ClassStats{Classroom: "3B"}, stats)
}

func (s *ServiceSuite) TestClassStatsStorageFailure() {
	s.storage.failList = true

	_, err := s.service.ClassStats(s.ctx, "5A")
	s.ErrorIs(err, errStorageDown)
}

package roster

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mcoot/classquiz/internal/model"
)

func (s *ServiceSuite) writeRoster(name, content string) string {
	path := filepath.Join(s.T().TempDir(), name)
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o600))
	return path
}

func (s *ServiceSuite) TestImportCreatesPlayers() {
	s.random.QueueID("a", "b")

	result, err := s.service.Import(s.ctx, []Entry{
		{FirstName: " Jean ", LastName: "Martin", Classroom: "2de"},
		{FirstName: "Anna", LastName: "Blanc", Classroom: "5eA"},
	})
	s.Require().NoError(err)
	s.Equal(ImportResult{Created: 2}, result)
	s.Equal(2.0, testutil.ToFloat64(s.metrics.StudentsImported))

	jean, err := s.storage.GetPlayer(s.ctx, "a")
	s.Require().NoError(err)
	s.Equal("Jean", jean.FirstName)
	s.Equal("2", jean.Classroom)

	anna, err := s.storage.GetPlayer(s.ctx, "b")
	s.Require().NoError(err)
	s.Equal("5A", anna.Classroom)
	s.True(anna.CreatedAt.After(jean.CreatedAt))
}

func (s *ServiceSuite) TestImportSkipsEnrolledStudents() {
	s.enroll("p1", "Émile", "Zola", "5A", 0)

	result, err := s.service.Import(s.ctx, []Entry{
		{FirstName: "Emile", LastName: "Zola", Classroom: "5eA"},
		{FirstName: "Emile", LastName: "Zola", Classroom: "5B"},
		{FirstName: "Emile", LastName: "Zola", Classroom: "5B"},
	})
	s.Require().NoError(err)
	s.Equal(ImportResult{Created: 1, Skipped: 2}, result)
}

func (s *ServiceSuite) TestImportRejectsBlankEntries() {
	_, err := s.service.Import(s.ctx, []Entry{
		{FirstName: "Jean", LastName: "Martin", Classroom: "5A"},
		{FirstName: "Anna", LastName: "  ", Classroom: "5A"},
	})
	s.ErrorIs(err, ErrMissingFields)
	s.Contains(err.Error(), "entry 2")

	players, _ := s.storage.ListPlayers(s.ctx)
	s.Empty(players)
}

func (s *ServiceSuite) TestImportRejectsNamesLoginCannotMatch() {
	_, err := s.service.Import(s.ctx, []Entry{
		{FirstName: "Jean", LastName: "Martin", Classroom: "5A"},
		{FirstName: "J", LastName: "Martin", Classroom: "5A"},
	})
	s.ErrorIs(err, ErrUnmatchableName)
	s.Contains(err.Error(), "entry 2")

	_, err = s.service.Import(s.ctx, []Entry{{FirstName: "Anna", LastName: "B.", Classroom: "5A"}})
	s.ErrorIs(err, ErrUnmatchableName)

	_, err = s.service.Import(s.ctx, []Entry{{FirstName: "Anna", LastName: "Blanc", Classroom: "-"}})
	s.ErrorIs(err, ErrMissingFields)

	players, _ := s.storage.ListPlayers(s.ctx)
	s.Empty(players)
}

func (s *ServiceSuite) TestImportRecognisesStoredClassroomKeys() {
	// "5eD" is stored as "5D"; re-importing an export holding "5D" must not
	// create a duplicate under "5"
	s.random.QueueID("lina")
	result, err := s.service.Import(s.ctx, []Entry{{FirstName: "Lina", LastName: "Petit", Classroom: "5eD"}})
	s.Require().NoError(err)
	s.Equal(ImportResult{Created: 1}, result)

	stored, err := s.storage.GetPlayer(s.ctx, "lina")
	s.Require().NoError(err)
	s.Equal("5D", stored.Classroom)

	result, err = s.service.Import(s.ctx, []Entry{{FirstName: "Lina", LastName: "Petit", Classroom: stored.Classroom}})
	s.Require().NoError(err)
	s.Equal(ImportResult{Skipped: 1}, result)

	players, _ := s.storage.ListPlayers(s.ctx)
	s.Len(players, 1)
}

func (s *ServiceSuite) TestImportedStudentCanLogin() {
	_, err := s.service.Import(s.ctx, []Entry{{FirstName: "Jean-Luc", LastName: "Picard", Classroom: "2CD"}})
	s.Require().NoError(err)

	player, err := s.service.Login(s.ctx, LoginRequest{FirstName: "Jean Luc", LastName: "picard", Classroom: "2C"})
	s.Require().NoError(err)
	s.Equal("Jean-Luc", player.FirstName)
}

func (s *ServiceSuite) TestImportFileCSV() {
	path := s.writeRoster("roster.csv", "classroom,last_name,first_name\n5A,Martin,Jean\n6e, Petit, Lina\n")

	result, err := s.service.ImportFile(s.ctx, path)
	s.Require().NoError(err)
	s.Equal(2, result.Created)

	players, err := s.service.ListStudents(s.ctx, "6")
	s.Require().NoError(err)
	s.Require().Len(players, 1)
	s.Equal("Lina", players[0].FirstName)
	s.Equal("6", players[0].Classroom)
}

func (s *ServiceSuite) TestImportFileYAML() {
	path := s.writeRoster("roster.yaml", `
students:
  - first_name: Jean-Pierre
    last_name: Martin
    classroom: 2CD
  - first_name: Anna
    last_name: Blanc
    classroom: 2C
`)

	result, err := s.service.ImportFile(s.ctx, path)
	s.Require().NoError(err)
	s.Equal(2, result.Created)

	players, _ := s.service.ListStudents(s.ctx, "2de")
	s.Len(players, 2)
}

func (s *ServiceSuite) TestImportFileUnsupported() {
	path := s.writeRoster("roster.txt", "Jean Martin 5A")

	_, err := s.service.ImportFile(s.ctx, path)
	s.ErrorIs(err, ErrUnsupportedRoster)
}

func (s *ServiceSuite) TestImportFileMissing() {
	_, err := s.service.ImportFile(s.ctx, filepath.Join(s.T().TempDir(), "nope.csv"))
	s.Error(err)
}

func (s *ServiceSuite) TestParseCSVMissingColumn() {
	_, err := ParseCSV(strings.NewReader("first_name,classroom\nJean,5A\n"))
	s.ErrorContains(err, "last_name")
}

func (s *ServiceSuite) TestParseCSVShortRow() {
	entries, err := ParseCSV(strings.NewReader("first_name,last_name,classroom\nJean,Martin\n"))
	s.Require().NoError(err)
	s.Equal([]Entry{{FirstName: "Jean", LastName: "Martin"}}, entries)
}

func (s *ServiceSuite) TestParseEmptyRosters() {
	entries, err := ParseCSV(strings.NewReader(""))
	s.Require().NoError(err)
	s.Empty(entries)

	entries, err = ParseYAML(strings.NewReader(""))
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *ServiceSuite) TestImportGeneratesIDs() {
	_, err := s.service.Import(s.ctx, []Entry{{FirstName: "Jean", LastName: "Martin", Classroom: "5A"}})
	s.Require().NoError(err)

	_, err = s.storage.GetPlayer(s.ctx, model.PlayerID("id-1"))
	s.NoError(err)
}

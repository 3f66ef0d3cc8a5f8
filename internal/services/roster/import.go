package roster

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mcoot/classquiz/internal/identity"
	"github.com/mcoot/classquiz/internal/model"
)

var (
	ErrUnsupportedRoster = errors.New("roster file must be .csv, .yaml or .yml")
	// ErrUnmatchableName rejects names without a token of two or more
	// letters, which login could never resolve
	ErrUnmatchableName = errors.New("name has no token of at least two characters")
)

// Entry is one student row of a roster file
type Entry struct {
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Classroom string `yaml:"classroom"`
}

// ImportResult counts what an import did
type ImportResult struct {
	Created int
	Skipped int
}

type rosterFile struct {
	Students []Entry `yaml:"students"`
}

// ImportFile reads a CSV or YAML roster and imports its students
func (s *Service) ImportFile(ctx context.Context, path string) (ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("open roster: %w", err)
	}
	defer func() { _ = f.Close() }()

	var entries []Entry
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		entries, err = ParseCSV(f)
	case ".yaml", ".yml":
		entries, err = ParseYAML(f)
	default:
		return ImportResult{}, ErrUnsupportedRoster
	}
	if err != nil {
		return ImportResult{}, fmt.Errorf("parse roster %s: %w", filepath.Base(path), err)
	}

	return s.Import(ctx, entries)
}

// Import creates a player for every entry that is not already enrolled.
// Entries keep their order as creation order, so earlier rows win ties
// during identity resolution.
func (s *Service) Import(ctx context.Context, entries []Entry) (ImportResult, error) {
	for i, e := range entries {
		if strings.TrimSpace(e.FirstName) == "" ||
			strings.TrimSpace(e.LastName) == "" ||
			strings.TrimSpace(e.Classroom) == "" {
			return ImportResult{}, fmt.Errorf("entry %d: %w", i+1, ErrMissingFields)
		}
		if len(identity.Tokenize(e.FirstName)) == 0 || len(identity.Tokenize(e.LastName)) == 0 {
			return ImportResult{}, fmt.Errorf("entry %d (%s %s): %w", i+1, e.FirstName, e.LastName, ErrUnmatchableName)
		}
		if identity.CanonicalizeClassroom(e.Classroom) == "" {
			return ImportResult{}, fmt.Errorf("entry %d: classroom %q: %w", i+1, e.Classroom, ErrMissingFields)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return ImportResult{}, fmt.Errorf("list players: %w", err)
	}
	enrolled := make(map[string]bool, len(existing))
	for _, p := range existing {
		enrolled[enrollmentKey(p.FirstName, p.LastName, p.Classroom)] = true
	}

	var result ImportResult
	now := s.clock.Now()
	for _, e := range entries {
		classroom := identity.CanonicalizeClassroom(e.Classroom)
		key := enrollmentKey(e.FirstName, e.LastName, classroom)
		// A row exported from storage already holds a stored key such as
		// "5D", which canonicalizes again to "5"
		asStored := enrollmentKey(e.FirstName, e.LastName, strings.ToUpper(identity.Normalize(e.Classroom)))
		if enrolled[key] || enrolled[asStored] {
			result.Skipped++
			continue
		}

		player := &model.Player{
			ID:                 model.PlayerID(s.random.ID()),
			FirstName:          strings.TrimSpace(e.FirstName),
			LastName:           strings.TrimSpace(e.LastName),
			Classroom:          classroom,
			ValidatedQuestions: []string{},
			ValidatedLevels:    []string{},
			CreatedAt:          now.Add(time.Duration(result.Created) * time.Microsecond),
		}
		if err := s.storage.SavePlayer(ctx, player); err != nil {
			return result, fmt.Errorf("save player: %w", err)
		}
		enrolled[key] = true
		result.Created++
		s.metrics.StudentsImported.Inc()
	}

	s.logger.Info("roster imported",
		"created", result.Created,
		"skipped", result.Skipped,
	)
	return result, nil
}

// enrollmentKey identifies a student within a canonical classroom
func enrollmentKey(firstName, lastName, classroom string) string {
	return classroom + "|" + identity.Normalize(firstName) + "|" + identity.Normalize(lastName)
}

// ParseCSV reads a roster with a header row naming the first_name,
// last_name and classroom columns, in any order.
func ParseCSV(r io.Reader) ([]Entry, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []Entry{}, nil
		}
		return nil, err
	}

	columns := map[string]int{}
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"first_name", "last_name", "classroom"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	entries := []Entry{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{
			FirstName: field(record, columns["first_name"]),
			LastName:  field(record, columns["last_name"]),
			Classroom: field(record, columns["classroom"]),
		})
	}
	return entries, nil
}

func field(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return record[i]
}

// ParseYAML reads a roster of the form
//
//	students:
//	  - first_name: Jean-Pierre
//	    last_name: Martin
//	    classroom: 2CD
func ParseYAML(r io.Reader) ([]Entry, error) {
	var file rosterFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return []Entry{}, nil
		}
		return nil, err
	}
	if file.Students == nil {
		return []Entry{}, nil
	}
	return file.Students, nil
}

package response

import (
	"time"

	"github.com/mcoot/classquiz/internal/model"
)

// Player represents a student in API responses
type Player struct {
	ID                 string     `json:"id"`
	FirstName          string     `json:"first_name"`
	LastName           string     `json:"last_name"`
	Classroom          string     `json:"classroom"`
	ValidatedQuestions []string   `json:"validated_questions"`
	ValidatedLevels    []string   `json:"validated_levels"`
	Score              int        `json:"score"`
	BestScore          int        `json:"best_score"`
	LastConnection     *time.Time `json:"last_connection,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	resp := Player{
		ID:                 string(p.ID),
		FirstName:          p.FirstName,
		LastName:           p.LastName,
		Classroom:          p.Classroom,
		ValidatedQuestions: nonNil(p.ValidatedQuestions),
		ValidatedLevels:    nonNil(p.ValidatedLevels),
		Score:              p.Score,
		BestScore:          p.BestScore,
		CreatedAt:          p.CreatedAt,
	}
	if !p.LastConnection.IsZero() {
		t := p.LastConnection
		resp.LastConnection = &t
	}
	return resp
}

// PlayersFromModel converts a list of players
func PlayersFromModel(players []*model.Player) []Player {
	result := make([]Player, len(players))
	for i, p := range players {
		result[i] = PlayerFromModel(p)
	}
	return result
}

// StudentList is the dashboard listing
type StudentList struct {
	Students []Player `json:"students"`
	Count    int      `json:"count"`
}

// ClassStats is the dashboard summary of a classroom
type ClassStats struct {
	Classroom     string `json:"classroom"`
	TotalStudents int    `json:"total_students"`
	ActiveToday   int    `json:"active_today"`
}

// Progress is a player's validated levels and questions
type Progress struct {
	PlayerID           string   `json:"player_id"`
	ValidatedLevels    []string `json:"validated_levels"`
	ValidatedQuestions []string `json:"validated_questions"`
}

// ProgressFromModel converts model.Progress
func ProgressFromModel(id model.PlayerID, p model.Progress) Progress {
	return Progress{
		PlayerID:           string(id),
		ValidatedLevels:    nonNil(p.ValidatedLevels),
		ValidatedQuestions: nonNil(p.ValidatedQuestions),
	}
}

// ProgressUpdate reports whether a progress write changed anything
type ProgressUpdate struct {
	Updated bool `json:"updated"`
}

// ResetAll reports how many students were reset
type ResetAll struct {
	Reset int `json:"reset"`
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case StudentList:
		o.printStudentList(v)
	case Progress:
		o.printProgress(v)
	case ProgressUpdate:
		o.printProgressUpdate(v)
	case ResetAllResult:
		fmt.Printf("Reset %d students\n", v.Reset)
	case ClassStats:
		fmt.Printf("Classroom %s: %d students, %d active today\n", v.Classroom, v.TotalStudents, v.ActiveToday)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
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
}

// StudentList response type
type StudentList struct {
	Students []Player `json:"students"`
	Count    int      `json:"count"`
}

// Progress response type
type Progress struct {
	PlayerID           string   `json:"player_id"`
	ValidatedLevels    []string `json:"validated_levels"`
	ValidatedQuestions []string `json:"validated_questions"`
}

// ProgressUpdate response type
type ProgressUpdate struct {
	Updated bool `json:"updated"`
}

// ClassStats response type
type ClassStats struct {
	Classroom     string `json:"classroom"`
	TotalStudents int    `json:"total_students"`
	ActiveToday   int    `json:"active_today"`
}

// ResetAllResult response type
type ResetAllResult struct {
	Reset int `json:"reset"`
}

// HealthResult response type
type HealthResult struct {
	Status    string `json:"status"`
	Server    string `json:"server,omitempty"`
	LatencyMS int64  `json:"latency_ms"`
	Player    string `json:"player,omitempty"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Student: %s %s (%s)\n", p.FirstName, p.LastName, p.ID)
	fmt.Printf("Classroom: %s\n", p.Classroom)
	fmt.Printf("Levels: %s\n", joinOrNone(p.ValidatedLevels))
	fmt.Printf("Questions: %d validated\n", len(p.ValidatedQuestions))
	if p.LastConnection != nil {
		fmt.Printf("Last connection: %s\n", p.LastConnection.Local().Format(time.DateTime))
	}
}

func (o *Output) printStudentList(l StudentList) {
	fmt.Printf("Students (%d):\n", l.Count)
	for _, s := range l.Students {
		seen := "never"
		if s.LastConnection != nil {
			seen = s.LastConnection.Local().Format(time.DateTime)
		}
		fmt.Printf("  - %s %s [%s] levels=%d questions=%d last=%s (%s)\n",
			s.LastName, s.FirstName, s.Classroom,
			len(s.ValidatedLevels), len(s.ValidatedQuestions), seen, s.ID)
	}
}

func (o *Output) printProgress(p Progress) {
	fmt.Printf("Player: %s\n", p.PlayerID)
	fmt.Printf("Levels: %s\n", joinOrNone(p.ValidatedLevels))
	fmt.Printf("Questions: %s\n", joinOrNone(p.ValidatedQuestions))
}

func (o *Output) printProgressUpdate(u ProgressUpdate) {
	if u.Updated {
		fmt.Println("Progress recorded")
	} else {
		fmt.Println("Already validated")
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
	fmt.Printf("Server: %s (%dms)\n", h.Server, h.LatencyMS)
	if h.Player != "" {
		fmt.Printf("Logged in as: %s\n", h.Player)
	} else {
		fmt.Println("Not logged in")
	}
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}

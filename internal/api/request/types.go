package request

// LoginRequest is the request body for a student login
type LoginRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Classroom string `json:"classroom"`
}

// RecordProgressRequest is the request body for validating a question or level
type RecordProgressRequest struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// ResetChapterRequest is the request body for resetting some levels of a player
type ResetChapterRequest struct {
	LevelIDs []string `json:"level_ids"`
}

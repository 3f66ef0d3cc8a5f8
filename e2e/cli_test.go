package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/classquiz/internal/api"
	"github.com/mcoot/classquiz/internal/factory"
	"github.com/mcoot/classquiz/internal/services/roster"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	playerFile string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "classquiz-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/classquiz")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	// Each test remembers its own logged-in player
	playerFile := filepath.Join(t.TempDir(), "player")

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		playerFile: playerFile,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--player-file", r.playerFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	cmd.Env = append(os.Environ(), "CLASSQUIZ_PLAYER=")
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	server   *api.Server
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// Create application with a small roster
	app, err := factory.New(factory.Config{Logger: logger})
	require.NoError(t, err)

	_, err = app.RosterService.Import(context.Background(), []roster.Entry{
		{FirstName: "Jean-Pierre", LastName: "Martin", Classroom: "2CD"},
		{FirstName: "Anna", LastName: "Blanc", Classroom: "2C"},
		{FirstName: "Émile", LastName: "Zola", Classroom: "5A"},
	})
	require.NoError(t, err)

	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:        logger,
		Storage:       app.Storage,
		RosterService: app.RosterService,
		HubManager:    app.HubManager,
	})

	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/metrics", app.Metrics.Handler())

	cfg := api.DefaultServerConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0
	cfg.ShutdownTimeout = 5 * time.Second
	server := api.NewServer(mux, cfg, logger)
	require.NoError(t, server.Listen())

	// Start server
	go func() {
		if err := server.Serve(); err != nil {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + server.Addr()
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		server: server,
		addr:   serverURL,
		shutdown: func() {
			_ = server.Shutdown(context.Background())
			_ = app.Close()
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type playerResponse struct {
	ID              string   `json:"id"`
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	Classroom       string   `json:"classroom"`
	ValidatedLevels []string `json:"validated_levels"`
}

type studentListResponse struct {
	Students []playerResponse `json:"students"`
	Count    int              `json:"count"`
}

type progressResponse struct {
	PlayerID           string   `json:"player_id"`
	ValidatedLevels    []string `json:"validated_levels"`
	ValidatedQuestions []string `json:"validated_questions"`
}

type updateResponse struct {
	Updated bool `json:"updated"`
}

type classStatsResponse struct {
	Classroom     string `json:"classroom"`
	TotalStudents int    `json:"total_students"`
	ActiveToday   int    `json:"active_today"`
}

type resetAllResponse struct {
	Reset int `json:"reset"`
}

type healthResponse struct {
	Status string `json:"status"`
	Server string `json:"server"`
	Player string `json:"player"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, ts.addr, resp.Server)
	assert.Empty(t, resp.Player)
}

func TestCLI_LoginAndProgress(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Login with a spelling variant
	output, err := cli.run("login", "--first", "jean pierre", "--last", "MARTIN", "--classroom", "2de")
	require.NoError(t, err, output)

	var player playerResponse
	require.NoError(t, json.Unmarshal([]byte(output), &player))
	assert.Equal(t, "Jean-Pierre", player.FirstName)
	assert.NotEmpty(t, player.ID)

	// The player id is remembered
	saved, err := os.ReadFile(cli.playerFile)
	require.NoError(t, err)
	assert.Equal(t, player.ID, string(saved))

	// Record progress
	output, err = cli.run("progress", "add", "--kind", "question", "--value", "lvl1-1")
	require.NoError(t, err, output)
	var update updateResponse
	require.NoError(t, json.Unmarshal([]byte(output), &update))
	assert.True(t, update.Updated)

	output, err = cli.run("progress", "add", "--kind", "level", "--value", "lvl1")
	require.NoError(t, err, output)

	output, err = cli.run("progress", "show")
	require.NoError(t, err, output)
	var progress progressResponse
	require.NoError(t, json.Unmarshal([]byte(output), &progress))
	assert.Equal(t, player.ID, progress.PlayerID)
	assert.Equal(t, []string{"lvl1"}, progress.ValidatedLevels)
	assert.Equal(t, []string{"lvl1-1"}, progress.ValidatedQuestions)

	// Reset the chapter
	output, err = cli.run("progress", "reset-chapter", "--level", "lvl1")
	require.NoError(t, err, output)
	require.NoError(t, json.Unmarshal([]byte(output), &player))
	assert.Empty(t, player.ValidatedLevels)
}

func TestCLI_LoginUnknownStudent(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("login", "--first", "Victor", "--last", "Hugo", "--classroom", "5A")
	require.Error(t, err)
	assert.Contains(t, output, "STUDENT_NOT_FOUND")
}

func TestCLI_ProgressRequiresLogin(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("progress", "show")
	require.Error(t, err)
	assert.Contains(t, output, "no player selected")
}

func TestCLI_Logout(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("login", "--first", "Emile", "--last", "Zola", "--classroom", "5eA")
	require.NoError(t, err, output)

	output, err = cli.run("logout")
	require.NoError(t, err, output)

	_, err = os.Stat(cli.playerFile)
	assert.True(t, os.IsNotExist(err))
}

func TestCLI_Dashboard(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("students", "list", "--classroom", "2D")
	require.NoError(t, err, output)

	var list studentListResponse
	require.NoError(t, json.Unmarshal([]byte(output), &list))
	assert.Equal(t, 2, list.Count)
	assert.Equal(t, "Blanc", list.Students[0].LastName)

	output, err = cli.run("students", "list")
	require.NoError(t, err, output)
	require.NoError(t, json.Unmarshal([]byte(output), &list))
	assert.Equal(t, 3, list.Count)

	output, err = cli.run("login", "--first", "Anna", "--last", "Blanc", "--classroom", "2de")
	require.NoError(t, err, output)

	output, err = cli.run("students", "stats", "--classroom", "2C")
	require.NoError(t, err, output)
	var stats classStatsResponse
	require.NoError(t, json.Unmarshal([]byte(output), &stats))
	assert.Equal(t, "2", stats.Classroom)
	assert.Equal(t, 2, stats.TotalStudents)
	assert.Equal(t, 1, stats.ActiveToday)

	// reset-all needs confirmation
	_, err = cli.run("students", "reset-all")
	require.Error(t, err)

	output, err = cli.run("students", "reset-all", "--yes")
	require.NoError(t, err, output)
	var reset resetAllResponse
	require.NoError(t, json.Unmarshal([]byte(output), &reset))
	assert.Equal(t, 3, reset.Reset)
}

func TestCLI_Metrics(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)
	_, _ = cli.run("login", "--first", "Anna", "--last", "Blanc", "--classroom", "2C")

	resp, err := http.Get(ts.addr + "/metrics")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

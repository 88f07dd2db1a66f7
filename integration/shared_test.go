//go:build basic || database

package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// apiTimeLayout mirrors the minute-precision format of the upstream API.
const apiTimeLayout = "2006-01-02T15:04Z"

var (
	// sharedBinaryPath holds the path to a shared gridcarbon binary built once for all tests.
	sharedBinaryPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getBinary returns the path to the gridcarbon binary, building it once if needed.
func getBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "gridcarbon-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		binaryPath := filepath.Join(tempDir, "gridcarbon")
		buildCmd := exec.Command("go", "build", "-o", binaryPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		if err := buildCmd.Run(); err != nil {
			panic(fmt.Sprintf("failed to build gridcarbon: %v", err))
		}

		sharedBinaryPath = binaryPath
	})

	return sharedBinaryPath
}

// stubAverage is the deterministic daily average served for a date.
func stubAverage(d time.Time) float64 {
	return float64(50 + (d.YearDay()*7)%250)
}

// newStubUpstream serves the stats endpoint with one record per requested day.
// The returned counter tracks how many stats requests were served.
func newStubUpstream(t *testing.T) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var hits atomic.Int64

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/intensity/stats/"), "/")
		if len(parts) != 3 {
			http.NotFound(w, r)
			return
		}
		from, err := time.Parse(apiTimeLayout, parts[0])
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		to, err := time.Parse(apiTimeLayout, parts[1])
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		hits.Add(1)

		var data []map[string]any
		for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
			avg := stubAverage(d)
			data = append(data, map[string]any{
				"from": d.Format(apiTimeLayout),
				"to":   d.AddDate(0, 0, 1).Format(apiTimeLayout),
				"intensity": map[string]any{
					"max":     avg + 20,
					"average": avg,
					"min":     avg - 20,
					"index":   "moderate",
				},
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
	}))
	t.Cleanup(srv.Close)

	return srv, &hits
}

// runCommand runs the binary from the project root with extra environment variables.
func runCommand(t *testing.T, env []string, args ...string) ([]byte, error) {
	t.Helper()
	cmd := exec.Command(getBinary(), args...)
	cmd.Dir = "../" // Run from project root
	cmd.Env = append(os.Environ(), env...)
	output, err := cmd.Output()
	if err != nil {
		stderr := ""
		if exitErr, ok := err.(*exec.ExitError); ok {
			stderr = string(exitErr.Stderr)
		}
		t.Logf("Command failed: %s\nOutput: %s\nStderr: %s", cmd.String(), string(output), stderr)
	}
	return output, err
}

package teamintegrationtests

import (
	"log"
	"sync"
	"testing"

	"github.com/Black-And-White-Club/quiz-host/integration_tests/testutils"
)

var (
	testEnv     *testutils.TestEnvironment
	testEnvErr  error
	testEnvOnce sync.Once
)

// GetTestEnv returns the package-wide environment, starting it on first use.
func GetTestEnv(t *testing.T) *testutils.TestEnvironment {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test skipped in short mode")
	}

	testEnvOnce.Do(func() {
		log.Println("Initializing team test environment...")
		testEnv, testEnvErr = testutils.NewTestEnvironment(t)
	})

	if testEnvErr != nil {
		t.Fatalf("Team test environment initialization failed: %v", testEnvErr)
	}
	if testEnv == nil {
		t.Fatalf("Team test environment not initialized")
	}

	testEnv.Reset(t)
	return testEnv
}

package migrate

import (
	"context"
	"fmt"
	"io"
	"os/user"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// testStart is the fake clock time used across the tests.
var testStart = time.Date(2024, 3, 9, 14, 30, 5, 0, time.UTC)

// setupFS swaps the package filesystem for an in-memory one for the
// duration of the test.
func setupFS(t *testing.T) afero.Fs {
	t.Helper()
	oldFs := fs
	fs = afero.NewMemMapFs()
	t.Cleanup(func() { fs = oldFs })
	return fs
}

// setupAccounts stubs account lookup so tests don't depend on the host's
// user database. Every account in names exists; everything else doesn't.
func setupAccounts(t *testing.T, names ...string) {
	t.Helper()
	oldLookup := lookupAccount
	lookupAccount = func(name string) (*user.User, error) {
		for i, known := range names {
			if name == known {
				return &user.User{
					Username: name,
					Uid:      fmt.Sprintf("%d", 501+i),
					Gid:      "20",
				}, nil
			}
		}
		return nil, fmt.Errorf("user: unknown user %s", name)
	}
	t.Cleanup(func() { lookupAccount = oldLookup })
}

// discardLogger returns a logger whose output goes nowhere.
func discardLogger() *log.Logger {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testClock() clockwork.Clock {
	return clockwork.NewFakeClockAt(testStart)
}

func newTestRunLog(t *testing.T) *RunLog {
	t.Helper()
	rl, err := NewRunLog("/var/log/homeshift", "alice", "bob", testClock())
	if err != nil {
		t.Fatalf("create run log: %v", err)
	}
	t.Cleanup(func() { rl.Close() })
	return rl
}

// fakeSyncer records every Copy and Compare call. Copy can be made to fail
// per category; Compare emits canned itemized output per category.
type fakeSyncer struct {
	copied        []SyncTask
	compared      []SyncTask
	copyErr       map[Category]error
	compareOutput map[Category]string
}

func (f *fakeSyncer) Copy(_ context.Context, task SyncTask, out io.Writer) error {
	f.copied = append(f.copied, task)
	if err := f.copyErr[task.Category]; err != nil {
		return err
	}
	fmt.Fprintf(out, "sent 1 bytes  received 1 bytes\n")
	return nil
}

func (f *fakeSyncer) Compare(_ context.Context, task SyncTask, out io.Writer) error {
	f.compared = append(f.compared, task)
	if output, ok := f.compareOutput[task.Category]; ok {
		fmt.Fprint(out, output)
	}
	return nil
}

// mkdirs creates source category directories with one marker file each.
func mkdirs(t *testing.T, home string, categories ...Category) {
	t.Helper()
	for _, category := range categories {
		dir := category.Path(home)
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
		if err := afero.WriteFile(fs, dir+"/marker.txt", []byte("x"), 0o644); err != nil {
			t.Fatalf("write marker in %s: %v", dir, err)
		}
	}
}

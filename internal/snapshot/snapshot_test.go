package snapshot

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dvloznov/finance-twin/internal/finance"
	"github.com/dvloznov/finance-twin/internal/notify"
	"github.com/dvloznov/finance-twin/internal/seed"
	"github.com/dvloznov/finance-twin/internal/session"
)

func seedService() *finance.Service {
	return finance.NewService(finance.DefaultRepositoryFactory, notify.NewRecorder(), zerolog.Nop())
}

func TestTake_CapturesAllCollections(t *testing.T) {
	svc := seedService()
	user := &session.User{ID: "user-1", Email: "u@example.com"}

	snap := Take(svc, user)

	if len(snap.Transactions) != len(seed.Transactions()) {
		t.Errorf("transactions = %d, want %d", len(snap.Transactions), len(seed.Transactions()))
	}
	if len(snap.Accounts) != len(seed.Accounts()) {
		t.Errorf("accounts = %d, want %d", len(snap.Accounts), len(seed.Accounts()))
	}
	if len(snap.Scenarios) != 3 {
		t.Errorf("scenarios = %d, want 3", len(snap.Scenarios))
	}
	if snap.TotalBalance != svc.TotalBalance() {
		t.Errorf("TotalBalance = %v, want %v", snap.TotalBalance, svc.TotalBalance())
	}
	if snap.User == nil || snap.User.ID != "user-1" {
		t.Errorf("User = %+v", snap.User)
	}
	if snap.TakenAt.IsZero() {
		t.Error("TakenAt not stamped")
	}
}

func TestSnapshotEncode_RoundTrips(t *testing.T) {
	snap := Take(seedService(), nil)

	data, err := snap.Encode()
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	var decoded Snapshot
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decoding snapshot: %v", err)
	}
	if len(decoded.Transactions) != len(snap.Transactions) {
		t.Errorf("decoded transactions = %d, want %d", len(decoded.Transactions), len(snap.Transactions))
	}
	if decoded.TotalBalance != snap.TotalBalance {
		t.Errorf("decoded TotalBalance = %v, want %v", decoded.TotalBalance, snap.TotalBalance)
	}
}

func TestObjectName_DatePartitioned(t *testing.T) {
	snap := Take(seedService(), nil)
	name := snap.ObjectName()

	if !strings.HasPrefix(name, "snapshots/") || !strings.HasSuffix(name, ".json") {
		t.Errorf("ObjectName() = %q", name)
	}
}

func TestExport_FileWriter(t *testing.T) {
	dir := t.TempDir()
	snap := Take(seedService(), nil)

	name, err := Export(context.Background(), &FileWriter{Dir: dir}, snap)
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
	if err != nil {
		t.Fatalf("reading exported file: %v", err)
	}

	var decoded Snapshot
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("exported file is not valid JSON: %v", err)
	}
	if len(decoded.Accounts) != len(seed.Accounts()) {
		t.Errorf("exported accounts = %d, want %d", len(decoded.Accounts), len(seed.Accounts()))
	}
}

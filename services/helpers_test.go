package services

import (
	"context"
	"sync"
	"testing"

	"gorm.io/gorm"

	"hrms/audit"
	"hrms/models"
	"hrms/tenant"
	"hrms/testutil"
)

type recordedEntry struct {
	Action string
	UserID uint
	OrgID  uint
	Meta   audit.Meta
}

type fakeRecorder struct {
	mu      sync.Mutex
	entries []recordedEntry
}

func (f *fakeRecorder) Record(_ context.Context, action string, userID, orgID uint, meta audit.Meta) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, recordedEntry{Action: action, UserID: userID, OrgID: orgID, Meta: meta})
}

func (f *fakeRecorder) actions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, e.Action)
	}
	return out
}

func (f *fakeRecorder) last() recordedEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entries[len(f.entries)-1]
}

// fixture holds two organisations with one user each.
type fixture struct {
	db    *gorm.DB
	orgA  models.Organisation
	userA models.User
	orgB  models.Organisation
	userB models.User
	ctxA  context.Context
	ctxB  context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	orgA, userA := testutil.CreateOrganisation(t, db, "Acme", "admin@acme.test")
	orgB, userB := testutil.CreateOrganisation(t, db, "Globex", "admin@globex.test")

	return &fixture{
		db:    db,
		orgA:  orgA,
		userA: userA,
		orgB:  orgB,
		userB: userB,
		ctxA:  tenant.WithContext(context.Background(), tenant.Context{UserID: userA.ID, OrgID: orgA.ID}),
		ctxB:  tenant.WithContext(context.Background(), tenant.Context{UserID: userB.ID, OrgID: orgB.ID}),
	}
}

func strPtr(s string) *string {
	return &s
}

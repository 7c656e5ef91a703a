package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/malund/ociwho/internal/identity"
	"github.com/malund/ociwho/internal/namefilter"
)

func TestListUsers_AcrossRealms(t *testing.T) {
	tenancy := newFakeTenancy()
	tenancy.legacyUsers = []identity.User{
		{ID: "ocid1.user.oc1..alice", Name: "alice", Email: "alice@example.com"},
	}
	tenancy.domains = []identity.Domain{
		{ID: "d1", DisplayName: "Default", URL: "https://idcs-1.example.com", State: identity.StateActive},
	}
	opener := newFakeOpener()
	client := newFakeDomainClient()
	client.userList = []identity.User{
		{ID: "u1", Name: "bob", DisplayName: "Bob B", Email: "bob@example.com", State: "Active"},
		{ID: "u2", Name: "carol", State: "Inactive"},
	}
	opener.clients["d1"] = client
	analyzer := NewAnalyzer(tenancy, opener, nil)

	rep, err := analyzer.ListUsers(context.Background(), "")
	if err != nil {
		t.Fatalf("ListUsers error: %v", err)
	}

	if len(rep.Domains) != 2 {
		t.Fatalf("got %d domain blocks, want 2", len(rep.Domains))
	}
	if rep.Domains[0].Domain.Name != "Root Tenancy (Legacy IAM)" {
		t.Errorf("first block = %q, want the synthetic legacy entry", rep.Domains[0].Domain.Name)
	}
	if rep.Summary.TotalUsers != 3 {
		t.Errorf("TotalUsers = %d, want 3", rep.Summary.TotalUsers)
	}
}

func TestListUsers_QueryFiltersLegacyClientSide(t *testing.T) {
	tenancy := newFakeTenancy()
	tenancy.legacyUsers = []identity.User{
		{ID: "u1", Name: "alice", Email: "alice@example.com"},
		{ID: "u2", Name: "bob", Email: "bob@other.example"},
		{ID: "u3", Name: "ops-bot", Email: "alice-ops@example.com"},
	}
	analyzer := NewAnalyzer(tenancy, newFakeOpener(), nil)

	rep, err := analyzer.ListUsers(context.Background(), "ALICE")
	if err != nil {
		t.Fatalf("ListUsers error: %v", err)
	}

	users := rep.Domains[0].Users
	if len(users) != 2 {
		t.Fatalf("got %d users, want 2 (name and email matches)", len(users))
	}
	if users[0].Name != "alice" || users[1].Name != "ops-bot" {
		t.Errorf("unexpected users: %+v", users)
	}
	if rep.Summary.TotalUsers != 2 {
		t.Errorf("filtered summary TotalUsers = %d, want 2", rep.Summary.TotalUsers)
	}
}

func TestListUsers_FailingDomainDegrades(t *testing.T) {
	tenancy := newFakeTenancy()
	tenancy.domains = []identity.Domain{
		{ID: "d1", DisplayName: "Locked", State: identity.StateActive},
		{ID: "d2", DisplayName: "Open", State: identity.StateActive},
	}
	opener := newFakeOpener()
	locked := newFakeDomainClient()
	locked.listErr = &identity.RequestError{Op: "ListUsers", StatusCode: 404, Code: identity.CodeNotAuthorizedOrNotFound}
	opener.clients["d1"] = locked
	open := newFakeDomainClient()
	open.userList = []identity.User{{ID: "u1", Name: "dave", State: "Active"}}
	opener.clients["d2"] = open
	analyzer := NewAnalyzer(tenancy, opener, nil)

	rep, err := analyzer.ListUsers(context.Background(), "")
	if err != nil {
		t.Fatalf("a failing domain must not abort the report: %v", err)
	}

	lockedIdx, openIdx := -1, -1
	for i, block := range rep.Domains {
		switch block.Domain.Name {
		case "Locked":
			lockedIdx = i
		case "Open":
			openIdx = i
		}
	}
	if lockedIdx < 0 || openIdx < 0 {
		t.Fatalf("missing domain blocks: %+v", rep.Domains)
	}
	if rep.Domains[lockedIdx].Warning != "no access to list users in this domain" {
		t.Errorf("warning = %q", rep.Domains[lockedIdx].Warning)
	}
	if len(rep.Domains[lockedIdx].Users) != 0 {
		t.Error("locked domain should report zero users")
	}
	if len(rep.Domains[openIdx].Users) != 1 {
		t.Error("open domain users missing")
	}
}

func TestListUsers_DomainFilter(t *testing.T) {
	tenancy := newFakeTenancy()
	tenancy.domains = []identity.Domain{
		{ID: "d1", DisplayName: "Default", State: identity.StateActive},
		{ID: "d2", DisplayName: "Sandbox", State: identity.StateActive},
	}
	opener := newFakeOpener()
	opener.clients["d2"] = newFakeDomainClient()
	analyzer := NewAnalyzer(tenancy, opener, nil)
	analyzer.DomainFilter = namefilter.New([]string{"Sandbox"}, nil)

	rep, err := analyzer.ListUsers(context.Background(), "")
	if err != nil {
		t.Fatalf("ListUsers error: %v", err)
	}
	if len(rep.Domains) != 1 || rep.Domains[0].Domain.Name != "Sandbox" {
		t.Errorf("domain filter not applied: %+v", rep.Domains)
	}
}

func TestListUsers_PausesAfterLegacyScan(t *testing.T) {
	tenancy := newFakeTenancy()
	tenancy.legacyUsers = []identity.User{
		{ID: "ocid1.user.oc1..alice", Name: "alice"},
	}
	tenancy.domains = []identity.Domain{
		{ID: "d1", DisplayName: "Default", State: identity.StateActive},
	}
	opener := newFakeOpener()
	opener.clients["d1"] = newFakeDomainClient()
	analyzer := NewAnalyzer(tenancy, opener, nil)
	analyzer.DomainDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The first identity domain follows the legacy scan, so the pacing
	// pause must run before it and observe the cancellation.
	_, err := analyzer.ListUsers(ctx, "")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("ListUsers error = %v, want context.Canceled from the pause", err)
	}
}

func TestListWarning(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"unauthorized", &identity.RequestError{StatusCode: 403}, "no access to list users in this domain"},
		{"auth code on 404", &identity.RequestError{StatusCode: 404, Code: identity.CodeNotAuthorizedOrNotFound}, "no access to list users in this domain"},
		{"plain 404", &identity.RequestError{StatusCode: 404}, "domain endpoint not accessible"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := listWarning(tt.err); got != tt.want {
				t.Errorf("listWarning = %q, want %q", got, tt.want)
			}
		})
	}
}

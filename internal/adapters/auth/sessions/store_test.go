package sessions

import (
	"context"
	"testing"
	"time"

	"barangay-pet-registry/internal/ports/auth"
)

func TestStore_IssueVerifyRevoke(t *testing.T) {
	s := New(time.Hour)
	ctx := context.Background()

	token, err := s.Issue(ctx, auth.Claims{UserID: "u1", BarangayID: "bgy-1", Role: auth.RoleStaff})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims, err := s.Verify(ctx, token)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.BarangayID != "bgy-1" || claims.Role != auth.RoleStaff {
		t.Fatalf("unexpected claims %#v", claims)
	}

	if err := s.Revoke(ctx, token); err != nil {
		t.Fatalf("Revoke error: %v", err)
	}
	if _, err := s.Verify(ctx, token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken after revoke, got %v", err)
	}
}

func TestStore_ExpiredTokenRejected(t *testing.T) {
	s := New(time.Hour)
	ctx := context.Background()

	t0 := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return t0 }

	token, err := s.Issue(ctx, auth.Claims{BarangayID: "bgy-1", Role: auth.RoleGuest})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	s.now = func() time.Time { return t0.Add(2 * time.Hour) }
	if _, err := s.Verify(ctx, token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired session, got %v", err)
	}
}

func TestStore_IssueRequiresBarangay(t *testing.T) {
	s := New(time.Hour)
	if _, err := s.Issue(context.Background(), auth.Claims{UserID: "u1"}); err == nil {
		t.Fatalf("expected error for claims without barangay id")
	}
}

package api

import (
	"context"
	"net/http"
	"testing"

	"storerate/internal/entity"
)

func (s *testServer) ownerUser(t *testing.T, store *entity.DbStore) *entity.DbUser {
	t.Helper()
	owner, err := s.repo.GetUserByID(context.Background(), store.OwnerID)
	if err != nil {
		t.Fatalf("lookup owner: %v", err)
	}
	return owner
}

func TestOwnerDashboard(t *testing.T) {
	s := newTestServer(t)
	store := s.createStore(t, "Corner Cafe", "owner-cafe@example.com")
	owner := s.ownerUser(t, store)
	alice := s.createUser(t, "Alice", "alice@example.com", "strong-password", entity.UserRoleNormalUser)
	bob := s.createUser(t, "Bob", "bob@example.com", "strong-password", entity.UserRoleNormalUser)
	s.rate(t, alice, store.ID, 4, http.StatusCreated)
	s.rate(t, bob, store.ID, 3, http.StatusCreated)

	w := s.do(t, http.MethodGet, "/api/store/dashboard", nil, s.sessionCookie(t, owner))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp entity.OwnerDashboardResponse
	decodeBody(t, w, &resp)
	if resp.Data.Stats.AverageRating != 3.5 || resp.Data.Stats.TotalRatings != 2 {
		t.Fatalf("unexpected stats %+v", resp.Data.Stats)
	}
	if len(resp.Data.Ratings) != 2 {
		t.Fatalf("ratings = %d, want 2", len(resp.Data.Ratings))
	}
	for _, item := range resp.Data.Ratings {
		if item.UserName == "" || item.UserEmail == "" {
			t.Fatalf("rating item missing user identity %+v", item)
		}
	}
}

func TestOwnerDashboardEmptyStoreReportsZero(t *testing.T) {
	s := newTestServer(t)
	store := s.createStore(t, "Quiet Cafe", "owner-quiet@example.com")
	owner := s.ownerUser(t, store)

	w := s.do(t, http.MethodGet, "/api/store/dashboard", nil, s.sessionCookie(t, owner))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp entity.OwnerDashboardResponse
	decodeBody(t, w, &resp)
	if resp.Data.Stats.AverageRating != 0 || resp.Data.Stats.TotalRatings != 0 {
		t.Fatalf("empty store stats %+v, want zeros", resp.Data.Stats)
	}
	if len(resp.Data.Ratings) != 0 {
		t.Fatal("empty store must list no ratings")
	}
}

func TestOwnerWithoutStoreGets404(t *testing.T) {
	s := newTestServer(t)
	orphan := s.createUser(t, "Olive", "olive@example.com", "strong-password", entity.UserRoleStoreOwner)

	w := s.do(t, http.MethodGet, "/api/store/dashboard", nil, s.sessionCookie(t, orphan))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	var apiErr APIError
	decodeBody(t, w, &apiErr)
	if apiErr.Code != ErrCodeStoreNotFound {
		t.Fatalf("code = %q, want %q", apiErr.Code, ErrCodeStoreNotFound)
	}
}

func TestOwnerRoutesRejectShoppers(t *testing.T) {
	s := newTestServer(t)
	shopper := s.createUser(t, "Alice", "alice@example.com", "strong-password", entity.UserRoleNormalUser)

	w := s.do(t, http.MethodGet, "/api/store/dashboard", nil, s.sessionCookie(t, shopper))
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

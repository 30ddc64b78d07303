package api

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"storerate/internal/entity"
)

func TestRateStoreBoundaries(t *testing.T) {
	s := newTestServer(t)
	user := s.createUser(t, "Alice", "alice@example.com", "strong-password", entity.UserRoleNormalUser)
	store := s.createStore(t, "Corner Cafe", "owner-cafe@example.com")

	for _, value := range []int{0, 6, -1} {
		w := s.do(t, http.MethodPost, fmt.Sprintf("/api/user/stores/%d/rate", store.ID),
			entity.RateStoreRequest{Rating: value}, s.sessionCookie(t, user))
		if w.Code != http.StatusBadRequest {
			t.Errorf("rating %d: status = %d, want 400", value, w.Code)
		}
	}

	s.rate(t, user, store.ID, 1, http.StatusCreated)
	s.rate(t, user, store.ID, 5, http.StatusOK)
}

func TestRateStoreCreateThenUpdate(t *testing.T) {
	s := newTestServer(t)
	user := s.createUser(t, "Alice", "alice@example.com", "strong-password", entity.UserRoleNormalUser)
	store := s.createStore(t, "Corner Cafe", "owner-cafe@example.com")

	s.rate(t, user, store.ID, 4, http.StatusCreated)
	s.rate(t, user, store.ID, 2, http.StatusOK)

	w := s.do(t, http.MethodGet, "/api/user/my-ratings", nil, s.sessionCookie(t, user))
	var resp entity.MyRatingsResponse
	decodeBody(t, w, &resp)
	if resp.Count != 1 {
		t.Fatalf("count = %d, want 1", resp.Count)
	}
	if resp.Ratings[0].Rating != 2 {
		t.Fatalf("rating = %d, want 2 after update", resp.Ratings[0].Rating)
	}
	if resp.Ratings[0].StoreName != "Corner Cafe" {
		t.Fatalf("store name = %q", resp.Ratings[0].StoreName)
	}
}

func TestRateMissingStore(t *testing.T) {
	s := newTestServer(t)
	user := s.createUser(t, "Alice", "alice@example.com", "strong-password", entity.UserRoleNormalUser)

	w := s.do(t, http.MethodPost, "/api/user/stores/999/rate",
		entity.RateStoreRequest{Rating: 3}, s.sessionCookie(t, user))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	var apiErr APIError
	decodeBody(t, w, &apiErr)
	if apiErr.Code != ErrCodeStoreNotFound {
		t.Fatalf("code = %q, want %q", apiErr.Code, ErrCodeStoreNotFound)
	}
}

func TestBrowseStoresAggregatesAndOverlay(t *testing.T) {
	s := newTestServer(t)
	alice := s.createUser(t, "Alice", "alice@example.com", "strong-password", entity.UserRoleNormalUser)
	bob := s.createUser(t, "Bob", "bob@example.com", "strong-password", entity.UserRoleNormalUser)
	carol := s.createUser(t, "Carol", "carol@example.com", "strong-password", entity.UserRoleNormalUser)
	rated := s.createStore(t, "Rated Cafe", "owner-rated@example.com")
	unrated := s.createStore(t, "Quiet Cafe", "owner-quiet@example.com")

	s.rate(t, alice, rated.ID, 3, http.StatusCreated)
	s.rate(t, bob, rated.ID, 5, http.StatusCreated)
	s.rate(t, carol, rated.ID, 4, http.StatusCreated)

	w := s.do(t, http.MethodGet, "/api/user/stores", nil, s.sessionCookie(t, alice))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp entity.BrowseStoresResponse
	decodeBody(t, w, &resp)
	if resp.Total != 2 || len(resp.Stores) != 2 {
		t.Fatalf("total = %d, stores = %d, want 2 each", resp.Total, len(resp.Stores))
	}

	byID := map[uint]entity.BrowseStoreItem{}
	for _, item := range resp.Stores {
		byID[item.ID] = item
	}

	got := byID[rated.ID]
	if got.AverageRating == nil || *got.AverageRating != 4 {
		t.Fatalf("average = %v, want 4", got.AverageRating)
	}
	if got.TotalRatings != 3 {
		t.Fatalf("total ratings = %d, want 3", got.TotalRatings)
	}
	if got.UserRating == nil || *got.UserRating != 3 {
		t.Fatalf("user rating overlay = %v, want 3", got.UserRating)
	}

	quiet := byID[unrated.ID]
	if quiet.AverageRating != nil {
		t.Fatalf("unrated store average = %v, want null", *quiet.AverageRating)
	}
	if quiet.UserRating != nil {
		t.Fatal("unrated store must carry no user overlay")
	}
	if quiet.OwnerName != "Quiet Cafe Owner" {
		t.Fatalf("owner name = %q", quiet.OwnerName)
	}
}

func TestListingAveragesRoundToTwoDecimals(t *testing.T) {
	s := newTestServer(t)
	admin := s.createUser(t, "Root", "root@example.com", "strong-password", entity.UserRoleAdmin)
	alice := s.createUser(t, "Alice", "alice@example.com", "strong-password", entity.UserRoleNormalUser)
	bob := s.createUser(t, "Bob", "bob@example.com", "strong-password", entity.UserRoleNormalUser)
	carol := s.createUser(t, "Carol", "carol@example.com", "strong-password", entity.UserRoleNormalUser)
	store := s.createStore(t, "Corner Cafe", "owner-cafe@example.com")

	// 3+4+4 averages to a non-terminating 3.666..., which must serialize
	// as 3.67 everywhere.
	s.rate(t, alice, store.ID, 3, http.StatusCreated)
	s.rate(t, bob, store.ID, 4, http.StatusCreated)
	s.rate(t, carol, store.ID, 4, http.StatusCreated)

	w := s.do(t, http.MethodGet, "/api/user/stores", nil, s.sessionCookie(t, alice))
	var browse entity.BrowseStoresResponse
	decodeBody(t, w, &browse)
	if browse.Stores[0].AverageRating == nil || *browse.Stores[0].AverageRating != 3.67 {
		t.Fatalf("browse average = %v, want 3.67", browse.Stores[0].AverageRating)
	}
	if strings.Contains(w.Body.String(), "3.666") {
		t.Fatal("browse body must not carry an unrounded average")
	}

	w = s.do(t, http.MethodGet, "/api/admin/stores", nil, s.sessionCookie(t, admin))
	var listing entity.StoreListResponse
	decodeBody(t, w, &listing)
	if listing.Stores[0].AverageRating == nil || *listing.Stores[0].AverageRating != 3.67 {
		t.Fatalf("admin listing average = %v, want 3.67", listing.Stores[0].AverageRating)
	}
}

func TestBrowseStoresKeywordFilter(t *testing.T) {
	s := newTestServer(t)
	user := s.createUser(t, "Alice", "alice@example.com", "strong-password", entity.UserRoleNormalUser)
	s.createStore(t, "Harbor Coffee", "owner-harbor@example.com")
	s.createStore(t, "Hill Bakery", "owner-hill@example.com")

	w := s.do(t, http.MethodGet, "/api/user/stores?q=harbor", nil, s.sessionCookie(t, user))
	var resp entity.BrowseStoresResponse
	decodeBody(t, w, &resp)
	if resp.Total != 1 || len(resp.Stores) != 1 || resp.Stores[0].Name != "Harbor Coffee" {
		t.Fatalf("unexpected keyword result %+v", resp)
	}
}

func TestDeleteRatingNotOwned(t *testing.T) {
	s := newTestServer(t)
	alice := s.createUser(t, "Alice", "alice@example.com", "strong-password", entity.UserRoleNormalUser)
	bob := s.createUser(t, "Bob", "bob@example.com", "strong-password", entity.UserRoleNormalUser)
	store := s.createStore(t, "Corner Cafe", "owner-cafe@example.com")

	s.rate(t, alice, store.ID, 4, http.StatusCreated)

	w := s.do(t, http.MethodGet, "/api/user/my-ratings", nil, s.sessionCookie(t, alice))
	var mine entity.MyRatingsResponse
	decodeBody(t, w, &mine)
	ratingID := mine.Ratings[0].ID

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/api/user/ratings/%d", ratingID), nil, s.sessionCookie(t, bob))
	if w.Code != http.StatusNotFound {
		t.Fatalf("delete foreign rating: status = %d, want 404", w.Code)
	}

	w = s.do(t, http.MethodGet, "/api/user/my-ratings", nil, s.sessionCookie(t, alice))
	decodeBody(t, w, &mine)
	if mine.Count != 1 {
		t.Fatal("foreign delete must leave the rating in place")
	}

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/api/user/ratings/%d", ratingID), nil, s.sessionCookie(t, alice))
	if w.Code != http.StatusOK {
		t.Fatalf("delete own rating: status = %d, body %s", w.Code, w.Body.String())
	}
	w = s.do(t, http.MethodGet, "/api/user/my-ratings", nil, s.sessionCookie(t, alice))
	decodeBody(t, w, &mine)
	if mine.Count != 0 {
		t.Fatalf("count = %d after delete, want 0", mine.Count)
	}
}

func TestUserRoutesRejectOtherRoles(t *testing.T) {
	s := newTestServer(t)
	admin := s.createUser(t, "Root", "root@example.com", "strong-password", entity.UserRoleAdmin)

	w := s.do(t, http.MethodGet, "/api/user/stores", nil, s.sessionCookie(t, admin))
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	w = s.do(t, http.MethodGet, "/api/user/stores", nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if r.Header.Get("X-Request-Id") == "" {
			t.Error("missing X-Request-Id header")
		}

		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Email != "author@example.com" {
			t.Errorf("unexpected email: %s", req.Email)
		}

		writeEnvelope(w, http.StatusOK, LoginResult{
			AccessToken:  "access-1",
			RefreshToken: "refresh-1",
			User:         User{ID: "user-1", Email: req.Email, Role: RoleAuthor},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	result, err := client.Login(context.Background(), "author@example.com", "secret")
	require.NoError(t, err)

	assert.Equal(t, "access-1", result.AccessToken)
	assert.Equal(t, "refresh-1", result.RefreshToken)
	assert.Equal(t, "user-1", result.User.ID)
}

func TestLoginRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "invalid credentials",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Login(context.Background(), "author@example.com", "wrong")
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
	assert.Contains(t, se.Message, "invalid credentials")
}

func TestMyProfileNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusNotFound, nil)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	profile, err := client.MyProfile(context.Background())

	assert.Nil(t, profile)
	assert.ErrorIs(t, err, ErrNoProfile)
}

func TestMyProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, AuthorProfile{
			ID:      "profile-1",
			PenName: "N. K. Writer",
			Status:  AuthorStatusApproved,
			Balance: 1250.50,
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	profile, err := client.MyProfile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, AuthorStatusApproved, profile.Status)
	assert.Equal(t, "N. K. Writer", profile.PenName)
}

func TestMyEarningsDecodesStringBalance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": {
				"balance": "3400.75",
				"transactions": [
					{"id": "tx-1", "type": "SALE", "amount": 12.5}
				]
			}
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	earnings, err := client.MyEarnings(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 3400.75, earnings.Balance, 0.001)
	require.Len(t, earnings.Transactions, 1)
	assert.Equal(t, TransactionSale, earnings.Transactions[0].Type)
}

func TestMyEarningsRejectsUnparseableBalance(t *testing.T) {
	// 1e999 survives JSON number validation but overflows float64; the
	// client must report it instead of handing back a zero balance.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": {"balance": "1e999", "transactions": []}
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	earnings, err := client.MyEarnings(context.Background())
	require.Error(t, err)
	assert.Nil(t, earnings)
	assert.Contains(t, err.Error(), "balance")
}

func TestMyBooksPagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("page") != "2" || q.Get("limit") != "10" || q.Get("status") != "PUBLISHED" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": []Book{
				{ID: "book-1", Title: "First", Status: BookStatusPublished},
				{ID: "book-2", Title: "Second", Status: BookStatusPublished},
			},
			"pagination": Pagination{Page: 2, Limit: 10, Total: 12, TotalPages: 2},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	page, err := client.MyBooks(context.Background(), ListBooksParams{
		Page:   2,
		Limit:  10,
		Status: BookStatusPublished,
	})
	require.NoError(t, err)

	assert.Len(t, page.Items, 2)
	assert.Equal(t, 12, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 2, page.PageNumber)
}

func TestMyBook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": []Book{
				{ID: "book-1", Title: "First"},
				{ID: "book-2", Title: "Second"},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	book, err := client.MyBook(context.Background(), "book-2")
	require.NoError(t, err)
	assert.Equal(t, "Second", book.Title)

	_, err = client.MyBook(context.Background(), "book-404")
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestUnreadCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/notifications/unread-count" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		writeEnvelope(w, http.StatusOK, map[string]int{"count": 7})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	count, err := client.UnreadCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, count)
}

func TestUploadCover(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			t.Errorf("expected multipart upload, got %s", r.Header.Get("Content-Type"))
		}

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		if header.Filename != "cover.jpg" {
			t.Errorf("unexpected filename: %s", header.Filename)
		}

		writeEnvelope(w, http.StatusOK, map[string]string{"url": "https://cdn.quillforge.io/covers/abc.jpg"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	url, err := client.UploadCover(context.Background(), "cover.jpg", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.quillforge.io/covers/abc.jpg", url)
}

func TestIsStatus(t *testing.T) {
	err := &StatusError{StatusCode: http.StatusNotFound, Message: "missing"}

	assert.True(t, IsStatus(err, http.StatusNotFound))
	assert.False(t, IsStatus(err, http.StatusUnauthorized))
	assert.False(t, IsStatus(errors.New("other"), http.StatusNotFound))
	assert.False(t, IsStatus(nil, http.StatusNotFound))
}

func TestUserFullName(t *testing.T) {
	tests := []struct {
		name  string
		user  User
		want  string
	}{
		{"both names", User{FirstName: "Ada", LastName: "Lovelace"}, "Ada Lovelace"},
		{"first only", User{FirstName: "Ada"}, "Ada"},
		{"last only", User{LastName: "Lovelace"}, "Lovelace"},
		{"neither", User{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.FullName())
		})
	}
}

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yfcm/prayer-chain/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	email       string
	displayName string
	password    string
	location    string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		email:       fmt.Sprintf("watchman_%s@test.example", suffix),
		displayName: fmt.Sprintf("Watchman %s", suffix),
		password:    "testpassword123",
	}
}

// NewAdminBuilder creates a builder whose email matches the test config's
// organizer list.
func NewAdminBuilder() *UserBuilder {
	b := NewUserBuilder()
	b.email = AdminEmail
	b.displayName = "Event Organizer"
	return b
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithDisplayName sets the display name
func (b *UserBuilder) WithDisplayName(name string) *UserBuilder {
	b.displayName = name
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// WithLocation sets the location
func (b *UserBuilder) WithLocation(location string) *UserBuilder {
	b.location = location
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		DisplayName:  b.displayName,
		Location:     b.location,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	User struct {
		ID          string `json:"id"`
		Email       string `json:"email"`
		DisplayName string `json:"displayName"`
	} `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	IsAdmin      bool   `json:"isAdmin"`
}

// BuildAndAuthenticate creates a user via API and returns the user and access token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	reqBody := map[string]string{
		"email":       b.email,
		"password":    b.password,
		"displayName": b.displayName,
		"location":    b.location,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	userID, _ := uuid.Parse(authResp.User.ID)
	user := &domain.User{
		ID:          userID,
		Email:       authResp.User.Email,
		DisplayName: authResp.User.DisplayName,
	}

	return user, authResp.AccessToken
}

// WatchBuilder creates watch commitments directly in the database
type WatchBuilder struct {
	user    *domain.User
	hourIdx int
}

// NewWatchBuilder creates a new WatchBuilder with default values
func NewWatchBuilder() *WatchBuilder {
	return &WatchBuilder{hourIdx: 0}
}

// WithUser sets the committing user
func (b *WatchBuilder) WithUser(user *domain.User) *WatchBuilder {
	b.user = user
	return b
}

// WithHour sets the slot index
func (b *WatchBuilder) WithHour(hourIdx int) *WatchBuilder {
	b.hourIdx = hourIdx
	return b
}

// Build creates the commitment in the database
func (b *WatchBuilder) Build(t *testing.T, db *gorm.DB) *domain.WatchCommitment {
	t.Helper()

	if b.user == nil {
		user, _ := NewUserBuilder().Build(t, db)
		b.user = user
	}

	commitment := &domain.WatchCommitment{
		ID:        uuid.New(),
		UserID:    b.user.ID,
		UserName:  b.user.DisplayName,
		HourIdx:   b.hourIdx,
		CreatedAt: time.Now(),
	}

	if err := db.Create(commitment).Error; err != nil {
		t.Fatalf("failed to create watch commitment: %v", err)
	}

	return commitment
}

// PrayerBuilder creates prayer wall posts
type PrayerBuilder struct {
	user     *domain.User
	content  string
	amenedBy []uuid.UUID
}

// NewPrayerBuilder creates a new PrayerBuilder with default values
func NewPrayerBuilder() *PrayerBuilder {
	return &PrayerBuilder{
		content: "Praying for breakthrough over our city tonight.",
	}
}

// WithUser sets the author
func (b *PrayerBuilder) WithUser(user *domain.User) *PrayerBuilder {
	b.user = user
	return b
}

// WithContent sets the post body
func (b *PrayerBuilder) WithContent(content string) *PrayerBuilder {
	b.content = content
	return b
}

// WithAmens pre-populates the amen set
func (b *PrayerBuilder) WithAmens(userIDs ...uuid.UUID) *PrayerBuilder {
	b.amenedBy = userIDs
	return b
}

// Build creates the post in the database
func (b *PrayerBuilder) Build(t *testing.T, db *gorm.DB) *domain.PrayerPost {
	t.Helper()

	if b.user == nil {
		user, _ := NewUserBuilder().Build(t, db)
		b.user = user
	}

	amened := b.amenedBy
	if amened == nil {
		amened = []uuid.UUID{}
	}
	amenedJSON, _ := json.Marshal(amened)

	post := &domain.PrayerPost{
		ID:        uuid.New(),
		UserID:    b.user.ID,
		UserName:  b.user.DisplayName,
		Content:   b.content,
		AmenedBy:  datatypes.JSON(amenedJSON),
		CreatedAt: time.Now(),
	}

	if err := db.Create(post).Error; err != nil {
		t.Fatalf("failed to create prayer post: %v", err)
	}

	return post
}

// CreateAuthenticatedRequest creates an HTTP request with auth token
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

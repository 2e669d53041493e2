package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yfcm/prayer-chain/internal/domain"
	"github.com/yfcm/prayer-chain/internal/repository/postgres"
	"github.com/yfcm/prayer-chain/internal/service"
	"github.com/yfcm/prayer-chain/internal/testutil"
)

func newPrayerService(t *testing.T, testDB *testutil.TestDB) *service.PrayerService {
	t.Helper()
	repos := postgres.NewRepositories(testDB.DB)
	activity := service.NewActivityService(repos.Activity)
	return service.NewPrayerService(repos.Prayer, activity)
}

func TestPrayerService_Post(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	prayerService := newPrayerService(t, testDB)
	ctx := context.Background()

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "valid post",
			content: "Lord, cover the midnight watch.",
		},
		{
			name:    "whitespace is trimmed",
			content: "  amen to that  ",
		},
		{
			name:    "empty content",
			content: "",
			wantErr: domain.ErrEmptyContent,
		},
		{
			name:    "whitespace only",
			content: "   \n\t ",
			wantErr: domain.ErrEmptyContent,
		},
		{
			name:    "content too long",
			content: strings.Repeat("a", 501),
			wantErr: domain.ErrContentTooLong,
		},
		{
			// The limit counts characters, not bytes. 500 Hangul characters
			// are 1500 bytes and must still fit.
			name:    "multi-byte content at the limit",
			content: strings.Repeat("기", 500),
		},
		{
			name:    "multi-byte content over the limit",
			content: strings.Repeat("기", 501),
			wantErr: domain.ErrContentTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testDB.Truncate(t)
			user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

			post, err := prayerService.Post(ctx, user.ID, user.DisplayName, tt.content)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, strings.TrimSpace(tt.content), post.Content)
			assert.Equal(t, user.DisplayName, post.UserName)
			assert.Equal(t, 0, post.AmenCount())
		})
	}
}

func TestPrayerService_Amen(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	prayerService := newPrayerService(t, testDB)
	ctx := context.Background()

	t.Run("toggles on then off", func(t *testing.T) {
		testDB.Truncate(t)
		author, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		reader, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		post := testutil.NewPrayerBuilder().WithUser(author).Build(t, testDB.DB)

		updated, err := prayerService.Amen(ctx, post.ID, reader.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, updated.AmenCount())
		assert.True(t, updated.HasAmened(reader.ID))

		updated, err = prayerService.Amen(ctx, post.ID, reader.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, updated.AmenCount())
		assert.False(t, updated.HasAmened(reader.ID))
	})

	t.Run("count derives from the set", func(t *testing.T) {
		testDB.Truncate(t)
		author, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		post := testutil.NewPrayerBuilder().WithUser(author).Build(t, testDB.DB)

		readers := make([]uuid.UUID, 3)
		for i := range readers {
			u, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
			readers[i] = u.ID
			_, err := prayerService.Amen(ctx, post.ID, u.ID)
			require.NoError(t, err)
		}

		updated, err := prayerService.Amen(ctx, post.ID, readers[0])
		require.NoError(t, err)
		assert.Equal(t, 2, updated.AmenCount())
		assert.False(t, updated.HasAmened(readers[0]))
		assert.True(t, updated.HasAmened(readers[1]))
	})

	t.Run("unknown post", func(t *testing.T) {
		testDB.Truncate(t)
		reader, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

		_, err := prayerService.Amen(ctx, uuid.New(), reader.ID)
		assert.ErrorIs(t, err, domain.ErrPrayerNotFound)
	})
}

func TestPrayerService_List(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	prayerService := newPrayerService(t, testDB)
	ctx := context.Background()

	testDB.Truncate(t)
	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	for i := 0; i < 3; i++ {
		testutil.NewPrayerBuilder().WithUser(user).Build(t, testDB.DB)
	}

	posts, err := prayerService.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, posts, 2)
}

func TestPrayerService_Delete(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	prayerService := newPrayerService(t, testDB)
	ctx := context.Background()

	t.Run("removes the post", func(t *testing.T) {
		testDB.Truncate(t)
		user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		post := testutil.NewPrayerBuilder().WithUser(user).Build(t, testDB.DB)

		require.NoError(t, prayerService.Delete(ctx, post.ID))

		posts, err := prayerService.List(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, posts)
	})

	t.Run("unknown post", func(t *testing.T) {
		testDB.Truncate(t)
		err := prayerService.Delete(ctx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrPrayerNotFound)
	})
}

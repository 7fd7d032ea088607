package book

import (
	"context"
	"errors"
	"testing"

	"bookgraph/internal/validation"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	service := NewService(mockRepo, nil)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		b := &Book{Title: "Book 1", Author: "Author 1", Genres: []string{"Genre 1"}}
		mockRepo.EXPECT().Insert(gomock.Any(), b).Return("id-1", nil)

		id, err := service.Create(ctx, b)

		require.NoError(t, err)
		assert.Equal(t, "id-1", id)
		assert.Equal(t, "id-1", b.ID)
	})

	t.Run("nil genres stored as empty", func(t *testing.T) {
		b := &Book{Title: "Book 2", Author: "Author 2"}
		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, got *Book) (string, error) {
			assert.NotNil(t, got.Genres)
			assert.Empty(t, got.Genres)
			return "id-2", nil
		})

		_, err := service.Create(ctx, b)
		require.NoError(t, err)
	})

	t.Run("missing title is rejected before storage", func(t *testing.T) {
		_, err := service.Create(ctx, &Book{Author: "Author 1"})

		require.Error(t, err)
		assert.True(t, errors.Is(err, validation.ErrInvalid))
	})

	t.Run("blank author is rejected before storage", func(t *testing.T) {
		_, err := service.Create(ctx, &Book{Title: "Book 1", Author: "  "})

		assert.ErrorIs(t, err, validation.ErrInvalid)
	})

	t.Run("invalid utf-8 is rejected before storage", func(t *testing.T) {
		testCases := []*Book{
			{Title: "bad\xff", Author: "Author 1"},
			{Title: "Book 1", Author: "\xc3\x28"},
			{Title: "Book 1", Author: "Author 1", Genres: []string{"Genre 1", "\xff"}},
		}
		for _, b := range testCases {
			_, err := service.Create(ctx, b)

			assert.ErrorIs(t, err, validation.ErrInvalid, "%+q", b.Title+b.Author)
			assert.Empty(t, b.ID)
		}
	})

	t.Run("nil record is rejected as invalid", func(t *testing.T) {
		_, err := service.Create(ctx, nil)

		assert.ErrorIs(t, err, validation.ErrInvalid)
		var verr *validation.Error
		assert.True(t, errors.As(err, &verr))
	})

	t.Run("store failure", func(t *testing.T) {
		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return("", context.DeadlineExceeded)

		_, err := service.Create(ctx, &Book{Title: "Book 1", Author: "Author 1"})

		assert.ErrorIs(t, err, ErrDataUnavailable)
	})
}

func TestService_ListAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	service := NewService(mockRepo, nil)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		stored := []Book{
			{ID: "1", Title: "Book 1", Author: "Author 1", Genres: []string{"Genre 1"}},
			{ID: "2", Title: "Book 2", Author: "Author 2"},
		}
		mockRepo.EXPECT().ListAll(gomock.Any()).Return(stored, nil)

		books, err := service.ListAll(ctx)

		require.NoError(t, err)
		require.Len(t, books, 2)
		assert.Equal(t, []string{}, books[1].Genres)
	})

	t.Run("empty", func(t *testing.T) {
		mockRepo.EXPECT().ListAll(gomock.Any()).Return(nil, nil)

		books, err := service.ListAll(ctx)

		require.NoError(t, err)
		assert.Empty(t, books)
	})

	t.Run("error", func(t *testing.T) {
		mockRepo.EXPECT().ListAll(gomock.Any()).Return(nil, errors.New("connection refused"))

		books, err := service.ListAll(ctx)

		assert.Nil(t, books)
		assert.ErrorIs(t, err, ErrDataUnavailable)
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestService_Count(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	service := NewService(mockRepo, nil)

	mockRepo.EXPECT().Count(gomock.Any()).Return(3, nil)
	n, err := service.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	mockRepo.EXPECT().Count(gomock.Any()).Return(0, errors.New("closed"))
	_, err = service.Count(context.Background())
	assert.ErrorIs(t, err, ErrDataUnavailable)
}

package business_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/accounter-io/accounter/internal/business"
)

func TestService_Register(t *testing.T) {
	ownerID := uuid.New()
	bizID := uuid.New()

	type testCase struct {
		name      string
		setupMock func(m *business.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(m *business.MockRepository) {
				m.EXPECT().
					CreateClient(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *business.Client) error {
						assert.Equal(t, ownerID, c.OwnerID)
						assert.Equal(t, bizID, c.BusinessID)
						assert.Equal(t, "ACME Ltd", c.Name)
						c.ID = uuid.New()
						c.CreatedAt = time.Now()
						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "RepoError",
			setupMock: func(m *business.MockRepository) {
				m.EXPECT().
					CreateClient(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := business.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := business.NewService(repo)
			got, err := svc.Register(context.Background(), ownerID, bizID, "ACME Ltd")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			require.NotNil(t, got)
			assert.NotEmpty(t, got.ID)
		})
	}
}

func TestService_ClientByBusinessID(t *testing.T) {
	bizID := uuid.New()

	t.Run("Found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := business.NewMockRepository(ctrl)
		repo.EXPECT().
			FindClientByBusinessID(gomock.Any(), bizID).
			Return(&business.Client{ID: uuid.New(), BusinessID: bizID}, nil)

		got, err := business.NewService(repo).ClientByBusinessID(context.Background(), bizID)

		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, bizID, got.BusinessID)
	})

	t.Run("NotRegistered", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := business.NewMockRepository(ctrl)
		repo.EXPECT().
			FindClientByBusinessID(gomock.Any(), bizID).
			Return(nil, nil)

		got, err := business.NewService(repo).ClientByBusinessID(context.Background(), bizID)

		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

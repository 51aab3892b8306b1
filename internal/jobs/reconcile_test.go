package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconciler_Run(t *testing.T) {
	tests := []struct {
		name    string
		fixed   int64
		err     error
		wantErr bool
	}{
		{name: "consistent", fixed: 0},
		{name: "repaired", fixed: 3},
		{name: "db error", err: errors.New("db down"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := NewMockCounterReconciler(ctrl)
			repo.EXPECT().ReconcileCounters(gomock.Any()).
				DoAndReturn(func(ctx context.Context) (int64, error) {
					_, ok := ctx.Deadline()
					assert.True(t, ok)
					return tt.fixed, tt.err
				})

			fixed, err := NewReconciler(repo, "@every 1h").Run(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.fixed, fixed)
		})
	}
}

func TestReconciler_StartRunsOnSchedule(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := NewMockCounterReconciler(ctrl)

	called := make(chan struct{}, 4)
	repo.EXPECT().ReconcileCounters(gomock.Any()).
		DoAndReturn(func(context.Context) (int64, error) {
			called <- struct{}{}
			return 0, nil
		}).MinTimes(1)

	r := NewReconciler(repo, "@every 1s")
	require.NoError(t, r.Start(context.Background()))

	select {
	case <-called:
	case <-time.After(5 * time.Second):
		t.Fatal("reconciliation did not run")
	}
	r.Stop()
}

func TestReconciler_InvalidSchedule(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := NewReconciler(NewMockCounterReconciler(ctrl), "not a schedule")

	assert.Error(t, r.Start(context.Background()))
	r.Stop()
}

func TestReconciler_StopWithoutStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	NewReconciler(NewMockCounterReconciler(ctrl), "@every 1h").Stop()
}

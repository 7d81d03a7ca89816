package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		spec    string
		wantErr bool
	}{
		{"@every 6h", false},
		{"0 7 * * *", false},
		{"@daily", false},
		{"every six hours", true},
		{"* * *", true},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			err := Validate(tt.spec)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStart_InvalidSpec(t *testing.T) {
	s := New("nope", func(ctx context.Context) error { return nil })
	assert.Error(t, s.Start(context.Background()))
}

func TestStart_RunsImmediately(t *testing.T) {
	var runs atomic.Int32
	done := make(chan struct{}, 1)

	s := New("@every 1h", func(ctx context.Context) error {
		runs.Add(1)
		done <- struct{}{}
		return errors.New("logged, not fatal")
	})
	require.NoError(t, s.Start(context.Background()))

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()
	assert.Equal(t, int32(1), runs.Load())
}

package models

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundStore_GetMissing(t *testing.T) {
	rs := NewRoundStore()
	_, ok := rs.Get("none")
	assert.False(t, ok)
	assert.Equal(t, 0, rs.Active())
}

func TestRoundStore_UpdateCreatesAndClears(t *testing.T) {
	rs := NewRoundStore()
	entry := FallbackRocks()[0]

	require.NoError(t, rs.Update("ch", func(cur *RoundState) (*RoundState, error) {
		assert.Nil(t, cur)
		return NewRoundState(entry, entry.Images[0]), nil
	}))

	got, ok := rs.Get("ch")
	require.True(t, ok)
	assert.Equal(t, "Bornite", got.Entry.Name)
	assert.Equal(t, 1, rs.Active())

	require.NoError(t, rs.Update("ch", func(cur *RoundState) (*RoundState, error) {
		require.NotNil(t, cur)
		return nil, nil
	}))
	_, ok = rs.Get("ch")
	assert.False(t, ok)
	assert.Equal(t, 0, rs.Active())
}

func TestRoundStore_ErrorLeavesStateUntouched(t *testing.T) {
	rs := NewRoundStore()
	entry := FallbackRocks()[1]
	require.NoError(t, rs.Update("ch", func(_ *RoundState) (*RoundState, error) {
		return NewRoundState(entry, entry.Images[0]), nil
	}))

	boom := errors.New("boom")
	err := rs.Update("ch", func(_ *RoundState) (*RoundState, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	_, ok := rs.Get("ch")
	assert.True(t, ok)
	assert.Equal(t, 1, rs.Active())
}

func TestRoundStore_GetReturnsCopy(t *testing.T) {
	rs := NewRoundStore()
	entry := FallbackRocks()[2]
	require.NoError(t, rs.Update("ch", func(_ *RoundState) (*RoundState, error) {
		return NewRoundState(entry, entry.Images[0]), nil
	}))

	got, _ := rs.Get("ch")
	got.Image = "mutated"

	again, _ := rs.Get("ch")
	assert.Equal(t, entry.Images[0], again.Image)
}

func TestRoundStore_ChannelsIndependent(t *testing.T) {
	rs := NewRoundStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			entry := FallbackRocks()[i%3]
			_ = rs.Update(fmt.Sprintf("ch-%d", i), func(_ *RoundState) (*RoundState, error) {
				return NewRoundState(entry, entry.Images[0]), nil
			})
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 50, rs.Active())
}

func TestRoundStore_SameChannelSerialized(t *testing.T) {
	rs := NewRoundStore()
	entry := FallbackRocks()[0]
	require.NoError(t, rs.Update("ch", func(_ *RoundState) (*RoundState, error) {
		return NewRoundState(entry, entry.Images[0]), nil
	}))

	// Many concurrent enders: exactly one observes the active round.
	var wg sync.WaitGroup
	var mu sync.Mutex
	ended := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = rs.Update("ch", func(cur *RoundState) (*RoundState, error) {
				if cur != nil {
					mu.Lock()
					ended++
					mu.Unlock()
				}
				return nil, nil
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, ended)
	assert.Equal(t, 0, rs.Active())
}

package library

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-interval-timer/internal/testing/fixtures"
)

func newLibrary(t *testing.T) (*Library, *fixtures.TimerFileGenerator) {
	t.Helper()
	gen := fixtures.NewTimerFileGenerator(t.TempDir())
	return New(gen.GetBaseDir(), 2), gen
}

func TestLibrary_Reload(t *testing.T) {
	lib, gen := newLibrary(t)
	_, err := gen.WriteTimer(fixtures.Workout(2))
	require.NoError(t, err)
	_, err = gen.WriteTimer(fixtures.Quick(1, "30s"))
	require.NoError(t, err)
	_, err = gen.WriteRaw("notes.txt", []byte("not a timer"))
	require.NoError(t, err)

	require.NoError(t, lib.Reload())

	timers := lib.Timers()
	require.Len(t, timers, 2)
	assert.Equal(t, 1, timers[0].ID)
	assert.Equal(t, 2, timers[1].ID)
	assert.Empty(t, lib.Problems())

	src, ok := lib.Source(2)
	require.True(t, ok)
	assert.Contains(t, src, "2.json")
}

func TestLibrary_LoadTimer(t *testing.T) {
	lib, gen := newLibrary(t)
	_, err := gen.WriteTimer(fixtures.Quick(1, "30s"))
	require.NoError(t, err)
	require.NoError(t, lib.Reload())

	t.Run("returns a copy", func(t *testing.T) {
		first, err := lib.LoadTimer(context.Background(), 1)
		require.NoError(t, err)
		first.Name = "changed"

		second, err := lib.LoadTimer(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "Quick 1", second.Name)
		assert.Equal(t, 30*time.Second, second.OnceLength())
	})

	t.Run("unknown id", func(t *testing.T) {
		timer, err := lib.LoadTimer(context.Background(), 99)
		assert.ErrorIs(t, err, ErrTimerNotFound)
		assert.Nil(t, timer)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := lib.LoadTimer(ctx, 1)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestLibrary_Problems(t *testing.T) {
	lib, gen := newLibrary(t)
	_, err := gen.WriteTimer(fixtures.Quick(1, "30s"))
	require.NoError(t, err)
	broken, err := gen.WriteRaw("broken.json", []byte(`{"id": 3,`))
	require.NoError(t, err)
	dup, err := gen.WriteRaw("z-dup.yaml", []byte("id: 1\nsteps: [{duration: 1s}]\n"))
	require.NoError(t, err)

	require.NoError(t, lib.Reload())

	assert.Equal(t, 1, lib.Len())
	problems := lib.Problems()
	assert.Len(t, problems, 2)
	assert.Contains(t, problems, broken)
	assert.ErrorContains(t, problems[dup], "already defined")
}

func TestLibrary_ReloadPicksUpChanges(t *testing.T) {
	lib, gen := newLibrary(t)
	path, err := gen.WriteTimer(fixtures.Quick(1, "30s"))
	require.NoError(t, err)
	require.NoError(t, lib.Reload())

	_, err = gen.WriteTimer(fixtures.Quick(1, "45s"))
	require.NoError(t, err)
	_, err = gen.WriteTimer(fixtures.Quick(2, "5s"))
	require.NoError(t, err)
	require.NoError(t, lib.Reload())

	timer, err := lib.LoadTimer(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, timer.OnceLength())
	assert.Equal(t, 2, lib.Len())

	require.NoError(t, os.Remove(path))
	require.NoError(t, lib.Reload())
	_, err = lib.LoadTimer(context.Background(), 1)
	assert.ErrorIs(t, err, ErrTimerNotFound)
}

func TestLibrary_ConcurrentLoads(t *testing.T) {
	lib, gen := newLibrary(t)
	_, err := gen.WriteTimer(fixtures.Workout(5))
	require.NoError(t, err)
	require.NoError(t, lib.Reload())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := lib.LoadTimer(context.Background(), 5)
			assert.NoError(t, err)
		}()
	}
	require.NoError(t, lib.Reload())
	wg.Wait()
}

package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMaster struct {
	ticks []time.Duration
	done  int
}

func (m *recordingMaster) OnTick(_ Task, value time.Duration) { m.ticks = append(m.ticks, value) }
func (m *recordingMaster) OnTaskDone(Task)                    { m.done++ }

func TestCountdown_Lifecycle(t *testing.T) {
	master := &recordingMaster{}
	task := NewCountdown(master, 3*time.Second)
	assert.Equal(t, StateReset, task.State())

	task.Start()
	assert.Equal(t, StateRunning, task.State())
	require.Equal(t, []time.Duration{3 * time.Second}, master.ticks)

	task.Tick(time.Second)
	task.Tick(time.Second)
	assert.Equal(t, []time.Duration{3 * time.Second, 2 * time.Second, time.Second}, master.ticks)
	assert.Equal(t, 0, master.done)

	task.Tick(time.Second)
	assert.Equal(t, 1, master.done)
	assert.Equal(t, StateReset, task.State())
	assert.Equal(t, time.Duration(0), task.Current())

	task.Tick(time.Second)
	task.Tick(time.Second)
	assert.Equal(t, 1, master.done, "completion is reported once")
	assert.Len(t, master.ticks, 3)
}

func TestCountdown_PauseIgnoresTicks(t *testing.T) {
	master := &recordingMaster{}
	task := NewCountdown(master, 5*time.Second)
	task.Start()
	task.Pause()
	assert.Equal(t, StatePaused, task.State())

	task.Tick(10 * time.Second)
	assert.Equal(t, 5*time.Second, task.Current())
	assert.Equal(t, 0, master.done)

	task.Start()
	task.Tick(2 * time.Second)
	assert.Equal(t, 3*time.Second, task.Current())
}

func TestCountdown_MissedTickOnlyDelays(t *testing.T) {
	master := &recordingMaster{}
	task := NewCountdown(master, 2*time.Second)
	task.Start()
	task.Tick(2500 * time.Millisecond)
	assert.Equal(t, 1, master.done)
}

func TestCountdown_Stop(t *testing.T) {
	master := &recordingMaster{}
	task := NewCountdown(master, 2*time.Second)
	task.Start()
	task.Stop()
	task.Tick(5 * time.Second)
	assert.Equal(t, StateReset, task.State())
	assert.Equal(t, 0, master.done)
}

func TestCountdown_Adjust(t *testing.T) {
	tests := []struct {
		name   string
		amount time.Duration
		add    bool
		want   time.Duration
	}{
		{"add", 30 * time.Second, true, 150 * time.Second},
		{"add negative", -30 * time.Second, true, 90 * time.Second},
		{"add clamps at zero", -5 * time.Minute, true, 0},
		{"rewind one minute", time.Minute, false, time.Minute},
		{"rewind clamps at zero", 3 * time.Minute, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			master := &recordingMaster{}
			task := NewCountdown(master, 2*time.Minute)
			task.Adjust(tt.amount, tt.add)
			assert.Equal(t, tt.want, task.Current())
			assert.Equal(t, []time.Duration{tt.want}, master.ticks)
		})
	}
}

func TestCountdown_AdjustToZeroCompletesOnNextTick(t *testing.T) {
	master := &recordingMaster{}
	task := NewCountdown(master, time.Minute)
	task.Start()
	task.Adjust(time.Minute, false)
	assert.Equal(t, 0, master.done)

	task.Tick(time.Second)
	assert.Equal(t, 1, master.done)
}

func TestCountdown_Set(t *testing.T) {
	task := NewCountdown(nil, 10*time.Second)
	task.Set(time.Minute)
	assert.Equal(t, time.Minute, task.Current())
	task.Set(-time.Second)
	assert.Equal(t, time.Duration(0), task.Current())
}

func TestStopwatch(t *testing.T) {
	master := &recordingMaster{}
	task := NewStopwatch(master)

	task.Start()
	task.Tick(time.Second)
	task.Tick(time.Second)
	assert.Equal(t, 2*time.Second, task.Current())
	assert.Equal(t, []time.Duration{0, time.Second, 2 * time.Second}, master.ticks)

	task.Pause()
	task.Tick(time.Hour)
	assert.Equal(t, 2*time.Second, task.Current())

	task.Adjust(time.Minute, true)
	assert.Equal(t, time.Minute+2*time.Second, task.Current())
	task.Adjust(5*time.Minute, false)
	assert.Equal(t, time.Duration(0), task.Current())

	task.Start()
	task.Tick(24 * time.Hour)
	assert.Equal(t, 0, master.done, "stopwatch never completes")
}

func TestTickListeners_SeeEveryValue(t *testing.T) {
	var seen []time.Duration
	task := NewCountdown(nil, 2*time.Second)
	task.AddTickListener(TickListenerFunc(func(v time.Duration) { seen = append(seen, v) }))

	task.Start()
	task.Tick(time.Second)
	task.Tick(time.Second)
	assert.Equal(t, []time.Duration{2 * time.Second, time.Second}, seen)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "reset", StateReset.String())
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "paused", StatePaused.String())
	assert.True(t, StateRunning.IsRunning())
	assert.False(t, StatePaused.IsRunning())
}

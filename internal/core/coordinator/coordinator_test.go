package coordinator

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-interval-timer/internal/core/model"
	"github.com/penwyp/go-interval-timer/internal/data/records"
	"github.com/penwyp/go-interval-timer/internal/testing/fixtures"
	"github.com/penwyp/go-interval-timer/internal/util"
)

// recordingSurface keeps every call in order as "Name(args)"
type recordingSurface struct {
	calls  []string
	speech []func()
}

func (s *recordingSurface) add(name string, args ...any) {
	call := name + "(" + fmt.Sprint(args...) + ")"
	if len(args) > 1 {
		call = name + fmt.Sprintf("%v", args)
	}
	s.calls = append(s.calls, call)
}

func (s *recordingSurface) count(call string) int {
	n := 0
	for _, c := range s.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (s *recordingSurface) index(call string) int {
	return slices.Index(s.calls, call)
}

func (s *recordingSurface) reset() {
	s.calls = nil
}

func (s *recordingSurface) PrepareForWork()            { s.add("PrepareForWork") }
func (s *recordingSurface) CleanUpWorkArea()           { s.add("CleanUpWorkArea") }
func (s *recordingSurface) CreateAggregatedIndicator() { s.add("CreateAggregatedIndicator") }
func (s *recordingSurface) UpdateAggregatedIndicator(total, paused int, soleName string) {
	s.add("UpdateAggregatedIndicator", total, paused, soleName)
}
func (s *recordingSurface) CancelAggregatedIndicator() { s.add("CancelAggregatedIndicator") }
func (s *recordingSurface) CreateDedicatedIndicator(id int, _ *model.Timer) {
	s.add("CreateDedicatedIndicator", id)
}
func (s *recordingSurface) CancelDedicatedIndicator(id int) { s.add("CancelDedicatedIndicator", id) }
func (s *recordingSurface) PromoteToForeground(id int)      { s.add("PromoteToForeground", id) }
func (s *recordingSurface) PlayMusic(uri string, loop bool) { s.add("PlayMusic", uri, loop) }
func (s *recordingSurface) StopMusic()                      { s.add("StopMusic") }
func (s *recordingSurface) StartVibration(pattern []time.Duration, repeat bool) {
	s.add("StartVibration", len(pattern), repeat)
}
func (s *recordingSurface) StopVibration() { s.add("StopVibration") }
func (s *recordingSurface) ShowScreen(_ *model.Timer, label string, full bool) {
	s.add("ShowScreen", label, full)
}
func (s *recordingSurface) CloseScreen() { s.add("CloseScreen") }
func (s *recordingSurface) Speak(text string, done func()) {
	s.add("Speak", text)
	s.speech = append(s.speech, done)
}
func (s *recordingSurface) StopSpeaking() { s.add("StopSpeaking") }
func (s *recordingSurface) EnableTone(tone, count int, respect bool) {
	s.add("EnableTone", tone, count, respect)
}
func (s *recordingSurface) PlayTone()    { s.add("PlayTone") }
func (s *recordingSurface) DisableTone() { s.add("DisableTone") }
func (s *recordingSurface) ShowBannerNotification(_ *model.Timer, _ model.Position, d time.Duration) {
	s.add("ShowBannerNotification", d)
}
func (s *recordingSurface) DismissBannerNotification() { s.add("DismissBannerNotification") }
func (s *recordingSurface) ToggleFlashlight(action *model.FlashlightAction, d time.Duration) {
	if action == nil {
		s.add("ToggleFlashlight", "off")
		return
	}
	s.add("ToggleFlashlight", action.Step, d)
}
func (s *recordingSurface) Shutdown() { s.add("Shutdown") }

type mockLoader struct {
	mock.Mock
}

func (m *mockLoader) LoadTimer(ctx context.Context, id int) (*model.Timer, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*model.Timer)
	return t, args.Error(1)
}

type mockAppender struct {
	mock.Mock
}

func (m *mockAppender) AppendRecord(ctx context.Context, r records.Record) error {
	return m.Called(ctx, r).Error(0)
}

// queuedRunner holds work until flush
type queuedRunner struct {
	jobs []func()
}

func (r *queuedRunner) Run(work func(), done func()) {
	r.jobs = append(r.jobs, func() {
		work()
		done()
	})
}

func (r *queuedRunner) flush() {
	jobs := r.jobs
	r.jobs = nil
	for _, job := range jobs {
		job()
	}
}

type env struct {
	c       *Coordinator
	surface *recordingSurface
	loader  *mockLoader
	store   *records.MemoryStore
	clock   *util.ManualClock
}

func (e *env) records(t *testing.T) []records.Record {
	t.Helper()
	list, err := e.store.ListRecords(context.Background(), records.Filter{})
	require.NoError(t, err)
	return list
}

func newEnv(t *testing.T, runner Runner, timers ...*model.Timer) *env {
	t.Helper()
	e := &env{
		surface: &recordingSurface{},
		loader:  &mockLoader{},
		store:   records.NewMemoryStore(),
		clock:   util.NewManualClock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)),
	}
	for _, timer := range timers {
		e.loader.On("LoadTimer", mock.Anything, timer.ID).Return(timer, nil)
	}
	e.c = New(context.Background(), e.surface, e.loader, e.store, Config{
		Runner: runner,
		Clock:  e.clock,
		Strict: true,
	})
	return e
}

func TestModeFor(t *testing.T) {
	tests := []struct {
		total, withIndicator int
		want                 Mode
	}{
		{0, 0, ModeNone},
		{1, 0, ModeAggregated},
		{1, 1, ModeDedicated},
		{2, 0, ModeAggregated},
		{2, 1, ModeAggregated},
		{2, 2, ModeAggregated},
		{5, 3, ModeAggregated},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_%d", tt.total, tt.withIndicator), func(t *testing.T) {
			assert.Equal(t, tt.want, ModeFor(tt.total, tt.withIndicator))
		})
	}
}

func TestCoordinator_DedicatedAndAggregated(t *testing.T) {
	a, b := fixtures.SimpleTimerA(), fixtures.SimpleTimerB()
	e := newEnv(t, nil, a, b)
	s := e.surface

	e.c.StartTimer(a.ID, nil)
	require.True(t, e.c.Running(a.ID))
	assert.Equal(t, ModeDedicated, e.c.Mode())
	assert.Equal(t, 1, s.count("PrepareForWork()"))
	assert.Equal(t, 1, s.count("CreateDedicatedIndicator(434)"))
	assert.Equal(t, 1, s.count("PromoteToForeground(434)"))

	s.reset()
	e.c.StartTimer(b.ID, nil)
	assert.Equal(t, ModeAggregated, e.c.Mode())
	assert.Equal(t, 0, s.count("PrepareForWork()"))
	assert.Less(t, s.index("CancelDedicatedIndicator(434)"), s.index("CreateAggregatedIndicator()"))
	assert.Equal(t, 1, s.count("PromoteToForeground(0)"))
	assert.Contains(t, s.calls, "UpdateAggregatedIndicator[2 0 ]")

	s.reset()
	e.c.ResetTimer(b.ID)
	assert.False(t, e.c.Running(b.ID))
	assert.Equal(t, ModeDedicated, e.c.Mode())
	assert.Less(t, s.index("CancelAggregatedIndicator()"), s.index("CreateDedicatedIndicator(434)"))
	assert.Equal(t, 0, s.count("Shutdown()"))
	assert.Empty(t, e.records(t), "forced end away from the last leaf")

	s.reset()
	e.c.ResetTimer(a.ID)
	assert.Equal(t, ModeNone, e.c.Mode())
	assert.Equal(t, 1, s.count("CancelDedicatedIndicator(434)"))
	assert.Less(t, s.index("CleanUpWorkArea()"), s.index("Shutdown()"))
	assert.Equal(t, 1, s.count("Shutdown()"))

	// A sits on its only leaf, so the forced end still counts
	recs := e.records(t)
	require.Len(t, recs, 1)
	assert.Equal(t, a.ID, recs[0].TimerID)
	e.loader.AssertExpectations(t)
}

func TestCoordinator_ThreeTimersStayAggregated(t *testing.T) {
	t1 := fixtures.LeafTimer(1, "One", 1, time.Minute)
	t2 := fixtures.LeafTimer(2, "Two", 1, time.Minute)
	t3 := fixtures.LeafTimer(3, "Three", 1, time.Minute)
	e := newEnv(t, nil, t1, t2, t3)

	e.c.StartTimer(1, nil)
	assert.Equal(t, ModeAggregated, e.c.Mode())
	assert.Contains(t, e.surface.calls, "UpdateAggregatedIndicator[1 0 One]")

	e.c.StartTimer(2, nil)
	e.c.StartTimer(3, nil)
	assert.Equal(t, 1, e.surface.count("CreateAggregatedIndicator()"))
	assert.Contains(t, e.surface.calls, "UpdateAggregatedIndicator[3 0 ]")

	e.c.PauseTimer(2)
	assert.Contains(t, e.surface.calls, "UpdateAggregatedIndicator[3 1 ]")

	for _, id := range []int{1, 2} {
		e.c.ResetTimer(id)
		assert.Equal(t, ModeAggregated, e.c.Mode())
	}
	assert.Contains(t, e.surface.calls, "UpdateAggregatedIndicator[1 0 Three]")
	assert.Equal(t, 0, e.surface.count("Shutdown()"))

	e.c.ResetTimer(3)
	assert.Equal(t, ModeNone, e.c.Mode())
	assert.Equal(t, 1, e.surface.count("CancelAggregatedIndicator()"))
	assert.Equal(t, 1, e.surface.count("Shutdown()"))
}

func TestCoordinator_ResumeDoesNotCountAsPaused(t *testing.T) {
	t1 := fixtures.LeafTimer(1, "One", 1, time.Minute)
	t2 := fixtures.LeafTimer(2, "Two", 1, time.Minute)
	e := newEnv(t, nil, t1, t2)

	e.c.StartTimer(1, nil)
	e.c.StartTimer(2, nil)
	e.c.PauseTimer(1)
	e.surface.reset()

	e.c.StartTimer(1, nil)
	assert.Equal(t, []string{"UpdateAggregatedIndicator[2 0 ]"}, filterPrefix(e.surface.calls, "UpdateAggregatedIndicator"))
}

func filterPrefix(calls []string, prefix string) []string {
	var out []string
	for _, c := range calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			out = append(out, c)
		}
	}
	return out
}

func TestCoordinator_NaturalEndAppendsRecord(t *testing.T) {
	quick := fixtures.LeafTimer(7, "Quick", 1, 2*time.Second)
	e := newEnv(t, nil, quick)
	begin := e.clock.Now()

	var ends []bool
	l := &endListener{ends: &ends}
	e.c.AddListener(7, l)

	e.c.StartTimer(7, nil)
	for i := 0; i < 2; i++ {
		e.clock.Advance(time.Second)
		e.c.Tick(time.Second)
	}

	assert.False(t, e.c.Running(7))
	assert.Equal(t, []bool{false}, ends)
	assert.Equal(t, 1, e.surface.count("Shutdown()"))

	recs := e.records(t)
	require.Len(t, recs, 1)
	assert.Equal(t, "Quick", recs[0].TimerName)
	assert.Equal(t, begin, recs[0].Start)
	assert.Equal(t, begin.Add(2*time.Second), recs[0].End)
}

func TestCoordinator_AppendFailureIsLogged(t *testing.T) {
	single := fixtures.LeafTimer(8, "Single", 1, time.Minute)
	loader := &mockLoader{}
	loader.On("LoadTimer", mock.Anything, 8).Return(single, nil)
	appender := &mockAppender{}
	appender.On("AppendRecord", mock.Anything, mock.MatchedBy(func(r records.Record) bool {
		return r.TimerID == 8
	})).Return(errors.New("disk full")).Once()
	surface := &recordingSurface{}
	c := New(context.Background(), surface, loader, appender, Config{Strict: true})

	c.StartTimer(8, nil)
	c.ResetTimer(8)

	assert.False(t, c.Running(8))
	assert.Equal(t, 1, surface.count("Shutdown()"))
	appender.AssertExpectations(t)
}

type endListener struct {
	NopListener
	ends *[]bool
}

func (l *endListener) End(_ int, forced bool) {
	*l.ends = append(*l.ends, forced)
}

func TestCoordinator_ChainsTriggeredTimer(t *testing.T) {
	first := fixtures.LeafTimer(1, "First", 1, time.Second)
	first.TriggerID = 2
	second := fixtures.LeafTimer(2, "Second", 1, time.Minute)
	e := newEnv(t, nil, first, second)

	e.c.StartTimer(1, nil)
	e.c.Tick(time.Second)

	assert.False(t, e.c.Running(1))
	assert.True(t, e.c.Running(2))
	assert.Equal(t, 1, e.surface.count("PrepareForWork()"))
	assert.Equal(t, 0, e.surface.count("Shutdown()"))

	// a forced end does not chain
	e.c.ResetTimer(2)
	assert.Equal(t, 1, e.surface.count("Shutdown()"))
}

func TestCoordinator_SelfChainRepeats(t *testing.T) {
	loop := fixtures.LeafTimer(1, "Loop", 1, time.Second)
	loop.TriggerID = 1
	e := newEnv(t, nil, loop)

	e.c.StartTimer(1, nil)
	require.True(t, e.c.Running(1))

	for round := 1; round <= 2; round++ {
		e.clock.Advance(time.Second)
		e.c.Tick(time.Second)
		assert.True(t, e.c.Running(1), "round %d", round)
		assert.Len(t, e.records(t), round)
	}
	assert.Equal(t, 1, e.surface.count("PrepareForWork()"))
	assert.Equal(t, 0, e.surface.count("Shutdown()"))

	e.c.ResetTimer(1)
	assert.False(t, e.c.Running(1))
	assert.Equal(t, 1, e.surface.count("Shutdown()"))
}

func TestCoordinator_EventsForUnknownTimer(t *testing.T) {
	e := newEnv(t, nil)
	events := machineEvents{e.c}

	require.NotPanics(t, func() {
		events.Begin(99)
		events.End(99, false)
	})
	assert.Equal(t, ModeNone, e.c.Mode())
	assert.Equal(t, 0, e.surface.count("PrepareForWork()"))
	assert.Empty(t, e.records(t))
	e.loader.AssertNotCalled(t, "LoadTimer", mock.Anything, mock.Anything)
}

func TestCoordinator_ForcedEndDoesNotChain(t *testing.T) {
	first := fixtures.LeafTimer(1, "First", 1, time.Minute, time.Minute)
	first.TriggerID = 2
	second := fixtures.LeafTimer(2, "Second", 1, time.Minute)
	e := newEnv(t, nil, first, second)

	e.c.StartTimer(1, nil)
	e.c.ResetTimer(1)

	assert.False(t, e.c.Running(2))
	e.loader.AssertNotCalled(t, "LoadTimer", mock.Anything, 2)
}

func TestCoordinator_PendingLoadIsDeduplicated(t *testing.T) {
	runner := &queuedRunner{}
	a := fixtures.SimpleTimerA()
	e := newEnv(t, runner)
	e.loader.On("LoadTimer", mock.Anything, a.ID).Return(a, nil).Once()

	e.c.StartTimer(a.ID, nil)
	e.c.StartTimer(a.ID, nil)
	assert.Len(t, runner.jobs, 1)
	assert.False(t, e.c.Running(a.ID))

	runner.flush()
	assert.True(t, e.c.Running(a.ID))
	e.loader.AssertNumberOfCalls(t, "LoadTimer", 1)
}

func TestCoordinator_LoadFailure(t *testing.T) {
	t.Run("missing timer releases surface once nothing runs", func(t *testing.T) {
		runner := &queuedRunner{}
		a := fixtures.SimpleTimerA()
		e := newEnv(t, runner, a)
		e.loader.On("LoadTimer", mock.Anything, 99).Return(nil, errors.New("not found"))

		e.c.StartTimer(a.ID, nil)
		runner.flush()
		e.c.StartTimer(99, nil)
		e.c.ResetTimer(a.ID)
		assert.Equal(t, 0, e.surface.count("Shutdown()"), "load still pending")

		runner.flush()
		assert.Equal(t, 1, e.surface.count("Shutdown()"))
		assert.False(t, e.c.Running(99))
	})

	t.Run("nil timer without error", func(t *testing.T) {
		e := newEnv(t, nil)
		e.loader.On("LoadTimer", mock.Anything, 5).Return(nil, nil)

		e.c.StartTimer(5, nil)
		assert.False(t, e.c.Running(5))
		assert.Empty(t, e.surface.calls)
	})

	t.Run("invalid timer", func(t *testing.T) {
		broken := fixtures.LeafTimer(6, "Broken", 0, time.Minute)
		e := newEnv(t, nil, broken)

		e.c.StartTimer(6, nil)
		assert.False(t, e.c.Running(6))
	})
}

func TestCoordinator_DispatchOrder(t *testing.T) {
	leaf := model.Leaf{
		Label:    "Everything",
		Duration: 30 * time.Second,
		Behaviours: []model.Behaviour{
			model.MusicAction{URI: "song.mp3", Loop: true},
			model.VoiceAction{Content: "Go {SName}"},
			model.FlashlightAction{Step: 500 * time.Millisecond},
			model.NotificationAction{Duration: 5 * time.Second},
			model.CountAction{Times: 3, Beep: true},
			model.BeepAction{SoundIndex: 2, Count: 1},
			model.VibrationAction{Count: 2, Pattern: model.VibrationShort},
			model.ScreenAction{FullScreen: true},
		},
	}
	timer := &model.Timer{ID: 9, Name: "All", Loop: 1, Steps: []model.StepContent{leaf}}
	e := newEnv(t, nil, timer)

	e.c.StartTimer(9, nil)

	calls := e.surface.calls
	order := []string{
		"ShowScreen[Everything true]",
		"StartVibration[5 false]",
		"EnableTone[2 1 false]",
		"EnableTone[0 3 true]",
		"ShowBannerNotification(5s)",
		"ToggleFlashlight[500ms 30s]",
		"Speak(Go Everything)",
	}
	last := -1
	for _, want := range order {
		i := slices.Index(calls, want)
		require.GreaterOrEqual(t, i, 0, "missing %s in %v", want, calls)
		assert.Greater(t, i, last, want)
		last = i
	}
	assert.Equal(t, 0, e.surface.count("PlayMusic[song.mp3 true]"), "music waits for speech")

	require.Len(t, e.surface.speech, 1)
	e.surface.speech[0]()
	assert.Equal(t, 1, e.surface.count("PlayMusic[song.mp3 true]"))
}

func TestCoordinator_StaleSpeechDoesNotStartMusic(t *testing.T) {
	leaf := model.Leaf{
		Label:    "Talk",
		Duration: time.Minute,
		Behaviours: []model.Behaviour{
			model.VoiceAction{Content: "hello"},
			model.MusicAction{URI: "song.mp3"},
		},
	}
	timer := &model.Timer{ID: 10, Name: "Talk", Loop: 1, Steps: []model.StepContent{leaf}}
	e := newEnv(t, nil, timer)

	e.c.StartTimer(10, nil)
	e.c.PauseTimer(10)
	require.Len(t, e.surface.speech, 1)
	e.surface.speech[0]()

	assert.Equal(t, 0, e.surface.count("PlayMusic[song.mp3 false]"))
}

func TestCoordinator_MusicWithoutVoicePlaysAtOnce(t *testing.T) {
	b := fixtures.SimpleTimerB()
	e := newEnv(t, nil, b)

	e.c.StartTimer(b.ID, &model.Position{Kind: model.PositionStep, Step: 1})
	assert.Equal(t, 1, e.surface.count("PlayMusic[uri: sun false]"))
	assert.Contains(t, e.surface.calls, "StartVibration[2 true]")
}

func TestCoordinator_HaltFlashlightIsUnbounded(t *testing.T) {
	leaf := model.Leaf{
		Label: "Hold",
		Behaviours: []model.Behaviour{
			model.HaltAction{},
			model.FlashlightAction{Step: time.Second},
		},
	}
	timer := &model.Timer{ID: 11, Name: "Hold", Loop: 1, Steps: []model.StepContent{leaf}}
	e := newEnv(t, nil, timer)

	e.c.StartTimer(11, nil)
	assert.Contains(t, e.surface.calls, fmt.Sprint("ToggleFlashlight", []any{time.Second, Unbounded}))
}

func TestCoordinator_StopBehavioursOnPauseAndFinish(t *testing.T) {
	timer := fixtures.LeafTimer(12, "Two", 1, time.Second, time.Minute)
	e := newEnv(t, nil, timer)

	e.c.StartTimer(12, nil)
	e.surface.reset()
	e.c.PauseTimer(12)
	assert.Equal(t, 1, e.surface.count("StopMusic()"))
	assert.Equal(t, 1, e.surface.count("ToggleFlashlight(off)"))

	e.c.StartTimer(12, nil)
	e.surface.reset()
	e.c.Tick(time.Second)
	// finished, then the next leaf restarts from a clean slate
	assert.Equal(t, 2, e.surface.count("StopSpeaking()"))
}

func TestCoordinator_EffectEvents(t *testing.T) {
	e := newEnv(t, nil)
	ev := machineEvents{e.c}

	ev.Beep(1)
	ev.NotifyHalf(1, model.HalfOptionVoice)
	ev.NotifyHalf(1, model.HalfOptionMusic)
	ev.NotifyHalf(1, model.HalfOptionVibration)
	ev.CountRead(1, "3")

	assert.Equal(t, []string{
		"PlayTone()",
		"Speak(Half)",
		"PlayMusic[ false]",
		"StartVibration[4 false]",
		"Speak(3)",
	}, e.surface.calls)
}

func TestCoordinator_Navigation(t *testing.T) {
	t.Run("adjust on notifier goes back with one minute", func(t *testing.T) {
		timer := &model.Timer{ID: 20, Name: "Notify", Loop: 1, Steps: []model.StepContent{
			model.Leaf{Label: "Work", Duration: 30 * time.Second},
			model.Leaf{Label: "Ding", Duration: 5 * time.Second, Type: model.StepNotifier},
		}}
		e := newEnv(t, nil, timer)
		second := model.StepPosition(0, 1)

		e.c.StartTimer(20, &second)
		info, ok := e.c.Info(20)
		require.True(t, ok)
		require.Equal(t, second, info.Position)

		e.c.AdjustAmount(20, 10*time.Second, true)
		info, _ = e.c.Info(20)
		assert.Equal(t, model.StepPosition(0, 0), info.Position)
		assert.Equal(t, time.Minute, info.Value)
	})

	t.Run("adjust without go-back changes the clock", func(t *testing.T) {
		timer := fixtures.LeafTimer(21, "Plain", 1, time.Minute)
		e := newEnv(t, nil, timer)

		e.c.StartTimer(21, nil)
		e.c.AdjustAmount(21, 10*time.Second, false)
		info, _ := e.c.Info(21)
		assert.Equal(t, 70*time.Second, info.Value)

		e.c.RewindOneMinute(21)
		info, _ = e.c.Info(21)
		assert.Equal(t, 10*time.Second, info.Value)
	})

	t.Run("step backward from first leaf resets", func(t *testing.T) {
		timer := fixtures.LeafTimer(22, "Back", 1, time.Minute, time.Minute)
		e := newEnv(t, nil, timer)

		e.c.StartTimer(22, nil)
		e.c.StepForward(22)
		info, _ := e.c.Info(22)
		assert.Equal(t, model.StepPosition(0, 1), info.Position)

		e.c.StepBackward(22)
		info, _ = e.c.Info(22)
		assert.Equal(t, model.StepPosition(0, 0), info.Position)

		e.c.StepBackward(22)
		assert.False(t, e.c.Running(22))
	})

	t.Run("step forward from last leaf resets", func(t *testing.T) {
		timer := fixtures.LeafTimer(23, "Fwd", 1, time.Minute)
		e := newEnv(t, nil, timer)

		e.c.StartTimer(23, nil)
		e.c.StepForward(23)
		assert.False(t, e.c.Running(23))
	})
}

func TestCoordinator_ScheduleEnd(t *testing.T) {
	t.Run("moves to end step", func(t *testing.T) {
		b := fixtures.SimpleTimerB()
		e := newEnv(t, nil, b)

		e.c.ScheduleStart(b.ID)
		e.c.ScheduleEnd(b.ID)
		info, ok := e.c.Info(b.ID)
		require.True(t, ok)
		assert.Equal(t, model.End(), info.Position)
		assert.Equal(t, 1000*time.Second, info.Value)
	})

	t.Run("resets without end step", func(t *testing.T) {
		a := fixtures.SimpleTimerA()
		e := newEnv(t, nil, a)

		e.c.ScheduleStart(a.ID)
		e.c.ScheduleEnd(a.ID)
		assert.False(t, e.c.Running(a.ID))
		assert.Equal(t, 1, e.surface.count("Shutdown()"))
	})
}

func TestCoordinator_PauseAllAndStartAll(t *testing.T) {
	t1 := fixtures.LeafTimer(1, "One", 1, time.Minute)
	t2 := fixtures.LeafTimer(2, "Two", 1, time.Minute)
	e := newEnv(t, nil, t1, t2)

	e.c.StartTimer(1, nil)
	e.c.StartTimer(2, nil)
	assert.Equal(t, []int{1, 2}, e.c.PauseAll())
	assert.Empty(t, e.c.PauseAll())

	e.c.StartAll()
	for _, info := range e.c.Infos() {
		assert.True(t, info.State.IsRunning(), info.Timer.Name)
	}

	e.c.StopAll()
	assert.Empty(t, e.c.Infos())
	assert.Equal(t, ModeNone, e.c.Mode())
}

func TestCoordinator_Listeners(t *testing.T) {
	t1 := fixtures.LeafTimer(1, "One", 1, time.Minute)
	t2 := fixtures.LeafTimer(2, "Two", 1, time.Minute)
	e := newEnv(t, nil, t1, t2)

	var perID, all []bool
	one := &endListener{ends: &perID}
	every := &endListener{ends: &all}
	e.c.AddListener(1, one)
	e.c.AddAllListener(every)

	e.c.StartTimer(1, nil)
	e.c.StartTimer(2, nil)
	e.c.ResetTimer(2)
	assert.Empty(t, perID)
	assert.Equal(t, []bool{true}, all)

	e.c.RemoveListener(1, one)
	e.c.RemoveAllListener(every)
	e.c.ResetTimer(1)
	assert.Empty(t, perID)
	assert.Len(t, all, 1)
}

func TestCoordinator_Close(t *testing.T) {
	a := fixtures.SimpleTimerA()
	e := newEnv(t, nil, a)

	e.c.StartTimer(a.ID, nil)
	e.c.Close()
	assert.False(t, e.c.Running(a.ID))
	assert.Equal(t, 1, e.surface.count("Shutdown()"))

	e.c.Close()
	assert.Equal(t, 1, e.surface.count("Shutdown()"))
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	a := &entry{timer: fixtures.SimpleTimerA()}
	b := &entry{timer: fixtures.SimpleTimerB()}

	assert.True(t, r.Add(a))
	assert.False(t, r.Add(a))
	assert.True(t, r.Add(b))
	assert.Equal(t, []int{434, 435}, r.IDs())
	assert.Equal(t, 1, r.WithIndicator())
	assert.Same(t, a, r.First())

	assert.Same(t, a, r.Remove(434))
	assert.Same(t, b, r.First())
	assert.Nil(t, r.Remove(434))

	r.Strict = true
	assert.Panics(t, func() { r.Remove(434) })
}

package coordinator

import (
	"context"
	"time"

	"github.com/penwyp/go-interval-timer/internal/core/model"
	"github.com/penwyp/go-interval-timer/internal/data/records"
)

// Surface is everything the coordinator shows or plays. Calls are
// fire-and-forget and arrive on the event loop goroutine.
type Surface interface {
	PrepareForWork()
	CleanUpWorkArea()

	CreateAggregatedIndicator()
	UpdateAggregatedIndicator(total, paused int, soleName string)
	CancelAggregatedIndicator()
	CreateDedicatedIndicator(id int, t *model.Timer)
	CancelDedicatedIndicator(id int)
	// PromoteToForeground brings the indicator of id forward; 0 means the
	// aggregated indicator
	PromoteToForeground(id int)

	PlayMusic(uri string, loop bool)
	StopMusic()
	StartVibration(pattern []time.Duration, repeat bool)
	StopVibration()
	ShowScreen(t *model.Timer, stepLabel string, fullScreen bool)
	CloseScreen()
	// Speak reads text aloud. done, when not nil, runs on the event loop
	// once speech completes; it is not called if speech is stopped.
	Speak(text string, done func())
	StopSpeaking()
	EnableTone(tone, count int, respectOtherAudio bool)
	PlayTone()
	DisableTone()
	ShowBannerNotification(t *model.Timer, pos model.Position, d time.Duration)
	DismissBannerNotification()
	// ToggleFlashlight starts blinking for d; a nil action turns it off
	ToggleFlashlight(action *model.FlashlightAction, d time.Duration)

	Shutdown()
}

// Loader fetches timer definitions
type Loader interface {
	LoadTimer(ctx context.Context, id int) (*model.Timer, error)
}

// RecordAppender persists completion records
type RecordAppender interface {
	AppendRecord(ctx context.Context, r records.Record) error
}

// Runner runs blocking work away from the event loop and hands done back to
// it
type Runner interface {
	Run(work func(), done func())
}

// InlineRunner runs work and done immediately on the caller's goroutine
type InlineRunner struct{}

func (InlineRunner) Run(work func(), done func()) {
	work()
	if done != nil {
		done()
	}
}

// NopSurface ignores every call. Embed it to implement only part of Surface.
type NopSurface struct{}

var _ Surface = NopSurface{}

func (NopSurface) PrepareForWork()                                                    {}
func (NopSurface) CleanUpWorkArea()                                                   {}
func (NopSurface) CreateAggregatedIndicator()                                         {}
func (NopSurface) UpdateAggregatedIndicator(int, int, string)                         {}
func (NopSurface) CancelAggregatedIndicator()                                         {}
func (NopSurface) CreateDedicatedIndicator(int, *model.Timer)                         {}
func (NopSurface) CancelDedicatedIndicator(int)                                       {}
func (NopSurface) PromoteToForeground(int)                                            {}
func (NopSurface) PlayMusic(string, bool)                                             {}
func (NopSurface) StopMusic()                                                         {}
func (NopSurface) StartVibration([]time.Duration, bool)                               {}
func (NopSurface) StopVibration()                                                     {}
func (NopSurface) ShowScreen(*model.Timer, string, bool)                              {}
func (NopSurface) CloseScreen()                                                       {}
func (NopSurface) Speak(string, func())                                               {}
func (NopSurface) StopSpeaking()                                                      {}
func (NopSurface) EnableTone(int, int, bool)                                          {}
func (NopSurface) PlayTone()                                                          {}
func (NopSurface) DisableTone()                                                       {}
func (NopSurface) ShowBannerNotification(*model.Timer, model.Position, time.Duration) {}
func (NopSurface) DismissBannerNotification()                                         {}
func (NopSurface) ToggleFlashlight(*model.FlashlightAction, time.Duration)            {}
func (NopSurface) Shutdown()                                                          {}

package display

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/penwyp/go-interval-timer/internal/core/coordinator"
	"github.com/penwyp/go-interval-timer/internal/core/model"
	"github.com/penwyp/go-interval-timer/internal/util"
)

const (
	wordDuration   = 350 * time.Millisecond
	minSpeech      = time.Second
	maxEventLength = 8
)

// AfterFunc schedules f after d and returns a function that cancels it
type AfterFunc func(d time.Duration, f func()) (stop func() bool)

func realAfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// SurfaceConfig wires the surface to the event loop and the terminal
type SurfaceConfig struct {
	// Post hands a function to the event loop goroutine
	Post func(func())
	// Out receives the terminal bell when Bell is set
	Out  io.Writer
	Bell bool
	// After defaults to time.AfterFunc
	After AfterFunc
}

type musicState struct {
	uri  string
	loop bool
}

type toneState struct {
	tone, count int
	respect     bool
	played      int
}

type screenState struct {
	timer      string
	label      string
	fullScreen bool
}

type bannerState struct {
	timer string
	pos   model.Position
	d     time.Duration
}

// Surface renders the coordinator's sounds, screens and lights as terminal
// status lines. A terminal cannot vibrate or play music, so those effects
// are shown instead; tones ring the terminal bell.
//
// All methods except the speech completion run on the event loop.
type Surface struct {
	cfg    SurfaceConfig
	logger util.LoggerInterface

	active     bool
	indicator  string
	foreground int
	dedicated  map[int]string

	music      *musicState
	vibration  []time.Duration
	vibRepeat  bool
	screen     *screenState
	tone       *toneState
	banner     *bannerState
	flashlight *model.FlashlightAction
	flashFor   time.Duration

	speaking   string
	speechSeq  int
	stopSpeech func() bool

	events []string
}

var _ coordinator.Surface = (*Surface)(nil)

func NewSurface(cfg SurfaceConfig) *Surface {
	if cfg.After == nil {
		cfg.After = realAfterFunc
	}
	if cfg.Post == nil {
		cfg.Post = func(f func()) { f() }
	}
	if cfg.Out == nil {
		cfg.Out = io.Discard
	}
	return &Surface{
		cfg:       cfg,
		logger:    util.Named("surface"),
		dedicated: make(map[int]string),
	}
}

func (s *Surface) event(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	s.logger.Debug(msg)
	s.events = append(s.events, msg)
	if len(s.events) > maxEventLength {
		s.events = s.events[len(s.events)-maxEventLength:]
	}
}

// Active reports whether the work area is prepared
func (s *Surface) Active() bool { return s.active }

// Events returns the most recent effect changes, oldest first
func (s *Surface) Events() []string {
	return append([]string(nil), s.events...)
}

// Indicator describes the indicator currently shown
func (s *Surface) Indicator() string { return s.indicator }

func (s *Surface) PrepareForWork() {
	s.active = true
	s.event("work area ready")
}

func (s *Surface) CleanUpWorkArea() {
	s.event("work area cleaned")
}

func (s *Surface) CreateAggregatedIndicator() {
	s.indicator = "aggregated"
}

func (s *Surface) UpdateAggregatedIndicator(total, paused int, soleName string) {
	if total == 1 && soleName != "" {
		s.indicator = fmt.Sprintf("aggregated: %s", soleName)
		if paused == 1 {
			s.indicator += " (paused)"
		}
		return
	}
	s.indicator = fmt.Sprintf("aggregated: %d running, %d paused", total-paused, paused)
}

func (s *Surface) CancelAggregatedIndicator() {
	if strings.HasPrefix(s.indicator, "aggregated") {
		s.indicator = ""
	}
}

func (s *Surface) CreateDedicatedIndicator(id int, t *model.Timer) {
	s.dedicated[id] = t.Name
	s.indicator = "dedicated: " + t.Name
}

func (s *Surface) CancelDedicatedIndicator(id int) {
	name, ok := s.dedicated[id]
	if !ok {
		return
	}
	delete(s.dedicated, id)
	if s.indicator == "dedicated: "+name {
		s.indicator = ""
	}
}

func (s *Surface) PromoteToForeground(id int) {
	s.foreground = id
}

// Foreground is the id last promoted; 0 is the aggregated indicator
func (s *Surface) Foreground() int { return s.foreground }

func (s *Surface) PlayMusic(uri string, loop bool) {
	s.music = &musicState{uri: uri, loop: loop}
	s.event("music %s", describeMusic(uri, loop))
}

func describeMusic(uri string, loop bool) string {
	if uri == "" {
		uri = "default"
	}
	if loop {
		return uri + " (loop)"
	}
	return uri
}

func (s *Surface) StopMusic() { s.music = nil }

func (s *Surface) StartVibration(pattern []time.Duration, repeat bool) {
	s.vibration = pattern
	s.vibRepeat = repeat
	s.event("vibrate %d pulses", len(pattern)/2)
}

func (s *Surface) StopVibration() { s.vibration = nil }

func (s *Surface) ShowScreen(t *model.Timer, stepLabel string, fullScreen bool) {
	s.screen = &screenState{timer: t.Name, label: stepLabel, fullScreen: fullScreen}
	s.ring()
}

func (s *Surface) CloseScreen() { s.screen = nil }

// Speak shows text for roughly as long as it takes to read it aloud, then
// posts done to the event loop. A later Speak or StopSpeaking cancels it.
func (s *Surface) Speak(text string, done func()) {
	s.cancelSpeech()
	s.speechSeq++
	seq := s.speechSeq
	s.speaking = text
	s.event("say %q", text)

	s.stopSpeech = s.cfg.After(speechDuration(text), func() {
		s.cfg.Post(func() {
			if s.speechSeq != seq {
				return
			}
			s.speaking = ""
			s.stopSpeech = nil
			if done != nil {
				done()
			}
		})
	})
}

func speechDuration(text string) time.Duration {
	return max(time.Duration(len(strings.Fields(text)))*wordDuration, minSpeech)
}

func (s *Surface) cancelSpeech() {
	if s.stopSpeech != nil {
		s.stopSpeech()
		s.stopSpeech = nil
	}
	s.speaking = ""
}

func (s *Surface) StopSpeaking() {
	s.speechSeq++
	s.cancelSpeech()
}

func (s *Surface) EnableTone(tone, count int, respectOtherAudio bool) {
	s.tone = &toneState{tone: tone, count: count, respect: respectOtherAudio}
}

func (s *Surface) PlayTone() {
	if s.tone == nil {
		s.logger.Warn("tone played before it was enabled")
		return
	}
	if s.tone.count > 0 && s.tone.played >= s.tone.count {
		return
	}
	s.tone.played++
	s.ring()
}

func (s *Surface) DisableTone() { s.tone = nil }

func (s *Surface) ShowBannerNotification(t *model.Timer, pos model.Position, d time.Duration) {
	s.banner = &bannerState{timer: t.Name, pos: pos, d: d}
	s.event("notify %s", t.Name)
}

func (s *Surface) DismissBannerNotification() { s.banner = nil }

func (s *Surface) ToggleFlashlight(action *model.FlashlightAction, d time.Duration) {
	s.flashlight = action
	s.flashFor = d
}

func (s *Surface) Shutdown() {
	s.active = false
	s.indicator = ""
	s.event("idle")
}

func (s *Surface) ring() {
	if s.cfg.Bell {
		_, _ = io.WriteString(s.cfg.Out, util.Bell)
	}
}

// Effects lists what is playing or showing, one line each, for the dashboard
func (s *Surface) Effects() []string {
	var lines []string
	if s.screen != nil {
		kind := "Screen"
		if s.screen.fullScreen {
			kind = "Full screen"
		}
		lines = append(lines, fmt.Sprintf("▣ %s: %s · %s", kind, s.screen.timer, s.screen.label))
	}
	if s.speaking != "" {
		lines = append(lines, "🗣 "+s.speaking)
	}
	if s.music != nil {
		lines = append(lines, "♪ Music: "+describeMusic(s.music.uri, s.music.loop))
	}
	if s.vibration != nil {
		line := fmt.Sprintf("≋ Vibrating %d pulses", len(s.vibration)/2)
		if s.vibRepeat {
			line += " (repeat)"
		}
		lines = append(lines, line)
	}
	if s.tone != nil {
		line := fmt.Sprintf("♫ Beep tone %d", s.tone.tone)
		if s.tone.count > 0 {
			line += fmt.Sprintf(" %d/%d", s.tone.played, s.tone.count)
		}
		lines = append(lines, line)
	}
	if s.banner != nil {
		lines = append(lines, fmt.Sprintf("🔔 %s for %s", s.banner.timer, util.FormatDuration(s.banner.d)))
	}
	if s.flashlight != nil {
		line := fmt.Sprintf("✺ Flashlight every %s", s.flashlight.Step)
		if s.flashFor != coordinator.Unbounded {
			line += " for " + util.FormatDuration(s.flashFor)
		}
		lines = append(lines, line)
	}
	return lines
}

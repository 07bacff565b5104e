package coordinator

import (
	"math"
	"time"

	"github.com/penwyp/go-interval-timer/internal/core/model"
	"github.com/penwyp/go-interval-timer/internal/core/timeline"
	"github.com/penwyp/go-interval-timer/internal/core/voice"
)

// Unbounded is the flashlight duration used on stopwatch steps
const Unbounded = time.Duration(math.MaxInt64)

// dispatchOrder is the order effects fire in when a step starts. Voice and
// music follow separately because music waits for speech.
var dispatchOrder = []model.BehaviourType{
	model.BehaviourScreen,
	model.BehaviourVibration,
	model.BehaviourBeep,
	model.BehaviourCount,
	model.BehaviourNotification,
	model.BehaviourFlashlight,
}

// stopBehaviours cancels every effect. Calling it twice is harmless.
func (c *Coordinator) stopBehaviours() {
	c.generation++
	s := c.surface
	s.StopMusic()
	s.StopVibration()
	s.CloseScreen()
	s.StopSpeaking()
	s.DisableTone()
	s.DismissBannerNotification()
	s.ToggleFlashlight(nil, 0)
}

func (c *Coordinator) startBehaviours(id int, pos model.Position) {
	c.stopBehaviours()

	e := c.registry.Get(id)
	if e == nil {
		return
	}
	leaf := timeline.StepAt(e.timer, pos)
	if leaf == nil {
		return
	}
	s := c.surface

	for _, bt := range dispatchOrder {
		switch action := leaf.Find(bt).(type) {
		case model.ScreenAction:
			s.ShowScreen(e.timer, leaf.Label, action.FullScreen)
		case model.VibrationAction:
			if action.Count == 0 {
				s.StartVibration(action.Pattern.Durations(), true)
			} else {
				s.StartVibration(action.CalculatedPattern(), false)
			}
		case model.BeepAction:
			s.EnableTone(action.SoundIndex, action.Count, action.RespectOtherSound)
		case model.CountAction:
			if action.Beep {
				s.EnableTone(0, action.Times, true)
			}
		case model.NotificationAction:
			s.ShowBannerNotification(e.timer, pos, action.Duration)
		case model.FlashlightAction:
			d := leaf.Duration
			if leaf.IsHalt() {
				d = Unbounded
			}
			s.ToggleFlashlight(&action, d)
		}
	}

	music, hasMusic := leaf.Find(model.BehaviourMusic).(model.MusicAction)
	speech, hasVoice := leaf.Find(model.BehaviourVoice).(model.VoiceAction)
	if !hasVoice {
		if hasMusic {
			s.PlayMusic(music.URI, music.Loop)
		}
		return
	}

	text := voice.Content(speech, voice.Context{
		Timer:      e.timer,
		Position:   pos,
		Step:       leaf,
		Now:        c.clock.Now(),
		TwelveHour: c.twelveHour,
	})
	var done func()
	if hasMusic {
		generation := c.generation
		done = func() {
			if generation != c.generation {
				return
			}
			s.PlayMusic(music.URI, music.Loop)
		}
	}
	s.Speak(text, done)
}

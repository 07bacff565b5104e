package model

import (
	"fmt"
	"time"
)

// BehaviourType identifies a behaviour variant
type BehaviourType int

const (
	BehaviourMusic BehaviourType = iota
	BehaviourVibration
	BehaviourScreen
	BehaviourVoice
	BehaviourBeep
	BehaviourHalf
	BehaviourCount
	BehaviourNotification
	BehaviourFlashlight
	BehaviourHalt
)

var behaviourNames = map[BehaviourType]string{
	BehaviourMusic:        "music",
	BehaviourVibration:    "vibration",
	BehaviourScreen:       "screen",
	BehaviourVoice:        "voice",
	BehaviourBeep:         "beep",
	BehaviourHalf:         "half",
	BehaviourCount:        "count",
	BehaviourNotification: "notification",
	BehaviourFlashlight:   "flashlight",
	BehaviourHalt:         "halt",
}

func (t BehaviourType) String() string {
	if name, ok := behaviourNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseBehaviourType maps a definition-file name to a BehaviourType
func ParseBehaviourType(s string) (BehaviourType, error) {
	for t, name := range behaviourNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown behaviour %q", s)
}

// Behaviour is a typed side effect attached to a leaf
type Behaviour interface {
	Type() BehaviourType
	// UsesSpeech reports whether the behaviour reads something aloud
	UsesSpeech() bool
}

// MusicAction plays a sound file while the step runs
type MusicAction struct {
	Title string
	URI   string
	Loop  bool
}

func (MusicAction) Type() BehaviourType { return BehaviourMusic }
func (MusicAction) UsesSpeech() bool    { return false }

// VibrationPattern selects one of the predefined on/off rhythms
type VibrationPattern int

const (
	VibrationNormal VibrationPattern = iota
	VibrationShort
	VibrationLong
)

// Durations returns the base on/off pattern
func (p VibrationPattern) Durations() []time.Duration {
	var d time.Duration
	switch p {
	case VibrationShort:
		d = 100 * time.Millisecond
	case VibrationLong:
		d = 500 * time.Millisecond
	default:
		d = 250 * time.Millisecond
	}
	return []time.Duration{d, d}
}

// Twice returns the base pattern played two times
func (p VibrationPattern) Twice() []time.Duration {
	base := p.Durations()
	return append(base, base...)
}

// VibrationAction vibrates the device. Count 0 repeats until the step ends.
type VibrationAction struct {
	Count   int
	Pattern VibrationPattern
}

func (VibrationAction) Type() BehaviourType { return BehaviourVibration }
func (VibrationAction) UsesSpeech() bool    { return false }

// CalculatedPattern returns the pattern to play once. With a count the base
// pattern is repeated Count times behind a leading zero delay.
func (a VibrationAction) CalculatedPattern() []time.Duration {
	base := a.Pattern.Durations()
	if a.Count == 0 {
		return base
	}
	out := make([]time.Duration, 1+len(base)*a.Count)
	for i := 1; i < len(out); i++ {
		out[i] = base[(i-1)%len(base)]
	}
	return out
}

// ScreenAction brings the timer screen forward
type ScreenAction struct {
	FullScreen bool
}

func (ScreenAction) Type() BehaviourType { return BehaviourScreen }
func (ScreenAction) UsesSpeech() bool    { return false }

// VoiceAction reads Content aloud. Content may hold template variables.
type VoiceAction struct {
	Content  string
	Content2 string
}

func (VoiceAction) Type() BehaviourType { return BehaviourVoice }
func (VoiceAction) UsesSpeech() bool    { return true }

// BeepAction beeps on every tick
type BeepAction struct {
	Count             int
	SoundIndex        int
	RespectOtherSound bool
}

func (BeepAction) Type() BehaviourType { return BehaviourBeep }
func (BeepAction) UsesSpeech() bool    { return false }

// Half notice options
const (
	HalfOptionVoice     = 0
	HalfOptionMusic     = 1
	HalfOptionVibration = 2
)

// HalfAction announces that half of the step has elapsed
type HalfAction struct {
	Option int
}

func (HalfAction) Type() BehaviourType { return BehaviourHalf }
func (a HalfAction) UsesSpeech() bool  { return a.Option == HalfOptionVoice }

// DefaultCountTimes is the read-aloud window used when a definition omits it
const DefaultCountTimes = 5

// CountAction reads the final Times seconds aloud
type CountAction struct {
	Times int
	Beep  bool
}

func (CountAction) Type() BehaviourType { return BehaviourCount }
func (CountAction) UsesSpeech() bool    { return true }

// NotificationAction shows a banner. Duration 0 keeps it until dismissed.
type NotificationAction struct {
	Duration time.Duration
}

func (NotificationAction) Type() BehaviourType { return BehaviourNotification }
func (NotificationAction) UsesSpeech() bool    { return false }

// FlashlightAction blinks the flashlight every Step
type FlashlightAction struct {
	Step time.Duration
}

func (FlashlightAction) Type() BehaviourType { return BehaviourFlashlight }
func (FlashlightAction) UsesSpeech() bool    { return false }

// HaltAction turns the step into a stopwatch that waits for manual advance
type HaltAction struct{}

func (HaltAction) Type() BehaviourType { return BehaviourHalt }
func (HaltAction) UsesSpeech() bool    { return false }

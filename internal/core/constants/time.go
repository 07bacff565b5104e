package constants

import "time"

const (
	// Half notice fires slightly early to leave room for the cue itself
	HalfWarmUp = time.Second

	// Speech engines get woken up this long before a speaking step begins
	SpeechWarmUp = 10 * time.Second

	// Fixed amount used by rewind and by the notifier go-back
	OneMinute = time.Minute

	// Default flashlight blink interval
	FlashlightStep = 500 * time.Millisecond
)

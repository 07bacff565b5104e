package clock

import (
	"strconv"
	"time"

	"github.com/penwyp/go-interval-timer/internal/core/constants"
)

// HalfListener fires once when the countdown passes the middle of total
type HalfListener struct {
	notifyAt time.Duration
	notified bool
	half     func()
}

func NewHalfListener(total time.Duration, half func()) *HalfListener {
	return &HalfListener{
		notifyAt: total/2 + constants.HalfWarmUp,
		half:     half,
	}
}

func (l *HalfListener) OnNewTime(value time.Duration) {
	if !l.notified && value < l.notifyAt {
		l.notified = true
		l.half()
	}
}

// CountListener reads out the last seconds of a countdown. One empty call
// precedes the numbers so a speech engine has time to wake up.
type CountListener struct {
	times    int
	warmUpAt int
	warmedUp bool
	count    func(content string)
}

func NewCountListener(times int, count func(content string)) *CountListener {
	return &CountListener{
		times:    times,
		warmUpAt: times + 1,
		count:    count,
	}
}

func (l *CountListener) OnNewTime(value time.Duration) {
	remaining := int(value / time.Second)
	if !l.warmedUp && remaining <= l.warmUpAt {
		l.warmedUp = true
		l.count("")
	}
	if remaining <= l.times && l.times > 0 {
		l.times--
		l.count(strconv.Itoa(remaining))
	}
}

// WarmUpListener fires once when SpeechWarmUp or less remains
type WarmUpListener struct {
	done   bool
	warmUp func()
}

func NewWarmUpListener(warmUp func()) *WarmUpListener {
	return &WarmUpListener{warmUp: warmUp}
}

func (l *WarmUpListener) OnNewTime(value time.Duration) {
	if l.done {
		return
	}
	if value/time.Second <= constants.SpeechWarmUp/time.Second {
		l.done = true
		l.warmUp()
	}
}

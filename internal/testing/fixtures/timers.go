package fixtures

import (
	"time"

	"github.com/penwyp/go-interval-timer/internal/core/model"
)

// FakeTimerID is the id of SimpleTimerA; the other fixtures count up from it.
const FakeTimerID = 434

// StepAlpha is a plain one-minute step
func StepAlpha() model.Leaf {
	return model.Leaf{Label: "Step Alpha", Duration: time.Minute}
}

// StepBravo is a short notifier step with music and vibration
func StepBravo() model.Leaf {
	return model.Leaf{
		Label:    "Step Bravo",
		Duration: 5 * time.Second,
		Type:     model.StepNotifier,
		Behaviours: []model.Behaviour{
			model.MusicAction{Title: "Sun", URI: "uri: sun", Loop: false},
			model.VibrationAction{},
		},
	}
}

// StepCharles is a long end-type step with screen and voice
func StepCharles() model.Leaf {
	return model.Leaf{
		Label:    "Step Charles",
		Duration: 1000 * time.Second,
		Type:     model.StepEnd,
		Behaviours: []model.Behaviour{
			model.ScreenAction{},
			model.VoiceAction{},
		},
	}
}

// StepGroup repeats Alpha, Bravo, Charles three times
func StepGroup() model.Group {
	return model.Group{
		Name:   "Step Group",
		Loop:   3,
		Leaves: []model.Leaf{StepAlpha(), StepBravo(), StepCharles()},
	}
}

// SimpleTimerA has a single step and wants its own indicator
func SimpleTimerA() *model.Timer {
	return &model.Timer{
		ID:     FakeTimerID,
		Name:   "Timer Alpha",
		Loop:   1,
		Steps:  []model.StepContent{StepAlpha()},
		Notify: true,
	}
}

// SimpleTimerB loops two steps five times with start and end steps
func SimpleTimerB() *model.Timer {
	start := StepAlpha()
	end := StepCharles()
	return &model.Timer{
		ID:        FakeTimerID + 1,
		Name:      "Timer Bravo",
		Loop:      5,
		Steps:     []model.StepContent{StepAlpha(), StepBravo()},
		StartStep: &start,
		EndStep:   &end,
	}
}

// AdvancedTimer mixes leaves and two groups, with start and end steps
func AdvancedTimer() *model.Timer {
	start := StepAlpha()
	end := StepCharles()
	return &model.Timer{
		ID:   FakeTimerID + 2,
		Name: "Timer Advanced",
		Loop: 5,
		Steps: []model.StepContent{
			StepAlpha(),
			StepGroup(),
			StepBravo(),
			StepCharles(),
			StepGroup(),
		},
		StartStep: &start,
		EndStep:   &end,
	}
}

// LeafTimer builds a timer of plain leaves with the given durations
func LeafTimer(id int, name string, loop int, durations ...time.Duration) *model.Timer {
	steps := make([]model.StepContent, len(durations))
	for i, d := range durations {
		steps[i] = model.Leaf{Label: name + " step", Duration: d}
	}
	return &model.Timer{ID: id, Name: name, Loop: loop, Steps: steps}
}

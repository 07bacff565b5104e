package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTimer() *Timer {
	end := Leaf{Label: "cool", Duration: time.Minute, Behaviours: []Behaviour{VoiceAction{Content: "done"}}}
	return &Timer{
		ID:   7,
		Name: "sample",
		Loop: 2,
		Steps: []StepContent{
			Leaf{Label: "a", Duration: 10 * time.Second, Behaviours: []Behaviour{BeepAction{}}},
			Group{Name: "g", Loop: 3, Leaves: []Leaf{
				{Label: "b", Duration: 20 * time.Second},
				{Label: "c", Duration: 5 * time.Second},
			}},
		},
		EndStep: &end,
	}
}

func TestTimer_Lengths(t *testing.T) {
	timer := sampleTimer()
	group := timer.Steps[1].(Group)

	assert.Equal(t, 25*time.Second, group.OnceLength())
	assert.Equal(t, 75*time.Second, group.Length())
	assert.Equal(t, 85*time.Second, timer.OnceLength())
	assert.Equal(t, 7, timer.StepCount())
}

func TestTimer_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Timer)
		wantErr error
		errText string
	}{
		{name: "valid", mutate: func(*Timer) {}},
		{name: "no steps", mutate: func(tm *Timer) { tm.Steps = nil }, wantErr: ErrNoSteps},
		{name: "zero loop", mutate: func(tm *Timer) { tm.Loop = 0 }, wantErr: ErrInvalidLoop},
		{
			name:    "zero group loop",
			mutate:  func(tm *Timer) { tm.Steps[1] = Group{Name: "g", Leaves: []Leaf{{Label: "x"}}} },
			wantErr: ErrInvalidLoop,
		},
		{
			name:    "empty group",
			mutate:  func(tm *Timer) { tm.Steps[1] = Group{Name: "g", Loop: 1} },
			errText: "empty group",
		},
		{
			name:    "negative duration",
			mutate:  func(tm *Timer) { tm.Steps[0] = Leaf{Duration: -time.Second} },
			errText: "negative duration",
		},
		{name: "self trigger", mutate: func(tm *Timer) { tm.TriggerID = tm.ID }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timer := sampleTimer()
			tt.mutate(timer)
			err := timer.Validate()
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errText != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errText)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestTimer_Clone(t *testing.T) {
	original := sampleTimer()
	clone := original.Clone()

	require.Equal(t, original, clone)
	assert.Nil(t, clone.Steps[1].(Group).Leaves[0].Behaviours)

	clone.Steps[0].(Leaf).Behaviours[0] = HaltAction{}
	clone.EndStep.Label = "changed"
	clone.Steps[1] = Leaf{Label: "replaced"}

	assert.Equal(t, BehaviourBeep, original.Steps[0].(Leaf).Behaviours[0].Type())
	assert.Equal(t, "cool", original.EndStep.Label)
	assert.IsType(t, Group{}, original.Steps[1])
}

func TestParseStepType(t *testing.T) {
	tests := []struct {
		in   string
		want StepType
	}{
		{"", StepNormal},
		{"normal", StepNormal},
		{"notifier", StepNotifier},
		{"start", StepStart},
		{"end", StepEnd},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStepType(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	_, err := ParseStepType("warmup")
	assert.Error(t, err)
}

package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-interval-timer/internal/core/model"
	"github.com/penwyp/go-interval-timer/internal/testing/fixtures"
)

func TestFirstAndLastIndex(t *testing.T) {
	simple := fixtures.SimpleTimerA()
	assert.Equal(t, model.StepPosition(0, 0), FirstIndex(simple))
	assert.Equal(t, model.StepPosition(0, 0), LastIndex(simple))

	advanced := fixtures.AdvancedTimer()
	assert.Equal(t, model.Start(), FirstIndex(advanced))
	assert.Equal(t, model.End(), LastIndex(advanced))

	advanced.StartStep = nil
	advanced.EndStep = nil
	assert.Equal(t, model.StepPosition(0, 0), FirstIndex(advanced))
	assert.Equal(t, model.GroupPosition(4, 4, 2, 2), LastIndex(advanced))
}

func TestStepAt(t *testing.T) {
	timer := fixtures.AdvancedTimer()
	tests := []struct {
		name  string
		pos   model.Position
		label string
	}{
		{"start", model.Start(), "Step Alpha"},
		{"end", model.End(), "Step Charles"},
		{"leaf", model.StepPosition(2, 2), "Step Bravo"},
		{"group leaf", model.GroupPosition(0, 4, 1, 2), "Step Charles"},
		{"step points at group", model.StepPosition(0, 1), ""},
		{"group points at leaf", model.GroupPosition(0, 0, 0, 0), ""},
		{"out of range", model.StepPosition(0, 9), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			leaf := StepAt(timer, tt.pos)
			if tt.label == "" {
				assert.Nil(t, leaf)
				return
			}
			require.NotNil(t, leaf)
			assert.Equal(t, tt.label, leaf.Label)
		})
	}

	assert.Nil(t, StepAt(fixtures.SimpleTimerA(), model.Start()))
}

func TestIsValid(t *testing.T) {
	timer := fixtures.AdvancedTimer()
	tests := []struct {
		name string
		pos  model.Position
		want bool
	}{
		{"start with start step", model.Start(), true},
		{"end with end step", model.End(), true},
		{"leaf", model.StepPosition(4, 3), true},
		{"loop out of range", model.StepPosition(5, 0), false},
		{"negative step", model.StepPosition(0, -1), false},
		{"step on group", model.StepPosition(0, 1), false},
		{"group leaf", model.GroupPosition(4, 1, 2, 2), true},
		{"group loop out of range", model.GroupPosition(0, 1, 3, 0), false},
		{"group step out of range", model.GroupPosition(0, 1, 0, 3), false},
		{"group on leaf", model.GroupPosition(0, 2, 0, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValid(timer, tt.pos))
		})
	}

	simple := fixtures.SimpleTimerA()
	assert.False(t, IsValid(simple, model.Start()))
	assert.False(t, IsValid(simple, model.End()))
}

func TestIsLastInTimer(t *testing.T) {
	simple := fixtures.SimpleTimerA()
	assert.True(t, IsLastInTimer(simple, model.StepPosition(0, 0)))
	assert.True(t, IsLastInTimer(simple, model.End()))

	advanced := fixtures.AdvancedTimer()
	assert.False(t, IsLastInTimer(advanced, model.GroupPosition(4, 4, 2, 2)))
	assert.True(t, IsLastInTimer(advanced, model.End()))

	advanced.EndStep = nil
	assert.True(t, IsLastInTimer(advanced, model.GroupPosition(4, 4, 2, 2)))
	assert.False(t, IsLastInTimer(advanced, model.GroupPosition(4, 4, 1, 2)))
	assert.False(t, IsLastInTimer(advanced, model.GroupPosition(3, 4, 2, 2)))
	assert.False(t, IsLastInTimer(advanced, model.Start()))
}

func TestGroupAsTimer(t *testing.T) {
	timer := fixtures.AdvancedTimer()
	pos := model.GroupPosition(2, 1, 1, 2)

	group := GroupAsTimer(timer, pos)
	require.NotNil(t, group)
	assert.Equal(t, "Step Group", group.Name)
	assert.Equal(t, 3, group.Loop)
	assert.Len(t, group.Steps, 3)
	assert.Nil(t, group.StartStep)
	assert.Equal(t, model.StepPosition(1, 2), InnerPosition(pos))
	assert.True(t, IsValid(group, InnerPosition(pos)))

	assert.Nil(t, GroupAsTimer(timer, model.StepPosition(0, 0)))
}

func TestTimerLoop(t *testing.T) {
	timer := fixtures.AdvancedTimer()
	assert.Equal(t, 0, TimerLoop(timer, model.Start()))
	assert.Equal(t, 4, TimerLoop(timer, model.End()))
	assert.Equal(t, 2, TimerLoop(timer, model.GroupPosition(2, 1, 0, 0)))
}

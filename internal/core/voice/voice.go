// Package voice expands the variables a voice behaviour may carry, such as
// {SName} or {TRemaining}, into the text that gets spoken.
package voice

import (
	"strconv"
	"strings"
	"time"

	"github.com/penwyp/go-interval-timer/internal/core/model"
	"github.com/penwyp/go-interval-timer/internal/core/timeline"
	"github.com/penwyp/go-interval-timer/internal/util"
)

// Context is the timer state a template is rendered against
type Context struct {
	Timer    *model.Timer
	Position model.Position
	Step     *model.Leaf
	// Now anchors the end-time and clock variables
	Now        time.Time
	TwelveHour bool
}

// Content returns the text to speak for action. Content2 wins when set, and a
// blank action reads the step label.
func Content(action model.VoiceAction, ctx Context) string {
	if strings.TrimSpace(action.Content2) != "" {
		return Render(action.Content2, ctx)
	}
	if strings.TrimSpace(action.Content) == "" {
		if ctx.Step == nil {
			return ""
		}
		return ctx.Step.Label
	}
	return Render(action.Content, ctx)
}

// Render replaces every {Variable} in content. Unknown variables and
// unbalanced braces are kept verbatim.
func Render(content string, ctx Context) string {
	var out, variable strings.Builder
	collecting := false

	for _, r := range content {
		switch {
		case r == '}' && collecting:
			variable.WriteRune(r)
			name := variable.String()
			if value, ok := ctx.lookup(name); ok {
				out.WriteString(value)
			} else {
				out.WriteString(name)
			}
			variable.Reset()
			collecting = false
		case r == '{':
			out.WriteString(variable.String())
			variable.Reset()
			variable.WriteRune(r)
			collecting = true
		case collecting:
			variable.WriteRune(r)
		default:
			out.WriteRune(r)
		}
	}
	out.WriteString(variable.String())
	return out.String()
}

func (c Context) lookup(name string) (string, bool) {
	t := c.Timer
	if t == nil {
		return "", false
	}

	switch name {
	case "{TName}":
		return t.Name, true
	case "{TLoop}":
		return strconv.Itoa(c.Position.DisplayLoop(t.Loop)), true
	case "{TTotalLoop}":
		return strconv.Itoa(t.Loop), true
	case "{TDuration}":
		return util.FormatDuration(timeline.TotalTime(t)), true
	case "{TElapsed}":
		return util.FormatDuration(timeline.TimeBeforeIndex(t, c.Position)), true
	case "{TElapsedPercent}":
		return util.FormatPercent(timeline.TimeBeforeIndex(t, c.Position), timeline.TotalTime(t)), true
	case "{TRemaining}":
		return util.FormatDuration(remaining(t, c.Position)), true
	case "{TRemainingPercent}":
		return util.FormatPercent(remaining(t, c.Position), timeline.TotalTime(t)), true
	case "{TEndTime}":
		return c.clock(c.Now.Add(remaining(t, c.Position))), true

	case "{GName}":
		if g := timeline.GroupAt(t, c.Position); g != nil {
			return g.Name, true
		}
		return t.Name, true
	case "{GLoop}":
		if c.Position.Kind == model.PositionGroup {
			return strconv.Itoa(c.Position.GroupStep.Loop + 1), true
		}
		return strconv.Itoa(c.Position.DisplayLoop(t.Loop)), true
	case "{GTotalLoop}":
		if g := timeline.GroupAt(t, c.Position); g != nil {
			return strconv.Itoa(g.Loop), true
		}
		return strconv.Itoa(t.Loop), true
	case "{GDuration}":
		scope, _ := c.groupScope()
		return util.FormatDuration(timeline.TotalTime(scope)), true
	case "{GElapsed}":
		scope, pos := c.groupScope()
		return util.FormatDuration(timeline.TimeBeforeIndex(scope, pos)), true
	case "{GRemaining}":
		scope, pos := c.groupScope()
		return util.FormatDuration(remaining(scope, pos)), true

	case "{SName}":
		if c.Step == nil {
			return "", true
		}
		return c.Step.Label, true
	case "{SNameNext}":
		return c.nextStepName(), true
	case "{SDuration}":
		if c.Step == nil {
			return util.FormatDuration(0), true
		}
		return util.FormatDuration(c.Step.Duration), true
	case "{SEndTime}":
		if c.Step == nil {
			return c.clock(c.Now), true
		}
		return c.clock(c.Now.Add(c.Step.Duration)), true

	case "{OClockTime}":
		return c.clock(c.Now), true
	}
	return "", false
}

// groupScope returns the timer and position group variables are measured
// against: the enclosing group when there is one, the whole timer otherwise
func (c Context) groupScope() (*model.Timer, model.Position) {
	if group := timeline.GroupAsTimer(c.Timer, c.Position); group != nil {
		return group, timeline.InnerPosition(c.Position)
	}
	return c.Timer, c.Position
}

func (c Context) nextStepName() string {
	t := c.Timer
	if len(t.Steps) == 0 || c.Position.IsEnd() {
		return ""
	}
	next, _ := timeline.Next(t.Steps, t.Loop, c.Position)
	if leaf := timeline.StepAt(t, next); leaf != nil {
		return leaf.Label
	}
	return ""
}

func (c Context) clock(at time.Time) string {
	return util.GetTimeProvider().FormatWallClock(at, c.TwelveHour)
}

func remaining(t *model.Timer, pos model.Position) time.Duration {
	return timeline.TotalTime(t) - timeline.TimeBeforeIndex(t, pos)
}

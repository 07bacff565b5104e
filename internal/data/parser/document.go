package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/penwyp/go-interval-timer/internal/core/constants"
	"github.com/penwyp/go-interval-timer/internal/core/model"
)

var ErrNestedGroup = errors.New("groups cannot contain groups")

type behaviourDoc struct {
	Type string `json:"type" yaml:"type"`

	// music
	Title string `json:"title" yaml:"title"`
	URI   string `json:"uri" yaml:"uri"`
	Loop  *bool  `json:"loop" yaml:"loop"`

	// vibration, beep
	Count   int    `json:"count" yaml:"count"`
	Pattern string `json:"pattern" yaml:"pattern"`

	// screen
	FullScreen bool `json:"full_screen" yaml:"full_screen"`

	// voice
	Content  string `json:"content" yaml:"content"`
	Content2 string `json:"content2" yaml:"content2"`

	// beep
	Sound             int   `json:"sound" yaml:"sound"`
	RespectOtherSound *bool `json:"respect_other_sound" yaml:"respect_other_sound"`

	// half
	Option string `json:"option" yaml:"option"`

	// count
	Times int  `json:"times" yaml:"times"`
	Beep  bool `json:"beep" yaml:"beep"`

	// notification
	Duration Duration `json:"duration" yaml:"duration"`

	// flashlight
	Step Duration `json:"step" yaml:"step"`
}

type stepDoc struct {
	Label      string         `json:"label" yaml:"label"`
	Duration   Duration       `json:"duration" yaml:"duration"`
	Type       string         `json:"type" yaml:"type"`
	Behaviours []behaviourDoc `json:"behaviours" yaml:"behaviours"`

	Group string    `json:"group" yaml:"group"`
	Loop  int       `json:"loop" yaml:"loop"`
	Steps []stepDoc `json:"steps" yaml:"steps"`
}

func (s stepDoc) isGroup() bool {
	return s.Group != "" || len(s.Steps) > 0
}

type timerDoc struct {
	ID        int       `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Loop      int       `json:"loop" yaml:"loop"`
	Notify    bool      `json:"notify" yaml:"notify"`
	TriggerID int       `json:"trigger_id" yaml:"trigger_id"`
	Start     *stepDoc  `json:"start" yaml:"start"`
	End       *stepDoc  `json:"end" yaml:"end"`
	Steps     []stepDoc `json:"steps" yaml:"steps"`
}

func orOne(n int) int {
	if n == 0 {
		return 1
	}
	return n
}

func (d timerDoc) toModel() (*model.Timer, error) {
	t := &model.Timer{
		ID:        d.ID,
		Name:      d.Name,
		Loop:      orOne(d.Loop),
		Notify:    d.Notify,
		TriggerID: d.TriggerID,
	}
	if t.Name == "" {
		t.Name = fmt.Sprintf("Timer %d", d.ID)
	}

	for i, sd := range d.Steps {
		if sd.isGroup() {
			g, err := sd.toGroup()
			if err != nil {
				return nil, fmt.Errorf("step %d: %w", i, err)
			}
			t.Steps = append(t.Steps, g)
			continue
		}
		leaf, err := sd.toLeaf(model.StepNormal)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		t.Steps = append(t.Steps, leaf)
	}

	if d.Start != nil {
		leaf, err := d.Start.toLeaf(model.StepStart)
		if err != nil {
			return nil, fmt.Errorf("start step: %w", err)
		}
		t.StartStep = &leaf
	}
	if d.End != nil {
		leaf, err := d.End.toLeaf(model.StepEnd)
		if err != nil {
			return nil, fmt.Errorf("end step: %w", err)
		}
		t.EndStep = &leaf
	}
	return t, nil
}

func (s stepDoc) toGroup() (model.Group, error) {
	g := model.Group{Name: s.Group, Loop: orOne(s.Loop)}
	for i, sd := range s.Steps {
		if sd.isGroup() {
			return model.Group{}, fmt.Errorf("group %q: %w", s.Group, ErrNestedGroup)
		}
		leaf, err := sd.toLeaf(model.StepNormal)
		if err != nil {
			return model.Group{}, fmt.Errorf("group %q step %d: %w", s.Group, i, err)
		}
		g.Leaves = append(g.Leaves, leaf)
	}
	return g, nil
}

func (s stepDoc) toLeaf(defaultType model.StepType) (model.Leaf, error) {
	leaf := model.Leaf{
		Label:    s.Label,
		Duration: s.Duration.Std(),
		Type:     defaultType,
	}
	if s.Type != "" {
		st, err := model.ParseStepType(strings.ToLower(s.Type))
		if err != nil {
			return model.Leaf{}, err
		}
		leaf.Type = st
	}
	for _, bd := range s.Behaviours {
		b, err := bd.toModel()
		if err != nil {
			return model.Leaf{}, fmt.Errorf("step %q: %w", s.Label, err)
		}
		leaf.Behaviours = append(leaf.Behaviours, b)
	}
	return leaf, nil
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func (b behaviourDoc) toModel() (model.Behaviour, error) {
	bt, err := model.ParseBehaviourType(strings.ToLower(b.Type))
	if err != nil {
		return nil, err
	}

	switch bt {
	case model.BehaviourMusic:
		return model.MusicAction{Title: b.Title, URI: b.URI, Loop: boolOr(b.Loop, true)}, nil
	case model.BehaviourVibration:
		pattern, err := parsePattern(b.Pattern)
		if err != nil {
			return nil, err
		}
		return model.VibrationAction{Count: b.Count, Pattern: pattern}, nil
	case model.BehaviourScreen:
		return model.ScreenAction{FullScreen: b.FullScreen}, nil
	case model.BehaviourVoice:
		return model.VoiceAction{Content: b.Content, Content2: b.Content2}, nil
	case model.BehaviourBeep:
		return model.BeepAction{
			Count:             b.Count,
			SoundIndex:        b.Sound,
			RespectOtherSound: boolOr(b.RespectOtherSound, true),
		}, nil
	case model.BehaviourHalf:
		option, err := parseHalfOption(b.Option)
		if err != nil {
			return nil, err
		}
		return model.HalfAction{Option: option}, nil
	case model.BehaviourCount:
		times := b.Times
		if times == 0 {
			times = model.DefaultCountTimes
		}
		return model.CountAction{Times: times, Beep: b.Beep}, nil
	case model.BehaviourNotification:
		return model.NotificationAction{Duration: b.Duration.Std()}, nil
	case model.BehaviourFlashlight:
		step := b.Step.Std()
		if step == 0 {
			step = constants.FlashlightStep
		}
		return model.FlashlightAction{Step: step}, nil
	case model.BehaviourHalt:
		return model.HaltAction{}, nil
	}
	return nil, fmt.Errorf("unsupported behaviour %q", b.Type)
}

func parsePattern(s string) (model.VibrationPattern, error) {
	switch strings.ToLower(s) {
	case "", "normal":
		return model.VibrationNormal, nil
	case "short":
		return model.VibrationShort, nil
	case "long":
		return model.VibrationLong, nil
	}
	return 0, fmt.Errorf("unknown vibration pattern %q", s)
}

func parseHalfOption(s string) (int, error) {
	switch strings.ToLower(s) {
	case "", "voice":
		return model.HalfOptionVoice, nil
	case "music":
		return model.HalfOptionMusic, nil
	case "vibration":
		return model.HalfOptionVibration, nil
	}
	return 0, fmt.Errorf("unknown half option %q", s)
}

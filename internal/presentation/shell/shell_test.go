package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/chzyer/readline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line string
		want Command
		err  error
	}{
		{"", Command{}, nil},
		{"   ", Command{}, nil},
		{"start 3", Command{Verb: VerbStart, ID: 3}, nil},
		{"S 3", Command{Verb: VerbStart, ID: 3}, nil},
		{"p 2", Command{Verb: VerbPause, ID: 2}, nil},
		{"back 2", Command{Verb: VerbPrev, ID: 2}, nil},
		{"add 4", Command{Verb: VerbAdd, ID: 4, Amount: time.Minute}, nil},
		{"add 4 30", Command{Verb: VerbAdd, ID: 4, Amount: 30 * time.Second}, nil},
		{"add 4 -1m30s", Command{Verb: VerbAdd, ID: 4, Amount: -90 * time.Second}, nil},
		{"rewind 4", Command{Verb: VerbRewind, ID: 4}, nil},
		{"stopall", Command{Verb: VerbStopAll}, nil},
		{"ls", Command{Verb: VerbList}, nil},
		{"status", Command{Verb: VerbStatus}, nil},
		{"status 9", Command{Verb: VerbStatus, ID: 9}, nil},
		{"exit", Command{Verb: VerbQuit}, nil},
		{"jump 3", Command{}, ErrUnknownCommand},
		{"start", Command{}, ErrMissingID},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := Parse(tt.line)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("bad arguments", func(t *testing.T) {
		for _, line := range []string{"start x", "start 0", "start -1", "add 1 soon", "status x"} {
			_, err := Parse(line)
			assert.Error(t, err, line)
		}
	})
}

func TestHelpTextCoversEveryVerb(t *testing.T) {
	help := HelpText()
	for _, v := range Verbs {
		assert.Contains(t, help, "  "+string(v), v)
	}
}

// scriptedReader replays lines and then reports EOF
type scriptedReader struct {
	lines  []string
	errs   map[int]error
	calls  int
	out    bytes.Buffer
	closed bool
}

func (r *scriptedReader) Readline() (string, error) {
	i := r.calls
	r.calls++
	if err, ok := r.errs[i]; ok {
		return "", err
	}
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func (r *scriptedReader) Stdout() io.Writer { return &r.out }
func (r *scriptedReader) Close() error      { r.closed = true; return nil }

// serve answers every request with the command verb
func serve(ctx context.Context, requests <-chan Request, got *[]Command) {
	for {
		select {
		case req := <-requests:
			*got = append(*got, req.Command)
			req.Reply <- "ok " + string(req.Command.Verb) + "\n"
		case <-ctx.Done():
			return
		}
	}
}

func TestConsole_Run(t *testing.T) {
	t.Run("commands reach the loop", func(t *testing.T) {
		reader := &scriptedReader{
			lines: []string{"start 1", "", "bogus", "help", "add 1 10s", "quit", "start 2"},
			errs:  map[int]error{1: readline.ErrInterrupt},
		}
		console := &Console{rl: reader}

		ctx, cancel := context.WithCancel(context.Background())
		requests := make(chan Request)
		var got []Command
		served := make(chan struct{})
		go func() {
			serve(ctx, requests, &got)
			close(served)
		}()

		require.NoError(t, console.Run(ctx, requests))
		cancel()
		<-served

		assert.Equal(t, []Command{
			{Verb: VerbStart, ID: 1},
			{Verb: VerbAdd, ID: 1, Amount: 10 * time.Second},
		}, got)
		out := reader.out.String()
		assert.Contains(t, out, "ok start\n")
		assert.Contains(t, out, "unknown command: bogus")
		assert.Contains(t, out, "Commands:")
		assert.Contains(t, out, "Exiting...")
		assert.Equal(t, []string{"start 2"}, reader.lines, "nothing is read after quit")
		assert.True(t, reader.closed)
	})

	t.Run("eof ends quietly", func(t *testing.T) {
		reader := &scriptedReader{}
		assert.NoError(t, (&Console{rl: reader}).Run(context.Background(), make(chan Request)))
	})

	t.Run("read error is returned", func(t *testing.T) {
		boom := errors.New("boom")
		reader := &scriptedReader{errs: map[int]error{0: boom}}
		assert.ErrorIs(t, (&Console{rl: reader}).Run(context.Background(), make(chan Request)), boom)
	})

	t.Run("cancelled context stops waiting", func(t *testing.T) {
		reader := &scriptedReader{lines: []string{"pauseall"}}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.NoError(t, (&Console{rl: reader}).Run(ctx, make(chan Request)))
		assert.Zero(t, reader.calls)
	})
}

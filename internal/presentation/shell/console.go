package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/chzyer/readline"
)

// Request carries a command to the event loop, which answers on Reply
type Request struct {
	Command Command
	Reply   chan<- string
}

// lineReader is the part of readline.Instance the console uses
type lineReader interface {
	Readline() (string, error)
	Stdout() io.Writer
	Close() error
}

// Config sets up the readline instance
type Config struct {
	Prompt      string
	HistoryFile string
}

// Console reads commands from the terminal
type Console struct {
	rl        lineReader
	closeOnce sync.Once
	closeErr  error
}

// NewConsole creates a readline backed console with completion for every verb
func NewConsole(cfg Config) (*Console, error) {
	if cfg.Prompt == "" {
		cfg.Prompt = "timer> "
	}

	items := make([]readline.PrefixCompleterInterface, 0, len(Verbs))
	for _, v := range Verbs {
		items = append(items, readline.PcItem(string(v)))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cfg.Prompt,
		HistoryFile:     cfg.HistoryFile,
		AutoComplete:    readline.NewPrefixCompleter(items...),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &Console{rl: rl}, nil
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use it for log output so the prompt is redrawn.
func (c *Console) Stdout() io.Writer {
	return c.rl.Stdout()
}

// Run reads lines until quit, EOF or ctx is done. Each parsed command is sent
// on requests and the reply printed.
func (c *Console) Run(ctx context.Context, requests chan<- Request) error {
	defer c.Close()

	out := c.rl.Stdout()
	fmt.Fprintln(out, "Type 'help' for commands.")

	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := c.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		cmd, err := Parse(line)
		if err != nil {
			fmt.Fprintf(out, "%v (type 'help' for commands)\n", err)
			continue
		}

		switch cmd.Verb {
		case "":
			continue
		case VerbHelp:
			fmt.Fprintln(out, HelpText())
			continue
		case VerbQuit:
			fmt.Fprintln(out, "Exiting...")
			return nil
		}

		reply := make(chan string, 1)
		select {
		case requests <- Request{Command: cmd, Reply: reply}:
		case <-ctx.Done():
			return nil
		}
		select {
		case text := <-reply:
			if text = strings.TrimRight(text, "\n"); text != "" {
				fmt.Fprintln(out, text)
			}
		case <-ctx.Done():
			return nil
		}
	}
}

// Close releases the terminal. A blocked Run returns afterwards.
func (c *Console) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.rl.Close()
	})
	return c.closeErr
}

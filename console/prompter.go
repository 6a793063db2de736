package console

import (
	"errors"
	"io"

	"github.com/chzyer/readline"
)

// Prompter reads one line of input per label. It returns io.EOF when the
// input is exhausted.
type Prompter interface {
	Prompt(label string) (string, error)
	Close() error
}

// ReadlinePrompter prompts on the terminal with line editing and history
type ReadlinePrompter struct {
	rl *readline.Instance
}

// NewReadlinePrompter opens a readline session. historyFile may be empty.
func NewReadlinePrompter(historyFile string) (*ReadlinePrompter, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}
	return &ReadlinePrompter{rl: rl}, nil
}

// Prompt shows label and reads a line. Ctrl-C yields an empty answer.
func (p *ReadlinePrompter) Prompt(label string) (string, error) {
	p.rl.SetPrompt(label)
	line, err := p.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", nil
	}
	if errors.Is(err, io.EOF) {
		return "", io.EOF
	}
	return line, err
}

func (p *ReadlinePrompter) Close() error {
	return p.rl.Close()
}

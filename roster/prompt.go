package roster

import (
	"bufio"
	"io"
	"os"
	"strings"
	"sync"
)

type promptSource struct {
	in        io.Reader
	out       io.Writer
	prompt    string
	interrupt <-chan os.Signal

	readOnce sync.Once
	lines    chan string
}

// NewPromptSource reads player names interactively, line by line. The
// prompt string is printed before every read when non-empty (i.e. when
// stdin is a terminal). Closing the input or a signal on the interrupt
// channel ends the sequence cleanly. A nil interrupt channel is fine: the
// source then ends on end of input only.
func NewPromptSource(in io.Reader, out io.Writer, prompt string, interrupt <-chan os.Signal) Source {
	return &promptSource{
		in:        in,
		out:       out,
		prompt:    prompt,
		interrupt: interrupt,
	}
}

func (s *promptSource) Next() (*Entry, error) {
	s.readOnce.Do(func() {
		s.lines = make(chan string)
		go s.readLines()
	})

	for {
		if s.prompt != "" {
			_, _ = io.WriteString(s.out, s.prompt)
		}

		select {
		case line, ok := <-s.lines:
			if !ok {
				return nil, io.EOF
			}

			username := strings.TrimSpace(line)
			if username == "" {
				continue
			}

			return &Entry{Username: username}, nil
		case <-s.interrupt:
			return nil, io.EOF
		}
	}
}

func (s *promptSource) readLines() {
	scanner := bufio.NewScanner(s.in)
	for scanner.Scan() {
		s.lines <- scanner.Text()
	}

	close(s.lines)
}

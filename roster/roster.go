// Package roster supplies the sequences of players whose sprites should be
// rendered: the people database, whitelist files, command arguments or an
// interactive prompt. Every source yields the same uniform entries.
package roster

import "io"

// Entry is a single player to render. ProfileId and FileId are optional:
// a missing ProfileId means the username has to be resolved through Mojang,
// a missing FileId means the output file is named after the username.
type Entry struct {
	Username  string
	ProfileId string
	FileId    string
}

// Source yields roster entries one by one. io.EOF signals the regular end
// of the sequence.
type Source interface {
	Next() (*Entry, error)
}

type Emitter interface {
	Emit(topic string, args ...interface{})
}

type sliceSource struct {
	entries []*Entry
}

func (s *sliceSource) Next() (*Entry, error) {
	if len(s.entries) == 0 {
		return nil, io.EOF
	}

	entry := s.entries[0]
	s.entries = s.entries[1:]

	return entry, nil
}

// NewStaticSource wraps an explicit list of usernames, e.g. the command
// line arguments.
func NewStaticSource(usernames ...string) Source {
	entries := make([]*Entry, len(usernames))
	for i, username := range usernames {
		entries[i] = &Entry{Username: username}
	}

	return &sliceSource{entries: entries}
}

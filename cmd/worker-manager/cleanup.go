package main

import "talent-match-workers/internal/common/logger"

type closer struct {
	name  string
	close func() error
}

// cleanupStack releases backing clients in reverse order of acquisition.
// run is deferred right after the first client connects so a failed init
// step still closes everything opened before it.
type cleanupStack struct {
	closers []closer
}

func (s *cleanupStack) push(name string, close func() error) {
	s.closers = append(s.closers, closer{name: name, close: close})
}

func (s *cleanupStack) run(log logger.Logger) {
	for i := len(s.closers) - 1; i >= 0; i-- {
		c := s.closers[i]
		if err := c.close(); err != nil {
			log.Error("failed to close client", map[string]interface{}{"client": c.name, "error": err.Error()})
		}
	}
	s.closers = nil
}

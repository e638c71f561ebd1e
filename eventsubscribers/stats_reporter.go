package eventsubscribers

import (
	"net/http"
	"strings"

	"github.com/mono83/slf"

	"github.com/wurstmineberg/playerhead/api/mojang"
)

type StatsReporter struct {
	slf.StatsReporter
	Prefix string
}

func (s *StatsReporter) ConfigureWithDispatcher(d Subscriber) {
	// Per request events
	d.Subscribe("playerhead:before_request", s.handleBeforeRequest)
	d.Subscribe("playerhead:after_request", s.handleAfterRequest)

	// Mojang api events
	d.Subscribe("skins:usernames:after_call", func(username string, profile *mojang.ProfileInfo, err error) {
		if err != nil {
			s.incCounter("mojang.usernames.failed")
			return
		}

		s.incCounter("mojang.usernames.resolved")
	})
	d.Subscribe("skins:textures:after_call", func(profileId string, profile *mojang.ProfileResponse, err error) {
		if err != nil {
			s.incCounter("mojang.textures.failed")
			return
		}

		s.incCounter("mojang.textures.resolved")
	})
	d.Subscribe("skins:fallback", func(profileId string, model string) {
		s.incCounter("skins.fallback." + model)
	})
	d.Subscribe("mojang:rate_limited", s.incCounterHandler("mojang.rate_limited"))
	d.Subscribe("mojang:rate_limit_exhausted", s.incCounterHandler("mojang.rate_limit_exhausted"))

	// Batch generation events
	d.Subscribe("heads:written", s.incCounterHandler("heads.written"))
	d.Subscribe("heads:player_failed", s.incCounterHandler("heads.failed"))
	d.Subscribe("roster:person_skipped", s.incCounterHandler("roster.skipped"))
}

func (s *StatsReporter) handleBeforeRequest(req *http.Request) {
	var key string
	p := req.URL.Path
	if p == "/heads" {
		key = "heads.get_request"
	} else if strings.HasPrefix(p, "/heads/") {
		key = "heads.request"
	} else if strings.HasPrefix(p, "/bodies/") {
		key = "bodies.request"
	} else {
		return
	}

	s.incCounter(key)
}

func (s *StatsReporter) handleAfterRequest(req *http.Request, code int) {
	p := req.URL.Path
	if p != "/heads" && !strings.HasPrefix(p, "/heads/") && !strings.HasPrefix(p, "/bodies/") {
		return
	}

	if code == http.StatusNotFound {
		s.incCounter("players.not_found")
	} else if code == http.StatusBadGateway {
		s.incCounter("players.upstream_failed")
	}
}

func (s *StatsReporter) incCounterHandler(name string) func(...interface{}) {
	return func(...interface{}) {
		s.incCounter(name)
	}
}

func (s *StatsReporter) incCounter(name string) {
	s.IncCounter(s.key(name), 1)
}

func (s *StatsReporter) key(name string) string {
	if s.Prefix == "" {
		return name
	}

	return strings.Join([]string{s.Prefix, name}, ".")
}

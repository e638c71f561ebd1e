package eventsubscribers

import (
	"context"
	"sync"
	"time"

	"github.com/etherlabsio/healthcheck/v2"

	"github.com/wurstmineberg/playerhead/api/mojang"
)

// MojangTexturesChecker reports unhealthy while the most recent profile
// request against the Mojang api resulted in an error. The error clears
// itself after resetDuration so that an isolated failure does not keep
// the service marked down forever.
func MojangTexturesChecker(dispatcher Subscriber, resetDuration time.Duration) healthcheck.CheckerFunc {
	holder := &expiringErrHolder{D: resetDuration}
	dispatcher.Subscribe("skins:textures:after_call", func(profileId string, profile *mojang.ProfileResponse, err error) {
		holder.Set(err)
	})

	return func(ctx context.Context) error {
		return holder.Get()
	}
}

type expiringErrHolder struct {
	D   time.Duration
	err error
	l   sync.Mutex
	t   *time.Timer
}

func (h *expiringErrHolder) Get() error {
	h.l.Lock()
	defer h.l.Unlock()

	return h.err
}

func (h *expiringErrHolder) Set(err error) {
	h.l.Lock()
	defer h.l.Unlock()
	if h.t != nil {
		h.t.Stop()
		h.t = nil
	}

	h.err = err
	if err != nil {
		h.t = time.AfterFunc(h.D, func() {
			h.Set(nil)
		})
	}
}

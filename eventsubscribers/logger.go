package eventsubscribers

import (
	"net"
	"net/http"
	"net/url"
	"syscall"
	"time"

	"github.com/mono83/slf"
	"github.com/mono83/slf/wd"

	"github.com/wurstmineberg/playerhead/api/mojang"
)

type Subscriber interface {
	Subscribe(topic string, fn interface{})
}

type Logger struct {
	slf.Logger
}

func (l *Logger) ConfigureWithDispatcher(d Subscriber) {
	d.Subscribe("playerhead:after_request", l.handleAfterRequest)

	d.Subscribe("skins:usernames:after_call", l.createMojangErrorHandler("usernames"))
	d.Subscribe("skins:textures:after_call", l.createMojangErrorHandler("textures"))
	d.Subscribe("skins:textures:malformed", func(profileId string, err error) {
		l.Error("Unable to decode the textures property of :profileId: :err",
			wd.StringParam("profileId", profileId),
			wd.ErrParam(err),
		)
	})
	d.Subscribe("skins:fallback", func(profileId string, model string) {
		l.Info("Profile :profileId has no custom skin, falling back to the :model skin",
			wd.StringParam("profileId", profileId),
			wd.StringParam("model", model),
		)
	})

	d.Subscribe("mojang:rate_limited", func(url string, attempt int, delay time.Duration) {
		l.Warning("Mojang rate limited the request to :url, retrying in :delay (attempt :attempt)",
			wd.StringParam("url", url),
			wd.StringParam("delay", delay.String()),
			wd.IntParam("attempt", attempt),
		)
	})
	d.Subscribe("mojang:rate_limit_exhausted", func(url string) {
		l.Warning("Mojang rate limited the request to :url on every attempt, giving up",
			wd.StringParam("url", url),
		)
	})
	d.Subscribe("mojang:response_malformed", func(url string, body []byte, err error) {
		l.Error("Received a malformed response from :url: :err",
			wd.StringParam("url", url),
			wd.ErrParam(err),
		)
	})

	d.Subscribe("roster:person_skipped", func(wmbId string) {
		l.Warning("Skipping :person: no Minecraft nick on record",
			wd.StringParam("person", wmbId),
		)
	})

	d.Subscribe("heads:written", func(username string, path string) {
		l.Info("Wrote :path for :username",
			wd.StringParam("path", path),
			wd.StringParam("username", username),
		)
	})
	d.Subscribe("heads:player_failed", func(username string, err error) {
		l.Error("Unable to write a head for :username: :err",
			wd.StringParam("username", username),
			wd.ErrParam(err),
		)
	})
}

func (l *Logger) handleAfterRequest(req *http.Request, statusCode int) {
	var ip string
	if req.RemoteAddr != "" {
		ip, _, _ = net.SplitHostPort(req.RemoteAddr)
	}

	path := req.URL.Path
	if req.URL.RawQuery != "" {
		path += "?" + req.URL.RawQuery
	}

	l.Info(":ip - - \":method :path\" :statusCode - \":userAgent\" \":forwardedIp\"",
		wd.StringParam("ip", ip),
		wd.StringParam("method", req.Method),
		wd.StringParam("path", path),
		wd.IntParam("statusCode", statusCode),
		wd.StringParam("userAgent", req.UserAgent()),
		wd.StringParam("forwardedIp", req.Header.Get("X-Forwarded-For")),
	)
}

func (l *Logger) createMojangErrorHandler(provider string) func(identity string, result interface{}, err error) {
	providerParam := wd.NameParam(provider)
	return func(identity string, result interface{}, err error) {
		if err == nil {
			return
		}

		errParam := wd.ErrParam(err)

		l.Debug("Mojang "+provider+" provider resulted an error :err", errParam)

		switch err.(type) {
		case *mojang.ProfileNotFoundError:
			l.Info(":name: :err", providerParam, errParam)
			return
		case *mojang.TooManyRequestsError:
			l.Warning(":name: :err", providerParam, errParam)
			return
		case *mojang.ServerError:
			l.Warning(":name: :err", providerParam, errParam)
			return
		case *mojang.ResponseDecodeError:
			l.Error(":name: Unable to decode the Mojang response: :err", providerParam, errParam)
			return
		case net.Error:
			if err.(net.Error).Timeout() {
				return
			}

			if _, ok := err.(*url.Error); ok {
				return
			}

			if opErr, ok := err.(*net.OpError); ok && (opErr.Op == "dial" || opErr.Op == "read") {
				return
			}

			if err == syscall.ECONNREFUSED {
				return
			}
		}

		l.Error(":name: Unexpected Mojang response error: :err", providerParam, errParam)
	}
}

// Package version holds the application version information.
// Values are substituted at build time:
//
//	go build -ldflags "-X github.com/wurstmineberg/playerhead/version.version=1.0.0 -X github.com/wurstmineberg/playerhead/version.commit=$(git rev-parse HEAD)"
package version

var (
	version = "unversioned"
	commit  = ""
)

func Version() string {
	return version
}

func Commit() string {
	return commit
}

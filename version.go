package contribviolin

import (
	"reflect"
	"strconv"
	"strings"
)

// BinaryGitHash is the Git hash of the binary file which is executing.
// It is set with -ldflags "-X github.com/cyraxred/contribviolin.BinaryGitHash=...".
var BinaryGitHash = "<unknown>"

// BinaryVersion is the major API version. It matches the /vN suffix of the package path.
var BinaryVersion = 1

type versionProbe struct{}

func init() {
	parts := strings.Split(reflect.TypeOf(versionProbe{}).PkgPath(), "/")
	last := parts[len(parts)-1]
	if len(last) > 1 && last[0] == 'v' {
		if version, err := strconv.Atoi(last[1:]); err == nil {
			BinaryVersion = version
		}
	}
}

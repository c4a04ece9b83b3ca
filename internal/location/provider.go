// Package location reports the device position as "<lat> <lon> <alt-or-0>".
package location

import (
	"context"
	"strings"
)

type Provider interface {
	CurrentGeo(ctx context.Context) (string, bool)
}

// Static always reports the same position. An empty string means unknown.
type Static string

func (s Static) CurrentGeo(ctx context.Context) (string, bool) {
	geo := strings.TrimSpace(string(s))
	return geo, geo != ""
}

type none struct{}

func (none) CurrentGeo(ctx context.Context) (string, bool) { return "", false }

// None never knows where it is.
var None Provider = none{}

package gateway

import (
	"net"
	"net/url"
	"strings"
)

// Platform is the runtime the client is built for.
type Platform string

const (
	PlatformWeb     Platform = "web"
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
)

// Default backend roots per runtime.
const (
	DefaultBaseURL        = "http://localhost:3000/api"
	DefaultAndroidBaseURL = "http://10.0.2.2:3000/api"
	androidEmulatorHostIP = "10.0.2.2"
	loopbackHostname      = "localhost"
)

// ResolveBaseURL picks the backend root for platform.
//
// An explicit override wins. On Android a localhost override is rewritten to
// the emulator's host loopback address, keeping scheme, port and path; any
// other override (e.g. a LAN address for a physical device) passes through
// unchanged.
func ResolveBaseURL(override string, platform Platform) string {
	override = strings.TrimSpace(override)
	isAndroid := strings.EqualFold(string(platform), string(PlatformAndroid))

	if override == "" {
		if isAndroid {
			return DefaultAndroidBaseURL
		}
		return DefaultBaseURL
	}
	if !isAndroid {
		return override
	}
	return rewriteLoopback(override)
}

func rewriteLoopback(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return strings.Replace(raw, loopbackHostname, androidEmulatorHostIP, 1)
	}
	if !strings.EqualFold(u.Hostname(), loopbackHostname) {
		return raw
	}
	if port := u.Port(); port != "" {
		u.Host = net.JoinHostPort(androidEmulatorHostIP, port)
	} else {
		u.Host = androidEmulatorHostIP
	}
	return u.String()
}

package infra

import (
	"fmt"
	"io"
	"net/url"
)

// ANSI Color Codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorCyan   = "\033[36m"
)

// hostMode describes where requests go. The key travels in a header, so a
// plain http host other than loopback is flagged.
func hostMode(host string) (color, desc string, warn bool) {
	u, err := url.Parse(host)
	if err != nil {
		return ColorRed, "INVALID HOST", true
	}
	switch {
	case u.Scheme == "https":
		return ColorGreen, "TLS", false
	case u.Hostname() == "localhost" || u.Hostname() == "127.0.0.1" || u.Hostname() == "::1":
		return ColorCyan, "LOCAL", false
	}
	return ColorYellow, "UNENCRYPTED", true
}

// PrintBanner writes the target server, storage and version to w.
func PrintBanner(w io.Writer, cfg *Config) {
	color, desc, warn := hostMode(cfg.API.Host)

	key := "not set"
	if cfg.API.Key != "" {
		key = "set"
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s###########################################################%s\n", color, ColorReset)
	fmt.Fprintf(w, "%s#   %-53s #%s\n", color, cfg.App.Name+" "+cfg.App.Version, ColorReset)
	fmt.Fprintf(w, "%s#   HOST:    %-44s #%s\n", color, cfg.API.Host, ColorReset)
	fmt.Fprintf(w, "%s#   MODE:    %-44s #%s\n", color, desc, ColorReset)
	fmt.Fprintf(w, "%s#   KEY:     %-44s #%s\n", color, key, ColorReset)
	fmt.Fprintf(w, "%s#   STORAGE: %-44s #%s\n", color, cfg.Storage.Driver, ColorReset)

	if warn && cfg.API.Key != "" {
		fmt.Fprintf(w, "%s#   WARNING: API KEY IS SENT WITHOUT TLS                  #%s\n", ColorRed, ColorReset)
	}

	fmt.Fprintf(w, "%s###########################################################%s\n", color, ColorReset)
	fmt.Fprintln(w)
}

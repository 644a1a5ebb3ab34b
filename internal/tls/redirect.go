package tls

import (
	"fmt"
	"net/http"
	"strings"

	"todoview-api/internal/logging"
)

// HTTPSRedirectHandler creates an HTTP handler that redirects to HTTPS
func HTTPSRedirectHandler(httpsPort string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host := r.Host
		if colonPos := strings.LastIndex(host, ":"); colonPos != -1 {
			host = host[:colonPos]
		}

		var httpsURL string
		if httpsPort == "443" {
			httpsURL = fmt.Sprintf("https://%s%s", host, r.RequestURI)
		} else {
			httpsURL = fmt.Sprintf("https://%s:%s%s", host, httpsPort, r.RequestURI)
		}

		logging.Logger.WithFields(map[string]interface{}{
			"client_ip": r.RemoteAddr,
			"https_url": httpsURL,
			"method":    r.Method,
		}).Debug("HTTP to HTTPS redirect")

		http.Redirect(w, r, httpsURL, http.StatusMovedPermanently)
	})
}

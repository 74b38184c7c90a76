package httputil

import "net/http"

// RequestOrigin resolves the public origin of a request, used to build
// publication and unsubscribe URLs in outbound emails. Honors
// X-Forwarded-Proto when the service runs behind a proxy.
func RequestOrigin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}

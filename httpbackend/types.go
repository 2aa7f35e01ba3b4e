package httpbackend

import (
	"time"

	"github.com/nabbar/gsk/certificates"
)

// Options configures the "http" and "https" backends registered by
// Register. A single Options value is shared by every Transfer using
// either scheme; per-transfer behavior (timeout, redirects, upload,
// modifiers) lives in urltransfer.Config instead.
type Options struct {
	// TLS supplies client-certificate and root-CA material for https.
	// A nil value uses the platform's default trust store with no
	// client certificate.
	TLS certificates.TLSConfig
	// DialTimeout bounds the initial TCP connect. Zero means no limit
	// beyond the Transfer's own Config.Timeout.
	DialTimeout time.Duration
}

func (o Options) tlsConfig() certificates.TLSConfig {
	if o.TLS != nil {
		return o.TLS
	}
	return certificates.New()
}

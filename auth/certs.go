package auth

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultCertsURL serves the signing certificates for Firebase ID tokens.
const DefaultCertsURL = "https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"

// certCache fetches the provider's kid -> PEM certificate map and keeps the
// parsed public keys until the response's max-age runs out.
type certCache struct {
	url    string
	client *http.Client

	mu      sync.RWMutex
	keys    map[string]*rsa.PublicKey
	expires time.Time
}

func newCertCache(url string) *certCache {
	if url == "" {
		url = DefaultCertsURL
	}
	return &certCache{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *certCache) Key(kid string) (*rsa.PublicKey, error) {
	c.mu.RLock()
	key, ok := c.keys[kid]
	fresh := time.Now().Before(c.expires)
	c.mu.RUnlock()
	if ok && fresh {
		return key, nil
	}

	if err := c.refresh(); err != nil {
		// A stale key beats no key when the provider is unreachable.
		if ok {
			return key, nil
		}
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if key, ok := c.keys[kid]; ok {
		return key, nil
	}
	return nil, fmt.Errorf("no certificate for kid %q", kid)
}

func (c *certCache) refresh() error {
	resp, err := c.client.Get(c.url)
	if err != nil {
		return fmt.Errorf("fetch signing certs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch signing certs: unexpected status %d", resp.StatusCode)
	}

	var certs map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&certs); err != nil {
		return fmt.Errorf("decode signing certs: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(certs))
	for kid, raw := range certs {
		block, _ := pem.Decode([]byte(raw))
		if block == nil {
			return fmt.Errorf("certificate %q is not PEM", kid)
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return fmt.Errorf("parse certificate %q: %w", kid, err)
		}
		pub, ok := cert.PublicKey.(*rsa.PublicKey)
		if !ok {
			return fmt.Errorf("certificate %q is not RSA", kid)
		}
		keys[kid] = pub
	}

	c.mu.Lock()
	c.keys = keys
	c.expires = time.Now().Add(maxAge(resp.Header.Get("Cache-Control")))
	c.mu.Unlock()
	return nil
}

// maxAge pulls the max-age out of a Cache-Control header, with a
// conservative fallback.
func maxAge(header string) time.Duration {
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if v, ok := strings.CutPrefix(part, "max-age="); ok {
			if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
				return time.Duration(secs) * time.Second
			}
		}
	}
	return 5 * time.Minute
}

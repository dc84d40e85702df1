// Package geoip resolves the country of a submitter for request logs.
package geoip

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/oschwald/geoip2-golang"
)

// ErrInvalidIP is returned for addresses that cannot be parsed.
var ErrInvalidIP = errors.New("geoip: invalid ip")

// CountryResolver resolves ISO country codes from IP addresses.
type CountryResolver interface {
	CountryCode(ip string) (string, error)
	Close() error
}

// Resolver provides country lookups backed by a MaxMind GeoIP2 or GeoLite2
// country database.
type Resolver struct {
	reader *geoip2.Reader
}

// Nop resolves every address to the empty country code.
type Nop struct{}

func (Nop) CountryCode(string) (string, error) { return "", nil }

func (Nop) Close() error { return nil }

// NewResolver opens the database at path. An empty path yields Nop.
func NewResolver(path string) (CountryResolver, error) {
	if strings.TrimSpace(path) == "" {
		return Nop{}, nil
	}
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("geoip: open database: %w", err)
	}
	return &Resolver{reader: reader}, nil
}

// CountryCode returns the ISO country code for ip, or "" when the database has
// no entry for it.
func (r *Resolver) CountryCode(ip string) (string, error) {
	parsed := net.ParseIP(strings.TrimSpace(ip))
	if parsed == nil {
		return "", fmt.Errorf("%w %q", ErrInvalidIP, ip)
	}
	record, err := r.reader.Country(parsed)
	if err != nil {
		return "", fmt.Errorf("geoip: lookup country: %w", err)
	}
	return record.Country.IsoCode, nil
}

// Close releases the database reader.
func (r *Resolver) Close() error {
	return r.reader.Close()
}

var (
	_ CountryResolver = (*Resolver)(nil)
	_ CountryResolver = Nop{}
)

package discovery

import (
	"fmt"
	"sort"
	"strings"

	"github.com/staconn/staconn-go/pkg/netif"
)

// TXTRecordMap is a map of TXT record key-value pairs.
type TXTRecordMap map[string]string

// ParseTXT parses "key=value" strings. A bare key is a boolean flag with an
// empty value.
func ParseTXT(strs []string) (TXTRecordMap, error) {
	txt := make(TXTRecordMap, len(strs))
	for _, s := range strs {
		key, value, _ := strings.Cut(s, "=")
		if key == "" {
			return nil, fmt.Errorf("%w: %q has no key", ErrInvalidTXTRecord, s)
		}
		txt[key] = value
	}
	return txt, txt.Validate()
}

// Validate checks key syntax and record length.
func (t TXTRecordMap) Validate() error {
	for k, v := range t {
		if k == "" || strings.ContainsRune(k, '=') {
			return fmt.Errorf("%w: invalid key %q", ErrInvalidTXTRecord, k)
		}
		for _, r := range k {
			if r < 0x20 || r > 0x7e {
				return fmt.Errorf("%w: key %q is not printable ASCII", ErrInvalidTXTRecord, k)
			}
		}
		if len(k)+1+len(v) > MaxTXTRecordLen {
			return fmt.Errorf("%w: record %q exceeds %d bytes", ErrInvalidTXTRecord, k, MaxTXTRecordLen)
		}
	}
	return nil
}

// Strings converts the map to "key=value" strings, sorted by key so that
// repeated announcements are byte-identical.
func (t TXTRecordMap) Strings() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make([]string, 0, len(keys))
	for _, k := range keys {
		result = append(result, k+"="+t[k])
	}
	return result
}

// StationTXT builds the records announced for a connected station. Extra
// records are merged in; reserved keys in extra are rejected.
func StationTXT(hostname string, info netif.IPInfo, extra TXTRecordMap) (TXTRecordMap, error) {
	txt := TXTRecordMap{
		TXTKeyIP:      info.IP.String(),
		TXTKeyNetmask: info.Netmask.String(),
	}
	if hostname != "" {
		txt[TXTKeyHost] = hostname
	}
	if info.Gateway.IsValid() {
		txt[TXTKeyGateway] = info.Gateway.String()
	}

	for k, v := range extra {
		if isReserved(k) {
			return nil, fmt.Errorf("%w: %s", ErrReservedTXTKey, k)
		}
		txt[k] = v
	}
	return txt, txt.Validate()
}

func isReserved(key string) bool {
	switch key {
	case TXTKeyHost, TXTKeyIP, TXTKeyNetmask, TXTKeyGateway:
		return true
	}
	return false
}

// ValidateInstanceName checks if an instance name is valid for mDNS.
func ValidateInstanceName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidInstanceName)
	}
	if len(name) > MaxInstanceNameLen {
		return fmt.Errorf("%w: exceeds %d characters", ErrInvalidInstanceName, MaxInstanceNameLen)
	}
	return nil
}

// ValidateServiceType checks the "_name._tcp" / "_name._udp" form.
func ValidateServiceType(service string) error {
	name, proto, ok := strings.Cut(service, ".")
	if !ok || len(name) < 2 || name[0] != '_' {
		return fmt.Errorf("%w: %q", ErrInvalidServiceType, service)
	}
	if proto != "_tcp" && proto != "_udp" {
		return fmt.Errorf("%w: %q must end in ._tcp or ._udp", ErrInvalidServiceType, service)
	}
	return nil
}

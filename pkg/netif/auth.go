package netif

import (
	"fmt"
	"strings"
)

// AuthMode is the weakest authentication mode the station accepts.
type AuthMode uint8

const (
	AuthOpen AuthMode = iota
	AuthWEP
	AuthWPAPSK
	AuthWPA2PSK
	AuthWPAWPA2PSK
	AuthWPA3PSK
	AuthWPA2WPA3PSK
	AuthWAPIPSK
)

var authModeNames = []string{
	AuthOpen:        "open",
	AuthWEP:         "wep",
	AuthWPAPSK:      "wpa-psk",
	AuthWPA2PSK:     "wpa2-psk",
	AuthWPAWPA2PSK:  "wpa-wpa2-psk",
	AuthWPA3PSK:     "wpa3-psk",
	AuthWPA2WPA3PSK: "wpa2-wpa3-psk",
	AuthWAPIPSK:     "wapi-psk",
}

// String returns the configuration name of the mode.
func (a AuthMode) String() string {
	if int(a) < len(authModeNames) {
		return authModeNames[a]
	}
	return "unknown"
}

// RequiresPassphrase reports whether the mode needs a credential.
func (a AuthMode) RequiresPassphrase() bool {
	return a != AuthOpen
}

// ParseAuthMode parses a configuration name. Underscores are accepted in place
// of dashes and matching is case-insensitive.
func ParseAuthMode(s string) (AuthMode, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for i, name := range authModeNames {
		if name == norm {
			return AuthMode(i), nil
		}
	}
	return AuthOpen, fmt.Errorf("unknown auth mode %q", s)
}

// ScanMethod selects how the station scans for the configured SSID.
type ScanMethod uint8

const (
	// ScanAllChannels scans every channel before choosing an access point.
	ScanAllChannels ScanMethod = iota
	// ScanFast stops at the first matching access point.
	ScanFast
)

// SortMethod orders candidate access points after an all-channel scan.
type SortMethod uint8

const (
	SortBySignal SortMethod = iota
	SortBySecurity
)

// DefaultRSSIThreshold accepts any signal strength.
const DefaultRSSIThreshold int8 = -127

// StationConfig is handed to the stack when the station is started.
type StationConfig struct {
	SSID       string
	Passphrase string

	// PSK is the derived pre-shared key. Stacks that accept a raw PSK use it
	// instead of Passphrase.
	PSK []byte

	AuthThreshold AuthMode
	ScanMethod    ScanMethod
	SortMethod    SortMethod
	RSSIThreshold int8
}

// String omits credentials.
func (c StationConfig) String() string {
	return fmt.Sprintf("ssid=%q auth>=%s rssi>=%d", c.SSID, c.AuthThreshold, c.RSSIThreshold)
}

// Package config loads station configuration from YAML.
//
// A minimal file only names the network:
//
//	wifi:
//	  ssid: home
//	  passphrase: correct horse
//
// Everything else has defaults (see Default). Durations are Go duration
// strings ("500ms", "30s"). ToConnection turns a validated Config into a
// connection.Config, deriving the WPA pre-shared key from the passphrase.
package config

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/netip"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/staconn/staconn-go/pkg/connection"
	"github.com/staconn/staconn-go/pkg/discovery"
	"github.com/staconn/staconn-go/pkg/log"
	"github.com/staconn/staconn-go/pkg/netif"
)

// Config is the on-disk station configuration.
type Config struct {
	Interface  InterfaceConfig  `yaml:"interface"`
	WiFi       WiFiConfig       `yaml:"wifi"`
	Addressing AddressingConfig `yaml:"addressing"`
	Retry      RetryConfig      `yaml:"retry"`
	Log        LogConfig        `yaml:"log"`
	Discovery  DiscoveryConfig  `yaml:"discovery"`
}

// InterfaceConfig configures the station interface itself.
type InterfaceConfig struct {
	// Hostname is announced through DHCP and mDNS.
	Hostname string `yaml:"hostname"`

	// MAC overrides the factory address ("02:11:22:33:44:55").
	MAC string `yaml:"mac"`
}

// WiFiConfig selects the network and how to join it.
type WiFiConfig struct {
	SSID       string `yaml:"ssid"`
	Passphrase string `yaml:"passphrase"`

	// AuthThreshold is the weakest acceptable security, e.g. "wpa2-psk".
	AuthThreshold string `yaml:"auth_threshold"`

	// Scan is "all-channel" or "fast".
	Scan string `yaml:"scan"`

	// Sort is "signal" or "security".
	Sort string `yaml:"sort"`

	// RSSIThreshold ignores access points weaker than this (dBm).
	RSSIThreshold int `yaml:"rssi_threshold"`
}

// AddressingConfig selects DHCP or a static IPv4 configuration.
type AddressingConfig struct {
	// Mode is "dhcp" or "static".
	Mode    string `yaml:"mode"`
	IP      string `yaml:"ip"`
	Netmask string `yaml:"netmask"`
	Gateway string `yaml:"gateway"`
}

// RetryConfig is the link loss policy.
type RetryConfig struct {
	MaxRetries int `yaml:"max_retries"`

	// Roaming is "keep" or "reset": what a roaming hop does to the counter.
	Roaming string `yaml:"roaming"`

	// Backoff spaces reattempts. Omit for immediate reattempts.
	Backoff *BackoffConfig `yaml:"backoff,omitempty"`
}

// BackoffConfig mirrors connection.BackoffConfig with string durations.
type BackoffConfig struct {
	Initial    string  `yaml:"initial"`
	Max        string  `yaml:"max"`
	Multiplier float64 `yaml:"multiplier"`
	Jitter     float64 `yaml:"jitter"`
}

// LogConfig configures operational logging and the lifecycle trace.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `yaml:"level"`

	// Format is "text" or "json".
	Format string `yaml:"format"`

	// TraceFile receives the CBOR lifecycle trace when set.
	TraceFile string `yaml:"trace_file"`
}

// DiscoveryConfig configures mDNS announcement of the station.
type DiscoveryConfig struct {
	Enabled bool `yaml:"enabled"`

	// Service type, e.g. "_staconn._tcp".
	Service string `yaml:"service"`

	// Port advertised in the service record.
	Port int `yaml:"port"`

	// Instance name. Defaults to the hostname.
	Instance string `yaml:"instance"`

	// TXT records, "key=value".
	TXT []string `yaml:"txt,omitempty"`
}

// Default returns a configuration with every optional field filled in.
// The SSID is left empty and must be provided.
func Default() Config {
	return Config{
		WiFi: WiFiConfig{
			AuthThreshold: netif.AuthWPA2PSK.String(),
			Scan:          "all-channel",
			Sort:          "signal",
			RSSIThreshold: int(netif.DefaultRSSIThreshold),
		},
		Addressing: AddressingConfig{Mode: "dhcp"},
		Retry: RetryConfig{
			MaxRetries: connection.DefaultMaxRetries,
			Roaming:    connection.RoamingKeepCount.String(),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Discovery: DiscoveryConfig{
			Service: discovery.DefaultServiceType,
			Port:    discovery.DefaultPort,
		},
	}
}

// Parse decodes YAML over Default and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, &LoadError{Message: "failed to parse YAML", Cause: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads and parses a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{File: path, Message: "failed to read file", Cause: err}
	}
	cfg, err := Parse(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.File = path
			return nil, le
		}
		return nil, &LoadError{File: path, Message: err.Error()}
	}
	return cfg, nil
}

// Marshal encodes cfg as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks every field.
func (c *Config) Validate() error {
	if c.WiFi.SSID == "" {
		return invalid("wifi.ssid", "required")
	}
	if len(c.WiFi.SSID) > 32 {
		return invalid("wifi.ssid", "longer than 32 bytes")
	}
	auth, err := netif.ParseAuthMode(c.WiFi.AuthThreshold)
	if err != nil {
		return invalid("wifi.auth_threshold", "%v", err)
	}
	if auth.RequiresPassphrase() && c.WiFi.Passphrase == "" {
		return invalid("wifi.passphrase", "required for %s", auth)
	}
	if auth != netif.AuthWEP && c.WiFi.Passphrase != "" {
		if _, err := DerivePSK(c.WiFi.Passphrase, c.WiFi.SSID); err != nil {
			return invalid("wifi.passphrase", "%v", err)
		}
	}
	if _, err := parseScan(c.WiFi.Scan); err != nil {
		return invalid("wifi.scan", "%v", err)
	}
	if _, err := parseSort(c.WiFi.Sort); err != nil {
		return invalid("wifi.sort", "%v", err)
	}
	if c.WiFi.RSSIThreshold < -127 || c.WiFi.RSSIThreshold > 0 {
		return invalid("wifi.rssi_threshold", "%d out of range [-127, 0]", c.WiFi.RSSIThreshold)
	}

	if c.Interface.MAC != "" {
		if _, err := parseMAC(c.Interface.MAC); err != nil {
			return invalid("interface.mac", "%v", err)
		}
	}
	if _, err := c.Addressing.ipInfo(); err != nil {
		return err
	}

	if c.Retry.MaxRetries < 0 {
		return invalid("retry.max_retries", "must not be negative")
	}
	if _, err := parseRoaming(c.Retry.Roaming); err != nil {
		return invalid("retry.roaming", "%v", err)
	}
	if _, err := c.Retry.backoff(); err != nil {
		return err
	}

	if _, err := parseLevel(c.Log.Level); err != nil {
		return invalid("log.level", "%v", err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return invalid("log.format", "unknown format %q", c.Log.Format)
	}

	if c.Discovery.Enabled {
		if c.Discovery.Service == "" {
			return invalid("discovery.service", "required when discovery is enabled")
		}
		if err := discovery.ValidateServiceType(c.Discovery.Service); err != nil {
			return invalid("discovery.service", "%v", err)
		}
		if c.Discovery.Port <= 0 || c.Discovery.Port > 65535 {
			return invalid("discovery.port", "%d out of range", c.Discovery.Port)
		}
		if c.Discovery.Instance == "" && c.Interface.Hostname == "" {
			return invalid("discovery.instance", "required when no hostname is set")
		}
		if _, err := c.Discovery.txt(); err != nil {
			return invalid("discovery.txt", "%v", err)
		}
	}
	return nil
}

// ToConnection builds the controller configuration. For WPA family networks
// the pre-shared key is derived from the passphrase.
func (c *Config) ToConnection(logger *slog.Logger, trace log.Logger) (connection.Config, error) {
	if err := c.Validate(); err != nil {
		return connection.Config{}, err
	}

	auth, _ := netif.ParseAuthMode(c.WiFi.AuthThreshold)
	scan, _ := parseScan(c.WiFi.Scan)
	sortBy, _ := parseSort(c.WiFi.Sort)
	roaming, _ := parseRoaming(c.Retry.Roaming)
	backoff, _ := c.Retry.backoff()

	station := netif.StationConfig{
		SSID:          c.WiFi.SSID,
		Passphrase:    c.WiFi.Passphrase,
		AuthThreshold: auth,
		ScanMethod:    scan,
		SortMethod:    sortBy,
		RSSIThreshold: int8(c.WiFi.RSSIThreshold),
	}
	if c.WiFi.Passphrase != "" && auth != netif.AuthWEP {
		psk, err := DerivePSK(c.WiFi.Passphrase, c.WiFi.SSID)
		if err != nil {
			return connection.Config{}, invalid("wifi.passphrase", "%v", err)
		}
		station.PSK = psk
	}

	out := connection.Config{
		Station:  station,
		Hostname: c.Interface.Hostname,
		Retry: connection.RetryPolicy{
			MaxRetries: c.Retry.MaxRetries,
			Roaming:    roaming,
			Backoff:    backoff,
		},
		Logger:      logger,
		TraceLogger: trace,
	}
	if c.Interface.MAC != "" {
		out.MAC, _ = parseMAC(c.Interface.MAC)
	}
	if c.Addressing.Mode == "static" {
		out.Addressing = connection.AddressingStatic
		out.Static, _ = c.Addressing.ipInfo()
	}
	return out, nil
}

// NewLogger returns an slog.Logger writing to w with the configured level and format.
func (l LogConfig) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(l.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ipInfo returns the static configuration, or the zero value in DHCP mode.
func (a AddressingConfig) ipInfo() (netif.IPInfo, error) {
	switch a.Mode {
	case "dhcp":
		return netif.IPInfo{}, nil
	case "static":
	default:
		return netif.IPInfo{}, invalid("addressing.mode", "unknown mode %q", a.Mode)
	}

	var info netif.IPInfo
	var err error
	if info.IP, err = netip.ParseAddr(a.IP); err != nil || !info.IP.Is4() {
		return netif.IPInfo{}, invalid("addressing.ip", "%q is not an IPv4 address", a.IP)
	}
	if info.Netmask, err = netip.ParseAddr(a.Netmask); err != nil || !info.Netmask.Is4() {
		return netif.IPInfo{}, invalid("addressing.netmask", "%q is not an IPv4 netmask", a.Netmask)
	}
	if _, err := info.Prefix(); err != nil {
		return netif.IPInfo{}, invalid("addressing.netmask", "%v", err)
	}
	if a.Gateway != "" {
		if info.Gateway, err = netip.ParseAddr(a.Gateway); err != nil || !info.Gateway.Is4() {
			return netif.IPInfo{}, invalid("addressing.gateway", "%q is not an IPv4 address", a.Gateway)
		}
	}
	return info, nil
}

func (r RetryConfig) backoff() (*connection.BackoffConfig, error) {
	if r.Backoff == nil {
		return nil, nil
	}
	out := &connection.BackoffConfig{
		Multiplier: r.Backoff.Multiplier,
		Jitter:     r.Backoff.Jitter,
	}
	var err error
	if out.Initial, err = parseDuration(r.Backoff.Initial); err != nil {
		return nil, invalid("retry.backoff.initial", "%v", err)
	}
	if out.Max, err = parseDuration(r.Backoff.Max); err != nil {
		return nil, invalid("retry.backoff.max", "%v", err)
	}
	if out.Jitter < 0 || out.Jitter > 1 {
		return nil, invalid("retry.backoff.jitter", "%v out of range [0, 1]", out.Jitter)
	}
	return out, nil
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %s", s)
	}
	return d, nil
}

func parseScan(s string) (netif.ScanMethod, error) {
	switch strings.ToLower(s) {
	case "all-channel", "all":
		return netif.ScanAllChannels, nil
	case "fast":
		return netif.ScanFast, nil
	default:
		return 0, fmt.Errorf("unknown scan method %q", s)
	}
}

func parseSort(s string) (netif.SortMethod, error) {
	switch strings.ToLower(s) {
	case "signal":
		return netif.SortBySignal, nil
	case "security":
		return netif.SortBySecurity, nil
	default:
		return 0, fmt.Errorf("unknown sort method %q", s)
	}
}

func parseRoaming(s string) (connection.RoamingPolicy, error) {
	switch strings.ToLower(s) {
	case "keep", "":
		return connection.RoamingKeepCount, nil
	case "reset":
		return connection.RoamingResetCount, nil
	default:
		return 0, fmt.Errorf("unknown roaming policy %q", s)
	}
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, err
	}
	return level, nil
}

func parseMAC(s string) (net.HardwareAddr, error) {
	mac, err := net.ParseMAC(s)
	if err != nil {
		return nil, err
	}
	if len(mac) != 6 {
		return nil, fmt.Errorf("%s is not a 48-bit address", s)
	}
	return mac, nil
}

// ToDiscovery builds the announcer configuration. The instance name falls
// back to the interface hostname.
func (c *Config) ToDiscovery(logger *slog.Logger) (discovery.Config, error) {
	if err := c.Validate(); err != nil {
		return discovery.Config{}, err
	}

	txt, _ := c.Discovery.txt()
	out := discovery.DefaultConfig(c.Discovery.Instance)
	if out.Instance == "" {
		out.Instance = c.Interface.Hostname
	}
	out.Hostname = c.Interface.Hostname
	out.Service = c.Discovery.Service
	out.Port = c.Discovery.Port
	out.TXT = txt
	out.Logger = logger
	return out, nil
}

func (d DiscoveryConfig) txt() (discovery.TXTRecordMap, error) {
	if len(d.TXT) == 0 {
		return nil, nil
	}
	return discovery.ParseTXT(d.TXT)
}

package discovery

import (
	"net/netip"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staconn/staconn-go/pkg/netif"
)

var testLease = netif.IPInfo{
	IP:      netip.MustParseAddr("192.168.1.42"),
	Netmask: netip.MustParseAddr("255.255.255.0"),
	Gateway: netip.MustParseAddr("192.168.1.1"),
}

func TestStationTXT(t *testing.T) {
	txt, err := StationTXT("sensor-7", testLease, TXTRecordMap{"fw": "1.2.0"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"fw=1.2.0",
		"gw=192.168.1.1",
		"host=sensor-7",
		"ip=192.168.1.42",
		"mask=255.255.255.0",
	}, txt.Strings())
}

func TestStationTXTWithoutGateway(t *testing.T) {
	info := testLease
	info.Gateway = netip.Addr{}

	txt, err := StationTXT("", info, nil)
	require.NoError(t, err)

	_, hasGW := txt[TXTKeyGateway]
	_, hasHost := txt[TXTKeyHost]
	assert.False(t, hasGW)
	assert.False(t, hasHost)
	assert.Equal(t, "192.168.1.42", txt[TXTKeyIP])
}

func TestStationTXTReservedKey(t *testing.T) {
	_, err := StationTXT("sensor-7", testLease, TXTRecordMap{"ip": "10.0.0.1"})
	assert.ErrorIs(t, err, ErrReservedTXTKey)
}

func TestParseTXT(t *testing.T) {
	txt, err := ParseTXT([]string{"fw=1.2.0", "beta", "path=/a=b"})
	require.NoError(t, err)
	assert.Equal(t, TXTRecordMap{"fw": "1.2.0", "beta": "", "path": "/a=b"}, txt)

	_, err = ParseTXT([]string{"=value"})
	assert.ErrorIs(t, err, ErrInvalidTXTRecord)
}

func TestTXTValidate(t *testing.T) {
	tests := []struct {
		name    string
		txt     TXTRecordMap
		wantErr bool
	}{
		{"empty", TXTRecordMap{}, false},
		{"simple", TXTRecordMap{"k": "v"}, false},
		{"empty key", TXTRecordMap{"": "v"}, true},
		{"control char", TXTRecordMap{"k\n": "v"}, true},
		{"too long", TXTRecordMap{"k": strings.Repeat("x", 254)}, true},
		{"max length", TXTRecordMap{"k": strings.Repeat("x", 253)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.txt.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTXTRecord)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateInstanceName(t *testing.T) {
	assert.NoError(t, ValidateInstanceName("sensor-7"))
	assert.ErrorIs(t, ValidateInstanceName(""), ErrInvalidInstanceName)
	assert.ErrorIs(t, ValidateInstanceName(strings.Repeat("a", 64)), ErrInvalidInstanceName)
	assert.NoError(t, ValidateInstanceName(strings.Repeat("a", 63)))
}

func TestValidateServiceType(t *testing.T) {
	for _, ok := range []string{"_staconn._tcp", "_http._tcp", "_x._udp"} {
		assert.NoError(t, ValidateServiceType(ok), ok)
	}
	for _, bad := range []string{"", "staconn._tcp", "_._tcp", "_staconn", "_staconn._sctp", "_staconn._tcp.local."} {
		assert.ErrorIs(t, ValidateServiceType(bad), ErrInvalidServiceType, bad)
	}
}

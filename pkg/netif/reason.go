package netif

import (
	"fmt"
	"strconv"
	"strings"
)

// DisconnectReason is the reason code attached to a LinkDisconnected event.
// Values 1-67 are IEEE 802.11 reason codes; values from 200 are stack specific.
type DisconnectReason uint16

// IEEE 802.11 reason codes seen on stations.
const (
	ReasonUnspecified              DisconnectReason = 1
	ReasonAuthExpire               DisconnectReason = 2
	ReasonAuthLeave                DisconnectReason = 3
	ReasonAssocExpire              DisconnectReason = 4
	ReasonAssocTooMany             DisconnectReason = 5
	ReasonNotAuthed                DisconnectReason = 6
	ReasonNotAssoced               DisconnectReason = 7
	ReasonAssocLeave               DisconnectReason = 8
	ReasonAssocNotAuthed           DisconnectReason = 9
	ReasonDisassocPwrcapBad        DisconnectReason = 10
	ReasonDisassocSupchanBad       DisconnectReason = 11
	ReasonBSSTransitionDisassoc    DisconnectReason = 12
	ReasonIEInvalid                DisconnectReason = 13
	ReasonMICFailure               DisconnectReason = 14
	Reason4WayHandshakeTimeout     DisconnectReason = 15
	ReasonGroupKeyUpdateTimeout    DisconnectReason = 16
	ReasonIEIn4WayDiffers          DisconnectReason = 17
	ReasonGroupCipherInvalid       DisconnectReason = 18
	ReasonPairwiseCipherInvalid    DisconnectReason = 19
	ReasonAKMPInvalid              DisconnectReason = 20
	ReasonUnsuppRSNIEVersion       DisconnectReason = 21
	ReasonInvalidRSNIECap          DisconnectReason = 22
	Reason8021XAuthFailed          DisconnectReason = 23
	ReasonCipherSuiteRejected      DisconnectReason = 24
	ReasonInvalidPMKID             DisconnectReason = 53
)

// Stack specific reason codes.
const (
	ReasonBeaconTimeout     DisconnectReason = 200
	ReasonNoAPFound         DisconnectReason = 201
	ReasonAuthFail          DisconnectReason = 202
	ReasonAssocFail         DisconnectReason = 203
	ReasonHandshakeTimeout  DisconnectReason = 204
	ReasonConnectionFail    DisconnectReason = 205
	ReasonAPTSFReset        DisconnectReason = 206
	ReasonRoaming           DisconnectReason = 207
	ReasonAssocComebackLong DisconnectReason = 208
	ReasonSAQueryTimeout    DisconnectReason = 209
)

var reasonNames = map[DisconnectReason]string{
	ReasonUnspecified:           "UNSPECIFIED",
	ReasonAuthExpire:            "AUTH_EXPIRE",
	ReasonAuthLeave:             "AUTH_LEAVE",
	ReasonAssocExpire:           "ASSOC_EXPIRE",
	ReasonAssocTooMany:          "ASSOC_TOOMANY",
	ReasonNotAuthed:             "NOT_AUTHED",
	ReasonNotAssoced:            "NOT_ASSOCED",
	ReasonAssocLeave:            "ASSOC_LEAVE",
	ReasonAssocNotAuthed:        "ASSOC_NOT_AUTHED",
	ReasonDisassocPwrcapBad:     "DISASSOC_PWRCAP_BAD",
	ReasonDisassocSupchanBad:    "DISASSOC_SUPCHAN_BAD",
	ReasonBSSTransitionDisassoc: "BSS_TRANSITION_DISASSOC",
	ReasonIEInvalid:             "IE_INVALID",
	ReasonMICFailure:            "MIC_FAILURE",
	Reason4WayHandshakeTimeout:  "4WAY_HANDSHAKE_TIMEOUT",
	ReasonGroupKeyUpdateTimeout: "GROUP_KEY_UPDATE_TIMEOUT",
	ReasonIEIn4WayDiffers:       "IE_IN_4WAY_DIFFERS",
	ReasonGroupCipherInvalid:    "GROUP_CIPHER_INVALID",
	ReasonPairwiseCipherInvalid: "PAIRWISE_CIPHER_INVALID",
	ReasonAKMPInvalid:           "AKMP_INVALID",
	ReasonUnsuppRSNIEVersion:    "UNSUPP_RSN_IE_VERSION",
	ReasonInvalidRSNIECap:       "INVALID_RSN_IE_CAP",
	Reason8021XAuthFailed:       "802_1X_AUTH_FAILED",
	ReasonCipherSuiteRejected:   "CIPHER_SUITE_REJECTED",
	ReasonInvalidPMKID:          "INVALID_PMKID",
	ReasonBeaconTimeout:         "BEACON_TIMEOUT",
	ReasonNoAPFound:             "NO_AP_FOUND",
	ReasonAuthFail:              "AUTH_FAIL",
	ReasonAssocFail:             "ASSOC_FAIL",
	ReasonHandshakeTimeout:      "HANDSHAKE_TIMEOUT",
	ReasonConnectionFail:        "CONNECTION_FAIL",
	ReasonAPTSFReset:            "AP_TSF_RESET",
	ReasonRoaming:               "ROAMING",
	ReasonAssocComebackLong:     "ASSOC_COMEBACK_TIME_TOO_LONG",
	ReasonSAQueryTimeout:        "SA_QUERY_TIMEOUT",
}

// String returns the reason name, or the numeric code if unknown.
func (r DisconnectReason) String() string {
	if name, ok := reasonNames[r]; ok {
		return name
	}
	return fmt.Sprintf("REASON_%d", uint16(r))
}

// IsRoaming reports whether the disconnect is part of a roaming hop between
// access points of the same network. The stack re-associates on its own.
func (r DisconnectReason) IsRoaming() bool {
	return r == ReasonRoaming
}

// ParseDisconnectReason parses a reason name (as returned by String) or a decimal code.
func ParseDisconnectReason(s string) (DisconnectReason, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for code, name := range reasonNames {
		if name == upper {
			return code, nil
		}
	}
	if n, err := strconv.ParseUint(upper, 10, 16); err == nil && n > 0 {
		return DisconnectReason(n), nil
	}
	return 0, fmt.Errorf("unknown disconnect reason %q", s)
}

package sdp

import (
	"github.com/qmuntal/stateless"
)

// fieldState is the position of the last accepted line in the field order
//
//	v o s [i] [u] e* p* [c] b* (t r*)+ [z] [k] a* (m [i] c* b* [k] a*)*
type fieldState uint8

const (
	stateStart fieldState = iota
	stateVersion
	stateOrigin
	stateName
	stateInfo
	stateURI
	stateEmail
	statePhone
	stateConn
	stateBandwidth
	stateTime
	stateRepeat
	stateZone
	stateKey
	stateAttr
	stateMedia
	stateMediaInfo
	stateMediaConn
	stateMediaBandwidth
	stateMediaKey
	stateMediaAttr
)

var stateNames = [...]string{
	stateStart:          "start",
	stateVersion:        "version",
	stateOrigin:         "origin",
	stateName:           "session-name",
	stateInfo:           "information",
	stateURI:            "uri",
	stateEmail:          "email",
	statePhone:          "phone",
	stateConn:           "connection",
	stateBandwidth:      "bandwidth",
	stateTime:           "time",
	stateRepeat:         "repeat",
	stateZone:           "zone",
	stateKey:            "key",
	stateAttr:           "attribute",
	stateMedia:          "media",
	stateMediaInfo:      "media-information",
	stateMediaConn:      "media-connection",
	stateMediaBandwidth: "media-bandwidth",
	stateMediaKey:       "media-key",
	stateMediaAttr:      "media-attribute",
}

func (s fieldState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// inMedia reports whether the state belongs to a media section.
func (s fieldState) inMedia() bool { return s >= stateMedia }

// owedRule returns the name of the mandatory field rule that must follow the state, if any.
func (s fieldState) owedRule() (string, bool) {
	switch s {
	case stateStart:
		return "proto-version", true
	case stateVersion:
		return "origin-field", true
	case stateOrigin:
		return "session-name-field", true
	case stateName, stateInfo, stateURI, stateEmail, statePhone, stateConn, stateBandwidth:
		return "time-field", true
	default:
		return "", false
	}
}

// fieldOrder lists the field types accepted after each state.
var fieldOrder = map[fieldState]string{
	stateStart:          "v",
	stateVersion:        "o",
	stateOrigin:         "s",
	stateName:           "iuepcbt",
	stateInfo:           "uepcbt",
	stateURI:            "epcbt",
	stateEmail:          "epcbt",
	statePhone:          "pcbt",
	stateConn:           "bt",
	stateBandwidth:      "bt",
	stateTime:           "trzkam",
	stateRepeat:         "rtzkam",
	stateZone:           "kam",
	stateKey:            "am",
	stateAttr:           "am",
	stateMedia:          "icbkam",
	stateMediaInfo:      "cbkam",
	stateMediaConn:      "cbkam",
	stateMediaBandwidth: "bkam",
	stateMediaKey:       "am",
	stateMediaAttr:      "am",
}

var sessionTargets = map[byte]fieldState{
	'v': stateVersion,
	'o': stateOrigin,
	's': stateName,
	'i': stateInfo,
	'u': stateURI,
	'e': stateEmail,
	'p': statePhone,
	'c': stateConn,
	'b': stateBandwidth,
	't': stateTime,
	'r': stateRepeat,
	'z': stateZone,
	'k': stateKey,
	'a': stateAttr,
	'm': stateMedia,
}

var mediaTargets = map[byte]fieldState{
	'i': stateMediaInfo,
	'c': stateMediaConn,
	'b': stateMediaBandwidth,
	'k': stateMediaKey,
	'a': stateMediaAttr,
	'm': stateMedia,
}

func newFieldFSM() *stateless.StateMachine {
	fsm := stateless.NewStateMachineWithMode(stateStart, stateless.FiringImmediate)
	for src, types := range fieldOrder {
		targets := sessionTargets
		if src.inMedia() {
			targets = mediaTargets
		}
		cfg := fsm.Configure(src)
		for i := range len(types) {
			typ := types[i]
			if dst := targets[typ]; dst == src {
				cfg.PermitReentry(typ)
			} else {
				cfg.Permit(typ, dst)
			}
		}
	}
	return fsm
}

package noise

import (
	"strconv"
	"strings"
)

// A HandshakePattern is an immutable, static description of one canonical
// Noise handshake: the ordered token lists of each message and the public
// keys each party is assumed to know before the first message. Patterns are
// never mutated at runtime and are safe for read-only sharing.
type HandshakePattern struct {
	Name                 string
	InitiatorPreMessages []MessagePattern
	ResponderPreMessages []MessagePattern
	Messages             [][]MessagePattern
}

// One-way patterns: a single message from initiator to responder, used for
// store-and-forward transfer where the recipient never replies.

var HandshakeN = HandshakePattern{
	Name:                 "N",
	ResponderPreMessages: []MessagePattern{MessagePatternS},
	Messages: [][]MessagePattern{
		{MessagePatternE, MessagePatternDHES},
	},
}

var HandshakeK = HandshakePattern{
	Name:                 "K",
	InitiatorPreMessages: []MessagePattern{MessagePatternS},
	ResponderPreMessages: []MessagePattern{MessagePatternS},
	Messages: [][]MessagePattern{
		{MessagePatternE, MessagePatternDHES, MessagePatternDHSS},
	},
}

var HandshakeX = HandshakePattern{
	Name:                 "X",
	ResponderPreMessages: []MessagePattern{MessagePatternS},
	Messages: [][]MessagePattern{
		{MessagePatternE, MessagePatternDHES, MessagePatternS, MessagePatternDHSS},
	},
}

// Interactive patterns.

var HandshakeNN = HandshakePattern{
	Name: "NN",
	Messages: [][]MessagePattern{
		{MessagePatternE},
		{MessagePatternE, MessagePatternDHEE},
	},
}

var HandshakeKN = HandshakePattern{
	Name:                 "KN",
	InitiatorPreMessages: []MessagePattern{MessagePatternS},
	Messages: [][]MessagePattern{
		{MessagePatternE},
		{MessagePatternE, MessagePatternDHEE, MessagePatternDHSE},
	},
}

var HandshakeNK = HandshakePattern{
	Name:                 "NK",
	ResponderPreMessages: []MessagePattern{MessagePatternS},
	Messages: [][]MessagePattern{
		{MessagePatternE, MessagePatternDHES},
		{MessagePatternE, MessagePatternDHEE},
	},
}

var HandshakeKK = HandshakePattern{
	Name:                 "KK",
	InitiatorPreMessages: []MessagePattern{MessagePatternS},
	ResponderPreMessages: []MessagePattern{MessagePatternS},
	Messages: [][]MessagePattern{
		{MessagePatternE, MessagePatternDHES, MessagePatternDHSS},
		{MessagePatternE, MessagePatternDHEE, MessagePatternDHSE},
	},
}

var HandshakeNX = HandshakePattern{
	Name: "NX",
	Messages: [][]MessagePattern{
		{MessagePatternE},
		{MessagePatternE, MessagePatternDHEE, MessagePatternS, MessagePatternDHES},
	},
}

var HandshakeKX = HandshakePattern{
	Name:                 "KX",
	InitiatorPreMessages: []MessagePattern{MessagePatternS},
	Messages: [][]MessagePattern{
		{MessagePatternE},
		{MessagePatternE, MessagePatternDHEE, MessagePatternDHSE, MessagePatternS, MessagePatternDHES},
	},
}

var HandshakeXN = HandshakePattern{
	Name: "XN",
	Messages: [][]MessagePattern{
		{MessagePatternE},
		{MessagePatternE, MessagePatternDHEE},
		{MessagePatternS, MessagePatternDHSE},
	},
}

var HandshakeIN = HandshakePattern{
	Name: "IN",
	Messages: [][]MessagePattern{
		{MessagePatternE, MessagePatternS},
		{MessagePatternE, MessagePatternDHEE, MessagePatternDHSE},
	},
}

var HandshakeXK = HandshakePattern{
	Name:                 "XK",
	ResponderPreMessages: []MessagePattern{MessagePatternS},
	Messages: [][]MessagePattern{
		{MessagePatternE, MessagePatternDHES},
		{MessagePatternE, MessagePatternDHEE},
		{MessagePatternS, MessagePatternDHSE},
	},
}

var HandshakeIK = HandshakePattern{
	Name:                 "IK",
	ResponderPreMessages: []MessagePattern{MessagePatternS},
	Messages: [][]MessagePattern{
		{MessagePatternE, MessagePatternDHES, MessagePatternS, MessagePatternDHSS},
		{MessagePatternE, MessagePatternDHEE, MessagePatternDHSE},
	},
}

// HandshakeXX is the interactive mutual-authentication pattern: both static
// keys are transmitted, encrypted, during the handshake.
var HandshakeXX = HandshakePattern{
	Name: "XX",
	Messages: [][]MessagePattern{
		{MessagePatternE},
		{MessagePatternE, MessagePatternDHEE, MessagePatternS, MessagePatternDHES},
		{MessagePatternS, MessagePatternDHSE},
	},
}

var HandshakeIX = HandshakePattern{
	Name: "IX",
	Messages: [][]MessagePattern{
		{MessagePatternE, MessagePatternS},
		{MessagePatternE, MessagePatternDHEE, MessagePatternDHSE, MessagePatternS, MessagePatternDHES},
	},
}

// HandshakeXXfallback supports the Noise Pipes compound protocol: it resumes
// from a failed zero-RTT attempt using the initiator's ephemeral key as a
// pre-message.
var HandshakeXXfallback = HandshakePattern{
	Name:                 "XXfallback",
	ResponderPreMessages: []MessagePattern{MessagePatternE},
	Messages: [][]MessagePattern{
		{MessagePatternE, MessagePatternDHEE, MessagePatternS, MessagePatternDHSE},
		{MessagePatternS, MessagePatternDHES},
	},
}

// patternTable indexes every supported pattern by bare name.
var patternTable = map[string]*HandshakePattern{
	"N":          &HandshakeN,
	"K":          &HandshakeK,
	"X":          &HandshakeX,
	"NN":         &HandshakeNN,
	"KN":         &HandshakeKN,
	"NK":         &HandshakeNK,
	"KK":         &HandshakeKK,
	"NX":         &HandshakeNX,
	"KX":         &HandshakeKX,
	"XN":         &HandshakeXN,
	"IN":         &HandshakeIN,
	"XK":         &HandshakeXK,
	"IK":         &HandshakeIK,
	"XX":         &HandshakeXX,
	"IX":         &HandshakeIX,
	"XXfallback": &HandshakeXXfallback,
}

// LookupPattern resolves a pattern name, with or without a pskN modifier
// suffix, into the static pattern and the preshared-key placement to pass in
// Config. Placement -1 means the name carried no psk modifier. Unknown names
// fail with ErrUnknownPattern.
func LookupPattern(name string) (HandshakePattern, int, error) {
	if p, ok := patternTable[name]; ok {
		return *p, -1, nil
	}
	if idx := strings.Index(name, "psk"); idx > 0 {
		base, mod := name[:idx], name[idx+len("psk"):]
		placement, err := strconv.Atoi(mod)
		if err == nil && placement >= 0 {
			if p, ok := patternTable[base]; ok && placement <= len(p.Messages) {
				return *p, placement, nil
			}
		}
	}
	log.WithField("pattern", name).Debug("Pattern lookup failed")
	return HandshakePattern{}, -1, ErrUnknownPattern
}

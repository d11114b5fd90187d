package noise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupPattern(t *testing.T) {
	for name := range patternTable {
		p, placement, err := LookupPattern(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, p.Name)
		assert.Equal(t, -1, placement)
	}
}

func TestLookupPatternPskModifier(t *testing.T) {
	cases := map[string]struct {
		base      string
		placement int
	}{
		"NNpsk0": {"NN", 0},
		"NNpsk2": {"NN", 2},
		"XXpsk3": {"XX", 3},
		"IKpsk1": {"IK", 1},
	}
	for name, want := range cases {
		p, placement, err := LookupPattern(name)
		require.NoError(t, err, name)
		assert.Equal(t, want.base, p.Name, name)
		assert.Equal(t, want.placement, placement, name)
	}
}

func TestLookupPatternUnknown(t *testing.T) {
	for _, name := range []string{"", "ZZ", "XXpsk9", "pskXX", "XXpsk", "NNpsk-1"} {
		_, _, err := LookupPattern(name)
		assert.ErrorIs(t, err, ErrUnknownPattern, name)
	}
}

func TestTokenNames(t *testing.T) {
	names := map[MessagePattern]string{
		MessagePatternE:    "e",
		MessagePatternS:    "s",
		MessagePatternDHEE: "ee",
		MessagePatternDHES: "es",
		MessagePatternDHSE: "se",
		MessagePatternDHSS: "ss",
		MessagePatternPSK:  "psk",
	}
	for token, want := range names {
		assert.Equal(t, want, token.String())
	}
}

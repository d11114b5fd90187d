package noise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultSuite(t *testing.T) CipherSuite {
	t.Helper()
	return NewCipherSuite(DH25519, CipherChaChaPoly, HashSHA256)
}

func genKey(t *testing.T, suite CipherSuite) DHKey {
	t.Helper()
	key, err := suite.GenerateKeypair(nil)
	require.NoError(t, err)
	return key
}

// runHandshake drives both parties through every pattern message, attaching
// the provided payloads (one per message, nil-padded) and asserting each
// round-trips to the receiving side.
func runHandshake(t *testing.T, ini, res *HandshakeState, payloads [][]byte) {
	t.Helper()
	writer, reader := ini, res
	for i := 0; ; i++ {
		var payload []byte
		if i < len(payloads) {
			payload = payloads[i]
		}
		msg, err := writer.WriteMessage(nil, payload)
		require.NoError(t, err, "message %d write", i+1)
		got, err := reader.ReadMessage(nil, msg)
		require.NoError(t, err, "message %d read", i+1)
		assert.Equal(t, string(payload), string(got), "message %d payload", i+1)
		if ini.MessageIndex() >= len(ini.messagePatterns) && res.MessageIndex() >= len(res.messagePatterns) {
			return
		}
		writer, reader = reader, writer
	}
}

// checkTransport finalizes both sides and verifies the directional cipher
// states pair up: whatever one side encrypts, the other decrypts, for empty,
// single-byte, and maximum-length payloads.
func checkTransport(t *testing.T, ini, res *HandshakeState) {
	t.Helper()
	iniSend, iniRecv, err := ini.Finalize()
	require.NoError(t, err)
	resSend, resRecv, err := res.Finalize()
	require.NoError(t, err)

	assert.Equal(t, ini.ChannelBinding(), res.ChannelBinding(), "channel binding")

	for _, size := range []int{0, 1, 65535} {
		plaintext := make([]byte, size)
		for i := range plaintext {
			plaintext[i] = byte(i)
		}
		ct, err := iniSend.Encrypt(nil, nil, plaintext)
		require.NoError(t, err)
		pt, err := resRecv.Decrypt(nil, nil, ct)
		require.NoError(t, err)
		assert.Equal(t, string(plaintext), string(pt), "initiator->responder %d bytes", size)

		ct, err = resSend.Encrypt(nil, nil, plaintext)
		require.NoError(t, err)
		pt, err = iniRecv.Decrypt(nil, nil, ct)
		require.NoError(t, err)
		assert.Equal(t, string(plaintext), string(pt), "responder->initiator %d bytes", size)
	}
}

// configsFor builds matching initiator and responder configs for a pattern,
// generating static keys and wiring pre-messages as the pattern requires.
func configsFor(t *testing.T, suite CipherSuite, pattern HandshakePattern) (Config, Config) {
	t.Helper()
	iniStatic := genKey(t, suite)
	resStatic := genKey(t, suite)
	ini := Config{
		CipherSuite:   suite,
		Pattern:       pattern,
		Initiator:     true,
		StaticKeypair: iniStatic,
		Prologue:      []byte("cyphernet-test"),
	}
	res := Config{
		CipherSuite:   suite,
		Pattern:       pattern,
		StaticKeypair: resStatic,
		Prologue:      []byte("cyphernet-test"),
	}
	for _, m := range pattern.InitiatorPreMessages {
		if m == MessagePatternS {
			res.PeerStatic = iniStatic.Public
		}
	}
	for _, m := range pattern.ResponderPreMessages {
		if m == MessagePatternS {
			ini.PeerStatic = resStatic.Public
		}
	}
	return ini, res
}

func TestHandshakeAllPatterns(t *testing.T) {
	suite := defaultSuite(t)
	for name, pattern := range patternTable {
		if name == "XXfallback" {
			continue // needs a pre-exchanged ephemeral, covered separately
		}
		t.Run(name, func(t *testing.T) {
			iniCfg, resCfg := configsFor(t, suite, *pattern)
			ini, err := NewHandshakeState(iniCfg)
			require.NoError(t, err)
			res, err := NewHandshakeState(resCfg)
			require.NoError(t, err)
			runHandshake(t, ini, res, nil)
			checkTransport(t, ini, res)
		})
	}
}

func TestHandshakeAllSuites(t *testing.T) {
	ciphers := map[string]CipherFunc{"ChaChaPoly": CipherChaChaPoly, "AESGCM": CipherAESGCM}
	hashes := map[string]HashFunc{
		"SHA256":  HashSHA256,
		"SHA512":  HashSHA512,
		"BLAKE2s": HashBLAKE2s,
		"BLAKE2b": HashBLAKE2b,
	}
	for cn, c := range ciphers {
		for hn, h := range hashes {
			t.Run(cn+"_"+hn, func(t *testing.T) {
				suite := NewCipherSuite(DH25519, c, h)
				iniCfg, resCfg := configsFor(t, suite, HandshakeXX)
				ini, err := NewHandshakeState(iniCfg)
				require.NoError(t, err)
				res, err := NewHandshakeState(resCfg)
				require.NoError(t, err)
				runHandshake(t, ini, res, nil)
				checkTransport(t, ini, res)
			})
		}
	}
}

// TestHandshakeXXPingPong is the mutual-authentication scenario: three
// messages, with application payloads riding on the second and third.
func TestHandshakeXXPingPong(t *testing.T) {
	suite := defaultSuite(t)
	iniCfg, resCfg := configsFor(t, suite, HandshakeXX)
	ini, err := NewHandshakeState(iniCfg)
	require.NoError(t, err)
	res, err := NewHandshakeState(resCfg)
	require.NoError(t, err)

	msg1, err := ini.WriteMessage(nil, nil)
	require.NoError(t, err)
	_, err = res.ReadMessage(nil, msg1)
	require.NoError(t, err)

	msg2, err := res.WriteMessage(nil, []byte("ping"))
	require.NoError(t, err)
	payload, err := ini.ReadMessage(nil, msg2)
	require.NoError(t, err)
	assert.Equal(t, []byte("ping"), payload)

	msg3, err := ini.WriteMessage(nil, []byte("pong"))
	require.NoError(t, err)
	payload, err = res.ReadMessage(nil, msg3)
	require.NoError(t, err)
	assert.Equal(t, []byte("pong"), payload)

	assert.Equal(t, ini.PeerStatic(), resCfg.StaticKeypair.Public)
	assert.Equal(t, res.PeerStatic(), iniCfg.StaticKeypair.Public)
	checkTransport(t, ini, res)
}

func TestHandshakeXXfallback(t *testing.T) {
	suite := defaultSuite(t)
	// The aborted zero-RTT attempt leaves the original initiator's ephemeral
	// in both parties' hands; the fallback swaps roles around it.
	aborted := genKey(t, suite)

	fallbackIni := Config{
		CipherSuite:   suite,
		Pattern:       HandshakeXXfallback,
		Initiator:     true,
		StaticKeypair: genKey(t, suite),
		PeerEphemeral: aborted.Public,
	}
	fallbackRes := Config{
		CipherSuite:      suite,
		Pattern:          HandshakeXXfallback,
		StaticKeypair:    genKey(t, suite),
		EphemeralKeypair: aborted,
	}
	ini, err := NewHandshakeState(fallbackIni)
	require.NoError(t, err)
	res, err := NewHandshakeState(fallbackRes)
	require.NoError(t, err)
	runHandshake(t, ini, res, nil)
	checkTransport(t, ini, res)
}

func TestHandshakePresharedKey(t *testing.T) {
	suite := defaultSuite(t)
	psk := make([]byte, PresharedKeyLen)
	for i := range psk {
		psk[i] = 0x5a
	}
	cases := []struct {
		pattern   HandshakePattern
		placement int
	}{
		{HandshakeNN, 0},
		{HandshakeNN, 2},
		{HandshakeXX, 3},
	}
	for _, tc := range cases {
		t.Run(tc.pattern.Name, func(t *testing.T) {
			iniCfg, resCfg := configsFor(t, suite, tc.pattern)
			iniCfg.PresharedKey = psk
			iniCfg.PresharedKeyPlacement = tc.placement
			resCfg.PresharedKey = psk
			resCfg.PresharedKeyPlacement = tc.placement
			ini, err := NewHandshakeState(iniCfg)
			require.NoError(t, err)
			res, err := NewHandshakeState(resCfg)
			require.NoError(t, err)
			runHandshake(t, ini, res, nil)
			checkTransport(t, ini, res)
		})
	}
}

func TestHandshakePresharedKeyMismatch(t *testing.T) {
	suite := defaultSuite(t)
	iniCfg, resCfg := configsFor(t, suite, HandshakeNN)
	iniCfg.PresharedKey = make([]byte, PresharedKeyLen)
	iniCfg.PresharedKeyPlacement = 0
	resCfg.PresharedKey = append([]byte{1}, make([]byte, PresharedKeyLen-1)...)
	resCfg.PresharedKeyPlacement = 0
	ini, err := NewHandshakeState(iniCfg)
	require.NoError(t, err)
	res, err := NewHandshakeState(resCfg)
	require.NoError(t, err)

	msg1, err := ini.WriteMessage(nil, nil)
	require.NoError(t, err)
	_, err = res.ReadMessage(nil, msg1)
	require.ErrorIs(t, err, ErrAuthFailure)
}

func TestHandshakeBadPresharedKeyLength(t *testing.T) {
	suite := defaultSuite(t)
	cfg := Config{
		CipherSuite:           suite,
		Pattern:               HandshakeNN,
		Initiator:             true,
		PresharedKey:          []byte("short"),
		PresharedKeyPlacement: 0,
	}
	_, err := NewHandshakeState(cfg)
	assert.ErrorIs(t, err, ErrBadPresharedKey)
}

func TestHandshakeDeferredPresharedKey(t *testing.T) {
	suite := defaultSuite(t)
	psk := make([]byte, PresharedKeyLen)
	for i := range psk {
		psk[i] = 0x42
	}
	iniCfg, resCfg := configsFor(t, suite, HandshakeNN)
	iniCfg.PresharedKey = psk
	iniCfg.PresharedKeyPlacement = 2
	// The responder selects the psk protocol by placement alone and supplies
	// the key before the message carrying the psk token.
	resCfg.PresharedKeyPlacement = 2
	ini, err := NewHandshakeState(iniCfg)
	require.NoError(t, err)
	res, err := NewHandshakeState(resCfg)
	require.NoError(t, err)

	require.NoError(t, res.SetPresharedKey(psk))
	runHandshake(t, ini, res, nil)
	checkTransport(t, ini, res)
}

func TestHandshakeMissingPresharedKey(t *testing.T) {
	suite := defaultSuite(t)
	iniCfg, _ := configsFor(t, suite, HandshakeNN)
	iniCfg.PresharedKeyPlacement = 1
	ini, err := NewHandshakeState(iniCfg)
	require.NoError(t, err)

	// A placement without a key must not silently degrade to the plain
	// protocol; the psk token fails without the key.
	_, err = ini.WriteMessage(nil, nil)
	assert.ErrorIs(t, err, ErrBadPresharedKey)
	_, err = ini.WriteMessage(nil, nil)
	assert.ErrorIs(t, err, ErrHandshakeFailed)
}

func TestWriteMessagePayloadTooLong(t *testing.T) {
	suite := defaultSuite(t)
	iniCfg, _ := configsFor(t, suite, HandshakeNN)
	ini, err := NewHandshakeState(iniCfg)
	require.NoError(t, err)

	_, err = ini.WriteMessage(nil, make([]byte, MaxMsgLen+1))
	assert.ErrorIs(t, err, ErrMessageTooLong)
}

func TestOutOfOrder(t *testing.T) {
	suite := defaultSuite(t)
	iniCfg, resCfg := configsFor(t, suite, HandshakeXX)
	ini, err := NewHandshakeState(iniCfg)
	require.NoError(t, err)
	res, err := NewHandshakeState(resCfg)
	require.NoError(t, err)

	// Responder may not speak first.
	_, err = res.WriteMessage(nil, nil)
	assert.ErrorIs(t, err, ErrOutOfOrder)

	msg1, err := ini.WriteMessage(nil, nil)
	require.NoError(t, err)

	// Initiator may not write twice in a row.
	_, err = ini.WriteMessage(nil, nil)
	assert.ErrorIs(t, err, ErrOutOfOrder)

	_, err = res.ReadMessage(nil, msg1)
	require.NoError(t, err)
	_, err = res.ReadMessage(nil, msg1)
	assert.ErrorIs(t, err, ErrOutOfOrder)
}

func TestPatternExhausted(t *testing.T) {
	suite := defaultSuite(t)
	iniCfg, resCfg := configsFor(t, suite, HandshakeNN)
	ini, err := NewHandshakeState(iniCfg)
	require.NoError(t, err)
	res, err := NewHandshakeState(resCfg)
	require.NoError(t, err)
	runHandshake(t, ini, res, nil)

	_, err = ini.WriteMessage(nil, nil)
	assert.ErrorIs(t, err, ErrPatternExhausted)
	_, err = res.ReadMessage(nil, []byte("late"))
	assert.ErrorIs(t, err, ErrPatternExhausted)
}

func TestFinalizeNotReady(t *testing.T) {
	suite := defaultSuite(t)
	iniCfg, resCfg := configsFor(t, suite, HandshakeXX)
	ini, err := NewHandshakeState(iniCfg)
	require.NoError(t, err)
	res, err := NewHandshakeState(resCfg)
	require.NoError(t, err)

	_, _, err = ini.Finalize()
	assert.ErrorIs(t, err, ErrNotReady)

	msg1, err := ini.WriteMessage(nil, nil)
	require.NoError(t, err)
	_, err = res.ReadMessage(nil, msg1)
	require.NoError(t, err)

	_, _, err = res.Finalize()
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestFinalizeOnlyOnce(t *testing.T) {
	suite := defaultSuite(t)
	iniCfg, resCfg := configsFor(t, suite, HandshakeNN)
	ini, err := NewHandshakeState(iniCfg)
	require.NoError(t, err)
	res, err := NewHandshakeState(resCfg)
	require.NoError(t, err)
	runHandshake(t, ini, res, nil)

	_, _, err = ini.Finalize()
	require.NoError(t, err)
	_, _, err = ini.Finalize()
	assert.ErrorIs(t, err, ErrHandshakeFailed)
	_, err = ini.WriteMessage(nil, nil)
	assert.ErrorIs(t, err, ErrHandshakeFailed)
}

func TestTamperedHandshakeMessage(t *testing.T) {
	suite := defaultSuite(t)
	iniCfg, resCfg := configsFor(t, suite, HandshakeXX)

	// Flipping any single bit must surface as an authentication failure,
	// never as corrupted plaintext. Each position gets a fresh pair since a
	// failed handshake state is terminal.
	for _, pos := range []int{0, 20, 40, 60, 80} {
		victim, err := NewHandshakeState(iniCfg)
		require.NoError(t, err)
		peer, err := NewHandshakeState(resCfg)
		require.NoError(t, err)

		msg1, err := victim.WriteMessage(nil, nil)
		require.NoError(t, err)
		_, err = peer.ReadMessage(nil, msg1)
		require.NoError(t, err)
		reply, err := peer.WriteMessage(nil, []byte("ping"))
		require.NoError(t, err)

		bad := append([]byte(nil), reply...)
		bad[pos%len(bad)] ^= 0x01
		_, err = victim.ReadMessage(nil, bad)
		require.Error(t, err, "bit flip at %d accepted", pos)

		// The failure is terminal for the instance.
		_, err = victim.ReadMessage(nil, reply)
		assert.ErrorIs(t, err, ErrHandshakeFailed)
		_, _, err = victim.Finalize()
		assert.ErrorIs(t, err, ErrHandshakeFailed)
	}
}

func TestShortHandshakeMessage(t *testing.T) {
	suite := defaultSuite(t)
	_, resCfg := configsFor(t, suite, HandshakeXX)
	res, err := NewHandshakeState(resCfg)
	require.NoError(t, err)
	_, err = res.ReadMessage(nil, []byte{0x01, 0x02})
	assert.ErrorIs(t, err, ErrShortMessage)
}

func TestMissingStaticKey(t *testing.T) {
	suite := defaultSuite(t)
	cfg := Config{
		CipherSuite: suite,
		Pattern:     HandshakeXK,
		Initiator:   true,
		// No StaticKeypair and no PeerStatic, both required by XK.
	}
	_, err := NewHandshakeState(cfg)
	assert.ErrorIs(t, err, ErrMissingStaticKey)
}

func TestLocalEphemeralZeroizedAfterFinalize(t *testing.T) {
	suite := defaultSuite(t)
	iniCfg, resCfg := configsFor(t, suite, HandshakeNN)
	ini, err := NewHandshakeState(iniCfg)
	require.NoError(t, err)
	res, err := NewHandshakeState(resCfg)
	require.NoError(t, err)
	runHandshake(t, ini, res, nil)

	_, _, err = ini.Finalize()
	require.NoError(t, err)
	for _, b := range ini.LocalEphemeral().Private {
		assert.Zero(t, b, "ephemeral private key not wiped")
	}
}

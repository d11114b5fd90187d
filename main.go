package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/go-i2p/logger"
	"github.com/spf13/cobra"

	"github.com/go-i2p/go-cyphernet/lib/addr"
	"github.com/go-i2p/go-cyphernet/lib/config"
	"github.com/go-i2p/go-cyphernet/lib/encoding/armor"
	"github.com/go-i2p/go-cyphernet/lib/encoding/multibase"
	"github.com/go-i2p/go-cyphernet/lib/noise"
)

var log = logger.GetGoI2PLogger()

var rootCmd = &cobra.Command{
	Use:   "cyphernet",
	Short: "Toolkit for privacy-preserving networking",
	Long: `cyphernet bundles the building blocks of privacy-preserving overlays:
Noise protocol handshakes, onion/i2p/nym address handling, and the text
encodings keys travel in.`,
	SilenceUsage: true,
}

var (
	flagProtocol string
	flagEncoding string
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a static keypair for a Noise protocol",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.NewConfigFromViper()
		protocol := flagProtocol
		if protocol == "" {
			protocol = cfg.Protocol
		}
		encoding := flagEncoding
		if encoding == "" {
			encoding = cfg.KeyEncoding
		}

		_, _, suite, err := noise.ParseProtocolName(protocol)
		if err != nil {
			return err
		}
		key, err := suite.GenerateKeypair(nil)
		if err != nil {
			return err
		}
		defer key.Zero()

		switch encoding {
		case "armor":
			fmt.Print(string(armor.Encode(armor.PrivateKeyType, suite.DHName(), key.Private)))
			fmt.Print(string(armor.Encode(armor.PublicKeyType, suite.DHName(), key.Public)))
		case "multibase":
			private, err := multibase.EncodeToString(multibase.DefaultKey, key.Private)
			if err != nil {
				return err
			}
			public, err := multibase.EncodeToString(multibase.DefaultKey, key.Public)
			if err != nil {
				return err
			}
			fmt.Printf("private: %s\n", private)
			fmt.Printf("public:  %s\n", public)
		default:
			return fmt.Errorf("unknown key encoding %q (want armor or multibase)", encoding)
		}
		return nil
	},
}

var addrCmd = &cobra.Command{
	Use:   "addr <address>",
	Short: "Parse and inspect an overlay address",
	Long: `Parses a Tor v3 onion address, an I2P b32 address, or a Nym recipient
and prints its overlay network and the key bytes it carries.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := addr.Parse(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("network:   %s\n", a.Network())
		fmt.Printf("canonical: %s\n", a.String())
		fmt.Printf("bytes:     %s\n", hex.EncodeToString(a.Bytes()))
		return nil
	},
}

var handshakeCmd = &cobra.Command{
	Use:   "handshake",
	Short: "Run an in-memory handshake self-test for a protocol",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.NewConfigFromViper()
		protocol := flagProtocol
		if protocol == "" {
			protocol = cfg.Protocol
		}
		return runHandshakeSelfTest(protocol)
	},
}

// runHandshakeSelfTest drives initiator and responder through the named
// protocol entirely in memory and prints per-message sizes plus the final
// channel binding.
func runHandshakeSelfTest(protocol string) error {
	pattern, placement, suite, err := noise.ParseProtocolName(protocol)
	if err != nil {
		return err
	}
	if placement >= 0 {
		return fmt.Errorf("psk protocols need an out-of-band key, not supported by the self-test")
	}

	iniStatic, err := suite.GenerateKeypair(nil)
	if err != nil {
		return err
	}
	defer iniStatic.Zero()
	resStatic, err := suite.GenerateKeypair(nil)
	if err != nil {
		return err
	}
	defer resStatic.Zero()

	iniCfg := noise.Config{
		CipherSuite:   suite,
		Pattern:       pattern,
		Initiator:     true,
		StaticKeypair: iniStatic,
	}
	resCfg := noise.Config{
		CipherSuite:   suite,
		Pattern:       pattern,
		StaticKeypair: resStatic,
	}
	for _, m := range pattern.InitiatorPreMessages {
		if m == noise.MessagePatternS {
			resCfg.PeerStatic = iniStatic.Public
		}
	}
	for _, m := range pattern.ResponderPreMessages {
		if m == noise.MessagePatternS {
			iniCfg.PeerStatic = resStatic.Public
		}
	}

	ini, err := noise.NewHandshakeState(iniCfg)
	if err != nil {
		return err
	}
	res, err := noise.NewHandshakeState(resCfg)
	if err != nil {
		return err
	}

	writer, reader := ini, res
	for i := 0; i < len(pattern.Messages); i++ {
		msg, err := writer.WriteMessage(nil, nil)
		if err != nil {
			return err
		}
		if _, err := reader.ReadMessage(nil, msg); err != nil {
			return err
		}
		fmt.Printf("message %d: %d bytes\n", i+1, len(msg))
		writer, reader = reader, writer
	}

	iniSend, iniRecv, err := ini.Finalize()
	if err != nil {
		return err
	}
	resSend, resRecv, err := res.Finalize()
	if err != nil {
		return err
	}

	ct, err := iniSend.Encrypt(nil, nil, []byte("ping"))
	if err != nil {
		return err
	}
	pt, err := resRecv.Decrypt(nil, nil, ct)
	if err != nil {
		return err
	}
	if string(pt) != "ping" {
		return fmt.Errorf("transport round-trip corrupted payload")
	}
	ct, err = resSend.Encrypt(nil, nil, []byte("pong"))
	if err != nil {
		return err
	}
	pt, err = iniRecv.Decrypt(nil, nil, ct)
	if err != nil {
		return err
	}
	if string(pt) != "pong" {
		return fmt.Errorf("transport round-trip corrupted payload")
	}

	fmt.Printf("protocol:        %s\n", protocol)
	fmt.Printf("channel binding: %s\n", hex.EncodeToString(ini.ChannelBinding()))
	fmt.Println("transport:       ping/pong ok")
	return nil
}

func init() {
	cobra.OnInitialize(config.InitConfig)
	rootCmd.PersistentFlags().StringVar(&config.CfgFile, "config", "", "config file (default $HOME/.go-cyphernet/config.yaml)")

	keygenCmd.Flags().StringVar(&flagProtocol, "protocol", "", "Noise protocol name")
	keygenCmd.Flags().StringVar(&flagEncoding, "encoding", "", "key output encoding: armor or multibase")
	handshakeCmd.Flags().StringVar(&flagProtocol, "protocol", "", "Noise protocol name")

	rootCmd.AddCommand(keygenCmd, addrCmd, handshakeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.WithError(err).Error("Command failed")
		os.Exit(1)
	}
}

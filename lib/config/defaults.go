package config

// DefaultConfig centralizes the CLI defaults so they are easy to discover
// and change in one place.
var DefaultConfig = Config{
	BaseDir:     BuildCyphernetDirPath(),
	Protocol:    "Noise_XX_25519_ChaChaPoly_SHA256",
	KeyEncoding: "multibase",
}

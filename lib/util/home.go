// Package util holds small shared helpers with no better home.
package util

import (
	"os"

	"github.com/go-i2p/logger"
)

var log = logger.GetGoI2PLogger()

// UserHome returns the current user's home directory, falling back to $HOME
// or USERPROFILE, and finally the working directory, so the tool still runs
// in containerized environments where no home is set. Callers storing key
// material must tighten directory permissions themselves.
func UserHome() string {
	homeDir, err := os.UserHomeDir()
	if err == nil {
		return homeDir
	}
	if home := os.Getenv("HOME"); home != "" {
		log.WithError(err).Warn("os.UserHomeDir failed, falling back to $HOME")
		return home
	}
	if home := os.Getenv("USERPROFILE"); home != "" {
		log.WithError(err).Warn("os.UserHomeDir failed, falling back to USERPROFILE")
		return home
	}
	wd, wdErr := os.Getwd()
	if wdErr != nil {
		panic("go-cyphernet: unable to determine home directory; set $HOME")
	}
	log.WithError(err).Warn("No home directory available, using working directory")
	return wd
}

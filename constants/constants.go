package constants

import (
	"os"
	"strconv"
)

func GetOutDir() string {
	path := os.Getenv("TABSCORE_OUT_DIR")
	if path != "" {
		return path
	}
	return "./out"
}

func GetMaxDepth() int {
	return getInt("TABSCORE_MAX_DEPTH", DefaultMaxDepth)
}

func GetBPM() float64 {
	v := os.Getenv("TABSCORE_BPM")
	if v == "" {
		return DefaultBPM
	}
	bpm, err := strconv.ParseFloat(v, 64)
	if err != nil || bpm <= 0 {
		return DefaultBPM
	}
	return bpm
}

func GetPort() int {
	return getInt("TABSCORE_PORT", DefaultPort)
}

func GetTicksPerQuarter() int {
	return getInt("TABSCORE_TICKS", DefaultTicksPerQuarter)
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

const (
	DefaultMaxDepth        = 64
	DefaultBPM             = 120.0
	DefaultPort            = 8080
	DefaultTicksPerQuarter = 960

	// used when a note has no dynamics
	DefaultVelocity = 64
)

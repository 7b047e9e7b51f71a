package cli

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"time"
)

// pidMax is the largest identifier the kernel can assign; pid_t is a signed
// 32-bit integer on every supported platform.
const pidMax = math.MaxInt32

const defaultSleepInterval = "0.5"

// parsePID converts a positional argument into a process identifier.
// Identifiers are decimal and non-negative; anything else is a
// configuration error.
func parsePID(arg string) (int, error) {
	pid, err := strconv.ParseUint(arg, 10, 64)
	if err != nil || pid > pidMax {
		return 0, fmt.Errorf("%s: invalid PID", arg)
	}
	return int(pid), nil
}

// parseInterval converts the --sleep-interval argument into a duration.
// The value is in seconds with fractional precision and must be positive.
func parseInterval(arg string) (time.Duration, error) {
	seconds, err := strconv.ParseFloat(arg, 64)
	if err != nil || math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds <= 0 {
		return 0, fmt.Errorf("%s: invalid number of seconds", arg)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

// sleepIntervalDefault seeds the --sleep-interval default, letting the
// environment override the built-in half second.
func sleepIntervalDefault() string {
	if value := os.Getenv("PIDWAIT_SLEEP_INTERVAL"); value != "" {
		if _, err := parseInterval(value); err == nil {
			return value
		}
	}
	return defaultSleepInterval
}

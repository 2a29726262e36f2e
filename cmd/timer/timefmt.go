package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var errBadTime = errors.New("time must look like 65.43, 1:05.43 or 1:05:43.21")

// parseSwimTime converts a stopwatch reading to milliseconds. Fractions are
// read to millisecond precision; "1:05.4" is 65400.
func parseSwimTime(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errBadTime
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, errBadTime
	}

	secPart := parts[len(parts)-1]
	whole, frac, _ := strings.Cut(secPart, ".")
	if whole == "" || len(frac) > 3 {
		return 0, errBadTime
	}
	seconds, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || seconds < 0 {
		return 0, errBadTime
	}
	if len(parts) > 1 && seconds >= 60 {
		return 0, errBadTime
	}

	var millis int64
	if frac != "" {
		frac += strings.Repeat("0", 3-len(frac))
		millis, err = strconv.ParseInt(frac, 10, 64)
		if err != nil || millis < 0 {
			return 0, errBadTime
		}
	}

	total := seconds*1000 + millis
	mult := int64(60 * 1000)
	for i := len(parts) - 2; i >= 0; i-- {
		n, err := strconv.ParseInt(parts[i], 10, 64)
		if err != nil || n < 0 {
			return 0, errBadTime
		}
		if i > 0 && n >= 60 {
			return 0, errBadTime
		}
		total += n * mult
		mult *= 60
	}
	return total, nil
}

// formatMillis renders milliseconds as m:ss.hh for terminal output.
func formatMillis(ms int64) string {
	minutes := ms / 60000
	seconds := (ms % 60000) / 1000
	hundredths := (ms % 1000) / 10
	return fmt.Sprintf("%d:%02d.%02d", minutes, seconds, hundredths)
}

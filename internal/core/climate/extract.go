package climate

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/agenthands/storymap/internal/core/model"
)

var (
	tempPattern = regexp.MustCompile(`(?i)(-?\d+(?:\.\d+)?)\s*(?:°|º|degrees?)\s*C(?:elsius)?\b`)
	rainPattern = regexp.MustCompile(`(?i)(\d[\d,]*(?:\.\d+)?)\s*(?:mm|millimet(?:re|er)s?)\b`)
	windPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:km/h|kmh|kph|kilomet(?:re|er)s per hour)`)
)

type bounds struct{ min, max float64 }

// Values outside these bounds are usually deltas or anomalies rather than
// absolute readings.
var (
	tempBounds = bounds{5, 50}
	rainBounds = bounds{50, 5000}
	windBounds = bounds{1, 150}
)

func firstNumber(re *regexp.Regexp, text string, b bounds) (float64, bool) {
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			continue
		}
		if v >= b.min && v <= b.max {
			return v, true
		}
	}
	return 0, false
}

// extractSnapshot reads temperature, rainfall and wind speed from text,
// taking any missing value from fallback. Fallback is set on the result
// when at least one value was defaulted.
func extractSnapshot(text string, fallback model.ClimateSnapshot) model.ClimateSnapshot {
	out := model.ClimateSnapshot{}
	var ok bool
	defaulted := false

	if out.Temperature, ok = firstNumber(tempPattern, text, tempBounds); !ok {
		out.Temperature, defaulted = fallback.Temperature, true
	}
	if out.Rainfall, ok = firstNumber(rainPattern, text, rainBounds); !ok {
		out.Rainfall, defaulted = fallback.Rainfall, true
	}
	if out.WindSpeed, ok = firstNumber(windPattern, text, windBounds); !ok {
		out.WindSpeed, defaulted = fallback.WindSpeed, true
	}
	out.Fallback = defaulted
	return out
}

// Delta is the percentage change from past to future rounded to one
// decimal. A zero or non-finite past value yields 0.
func Delta(past, future float64) float64 {
	if past == 0 || math.IsNaN(past) || math.IsInf(past, 0) || math.IsNaN(future) || math.IsInf(future, 0) {
		return 0
	}
	return math.Round((future-past)/past*1000) / 10
}

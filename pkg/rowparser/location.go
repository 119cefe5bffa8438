package rowparser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var legDigitPattern = regexp.MustCompile(`\b([1-3])(?:st|nd|rd)?\b`)

// dischargeMarkers flag a header as belonging to the discharge leg rather
// than a numbered loading leg.
var dischargeMarkers = []string{"discharge", "discharging", "unloading", "bongkar", "pod", "destination port"}

// portLeg infers which port leg a cleaned header addresses. Returns the
// loading leg number (1-3) and whether the header names the discharge leg.
// Headers with no leg marker default to loading leg 1, which is where
// single-port templates put their values.
func portLeg(header string) (sequence int, isDischarge bool) {
	padded := " " + header + " "
	for _, marker := range dischargeMarkers {
		if strings.Contains(padded, marker) {
			return 0, true
		}
	}
	if match := legDigitPattern.FindStringSubmatch(header); match != nil {
		n, _ := strconv.Atoi(match[1])
		return n, false
	}
	return 1, false
}

// locationLabel renders a port leg as the label quality surveys and port
// records share, e.g. "Loading Port 2" or "Discharge Port".
func locationLabel(sequence int, isDischarge bool) string {
	if isDischarge {
		return "Discharge Port"
	}
	return fmt.Sprintf("Loading Port %d", sequence)
}

var truckLegPattern = regexp.MustCompile(`(?:trucking|truck|trip|leg)\s*([1-9])`)

// truckingLeg infers which trucking leg a cleaned header addresses.
// Headers with no leg marker default to leg 1.
func truckingLeg(header string) int {
	if match := truckLegPattern.FindStringSubmatch(header); match != nil {
		n, _ := strconv.Atoi(match[1])
		return n
	}
	return 1
}

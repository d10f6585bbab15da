package netlist

import (
	"fmt"
	"regexp"
	"strings"
)

// autoNetRe matches auto-generated net names like "net-001", "net-042".
// Instance suffixes are stripped before matching.
var autoNetRe = regexp.MustCompile(`^net-\d+$`)

// netNamePriority returns a priority score for a net name.
// Higher is better: 0=auto-generated, 1=component pin, 2=signal/user name.
func netNamePriority(name string) int {
	if autoNetRe.MatchString(BaseNetName(name)) {
		return 0
	}
	if strings.Contains(name, ".") {
		return 1 // component pin name like "U3.1"
	}
	return 2
}

// IsAutoName reports whether name was generated by a Namespace.
func IsAutoName(name string) bool {
	return netNamePriority(name) == 0
}

// BetterNetName returns the higher-priority name between a and b.
// Priority: signal/user names > component pin names > auto-generated "net-NNN".
// At equal priority, prefers the shorter name so "GND" wins over "GND#2".
func BetterNetName(a, b string) string {
	pa := netNamePriority(a)
	pb := netNamePriority(b)
	if pa > pb {
		return a
	}
	if pb > pa {
		return b
	}
	if len(a) <= len(b) {
		return a
	}
	return b
}

// BaseNetName strips an instance suffix (e.g. "GND#2" -> "GND").
func BaseNetName(name string) string {
	if idx := strings.LastIndex(name, "#"); idx > 0 {
		return name[:idx]
	}
	return name
}

// instanceName returns the n-th instance name of base ("GND#2").
func instanceName(base string, n int) string {
	return fmt.Sprintf("%s#%d", base, n)
}

func autoName(n int) string {
	return fmt.Sprintf("net-%03d", n)
}

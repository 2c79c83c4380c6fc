package util

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// ParseVec3 parses three comma or space separated numbers, such as "0, 1, 0".
func ParseVec3(s string) (mgl64.Vec3, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '(' || r == ')'
	})
	if len(fields) != 3 {
		return mgl64.Vec3{}, fmt.Errorf("vector %q: expected 3 components, got %d", s, len(fields))
	}
	var v mgl64.Vec3
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return mgl64.Vec3{}, fmt.Errorf("vector %q: component %d: %w", s, i, err)
		}
		v[i] = n
	}
	return v, nil
}

// FormatVec3 formats v with two decimals per component. Components that round
// to zero print without a sign.
func FormatVec3(v mgl64.Vec3) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", positiveZero(v[0]), positiveZero(v[1]), positiveZero(v[2]))
}

// positiveZero ...
func positiveZero(f float64) float64 {
	if math.Abs(f) < 0.005 {
		return 0
	}
	return f
}

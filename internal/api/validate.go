package api

import (
	"strconv"
	"strings"
	"time"

	"go.uber.org/multierr"

	"github.com/vesselfinder/client-go/internal/apierrors"
)

// Identifier ranges accepted by the API.
const (
	MinIMO  = 1000000
	MaxIMO  = 9999999
	MinMMSI = 200000000
	MaxMMSI = 799999999
)

// DateLayout is the layout of the fromdate and todate parameters.
const DateLayout = "2006-01-02 15:04:05"

var extraDataTypes = map[string]bool{
	"ais":    true,
	"voyage": true,
	"master": true,
}

type rule struct {
	key   string
	check func(v any) error
}

// rules run in this order; Validate reports the first failure.
var rules = []rule{
	{ParamFormat, checkFormat},
	{ParamInterval, checkInterval},
	{ParamIMO, checkIdentifiers("IMO", MinIMO, MaxIMO)},
	{ParamMMSI, checkIdentifiers("MMSI", MinMMSI, MaxMMSI)},
	{ParamExtraData, checkExtraData},
	{ParamEvent, checkEvent},
	{ParamFromDate, checkDate(ParamFromDate)},
	{ParamToDate, checkDate(ParamToDate)},
	{ParamFrom, checkPoint(ParamFrom)},
	{ParamTo, checkPoint(ParamTo)},
}

// Validate checks p against the per-parameter rules and returns the first
// failure as an invalid-arguments error.
func Validate(p Params) error {
	for _, r := range rules {
		if !p.Has(r.key) {
			continue
		}
		if err := r.check(p[r.key]); err != nil {
			return err
		}
	}
	return nil
}

// CheckAll runs every rule and returns all failures combined. The result
// can be split with multierr.Errors.
func CheckAll(p Params) (err error) {
	for _, r := range rules {
		if !p.Has(r.key) {
			continue
		}
		err = multierr.Append(err, r.check(p[r.key]))
	}
	return
}

func checkFormat(v any) error {
	s, _ := v.(string)
	if s != "xml" && s != "json" {
		return apierrors.InvalidArguments("Invalid format %q", formatValue(v))
	}
	return nil
}

func checkInterval(v any) error {
	if !isNumeric(v) {
		return apierrors.InvalidArguments("Invalid format \"interval=%s\"", formatValue(v))
	}
	return nil
}

func checkIdentifiers(name string, lo, hi int64) func(any) error {
	return func(v any) error {
		list, isList := asList(v)
		if !isList {
			list = []any{v}
		}
		for _, item := range list {
			n, ok := asInt(item)
			if !ok {
				return apierrors.InvalidArguments("%s %q is not an integer", name, describe(item))
			}
			if n < lo || n > hi {
				return apierrors.InvalidArguments("Invalid %s \"%d\"", name, n)
			}
		}
		return nil
	}
}

func checkExtraData(v any) error {
	for _, token := range strings.Split(formatValue(v), ",") {
		if !extraDataTypes[token] {
			return apierrors.InvalidArguments("Invalid ExtraData type %q", token)
		}
	}
	return nil
}

func checkEvent(v any) error {
	s, _ := v.(string)
	switch strings.ToUpper(s) {
	case "ARRIVAL", "DEPARTURE":
		return nil
	}
	return apierrors.InvalidArguments("Invalid PortCall type %q", formatValue(v))
}

func checkDate(name string) func(any) error {
	return func(v any) error {
		s, ok := v.(string)
		if !ok || !ValidDate(s) {
			return apierrors.InvalidArguments("Invalid Date format \"%s=%s\"", name, formatValue(v))
		}
		return nil
	}
}

func checkPoint(name string) func(any) error {
	return func(v any) error {
		s, _ := v.(string)
		if !ValidPoint(s) {
			return apierrors.InvalidArguments("Invalid format of parameter %q coordinate", name)
		}
		return nil
	}
}

// ValidDate reports whether s matches DateLayout and names a real instant.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ValidPoint reports whether s is a "lat,lon" pair of two numbers.
func ValidPoint(s string) bool {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return false
	}
	return isNumeric(parts[0]) && isNumeric(parts[1])
}

func isNumeric(v any) bool {
	switch x := v.(type) {
	case int, int32, int64, float32, float64:
		return true
	case string:
		_, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return err == nil
	}
	return false
}

// asInt accepts only integer-typed values. Numeric strings are rejected.
func asInt(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	}
	return 0, false
}

// describe renders a rejected value for an error message. Floats keep a
// fractional part so 9175717.0 is not mistaken for an integer.
func describe(v any) string {
	switch x := v.(type) {
	case float64:
		return floatString(strconv.FormatFloat(x, 'f', -1, 64))
	case float32:
		return floatString(strconv.FormatFloat(float64(x), 'f', -1, 32))
	}
	return formatValue(v)
}

func floatString(s string) string {
	if strings.ContainsAny(s, ".eEnN") {
		return s
	}
	return s + ".0"
}

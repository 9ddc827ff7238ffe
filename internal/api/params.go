package api

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Wire names of the parameters the client knows about.
const (
	ParamUserKey   = "userkey"
	ParamErrorMode = "errormode"
	ParamFormat    = "format"
	ParamInterval  = "interval"
	ParamIMO       = "imo"
	ParamMMSI      = "mmsi"
	ParamExtraData = "extradata"
	ParamEvent     = "event"
	ParamFromDate  = "fromdate"
	ParamToDate    = "todate"
	ParamFrom      = "from"
	ParamTo        = "to"
	ParamLocode    = "locode"
	ParamLimit     = "limit"
	ParamSat       = "sat"
	ParamGateways  = "gateways"
	ParamECA       = "ECA"
	ParamEPSG3857  = "EPSG3857"
)

// Params maps a parameter name to its value. Values may be strings,
// integers, floats, booleans, integer slices or nil. Nil values are never
// sent.
type Params map[string]any

// Clone returns a shallow copy of p without nil values.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		if isNil(v) {
			continue
		}
		out[k] = v
	}
	return out
}

// Has reports whether key is set to a non-nil value.
func (p Params) Has(key string) bool {
	v, ok := p[key]
	return ok && !isNil(v)
}

// Format returns the requested body format, or "" if none was given.
func (p Params) Format() string {
	s, _ := p[ParamFormat].(string)
	return s
}

func isNil(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case []int:
		return x == nil
	case []int64:
		return x == nil
	case []any:
		return x == nil
	}
	return false
}

// Normalize serializes list-valued imo and mmsi parameters into
// comma-joined decimal strings. Other values are left as is.
func (p Params) Normalize() {
	for _, key := range []string{ParamIMO, ParamMMSI} {
		v, ok := p[key]
		if !ok {
			continue
		}
		if list, isList := asList(v); isList {
			parts := make([]string, len(list))
			for i, item := range list {
				parts[i] = formatValue(item)
			}
			p[key] = strings.Join(parts, ",")
		}
	}
}

// Values encodes p for transmission. Keys are emitted in sorted order.
func (p Params) Values() url.Values {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make(url.Values, len(p))
	for _, k := range keys {
		if list, isList := asList(p[k]); isList {
			parts := make([]string, len(list))
			for i, item := range list {
				parts[i] = formatValue(item)
			}
			values.Set(k, strings.Join(parts, ","))
			continue
		}
		values.Set(k, formatValue(p[k]))
	}
	return values
}

// asList returns the elements of v when v is a slice.
func asList(v any) ([]any, bool) {
	switch x := v.(type) {
	case []any:
		return x, true
	case []int:
		out := make([]any, len(x))
		for i, n := range x {
			out[i] = n
		}
		return out, true
	case []int64:
		out := make([]any, len(x))
		for i, n := range x {
			out[i] = n
		}
		return out, true
	case []string:
		out := make([]any, len(x))
		for i, s := range x {
			out[i] = s
		}
		return out, true
	}
	return nil, false
}

func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case bool:
		if x {
			return "1"
		}
		return "0"
	}
	return fmt.Sprint(v)
}

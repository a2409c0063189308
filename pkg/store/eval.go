package store

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// maxExpandDepth bounds recursive %(name)s resolution
const maxExpandDepth = 10

// stringify converts a caller-supplied value to its stored string form
func stringify(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1e15 {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	default:
		return fmt.Sprint(v)
	}
}

// evaluate interprets a stored string as a scalar literal. Strings
// that are not int, float, bool or null literals are returned
// unchanged; evaluation never fails.
func evaluate(raw string) interface{} {
	if raw == "" {
		return raw
	}
	if i, err := strconv.Atoi(raw); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	switch strings.ToLower(raw) {
	case "true":
		return true
	case "false":
		return false
	case "none", "null":
		return nil
	}
	return raw
}

// jsonValueString converts a decoded JSON value to its stored string
// form. Scalars become their literal text, anything nested becomes
// its compact JSON representation.
func jsonValueString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return stringify(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	}
}

// sanitizeValue prepares a value for storage. In literal mode every
// percent sign is escaped. Otherwise %% and well-formed %(name)s
// references are kept, a bare percent is auto-escaped, and a
// malformed reference is an error (reason only, the caller wraps it
// with key/section context).
func sanitizeValue(value string, literal bool) (string, []string, error) {
	if literal {
		return strings.ReplaceAll(value, "%", "%%"), nil, nil
	}

	var (
		b    strings.Builder
		refs []string
	)
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		if i+1 < len(value) {
			switch value[i+1] {
			case '%':
				b.WriteString("%%")
				i++
				continue
			case '(':
				end := strings.IndexByte(value[i+2:], ')')
				if end < 0 || i+2+end+1 >= len(value) || value[i+2+end+1] != 's' {
					return "", nil, fmt.Errorf("malformed %%(name)s reference at offset %d", i)
				}
				name := value[i+2 : i+2+end]
				refs = append(refs, name)
				b.WriteString(value[i : i+2+end+2])
				i += 2 + end + 1
				continue
			}
		}
		// bare percent, escape it
		b.WriteString("%%")
	}
	return b.String(), refs, nil
}

// expand resolves %(name)s references in raw against the section's
// raw values, recursively up to maxExpandDepth. Reference names go
// through fold so lookups honor the store's case rule. Escaped
// percents are kept escaped; the caller unescapes once at the end.
func expand(raw string, section map[string]string, fold func(string) string, depth int) (string, error) {
	if depth > maxExpandDepth {
		return "", fmt.Errorf("interpolation depth exceeds %d", maxExpandDepth)
	}

	var b strings.Builder
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(raw) {
			return "", fmt.Errorf("stray %% at end of value")
		}
		switch raw[i+1] {
		case '%':
			b.WriteString("%%")
			i++
		case '(':
			end := strings.IndexByte(raw[i+2:], ')')
			if end < 0 || i+2+end+1 >= len(raw) || raw[i+2+end+1] != 's' {
				return "", fmt.Errorf("malformed %%(name)s reference")
			}
			name := fold(raw[i+2 : i+2+end])
			ref, ok := section[name]
			if !ok {
				return "", fmt.Errorf("reference to undefined option %q", name)
			}
			expanded, err := expand(ref, section, fold, depth+1)
			if err != nil {
				return "", err
			}
			b.WriteString(expanded)
			i += 2 + end + 1
		default:
			return "", fmt.Errorf("stray %% at offset %d", i)
		}
	}
	return b.String(), nil
}

// unescapePercents collapses %% escapes after interpolation
func unescapePercents(s string) string {
	return strings.ReplaceAll(s, "%%", "%")
}

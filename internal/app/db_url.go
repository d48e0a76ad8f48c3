package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lib/pq"
)

const preparedBinaryResultOption = "disable_prepared_binary_result"

// postgresDSN holds lib/pq connection options. URL-style DB_URL values are
// converted to the key/value form so both spellings normalize the same way.
type postgresDSN map[string]string

func parsePostgresDSN(raw string) (postgresDSN, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty postgres dsn")
	}
	if strings.HasPrefix(raw, "postgres://") || strings.HasPrefix(raw, "postgresql://") {
		converted, err := pq.ParseURL(raw)
		if err != nil {
			return nil, fmt.Errorf("parse postgres url: %w", err)
		}
		raw = converted
	}
	return parseKeyValueDSN(raw)
}

// parseKeyValueDSN reads `key=value` pairs where values may be single-quoted
// with backslash escapes.
func parseKeyValueDSN(raw string) (postgresDSN, error) {
	out := postgresDSN{}
	s := strings.TrimSpace(raw)
	for s != "" {
		key, rest, ok := strings.Cut(s, "=")
		if !ok {
			return nil, fmt.Errorf("missing value for %q", strings.TrimSpace(key))
		}
		key = strings.TrimSpace(key)
		if key == "" || strings.ContainsAny(key, " \t") {
			return nil, fmt.Errorf("invalid option name %q", key)
		}
		rest = strings.TrimLeft(rest, " \t")

		var value strings.Builder
		if strings.HasPrefix(rest, "'") {
			i, closed := 1, false
			for ; i < len(rest); i++ {
				c := rest[i]
				if c == '\\' && i+1 < len(rest) {
					i++
					value.WriteByte(rest[i])
					continue
				}
				if c == '\'' {
					closed = true
					break
				}
				value.WriteByte(c)
			}
			if !closed {
				return nil, fmt.Errorf("unterminated quoted value for %q", key)
			}
			rest = rest[i+1:]
		} else {
			end := strings.IndexAny(rest, " \t")
			if end < 0 {
				end = len(rest)
			}
			value.WriteString(rest[:end])
			rest = rest[end:]
		}

		out[key] = value.String()
		s = strings.TrimSpace(rest)
	}
	return out, nil
}

// setDefault sets key unless the DSN already carries an explicit value.
func (d postgresDSN) setDefault(key, value string) {
	if _, ok := d[key]; !ok {
		d[key] = value
	}
}

func (d postgresDSN) databaseName() string {
	return d["dbname"]
}

func (d postgresDSN) String() string {
	return d.encode(false)
}

func (d postgresDSN) redacted() string {
	return d.encode(true)
}

func (d postgresDSN) encode(redact bool) string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v := d[k]
		if redact && k == "password" {
			v = "xxxxx"
		}
		parts = append(parts, k+"="+quoteDSNValue(v))
	}
	return strings.Join(parts, " ")
}

func quoteDSNValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`+"\t") {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

// postgresDSNFor applies the pooler toggle from config to DB_URL.
func postgresDSNFor(rawURL string, disablePreparedBinaryResult bool) (postgresDSN, error) {
	dsn, err := parsePostgresDSN(rawURL)
	if err != nil {
		return nil, err
	}
	if disablePreparedBinaryResult {
		dsn.setDefault(preparedBinaryResultOption, "yes")
	}
	return dsn, nil
}

func redactedDSN(rawURL string) string {
	dsn, err := parsePostgresDSN(rawURL)
	if err != nil {
		return "invalid"
	}
	return dsn.redacted()
}

package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strings"
)

var (
	semverRe    = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
	cronFieldRe = regexp.MustCompile(`^[\d,\-*/]+$`)
	originRe    = regexp.MustCompile(`^https?://[\w-]+(\.[\w-]+)+$`)
	emailRe     = regexp.MustCompile(`^[\w.+-]+@[\w-]+(\.[\w-]+)+$`)
)

var reservedPorts = map[float64]bool{3306: true, 5432: true, 27017: true}

func registerBuiltins(r *Registry) {
	r.Register("semver", func(v string) error {
		if !semverRe.MatchString(v) {
			return errors.New("must be a valid semantic version (e.g., 1.0.0)")
		}
		return nil
	})
	r.Register("cron", func(v string) error {
		parts := strings.Split(v, " ")
		if len(parts) != 5 {
			return errors.New("must be a valid cron expression")
		}
		for _, p := range parts {
			if !cronFieldRe.MatchString(p) {
				return errors.New("must be a valid cron expression")
			}
		}
		return nil
	})
	r.Register("rate_limit", func(v string) error {
		limit, period, ok := strings.Cut(v, "/")
		if !ok || strings.TrimSpace(limit) == "" {
			return errors.New("must be in format: number/(second|minute|hour)")
		}
		if _, isNum := parseNumber(limit); !isNum {
			return errors.New("must be in format: number/(second|minute|hour)")
		}
		switch period {
		case "second", "minute", "hour":
			return nil
		}
		return errors.New("must be in format: number/(second|minute|hour)")
	})
	r.Register("https", func(v string) error {
		u, err := url.Parse(v)
		if err != nil || u.Scheme != "https" {
			return errors.New("must use HTTPS")
		}
		return nil
	})
	r.Register("url_credentials", func(v string) error {
		u, err := url.Parse(v)
		if err != nil || u.Scheme == "" {
			return errors.New("invalid URL format")
		}
		if u.User == nil || u.User.Username() == "" {
			return errors.New("must include credentials")
		}
		if _, ok := u.User.Password(); !ok {
			return errors.New("must include credentials")
		}
		return nil
	})
	r.Register("json", func(v string) error {
		if !json.Valid([]byte(v)) {
			return errors.New("must be valid JSON")
		}
		return nil
	})
	r.Register("json_object", func(v string) error {
		var obj map[string]any
		if err := json.Unmarshal([]byte(v), &obj); err != nil || obj == nil {
			return errors.New("must be a JSON object")
		}
		return nil
	})
	r.Register("origin_list", func(v string) error {
		var invalid []string
		for _, o := range strings.Split(v, ",") {
			o = strings.TrimSpace(o)
			if !originRe.MatchString(o) {
				invalid = append(invalid, o)
			}
		}
		if len(invalid) > 0 {
			return fmt.Errorf("invalid origins: %s", strings.Join(invalid, ", "))
		}
		return nil
	})
	r.Register("email", func(v string) error {
		if !emailRe.MatchString(v) {
			return errors.New("must be a valid email address")
		}
		return nil
	})
	r.Register("multiple_of_60", func(v string) error {
		n, ok := parseNumber(v)
		if !ok || math.Mod(n, 60) != 0 {
			return errors.New("must be in minutes (multiple of 60)")
		}
		return nil
	})
	r.Register("not_reserved_port", func(v string) error {
		n, ok := parseNumber(v)
		if ok && reservedPorts[n] {
			return errors.New("port is reserved for common databases")
		}
		return nil
	})
}

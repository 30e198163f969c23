package config

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/conn-castle/xiaobait9-tools/internal/logging"
	"github.com/conn-castle/xiaobait9-tools/internal/messages"
)

// Timeouts are the parsed timeouts section.
type Timeouts struct {
	Install  time.Duration
	Redeploy time.Duration
	Lock     time.Duration
}

// NormalizeSchemaID trims id and converts it to Unicode NFC.
func NormalizeSchemaID(id string) string {
	return norm.NFC.String(strings.TrimSpace(id))
}

// ValidateSchemaID rejects ids that would break the default.custom.yaml marker.
func ValidateSchemaID(source string, id string) error {
	if id == "" {
		return fmt.Errorf(messages.ConfigSchemaIDRequiredFmt, source)
	}
	if strings.ContainsRune(id, ':') || strings.IndexFunc(id, unicode.IsSpace) >= 0 {
		return fmt.Errorf(messages.ConfigSchemaIDInvalidFmt, source, id)
	}
	return nil
}

// Validate normalizes c in place and ensures it is usable.
func (c *Config) Validate(source string) error {
	c.Schema.ID = NormalizeSchemaID(c.Schema.ID)
	if err := ValidateSchemaID(source, c.Schema.ID); err != nil {
		return err
	}
	if strings.TrimSpace(c.Schema.Resource) == "" {
		return fmt.Errorf(messages.ConfigSchemaResourceRequiredFmt, source)
	}

	if strings.TrimSpace(c.Commands.Unpack) == "" {
		return fmt.Errorf(messages.ConfigCommandRequiredFmt, source, "unpack")
	}
	argvs := []struct {
		name string
		argv []string
	}{
		{"redeploy_primary", c.Commands.RedeployPrimary},
		{"redeploy_fallback", c.Commands.RedeployFallback},
		{"terminal", c.Commands.Terminal},
	}
	for _, a := range argvs {
		if len(a.argv) == 0 || strings.TrimSpace(a.argv[0]) == "" {
			return fmt.Errorf(messages.ConfigCommandRequiredFmt, source, a.name)
		}
	}

	if _, err := c.Timeouts.parse(source); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf(messages.ConfigLogLevelInvalidFmt, source, err)
	}
	return nil
}

// Parsed returns the timeouts as durations. Call after Validate.
func (t TimeoutsConfig) Parsed() Timeouts {
	parsed, _ := t.parse("")
	return parsed
}

func (t TimeoutsConfig) parse(source string) (Timeouts, error) {
	var out Timeouts
	fields := []struct {
		name  string
		value string
		dst   *time.Duration
	}{
		{"install", t.Install, &out.Install},
		{"redeploy", t.Redeploy, &out.Redeploy},
		{"lock", t.Lock, &out.Lock},
	}
	for _, f := range fields {
		d, err := time.ParseDuration(strings.TrimSpace(f.value))
		if err != nil {
			return Timeouts{}, fmt.Errorf(messages.ConfigTimeoutInvalidFmt, source, f.name, f.value)
		}
		if d <= 0 {
			return Timeouts{}, fmt.Errorf(messages.ConfigTimeoutNotPositiveFmt, source, f.name)
		}
		*f.dst = d
	}
	return out, nil
}

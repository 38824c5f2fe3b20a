package env

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/ahmeterdemserceoglu/sloter/internal/config"
	"github.com/ahmeterdemserceoglu/sloter/internal/security/anomaly"
	"github.com/ahmeterdemserceoglu/sloter/internal/security/fraud"
	"github.com/ahmeterdemserceoglu/sloter/internal/security/lockout"
	"github.com/ahmeterdemserceoglu/sloter/internal/security/ratelimit"
)

type policyYAML struct {
	Limit  int    `yaml:"limit"`
	Window string `yaml:"window"`
}

type securityYAML struct {
	Security struct {
		RateLimits map[string]policyYAML `yaml:"rate_limits"`
		Lockout    struct {
			MaxAttempts int    `yaml:"max_attempts"`
			Duration    string `yaml:"duration"`
		} `yaml:"lockout"`
		Anomaly struct {
			MaxSamples     int     `yaml:"max_samples"`
			MinSamples     int     `yaml:"min_samples"`
			Tolerance      string  `yaml:"tolerance"`
			RegularRatio   float64 `yaml:"regular_ratio"`
			RejectOnDetect bool    `yaml:"reject_on_detect"`
		} `yaml:"anomaly"`
		Fraud struct {
			AmountCeiling     string `yaml:"amount_ceiling"`
			DefaultDailyLimit string `yaml:"default_daily_limit"`
		} `yaml:"fraud"`
	} `yaml:"security"`
}

type securityConfig struct {
	rateLimits      ratelimit.Config
	lockout         lockout.Config
	anomaly         anomaly.Config
	rejectOnAnomaly bool
	fraud           fraud.Config
}

// NewSecurityConfigFromYAML - загрузка порогов и окон защитных механизмов.
// Все значения - данные, ни один порог не зашит в код
func NewSecurityConfigFromYAML(path string) (config.SecurityConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read security config: %w", err)
	}

	var raw securityYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse security config: %w", err)
	}

	s := raw.Security

	policies := make(map[string]ratelimit.Policy, len(s.RateLimits))
	var defaultPolicy ratelimit.Policy
	for action, p := range s.RateLimits {
		window, err := time.ParseDuration(p.Window)
		if err != nil {
			return nil, fmt.Errorf("rate limit %q: invalid window: %w", action, err)
		}
		policy := ratelimit.Policy{Limit: p.Limit, Window: window}
		if action == "default" {
			defaultPolicy = policy
			continue
		}
		policies[action] = policy
	}

	lockoutDuration, err := time.ParseDuration(s.Lockout.Duration)
	if err != nil {
		return nil, fmt.Errorf("invalid lockout duration: %w", err)
	}

	tolerance, err := time.ParseDuration(s.Anomaly.Tolerance)
	if err != nil {
		return nil, fmt.Errorf("invalid anomaly tolerance: %w", err)
	}

	ceiling, err := decimal.NewFromString(s.Fraud.AmountCeiling)
	if err != nil {
		return nil, fmt.Errorf("invalid fraud amount ceiling: %w", err)
	}
	dailyLimit, err := decimal.NewFromString(s.Fraud.DefaultDailyLimit)
	if err != nil {
		return nil, fmt.Errorf("invalid fraud default daily limit: %w", err)
	}

	return &securityConfig{
		rateLimits: ratelimit.Config{
			Policies: policies,
			Default:  defaultPolicy,
		},
		lockout: lockout.Config{
			MaxAttempts: s.Lockout.MaxAttempts,
			Duration:    lockoutDuration,
		},
		anomaly: anomaly.Config{
			MaxSamples:   s.Anomaly.MaxSamples,
			MinSamples:   s.Anomaly.MinSamples,
			Tolerance:    tolerance,
			RegularRatio: s.Anomaly.RegularRatio,
		},
		rejectOnAnomaly: s.Anomaly.RejectOnDetect,
		fraud: fraud.Config{
			AmountCeiling:     ceiling,
			DefaultDailyLimit: dailyLimit,
		},
	}, nil
}

func (c *securityConfig) RateLimits() ratelimit.Config {
	return c.rateLimits
}

func (c *securityConfig) Lockout() lockout.Config {
	return c.lockout
}

func (c *securityConfig) Anomaly() anomaly.Config {
	return c.anomaly
}

func (c *securityConfig) RejectOnAnomaly() bool {
	return c.rejectOnAnomaly
}

func (c *securityConfig) Fraud() fraud.Config {
	return c.fraud
}

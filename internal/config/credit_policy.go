package config

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed credit_policy.yaml
var creditPolicyFile []byte

// CreditPolicy is the replenishment policy applied to accounts: the balance
// every non-exempt account is reset to, and when.
type CreditPolicy struct {
	DefaultCredits int    `yaml:"default_credits"`
	ResetSchedule  string `yaml:"reset_schedule"`
	ExemptRole     string `yaml:"exempt_role"`
}

// LoadCreditPolicy parses the embedded policy file.
func LoadCreditPolicy() (*CreditPolicy, error) {
	var policy CreditPolicy
	if err := yaml.Unmarshal(creditPolicyFile, &policy); err != nil {
		return nil, fmt.Errorf("failed to unmarshal credit policy: %w", err)
	}

	if policy.DefaultCredits <= 0 {
		return nil, fmt.Errorf("credit policy: default_credits must be positive, got %d", policy.DefaultCredits)
	}
	if policy.ResetSchedule == "" {
		return nil, fmt.Errorf("credit policy: reset_schedule is required")
	}

	return &policy, nil
}

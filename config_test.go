package zkthresh

import "testing"

func TestValidateSecretRejectsZero(t *testing.T) {
	result := ValidateSecret(ScalarZero())
	if result.Valid {
		t.Fatalf("expected invalid result for a zero secret")
	}
}

func TestValidateSecretRejectsNil(t *testing.T) {
	result := ValidateSecret(nil)
	if result.Valid {
		t.Fatalf("expected invalid result for a nil secret")
	}
}

func TestValidateSecretAcceptsRandomScalar(t *testing.T) {
	secret, err := RandomScalar()
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	result := ValidateSecret(secret)
	if !result.Valid {
		t.Fatalf("expected a random scalar to validate as a sound secret")
	}
}

func TestCheckCompatibilityFlagsThresholdDecrease(t *testing.T) {
	checker := NewConfigurationCompatibilityChecker()
	oldConfig := &Configuration{ID: "k1", Threshold: 4, ParticipantCount: 6}
	newConfig := &Configuration{ID: "k1", Threshold: 2, ParticipantCount: 6}

	result := checker.CheckCompatibility(oldConfig, newConfig)
	found := false
	for _, w := range result.Warnings {
		if w == "threshold decreased - reduced security" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a warning about decreasing threshold")
	}
}

func TestCheckCompatibilityRejectsIDMismatch(t *testing.T) {
	checker := NewConfigurationCompatibilityChecker()
	oldConfig := &Configuration{ID: "k1", Threshold: 2, ParticipantCount: 3}
	newConfig := &Configuration{ID: "k2", Threshold: 2, ParticipantCount: 3}

	result := checker.CheckCompatibility(oldConfig, newConfig)
	if result.Valid {
		t.Fatalf("expected invalid result for mismatched configuration IDs")
	}
}

func TestCheckCompatibilityRejectsNilConfigs(t *testing.T) {
	checker := NewConfigurationCompatibilityChecker()
	if result := checker.CheckCompatibility(nil, &Configuration{}); result.Valid {
		t.Fatalf("expected invalid result for a nil configuration")
	}
}

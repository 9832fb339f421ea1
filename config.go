package zkthresh

import "fmt"

// Configuration describes one sharing's durable parameters, used by
// ConfigurationCompatibilityChecker to decide whether an old and a new
// configuration describe a compatible migration (§4.D change_threshold,
// §4.D refresh).
//
// Grounded on the teacher's config_validation.go Configuration,
// generalized off the teacher's Curve/RPWPath fields (there is now
// exactly one group and no HD derivation path at this layer — see
// DESIGN.md) down to the fields this engine's threshold operations
// actually vary.
type Configuration struct {
	ID               string
	Threshold        int
	ParticipantCount int
}

// ValidateSecret checks a candidate secret scalar for the obvious
// footguns before it is split: nil, zero, or visibly low-entropy.
// Advisory only, like the rest of this file (§2.C).
//
// Grounded on the teacher's config_validation.go ValidateFoundationKey,
// generalized off its fixed byte-length ceiling (every canonical scalar
// in this engine is exactly ScalarSize bytes, so a length check there
// would never fire) down to the entropy heuristic alone.
func ValidateSecret(secret Scalar) *ValidationResult {
	result := &ValidationResult{
		Valid:           true,
		SecurityLevel:   SecurityLevelMedium,
		Warnings:        []string{},
		Errors:          []string{},
		Recommendations: []string{},
	}

	if secret == nil {
		result.Valid = false
		result.Errors = append(result.Errors, "secret cannot be nil")
		return result
	}
	if secret.IsZero() {
		result.Valid = false
		result.SecurityLevel = SecurityLevelLow
		result.Errors = append(result.Errors, "secret cannot be zero")
		return result
	}

	keyBytes := secret.Bytes()
	uniqueBytes := make(map[byte]bool)
	for _, b := range keyBytes {
		uniqueBytes[b] = true
	}
	estimatedEntropyBits := len(uniqueBytes) * 8
	const minEntropyBits = 128
	if estimatedEntropyBits < minEntropyBits {
		result.SecurityLevel = SecurityLevelMedium
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("secret may have low entropy (estimated: %d bits, minimum: %d bits)", estimatedEntropyBits, minEntropyBits))
	} else {
		result.SecurityLevel = SecurityLevelHigh
	}

	result.Recommendations = append(result.Recommendations,
		"ensure the secret is generated with cryptographically secure randomness, e.g. RandomScalar")
	return result
}

// ConfigurationCompatibilityChecker decides whether two sharing
// configurations describe a compatible migration, grounded on the
// teacher's ConfigurationCompatibilityChecker.
type ConfigurationCompatibilityChecker struct{}

// NewConfigurationCompatibilityChecker creates a new compatibility checker.
func NewConfigurationCompatibilityChecker() *ConfigurationCompatibilityChecker {
	return &ConfigurationCompatibilityChecker{}
}

// CheckCompatibility reports whether migrating from oldConfig to
// newConfig is a sound operation (§4.D change_threshold).
func (ccc *ConfigurationCompatibilityChecker) CheckCompatibility(oldConfig, newConfig *Configuration) *ValidationResult {
	result := &ValidationResult{
		Valid:           true,
		SecurityLevel:   SecurityLevelMedium,
		Warnings:        []string{},
		Errors:          []string{},
		Recommendations: []string{},
	}

	if oldConfig == nil || newConfig == nil {
		result.Valid = false
		result.Errors = append(result.Errors, "configurations cannot be nil")
		return result
	}

	if oldConfig.ID != newConfig.ID {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("configuration ID mismatch: %s -> %s", oldConfig.ID, newConfig.ID))
	}

	if newConfig.Threshold > oldConfig.Threshold {
		result.Recommendations = append(result.Recommendations, "threshold increased - improved security")
	} else if newConfig.Threshold < oldConfig.Threshold {
		result.Warnings = append(result.Warnings, "threshold decreased - reduced security")
	}

	if newConfig.ParticipantCount > oldConfig.ParticipantCount {
		result.Recommendations = append(result.Recommendations, "participant count increased - improved decentralization")
	} else if newConfig.ParticipantCount < oldConfig.ParticipantCount {
		result.Warnings = append(result.Warnings, "participant count decreased - reduced decentralization")
	}

	return result
}

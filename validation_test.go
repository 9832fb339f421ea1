package zkthresh

import "testing"

func TestValidateThresholdParametersRejectsThresholdAboveCount(t *testing.T) {
	v := NewDefaultThresholdValidator()
	result := v.ValidateThresholdParameters(3, 5)
	if result.Valid {
		t.Fatalf("expected invalid result for threshold exceeding participant count")
	}
}

func TestValidateThresholdParametersFlagsLowByzantineRatio(t *testing.T) {
	v := NewDefaultThresholdValidator()
	result := v.ValidateThresholdParameters(10, 6)
	if !result.Valid {
		t.Fatalf("6-of-10 should be a valid configuration")
	}
	if result.SecurityLevel == SecurityLevelHigh {
		t.Fatalf("6-of-10 is below the 2/3 Byzantine ratio and should not be rated high")
	}
}

func TestValidateParticipantsRejectsDuplicates(t *testing.T) {
	result := ValidateParticipants([]ParticipantIndex{1, 2, 2, 3})
	if result.Valid {
		t.Fatalf("expected invalid result for duplicate participant indices")
	}
}

func TestValidateConfigurationRejectsNilSecret(t *testing.T) {
	result := ValidateConfiguration(2, []ParticipantIndex{1, 2, 3}, nil)
	if result.Valid {
		t.Fatalf("expected invalid result for a nil secret")
	}
}

func TestAssessSecurityByzantineThreshold(t *testing.T) {
	assessment := AssessSecurity(9, 6)
	if !assessment.ByzantineFaultTolerance {
		t.Fatalf("6-of-9 meets the 2/3 Byzantine threshold")
	}
	if assessment.FaultTolerance != 3 {
		t.Fatalf("expected fault tolerance of 3, got %d", assessment.FaultTolerance)
	}
}

func TestValidateThresholdChangeWarnsOnDecrease(t *testing.T) {
	result := ValidateThresholdChange(4, 2, 6)
	found := false
	for _, w := range result.Warnings {
		if w == "decreasing threshold - security level may be reduced" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a warning about decreasing threshold")
	}
}

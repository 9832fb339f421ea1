package audit

import "testing"

func TestParseComplianceModeAcceptsKnownValues(t *testing.T) {
	for _, raw := range []string{"standard", "fips-l3", "cc-eal4", "custom"} {
		if _, err := ParseComplianceMode(raw); err != nil {
			t.Fatalf("ParseComplianceMode(%q): %v", raw, err)
		}
	}
}

func TestParseComplianceModeRejectsUnknown(t *testing.T) {
	if _, err := ParseComplianceMode("bogus"); err == nil {
		t.Fatalf("expected error for an unrecognized compliance mode")
	}
}

func TestBuilderDefaultsToSuccess(t *testing.T) {
	event := NewBuilder(EventShareSplit, ComplianceStandard).Build()
	if !event.Success {
		t.Fatalf("new events should default to Success=true")
	}
	if event.ID == "" {
		t.Fatalf("expected a non-empty event ID")
	}
}

func TestBuilderWithErrorMarksFailure(t *testing.T) {
	event := NewBuilder(EventValidationFailure, ComplianceFIPSL3).
		WithError(errBoom).
		Build()
	if event.Success {
		t.Fatalf("WithError must mark the event as failed")
	}
	if event.Detail != errBoom.Error() {
		t.Fatalf("expected detail %q, got %q", errBoom.Error(), event.Detail)
	}
}

func TestBuilderWithMetadataAccumulates(t *testing.T) {
	event := NewBuilder(EventRefresh, ComplianceCustom).
		WithMetadata("id", "abc").
		WithMetadata("epoch", 3).
		Build()
	if event.Metadata["id"] != "abc" || event.Metadata["epoch"] != 3 {
		t.Fatalf("metadata not preserved: %v", event.Metadata)
	}
}

func TestEventIDsAreUnique(t *testing.T) {
	a := generateEventID()
	b := generateEventID()
	if a == b {
		t.Fatalf("two generated event IDs collided: %s", a)
	}
}

func TestNullHandlerAcceptsAllEventTypes(t *testing.T) {
	var h NullHandler
	h.OnShareSplit(NewBuilder(EventShareSplit, ComplianceStandard).Build())
	h.OnShareVerified(NewBuilder(EventShareVerified, ComplianceStandard).Build())
	h.OnRefresh(NewBuilder(EventRefresh, ComplianceStandard).Build())
	h.OnThresholdChange(NewBuilder(EventThresholdChange, ComplianceStandard).Build())
	h.OnMPCRound(NewBuilder(EventMPCRound, ComplianceStandard).Build())
	h.OnValidationFailure(NewBuilder(EventValidationFailure, ComplianceStandard).Build())
}

var errBoom = boomError{}

type boomError struct{}

func (boomError) Error() string { return "boom" }

// Package audit records non-cryptographic events about engine
// operations: who did what, when, and whether it succeeded. It is the
// out-of-scope collaborator spec.md names ("audit-log persistence,
// compliance-mode string tagging") — the core engine in package
// zkthresh never imports this package or reads ZKT_COMPLIANCE_MODE
// itself; only cmd/zkthresh wires an EventHandler in and stamps
// events with the compliance mode.
//
// Grounded on the teacher's audit.go (AuditEvent, AuditEventHandler,
// NullAuditHandler, AuditEventBuilder), generalized off the teacher's
// blockchain-validator-set event types onto this domain's operations.
package audit

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"golang.org/x/crypto/sha3"
)

// EventType names an operation this system logs.
type EventType string

const (
	EventShareSplit        EventType = "share_split"
	EventShareVerified     EventType = "share_verified"
	EventRefresh           EventType = "refresh"
	EventThresholdChange   EventType = "threshold_change"
	EventMPCRound          EventType = "mpc_round"
	EventValidationFailure EventType = "validation_failure"
)

// ComplianceMode is the non-cryptographic audit-verbosity tag read from
// ZKT_COMPLIANCE_MODE (spec.md §6). Grounded on the original Rust
// source's main.rs ComplianceMode enum (Standard, Fips140L3,
// CommonCriteriaEAL4Plus, Custom(String)).
type ComplianceMode string

const (
	ComplianceStandard ComplianceMode = "standard"
	ComplianceFIPSL3   ComplianceMode = "fips-l3"
	ComplianceCCEAL4   ComplianceMode = "cc-eal4"
	ComplianceCustom   ComplianceMode = "custom"
)

// ParseComplianceMode validates a raw ZKT_COMPLIANCE_MODE value.
func ParseComplianceMode(raw string) (ComplianceMode, error) {
	switch ComplianceMode(raw) {
	case ComplianceStandard, ComplianceFIPSL3, ComplianceCCEAL4, ComplianceCustom:
		return ComplianceMode(raw), nil
	default:
		return "", fmt.Errorf("audit: unknown compliance mode %q", raw)
	}
}

// Event is one audit-log entry.
type Event struct {
	ID          string
	Timestamp   time.Time
	Type        EventType
	Compliance  ComplianceMode
	Correlation string // mirrors zkthresh.EngineError.Correlation on failure
	Success     bool
	Detail      string
	Metadata    map[string]any
}

// Handler receives audit events as engine operations complete.
// Applications implement this to persist events however they see fit.
type Handler interface {
	OnShareSplit(*Event)
	OnShareVerified(*Event)
	OnRefresh(*Event)
	OnThresholdChange(*Event)
	OnMPCRound(*Event)
	OnValidationFailure(*Event)
}

// NullHandler discards every event. It is the default when no handler
// is configured.
type NullHandler struct{}

func (NullHandler) OnShareSplit(*Event)        {}
func (NullHandler) OnShareVerified(*Event)     {}
func (NullHandler) OnRefresh(*Event)           {}
func (NullHandler) OnThresholdChange(*Event)   {}
func (NullHandler) OnMPCRound(*Event)          {}
func (NullHandler) OnValidationFailure(*Event) {}

// Builder constructs an Event with sensible defaults.
type Builder struct {
	event *Event
}

// NewBuilder starts a new event of the given type under the given
// compliance mode.
func NewBuilder(eventType EventType, compliance ComplianceMode) *Builder {
	return &Builder{event: &Event{
		ID:         generateEventID(),
		Timestamp:  time.Now(),
		Type:       eventType,
		Compliance: compliance,
		Success:    true,
		Metadata:   make(map[string]any),
	}}
}

// WithCorrelation attaches the correlation ID of an EngineError.
func (b *Builder) WithCorrelation(id string) *Builder {
	b.event.Correlation = id
	return b
}

// WithError marks the event failed and records a human-readable detail.
func (b *Builder) WithError(err error) *Builder {
	b.event.Success = false
	if err != nil {
		b.event.Detail = err.Error()
	}
	return b
}

// WithMetadata attaches one key/value pair of contextual metadata.
func (b *Builder) WithMetadata(key string, value any) *Builder {
	b.event.Metadata[key] = value
	return b
}

// Build returns the constructed event.
func (b *Builder) Build() *Event {
	return b.event
}

// generateEventID derives a collision-resistant ID from a timestamp and
// random bytes via SHAKE256, avoiding a bare clock-based ID (multiple
// processes on the same host can collide on timestamp resolution
// alone). Grounded on the teacher's signing.go alternate SHAKE256
// challenge path (golang.org/x/crypto/sha3), applied here to event IDs
// instead of a Fiat-Shamir challenge.
func generateEventID() string {
	var seed [12]byte
	binaryPutUint64(seed[:8], uint64(time.Now().UnixNano()))
	if _, err := rand.Read(seed[8:]); err != nil {
		// crypto/rand failure is exceedingly rare; fall back to the
		// timestamp half of the seed alone rather than panicking on a
		// logging path.
	}

	h := sha3.NewShake256()
	h.Write(seed[:])
	out := make([]byte, 16)
	if _, err := h.Read(out); err != nil {
		return hex.EncodeToString(seed[:])
	}
	return hex.EncodeToString(out)
}

func binaryPutUint64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * (7 - i)))
	}
}

// Package keylifecycle implements the key-record state machine spec.md
// references but does not elaborate (§3 "Key record"): an identifier,
// a secret scalar present only while Active or Suspended, a monotone
// version, and a state forming a DAG with Destroyed as its only
// terminal. The original_source/ Rust key_lifecycle.rs implements a
// four-state version (Generated, Active, Retired, Destroyed); this
// package supplements it into the full six-state DAG spec.md itself
// names.
package keylifecycle

import (
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/hkdf"

	zkthresh "github.com/vaultkey/zkthresh"
)

// State is one node of the key-lifecycle DAG.
type State string

const (
	PendingGeneration State = "pending_generation"
	Active            State = "active"
	Suspended         State = "suspended"
	Deactivated       State = "deactivated"
	Compromised       State = "compromised"
	Destroyed         State = "destroyed"
)

// transitions enumerates the DAG's permitted edges. Destroyed has none:
// it is terminal (§3 invariant).
var transitions = map[State][]State{
	PendingGeneration: {Active, Destroyed},
	Active:            {Suspended, Deactivated, Compromised, Destroyed},
	Suspended:         {Active, Deactivated, Compromised, Destroyed},
	Deactivated:       {Destroyed},
	Compromised:       {Destroyed},
	Destroyed:         {},
}

// CanTransition reports whether from -> to is a permitted edge.
func CanTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ErrIllegalTransition is returned by Record.Transition for an edge not
// present in the DAG.
type ErrIllegalTransition struct {
	From, To State
}

func (e *ErrIllegalTransition) Error() string {
	return fmt.Sprintf("keylifecycle: illegal transition %s -> %s", e.From, e.To)
}

// Record is one key's lifecycle state. Secret is non-nil only in
// Active or Suspended (§3 invariant: "secret material is present only
// in Active/Suspended; Destroyed records retain only metadata").
type Record struct {
	ID      string
	Secret  zkthresh.Scalar
	State   State
	Version uint64
}

// NewRecord creates a record in PendingGeneration with no secret yet.
func NewRecord(id string) *Record {
	return &Record{ID: id, State: PendingGeneration, Version: 0}
}

// Transition moves the record to a new state, enforcing the DAG and
// the secret-presence invariant. Moving to Deactivated, Compromised, or
// Destroyed zeroizes and clears the secret.
func (r *Record) Transition(to State) error {
	if !CanTransition(r.State, to) {
		return &ErrIllegalTransition{From: r.State, To: to}
	}

	switch to {
	case Deactivated, Compromised, Destroyed:
		if r.Secret != nil {
			r.Secret.Zeroize()
			r.Secret = nil
		}
	}

	r.State = to
	r.Version++
	return nil
}

// Activate installs the secret and moves PendingGeneration -> Active in
// one step, since a key record without material makes no sense outside
// PendingGeneration.
func (r *Record) Activate(secret zkthresh.Scalar) error {
	if err := r.Transition(Active); err != nil {
		return err
	}
	r.Secret = secret
	return nil
}

// derivationSalt domain-separates deterministic re-derivation from any
// other hkdf consumer sharing the same master seed.
const derivationSalt = "zk-thresh-pro/keylifecycle/v1"

// DeriveSecret deterministically re-derives a PendingGeneration key's
// secret scalar from a master seed and a caller-chosen path string,
// generalized from the teacher's deleted deterministic.go RPW-path HD
// derivation (an []uint32 path) to a single opaque path string, since
// this domain has no notion of a blockchain derivation path.
func DeriveSecret(masterSeed []byte, path string) (zkthresh.Scalar, error) {
	reader := hkdf.New(sha256.New, masterSeed, []byte(derivationSalt), []byte(path))
	buf := make([]byte, 64)
	if _, err := reader.Read(buf); err != nil {
		return nil, fmt.Errorf("keylifecycle: hkdf expand failed: %w", err)
	}
	return zkthresh.ScalarFromUniformBytes(buf)
}

package main

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	zkthresh "github.com/vaultkey/zkthresh"
)

func TestComplianceModeDefaultsToStandard(t *testing.T) {
	t.Setenv("ZKT_COMPLIANCE_MODE", "")
	if got := complianceMode(); got != "standard" {
		t.Fatalf("expected standard, got %s", got)
	}
}

func TestComplianceModeFallsBackOnUnknownValue(t *testing.T) {
	t.Setenv("ZKT_COMPLIANCE_MODE", "not-a-real-mode")
	if got := complianceMode(); got != "standard" {
		t.Fatalf("expected fallback to standard, got %s", got)
	}
}

func TestComplianceModeHonorsValidValue(t *testing.T) {
	t.Setenv("ZKT_COMPLIANCE_MODE", "fips-l3")
	if got := complianceMode(); got != "fips-l3" {
		t.Fatalf("expected fips-l3, got %s", got)
	}
}

func TestGenerateWithoutIDGeneratesOne(t *testing.T) {
	generate := newGenerateCmd()
	generate.SetArgs([]string{})
	if err := generate.Execute(); err != nil {
		t.Fatalf("generate: %v", err)
	}
}

func TestSplitRecoverVerifyRoundtrip(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	defer os.Chdir(wd)

	secret, err := zkthresh.RandomScalar()
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	secretHex := hex.EncodeToString(secret.Bytes())

	split := newSplitCmd()
	split.SetArgs([]string{"--id", "demo", "--secret", secretHex, "--t", "2", "--n", "3"})
	if err := split.Execute(); err != nil {
		t.Fatalf("split: %v", err)
	}

	for i := 1; i <= 3; i++ {
		path := filepath.Join(dir, "demo-share-"+strconv.Itoa(i)+".bin")
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected share file %s to exist: %v", path, err)
		}
	}

	verify := newVerifyCmd()
	verify.SetArgs([]string{
		"--share", filepath.Join(dir, "demo-share-1.bin"),
		"--commitments", filepath.Join(dir, "demo-commitments.bin"),
	})
	if err := verify.Execute(); err != nil {
		t.Fatalf("verify: %v", err)
	}

	recoverCmd := newRecoverCmd()
	recoverCmd.SetArgs([]string{
		"--shares", filepath.Join(dir, "demo-share-1.bin") + "," + filepath.Join(dir, "demo-share-2.bin"),
	})
	if err := recoverCmd.Execute(); err != nil {
		t.Fatalf("recover: %v", err)
	}
}

func TestRotateChangesThresholdAndReissuesShares(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	defer os.Chdir(wd)

	secret, err := zkthresh.RandomScalar()
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	secretHex := hex.EncodeToString(secret.Bytes())

	split := newSplitCmd()
	split.SetArgs([]string{"--id", "demo", "--secret", secretHex, "--t", "2", "--n", "3"})
	if err := split.Execute(); err != nil {
		t.Fatalf("split: %v", err)
	}

	rotate := newRotateCmd()
	rotate.SetArgs([]string{
		"--id", "rotated",
		"--shares", filepath.Join(dir, "demo-share-1.bin") + "," + filepath.Join(dir, "demo-share-2.bin"),
		"--t-old", "2", "--t-new", "3", "--n", "4",
	})
	if err := rotate.Execute(); err != nil {
		t.Fatalf("rotate: %v", err)
	}

	for i := 1; i <= 4; i++ {
		path := filepath.Join(dir, "rotated-share-"+strconv.Itoa(i)+".bin")
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected re-issued share file %s to exist: %v", path, err)
		}
	}
}

func TestRotateRejectsNonPositiveThresholds(t *testing.T) {
	rotate := newRotateCmd()
	rotate.SetArgs([]string{"--id", "x", "--shares", "a.bin", "--t-old", "0", "--t-new", "3", "--n", "4"})
	if err := rotate.Execute(); err == nil {
		t.Fatalf("expected an error for a non-positive --t-old")
	}
}

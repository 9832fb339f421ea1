// Command zkthresh is the demo CLI harness for the threshold
// secret-sharing engine (spec.md §6: "CLI surface (demo harness, not
// core)"). It is the only place in this repository that reads
// ZKT_COMPLIANCE_MODE or touches the filesystem; the cryptographic core
// in package zkthresh never does either.
//
// Grounded on jeremyhahn-go-keychain's cobra command structure, since
// the teacher itself ships no CLI of its own (SPEC_FULL.md §2.E).
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	zkthresh "github.com/vaultkey/zkthresh"
	"github.com/vaultkey/zkthresh/internal/audit"
	"github.com/vaultkey/zkthresh/internal/keylifecycle"
)

// participantIndices builds the 1..n index vector split always assigns
// (§3 "Share"), the shape ValidateParticipants/ValidateConfiguration
// expect to inspect for duplicates or zero indices.
func participantIndices(n int) []zkthresh.ParticipantIndex {
	indices := make([]zkthresh.ParticipantIndex, n)
	for i := range indices {
		indices[i] = zkthresh.ParticipantIndex(i + 1)
	}
	return indices
}

// Exit codes per spec.md §6.
const (
	exitSuccess        = 0
	exitVerifyRejected = 1
	exitUsage          = 2
	exitCrypto         = 3
	exitIO             = 4
)

// cliError carries the process exit code a failure should produce.
type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }

func usageErr(err error) error  { return &cliError{code: exitUsage, err: err} }
func cryptoErr(err error) error { return &cliError{code: exitCrypto, err: err} }
func ioErr(err error) error     { return &cliError{code: exitIO, err: err} }

func complianceMode() audit.ComplianceMode {
	raw := os.Getenv("ZKT_COMPLIANCE_MODE")
	if raw == "" {
		return audit.ComplianceStandard
	}
	mode, err := audit.ParseComplianceMode(raw)
	if err != nil {
		return audit.ComplianceStandard
	}
	return mode
}

func main() {
	root := &cobra.Command{
		Use:   "zkthresh",
		Short: "verifiable threshold secret-sharing demo harness",
	}
	root.AddCommand(
		newGenerateCmd(),
		newSplitCmd(),
		newRecoverCmd(),
		newVerifyCmd(),
		newRotateCmd(),
	)

	if err := root.Execute(); err != nil {
		var ce *cliError
		if e, ok := err.(*cliError); ok {
			ce = e
		} else {
			ce = &cliError{code: exitUsage, err: err}
		}
		fmt.Fprintln(os.Stderr, "zkthresh:", ce.err)
		os.Exit(ce.code)
	}
}

func newGenerateCmd() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "create and activate a key record, printing its secret as hex",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" {
				id = uuid.NewString()
			}

			secret, err := zkthresh.RandomScalar()
			if err != nil {
				return cryptoErr(err)
			}

			record := keylifecycle.NewRecord(id)
			if err := record.Activate(secret); err != nil {
				return cryptoErr(err)
			}

			handler := audit.NullHandler{}
			handler.OnShareSplit(audit.NewBuilder(audit.EventShareSplit, complianceMode()).
				WithMetadata("id", id).
				WithMetadata("state", string(record.State)).
				Build())

			fmt.Printf("%s %s\n", id, hex.EncodeToString(secret.Bytes()))
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "key identifier (a random UUID is generated if omitted)")
	return cmd
}

func newSplitCmd() *cobra.Command {
	var id, secretHex string
	var t, n int
	cmd := &cobra.Command{
		Use:   "split",
		Short: "split a secret into n threshold shares",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" || secretHex == "" {
				return usageErr(fmt.Errorf("--id and --secret are required"))
			}
			if t <= 0 || n <= 0 {
				return usageErr(fmt.Errorf("--t and --n must be positive"))
			}

			raw, err := hex.DecodeString(secretHex)
			if err != nil {
				return usageErr(fmt.Errorf("--secret is not valid hex: %w", err))
			}
			secret, err := zkthresh.ScalarFromCanonicalBytes(raw)
			if err != nil {
				return usageErr(fmt.Errorf("--secret is not a canonical scalar: %w", err))
			}

			assessment := zkthresh.ValidateConfiguration(t, participantIndices(n), secret)
			for _, w := range assessment.Warnings {
				fmt.Fprintln(os.Stderr, "zkthresh: warning:", w)
			}
			if !assessment.Valid {
				return usageErr(fmt.Errorf("unsound (t, n): %s", strings.Join(assessment.Errors, "; ")))
			}
			security := zkthresh.AssessSecurity(n, t)
			fmt.Fprintf(os.Stderr, "zkthresh: security assessment: %s (Byzantine fault tolerant: %v)\n",
				security.OverallRating, security.ByzantineFaultTolerance)

			shares, vector, err := zkthresh.Split(secret, t, n)
			if err != nil {
				return cryptoErr(err)
			}

			for i, share := range shares {
				blob, err := zkthresh.EncodeShare(share)
				if err != nil {
					return cryptoErr(err)
				}
				path := fmt.Sprintf("%s-share-%d.bin", id, i+1)
				if err := os.WriteFile(path, blob, 0o600); err != nil {
					return ioErr(err)
				}
			}

			commitPath := fmt.Sprintf("%s-commitments.bin", id)
			if err := os.WriteFile(commitPath, zkthresh.EncodeCommitmentVector(vector), 0o600); err != nil {
				return ioErr(err)
			}

			fmt.Printf("wrote %d shares and %s\n", n, commitPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "key identifier (used to name output files)")
	cmd.Flags().StringVar(&secretHex, "secret", "", "hex-encoded secret scalar")
	cmd.Flags().IntVar(&t, "t", 0, "threshold")
	cmd.Flags().IntVar(&n, "n", 0, "number of shares")
	return cmd
}

func newRecoverCmd() *cobra.Command {
	var sharePaths []string
	cmd := &cobra.Command{
		Use:   "recover",
		Short: "reconstruct a secret from share blobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(sharePaths) == 0 {
				return usageErr(fmt.Errorf("--shares requires at least one path"))
			}

			shares := make([]*zkthresh.Share, 0, len(sharePaths))
			for _, path := range sharePaths {
				blob, err := os.ReadFile(path)
				if err != nil {
					return ioErr(err)
				}
				share, err := zkthresh.DecodeShare(blob)
				if err != nil {
					return cryptoErr(err)
				}
				shares = append(shares, share)
			}

			secret, err := zkthresh.Reconstruct(shares, len(shares))
			if err != nil {
				return cryptoErr(err)
			}
			defer secret.Zeroize()

			fmt.Println(hex.EncodeToString(secret.Bytes()))
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&sharePaths, "shares", nil, "paths to share blobs")
	return cmd
}

func newVerifyCmd() *cobra.Command {
	var sharePath, commitmentsPath string
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "verify a share's NIZK and VSS consistency against a commitment vector",
		RunE: func(cmd *cobra.Command, args []string) error {
			if sharePath == "" || commitmentsPath == "" {
				return usageErr(fmt.Errorf("--share and --commitments are required"))
			}

			shareBlob, err := os.ReadFile(sharePath)
			if err != nil {
				return ioErr(err)
			}
			share, err := zkthresh.DecodeShare(shareBlob)
			if err != nil {
				return cryptoErr(err)
			}

			vectorBlob, err := os.ReadFile(commitmentsPath)
			if err != nil {
				return ioErr(err)
			}
			vector, err := zkthresh.DecodeCommitmentVector(vectorBlob)
			if err != nil {
				return cryptoErr(err)
			}

			if err := zkthresh.VerifyShare(share, vector); err != nil {
				fmt.Println("invalid")
				os.Exit(exitVerifyRejected)
			}

			fmt.Println("valid")
			return nil
		},
	}
	cmd.Flags().StringVar(&sharePath, "share", "", "path to a share blob")
	cmd.Flags().StringVar(&commitmentsPath, "commitments", "", "path to a commitment vector blob")
	return cmd
}

func newRotateCmd() *cobra.Command {
	var id string
	var sharePaths []string
	var tOld, tNew, n int
	cmd := &cobra.Command{
		Use:   "rotate",
		Short: "change a threshold in place, re-splitting the reconstructed secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" || len(sharePaths) == 0 {
				return usageErr(fmt.Errorf("--id and --shares are required"))
			}
			if tOld <= 0 || tNew <= 0 || n <= 0 {
				return usageErr(fmt.Errorf("--t-old, --t-new and --n must be positive"))
			}

			assessment := zkthresh.ValidateThresholdChange(tOld, tNew, n)
			for _, w := range assessment.Warnings {
				fmt.Fprintln(os.Stderr, "zkthresh: warning:", w)
			}
			if !assessment.Valid {
				return usageErr(fmt.Errorf("unsound threshold change: %s", strings.Join(assessment.Errors, "; ")))
			}

			oldShares := make([]*zkthresh.Share, 0, len(sharePaths))
			for _, path := range sharePaths {
				blob, err := os.ReadFile(path)
				if err != nil {
					return ioErr(err)
				}
				share, err := zkthresh.DecodeShare(blob)
				if err != nil {
					return cryptoErr(err)
				}
				oldShares = append(oldShares, share)
			}

			newShares, vector, err := zkthresh.ChangeThreshold(oldShares, tOld, tNew, n)
			if err != nil {
				return cryptoErr(err)
			}

			for i, share := range newShares {
				blob, err := zkthresh.EncodeShare(share)
				if err != nil {
					return cryptoErr(err)
				}
				path := fmt.Sprintf("%s-share-%d.bin", id, i+1)
				if err := os.WriteFile(path, blob, 0o600); err != nil {
					return ioErr(err)
				}
			}

			commitPath := fmt.Sprintf("%s-commitments.bin", id)
			if err := os.WriteFile(commitPath, zkthresh.EncodeCommitmentVector(vector), 0o600); err != nil {
				return ioErr(err)
			}

			fmt.Printf("wrote %d shares and %s\n", n, commitPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "key identifier (used to name output files)")
	cmd.Flags().StringSliceVar(&sharePaths, "shares", nil, "paths to at least t-old share blobs")
	cmd.Flags().IntVar(&tOld, "t-old", 0, "current threshold")
	cmd.Flags().IntVar(&tNew, "t-new", 0, "new threshold")
	cmd.Flags().IntVar(&n, "n", 0, "number of shares to re-issue")
	return cmd
}

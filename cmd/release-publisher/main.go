package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/boostorg/release-publisher/internal/publish"
	"github.com/boostorg/release-publisher/internal/utils/logger"
)

var (
	betaFlag     int
	rcFlag       int
	progressFlag bool
	dryRunFlag   bool
)

// runPipeline is swapped out in tests.
var runPipeline = publish.Run

// newRootCmd builds the publish command.
//
//	release-publisher 1_76_0         # publishes boost_1_76_0
//	release-publisher 1_76_0 -r 1    # publishes boost_1_76_0_rc1
//	release-publisher 1_76_0 -b 2    # publishes boost_1_76_0_b2
//	release-publisher 1_76_0 -b 4 -r 2
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "release-publisher VERSION",
		Short: "promote a boost snapshot to a published release",
		Long: `Downloads the snapshot artifacts for VERSION (e.g. 1_76_0) from
artifactory, renames them, confirms the sha256 hash, regenerates the
sidecar metadata, uploads the files back to artifactory and mirrors the
unpacked archive to the S3 buckets.

Requires a configured jfrog CLI (jfrog config add) and, for mirroring,
rclone plus ~/.aws/credentials.`,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.Init(progressFlag)

			opts := publish.Options{
				Version:  args[0],
				Progress: progressFlag,
				DryRun:   dryRunFlag,
			}
			if cmd.Flags().Changed("beta") {
				opts.Beta = &betaFlag
			}
			if cmd.Flags().Changed("release-candidate") {
				opts.RC = &rcFlag
			}
			return runPipeline(opts)
		},
	}

	cmd.Flags().IntVarP(&betaFlag, "beta", "b", 0, "publish a beta release")
	cmd.Flags().IntVarP(&rcFlag, "release-candidate", "r", 0, "publish a release candidate")
	cmd.Flags().BoolVarP(&progressFlag, "progress", "p", false, "print progress information")
	cmd.Flags().BoolVarP(&dryRunFlag, "dry-run", "n", false, "download files only")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Logger().Errorf("%v", err)
		os.Exit(1)
	}
}

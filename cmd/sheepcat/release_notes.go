package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Chadders13/SheepCat-TackingMyWork/internal/relnotes"
	"github.com/Chadders13/SheepCat-TackingMyWork/internal/report"
)

var (
	relnotesVersion string
	relnotesOutput  string
	relnotesRepo    string
)

var releaseNotesCmd = &cobra.Command{
	Use:   "release-notes",
	Short: "Generate Markdown release notes from git history",
	Long: `Generate release notes for a version from the commit subjects since the
previous tag. Conventional-commit subjects (feat:, fix:, ...) are grouped
into titled sections; everything else lands under Other Changes.

Example:
  sheepcat release-notes --version 1.4.0
  sheepcat release-notes --version v1.4.0 --output RELEASE_NOTES.md`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		repoPath := relnotesRepo
		if repoPath == "" {
			var err error
			if repoPath, err = os.Getwd(); err != nil {
				fail("failed to get current directory: %v", err)
			}
		}

		g, err := relnotes.NewGit(ctx)
		if err != nil {
			fail("%v", err)
		}
		notes, err := g.Collect(ctx, repoPath, relnotesVersion)
		if err != nil {
			fail("%v", err)
		}
		text := notes.Render()

		if relnotesOutput == "" {
			fmt.Print(text)
			return
		}
		if err := report.Save(relnotesOutput, text); err != nil {
			fail("%v", err)
		}
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Release notes for %s written to %s\n", green("✓"), notes.Version, relnotesOutput)
	},
}

func init() {
	releaseNotesCmd.Flags().StringVar(&relnotesVersion, "version", "", "release version (X.Y.Z), required")
	releaseNotesCmd.Flags().StringVar(&relnotesOutput, "output", "", "output file (default stdout)")
	releaseNotesCmd.Flags().StringVar(&relnotesRepo, "repo", "", "git repository path (default current directory)")
	releaseNotesCmd.MarkFlagRequired("version")
	rootCmd.AddCommand(releaseNotesCmd)
}

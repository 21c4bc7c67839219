package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"mentorpath/internal/app"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume utilities",
}

var resumeCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Score a PDF, DOCX or text resume",
	Args:  cobra.ExactArgs(1),
	RunE:  runResumeCheck,
}

func init() {
	resumeCmd.AddCommand(resumeCheckCmd)
	rootCmd.AddCommand(resumeCmd)
}

func runResumeCheck(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read resume failed: %w", err)
	}
	score, err := app.NewResumeService().Check(filepath.Base(args[0]), "", data)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), score)
}

package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"mentorpath/internal/bootstrap"
	"mentorpath/internal/career"
	"mentorpath/internal/config"
	"mentorpath/internal/model"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Synthesize a career path for a profile",
	RunE:  runGenerate,
}

var (
	genProfile model.Profile
	genAPIKey  string
	genTimeout time.Duration
)

func init() {
	flags := generateCmd.Flags()
	flags.StringVar(&genProfile.Education, "education", "", "Highest education")
	flags.StringArrayVar(&genProfile.Experience, "experience", nil, "Work experience entry (repeatable)")
	flags.StringArrayVar(&genProfile.Skills, "skill", nil, "Skill (repeatable)")
	flags.StringArrayVar(&genProfile.Interests, "interest", nil, "Interest (repeatable)")
	flags.StringVar(&genProfile.Goals, "goals", "", "Career goals")
	flags.StringVar(&genProfile.WorkStyle, "work-style", "", "Preferred work style")
	flags.StringVar(&genAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY)")
	flags.DurationVar(&genTimeout, "timeout", 2*time.Minute, "Overall request timeout")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config failed: %w", err)
	}
	if genAPIKey != "" {
		cfg.LLM.APIKey = genAPIKey
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), genTimeout)
	defer cancel()

	completer, closeCompleter, err := bootstrap.NewCompleter(ctx, cfg.LLM)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeCompleter(); err != nil {
			log.Printf("close completer failed: %v", err)
		}
	}()

	path, err := career.NewSynthesizer(completer).Generate(ctx, genProfile)
	if err != nil {
		return fmt.Errorf("generate career path failed: %w", err)
	}
	return printJSON(cmd.OutOrStdout(), path)
}

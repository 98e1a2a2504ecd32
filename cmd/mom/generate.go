package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phrazzld/mom-agent/internal/service"
)

type generateOptions struct {
	project     string
	contextFile string
	save        string
	quiet       bool
}

func newGenerateCmd(load func(*cobra.Command) (*env, error)) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate [file|-]",
		Short: "Generate minutes from a transcript",
		Long: `Reads a transcript from a file, or from stdin when the argument is "-" or
missing, and prints the generated minutes to stdout.

With --save the transcript and draft are stored as a new meeting of the
project (created when missing) and earlier meetings provide context.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := load(cmd)
			if err != nil {
				return err
			}
			return runGenerate(cmd, e, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.project, "project", "p", "", "project name used in the minutes")
	cmd.Flags().StringVar(&opts.contextFile, "context-file", "", "file with previous meeting context")
	cmd.Flags().StringVar(&opts.save, "save", "", "store the result as a meeting with this title")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "do not show the progress spinner")
	cmd.MarkFlagsMutuallyExclusive("context-file", "save")
	return cmd
}

func runGenerate(cmd *cobra.Command, e *env, opts *generateOptions, args []string) error {
	ctx := cmd.Context()

	transcript, err := readTranscript(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(transcript) == "" {
		return errors.New("transcript is empty")
	}

	if opts.save != "" && strings.TrimSpace(opts.project) == "" {
		return errors.New("--save requires --project")
	}

	var projectContext string
	if opts.contextFile != "" {
		data, err := os.ReadFile(opts.contextFile)
		if err != nil {
			return fmt.Errorf("failed to read context file: %w", err)
		}
		projectContext = string(data)
	}

	gen, err := e.generator(ctx)
	if err != nil {
		return err
	}

	var sp *spinner
	if !opts.quiet {
		sp = startSpinner(cmd.ErrOrStderr(), fmt.Sprintf("Generating minutes with %s...", gen.Provider()))
	}
	stopSpinner := func() {
		if sp != nil {
			sp.Stop()
			sp = nil
		}
	}
	defer stopSpinner()

	var minutes string
	if opts.save != "" {
		minutes, err = generateAndSave(cmd, e, gen, opts, transcript)
	} else {
		minutes, err = gen.GenerateMoM(ctx, transcript, projectContext, opts.project)
	}
	stopSpinner()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), minutes)
	return err
}

func generateAndSave(
	cmd *cobra.Command,
	e *env,
	gen service.MinutesGenerator,
	opts *generateOptions,
	transcript string,
) (string, error) {
	ctx := cmd.Context()

	svc, err := e.meetingService(gen)
	if err != nil {
		return "", err
	}

	if _, err := svc.CreateProject(ctx, opts.project); err != nil && !errors.Is(err, service.ErrProjectExists) {
		return "", err
	}
	project := strings.TrimSpace(opts.project)

	meeting, err := svc.CreateMeeting(ctx, project, opts.save)
	if err != nil {
		return "", err
	}
	meeting, err = svc.GenerateDraft(ctx, project, meeting.ID, transcript)
	if err != nil {
		return "", err
	}

	e.logger.Info("meeting saved", "project", project, "meeting_id", meeting.ID)
	return meeting.DraftMoM, nil
}

func readTranscript(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read transcript from stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read transcript: %w", err)
	}
	return string(data), nil
}

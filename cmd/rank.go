package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	app "github.com/okian/buildermatch/internal/app"
	"github.com/okian/buildermatch/internal/domain/types"
	"github.com/okian/buildermatch/pkg/logger"
)

// errRankArgs reports an invalid flag combination for rank.
var errRankArgs = errors.New("invalid rank arguments")

// rankOptions holds the flags of the rank command.
type rankOptions struct {
	seed      string
	userID    string
	projectID string
	limit     int
	now       string
}

//nolint:gochecknoglobals // Cobra boilerplate
var rankOpts rankOptions

//nolint:gochecknoglobals // Cobra boilerplate
var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank matches offline from a seed file",
	Long: `rank loads users and projects from a YAML seed file and prints the ranked
matches as JSON. Pass --user to rank projects for a user or --project to rank
members for a project.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runRank(cmd.Context(), cmd.OutOrStdout(), rankOpts)
	},
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rankCmd.Flags().StringVar(&rankOpts.seed, "seed", "", "YAML seed file with users and projects")
	rankCmd.Flags().StringVar(&rankOpts.userID, "user", "", "rank recruiting projects for this user")
	rankCmd.Flags().StringVar(&rankOpts.projectID, "project", "", "rank candidate members for this project")
	rankCmd.Flags().IntVar(&rankOpts.limit, "limit", 0, "number of matches (default 10, max 20)")
	rankCmd.Flags().StringVar(&rankOpts.now, "now", "", "reference time in RFC3339 (default current time)")
	_ = rankCmd.MarkFlagRequired("seed")
	rankCmd.MarkFlagsMutuallyExclusive("user", "project")
	rankCmd.MarkFlagsOneRequired("user", "project")
	rootCmd.AddCommand(rankCmd)
}

func (o *rankOptions) clock() (func() time.Time, error) {
	if strings.TrimSpace(o.now) == "" {
		return time.Now, nil
	}
	t, err := time.Parse(time.RFC3339, o.now)
	if err != nil {
		return nil, fmt.Errorf("%w: --now must be RFC3339: %w", errRankArgs, err)
	}
	return func() time.Time { return t }, nil
}

func runRank(ctx context.Context, out io.Writer, opts rankOptions) error { //nolint:gocritic // hugeParam: flags are copied once
	if (opts.userID == "") == (opts.projectID == "") {
		return fmt.Errorf("%w: exactly one of --user or --project is required", errRankArgs)
	}
	if opts.seed == "" {
		return fmt.Errorf("%w: --seed is required", errRankArgs)
	}
	now, err := opts.clock()
	if err != nil {
		return err
	}
	if err := logger.Init(logger.WithOutput(os.Stderr)); err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	_ = logger.SetLevelString("warn")

	svc := app.New(app.WithClock(now))
	defer svc.Stop()
	if err := svc.LoadSeed(ctx, opts.seed); err != nil {
		return fmt.Errorf("load seed: %w", err)
	}

	var list types.MatchList
	if opts.userID != "" {
		list, err = svc.MatchProjects(ctx, opts.userID, opts.limit)
	} else {
		list, err = svc.MatchMembers(ctx, opts.projectID, opts.limit)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(list)
}

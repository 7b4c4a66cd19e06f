package commands

import (
	"fmt"

	"github.com/MGTheTrain/pkcs11-spy/internal/domain/trace"
	"github.com/MGTheTrain/pkcs11-spy/internal/infrastructure/persistence"
	"github.com/MGTheTrain/pkcs11-spy/internal/infrastructure/tracesink"

	"github.com/spf13/cobra"
)

// ListEventsCmd re-renders recorded call events in the configured trace format
func (h *SpyCommandsHandler) ListEventsCmd(cmd *cobra.Command, _ []string) error {
	query, err := eventQueryFromFlags(cmd)
	if err != nil {
		return err
	}
	if err := query.Validate(); err != nil {
		return err
	}

	repo, closeDB, err := h.eventRepository()
	if err != nil {
		return err
	}
	defer closeDB()

	events, err := repo.List(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("failed to list events: %w", err)
	}

	// Not closed: the writer would close stdout.
	w, err := tracesink.NewWriter(h.config.Trace.Format, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	for _, e := range events {
		if err := w.WriteEvent(*e); err != nil {
			return err
		}
	}
	return nil
}

// ListRunsCmd prints the recorded run IDs, oldest first
func (h *SpyCommandsHandler) ListRunsCmd(cmd *cobra.Command, _ []string) error {
	repo, closeDB, err := h.eventRepository()
	if err != nil {
		return err
	}
	defer closeDB()

	runs, err := repo.Runs(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	for _, run := range runs {
		fmt.Fprintln(cmd.OutOrStdout(), run)
	}
	return nil
}

func (h *SpyCommandsHandler) eventRepository() (trace.EventRepository, func(), error) {
	db, err := h.openDB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open event database: %w", err)
	}
	closeDB := func() {
		if err := persistence.CloseDB(db); err != nil {
			h.logger.Warn("failed to close event database: ", err)
		}
	}

	repo, err := persistence.NewGormCallEventRepository(db, h.logger)
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	return repo, closeDB, nil
}

func eventQueryFromFlags(cmd *cobra.Command) (*trace.EventQuery, error) {
	flags := cmd.Flags()

	runID, err := flags.GetString("run")
	if err != nil {
		return nil, fmt.Errorf("invalid run flag: %w", err)
	}
	op, err := flags.GetString("operation")
	if err != nil {
		return nil, fmt.Errorf("invalid operation flag: %w", err)
	}
	phase, err := flags.GetString("phase")
	if err != nil {
		return nil, fmt.Errorf("invalid phase flag: %w", err)
	}
	failed, err := flags.GetBool("failed")
	if err != nil {
		return nil, fmt.Errorf("invalid failed flag: %w", err)
	}
	limit, err := flags.GetInt("limit")
	if err != nil {
		return nil, fmt.Errorf("invalid limit flag: %w", err)
	}
	offset, err := flags.GetInt("offset")
	if err != nil {
		return nil, fmt.Errorf("invalid offset flag: %w", err)
	}

	return &trace.EventQuery{
		RunID:      runID,
		Operation:  op,
		Phase:      trace.Phase(phase),
		FailedOnly: failed,
		Limit:      limit,
		Offset:     offset,
	}, nil
}

func initEventsCommands(rootCmd *cobra.Command, handler *SpyCommandsHandler) {
	eventsCmd := &cobra.Command{
		Use:   "events",
		Short: "List call events recorded with --record",
		RunE:  handler.ListEventsCmd,
	}
	eventsCmd.Flags().String("run", "", "Only events of this run ID")
	eventsCmd.Flags().String("operation", "", "Only events of this operation, e.g. C_Sign")
	eventsCmd.Flags().String("phase", "", "Only entry or exit events")
	eventsCmd.Flags().Bool("failed", false, "Only exit events with a status other than CKR_OK")
	eventsCmd.Flags().Int("limit", 100, "Maximum number of events")
	eventsCmd.Flags().Int("offset", 0, "Number of events to skip")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded run IDs",
		RunE:  handler.ListRunsCmd,
	}
	eventsCmd.AddCommand(runsCmd)

	rootCmd.AddCommand(eventsCmd)
}

//go:build integration
// +build integration

package persistence

import (
	"context"
	"os"
	"testing"

	"github.com/MGTheTrain/pkcs11-spy/internal/domain/trace"
	"github.com/MGTheTrain/pkcs11-spy/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallEventPsqlRepository_RecordAndList(t *testing.T) {
	if os.Getenv("PKCS11SPY_TEST_POSTGRES") == "" {
		t.Skip("PKCS11SPY_TEST_POSTGRES not set")
	}
	ctx := SetupTestDB(t, config.PostgresDbType)
	background := context.Background()

	runID := uuid.NewString()
	require.NoError(t, ctx.EventRepo.Record(background, CreateTestEvent(t, runID, 1, "C_GetInfo", trace.PhaseEntry)))
	require.NoError(t, ctx.EventRepo.Record(background, CreateTestEvent(t, runID, 1, "C_GetInfo", trace.PhaseExit)))

	events, err := ctx.EventRepo.List(background, &trace.EventQuery{RunID: runID})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, trace.PhaseEntry, events[0].Phase)

	runs, err := ctx.EventRepo.Runs(background)
	require.NoError(t, err)
	assert.Contains(t, runs, runID)
}

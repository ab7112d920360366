package broker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Werneck0live/importa-empresas/internal/models"
)

func TestImportMessage(t *testing.T) {
	s := models.ImportSummary{
		RunID:      "0b8f3c1e-2f5a-4a39-9d38-7c2b8f0a1d11",
		Table:      "empresas",
		Deleted:    4,
		Count:      12,
		FinishedAt: time.Date(2026, 2, 2, 13, 0, 5, 0, time.FixedZone("BRT", -3*3600)),
	}

	body, headers := importMessage(s)

	assert.Equal(t, "Importação de EMPRESAS: 12 registros", body)
	assert.Equal(t, ActionImport, headers["action"])
	assert.Equal(t, s.RunID, headers["run_id"])
	assert.Equal(t, "empresas", headers["table"])
	assert.Equal(t, int64(12), headers["count"])
	assert.Equal(t, int64(4), headers["deleted"])
	assert.Equal(t, "2026-02-02T16:00:05Z", headers["timestamp"])
	assert.NoError(t, headers.Validate())
}

// api/audit/repository_test.go
package audit_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/orbitpm/api/audit"
	"github.com/orbitpm/api/geoip"
)

func TestGormRepository(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&name=audit"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&audit.LoginHistory{}))

	repo := audit.NewGormRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	entries := []audit.LoginHistory{
		{ID: uuid.NewString(), PrincipalID: "comp-1", IP: "203.0.113.7", Outcome: audit.OutcomeSuccess, Timestamp: now.Add(-2 * time.Hour), LookupStatus: geoip.StatusSuccess},
		{ID: uuid.NewString(), PrincipalID: "comp-1", IP: "203.0.113.7", Outcome: audit.OutcomeFailed, Timestamp: now.Add(-time.Hour), LookupStatus: geoip.StatusFail},
		{ID: uuid.NewString(), PrincipalID: "comp-2", IP: "198.51.100.9", Outcome: audit.OutcomeSuccess, Timestamp: now.Add(-time.Hour), LookupStatus: geoip.StatusSuccess},
	}
	for _, entry := range entries {
		require.NoError(t, repo.Record(ctx, entry))
	}

	t.Run("QueryByPrincipal", func(t *testing.T) {
		got, err := repo.Query(ctx, now.Add(-24*time.Hour), now, "comp-1")
		require.NoError(t, err)
		assert.Len(t, got, 2)
		// Most recent first.
		assert.Equal(t, audit.OutcomeFailed, got[0].Outcome)
	})

	t.Run("QueryAllInWindow", func(t *testing.T) {
		got, err := repo.Query(ctx, now.Add(-90*time.Minute), now, "")
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}

package collection

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupCreateScopesIncludeListToCollection(t *testing.T) {
	var captured struct {
		ID      string   `json:"id"`
		Include []string `json:"include"`
	}
	c, srv := newTestCollection(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, decodeBody(r, &captured))
		w.WriteHeader(http.StatusOK)
	})
	defer srv.Close()

	require.NoError(t, c.Backup().Create(context.Background(), "filesystem", "backup-1"))
	assert.Equal(t, "backup-1", captured.ID)
	assert.Equal(t, []string{"Article"}, captured.Include)
}

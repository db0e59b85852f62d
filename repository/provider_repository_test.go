package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rocketboost-admin/models"
)

func TestProviderRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProviderRepository(db)

	mock.ExpectQuery("FROM providers ORDER BY code").
		WillReturnRows(sqlmock.NewRows([]string{"code", "name", "api_url", "api_key", "created_at"}).
			AddRow("panelA", "Panel A", "https://panel-a.example/api/v2", "key-a", nil).
			AddRow("panelB", nil, "https://panel-b.example/api/v2", "key-b", nil))

	providers, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, providers, 2)
	assert.Equal(t, "Panel A", *providers[0].Name)
	assert.Nil(t, providers[1].Name)
}

func TestProviderRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProviderRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE providers SET name = $1, api_key = $2 WHERE code = $3")).
		WithArgs("Main panel", "new-key", "panelA").
		WillReturnResult(sqlmock.NewResult(0, 1))

	name := "Main panel"
	err := repo.Update(context.Background(), "panelA", &models.UpdateProviderRequest{
		Name:   models.Optional[string]{Set: true, Value: &name},
		APIKey: strPtr("new-key"),
	})
	require.NoError(t, err)
}

func TestProviderRepository_Update_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProviderRepository(db)

	mock.ExpectExec("UPDATE providers").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), "ghost", &models.UpdateProviderRequest{APIURL: strPtr("https://x")})
	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestProviderRepository_Update_EmptyPatch(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProviderRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM providers WHERE code = $1)`)).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	err := repo.Update(context.Background(), "ghost", &models.UpdateProviderRequest{})
	assert.ErrorIs(t, err, ErrProviderNotFound)
}

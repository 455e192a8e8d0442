package mysql

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/asaidimu/go-dml/core/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDSN(t *testing.T) {
	cfg, err := ParseDSN("shop:secret@tcp(127.0.0.1:3306)/shop")
	require.NoError(t, err)
	assert.Equal(t, "shop", cfg.User)
	assert.Equal(t, "127.0.0.1:3306", cfg.Addr)
	assert.Equal(t, "shop", cfg.DBName)

	_, err = ParseDSN("not a dsn")
	assert.Error(t, err)
}

func TestOpen_InvalidDSN(t *testing.T) {
	_, err := Open(context.Background(), "not a dsn", nil, nil)
	assert.ErrorContains(t, err, "invalid mysql dsn")
}

func TestOpenDB_EscapeMode(t *testing.T) {
	tests := []struct {
		name     string
		opts     *Options
		expected string
	}{
		{"defaults", nil, `O\'Brien\\`},
		{"no backslash escapes", &Options{NoBackslashEscapes: true}, `O''Brien\`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, _, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			conn := OpenDB(db, tt.opts, nil)
			got, err := conn.EscapeString(`O'Brien\`)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestExecutor_SelectForUpdate(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	exec, err := persistence.NewExecutor(OpenDB(db, nil, nil), nil)
	require.NoError(t, err)

	b := exec.NewBuilder()
	sku, err := b.Value("A-1", "", "")
	require.NoError(t, err)
	b.Select("`qty`").From("`stock`").Where("`sku`", sku, "").LockMode("exclusive")

	mock.ExpectQuery("SELECT `qty` FROM `stock` WHERE `sku` = 'A-1' FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"qty"}).AddRow(int64(4)))

	rows, err := exec.Select(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, []persistence.Row{{"qty": int64(4)}}, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

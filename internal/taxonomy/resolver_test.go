package taxonomy

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBResolver_Resolve(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		setupMock func(mock sqlmock.Sqlmock)
		want      string
		wantErr   error
	}{
		{
			name: "resolves known alias",
			raw:  "personal-finance",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"category_id"}).AddRow("finance")
				mock.ExpectQuery("SELECT category_id FROM category_aliases WHERE alias = ?").
					WithArgs("personal-finance").
					WillReturnRows(rows)
			},
			want: "finance",
		},
		{
			name: "unknown alias returns ErrUnresolved",
			raw:  "astrology",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT category_id FROM category_aliases WHERE alias = ?").
					WithArgs("astrology").
					WillReturnRows(sqlmock.NewRows([]string{"category_id"}))
			},
			wantErr: ErrUnresolved,
		},
		{
			name:      "empty raw category returns ErrUnresolved without querying",
			raw:       "",
			setupMock: func(mock sqlmock.Sqlmock) {},
			wantErr:   ErrUnresolved,
		},
		{
			name: "db error is propagated",
			raw:  "finance",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT category_id FROM category_aliases WHERE alias = ?").
					WithArgs("finance").
					WillReturnError(fmt.Errorf("connection refused"))
			},
			wantErr: fmt.Errorf("connection refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.setupMock(mock)

			resolver := NewDBResolver(sqlx.NewDb(db, "mysql"))
			got, err := resolver.Resolve(context.Background(), tt.raw)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStaticResolver_Resolve(t *testing.T) {
	resolver := NewStaticResolver(map[string]string{
		"personal-finance": "finance",
		"tech_basics":      "technology",
	})

	ctx := context.Background()

	got, err := resolver.Resolve(ctx, "personal-finance")
	require.NoError(t, err)
	assert.Equal(t, "finance", got)

	_, err = resolver.Resolve(ctx, "unknown")
	assert.ErrorIs(t, err, ErrUnresolved)
}

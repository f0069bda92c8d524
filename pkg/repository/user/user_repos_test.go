//nolint:dupl,funlen,errcheck //ok for this test code
package user

import (
	"context"
	"errors"
	"log"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"

	"github.com/nicolarischia/f1-analytics/pkg/model"
	"github.com/nicolarischia/f1-analytics/pkg/repository"
	"github.com/nicolarischia/f1-analytics/testsupport/testdb"
)

var sampleUser = &model.User{
	Username:     "testuser",
	Email:        "test@example.com",
	PasswordHash: "$2a$10$fakefakefakefakefakefake",
}

func createSampleEntry(db *pgxpool.Pool) *model.User {
	ctx := context.Background()
	var ret *model.User
	err := pgx.BeginFunc(context.Background(), db, func(tx pgx.Tx) error {
		var err error
		ret, err = Create(ctx, tx, sampleUser)
		return err
	})
	if err != nil {
		log.Fatalf("createSampleEntry: %v\n", err)
	}
	return ret
}

func TestCreate(t *testing.T) {
	pool := testdb.InitTestDb()
	tests := []struct {
		name    string
		arg     *model.User
		wantErr bool
	}{
		{
			name: "new entry",
			arg: &model.User{
				Username:     "other",
				Email:        "other@example.com",
				PasswordHash: "hash",
			},
			wantErr: false,
		},
		{
			name: "duplicate username",
			arg: &model.User{
				Username:     "testuser",
				Email:        "unique@example.com",
				PasswordHash: "hash",
			},
			wantErr: true,
		},
		{
			name: "duplicate email",
			arg: &model.User{
				Username:     "unique",
				Email:        "test@example.com",
				PasswordHash: "hash",
			},
			wantErr: true,
		},
	}
	createSampleEntry(pool)
	for _, tt := range tests {
		ctx := context.Background()
		t.Run(tt.name, func(t *testing.T) {
			_, err := Create(ctx, pool, tt.arg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Create error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadByEmail(t *testing.T) {
	pool := testdb.InitTestDb()
	sample := createSampleEntry(pool)

	loaded, err := LoadByEmail(context.Background(), pool, sample.Email)
	assert.NoError(t, err)
	assert.Equal(t, sample.Username, loaded.Username)
	assert.False(t, loaded.ExternalID.IsNil())

	_, err = LoadByEmail(context.Background(), pool, "unknown@example.com")
	assert.True(t, errors.Is(err, repository.ErrNoData))
}

func TestLoadByExternalID(t *testing.T) {
	pool := testdb.InitTestDb()
	sample := createSampleEntry(pool)

	loaded, err := LoadByExternalID(context.Background(), pool, sample.ExternalID)
	assert.NoError(t, err)
	assert.Equal(t, sample.ID, loaded.ID)
}

func TestExistsByUsernameOrEmail(t *testing.T) {
	pool := testdb.InitTestDb()
	createSampleEntry(pool)
	ctx := context.Background()

	found, err := ExistsByUsernameOrEmail(ctx, pool, "testuser", "none@example.com")
	assert.NoError(t, err)
	assert.True(t, found)

	found, err = ExistsByUsernameOrEmail(ctx, pool, "none", "test@example.com")
	assert.NoError(t, err)
	assert.True(t, found)

	found, err = ExistsByUsernameOrEmail(ctx, pool, "none", "none@example.com")
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestUpdatePassword(t *testing.T) {
	pool := testdb.InitTestDb()
	sample := createSampleEntry(pool)
	ctx := context.Background()

	assert.NoError(t, UpdatePassword(ctx, pool, sample.ID, "newhash"))
	loaded, err := LoadByID(ctx, pool, sample.ID)
	assert.NoError(t, err)
	assert.Equal(t, "newhash", loaded.PasswordHash)

	err = UpdatePassword(ctx, pool, -1, "x")
	assert.True(t, errors.Is(err, repository.ErrNoData))
}

func TestDeleteByID(t *testing.T) {
	pool := testdb.InitTestDb()
	sample := createSampleEntry(pool)

	num, err := DeleteByID(context.Background(), pool, sample.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, num)
}

//nolint:dupl,funlen,errcheck //ok for this test code
package prediction

import (
	"context"
	"errors"
	"log"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"

	"github.com/nicolarischia/f1-analytics/pkg/model"
	"github.com/nicolarischia/f1-analytics/pkg/repository"
	userrepos "github.com/nicolarischia/f1-analytics/pkg/repository/user"
	"github.com/nicolarischia/f1-analytics/testsupport/testdb"
)

func createSampleUser(db *pgxpool.Pool, username string) *model.User {
	ctx := context.Background()
	ret, err := userrepos.Create(ctx, db, &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
	})
	if err != nil {
		log.Fatalf("createSampleUser: %v\n", err)
	}
	return ret
}

func createSampleEntry(db *pgxpool.Pool, userID int) *model.Prediction {
	ctx := context.Background()
	var ret *model.Prediction
	err := pgx.BeginFunc(context.Background(), db, func(tx pgx.Tx) error {
		var err error
		ret, err = Create(ctx, tx, &model.Prediction{
			UserID:   userID,
			Race:     "Monza",
			Driver:   "Leclerc",
			Position: 1,
			Notes:    "home race",
		})
		return err
	})
	if err != nil {
		log.Fatalf("createSampleEntry: %v\n", err)
	}
	return ret
}

func TestCreateLoad(t *testing.T) {
	pool := testdb.InitTestDb()
	owner := createSampleUser(pool, "owner")
	sample := createSampleEntry(pool, owner.ID)

	loaded, err := LoadByExternalID(context.Background(), pool, sample.ExternalID)
	assert.NoError(t, err)
	assert.Equal(t, "Monza", loaded.Race)
	assert.Equal(t, owner.ID, loaded.UserID)
}

func TestLoadByUser(t *testing.T) {
	pool := testdb.InitTestDb()
	owner := createSampleUser(pool, "owner")
	other := createSampleUser(pool, "other")
	first := createSampleEntry(pool, owner.ID)
	second := createSampleEntry(pool, owner.ID)
	createSampleEntry(pool, other.ID)

	items, err := LoadByUser(context.Background(), pool, owner.ID)
	assert.NoError(t, err)
	assert.Len(t, items, 2)
	// newest first
	assert.False(t, items[0].CreatedAt.Before(items[1].CreatedAt))
	_ = first
	_ = second
}

func TestUpdate(t *testing.T) {
	pool := testdb.InitTestDb()
	owner := createSampleUser(pool, "owner")
	other := createSampleUser(pool, "other")
	sample := createSampleEntry(pool, owner.ID)
	ctx := context.Background()

	updated, err := Update(ctx, pool, sample.ExternalID, owner.ID,
		&model.Prediction{Race: "Spa", Driver: "Verstappen", Position: 2})
	assert.NoError(t, err)
	assert.Equal(t, "Spa", updated.Race)
	assert.Equal(t, 2, updated.Position)

	// foreign owner must not match
	_, err = Update(ctx, pool, sample.ExternalID, other.ID,
		&model.Prediction{Race: "x", Driver: "y", Position: 3})
	assert.True(t, errors.Is(err, repository.ErrNoData))

	_, err = Update(ctx, pool, uuid.Must(uuid.NewV4()), owner.ID,
		&model.Prediction{Race: "x", Driver: "y", Position: 3})
	assert.True(t, errors.Is(err, repository.ErrNoData))
}

func TestDeleteByExternalID(t *testing.T) {
	pool := testdb.InitTestDb()
	owner := createSampleUser(pool, "owner")
	other := createSampleUser(pool, "other")
	sample := createSampleEntry(pool, owner.ID)
	ctx := context.Background()

	num, err := DeleteByExternalID(ctx, pool, sample.ExternalID, other.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0, num)

	num, err = DeleteByExternalID(ctx, pool, sample.ExternalID, owner.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, num)
}

func TestDeleteCascadeOnUser(t *testing.T) {
	pool := testdb.InitTestDb()
	owner := createSampleUser(pool, "owner")
	sample := createSampleEntry(pool, owner.ID)
	ctx := context.Background()

	_, err := userrepos.DeleteByID(ctx, pool, owner.ID)
	assert.NoError(t, err)

	_, err = LoadByExternalID(ctx, pool, sample.ExternalID)
	assert.True(t, errors.Is(err, repository.ErrNoData))
}

//nolint:dupl,funlen,errcheck //ok for this test code
package driver

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

var sampleDriver = &model.Driver{
	DriverID:     1,
	DriverNumber: 44,
	Name:         "Lewis Hamilton",
	TeamName:     "Ferrari",
	TeamColor:    "#E8002D",
}

func createSampleEntry(db *pgxpool.Pool) *model.Driver {
	ctx := context.Background()
	var ret *model.Driver
	err := pgx.BeginFunc(context.Background(), db, func(tx pgx.Tx) error {
		var err error
		ret, err = Create(ctx, tx, sampleDriver)
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
		arg     *model.Driver
		wantErr bool
	}{
		{
			name: "new entry",
			arg: &model.Driver{
				DriverID:     2,
				DriverNumber: 4,
				Name:         "Lando Norris",
				TeamName:     "McLaren",
			},
			wantErr: false,
		},
		{
			name: "duplicate driver_id",
			arg: &model.Driver{
				DriverID: 1,
				Name:     "Somebody Else",
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

func TestLoadByID(t *testing.T) {
	pool := testdb.InitTestDb()
	sample := createSampleEntry(pool)

	loaded, err := LoadByID(context.Background(), pool, sample.ID)
	assert.NoError(t, err)
	assert.Equal(t, sample.Name, loaded.Name)

	_, err = LoadByID(context.Background(), pool, -1)
	assert.True(t, errors.Is(err, repository.ErrNoData))
}

func TestLoadByDriverID(t *testing.T) {
	pool := testdb.InitTestDb()
	sample := createSampleEntry(pool)

	loaded, err := LoadByDriverID(context.Background(), pool, sample.DriverID)
	assert.NoError(t, err)
	assert.Equal(t, sample.ID, loaded.ID)
}

func TestLoadByNumber(t *testing.T) {
	pool := testdb.InitTestDb()
	sample := createSampleEntry(pool)

	loaded, err := LoadByNumber(context.Background(), pool, sample.DriverNumber)
	assert.NoError(t, err)
	assert.Equal(t, sample.DriverID, loaded.DriverID)
}

func TestUpsert(t *testing.T) {
	pool := testdb.InitTestDb()
	sample := createSampleEntry(pool)
	ctx := context.Background()

	// stats set by a separate job must survive the upsert
	stats := &model.DriverStats{Points: 25, Wins: 1, Podiums: 1, AvgPosition: 1}
	assert.NoError(t, UpdateStats(ctx, pool, sample.DriverID, stats))

	err := Upsert(ctx, pool, &model.Driver{
		DriverID:     sample.DriverID,
		DriverNumber: sample.DriverNumber,
		Name:         sample.Name,
		TeamName:     "Mercedes",
		TeamColor:    "#27F4D2",
	})
	assert.NoError(t, err)

	loaded, err := LoadByDriverID(ctx, pool, sample.DriverID)
	assert.NoError(t, err)
	assert.Equal(t, "Mercedes", loaded.TeamName)
	assert.Equal(t, 25, loaded.Stats.Points)
}

func TestUpdate(t *testing.T) {
	pool := testdb.InitTestDb()
	sample := createSampleEntry(pool)
	ctx := context.Background()

	updated, err := Update(ctx, pool, sample.ID, &model.Driver{
		Name: "Sir Lewis Hamilton",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Sir Lewis Hamilton", updated.Name)
	// empty attrs keep their previous value
	assert.Equal(t, sample.TeamName, updated.TeamName)
	// the upstream key is owned by the scrape jobs and never rewritten here
	assert.Equal(t, sample.DriverID, updated.DriverID)
	byDriverID, err := LoadByDriverID(ctx, pool, sample.DriverID)
	assert.NoError(t, err)
	assert.Equal(t, updated.Name, byDriverID.Name)

	_, err = Update(ctx, pool, -1, &model.Driver{Name: "x"})
	assert.True(t, errors.Is(err, repository.ErrNoData))
}

func TestDeleteByID(t *testing.T) {
	pool := testdb.InitTestDb()
	sample := createSampleEntry(pool)

	num, err := DeleteByID(context.Background(), pool, sample.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, num)

	num, err = DeleteByID(context.Background(), pool, sample.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0, num)
}

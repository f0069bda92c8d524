package driver

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nicolarischia/f1-analytics/pkg/model"
	"github.com/nicolarischia/f1-analytics/pkg/repository"
)

var selector = `select d.id, d.driver_id, d.driver_number, d.name, d.team_name,
	d.team_color, d.stats, d.last_updated
	from driver d`

func Create(
	ctx context.Context,
	conn repository.Querier,
	arg *model.Driver,
) (*model.Driver, error) {
	row := conn.QueryRow(ctx, `
	insert into driver (
		driver_id, driver_number, name, team_name, team_color, stats
	) values ($1,$2,$3,$4,$5,$6)
	returning id
		`,
		arg.DriverID, arg.DriverNumber, arg.Name, arg.TeamName, arg.TeamColor,
		arg.Stats,
	)
	var id int
	if err := row.Scan(&id); err != nil {
		return nil, err
	}
	return LoadByID(ctx, conn, id)
}

// Upsert inserts or replaces a driver keyed by the upstream driver_id.
// Used by the scrape jobs; stats are left untouched on conflict.
func Upsert(ctx context.Context, conn repository.Querier, arg *model.Driver) error {
	_, err := conn.Exec(ctx, `
	insert into driver (
		driver_id, driver_number, name, team_name, team_color, stats, last_updated
	) values ($1,$2,$3,$4,$5,$6,current_timestamp)
	on conflict (driver_id) do update set
		driver_number=excluded.driver_number,
		name=excluded.name,
		team_name=excluded.team_name,
		team_color=excluded.team_color,
		last_updated=excluded.last_updated
	`,
		arg.DriverID, arg.DriverNumber, arg.Name, arg.TeamName, arg.TeamColor,
		arg.Stats,
	)
	return err
}

func LoadByID(ctx context.Context, conn repository.Querier, id int) (
	*model.Driver, error,
) {
	row := conn.QueryRow(ctx, fmt.Sprintf("%s where d.id=$1", selector), id)
	return readData(row)
}

// LoadByDriverID loads by the upstream driver identifier.
func LoadByDriverID(ctx context.Context, conn repository.Querier, driverID int) (
	*model.Driver, error,
) {
	row := conn.QueryRow(ctx, fmt.Sprintf("%s where d.driver_id=$1", selector), driverID)
	return readData(row)
}

func LoadByNumber(ctx context.Context, conn repository.Querier, driverNumber int) (
	*model.Driver, error,
) {
	row := conn.QueryRow(ctx,
		fmt.Sprintf("%s where d.driver_number=$1", selector), driverNumber)
	return readData(row)
}

func LoadByTeamName(ctx context.Context, conn repository.Querier, teamName string) (
	[]*model.Driver, error,
) {
	rows, err := conn.Query(ctx,
		fmt.Sprintf("%s where d.team_name=$1 order by d.driver_number asc", selector),
		teamName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return readAll(rows)
}

func LoadAll(ctx context.Context, conn repository.Querier) ([]*model.Driver, error) {
	rows, err := conn.Query(ctx,
		fmt.Sprintf("%s order by d.driver_number asc", selector))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return readAll(rows)
}

func Update(
	ctx context.Context,
	conn repository.Querier,
	id int,
	arg *model.Driver,
) (*model.Driver, error) {
	cmdTag, err := conn.Exec(ctx, `
		update driver set
		driver_number=$1,
		name=coalesce(nullif($2,''),name),
		team_name=coalesce(nullif($3,''),team_name),
		team_color=coalesce(nullif($4,''),team_color),
		last_updated=current_timestamp
		where id=$5
	`, arg.DriverNumber, arg.Name, arg.TeamName, arg.TeamColor, id)
	if err != nil {
		return nil, err
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, repository.ErrNoData
	}
	return LoadByID(ctx, conn, id)
}

// UpdateStats replaces the season aggregates for a driver (scrape jobs only).
func UpdateStats(
	ctx context.Context,
	conn repository.Querier,
	driverID int,
	stats *model.DriverStats,
) error {
	cmdTag, err := conn.Exec(ctx, `
		update driver set stats=$1, last_updated=current_timestamp
		where driver_id=$2
	`, stats, driverID)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return repository.ErrNoData
	}
	return nil
}

// deletes an entry from the database, returns number of rows deleted.
func DeleteByID(ctx context.Context, conn repository.Querier, id int) (int, error) {
	cmdTag, err := conn.Exec(ctx, "delete from driver where id=$1", id)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

func readAll(rows pgx.Rows) ([]*model.Driver, error) {
	ret := make([]*model.Driver, 0)
	for rows.Next() {
		item, err := readData(rows)
		if err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, nil
}

func readData(row pgx.Row) (*model.Driver, error) {
	var item model.Driver
	if err := row.Scan(
		&item.ID,
		&item.DriverID,
		&item.DriverNumber,
		&item.Name,
		&item.TeamName,
		&item.TeamColor,
		&item.Stats,
		&item.LastUpdated,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNoData
		}
		return nil, err
	}
	return &item, nil
}

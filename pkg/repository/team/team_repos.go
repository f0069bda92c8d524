package team

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nicolarischia/f1-analytics/pkg/model"
	"github.com/nicolarischia/f1-analytics/pkg/repository"
)

var selector = `select t.id, t.team_id, t.name, t.base, t.team_principal,
	t.founded_year, t.color, t.stats, t.last_updated
	from team t`

func Create(
	ctx context.Context,
	conn repository.Querier,
	arg *model.Team,
) (*model.Team, error) {
	row := conn.QueryRow(ctx, `
	insert into team (
		team_id, name, base, team_principal, founded_year, color, stats
	) values ($1,$2,$3,$4,$5,$6,$7)
	returning id
		`,
		arg.TeamID, arg.Name, arg.Base, arg.TeamPrincipal, arg.FoundedYear,
		arg.Color, arg.Stats,
	)
	var id int
	if err := row.Scan(&id); err != nil {
		return nil, err
	}
	return LoadByID(ctx, conn, id)
}

// Upsert inserts or replaces a team keyed by the upstream team_id.
// Used by the scrape jobs; stats are left untouched on conflict.
func Upsert(ctx context.Context, conn repository.Querier, arg *model.Team) error {
	_, err := conn.Exec(ctx, `
	insert into team (
		team_id, name, base, team_principal, founded_year, color, stats, last_updated
	) values ($1,$2,$3,$4,$5,$6,$7,current_timestamp)
	on conflict (team_id) do update set
		name=excluded.name,
		color=excluded.color,
		last_updated=excluded.last_updated
	`,
		arg.TeamID, arg.Name, arg.Base, arg.TeamPrincipal, arg.FoundedYear,
		arg.Color, arg.Stats,
	)
	return err
}

func LoadByID(ctx context.Context, conn repository.Querier, id int) (
	*model.Team, error,
) {
	row := conn.QueryRow(ctx, fmt.Sprintf("%s where t.id=$1", selector), id)
	return readData(row)
}

func LoadByTeamID(ctx context.Context, conn repository.Querier, teamID int) (
	*model.Team, error,
) {
	row := conn.QueryRow(ctx, fmt.Sprintf("%s where t.team_id=$1", selector), teamID)
	return readData(row)
}

func LoadByName(ctx context.Context, conn repository.Querier, name string) (
	*model.Team, error,
) {
	row := conn.QueryRow(ctx, fmt.Sprintf("%s where t.name=$1", selector), name)
	return readData(row)
}

func LoadAll(ctx context.Context, conn repository.Querier) ([]*model.Team, error) {
	rows, err := conn.Query(ctx, fmt.Sprintf("%s order by t.name asc", selector))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := make([]*model.Team, 0)
	for rows.Next() {
		item, err := readData(rows)
		if err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, nil
}

func Update(
	ctx context.Context,
	conn repository.Querier,
	id int,
	arg *model.Team,
) (*model.Team, error) {
	cmdTag, err := conn.Exec(ctx, `
		update team set
		name=coalesce(nullif($1,''),name),
		base=coalesce(nullif($2,''),base),
		team_principal=coalesce(nullif($3,''),team_principal),
		founded_year=$4,
		color=coalesce(nullif($5,''),color),
		last_updated=current_timestamp
		where id=$6
	`, arg.Name, arg.Base, arg.TeamPrincipal, arg.FoundedYear, arg.Color, id)
	if err != nil {
		return nil, err
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, repository.ErrNoData
	}
	return LoadByID(ctx, conn, id)
}

// UpdateStats replaces the season aggregates for a team (scrape jobs only).
func UpdateStats(
	ctx context.Context,
	conn repository.Querier,
	teamID int,
	stats *model.TeamStats,
) error {
	cmdTag, err := conn.Exec(ctx, `
		update team set stats=$1, last_updated=current_timestamp
		where team_id=$2
	`, stats, teamID)
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
	cmdTag, err := conn.Exec(ctx, "delete from team where id=$1", id)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

func readData(row pgx.Row) (*model.Team, error) {
	var item model.Team
	if err := row.Scan(
		&item.ID,
		&item.TeamID,
		&item.Name,
		&item.Base,
		&item.TeamPrincipal,
		&item.FoundedYear,
		&item.Color,
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

package prediction

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/nicolarischia/f1-analytics/pkg/model"
	"github.com/nicolarischia/f1-analytics/pkg/repository"
)

var selector = `select p.id, p.external_id, p.user_id, p.race, p.driver,
	p.position, p.notes, p.created_at, p.updated_at
	from prediction p`

func Create(
	ctx context.Context,
	conn repository.Querier,
	arg *model.Prediction,
) (*model.Prediction, error) {
	row := conn.QueryRow(ctx, `
	insert into prediction (user_id, race, driver, position, notes)
	values ($1,$2,$3,$4,$5)
	returning id
		`,
		arg.UserID, arg.Race, arg.Driver, arg.Position, arg.Notes,
	)
	var id int
	if err := row.Scan(&id); err != nil {
		return nil, err
	}
	return LoadByID(ctx, conn, id)
}

func LoadByID(ctx context.Context, conn repository.Querier, id int) (
	*model.Prediction, error,
) {
	row := conn.QueryRow(ctx, fmt.Sprintf("%s where p.id=$1", selector), id)
	return readData(row)
}

func LoadByExternalID(ctx context.Context, conn repository.Querier, extID uuid.UUID) (
	*model.Prediction, error,
) {
	row := conn.QueryRow(ctx, fmt.Sprintf("%s where p.external_id=$1", selector), extID)
	return readData(row)
}

// LoadByUser returns the user's predictions, newest first.
func LoadByUser(ctx context.Context, conn repository.Querier, userID int) (
	[]*model.Prediction, error,
) {
	rows, err := conn.Query(ctx,
		fmt.Sprintf("%s where p.user_id=$1 order by p.created_at desc", selector),
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := make([]*model.Prediction, 0)
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
	extID uuid.UUID,
	userID int,
	arg *model.Prediction,
) (*model.Prediction, error) {
	cmdTag, err := conn.Exec(ctx, `
		update prediction set
		race=coalesce(nullif($1,''),race),
		driver=coalesce(nullif($2,''),driver),
		position=$3,
		notes=$4,
		updated_at=current_timestamp
		where external_id=$5 and user_id=$6
	`, arg.Race, arg.Driver, arg.Position, arg.Notes, extID, userID)
	if err != nil {
		return nil, err
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, repository.ErrNoData
	}
	return LoadByExternalID(ctx, conn, extID)
}

// deletes an entry from the database, returns number of rows deleted.
func DeleteByExternalID(
	ctx context.Context,
	conn repository.Querier,
	extID uuid.UUID,
	userID int,
) (int, error) {
	cmdTag, err := conn.Exec(ctx,
		"delete from prediction where external_id=$1 and user_id=$2", extID, userID)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

func readData(row pgx.Row) (*model.Prediction, error) {
	var item model.Prediction
	if err := row.Scan(
		&item.ID,
		&item.ExternalID,
		&item.UserID,
		&item.Race,
		&item.Driver,
		&item.Position,
		&item.Notes,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNoData
		}
		return nil, err
	}
	return &item, nil
}

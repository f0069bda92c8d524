package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/nicolarischia/f1-analytics/pkg/model"
	"github.com/nicolarischia/f1-analytics/pkg/repository"
)

var selector = `select u.id, u.external_id, u.username, u.email,
	u.password_hash, u.is_admin, u.created_at
	from user_account u`

func Create(
	ctx context.Context,
	conn repository.Querier,
	arg *model.User,
) (*model.User, error) {
	row := conn.QueryRow(ctx, `
	insert into user_account (username, email, password_hash, is_admin)
	values ($1,$2,$3,$4)
	returning id
		`,
		arg.Username, arg.Email, arg.PasswordHash, arg.IsAdmin,
	)
	var id int
	if err := row.Scan(&id); err != nil {
		return nil, err
	}
	return LoadByID(ctx, conn, id)
}

func LoadByID(ctx context.Context, conn repository.Querier, id int) (
	*model.User, error,
) {
	row := conn.QueryRow(ctx, fmt.Sprintf("%s where u.id=$1", selector), id)
	return readData(row)
}

func LoadByExternalID(ctx context.Context, conn repository.Querier, extID uuid.UUID) (
	*model.User, error,
) {
	row := conn.QueryRow(ctx, fmt.Sprintf("%s where u.external_id=$1", selector), extID)
	return readData(row)
}

func LoadByEmail(ctx context.Context, conn repository.Querier, email string) (
	*model.User, error,
) {
	row := conn.QueryRow(ctx, fmt.Sprintf("%s where u.email=$1", selector), email)
	return readData(row)
}

// ExistsByUsernameOrEmail reports whether either attribute is already taken.
func ExistsByUsernameOrEmail(
	ctx context.Context,
	conn repository.Querier,
	username string,
	email string,
) (bool, error) {
	row := conn.QueryRow(ctx, `
	select exists(select 1 from user_account where username=$1 or email=$2)
	`, username, email)
	var found bool
	if err := row.Scan(&found); err != nil {
		return false, err
	}
	return found, nil
}

func UpdatePassword(
	ctx context.Context,
	conn repository.Querier,
	id int,
	passwordHash string,
) error {
	cmdTag, err := conn.Exec(ctx, `
		update user_account set password_hash=$1 where id=$2
	`, passwordHash, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return repository.ErrNoData
	}
	return nil
}

// deletes an entry from the database, returns number of rows deleted.
// Predictions owned by the user are removed by the fk cascade.
func DeleteByID(ctx context.Context, conn repository.Querier, id int) (int, error) {
	cmdTag, err := conn.Exec(ctx, "delete from user_account where id=$1", id)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

func readData(row pgx.Row) (*model.User, error) {
	var item model.User
	if err := row.Scan(
		&item.ID,
		&item.ExternalID,
		&item.Username,
		&item.Email,
		&item.PasswordHash,
		&item.IsAdmin,
		&item.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNoData
		}
		return nil, err
	}
	return &item, nil
}

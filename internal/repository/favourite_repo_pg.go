package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/airbooking-storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FavouriteRepository interface {
	List(ctx context.Context, userID string) ([]domain.Favourite, error)
	// Add stores fav unless the user already saved that flight, in which case the
	// existing favourite is returned with created=false.
	Add(ctx context.Context, userID string, fav domain.Favourite) (saved *domain.Favourite, created bool, err error)
	Remove(ctx context.Context, userID, id string) error
}

type PGFavouriteRepository struct {
	db *pgxpool.Pool
}

func NewFavouriteRepository(db *pgxpool.Pool) FavouriteRepository {
	return &PGFavouriteRepository{db: db}
}

const favouriteColumns = `id, flight_id, flight_number, departure_airport, arrival_airport, departure_datetime, reduced_price, added_at`

func (r *PGFavouriteRepository) List(ctx context.Context, userID string) ([]domain.Favourite, error) {
	rows, err := r.db.Query(ctx, `SELECT `+favouriteColumns+` FROM favourites WHERE user_id=$1 ORDER BY added_at DESC, id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	favourites := make([]domain.Favourite, 0)
	for rows.Next() {
		f, err := scanFavourite(rows)
		if err != nil {
			return nil, err
		}
		favourites = append(favourites, *f)
	}
	return favourites, rows.Err()
}

func (r *PGFavouriteRepository) Add(ctx context.Context, userID string, fav domain.Favourite) (*domain.Favourite, bool, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO favourites (id, user_id, flight_id, flight_number, departure_airport, arrival_airport, departure_datetime, reduced_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, flight_id) DO NOTHING
		RETURNING `+favouriteColumns,
		string(fav.ID), userID, string(fav.FlightID), fav.FlightNumber, fav.DepartureAirport, fav.ArrivalAirport, fav.DepartureDatetime, fav.ReducedPrice)
	saved, err := scanFavourite(row)
	if err == nil {
		return saved, true, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	existing, err := scanFavourite(r.db.QueryRow(ctx, `SELECT `+favouriteColumns+` FROM favourites WHERE user_id=$1 AND flight_id=$2`, userID, string(fav.FlightID)))
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *PGFavouriteRepository) Remove(ctx context.Context, userID, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM favourites WHERE user_id=$1 AND id=$2`, userID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanFavourite(row pgx.Row) (*domain.Favourite, error) {
	var (
		f        domain.Favourite
		id       string
		flightID string
	)
	if err := row.Scan(&id, &flightID, &f.FlightNumber, &f.DepartureAirport, &f.ArrivalAirport, &f.DepartureDatetime, &f.ReducedPrice, &f.AddedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	f.ID = domain.ID(id)
	f.FlightID = domain.ID(flightID)
	f.AddedAt = f.AddedAt.UTC()
	return &f, nil
}

var _ FavouriteRepository = (*PGFavouriteRepository)(nil)

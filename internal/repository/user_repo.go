package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/saeid-a/FitBuddyBack/internal/models"
)

type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const userColumns = `id, name, username, email, password_hash, bio, profile_image, cover_image,
	   fitness_level, preferred_exercises, preferred_time, latitude, longitude, address,
	   followers, following, workouts, points, joined_at, created_at, updated_at`

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, name, username, email, password_hash, bio, profile_image,
						   fitness_level, preferred_exercises, preferred_time,
						   latitude, longitude, address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING joined_at, created_at, updated_at
	`
	lat, lon, addr := locationColumns(user.Location)
	return r.db.QueryRow(ctx, query,
		user.ID,
		user.Name,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Bio,
		user.ProfileImage,
		user.FitnessLevel,
		user.PreferredExercises,
		user.PreferredTime,
		lat,
		lon,
		addr,
	).Scan(&user.JoinedAt, &user.CreatedAt, &user.UpdatedAt)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *UserRepository) ListAll(ctx context.Context) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY name, id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func (r *UserRepository) UpdatePartial(ctx context.Context, id string, req UpdateUserInput) (*models.User, error) {
	query := `
		UPDATE users
		SET name = COALESCE($1, name),
			username = COALESCE($2, username),
			bio = COALESCE($3, bio),
			profile_image = COALESCE($4, profile_image),
			cover_image = COALESCE($5, cover_image),
			fitness_level = COALESCE($6, fitness_level),
			preferred_exercises = COALESCE($7, preferred_exercises),
			preferred_time = COALESCE($8, preferred_time),
			latitude = COALESCE($9, latitude),
			longitude = COALESCE($10, longitude),
			address = COALESCE($11, address),
			updated_at = NOW()
		WHERE id = $12
		RETURNING ` + userColumns
	var lat, lon *float64
	var addr *string
	if req.Location != nil {
		lat, lon, addr = locationColumns(req.Location)
	}
	return scanUser(r.db.QueryRow(ctx, query,
		req.Name,
		req.Username,
		req.Bio,
		req.ProfileImage,
		req.CoverImage,
		req.FitnessLevel,
		req.PreferredExercises,
		req.PreferredTime,
		lat,
		lon,
		addr,
		id,
	))
}

// AddWorkout bumps the workout counter and awards points in one statement.
func (r *UserRepository) AddWorkout(ctx context.Context, id string, points int) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET workouts = workouts + 1,
			points = points + $2,
			updated_at = NOW()
		WHERE id = $1
	`, id, points)
	return err
}

func (r *UserRepository) AddPoints(ctx context.Context, id string, points int) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET points = points + $2,
			updated_at = NOW()
		WHERE id = $1
	`, id, points)
	return err
}

func (r *UserRepository) TopByPoints(ctx context.Context, limit int) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY points DESC, id LIMIT $1`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]models.User, 0, limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

type UpdateUserInput struct {
	Name               *string
	Username           *string
	Bio                *string
	ProfileImage       *string
	CoverImage         *string
	FitnessLevel       *string
	PreferredExercises *[]string
	PreferredTime      *[]string
	Location           *models.Location
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	var lat, lon *float64
	var addr *string
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Bio,
		&user.ProfileImage,
		&user.CoverImage,
		&user.FitnessLevel,
		&user.PreferredExercises,
		&user.PreferredTime,
		&lat,
		&lon,
		&addr,
		&user.Followers,
		&user.Following,
		&user.Workouts,
		&user.Points,
		&user.JoinedAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if lat != nil && lon != nil {
		user.Location = &models.Location{Latitude: *lat, Longitude: *lon, Address: addr}
	}
	return &user, nil
}

func locationColumns(loc *models.Location) (*float64, *float64, *string) {
	if loc == nil {
		return nil, nil, nil
	}
	lat := loc.Latitude
	lon := loc.Longitude
	return &lat, &lon, loc.Address
}

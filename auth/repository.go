package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrAgentNotFound signals that the agent does not exist.
	ErrAgentNotFound = errors.New("auth: agent not found")
	// ErrDuplicateEmail signals that the email is already registered.
	ErrDuplicateEmail = errors.New("auth: email already exists")
)

// Repository handles data access for authentication.
type Repository interface {
	CreateAgent(ctx context.Context, params CreateAgentParams) (Agent, error)
	GetAgentByEmail(ctx context.Context, email string) (Agent, error)
	GetAgentByID(ctx context.Context, agentID string) (Agent, error)
}

// CreateAgentParams contains write parameters for onboarding agents.
type CreateAgentParams struct {
	Email        string
	FullName     string
	PasswordHash string
	Phone        *string
	Role         Role
}

// PGRepository implements Repository backed by PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a PostgreSQL-backed auth repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// CreateAgent inserts a new agent with hashed password.
func (r *PGRepository) CreateAgent(ctx context.Context, params CreateAgentParams) (Agent, error) {
	const insertSQL = `
		INSERT INTO agents (email, full_name, password_hash, phone, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, email, full_name, password_hash, phone, verified, role, created_at, updated_at
	`

	agent, err := scanAgent(r.pool.QueryRow(ctx, insertSQL, params.Email, params.FullName, params.PasswordHash, params.Phone, params.Role))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Agent{}, ErrDuplicateEmail
		}
		return Agent{}, fmt.Errorf("auth: create agent: %w", err)
	}

	return agent, nil
}

// GetAgentByEmail retrieves an agent by email address.
func (r *PGRepository) GetAgentByEmail(ctx context.Context, email string) (Agent, error) {
	const selectSQL = `
		SELECT id, email, full_name, password_hash, phone, verified, role, created_at, updated_at
		FROM agents
		WHERE email = $1
	`

	agent, err := scanAgent(r.pool.QueryRow(ctx, selectSQL, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Agent{}, ErrAgentNotFound
		}
		return Agent{}, fmt.Errorf("auth: get agent by email: %w", err)
	}

	return agent, nil
}

// GetAgentByID retrieves an agent by ID.
func (r *PGRepository) GetAgentByID(ctx context.Context, agentID string) (Agent, error) {
	const selectSQL = `
		SELECT id, email, full_name, password_hash, phone, verified, role, created_at, updated_at
		FROM agents
		WHERE id = $1
	`

	agent, err := scanAgent(r.pool.QueryRow(ctx, selectSQL, agentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Agent{}, ErrAgentNotFound
		}
		return Agent{}, fmt.Errorf("auth: get agent by id: %w", err)
	}

	return agent, nil
}

func scanAgent(row pgx.Row) (Agent, error) {
	var agent Agent
	err := row.Scan(
		&agent.ID,
		&agent.Email,
		&agent.FullName,
		&agent.PasswordHash,
		&agent.Phone,
		&agent.Verified,
		&agent.Role,
		&agent.CreatedAt,
		&agent.UpdatedAt,
	)
	if err != nil {
		return Agent{}, err
	}
	return agent, nil
}

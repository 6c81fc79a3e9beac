package services

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/ieplsoft/user-management/internal/logger"
	"github.com/ieplsoft/user-management/internal/models"
	"github.com/ieplsoft/user-management/internal/repositories"
)

// Error variables
var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
)

// UserReader defines the read-only lookup needed for authentication.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
}

// UserWriter defines the insert operation needed for registration.
type UserWriter interface {
	Save(ctx context.Context, name, email, phone, dateOfBirth, passwordHash string) (int64, error)
}

// JWTGenerator defines an interface for issuing session tokens.
type JWTGenerator interface {
	Generate(ctx context.Context, userID int64) (string, error)
}

// AuthService handles registration and login.
type AuthService struct {
	reader      UserReader
	writer      UserWriter
	jwt         JWTGenerator
	kafkaWriter KafkaWriter
	cost        int
}

// NewAuthService creates a new AuthService. A bcrypt cost below the library
// minimum is replaced with the default cost so a misconfigured deployment can
// never store weakly hashed passwords.
func NewAuthService(reader UserReader, writer UserWriter, jwt JWTGenerator, kafkaWriter KafkaWriter, cost int) *AuthService {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &AuthService{
		reader:      reader,
		writer:      writer,
		jwt:         jwt,
		kafkaWriter: kafkaWriter,
		cost:        cost,
	}
}

// Register creates a new user with a hashed password and returns its id.
// The plaintext password is never persisted or logged.
func (svc *AuthService) Register(ctx context.Context, name, email, phone, dateOfBirth, password string) (int64, error) {
	existing, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return 0, err
	}
	if existing != nil {
		logger.Log.Infow("email already registered", "email", email)
		return 0, ErrEmailAlreadyRegistered
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), svc.cost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return 0, err
	}

	id, err := svc.writer.Save(ctx, name, email, phone, dateOfBirth, string(hashedPassword))
	if err != nil {
		// The pre-check above is only an early exit; a concurrent
		// registration can still lose the race against the unique index.
		if errors.Is(err, repositories.ErrEmailTaken) {
			logger.Log.Infow("email already registered", "email", email)
			return 0, ErrEmailAlreadyRegistered
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return 0, err
	}

	publishUserEvent(ctx, svc.kafkaWriter, id, models.ActionRegistered)

	return id, nil
}

// Login verifies credentials and returns a session token together with the
// sanitized user view. Unknown email and wrong password collapse into the
// same error so responses cannot be used to enumerate accounts.
func (svc *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", nil, err
	}
	if user == nil {
		logger.Log.Infow("login for unknown email", "email", email)
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Infow("password mismatch", "email", email)
		return "", nil, ErrInvalidCredentials
	}

	token, err := svc.jwt.Generate(ctx, user.ID)
	if err != nil {
		logger.Log.Errorw("failed to generate session token", "err", err)
		return "", nil, err
	}

	view := user.View()
	return token, &view, nil
}

package auth

import (
	"context"

	userDomain "gogame/internal/domain/user"
)

type UserStorage interface {
	GetUserByID(ctx context.Context, id string) (userDomain.User, error)
}

type SessionStorage interface {
	GetUserIdBySession(ctx context.Context, sessionID string) (string, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// AuthUsecaseHandler resolves the sessions issued by the account service.
type AuthUsecaseHandler struct {
	userStorage    UserStorage
	sessionStorage SessionStorage
}

func NewUserUsecaseHandler(u UserStorage, s SessionStorage) *AuthUsecaseHandler {
	return &AuthUsecaseHandler{
		userStorage:    u,
		sessionStorage: s,
	}
}

// GetUserIdFromSession returns the user owning sessionID or ErrSessionNotFound.
func (a *AuthUsecaseHandler) GetUserIdFromSession(ctx context.Context, sessionID string) (string, error) {
	return a.sessionStorage.GetUserIdBySession(ctx, sessionID)
}

func (a *AuthUsecaseHandler) GetUserByUserId(ctx context.Context, userID string) (userDomain.User, error) {
	return a.userStorage.GetUserByID(ctx, userID)
}

// returns nil or ErrSessionNotFound
func (a *AuthUsecaseHandler) LogoutUser(ctx context.Context, sessionID string) error {
	return a.sessionStorage.DeleteSession(ctx, sessionID)
}

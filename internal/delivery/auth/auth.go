package auth

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"gogame/internal/bootstrap"
	userDomain "gogame/internal/domain/user"
	errs "gogame/internal/errors"
	"gogame/internal/httpresponse"
	authUC "gogame/internal/usecase/auth"
)

type AuthHandler struct {
	usecaseHandler *authUC.AuthUsecaseHandler
	log            *zap.SugaredLogger
	cookieName     string
}

func NewAuthHandler(cfg bootstrap.Config, usecaseHandler *authUC.AuthUsecaseHandler, log *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{
		usecaseHandler: usecaseHandler,
		log:            log,
		cookieName:     cfg.SessionCookie,
	}
}

// Logout godoc
// @Summary Выход пользователя
// @Description Удаляет сессию пользователя по cookie sessionID
// @Tags auth
// @Produce json
// @Success 200 {string} string "OK"
// @Failure 400 {object} httpresponse.ErrorResponse
// @Failure 401 {object} httpresponse.ErrorResponse
// @Router /logout [delete]
func (a *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionCookie, err := r.Cookie(a.cookieName)
	if err != nil {
		a.log.Warn("Logout: no cookie provided")
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: http.ErrNoCookie.Error()})
		return
	}

	if err = a.usecaseHandler.LogoutUser(r.Context(), sessionCookie.Value); err != nil {
		a.log.Warnf("Logout: failed to logout: %v", err)
		httpresponse.WriteError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{Name: a.cookieName, Value: "", MaxAge: -1, HttpOnly: true})
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, nil)
}

// Me godoc
// @Summary Текущий пользователь
// @Description Возвращает профиль пользователя по cookie sessionID
// @Tags auth
// @Produce json
// @Success 200 {object} user.User
// @Failure 401 {object} httpresponse.ErrorResponse
// @Router /me [get]
func (a *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := a.GetUser(w, r)
	if !ok {
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, user)
}

// GetUserID returns the id of the user owning the request's session. When
// the session is missing or expired it writes the error response itself and
// returns "".
func (a *AuthHandler) GetUserID(w http.ResponseWriter, r *http.Request) string {
	sessionCookie, err := r.Cookie(a.cookieName)
	if err != nil {
		a.log.Debug("GetUserID: no session cookie")
		httpresponse.WriteResponseWithStatus(w, http.StatusUnauthorized,
			httpresponse.ErrorResponse{ErrorDescription: errs.ErrSessionNotFound.Error()})
		return ""
	}

	userID, err := a.usecaseHandler.GetUserIdFromSession(r.Context(), sessionCookie.Value)
	if err != nil {
		if !errors.Is(err, errs.ErrSessionNotFound) {
			a.log.Error("GetUserID: internal error: ", err)
		}
		httpresponse.WriteError(w, err)
		return ""
	}
	return userID
}

// GetUser is GetUserID followed by a profile lookup.
func (a *AuthHandler) GetUser(w http.ResponseWriter, r *http.Request) (userDomain.User, bool) {
	userID := a.GetUserID(w, r)
	if userID == "" {
		return userDomain.User{}, false
	}
	return a.LookupUser(w, r, userID)
}

// LookupUser loads the profile of userID, writing the error response when
// it can't.
func (a *AuthHandler) LookupUser(w http.ResponseWriter, r *http.Request, userID string) (userDomain.User, bool) {
	user, err := a.usecaseHandler.GetUserByUserId(r.Context(), userID)
	if err != nil {
		a.log.Warnf("LookupUser: %s: %v", userID, err)
		httpresponse.WriteError(w, err)
		return userDomain.User{}, false
	}
	return user, true
}

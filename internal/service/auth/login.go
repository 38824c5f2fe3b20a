package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ahmeterdemserceoglu/sloter/internal/model"
	"github.com/ahmeterdemserceoglu/sloter/internal/security/ratelimit"
	"github.com/ahmeterdemserceoglu/sloter/pkg/pass"
	"github.com/ahmeterdemserceoglu/sloter/pkg/token"
)

// Наружу всегда уходит общий отказ: детали не должны помогать
// подбирать логины или тайминги
var errInvalidCredentials = errors.New("invalid login or password")

func (s *serv) Login(ctx context.Context, login, password, ip string) (*model.AuthData, error) {
	// Лимит частоты по IP - до любых обращений к хранилищу
	if s.limiter.IsLimited(ip, ratelimit.ActionLogin) {
		s.emit(ip, model.EventRateLimitExceeded, "login rate limit exceeded")
		return nil, model.ErrRateLimited
	}
	s.limiter.RecordAttempt(ip, ratelimit.ActionLogin)

	// Получение пользователя из бд по логину
	user, err := s.userRepo.GetUserByLogin(ctx, login)
	if err != nil {
		s.emit(ip, model.EventLoginFailed, "login attempt for unknown user")
		return nil, errInvalidCredentials
	}
	subject := strconv.Itoa(user.ID)

	// Проверка блокировки аккаунта
	locked, err := s.lockout.IsLocked(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if locked {
		s.emit(subject, model.EventLoginFailed, "login attempt on locked account")
		return nil, model.ErrAccountLocked
	}

	// Верификация пароля
	if !pass.VerifyPassword(user.Password, password) {
		nowLocked, until, err := s.lockout.OnFailure(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if nowLocked {
			s.emit(subject, model.EventAccountLocked,
				fmt.Sprintf("account locked until %s after failed login attempts", until.Format(time.RFC3339)))
		}
		s.emit(subject, model.EventLoginFailed, "invalid password")
		return nil, errInvalidCredentials
	}

	// Успешная аутентификация из любого состояния сбрасывает счётчик неудач
	if err := s.lockout.OnSuccess(ctx, user.ID); err != nil {
		return nil, err
	}

	// Генерация sessionID
	sessionID := generateSessionID()

	// Генерация refresh токена
	refreshToken, err := token.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	// Создать сессию
	err = s.authRepo.CreateSession(ctx,
		&model.Session{
			ID:           sessionID,
			UserID:       user.ID,
			RefreshToken: token.HashRefreshToken(refreshToken),
			ExpiresAt:    time.Now().Add(s.jwtConfig.RefreshTokenDuration()),
		})
	if err != nil {
		return nil, fmt.Errorf("%w: create session: %v", model.ErrCollaboratorUnavailable, err)
	}

	// Создать access токен
	accessToken, err := token.GenerateAccessToken(
		user,
		s.jwtConfig.AccessTokenSecretKey(),
		s.jwtConfig.AccessTokenDuration())
	if err != nil {
		return nil, err
	}

	s.emit(subject, model.EventLoginSuccess, "user logged in")

	return &model.AuthData{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    sessionID,
	}, nil
}

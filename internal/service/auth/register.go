package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/ahmeterdemserceoglu/sloter/internal/model"
	"github.com/ahmeterdemserceoglu/sloter/internal/security/ratelimit"
	"github.com/ahmeterdemserceoglu/sloter/pkg/pass"
	"github.com/ahmeterdemserceoglu/sloter/pkg/token"
)

func (s *serv) Register(ctx context.Context, user *model.User, ip string) (*model.AuthData, error) {
	// Лимит частоты регистраций по IP
	if s.limiter.IsLimited(ip, ratelimit.ActionRegister) {
		s.emit(ip, model.EventRateLimitExceeded, "registration rate limit exceeded")
		return nil, model.ErrRateLimited
	}
	s.limiter.RecordAttempt(ip, ratelimit.ActionRegister)

	// Политика паролей проверяется до хэширования
	if err := pass.ValidatePolicy(user.Password); err != nil {
		return nil, err
	}

	// Хэширование пароля пользователя
	passwordHash, err := pass.HashPassword(user.Password)
	if err != nil {
		return nil, err
	}
	user.Password = passwordHash
	user.Role = model.RolePlayer

	// Переменные для хранения результатов
	var (
		sessionID    string
		refreshToken string
		accessToken  string
	)

	// Начало транзакциии
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		// 1. Создать пользователя в бд
		user.ID, err = s.userRepo.CreateUser(ctx, user)
		if err != nil {
			return err
		}
		// 2. Генерация sessionID
		sessionID = generateSessionID()
		// 3. Генерация refresh токена
		refreshToken, err = token.GenerateRefreshToken()
		if err != nil {
			return err
		}

		// 4. Создать сессию
		err = s.authRepo.CreateSession(ctx,
			&model.Session{
				ID:           sessionID,
				UserID:       user.ID,
				RefreshToken: token.HashRefreshToken(refreshToken),
				ExpiresAt:    time.Now().Add(s.jwtConfig.RefreshTokenDuration()),
			})
		if err != nil {
			return err
		}

		// 5. Создать access токен
		accessToken, err = token.GenerateAccessToken(
			user,
			s.jwtConfig.AccessTokenSecretKey(),
			s.jwtConfig.AccessTokenDuration())
		if err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: register: %v", model.ErrCollaboratorUnavailable, err)
	}

	s.emit(strconv.Itoa(user.ID), model.EventUserRegistered, "new user registered")

	return &model.AuthData{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    sessionID,
	}, nil
}

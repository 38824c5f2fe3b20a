package auth

import (
	"context"
	"strconv"

	"github.com/ahmeterdemserceoglu/sloter/internal/model"
)

// Unlock - административная разблокировка аккаунта
func (s *serv) Unlock(ctx context.Context, userID int) error {
	if err := s.lockout.Unlock(ctx, userID); err != nil {
		return err
	}

	s.emit(strconv.Itoa(userID), model.EventAccountUnlocked, "account unlocked by administrator")
	return nil
}

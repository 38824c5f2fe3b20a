package converter

import (
	dto "github.com/ahmeterdemserceoglu/sloter/internal/api/dto/auth"
	"github.com/ahmeterdemserceoglu/sloter/internal/model"
)

func RegisterRequestToUserModel(req *dto.RegisterRequest) *model.User {
	return &model.User{
		Name:     req.Name,
		Login:    req.Login,
		Password: req.Password,
	}
}

package service

import (
	"strconv"
	"time"

	"formflow/internal/entity"
	"formflow/internal/utils"
)

type JWTAccessIssuer struct {
	Manager *utils.JWTManager
}

func (j JWTAccessIssuer) IssueAccessToken(user entity.User) (string, time.Duration, error) {
	if j.Manager == nil {
		return "", 0, utils.ErrInvalidToken
	}
	return j.Manager.IssueAccessToken(strconv.FormatUint(uint64(user.ID), 10), user.Email, string(user.Role))
}

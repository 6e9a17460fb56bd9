package domain

import (
	"errors"
)

const RoleOwner = "owner"

var (
	MessageFailedBodyRequest  = "failed to parse request body"
	MessageFailedGetToken     = "failed to get token"
	MessageFailedTokenInvalid = "failed to token invalid"

	ErrParseUUID          = errors.New("failed to parse UUID")
	ErrTokenNotFound      = errors.New("failed to token not found")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrUnauthorizedAccess = errors.New("unauthorized access to restaurant")
)

type UserClaims struct {
	UserID string
	Role   string
	Email  string
}

type PaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

func NewPagination(page, limit int, total int64) PaginationResponse {
	return PaginationResponse{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + int64(limit) - 1) / int64(limit),
	}
}

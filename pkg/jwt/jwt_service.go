package jwt

import (
	"Menu-Builder-Backend/domain"
	"Menu-Builder-Backend/internal/utils"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type (
	JWTService interface {
		GenerateTokenUser(userID string, role string, email string, ttl time.Duration) (string, error)
		ValidateTokenUser(token string) (*jwt.Token, error)
		GetClaimsByToken(token string) (domain.UserClaims, error)
	}

	jwtUserClaim struct {
		UserID string `json:"user_id"`
		Role   string `json:"role"`
		Email  string `json:"email,omitempty"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
	}
)

func NewJWTService() JWTService {
	return NewJWTServiceWithSecret(
		utils.GetConfig("JWT_SECRET"),
		utils.GetConfigOrDefault("JWT_ISSUER", "MENU-BUILDER"),
	)
}

func NewJWTServiceWithSecret(secretKey, issuer string) JWTService {
	return &jwtService{
		secretKey: secretKey,
		issuer:    issuer,
	}
}

func (j *jwtService) GenerateTokenUser(userID string, role string, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwtUserClaim{
		userID,
		role,
		email,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateTokenUser(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtUserClaim{}, j.parseToken)
}

func (j *jwtService) GetClaimsByToken(token string) (domain.UserClaims, error) {
	t_Token, err := j.ValidateTokenUser(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.UserClaims{}, domain.ErrTokenExpired
		}
		return domain.UserClaims{}, domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return domain.UserClaims{}, domain.ErrTokenInvalid
	}

	claims := t_Token.Claims.(*jwtUserClaim)
	if claims.UserID == "" {
		return domain.UserClaims{}, domain.ErrTokenInvalid
	}

	return domain.UserClaims{
		UserID: claims.UserID,
		Role:   claims.Role,
		Email:  claims.Email,
	}, nil
}

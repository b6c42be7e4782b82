package user

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xiebiao/onlinebookstore/internal/application"
	"github.com/xiebiao/onlinebookstore/internal/domain/user"
	"github.com/xiebiao/onlinebookstore/internal/infrastructure/persistence/redis"
	apperrors "github.com/xiebiao/onlinebookstore/pkg/errors"
	"github.com/xiebiao/onlinebookstore/pkg/jwt"
)

// LoginRequest 登录参数
type LoginRequest struct {
	Email     string
	Password  string
	ClientIP  string
	UserAgent string
}

// LoginResponse 登录结果
type LoginResponse struct {
	User         UserDTO `json:"user"`
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	ExpiresIn    int64   `json:"expires_in"` // Access Token有效期(秒)
}

// LoginUseCase 校验密码并签发Token
type LoginUseCase struct {
	userService user.Service
	jwtManager  *jwt.Manager
	sessions    application.SessionStore
}

func NewLoginUseCase(userService user.Service, jwtManager *jwt.Manager, sessions application.SessionStore) *LoginUseCase {
	return &LoginUseCase{
		userService: userService,
		jwtManager:  jwtManager,
		sessions:    sessions,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	u, err := uc.userService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	pair, err := uc.jwtManager.GenerateToken(u.ID, u.Email, u.RoleNames())
	if err != nil {
		return nil, err
	}

	// 刷新Token依赖会话存在,会话保存失败时登录失败
	sess := &redis.Session{
		UserID:    u.ID,
		Email:     u.Email,
		LoginAt:   time.Now(),
		ClientIP:  req.ClientIP,
		UserAgent: req.UserAgent,
	}
	if err := uc.sessions.SaveSession(ctx, sess, uc.jwtManager.RefreshTokenExpire()); err != nil {
		log.Ctx(ctx).Error().Err(err).Uint("user_id", u.ID).Msg("保存登录会话失败")
		return nil, err
	}

	return &LoginResponse{
		User:         toUserDTO(u),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}

// RefreshResponse 刷新结果
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// RefreshTokenUseCase 用Refresh Token换取新的Access Token
// 登出后会话被删除,Refresh Token随之失效
type RefreshTokenUseCase struct {
	jwtManager *jwt.Manager
	sessions   application.SessionStore
}

func NewRefreshTokenUseCase(jwtManager *jwt.Manager, sessions application.SessionStore) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{
		jwtManager: jwtManager,
		sessions:   sessions,
	}
}

func (uc *RefreshTokenUseCase) Execute(ctx context.Context, refreshToken string) (*RefreshResponse, error) {
	claims, err := uc.jwtManager.ParseToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != jwt.TokenTypeRefresh {
		return nil, apperrors.ErrInvalidToken
	}

	// 会话不存在时返回ErrUnauthorized
	if _, err := uc.sessions.GetSession(ctx, claims.UserID); err != nil {
		return nil, err
	}

	token, err := uc.jwtManager.RefreshAccessToken(refreshToken)
	if err != nil {
		return nil, err
	}
	return &RefreshResponse{
		AccessToken: token,
		ExpiresIn:   int64(uc.jwtManager.AccessTokenExpire().Seconds()),
	}, nil
}

// LogoutUseCase 删除会话,Access Token在剩余有效期内加入黑名单
type LogoutUseCase struct {
	jwtManager *jwt.Manager
	sessions   application.SessionStore
}

func NewLogoutUseCase(jwtManager *jwt.Manager, sessions application.SessionStore) *LogoutUseCase {
	return &LogoutUseCase{
		jwtManager: jwtManager,
		sessions:   sessions,
	}
}

func (uc *LogoutUseCase) Execute(ctx context.Context, userID uint, accessToken string) error {
	claims, err := uc.jwtManager.ParseAccessToken(accessToken)
	if err != nil {
		return err
	}

	if err := uc.sessions.DeleteSession(ctx, userID); err != nil {
		return err
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	return uc.sessions.AddToBlacklist(ctx, accessToken, ttl)
}

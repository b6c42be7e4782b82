package user

import (
	"context"
	"time"

	"github.com/xiebiao/onlinebookstore/internal/application"
	"github.com/xiebiao/onlinebookstore/internal/domain/cart"
	"github.com/xiebiao/onlinebookstore/internal/domain/user"
	"github.com/xiebiao/onlinebookstore/pkg/metrics"
)

// UserDTO 用户信息,不包含密码
type UserDTO struct {
	ID              uint     `json:"id"`
	Email           string   `json:"email"`
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	ShippingAddress string   `json:"shipping_address"`
	Roles           []string `json:"roles"`
}

func toUserDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ShippingAddress: u.ShippingAddress,
		Roles:           u.RoleNames(),
	}
}

// RegisterRequest 注册参数
type RegisterRequest struct {
	Email           string
	Password        string
	RepeatPassword  string
	FirstName       string
	LastName        string
	ShippingAddress string
}

// RegisterUseCase 注册用户并创建空购物车
// 两步在同一事务中,不会出现没有购物车的用户
type RegisterUseCase struct {
	userService user.Service
	cartService cart.Service
	tx          application.Transactor
	publisher   application.EventPublisher
	metrics     *metrics.Metrics
}

func NewRegisterUseCase(
	userService user.Service,
	cartService cart.Service,
	tx application.Transactor,
	publisher application.EventPublisher,
	m *metrics.Metrics,
) *RegisterUseCase {
	return &RegisterUseCase{
		userService: userService,
		cartService: cartService,
		tx:          tx,
		publisher:   publisher,
		metrics:     m,
	}
}

func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*UserDTO, error) {
	var registered *user.User
	err := uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		u, err := uc.userService.Register(txCtx, user.RegisterCommand{
			Email:           req.Email,
			Password:        req.Password,
			RepeatPassword:  req.RepeatPassword,
			FirstName:       req.FirstName,
			LastName:        req.LastName,
			ShippingAddress: req.ShippingAddress,
		})
		if err != nil {
			return err
		}

		if err := uc.cartService.CreateShoppingCartForUser(txCtx, u.ID); err != nil {
			return err
		}

		registered = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.UsersRegisteredTotal.Inc()
	uc.publisher.Publish(ctx, application.UserRegistered{
		UserID:     registered.ID,
		Email:      registered.Email,
		OccurredAt: time.Now(),
	})

	dto := toUserDTO(registered)
	return &dto, nil
}

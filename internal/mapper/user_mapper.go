package mapper

import (
	"coursehub-be/internal/entity"
	"coursehub-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:            u.Id,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:            u.Id,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
	}
}

func (m *UserMapper) AccountToEntity(a *model.Account) *entity.Account {
	if a == nil {
		return nil
	}
	return &entity.Account{
		Id:       a.Id,
		UserId:   a.UserId,
		GoogleId: a.GoogleId,
	}
}

func (m *UserMapper) AccountToModel(a *entity.Account) *model.Account {
	if a == nil {
		return nil
	}
	return &model.Account{
		Id:       a.Id,
		UserId:   a.UserId,
		GoogleId: a.GoogleId,
	}
}

func (m *UserMapper) ProfileToEntity(p *model.Profile) *entity.Profile {
	if p == nil {
		return nil
	}
	return &entity.Profile{
		Id:          p.Id,
		UserId:      p.UserId,
		DisplayName: p.DisplayName,
		ImageId:     p.ImageId,
		Image:       p.Image,
		Bio:         p.Bio,
	}
}

func (m *UserMapper) ProfileToModel(p *entity.Profile) *model.Profile {
	if p == nil {
		return nil
	}
	return &model.Profile{
		Id:          p.Id,
		UserId:      p.UserId,
		DisplayName: p.DisplayName,
		ImageId:     p.ImageId,
		Image:       p.Image,
		Bio:         p.Bio,
	}
}

func (m *UserMapper) SessionToEntity(s *model.Session) *entity.Session {
	if s == nil {
		return nil
	}
	return &entity.Session{
		Id:        s.Id,
		UserId:    s.UserId,
		ExpiresAt: s.ExpiresAt,
	}
}

func (m *UserMapper) SessionToModel(s *entity.Session) *model.Session {
	if s == nil {
		return nil
	}
	return &model.Session{
		Id:        s.Id,
		UserId:    s.UserId,
		ExpiresAt: s.ExpiresAt,
	}
}

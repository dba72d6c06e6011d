package service

import (
	"context"

	"formflow/internal/entity"
)

type seedAccount struct {
	firstName string
	email     string
	password  string
	role      entity.Role
}

var defaultAccounts = []seedAccount{
	{firstName: "admin", email: "admin@admin.com", password: "adminadmin", role: entity.RoleAdmin},
	{firstName: "client", email: "client@client.com", password: "clientclient", role: entity.RoleClient},
	{firstName: "fournisseur", email: "fournisseur@fournisseur.com", password: "fournisseurfournisseur", role: entity.RoleFournisseur},
}

// EnsureDefaultUsers creates one bootstrap account per role so a fresh
// deployment is usable immediately. Existing accounts are left untouched.
func (s *UserService) EnsureDefaultUsers(ctx context.Context) error {
	for _, account := range defaultAccounts {
		existing, err := s.users.FindByEmail(ctx, account.email)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		hash, err := s.passwordHash.Hash(account.password)
		if err != nil {
			return err
		}
		user := &entity.User{
			FirstName:    account.firstName,
			LastName:     account.firstName,
			Email:        account.email,
			PasswordHash: hash,
			Role:         account.role,
			Enabled:      true,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return err
		}
	}
	return nil
}

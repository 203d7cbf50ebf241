package store

import (
	"time"
)

func (s *StoreSuite) TestCreateUser() {
	before := time.Now().Add(-time.Second)
	u, err := s.users.Create(s.ctx, "alice@example.com", "Alice", "pw-123")
	s.Require().NoError(err)

	s.NotZero(u.ID)
	s.Equal("alice@example.com", u.Email)
	s.Equal("Alice", u.FullName)
	s.NotEqual("pw-123", u.PasswordHash)
	s.True(u.CreatedAt.After(before))
}

func (s *StoreSuite) TestCreateUser_DuplicateEmail() {
	s.mustUser("dup@example.com")

	_, err := s.users.Create(s.ctx, "dup@example.com", "Other", "other-pw")
	s.ErrorIs(err, ErrDuplicateEmail)
}

func (s *StoreSuite) TestCreateUser_EmptyEmail() {
	_, err := s.users.Create(s.ctx, "", "Nobody", "pw")
	s.ErrorIs(err, ErrInvalidInput)
}

func (s *StoreSuite) TestFindByEmail_ExactMatch() {
	s.mustUser("case@example.com")

	found, err := s.users.FindByEmail(s.ctx, "case@example.com")
	s.Require().NoError(err)
	s.Equal("case@example.com", found.Email)

	_, err = s.users.FindByEmail(s.ctx, "CASE@example.com")
	s.ErrorIs(err, ErrNotFound)
}

func (s *StoreSuite) TestAuthenticate() {
	s.mustUser("login@example.com")

	u, err := s.users.Authenticate(s.ctx, "login@example.com", "secret-pass")
	s.Require().NoError(err)
	s.Equal("login@example.com", u.Email)

	_, err = s.users.Authenticate(s.ctx, "login@example.com", "wrong")
	s.ErrorIs(err, ErrInvalidCredentials)

	_, err = s.users.Authenticate(s.ctx, "nobody@example.com", "secret-pass")
	s.ErrorIs(err, ErrInvalidCredentials)
}

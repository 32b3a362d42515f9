package backend

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type CredentialStoreSuite struct {
	suite.Suite
	store *CredentialStore
}

func (s *CredentialStoreSuite) SetupTest() {
	store, err := NewCredentialStore(s.T().TempDir())
	s.Require().NoError(err)
	s.store = store
}

func (s *CredentialStoreSuite) TestSaveLoad() {
	s.Require().NoError(s.store.SaveAccount("tok-123"))

	acct, err := s.store.LoadAccount()
	s.Require().NoError(err)
	s.Equal("tok-123", acct.Token)
	s.False(acct.SavedAt.IsZero())
}

func (s *CredentialStoreSuite) TestSaveReplaces() {
	s.Require().NoError(s.store.SaveAccount("old"))
	s.Require().NoError(s.store.SaveAccount("new"))

	acct, err := s.store.LoadAccount()
	s.Require().NoError(err)
	s.Equal("new", acct.Token)
}

func (s *CredentialStoreSuite) TestLoadMissing() {
	_, err := s.store.LoadAccount()
	s.ErrorIs(err, ErrNoAccount)
}

func (s *CredentialStoreSuite) TestDelete() {
	s.Require().NoError(s.store.SaveAccount("tok"))
	s.Require().NoError(s.store.DeleteAccount())

	_, err := s.store.LoadAccount()
	s.ErrorIs(err, ErrNoAccount)

	// Deleting again is a no-op.
	s.NoError(s.store.DeleteAccount())
}

func (s *CredentialStoreSuite) TestEmptyTokenRejected() {
	s.Error(s.store.SaveAccount(""))
}

func TestCredentialStoreSuite(t *testing.T) {
	suite.Run(t, new(CredentialStoreSuite))
}

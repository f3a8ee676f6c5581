package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/greenledger/ecotrack/internal/model"
	"github.com/greenledger/ecotrack/internal/repository"
	"github.com/greenledger/ecotrack/internal/session"
)

// fakeUsers is an in-memory UserStore used by the service tests.
type fakeUsers struct {
	byName map[string]*model.User
	nextID uint64

	createErr error
}

var _ UserStore = (*fakeUsers)(nil)

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byName: map[string]*model.User{}, nextID: 1}
}

func (f *fakeUsers) add(u model.User) *model.User {
	if u.ID == 0 {
		u.ID = f.nextID
	}
	f.nextID = u.ID + 1
	cpy := u
	f.byName[u.Username] = &cpy
	return &cpy
}

func (f *fakeUsers) Create(_ context.Context, username, email, passwordHash string) (uint64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	if _, exists := f.byName[username]; exists {
		return 0, repository.ErrUsernameTaken
	}
	for _, u := range f.byName {
		if u.Email == email {
			return 0, repository.ErrUsernameTaken
		}
	}
	u := f.add(model.User{Username: username, Email: email, PasswordHash: passwordHash})
	return u.ID, nil
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (model.User, error) {
	u, ok := f.byName[username]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return *u, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
	for _, u := range f.byName {
		if u.ID == id {
			return *u, nil
		}
	}
	return model.User{}, sql.ErrNoRows
}

func (f *fakeUsers) Search(_ context.Context, _ string) ([]model.User, error) {
	var out []model.User
	for _, u := range f.byName {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUsers) SetBlocked(_ context.Context, id uint64, blocked bool) error {
	for _, u := range f.byName {
		if u.ID == id {
			u.IsBlocked = blocked
			return nil
		}
	}
	return repository.ErrUserNotFound
}

func (f *fakeUsers) SetAdmin(_ context.Context, id uint64, admin bool) error {
	for _, u := range f.byName {
		if u.ID == id {
			u.IsAdmin = admin
			return nil
		}
	}
	return repository.ErrUserNotFound
}

// fakeSessions records session operations for assertions.
type fakeSessions struct {
	created     []session.Session
	deleted     []string
	invalidated []uint64

	createErr error
}

var _ session.Store = (*fakeSessions)(nil)

func (f *fakeSessions) Create(_ context.Context, s session.Session) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, s)
	return nil
}

func (f *fakeSessions) Get(_ context.Context, token string) (session.Session, error) {
	for _, s := range f.created {
		if s.Token == token {
			return s, nil
		}
	}
	return session.Session{}, session.ErrNotFound
}

func (f *fakeSessions) Delete(_ context.Context, token string) error {
	f.deleted = append(f.deleted, token)
	return nil
}

func (f *fakeSessions) DeleteAllForUser(_ context.Context, userID uint64) error {
	f.invalidated = append(f.invalidated, userID)
	return nil
}

// fakeCatalog is an in-memory CatalogStore.
type fakeCatalog struct {
	entries []model.CatalogEntry

	created      []model.Action
	createdValue []float64
	createdUnit  []string
	updated      map[uint64]float64

	updateErr error
}

var _ CatalogStore = (*fakeCatalog)(nil)

func (f *fakeCatalog) List(_ context.Context) ([]model.CatalogEntry, error) {
	return f.entries, nil
}

func (f *fakeCatalog) CreateWithCoefficient(_ context.Context, a model.Action, value float64, unit string) (uint64, error) {
	f.created = append(f.created, a)
	f.createdValue = append(f.createdValue, value)
	f.createdUnit = append(f.createdUnit, unit)
	return uint64(len(f.created)), nil
}

func (f *fakeCatalog) UpdateCoefficient(_ context.Context, id uint64, value float64) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if f.updated == nil {
		f.updated = map[uint64]float64{}
	}
	f.updated[id] = value
	return nil
}

// fakeRecords is an in-memory RecordStore.
type fakeRecords struct {
	created []model.Record
	details []model.RecordDetail
	totals  []model.CategoryTotal

	createErr error

	lastStart, lastEnd string
}

var _ RecordStore = (*fakeRecords)(nil)

func (f *fakeRecords) Create(_ context.Context, userID, actionID uint64, quantity float64, recordDate time.Time) (uint64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.created = append(f.created, model.Record{
		ID: uint64(len(f.created) + 1), UserID: userID, ActionID: actionID,
		Quantity: quantity, RecordDate: recordDate,
	})
	return uint64(len(f.created)), nil
}

func (f *fakeRecords) ListByUser(_ context.Context, _ uint64) ([]model.RecordDetail, error) {
	return f.details, nil
}

func (f *fakeRecords) Report(_ context.Context, _ uint64, start, end string) ([]model.CategoryTotal, error) {
	f.lastStart, f.lastEnd = start, end
	return f.totals, nil
}

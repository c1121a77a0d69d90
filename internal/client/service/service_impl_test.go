package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/faktur/internal/client/domain"
	"github.com/smallbiznis/faktur/internal/client/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Client{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
}

func TestCreateClientTrimsFields(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateClientRequest{
		Name:      "  Globex  ",
		Email:     " ap@globex.test ",
		Phone:     "555-0199",
		Address:   "9 Harbor Road",
		CreatedBy: "user-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Globex", created.Name)
	assert.Equal(t, "ap@globex.test", created.Email)
	assert.NotZero(t, created.ID)

	got, err := svc.GetByID(ctx, domain.GetClientRequest{ID: created.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestCreateClientValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateClientRequest{Email: "ap@globex.test"})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Create(ctx, domain.CreateClientRequest{Name: "Globex"})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, err = svc.Create(ctx, domain.CreateClientRequest{Name: "Globex", Email: "not-an-email"})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)
}

func TestGetClientErrors(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetByID(ctx, domain.GetClientRequest{ID: "abc"})
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = svc.GetByID(ctx, domain.GetClientRequest{ID: "123456789"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListClientsFiltersByCreator(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for i, creator := range []string{"user-1", "user-1", "user-2"} {
		_, err := svc.Create(ctx, domain.CreateClientRequest{
			Name:      fmt.Sprintf("Client %d", i),
			Email:     fmt.Sprintf("c%d@test.test", i),
			CreatedBy: creator,
		})
		require.NoError(t, err)
	}

	resp, err := svc.List(ctx, domain.ListClientRequest{CreatedBy: "user-1"})
	require.NoError(t, err)
	assert.Len(t, resp.Clients, 2)

	resp, err = svc.List(ctx, domain.ListClientRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Clients, 3)
}

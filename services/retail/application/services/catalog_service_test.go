package services

import (
	"context"
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	retaildomain "github.com/ghuser/retailstore/services/retail/domain"
	"github.com/ghuser/retailstore/services/retail/domain/models"
)

var productCodeFormat = regexp.MustCompile(`^[0-9A-F]{8}$`)

func TestCatalogService_Create(t *testing.T) {
	t.Run("assigns a generated code", func(t *testing.T) {
		repo := newFakeProductRepo()
		svc := NewCatalogService(repo, nil)

		p, err := svc.Create(context.Background(), "Espresso Machine", decimal.NewFromFloat(249.99))
		require.NoError(t, err)
		require.Regexp(t, productCodeFormat, p.Code.String())

		stored, err := repo.GetByCode(context.Background(), p.Code)
		require.NoError(t, err)
		require.Equal(t, "Espresso Machine", stored.Title)
	})

	t.Run("distinct codes across creations", func(t *testing.T) {
		repo := newFakeProductRepo()
		svc := NewCatalogService(repo, nil)

		seen := make(map[models.ProductCode]struct{})
		for i := 0; i < 50; i++ {
			p, err := svc.Create(context.Background(), "Filter Pack", decimal.NewFromInt(10))
			require.NoError(t, err)
			_, dup := seen[p.Code]
			require.False(t, dup, "code %s assigned twice", p.Code)
			seen[p.Code] = struct{}{}
		}
	})

	t.Run("regenerates after losing a code race", func(t *testing.T) {
		repo := newFakeProductRepo()
		repo.createRejects = 2
		svc := NewCatalogService(repo, nil)

		p, err := svc.Create(context.Background(), "Espresso Machine", decimal.NewFromFloat(249.99))
		require.NoError(t, err)
		require.Equal(t, 3, repo.createCalls)
		require.Regexp(t, productCodeFormat, p.Code.String())
	})

	t.Run("gives up after persistent collisions", func(t *testing.T) {
		repo := newFakeProductRepo()
		repo.createRejects = maxCreateAttempts
		svc := NewCatalogService(repo, nil)

		_, err := svc.Create(context.Background(), "Espresso Machine", decimal.NewFromFloat(249.99))
		require.ErrorIs(t, err, retaildomain.ErrCodeSpaceExhausted)
	})

	t.Run("invalid input maps to ErrInvalidProduct", func(t *testing.T) {
		svc := NewCatalogService(newFakeProductRepo(), nil)

		_, err := svc.Create(context.Background(), "", decimal.NewFromInt(10))
		require.ErrorIs(t, err, retaildomain.ErrInvalidProduct)

		_, err = svc.Create(context.Background(), "Espresso Machine", decimal.Zero)
		require.ErrorIs(t, err, retaildomain.ErrInvalidProduct)
	})
}

func TestCatalogService_GetByCode(t *testing.T) {
	repo := newFakeProductRepo()
	repo.seed("1A2B3C4D", "Espresso Machine")
	svc := NewCatalogService(repo, nil)

	p, err := svc.GetByCode(context.Background(), "1A2B3C4D")
	require.NoError(t, err)
	require.Equal(t, "Espresso Machine", p.Title)

	_, err = svc.GetByCode(context.Background(), "FFFFFFFF")
	require.ErrorIs(t, err, retaildomain.ErrProductNotFound)
}

func TestCatalogService_Update(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewCatalogService(repo, nil)

	created, err := svc.Create(context.Background(), "Espresso Machine", decimal.NewFromFloat(249.99))
	require.NoError(t, err)

	require.NoError(t, svc.Update(context.Background(), created.Code, "Espresso Machine Pro", decimal.NewFromFloat(349.50)))

	got, err := svc.GetByCode(context.Background(), created.Code)
	require.NoError(t, err)
	require.Equal(t, "Espresso Machine Pro", got.Title)
	require.True(t, got.Price.Equal(decimal.NewFromFloat(349.5)))

	err = svc.Update(context.Background(), "FFFFFFFF", "Ghost", decimal.NewFromInt(1))
	require.ErrorIs(t, err, retaildomain.ErrProductNotFound)

	err = svc.Update(context.Background(), created.Code, "", decimal.NewFromInt(1))
	require.ErrorIs(t, err, retaildomain.ErrInvalidProduct)
}

func TestCatalogService_Delete(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewCatalogService(repo, nil)

	created, err := svc.Create(context.Background(), "Espresso Machine", decimal.NewFromFloat(249.99))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.Code))

	_, err = svc.GetByCode(context.Background(), created.Code)
	require.ErrorIs(t, err, retaildomain.ErrProductNotFound)

	err = svc.Delete(context.Background(), created.Code)
	require.ErrorIs(t, err, retaildomain.ErrProductNotFound)
}

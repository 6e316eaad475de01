package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	retaildomain "github.com/ghuser/retailstore/services/retail/domain"
)

func TestCustomerService_Create(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewCustomerService(repo)

	t.Run("assigns an id", func(t *testing.T) {
		email := "ada@example.com"
		c, err := svc.Create(context.Background(), "Ada Lovelace", &email)
		require.NoError(t, err)
		require.NotZero(t, c.ID)
	})

	t.Run("invalid input maps to ErrInvalidCustomer", func(t *testing.T) {
		_, err := svc.Create(context.Background(), "", nil)
		require.ErrorIs(t, err, retaildomain.ErrInvalidCustomer)

		bad := "no-at-sign"
		_, err = svc.Create(context.Background(), "Ada Lovelace", &bad)
		require.ErrorIs(t, err, retaildomain.ErrInvalidCustomer)
	})
}

func TestCustomerService_Update(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewCustomerService(repo)

	c, err := svc.Create(context.Background(), "Ada Lovelace", nil)
	require.NoError(t, err)

	email := "grace@example.com"
	require.NoError(t, svc.Update(context.Background(), c.ID, "Grace Hopper", &email))

	got, err := svc.GetByID(context.Background(), c.ID)
	require.NoError(t, err)
	require.Equal(t, "Grace Hopper", got.FullName)
	require.NotNil(t, got.Email)
	require.Equal(t, email, *got.Email)

	err = svc.Update(context.Background(), c.ID+1000, "Grace Hopper", nil)
	require.ErrorIs(t, err, retaildomain.ErrCustomerNotFound)

	err = svc.Update(context.Background(), c.ID, "", nil)
	require.ErrorIs(t, err, retaildomain.ErrInvalidCustomer)
}

func TestCustomerService_Delete(t *testing.T) {
	t.Run("unknown id", func(t *testing.T) {
		svc := NewCustomerService(newFakeCustomerRepo())
		err := svc.Delete(context.Background(), 12345)
		require.ErrorIs(t, err, retaildomain.ErrCustomerNotFound)
	})

	t.Run("deletes a customer with no purchases", func(t *testing.T) {
		repo := newFakeCustomerRepo()
		svc := NewCustomerService(repo)

		c, err := svc.Create(context.Background(), "Ada Lovelace", nil)
		require.NoError(t, err)

		require.NoError(t, svc.Delete(context.Background(), c.ID))

		_, err = svc.GetByID(context.Background(), c.ID)
		require.ErrorIs(t, err, retaildomain.ErrCustomerNotFound)
	})

	t.Run("refuses while purchases reference the customer", func(t *testing.T) {
		purchaseSvc, customers, _, _, customerID := purchaseFixture(t)
		svc := NewCustomerService(customers)

		_, err := purchaseSvc.Create(context.Background(), customerID, []PurchaseLineInput{
			{ProductCode: "1A2B3C4D", Quantity: 1},
		})
		require.NoError(t, err)

		err = svc.Delete(context.Background(), customerID)
		require.ErrorIs(t, err, retaildomain.ErrCustomerHasPurchases)

		// The customer survives the refused delete.
		_, err = svc.GetByID(context.Background(), customerID)
		require.NoError(t, err)
	})
}

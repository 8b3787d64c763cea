package tests

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwar28/rappiclone/pkg/domain/model"
	"github.com/jwar28/rappiclone/pkg/domain/service"
)

func TestBusinessService(t *testing.T) {
	ctx := context.Background()
	repo := newMockBusinessRepository()
	dispatcher := &mockEventDispatcher{}
	businessService := service.NewBusinessService(repo, dispatcher)

	owner := &model.Profile{ID: uuid.New(), Role: model.Owner}
	otherOwner := &model.Profile{ID: uuid.New(), Role: "business_owner"}
	admin := &model.Profile{ID: uuid.New(), Role: model.Admin}
	customer := &model.Profile{ID: uuid.New(), Role: model.Customer}

	input := service.BusinessInput{Name: " Taqueria ", Category: "restaurant", Address: "Calle 1"}
	var business *model.Business

	t.Run("Owner creates", func(t *testing.T) {
		var err error
		business, err = businessService.CreateBusiness(ctx, owner, input)
		require.NoError(t, err)
		assert.Equal(t, "Taqueria", business.Name)
		assert.Equal(t, owner.ID, business.OwnerID)
		assert.True(t, business.IsActive)

		require.Len(t, dispatcher.events, 1)
		_, ok := dispatcher.events[0].(model.BusinessCreated)
		assert.True(t, ok)
	})

	t.Run("Customer cannot create", func(t *testing.T) {
		_, err := businessService.CreateBusiness(ctx, customer, input)
		assert.ErrorIs(t, err, model.ErrForbidden)

		var denied *service.AccessDeniedError
		require.ErrorAs(t, err, &denied)
		assert.Equal(t, "/", denied.Redirect)
	})

	t.Run("Invalid category", func(t *testing.T) {
		_, err := businessService.CreateBusiness(ctx, owner, service.BusinessInput{Name: "X", Category: "bakery", Address: "Calle 1"})
		assert.True(t, model.IsValidationError(err))
	})

	t.Run("Another owner cannot update", func(t *testing.T) {
		_, err := businessService.UpdateBusiness(ctx, otherOwner, business.ID, input)
		assert.ErrorIs(t, err, model.ErrForbidden)
	})

	t.Run("Admin updates any business", func(t *testing.T) {
		inactive := false
		updated, err := businessService.UpdateBusiness(ctx, admin, business.ID, service.BusinessInput{
			Name: "Taqueria 2", Category: "restaurant", Address: "Calle 2", IsActive: &inactive,
		})
		require.NoError(t, err)
		assert.Equal(t, "Taqueria 2", updated.Name)
		assert.False(t, updated.IsActive)
	})

	t.Run("Lists by owner", func(t *testing.T) {
		businesses, err := businessService.BusinessesByOwner(ctx, owner.ID)
		require.NoError(t, err)
		assert.Len(t, businesses, 1)
	})

	t.Run("Delete", func(t *testing.T) {
		dispatcher.Reset()
		require.NoError(t, businessService.DeleteBusiness(ctx, owner, business.ID))

		_, err := businessService.GetBusiness(ctx, business.ID)
		assert.ErrorIs(t, err, model.ErrBusinessNotFound)

		require.Len(t, dispatcher.events, 1)
		deleted, ok := dispatcher.events[0].(model.BusinessDeleted)
		require.True(t, ok)
		assert.Equal(t, owner.ID, deleted.OwnerID)
	})
}

func TestProductService(t *testing.T) {
	ctx := context.Background()
	businesses := newMockBusinessRepository()
	products := newMockProductRepository()
	dispatcher := &mockEventDispatcher{}
	productService := service.NewProductService(products, businesses, dispatcher)

	owner := &model.Profile{ID: uuid.New(), Role: model.Owner}
	stranger := &model.Profile{ID: uuid.New(), Role: model.Owner}
	business := &model.Business{ID: uuid.New(), OwnerID: owner.ID, Name: "Farmacia", Category: model.Pharmacy}
	businesses.store[business.ID] = business

	var product *model.Product

	t.Run("Create", func(t *testing.T) {
		var err error
		product, err = productService.CreateProduct(ctx, owner, business.ID, service.ProductInput{
			Name: "Aspirin", Price: decimal.RequireFromString("3.20"),
		})
		require.NoError(t, err)
		assert.Equal(t, business.ID, product.BusinessID)
		assert.True(t, product.InStock)
	})

	t.Run("Negative price", func(t *testing.T) {
		_, err := productService.CreateProduct(ctx, owner, business.ID, service.ProductInput{
			Name: "Aspirin", Price: decimal.RequireFromString("-1"),
		})
		assert.True(t, model.IsValidationError(err))
	})

	t.Run("Unknown business", func(t *testing.T) {
		_, err := productService.CreateProduct(ctx, owner, uuid.New(), service.ProductInput{Name: "X", Price: decimal.Zero})
		assert.ErrorIs(t, err, model.ErrBusinessNotFound)
	})

	t.Run("Only the owner updates", func(t *testing.T) {
		_, err := productService.UpdateProduct(ctx, stranger, product.ID, service.ProductInput{Name: "Aspirin", Price: decimal.NewFromInt(1)})
		assert.ErrorIs(t, err, model.ErrForbidden)
	})

	t.Run("Price change is announced", func(t *testing.T) {
		dispatcher.Reset()
		updated, err := productService.UpdateProduct(ctx, owner, product.ID, service.ProductInput{
			Name: "Aspirin", Price: decimal.RequireFromString("4.00"),
		})
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("4").Equal(updated.Price))

		require.Len(t, dispatcher.events, 1)
		changed, ok := dispatcher.events[0].(model.ProductPriceChanged)
		require.True(t, ok)
		assert.True(t, decimal.RequireFromString("3.20").Equal(changed.OldPrice))
	})

	t.Run("By business name", func(t *testing.T) {
		found, err := productService.ProductsByBusinessName(ctx, "Farmacia")
		require.NoError(t, err)
		assert.Len(t, found, 1)

		_, err = productService.ProductsByBusinessName(ctx, "Nope")
		assert.ErrorIs(t, err, model.ErrBusinessNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, productService.DeleteProduct(ctx, owner, product.ID))
		_, err := productService.GetProduct(ctx, product.ID)
		assert.ErrorIs(t, err, model.ErrProductNotFound)
	})
}

package resource

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"bedadmin/admin-service/internal/app/admin/controller"
	"bedadmin/admin-service/internal/app/admin/entity"
	"bedadmin/admin-service/internal/app/admin/infrastructure/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func waitLoaded(t *testing.T, view controller.ListView) controller.ListSnapshot {
	t.Helper()
	select {
	case <-view.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("list load did not finish")
	}
	return view.Snapshot()
}

// ==================== Registry Tests ====================

func TestRegistry_PageSizesPerResource(t *testing.T) {
	registry := NewRegistry()

	expected := map[string]int{
		"orders":          10,
		"transactions":    10,
		"categories":      8,
		"subcategories":   8,
		"childCategories": 8,
		"brands":          7,
		"coupons":         5,
		"products":        10,
		"reviews":         5,
		"support":         7,
		"userslist":       10,
		"studios":         8,
	}

	all := registry.All()
	require.Len(t, all, len(expected))
	for _, def := range all {
		assert.Equal(t, expected[def.Name], def.PageSize, def.Name)
		assert.Equal(t, "/"+def.Name, def.Route)
	}
}

func TestRegistry_OrdersReadAndMutateDifferentEndpoints(t *testing.T) {
	def, err := NewRegistry().Get("orders")
	require.NoError(t, err)

	assert.Equal(t, "/neworders", def.Endpoint)
	assert.Equal(t, "/orders", def.MutationEndpoint)
	assert.Len(t, def.Tabs, 7)
	assert.False(t, def.HasForm)
}

func TestRegistry_ProductsAreStatic(t *testing.T) {
	def, err := NewRegistry().Get("products")
	require.NoError(t, err)

	assert.Equal(t, SourceStatic, def.Source)
	assert.Equal(t, StaticEndpoint, def.Endpoint)
	assert.Equal(t, "/products", def.MutationEndpoint)
	assert.True(t, def.HasForm)
}

func TestRegistry_UnknownResource(t *testing.T) {
	_, err := NewRegistry().Get("invoices")

	assert.ErrorIs(t, err, ErrUnknownResource)
}

// ==================== List Factory Tests ====================

func TestDefinition_StatusTabFiltersOrders(t *testing.T) {
	// Arrange
	client := new(mocks.MockRESTClient)
	orders := []entity.Order{
		{ID: "1", Status: entity.OrderDelivered},
		{ID: "2", Status: entity.OrderPending},
		{ID: "3", Status: entity.OrderDelivered},
	}
	body, err := json.Marshal(orders)
	require.NoError(t, err)
	client.On("List", mock.Anything, "/neworders").Return(body, nil)

	def, err := NewRegistry().Get("orders")
	require.NoError(t, err)

	// Act
	view, err := def.NewList("delivered", Deps{Client: client})
	require.NoError(t, err)
	view.Mount(context.Background())
	snapshot := waitLoaded(t, view)

	// Assert
	assert.Equal(t, 2, snapshot.TotalRecords)
	rows := snapshot.Rows.([]entity.Order)
	assert.Equal(t, entity.ID("1"), rows[0].ID)
	assert.Equal(t, entity.ID("3"), rows[1].ID)
}

func TestDefinition_StatusTabsResolveFromDomain(t *testing.T) {
	for _, name := range []string{"orders", "transactions"} {
		def, err := NewRegistry().Get(name)
		require.NoError(t, err)

		for _, want := range def.Tabs {
			got, err := def.tab(want.Key)

			require.NoError(t, err, want.Key)
			assert.Equal(t, want, got)
		}
	}
}

func TestDefinition_UnknownTab(t *testing.T) {
	ordersDef, err := NewRegistry().Get("orders")
	require.NoError(t, err)
	brandsDef, err := NewRegistry().Get("brands")
	require.NoError(t, err)

	_, ordersErr := ordersDef.NewList("archived", Deps{})
	_, brandsErr := brandsDef.NewList("pending", Deps{})

	assert.ErrorIs(t, ordersErr, ErrUnknownTab)
	assert.ErrorIs(t, brandsErr, ErrUnknownTab)
}

func TestDefinition_ProductsListReadsFixture(t *testing.T) {
	// Arrange
	client := new(mocks.MockRESTClient)
	def, err := NewRegistry().Get("products")
	require.NoError(t, err)

	// Act
	view, err := def.NewList("", Deps{Client: client})
	require.NoError(t, err)
	view.Mount(context.Background())
	snapshot := waitLoaded(t, view)

	// Assert
	assert.Equal(t, 10, snapshot.TotalRecords)
	assert.Equal(t, 1, snapshot.TotalPages)
	client.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

// ==================== Form Factory Tests ====================

func TestDefinition_NewFormWithoutForm(t *testing.T) {
	def, err := NewRegistry().Get("reviews")
	require.NoError(t, err)

	_, err = def.NewForm(controller.ModeCreate, "", Deps{})

	assert.ErrorIs(t, err, ErrNoForm)
}

func TestDefinition_NewFormEditWithoutID(t *testing.T) {
	def, err := NewRegistry().Get("coupons")
	require.NoError(t, err)

	form, err := def.NewForm(controller.ModeEdit, "", Deps{})

	assert.ErrorIs(t, err, controller.ErrMissingRecordID)
	assert.Nil(t, form)
}

func TestDefinition_ProductFormLoadsReferenceOptions(t *testing.T) {
	// Arrange
	options := new(mockOptionLoader)
	options.On("LoadOptions", mock.Anything, OptionsCategories).Return(entity.OptionSet{{Value: "1", Label: "Mattresses"}}, nil)
	options.On("LoadOptions", mock.Anything, OptionsSubcategories).Return(entity.OptionSet{}, nil)
	options.On("LoadOptions", mock.Anything, OptionsBrands).Return(entity.OptionSet{{Value: "b1", Label: "SleepWell"}}, nil)

	def, err := NewRegistry().Get("products")
	require.NoError(t, err)
	form, err := def.NewForm(controller.ModeCreate, "", Deps{Client: new(mocks.MockRESTClient), Options: options})
	require.NoError(t, err)

	// Act
	err = form.Initialize(context.Background())

	// Assert
	require.NoError(t, err)
	snapshot := form.Snapshot()
	assert.Equal(t, "Mattresses", snapshot.Options[OptionsCategories].Label("1"))
	assert.Equal(t, "SleepWell", snapshot.Options[OptionsBrands].Label("b1"))
	options.AssertExpectations(t)
}

func TestOptionKeyFor(t *testing.T) {
	key, ok := OptionKeyFor("brands")
	assert.True(t, ok)
	assert.Equal(t, OptionsBrands, key)

	_, ok = OptionKeyFor("coupons")
	assert.False(t, ok)
}

type mockOptionLoader struct {
	mock.Mock
}

func (m *mockOptionLoader) LoadOptions(ctx context.Context, key string) (entity.OptionSet, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(entity.OptionSet), args.Error(1)
}

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dropshop/internal/attachment"
	"dropshop/internal/handler"
	"dropshop/internal/mapping"
	"dropshop/internal/model"
	"dropshop/internal/repository"
	"dropshop/internal/router"
	"dropshop/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-api-key"

func setupTestServer(t *testing.T, testDB *TestDB) http.Handler {
	t.Helper()

	logger := zerolog.Nop()
	attachmentDir := t.TempDir()

	mapper, err := mapping.NewMapper("/files")
	require.NoError(t, err)

	store := attachment.NewFileStore(attachmentDir, logger)
	newUnitOfWork := repository.NewUnitOfWorkFactory(testDB.Pool, logger)
	pager := handler.Pager{DefaultSize: 10, MaxSize: 100}

	return router.New(router.Handlers{
		Orders:       handler.NewOrderHandler(service.NewOrderService(newUnitOfWork, mapper, logger), pager, logger),
		Products:     handler.NewProductHandler(service.NewProductService(newUnitOfWork, mapper, store, logger), pager, 1<<20, logger),
		Categories:   handler.NewCategoryHandler(service.NewCategoryService(newUnitOfWork, mapper, logger), pager, logger),
		Brands:       handler.NewBrandHandler(service.NewBrandService(newUnitOfWork, mapper, logger), pager, logger),
		Dropshippers: handler.NewDropshipperHandler(service.NewDropshipperService(newUnitOfWork, mapper, logger), pager, logger),
		Health:       handler.NewHealthHandler(testDB.Pool, logger),
		Files:        http.FileServer(http.Dir(attachmentDir)),
	}, router.Options{APIKey: testAPIKey, ServiceName: "dropshop-test"}, logger)
}

func doRequest(t *testing.T, server http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("X-API-Key", testAPIKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()

	server.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// seedReferences creates a category, a brand and a dropshipper through the API.
func seedReferences(t *testing.T, server http.Handler) (categoryID, brandID uuid.UUID, userID string) {
	t.Helper()

	w := doRequest(t, server, http.MethodPost, "/api/categories", model.CategoryRequest{Name: "Gravel"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	categoryID = decodeBody[model.CategoryDTO](t, w).ID

	w = doRequest(t, server, http.MethodPost, "/api/brands", model.BrandRequest{Name: "Trek"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	brandID = decodeBody[model.BrandDTO](t, w).ID

	userID = "acct-" + uuid.NewString()[:8]
	w = doRequest(t, server, http.MethodPost, "/api/dropshippers/"+userID, map[string]any{
		"userName":     "Jane Doe",
		"contactEmail": "jane@example.com",
		"isActive":     true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	return categoryID, brandID, userID
}

func createProduct(t *testing.T, server http.Handler, name string, categoryID, brandID uuid.UUID, images map[string]string) model.ProductDetailsDTO {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fields := map[string]string{
		"name":       name,
		"price":      "1499.90",
		"modelYear":  "2024",
		"categoryId": categoryID.String(),
		"brandId":    brandID.String(),
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for filename, content := range images {
		part, err := mw.CreateFormFile("images", filename)
		require.NoError(t, err)
		_, err = io.WriteString(part, content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/products", &body)
	req.Header.Set("X-API-Key", testAPIKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()

	server.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	return decodeBody[model.ProductDetailsDTO](t, w)
}

func createOrder(t *testing.T, server http.Handler, userID string, productID uuid.UUID) *httptest.ResponseRecorder {
	t.Helper()

	return doRequest(t, server, http.MethodPost, "/api/orders", map[string]any{
		"orderPrice":    "1499.90",
		"orderDiscount": "0",
		"dropshipperId": userID,
		"items": []map[string]any{
			{"productId": productID.String(), "quantity": 1, "orderItemDiscount": "0"},
		},
	})
}

func TestHealth_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestProductAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	t.Run("Create with images serves them under /files", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		categoryID, brandID, _ := seedReferences(t, server)

		product := createProduct(t, server, "Checkpoint SL 5", categoryID, brandID, map[string]string{
			"front.JPG": "front-bytes",
		})

		assert.Equal(t, "Gravel", product.CategoryName)
		assert.Equal(t, "Trek", product.BrandName)
		require.Len(t, product.Images, 1)
		assert.True(t, strings.HasPrefix(product.Images[0], "/files/Products/"))
		assert.True(t, strings.HasSuffix(product.Images[0], ".jpg"))

		req := httptest.NewRequest(http.MethodGet, product.Images[0], nil)
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "front-bytes", w.Body.String())
	})

	t.Run("Search and filter", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		categoryID, brandID, _ := seedReferences(t, server)

		createProduct(t, server, "Checkpoint SL 5", categoryID, brandID, nil)
		createProduct(t, server, "Domane AL 2", categoryID, brandID, nil)

		w := doRequest(t, server, http.MethodGet, "/api/products?searchTerm=checkpoint&brandId="+brandID.String(), nil)
		require.Equal(t, http.StatusOK, w.Code)

		page := decodeBody[model.Page[model.ProductDTO]](t, w)
		assert.Equal(t, 1, page.TotalCount)
		require.Len(t, page.Result, 1)
		assert.Equal(t, "Checkpoint SL 5", page.Result[0].Name)
		assert.NotNil(t, page.Result[0].Images)
	})

	t.Run("Unknown brand is 404 and stores nothing", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		categoryID, _, _ := seedReferences(t, server)

		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		_ = mw.WriteField("name", "Ghost")
		_ = mw.WriteField("price", "1")
		_ = mw.WriteField("modelYear", "2024")
		_ = mw.WriteField("categoryId", categoryID.String())
		_ = mw.WriteField("brandId", uuid.NewString())
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/products", &body)
		req.Header.Set("X-API-Key", testAPIKey)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)

		w = doRequest(t, server, http.MethodGet, "/api/products", nil)
		assert.Equal(t, 0, decodeBody[model.Page[model.ProductDTO]](t, w).TotalCount)
	})

	t.Run("Category in use cannot be deleted", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		categoryID, brandID, _ := seedReferences(t, server)
		createProduct(t, server, "Checkpoint SL 5", categoryID, brandID, nil)

		w := doRequest(t, server, http.MethodDelete, "/api/categories/"+categoryID.String(), nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		body := decodeBody[model.ErrorResponse](t, w)
		assert.Equal(t, model.ErrCodeInternalError, body.Error)
		assert.NotContains(t, body.Message, "foreign key")
	})
}

func TestOrderAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	t.Run("Create and get", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		categoryID, brandID, userID := seedReferences(t, server)
		product := createProduct(t, server, "Checkpoint SL 5", categoryID, brandID, nil)

		w := createOrder(t, server, userID, product.ID)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		created := decodeBody[model.OrderDetailsDTO](t, w)

		assert.Equal(t, model.OrderStatusPending, created.OrderStatus)
		assert.Equal(t, "Jane Doe", created.DropshipperName)
		require.Len(t, created.Items, 1)
		assert.Equal(t, "Checkpoint SL 5", created.Items[0].ProductName)
		assert.Equal(t, "1499.9", created.Items[0].UnitPrice.String())

		w = doRequest(t, server, http.MethodGet, "/api/orders/"+created.ID.String(), nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, created.ID, decodeBody[model.OrderDetailsDTO](t, w).ID)
	})

	t.Run("Pagination envelope", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		categoryID, brandID, userID := seedReferences(t, server)
		product := createProduct(t, server, "Checkpoint SL 5", categoryID, brandID, nil)

		for range 12 {
			require.Equal(t, http.StatusCreated, createOrder(t, server, userID, product.ID).Code)
		}

		seen := make(map[uuid.UUID]bool)
		for pageIndex := 1; pageIndex <= 3; pageIndex++ {
			w := doRequest(t, server, http.MethodGet, fmt.Sprintf("/api/orders?pageIndex=%d&pageSize=5", pageIndex), nil)
			require.Equal(t, http.StatusOK, w.Code)

			page := decodeBody[model.Page[model.OrderDetailsDTO]](t, w)
			assert.Equal(t, 12, page.TotalCount)
			assert.Equal(t, pageIndex, page.PageIndex)
			for _, o := range page.Result {
				assert.False(t, seen[o.ID], "order %s returned twice", o.ID)
				seen[o.ID] = true
			}
		}
		assert.Len(t, seen, 12)

		w := doRequest(t, server, http.MethodGet, "/api/orders?pageIndex=4&pageSize=5", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"result":[],"pageIndex":4,"pageSize":5,"totalCount":12}`, w.Body.String())
	})

	t.Run("Unknown product persists nothing", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		_, _, userID := seedReferences(t, server)

		w := createOrder(t, server, userID, uuid.New())
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, model.ErrCodeNotFound, decodeBody[model.ErrorResponse](t, w).Error)

		w = doRequest(t, server, http.MethodGet, "/api/orders", nil)
		assert.Equal(t, 0, decodeBody[model.Page[model.OrderDetailsDTO]](t, w).TotalCount)
	})

	t.Run("Soft-deleted order disappears", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		categoryID, brandID, userID := seedReferences(t, server)
		product := createProduct(t, server, "Checkpoint SL 5", categoryID, brandID, nil)
		created := decodeBody[model.OrderDetailsDTO](t, createOrder(t, server, userID, product.ID))

		w := doRequest(t, server, http.MethodDelete, "/api/orders/"+created.ID.String(), nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = doRequest(t, server, http.MethodGet, "/api/orders/"+created.ID.String(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = doRequest(t, server, http.MethodDelete, "/api/orders/"+created.ID.String(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		var isDeleted bool
		err := testDB.Pool.QueryRow(t.Context(), `SELECT is_deleted FROM orders WHERE id = $1`, created.ID).Scan(&isDeleted)
		require.NoError(t, err)
		assert.True(t, isDeleted)
	})

	t.Run("Update status", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		categoryID, brandID, userID := seedReferences(t, server)
		product := createProduct(t, server, "Checkpoint SL 5", categoryID, brandID, nil)
		created := decodeBody[model.OrderDetailsDTO](t, createOrder(t, server, userID, product.ID))

		w := doRequest(t, server, http.MethodPut, "/api/orders/"+created.ID.String(), map[string]any{
			"orderPrice":    "1499.90",
			"orderDiscount": "100",
			"orderStatus":   "shipped",
			"shippedDate":   "2024-05-01",
			"dropshipperId": userID,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		updated := decodeBody[model.OrderDetailsDTO](t, w)
		assert.Equal(t, model.OrderStatusShipped, updated.OrderStatus)
		require.NotNil(t, updated.ShippedDate)
		assert.Equal(t, "2024-05-01", updated.ShippedDate.String())
		assert.Len(t, updated.Items, 1)

		w = doRequest(t, server, http.MethodGet, "/api/orders?status=Shipped", nil)
		assert.Equal(t, 1, decodeBody[model.Page[model.OrderDetailsDTO]](t, w).TotalCount)

		w = doRequest(t, server, http.MethodPut, "/api/orders/"+created.ID.String(), map[string]any{
			"orderPrice":    "1499.90",
			"dropshipperId": userID,
		})
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		assert.Equal(t, model.ErrCodeValidation, decodeBody[model.ErrorResponse](t, w).Error)

		w = doRequest(t, server, http.MethodGet, "/api/orders/"+created.ID.String(), nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, model.OrderStatusShipped, decodeBody[model.OrderDetailsDTO](t, w).OrderStatus)
	})
}

func TestDropshipperAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)
	CleanupDB(t, testDB.Pool)

	w := doRequest(t, server, http.MethodPost, "/api/dropshippers/acct-42", map[string]any{
		"userId":    "acct-spoofed",
		"userName":  "Sam",
		"isActive":  false,
		"createdAt": "1999-01-01",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeBody[model.DropshipperDTO](t, w)
	assert.Equal(t, "acct-42", created.UserID)
	assert.Equal(t, model.NewDate(time.Now()).String(), created.CreatedAt.String())

	w = doRequest(t, server, http.MethodPut, "/api/dropshippers/acct-42", map[string]any{
		"userName":  "Samuel",
		"isActive":  false,
		"createdAt": "2001-02-03",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decodeBody[model.DropshipperDTO](t, w)
	assert.Equal(t, "Samuel", updated.UserName)
	assert.Equal(t, created.CreatedAt.String(), updated.CreatedAt.String())

	w = doRequest(t, server, http.MethodGet, "/api/dropshippers/acct-42", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created.CreatedAt.String(), decodeBody[model.DropshipperDTO](t, w).CreatedAt.String())

	w = doRequest(t, server, http.MethodPost, "/api/dropshippers/acct-42", map[string]any{"userName": "Sam"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, server, http.MethodGet, "/api/dropshippers/acct-spoofed", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, server, http.MethodGet, "/api/dropshippers?isActive=false", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decodeBody[model.Page[model.DropshipperDTO]](t, w)
	assert.Equal(t, 1, page.TotalCount)

	w = doRequest(t, server, http.MethodDelete, "/api/dropshippers/acct-42", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/mmdatafocus/supplychain_backend/models"
	"github.com/mmdatafocus/supplychain_backend/utils"
)

// respondError maps model-layer errors onto HTTP statuses: missing records
// are 404, duplicates and in-use conflicts are 409, everything else from
// validation is 400.
func respondError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(validationErrs)})
		return
	}
	if errors.Is(err, utils.ErrorRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	msg := err.Error()
	if strings.Contains(msg, "already exists") || strings.Contains(msg, "in use") {
		c.JSON(http.StatusConflict, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func pathId(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// inventoryKey reads the (product_id, location_id) pair from query params,
// used by the key-addressed inventory and store limit endpoints.
func inventoryKey(c *gin.Context) (int, int, bool) {
	productId, err1 := strconv.Atoi(c.Query("product_id"))
	locationId, err2 := strconv.Atoi(c.Query("location_id"))
	if err1 != nil || err2 != nil || productId <= 0 || locationId <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_id and location_id query params are required"})
		return 0, 0, false
	}
	return productId, locationId, true
}

// --- locations ---

func createLocationHandler(c *gin.Context) {
	var input models.NewLocation
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, err)
		return
	}
	location, err := models.CreateLocation(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, location)
}

func listLocationsHandler(c *gin.Context) {
	locations, err := models.ListLocations(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, locations)
}

func getLocationHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	location, err := models.GetLocation(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, location)
}

func updateLocationHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.NewLocation
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, err)
		return
	}
	location, err := models.UpdateLocation(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, location)
}

func deleteLocationHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	location, err := models.DeleteLocation(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, location)
}

// --- products ---

func createProductHandler(c *gin.Context) {
	var input models.NewProduct
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, err)
		return
	}
	product, err := models.CreateProduct(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func listProductsHandler(c *gin.Context) {
	products, err := models.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func getProductHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	product, err := models.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func updateProductHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.NewProduct
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, err)
		return
	}
	product, err := models.UpdateProduct(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func deleteProductHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	product, err := models.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// --- inventory ---

func createInventoryHandler(c *gin.Context) {
	var input models.NewInventoryRecord
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, err)
		return
	}
	record, err := models.CreateInventoryRecord(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func listInventoryHandler(c *gin.Context) {
	records, err := models.ListInventoryRecords(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

type updateInventoryRequest struct {
	ProductId    int `json:"product_id" binding:"required"`
	LocationId   int `json:"location_id" binding:"required"`
	CurrentStock int `json:"current_stock" binding:"gte=0"`
}

func updateInventoryHandler(c *gin.Context) {
	var req updateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}
	record, err := models.UpdateInventoryStock(c.Request.Context(), req.ProductId, req.LocationId, req.CurrentStock)
	if err != nil {
		if errors.Is(err, utils.ErrStaleInventory) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func deleteInventoryHandler(c *gin.Context) {
	productId, locationId, ok := inventoryKey(c)
	if !ok {
		return
	}
	record, err := models.DeleteInventoryRecord(c.Request.Context(), productId, locationId)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// --- store limits ---

func createStoreLimitHandler(c *gin.Context) {
	var input models.NewStoreLimit
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, err)
		return
	}
	limit, err := models.CreateStoreLimit(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, limit)
}

func listStoreLimitsHandler(c *gin.Context) {
	limits, err := models.ListStoreLimits(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, limits)
}

func updateStoreLimitHandler(c *gin.Context) {
	var input models.NewStoreLimit
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, err)
		return
	}
	limit, err := models.UpdateStoreLimit(c.Request.Context(), input.ProductId, input.LocationId, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, limit)
}

func deleteStoreLimitHandler(c *gin.Context) {
	productId, locationId, ok := inventoryKey(c)
	if !ok {
		return
	}
	limit, err := models.DeleteStoreLimit(c.Request.Context(), productId, locationId)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, limit)
}

// --- transport routes ---

func createTransportRouteHandler(c *gin.Context) {
	var input models.NewTransportRoute
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, err)
		return
	}
	route, err := models.CreateTransportRoute(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, route)
}

func listTransportRoutesHandler(c *gin.Context) {
	routes, err := models.ListTransportRoutes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, routes)
}

func deleteTransportRouteHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	route, err := models.DeleteTransportRoute(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, route)
}

// --- suppliers ---

func createSupplierHandler(c *gin.Context) {
	var input models.NewSupplier
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, err)
		return
	}
	supplier, err := models.CreateSupplier(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, supplier)
}

func listSuppliersHandler(c *gin.Context) {
	suppliers, err := models.ListSuppliers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, suppliers)
}

func getSupplierHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	supplier, err := models.GetSupplier(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, supplier)
}

func updateSupplierHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.NewSupplier
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, err)
		return
	}
	supplier, err := models.UpdateSupplier(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, supplier)
}

func deleteSupplierHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	supplier, err := models.DeleteSupplier(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, supplier)
}

// --- raw material costs ---

func createRawMaterialCostHandler(c *gin.Context) {
	var input models.NewRawMaterialCost
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, err)
		return
	}
	cost, err := models.CreateRawMaterialCost(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cost)
}

func listRawMaterialCostsHandler(c *gin.Context) {
	costs, err := models.ListRawMaterialCosts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, costs)
}

func deleteRawMaterialCostHandler(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	cost, err := models.DeleteRawMaterialCost(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cost)
}

// --- read-only surfaces ---

func listOrdersHandler(c *gin.Context) {
	if v := strings.TrimSpace(c.Query("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		orders, err := models.ListRecentOrders(c.Request.Context(), n)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
		return
	}
	orders, err := models.ListOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func listOptimizationRunsHandler(c *gin.Context) {
	runs, err := models.ListOptimizationRuns(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, runs)
}

package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"avicena/internal/domain"
	"avicena/internal/report"
	"avicena/internal/repository"
	"avicena/internal/service"
)

// Config настройки HTTP-слоя
type Config struct {
	JWTSecret    string
	AllowOrigins []string
}

type Server struct {
	engine  *gin.Engine
	catalog *service.CatalogService
	orders  *service.OrderService
	reports *service.ReportService
	auth    *service.AuthService
	secret  []byte
}

func NewServer(catalog *service.CatalogService, orders *service.OrderService, reports *service.ReportService, auth *service.AuthService, cfg Config) *Server {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	if len(cfg.AllowOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.AllowOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Authorization", "Content-Type"},
			AllowCredentials: true,
		}))
	}
	s := &Server{
		engine:  r,
		catalog: catalog,
		orders:  orders,
		reports: reports,
		auth:    auth,
		secret:  []byte(cfg.JWTSecret),
	}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := s.engine.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/signup", s.signup)
	auth.POST("/login", s.login)

	protected := v1.Group("/")
	protected.Use(authRequired(s.secret))
	{
		drugs := protected.Group("/drugs")
		drugs.POST("", s.addDrug)
		drugs.GET("", s.listDrugs)
		drugs.PUT(":id", s.updateDrug)
		drugs.DELETE(":id", s.deleteDrug)
		drugs.POST(":id/adjust", s.adjustInventory)

		suppliers := protected.Group("/suppliers")
		suppliers.POST("", s.addSupplier)
		suppliers.GET("", s.listSuppliers)
		suppliers.PUT(":id", s.updateSupplier)
		suppliers.DELETE(":id", s.deleteSupplier)

		orders := protected.Group("/orders")
		orders.POST("", s.placeOrder)
		orders.GET("", s.listOrders)
		orders.GET(":id", s.getOrder)
		orders.PATCH(":id/status", s.updateOrderStatus)
		orders.DELETE(":id", s.deleteOrder)

		reports := protected.Group("/reports")
		reports.GET("/low-stock", s.lowStock)
		reports.GET("/expiring", s.expiringSoon)
		reports.GET("/export", s.exportReport)
	}
}

// Auth handlers
type credentialsReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// @Summary Sign up
// @Tags auth
// @Accept json
// @Produce json
// @Param input body credentialsReq true "Credentials"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auth/signup [post]
func (s *Server) signup(c *gin.Context) {
	var req credentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	u, err := s.auth.Register(c, req.Username, req.Password)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user_id": u.ID, "username": u.Username})
}

// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param input body credentialsReq true "Credentials"
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (s *Server) login(c *gin.Context) {
	var req credentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	ok, err := s.auth.Verify(c, req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		// неизвестное имя и неверный пароль отвечают одинаково
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	token, err := issueToken(s.secret, req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create token"})
		return
	}
	c.SetCookie("token", token, int(tokenTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Drug handlers
type drugReq struct {
	Name              string `json:"name" binding:"required"`
	BatchNumber       string `json:"batch_number"`
	ExpiryDate        string `json:"expiry_date" binding:"required"`
	Manufacturer      string `json:"manufacturer"`
	Quantity          int64  `json:"quantity"`
	StorageConditions string `json:"storage_conditions"`
}

func (r drugReq) toDomain() domain.Drug {
	return domain.Drug{
		Name:              r.Name,
		BatchNumber:       r.BatchNumber,
		ExpiryDate:        r.ExpiryDate,
		Manufacturer:      r.Manufacturer,
		Quantity:          r.Quantity,
		StorageConditions: r.StorageConditions,
	}
}

// @Summary Add drug
// @Tags drugs
// @Accept json
// @Produce json
// @Param input body drugReq true "Drug"
// @Success 201 {object} domain.Drug
// @Failure 400 {object} map[string]string
// @Router /drugs [post]
func (s *Server) addDrug(c *gin.Context) {
	var req drugReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	d, err := s.catalog.AddDrug(c, req.toDomain())
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, d)
}

// @Summary List or search drugs
// @Tags drugs
// @Produce json
// @Param q query string false "Name contains"
// @Success 200 {array} domain.Drug
// @Router /drugs [get]
func (s *Server) listDrugs(c *gin.Context) {
	list, err := s.catalog.ListDrugs(c, c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Update drug
// @Tags drugs
// @Accept json
// @Produce json
// @Param id path int true "Drug ID"
// @Param input body drugReq true "Drug"
// @Success 204
// @Failure 400 {object} map[string]string
// @Router /drugs/{id} [put]
func (s *Server) updateDrug(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req drugReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	d := req.toDomain()
	d.ID = id
	if err := s.catalog.UpdateDrug(c, d); err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Delete drug
// @Tags drugs
// @Param id path int true "Drug ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Router /drugs/{id} [delete]
func (s *Server) deleteDrug(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := s.catalog.DeleteDrug(c, id); err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

type adjustReq struct {
	Delta int64 `json:"delta"`
}

// @Summary Adjust stock quantity by signed delta
// @Tags drugs
// @Accept json
// @Produce json
// @Param id path int true "Drug ID"
// @Param input body adjustReq true "Delta"
// @Success 200 {object} domain.Drug
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /drugs/{id}/adjust [post]
func (s *Server) adjustInventory(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req adjustReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	d, err := s.orders.AdjustInventory(c, id, req.Delta)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, d)
}

// Supplier handlers
type supplierReq struct {
	Name        string `json:"name" binding:"required"`
	ContactInfo string `json:"contact_info"`
	Address     string `json:"address"`
}

// @Summary Add supplier
// @Tags suppliers
// @Accept json
// @Produce json
// @Param input body supplierReq true "Supplier"
// @Success 201 {object} domain.Supplier
// @Failure 400 {object} map[string]string
// @Router /suppliers [post]
func (s *Server) addSupplier(c *gin.Context) {
	var req supplierReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	sup, err := s.catalog.AddSupplier(c, domain.Supplier{Name: req.Name, ContactInfo: req.ContactInfo, Address: req.Address})
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, sup)
}

// @Summary List or search suppliers
// @Tags suppliers
// @Produce json
// @Param q query string false "Name contains"
// @Success 200 {array} domain.Supplier
// @Router /suppliers [get]
func (s *Server) listSuppliers(c *gin.Context) {
	list, err := s.catalog.ListSuppliers(c, c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Update supplier
// @Tags suppliers
// @Accept json
// @Produce json
// @Param id path int true "Supplier ID"
// @Param input body supplierReq true "Supplier"
// @Success 204
// @Failure 400 {object} map[string]string
// @Router /suppliers/{id} [put]
func (s *Server) updateSupplier(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req supplierReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	sup := domain.Supplier{ID: id, Name: req.Name, ContactInfo: req.ContactInfo, Address: req.Address}
	if err := s.catalog.UpdateSupplier(c, sup); err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Delete supplier
// @Tags suppliers
// @Param id path int true "Supplier ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Router /suppliers/{id} [delete]
func (s *Server) deleteSupplier(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := s.catalog.DeleteSupplier(c, id); err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// Order handlers
type placeOrderReq struct {
	SupplierID int64              `json:"supplier_id"`
	Status     string             `json:"status"`
	Items      []domain.OrderItem `json:"items"`
}

// @Summary Place order
// @Tags orders
// @Accept json
// @Produce json
// @Param input body placeOrderReq true "Order"
// @Success 201 {object} domain.Order
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders [post]
func (s *Server) placeOrder(c *gin.Context) {
	var req placeOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	o, err := s.orders.PlaceOrder(c, req.SupplierID, domain.OrderStatus(req.Status), req.Items)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, o)
}

// @Summary List or search orders
// @Tags orders
// @Produce json
// @Param q query string false "Order id or supplier name contains"
// @Success 200 {array} domain.OrderSummary
// @Router /orders [get]
func (s *Server) listOrders(c *gin.Context) {
	list, err := s.orders.SearchOrders(c, c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get order by id
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [get]
func (s *Server) getOrder(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	o, err := s.orders.GetOrder(c, id)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, o)
}

type orderStatusReq struct {
	Status string `json:"status" binding:"required"`
}

// @Summary Update order status
// @Tags orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param input body orderStatusReq true "Status"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders/{id}/status [patch]
func (s *Server) updateOrderStatus(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req orderStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := s.orders.UpdateStatus(c, id, domain.OrderStatus(req.Status)); err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Delete order with its lines
// @Tags orders
// @Param id path int true "Order ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [delete]
func (s *Server) deleteOrder(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := s.orders.DeleteOrder(c, id); err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// Report handlers

// @Summary Drugs below stock threshold
// @Tags reports
// @Produce json
// @Param threshold query int false "Threshold, default 10"
// @Success 200 {array} domain.Drug
// @Failure 400 {object} map[string]string
// @Router /reports/low-stock [get]
func (s *Server) lowStock(c *gin.Context) {
	threshold, err := queryInt64(c, "threshold")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid threshold"})
		return
	}
	list, err := s.reports.LowStock(c, threshold)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Drugs expiring before now+window, expired included
// @Tags reports
// @Produce json
// @Param days query int false "Window in days, default 30"
// @Success 200 {array} domain.Drug
// @Failure 400 {object} map[string]string
// @Router /reports/expiring [get]
func (s *Server) expiringSoon(c *gin.Context) {
	days, err := queryInt(c, "days")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid days"})
		return
	}
	list, err := s.reports.ExpiringSoon(c, days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Export a report as PDF
// @Tags reports
// @Produce application/pdf
// @Param type query string true "Report type: low-stock or expiring"
// @Param threshold query int false "Threshold for low-stock"
// @Param days query int false "Window for expiring"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Router /reports/export [get]
func (s *Server) exportReport(c *gin.Context) {
	var (
		drugs []domain.Drug
		title string
		err   error
	)
	reportType := c.Query("type")
	switch reportType {
	case "low-stock":
		threshold, perr := queryInt64(c, "threshold")
		if perr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid threshold"})
			return
		}
		title = "Low Stock Report"
		drugs, err = s.reports.LowStock(c, threshold)
	case "expiring":
		days, perr := queryInt(c, "days")
		if perr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid days"})
			return
		}
		title = "Expiring Soon Report"
		drugs, err = s.reports.ExpiringSoon(c, days)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report type"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	pdf, err := report.BuildInventoryPDF(title, drugs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_report.pdf", reportType))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// query helpers: отсутствующий параметр — ноль, мусор — ошибка
func queryInt64(c *gin.Context, name string) (int64, error) {
	v := c.Query(name)
	if v == "" {
		return 0, nil
	}
	return strconv.ParseInt(v, 10, 64)
}

func queryInt(c *gin.Context, name string) (int, error) {
	v := c.Query(name)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrSupplierNotFound),
		errors.Is(err, service.ErrDrugNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUsernameTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

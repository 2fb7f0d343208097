package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"warrantyportal/internal/models"
	"warrantyportal/internal/pdf"
	"warrantyportal/internal/services"
)

type WarrantyHandler struct {
	Service *services.WarrantyService
	PDF     pdf.Generator
}

func NewWarrantyHandler(service *services.WarrantyService, gen pdf.Generator) *WarrantyHandler {
	return &WarrantyHandler{Service: service, PDF: gen}
}

// addWarrantyRequest mirrors the registration form. Quantity is untyped on
// purpose: the form submits it as a string, API clients send a number.
type addWarrantyRequest struct {
	SerialNumber       string `json:"serialNumber"`
	ProductName        string `json:"productName"`
	CustomerName       string `json:"customerName"`
	CompanyName        string `json:"companyName"`
	MobileNumber       string `json:"mobileNumber"`
	Address            string `json:"address"`
	City               string `json:"city"`
	State              string `json:"state"`
	ZipCode            string `json:"zipCode"`
	ProductCategory    string `json:"productCategory"`
	ModelNumber        string `json:"modelNumber"`
	Quantity           any    `json:"quantity"`
	PurchaseDate       string `json:"purchaseDate"`
	ExpiryDate         string `json:"expiryDate"`
	PurchaseChannel    string `json:"purchaseChannel"`
	ResellerName       string `json:"resellerName"`
	ProofOfPurchaseURL string `json:"proofOfPurchaseUrl"`
	RegisteredBy       string `json:"registeredBy"`
}

// @Summary      Register a warranty
// @Description  Creates a warranty record for a serial number; duplicates are rejected
// @Tags         Warranty
// @Accept       json
// @Produce      json
// @Param        warranty  body      handlers.addWarrantyRequest  true  "Warranty fields"
// @Success      200       {object}  map[string]interface{}
// @Failure      400       {object}  map[string]string
// @Failure      500       {object}  map[string]string
// @Router       /api/warranty/add [post]
func (h *WarrantyHandler) Add(c *gin.Context) {
	var req addWarrantyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if strings.TrimSpace(req.SerialNumber) == "" || strings.TrimSpace(req.ProductName) == "" ||
		strings.TrimSpace(req.PurchaseDate) == "" || strings.TrimSpace(req.ExpiryDate) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	purchase, err := parseDate(req.PurchaseDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid purchaseDate"})
		return
	}
	expiry, err := parseDate(req.ExpiryDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expiryDate"})
		return
	}

	w := &models.Warranty{
		SerialNumber:       req.SerialNumber,
		ProductName:        req.ProductName,
		CustomerName:       req.CustomerName,
		CompanyName:        req.CompanyName,
		MobileNumber:       req.MobileNumber,
		Address:            req.Address,
		City:               req.City,
		State:              req.State,
		ZipCode:            req.ZipCode,
		ProductCategory:    req.ProductCategory,
		ModelNumber:        req.ModelNumber,
		Quantity:           coerceQuantity(req.Quantity),
		PurchaseDate:       purchase,
		ExpiryDate:         expiry,
		PurchaseChannel:    req.PurchaseChannel,
		ResellerName:       req.ResellerName,
		ProofOfPurchaseURL: req.ProofOfPurchaseURL,
		RegisteredBy:       req.RegisteredBy,
	}

	if err := h.Service.Register(w); err != nil {
		switch err {
		case services.ErrMissingFields:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		case services.ErrDuplicateSerial:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Warranty for this serial number already exists"})
		case services.ErrInvalidPeriod:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Expiry date must not precede purchase date"})
		default:
			log.Printf("[warranty][add] internal error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "warranty": w})
}

// @Summary      Check warranty status
// @Tags         Warranty
// @Produce      json
// @Param        serialNumber  query     string  true  "Serial number"
// @Success      200           {object}  map[string]interface{}
// @Failure      404           {object}  map[string]string
// @Router       /api/warranty/check [get]
func (h *WarrantyHandler) Check(c *gin.Context) {
	serial := strings.TrimSpace(c.Query("serialNumber"))
	if serial == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "serialNumber is required"})
		return
	}
	w, err := h.Service.CheckBySerial(serial)
	if err != nil {
		log.Printf("[warranty][check] lookup failed serial=%s: %v", serial, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if w == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "warranty not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"warranty": w})
}

// List returns registered warranties, newest first. Requires auth;
// the portal's asset pages page through it.
func (h *WarrantyHandler) List(c *gin.Context) {
	limit, offset := 50, 0
	if n, err := strconv.Atoi(c.Query("limit")); err == nil && n > 0 && n <= 200 {
		limit = n
	}
	if n, err := strconv.Atoi(c.Query("offset")); err == nil && n >= 0 {
		offset = n
	}
	ws, err := h.Service.List(limit, offset)
	if err != nil {
		log.Printf("[warranty][list] failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"warranties": ws})
}

// Certificate streams the downloadable PDF for a registered warranty.
func (h *WarrantyHandler) Certificate(c *gin.Context) {
	serial := strings.TrimSpace(c.Param("serial"))
	w, err := h.Service.CheckBySerial(serial)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if w == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "warranty not found"})
		return
	}
	data, err := h.PDF.Certificate(w)
	if err != nil {
		log.Printf("[warranty][certificate] render failed serial=%s: %v", serial, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="warranty_%s.pdf"`, serial))
	c.Data(http.StatusOK, "application/pdf", data)
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// coerceQuantity accepts a number or a numeric string; anything else
// falls back to 1.
func coerceQuantity(v any) int {
	switch t := v.(type) {
	case float64:
		if t >= 1 {
			return int(t)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil && n >= 1 {
			return n
		}
	}
	return 1
}

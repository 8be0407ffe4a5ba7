package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"potion-shop/internal/middleware"
	"potion-shop/internal/models"
	"potion-shop/internal/store"
	"potion-shop/internal/util"

	"github.com/gin-gonic/gin"
)

// PotionHandler 负责药水相关接口
type PotionHandler struct {
	Potions *store.PotionStore
}

func NewPotionHandler(potions *store.PotionStore) *PotionHandler {
	return &PotionHandler{Potions: potions}
}

// ---------- reads ----------

func (h *PotionHandler) List(c *gin.Context) {
	potions, err := h.Potions.All()
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "could not list potions")
		return
	}
	c.JSON(http.StatusOK, potions)
}

func (h *PotionHandler) Names(c *gin.Context) {
	names, err := h.Potions.Names()
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "could not list potion names")
		return
	}
	c.JSON(http.StatusOK, names)
}

func (h *PotionHandler) ByVendor(c *gin.Context) {
	potions, err := h.Potions.ByVendor(c.Param("vendor_id"))
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "could not list potions")
		return
	}
	c.JSON(http.StatusOK, potions)
}

func (h *PotionHandler) PriceRange(c *gin.Context) {
	minStr := c.Query("min")
	maxStr := c.Query("max")
	if minStr == "" || maxStr == "" {
		util.Error(c, http.StatusBadRequest, "min and max are required")
		return
	}

	min, errMin := strconv.ParseFloat(minStr, 64)
	max, errMax := strconv.ParseFloat(maxStr, 64)
	if errMin != nil || errMax != nil {
		util.Error(c, http.StatusBadRequest, "min and max must be numbers")
		return
	}

	potions, err := h.Potions.PriceRange(min, max)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "could not list potions")
		return
	}
	c.JSON(http.StatusOK, potions)
}

// ---------- analytics ----------

func (h *PotionHandler) DistinctCategories(c *gin.Context) {
	count, err := h.Potions.DistinctCategoryCount()
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "could not count categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"distinctCategories": count})
}

func (h *PotionHandler) AverageScoreByVendor(c *gin.Context) {
	rows, err := h.Potions.AverageScoreByVendor()
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "could not aggregate scores")
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *PotionHandler) AverageScoreByCategory(c *gin.Context) {
	rows, err := h.Potions.AverageScoreByCategory()
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "could not aggregate scores")
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *PotionHandler) StrengthFlavorRatio(c *gin.Context) {
	rows, err := h.Potions.StrengthFlavorRatios()
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "could not compute ratios")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Search 通用聚合：?groupBy=&metric=&field=
func (h *PotionHandler) Search(c *gin.Context) {
	groupBy := c.Query("groupBy")
	metric := c.Query("metric")
	field := c.Query("field")
	if groupBy == "" || metric == "" || field == "" {
		util.Error(c, http.StatusBadRequest, "groupBy, metric and field are required")
		return
	}

	rows, err := h.Potions.Aggregate(groupBy, metric, field)
	if err != nil {
		var verrs store.ValidationErrors
		if errors.As(err, &verrs) {
			util.ErrorList(c, http.StatusBadRequest, verrs)
			return
		}
		util.Error(c, http.StatusInternalServerError, "could not aggregate potions")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// ---------- create ----------

type createPotionReq struct {
	Name        string         `json:"name"`
	Price       float64        `json:"price"`
	Score       float64        `json:"score"`
	Ingredients []string       `json:"ingredients"`
	Ratings     models.Ratings `json:"ratings"`
	TryDate     time.Time      `json:"tryDate"`
	Categories  []string       `json:"categories"`
	VendorID    string         `json:"vendor_id"`
}

// Create persists a new potion. Only structural typing is enforced on the
// body; the response is the stored document including its generated id.
func (h *PotionHandler) Create(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		util.Error(c, http.StatusUnauthorized, "missing or invalid token")
		return
	}

	var req createPotionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "invalid potion payload")
		return
	}

	potion := models.Potion{
		Name:        req.Name,
		Price:       req.Price,
		Score:       req.Score,
		Ingredients: req.Ingredients,
		Ratings:     req.Ratings,
		TryDate:     req.TryDate,
		Categories:  req.Categories,
		VendorID:    req.VendorID,
	}

	if err := h.Potions.Create(&potion); err != nil {
		util.Error(c, http.StatusInternalServerError, "could not create potion")
		return
	}

	c.JSON(http.StatusCreated, potion)
}

package store

import (
	"fmt"
	"sort"

	"potion-shop/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PotionStore exposes the query and aggregation surface over the potion
// collection. Scalar groupings run as SQL GROUP BY; groupings over the
// multi-valued categories field fan out in Go, since a JSON text column has
// no SQL-side array semantics.
type PotionStore struct {
	DB *gorm.DB
}

func NewPotionStore(db *gorm.DB) *PotionStore {
	return &PotionStore{DB: db}
}

// GroupAverage is one group of an average-score aggregation.
type GroupAverage struct {
	GroupID      string  `gorm:"column:group_id" json:"_id"`
	AverageScore float64 `gorm:"column:average_score" json:"averageScore"`
}

// GroupMetric is one group of the generic aggregation.
type GroupMetric struct {
	GroupID string  `gorm:"column:group_id" json:"_id"`
	Value   float64 `gorm:"column:value" json:"value"`
}

// NameRatio is the strength/flavor ratio of a single potion.
type NameRatio struct {
	Name  string  `json:"name"`
	Ratio float64 `json:"ratio"`
}

// allow-lists for the generic aggregation; caller input never reaches the
// query builder directly
var (
	groupColumns = map[string]string{
		"vendor_id": "vendor_id",
		"name":      "name",
	}
	metricColumns = map[string]string{
		"price":    "price",
		"score":    "score",
		"strength": "rating_strength",
		"flavor":   "rating_flavor",
	}
	metricFuncs = map[string]string{
		"avg":   "AVG",
		"sum":   "SUM",
		"count": "COUNT",
	}
)

// All returns the full potion collection.
func (s *PotionStore) All() ([]models.Potion, error) {
	potions := make([]models.Potion, 0)
	if err := s.DB.Find(&potions).Error; err != nil {
		return nil, fmt.Errorf("list potions: %w", err)
	}
	return potions, nil
}

// Names projects the collection to potion names only.
func (s *PotionStore) Names() ([]string, error) {
	names := make([]string, 0)
	if err := s.DB.Model(&models.Potion{}).
		Order("name ASC").
		Pluck("name", &names).Error; err != nil {
		return nil, fmt.Errorf("list potion names: %w", err)
	}
	return names, nil
}

// ByVendor returns all potions with an exactly matching vendor id.
func (s *PotionStore) ByVendor(vendorID string) ([]models.Potion, error) {
	potions := make([]models.Potion, 0)
	if err := s.DB.Where("vendor_id = ?", vendorID).Find(&potions).Error; err != nil {
		return nil, fmt.Errorf("list potions by vendor: %w", err)
	}
	return potions, nil
}

// PriceRange returns potions with price in [min, max], bounds included.
func (s *PotionStore) PriceRange(min, max float64) ([]models.Potion, error) {
	potions := make([]models.Potion, 0)
	if err := s.DB.Where("price >= ? AND price <= ?", min, max).
		Find(&potions).Error; err != nil {
		return nil, fmt.Errorf("list potions by price: %w", err)
	}
	return potions, nil
}

// DistinctCategoryCount counts unique values across every categories field.
// A document contributes zero or many values; duplicates collapse once.
func (s *PotionStore) DistinctCategoryCount() (int, error) {
	potions, err := s.All()
	if err != nil {
		return 0, err
	}

	seen := make(map[string]struct{})
	for i := range potions {
		for _, cat := range potions[i].Categories {
			seen[cat] = struct{}{}
		}
	}
	return len(seen), nil
}

// AverageScoreByVendor averages scores grouped by vendor id.
func (s *PotionStore) AverageScoreByVendor() ([]GroupAverage, error) {
	rows := make([]GroupAverage, 0)
	if err := s.DB.Model(&models.Potion{}).
		Select("vendor_id AS group_id, AVG(score) AS average_score").
		Group("vendor_id").
		Order("vendor_id ASC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("average score by vendor: %w", err)
	}
	return rows, nil
}

// AverageScoreByCategory averages scores grouped by category. A potion with
// N categories contributes its score to N groups (fan-out, not a partition).
func (s *PotionStore) AverageScoreByCategory() ([]GroupAverage, error) {
	potions, err := s.All()
	if err != nil {
		return nil, err
	}

	type acc struct {
		sum   float64
		count int
	}
	byCat := make(map[string]*acc)
	for i := range potions {
		p := &potions[i]
		for _, cat := range p.Categories {
			a, ok := byCat[cat]
			if !ok {
				a = &acc{}
				byCat[cat] = a
			}
			a.sum += p.Score
			a.count++
		}
	}

	rows := make([]GroupAverage, 0, len(byCat))
	for cat, a := range byCat {
		rows = append(rows, GroupAverage{
			GroupID:      cat,
			AverageScore: a.sum / float64(a.count),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].GroupID < rows[j].GroupID })
	return rows, nil
}

// StrengthFlavorRatios returns strength divided by flavor per potion.
// Potions with a zero flavor rating are omitted: the ratio is undefined and
// a mixed-type sentinel would push the problem onto every consumer.
func (s *PotionStore) StrengthFlavorRatios() ([]NameRatio, error) {
	potions, err := s.All()
	if err != nil {
		return nil, err
	}

	rows := make([]NameRatio, 0, len(potions))
	for i := range potions {
		p := &potions[i]
		if p.Ratings.Flavor == 0 {
			continue
		}
		rows = append(rows, NameRatio{
			Name:  p.Name,
			Ratio: p.Ratings.Strength / p.Ratings.Flavor,
		})
	}
	return rows, nil
}

// Aggregate groups by an allow-listed field and computes an allow-listed
// metric over an allow-listed field. Anything outside the allow-lists is a
// ValidationErrors, never interpolated into the query.
func (s *PotionStore) Aggregate(groupBy, metric, field string) ([]GroupMetric, error) {
	var errs ValidationErrors

	groupCol, ok := groupColumns[groupBy]
	if !ok {
		errs = append(errs, fmt.Sprintf("unsupported groupBy field %q", groupBy))
	}
	fn, ok := metricFuncs[metric]
	if !ok {
		errs = append(errs, fmt.Sprintf("unsupported metric %q", metric))
	}
	metricCol, ok := metricColumns[field]
	if !ok {
		errs = append(errs, fmt.Sprintf("unsupported metric field %q", field))
	}
	if len(errs) > 0 {
		return nil, errs
	}

	rows := make([]GroupMetric, 0)
	if err := s.DB.Model(&models.Potion{}).
		Select(fmt.Sprintf("%s AS group_id, %s(%s) AS value", groupCol, fn, metricCol)).
		Group(groupCol).
		Order(groupCol + " ASC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("aggregate potions: %w", err)
	}
	return rows, nil
}

// Create persists a new potion and fills in its generated id.
func (s *PotionStore) Create(p *models.Potion) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := s.DB.Create(p).Error; err != nil {
		return fmt.Errorf("create potion: %w", err)
	}
	return nil
}

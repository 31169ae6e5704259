package catalog

import (
	"strings"
	"sync"

	"github.com/chrisdamba/chefmenu/internal/models"
	"github.com/lucsky/cuid"
	"github.com/shopspring/decimal"
)

const (
	FieldItemName    = "itemName"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldPrice       = "price"
	FieldImage       = "image"
)

const maxIDAttempts = 8

// price exponent bounds, checked before any arithmetic on the value
const (
	maxPriceExponent = 6
	minPriceExponent = -10
)

var (
	maxPrice    = decimal.New(1, maxPriceExponent)
	zeroAverage = decimal.Zero.StringFixed(2)
)

// Store owns the menu for one session. Items keep insertion order and IDs
// are unique. A Store is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	items []models.MenuItem
	newID func() string
}

type Option func(*Store)

// WithIDGenerator replaces the cuid based generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		s.newID = gen
	}
}

// NewStore creates a store holding a copy of seed.
func NewStore(seed []models.MenuItem, opts ...Option) (*Store, error) {
	s := &Store{
		items: make([]models.MenuItem, 0, len(seed)),
		newID: cuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}

	seen := make(map[string]struct{}, len(seed))
	for _, item := range seed {
		if _, ok := seen[item.ID]; ok {
			return nil, &DuplicateIDError{ID: item.ID}
		}
		seen[item.ID] = struct{}{}
		s.items = append(s.items, item.Clone())
	}
	return s, nil
}

// AddItem validates d and appends the resulting item. On error the
// catalog is left untouched.
func (s *Store) AddItem(d models.Draft) (models.MenuItem, error) {
	item, err := buildItem(d)
	if err != nil {
		return models.MenuItem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.uniqueIDLocked()
	if err != nil {
		return models.MenuItem{}, err
	}
	item.ID = id
	s.items = append(s.items, item)

	return item.Clone(), nil
}

// RemoveItem deletes the item with the given id and reports whether one
// was found. Removing an unknown id does nothing.
func (s *Store) RemoveItem(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return true
}

// FilterByCategory returns the items of one course in catalog order.
func (s *Store) FilterByCategory(course models.Course) []models.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := []models.MenuItem{}
	for _, item := range s.items {
		if item.Category == course {
			filtered = append(filtered, item.Clone())
		}
	}
	return filtered
}

// AveragePrice is the mean price of a course rounded to two decimals, or
// "0.00" when the course has no items.
func (s *Store) AveragePrice(course models.Course) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.averageLocked(course)
}

// Averages returns AveragePrice for every course.
func (s *Store) Averages() map[models.Course]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	averages := make(map[models.Course]string, len(models.Courses))
	for _, course := range models.Courses {
		averages[course] = s.averageLocked(course)
	}
	return averages
}

// Counts returns the number of items in every course.
func (s *Store) Counts() map[models.Course]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[models.Course]int, len(models.Courses))
	for _, course := range models.Courses {
		counts[course] = 0
	}
	for _, item := range s.items {
		counts[item.Category]++
	}
	return counts
}

// Items returns a snapshot of the whole catalog.
func (s *Store) Items() []models.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]models.MenuItem, len(s.items))
	for i, item := range s.items {
		items[i] = item.Clone()
	}
	return items
}

func (s *Store) Get(id string) (models.MenuItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexLocked(id)
	if i < 0 {
		return models.MenuItem{}, false
	}
	return s.items[i].Clone(), true
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store) averageLocked(course models.Course) string {
	sum := decimal.Zero
	count := 0
	for _, item := range s.items {
		if item.Category == course {
			sum = sum.Add(item.Price)
			count++
		}
	}
	if count == 0 {
		return zeroAverage
	}
	return sum.Div(decimal.NewFromInt(int64(count))).StringFixed(2)
}

func (s *Store) indexLocked(id string) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) uniqueIDLocked() (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := s.newID()
		if id != "" && s.indexLocked(id) < 0 {
			return id, nil
		}
	}
	return "", ErrIDExhausted
}

// buildItem runs every draft check before anything touches the catalog.
func buildItem(d models.Draft) (models.MenuItem, error) {
	var missing []string
	required := []struct {
		name  string
		value string
	}{
		{FieldItemName, d.ItemName},
		{FieldDescription, d.Description},
		{FieldCategory, d.Category},
		{FieldPrice, d.Price},
		{FieldImage, d.Image},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return models.MenuItem{}, &MissingFieldError{Fields: missing}
	}

	course, err := models.ParseCourse(d.Category)
	if err != nil {
		return models.MenuItem{}, &InvalidCategoryError{Raw: d.Category}
	}

	price, err := ParsePrice(d.Price)
	if err != nil {
		return models.MenuItem{}, err
	}

	return models.MenuItem{
		ItemName:    strings.TrimSpace(d.ItemName),
		Description: strings.TrimSpace(d.Description),
		Category:    course,
		Price:       price,
		Intensity:   models.IntensityForPrice(price),
		Image:       strings.TrimSpace(d.Image),
		Ingredients: ParseIngredients(d.Ingredients),
	}, nil
}

// ParsePrice accepts a plain decimal number greater than zero and at most
// one million, with no more than ten decimal places.
func ParsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || price.Sign() <= 0 {
		return decimal.Decimal{}, &InvalidPriceError{Raw: raw}
	}
	// exponent first: comparing against maxPrice rescales to a common exponent
	if exp := price.Exponent(); exp > maxPriceExponent || exp < minPriceExponent {
		return decimal.Decimal{}, &InvalidPriceError{Raw: raw}
	}
	if price.GreaterThan(maxPrice) {
		return decimal.Decimal{}, &InvalidPriceError{Raw: raw}
	}
	return price, nil
}

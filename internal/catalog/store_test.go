package catalog

import (
	"fmt"
	"sync"
	"testing"

	"github.com/chrisdamba/chefmenu/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedItem(id string, course models.Course, price int64) models.MenuItem {
	p := decimal.NewFromInt(price)
	return models.MenuItem{
		ID:          id,
		ItemName:    "dish " + id,
		Description: "a dish",
		Category:    course,
		Price:       p,
		Intensity:   models.IntensityForPrice(p),
		Image:       "https://example.com/" + id + ".jpg",
		Ingredients: []string{"salt"},
	}
}

func sequentialIDs() Option {
	n := 0
	return WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("gen-%d", n)
	})
}

func validDraft() models.Draft {
	return models.Draft{
		ItemName:    "Tomato Tart",
		Description: "Heirloom tomatoes on puff pastry",
		Category:    "STARTER",
		Price:       "95",
		Image:       "https://example.com/tart.jpg",
		Ingredients: " Tomato, Basil ,  , Olive Oil",
	}
}

func newTestStore(t *testing.T, seed ...models.MenuItem) *Store {
	t.Helper()
	s, err := NewStore(seed, sequentialIDs())
	require.NoError(t, err)
	return s
}

func ids(items []models.MenuItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestNewStore_RejectsDuplicateSeedIDs(t *testing.T) {
	_, err := NewStore([]models.MenuItem{
		seedItem("1", models.CourseMain, 100),
		seedItem("1", models.CourseStarter, 50),
	})

	var dup *DuplicateIDError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "1", dup.ID)
}

func TestNewStore_CopiesSeed(t *testing.T) {
	seed := []models.MenuItem{seedItem("1", models.CourseMain, 100)}
	s := newTestStore(t, seed...)

	seed[0].ItemName = "changed"
	seed[0].Ingredients[0] = "pepper"

	got, ok := s.Get("1")
	require.True(t, ok)
	assert.Equal(t, "dish 1", got.ItemName)
	assert.Equal(t, []string{"salt"}, got.Ingredients)
}

func TestAddItem_AppendsOneItemAtTheEnd(t *testing.T) {
	s := newTestStore(t,
		seedItem("1", models.CourseMain, 100),
		seedItem("2", models.CourseDessert, 80),
	)
	before := s.Len()

	item, err := s.AddItem(validDraft())
	require.NoError(t, err)

	assert.Equal(t, before+1, s.Len())
	items := s.Items()
	assert.Equal(t, item, items[len(items)-1])

	assert.Equal(t, "gen-1", item.ID)
	assert.Equal(t, "Tomato Tart", item.ItemName)
	assert.Equal(t, models.CourseStarter, item.Category)
	assert.True(t, item.Price.Equal(decimal.NewFromInt(95)))
	assert.Equal(t, models.IntensityMild, item.Intensity)
	assert.Equal(t, []string{"Tomato", "Basil", "Olive Oil"}, item.Ingredients)
}

func TestAddItem_AcceptsFormLabelsForCategory(t *testing.T) {
	s := newTestStore(t)

	for label, want := range map[string]models.Course{
		"Starter":   models.CourseStarter,
		"Main Meal": models.CourseMain,
		"main":      models.CourseMain,
		"Dessert":   models.CourseDessert,
	} {
		d := validDraft()
		d.Category = label
		item, err := s.AddItem(d)
		require.NoError(t, err, label)
		assert.Equal(t, want, item.Category, label)
	}
}

func TestAddItem_ValidationLeavesCatalogUnchanged(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Draft)
		check  func(t *testing.T, err error)
	}{
		{
			name:   "missing name",
			mutate: func(d *models.Draft) { d.ItemName = "" },
			check: func(t *testing.T, err error) {
				var mf *MissingFieldError
				require.ErrorAs(t, err, &mf)
				assert.Equal(t, []string{FieldItemName}, mf.Fields)
			},
		},
		{
			name: "several missing fields are reported together",
			mutate: func(d *models.Draft) {
				d.Description = "   "
				d.Price = ""
				d.Image = ""
			},
			check: func(t *testing.T, err error) {
				var mf *MissingFieldError
				require.ErrorAs(t, err, &mf)
				assert.Equal(t, []string{FieldDescription, FieldPrice, FieldImage}, mf.Fields)
				assert.Equal(t, FieldDescription, mf.Field())
			},
		},
		{
			name:   "missing category",
			mutate: func(d *models.Draft) { d.Category = "" },
			check: func(t *testing.T, err error) {
				var mf *MissingFieldError
				require.ErrorAs(t, err, &mf)
				assert.Equal(t, []string{FieldCategory}, mf.Fields)
			},
		},
		{
			name:   "unknown category",
			mutate: func(d *models.Draft) { d.Category = "BRUNCH" },
			check: func(t *testing.T, err error) {
				var ic *InvalidCategoryError
				require.ErrorAs(t, err, &ic)
				assert.Equal(t, "BRUNCH", ic.Raw)
				assert.Equal(t, FieldCategory, ic.Field())
			},
		},
		{
			name:   "non numeric price",
			mutate: func(d *models.Draft) { d.Price = "abc" },
			check: func(t *testing.T, err error) {
				var ip *InvalidPriceError
				require.ErrorAs(t, err, &ip)
				assert.Equal(t, "abc", ip.Raw)
			},
		},
		{
			name:   "zero price",
			mutate: func(d *models.Draft) { d.Price = "0" },
			check: func(t *testing.T, err error) {
				var ip *InvalidPriceError
				require.ErrorAs(t, err, &ip)
			},
		},
		{
			name:   "negative price",
			mutate: func(d *models.Draft) { d.Price = "-12.50" },
			check: func(t *testing.T, err error) {
				var ip *InvalidPriceError
				require.ErrorAs(t, err, &ip)
				assert.Equal(t, FieldPrice, ip.Field())
			},
		},
		{
			name:   "huge exponent",
			mutate: func(d *models.Draft) { d.Price = "1e200000000" },
			check: func(t *testing.T, err error) {
				var ip *InvalidPriceError
				require.ErrorAs(t, err, &ip)
				assert.Equal(t, "1e200000000", ip.Raw)
			},
		},
		{
			name:   "tiny exponent",
			mutate: func(d *models.Draft) { d.Price = "1e-200000000" },
			check: func(t *testing.T, err error) {
				var ip *InvalidPriceError
				require.ErrorAs(t, err, &ip)
			},
		},
		{
			name:   "above the price ceiling",
			mutate: func(d *models.Draft) { d.Price = "1000000.01" },
			check: func(t *testing.T, err error) {
				var ip *InvalidPriceError
				require.ErrorAs(t, err, &ip)
			},
		},
		{
			name:   "not a number",
			mutate: func(d *models.Draft) { d.Price = "NaN" },
			check: func(t *testing.T, err error) {
				var ip *InvalidPriceError
				require.ErrorAs(t, err, &ip)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t,
				seedItem("1", models.CourseMain, 100),
				seedItem("2", models.CourseStarter, 40),
			)
			before := s.Items()

			d := validDraft()
			tt.mutate(&d)
			item, err := s.AddItem(d)

			require.Error(t, err)
			assert.True(t, IsValidationError(err))
			assert.Equal(t, models.MenuItem{}, item)
			tt.check(t, err)
			assert.Equal(t, before, s.Items())
		})
	}
}

func TestAddItem_RetriesOnIDCollision(t *testing.T) {
	generated := []string{"1", "1", "fresh"}
	s, err := NewStore([]models.MenuItem{seedItem("1", models.CourseMain, 100)},
		WithIDGenerator(func() string {
			id := generated[0]
			generated = generated[1:]
			return id
		}))
	require.NoError(t, err)

	item, err := s.AddItem(validDraft())
	require.NoError(t, err)
	assert.Equal(t, "fresh", item.ID)
}

func TestAddItem_GivesUpWhenIDsKeepColliding(t *testing.T) {
	s, err := NewStore([]models.MenuItem{seedItem("1", models.CourseMain, 100)},
		WithIDGenerator(func() string { return "1" }))
	require.NoError(t, err)

	_, err = s.AddItem(validDraft())
	assert.ErrorIs(t, err, ErrIDExhausted)
	assert.Equal(t, 1, s.Len())
}

func TestAddItem_DefaultIDsAreUnique(t *testing.T) {
	s, err := NewStore(nil)
	require.NoError(t, err)

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		item, err := s.AddItem(validDraft())
		require.NoError(t, err)
		require.False(t, seen[item.ID], "duplicate id %s", item.ID)
		seen[item.ID] = true
	}
}

func TestRemoveItem_IsIdempotent(t *testing.T) {
	for _, id := range []string{"2", "missing"} {
		t.Run(id, func(t *testing.T) {
			once := newTestStore(t,
				seedItem("1", models.CourseMain, 100),
				seedItem("2", models.CourseStarter, 40),
				seedItem("3", models.CourseDessert, 60),
			)
			twice := newTestStore(t, once.Items()...)

			once.RemoveItem(id)
			twice.RemoveItem(id)
			assert.False(t, twice.RemoveItem(id))

			assert.Equal(t, once.Items(), twice.Items())
		})
	}
}

func TestRemoveItem_KeepsRelativeOrder(t *testing.T) {
	s := newTestStore(t,
		seedItem("1", models.CourseMain, 100),
		seedItem("2", models.CourseStarter, 40),
		seedItem("3", models.CourseDessert, 60),
		seedItem("4", models.CourseMain, 150),
	)

	assert.True(t, s.RemoveItem("2"))
	assert.Equal(t, []string{"1", "3", "4"}, ids(s.Items()))

	_, ok := s.Get("2")
	assert.False(t, ok)
}

func TestFilterByCategory(t *testing.T) {
	s := newTestStore(t,
		seedItem("1", models.CourseMain, 100),
		seedItem("2", models.CourseStarter, 40),
		seedItem("3", models.CourseMain, 60),
		seedItem("4", models.CourseStarter, 150),
		seedItem("5", models.CourseMain, 75),
	)

	assert.Equal(t, []string{"1", "3", "5"}, ids(s.FilterByCategory(models.CourseMain)))
	assert.Equal(t, []string{"2", "4"}, ids(s.FilterByCategory(models.CourseStarter)))

	desserts := s.FilterByCategory(models.CourseDessert)
	assert.NotNil(t, desserts)
	assert.Empty(t, desserts)

	for _, course := range models.Courses {
		for _, item := range s.FilterByCategory(course) {
			assert.Equal(t, course, item.Category)
		}
	}
}

func TestAveragePrice(t *testing.T) {
	s := newTestStore(t,
		seedItem("1", models.CourseMain, 100),
		seedItem("2", models.CourseMain, 200),
		seedItem("3", models.CourseStarter, 10),
		seedItem("4", models.CourseStarter, 10),
		seedItem("5", models.CourseStarter, 11),
	)

	assert.Equal(t, "150.00", s.AveragePrice(models.CourseMain))
	assert.Equal(t, "10.33", s.AveragePrice(models.CourseStarter))
	assert.Equal(t, "0.00", s.AveragePrice(models.CourseDessert))

	assert.Equal(t, map[models.Course]string{
		models.CourseStarter: "10.33",
		models.CourseMain:    "150.00",
		models.CourseDessert: "0.00",
	}, s.Averages())
}

func TestAveragePrice_TracksMutations(t *testing.T) {
	s := newTestStore(t, seedItem("1", models.CourseDessert, 85))
	assert.Equal(t, "85.00", s.AveragePrice(models.CourseDessert))

	d := validDraft()
	d.Category = "DESSERT"
	d.Price = "90.5"
	_, err := s.AddItem(d)
	require.NoError(t, err)
	assert.Equal(t, "87.75", s.AveragePrice(models.CourseDessert))

	s.RemoveItem("1")
	assert.Equal(t, "90.50", s.AveragePrice(models.CourseDessert))
}

func TestCounts(t *testing.T) {
	s := newTestStore(t,
		seedItem("1", models.CourseMain, 100),
		seedItem("2", models.CourseMain, 200),
		seedItem("3", models.CourseStarter, 10),
	)

	assert.Equal(t, map[models.Course]int{
		models.CourseStarter: 1,
		models.CourseMain:    2,
		models.CourseDessert: 0,
	}, s.Counts())
}

func TestParsePrice_Accepts(t *testing.T) {
	for raw, want := range map[string]string{
		"85":            "85.00",
		" 12.5 ":        "12.50",
		"1e6":           "1000000.00",
		"1000000":       "1000000.00",
		"0.0000000001":  "0.00",
		"120.500000000": "120.50",
	} {
		price, err := ParsePrice(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, price.StringFixed(2), raw)
	}
}

func TestItems_ReturnsACopy(t *testing.T) {
	s := newTestStore(t, seedItem("1", models.CourseMain, 100))

	items := s.Items()
	items[0].ItemName = "mutated"
	items[0].Ingredients[0] = "mutated"

	got, _ := s.Get("1")
	assert.Equal(t, "dish 1", got.ItemName)
	assert.Equal(t, []string{"salt"}, got.Ingredients)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s, err := NewStore(nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				item, err := s.AddItem(validDraft())
				if err != nil {
					t.Error(err)
					return
				}
				s.AveragePrice(models.CourseStarter)
				if j%5 == 0 {
					s.RemoveItem(item.ID)
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 8*20, s.Len())
}

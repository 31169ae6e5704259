package factories

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/chrisdamba/chefmenu/internal/models"
	"github.com/jaswdr/faker"
	"github.com/shopspring/decimal"
)

type seedDish struct {
	id          string
	name        string
	description string
	course      models.Course
	price       int64
	image       string
	ingredients []string
}

var seedDishes = []seedDish{
	{
		id:          "1",
		name:        "Truffle-infused Butternut Velouté",
		description: "A silky butternut squash velouté infused with black truffle oil, topped with a parmesan crisp and micro herbs.",
		course:      models.CourseStarter,
		price:       135,
		image:       "https://i.pinimg.com/736x/75/06/bf/7506bfc83b8d887bb61a01234faf043b.jpg",
		ingredients: []string{"Butternut Squash", "Black Truffle Oil", "Parmesan Cheese", "Greek yogurt"},
	},
	{
		id:          "2",
		name:        "Pan-Seared Lamb Fillet with Red wine",
		description: "Tender lamb fillet seared to perfection, served on truffle mash and roasted veggies.",
		course:      models.CourseMain,
		price:       205,
		image:       "https://i.pinimg.com/736x/7d/d5/92/7dd5929d174fb21896489115a6079cef.jpg",
		ingredients: []string{"lamb fillet", "red wine", "mash potatoes", "baby carrots"},
	},
	{
		id:          "3",
		name:        "Crème Brûlée",
		description: "Silky smooth vanilla custard topped with caramelized sugar, served chilled with fresh berries.",
		course:      models.CourseDessert,
		price:       85,
		image:       "https://i.pinimg.com/736x/26/50/94/2650949dbac59547bc807f9483273369.jpg",
		ingredients: []string{"heavy cream", "egg yolks", "vanilla bean", "sugar"},
	},
	{
		id:          "4",
		name:        "Caviar",
		description: "Chilled caviar on buckwheat blini with crème fraîche and chives.",
		course:      models.CourseStarter,
		price:       85,
		image:       "https://images.pexels.com/photos/4973825/pexels-photo-4973825.jpeg",
		ingredients: []string{"caviar", "blini", "crème fraîche", "chives"},
	},
	{
		id:          "5",
		name:        "Chicken Roast",
		description: "Herb roasted free-range chicken with crisp potatoes and pan jus.",
		course:      models.CourseMain,
		price:       85,
		image:       "https://images.pexels.com/photos/2338407/pexels-photo-2338407.jpeg",
		ingredients: []string{"chicken", "thyme", "potatoes", "garlic"},
	},
	{
		id:          "6",
		name:        "Brownie",
		description: "Warm dark chocolate brownie with vanilla bean ice cream.",
		course:      models.CourseDessert,
		price:       85,
		image:       "https://images.pexels.com/photos/2067396/pexels-photo-2067396.jpeg",
		ingredients: []string{"dark chocolate", "butter", "eggs", "sugar"},
	},
	{
		id:          "7",
		name:        "Sea Weed Wrap",
		description: "Crisp nori wrapped around pickled vegetables and sesame rice.",
		course:      models.CourseStarter,
		price:       85,
		image:       "https://images.pexels.com/photos/10167647/pexels-photo-10167647.jpeg",
		ingredients: []string{"nori", "rice", "pickled carrot", "sesame"},
	},
	{
		id:          "8",
		name:        "Beef Lasagne",
		description: "Layers of fresh pasta, slow cooked beef ragù and béchamel.",
		course:      models.CourseMain,
		price:       85,
		image:       "https://images.pexels.com/photos/31119071/pexels-photo-31119071.jpeg",
		ingredients: []string{"beef mince", "pasta sheets", "tomato", "béchamel"},
	},
	{
		id:          "9",
		name:        "Strawberry and Cream",
		description: "Macerated strawberries with chantilly cream and shortbread crumb.",
		course:      models.CourseDessert,
		price:       85,
		image:       "https://images.pexels.com/photos/7966061/pexels-photo-7966061.jpeg",
		ingredients: []string{"strawberries", "cream", "shortbread", "sugar"},
	},
}

// SeedMenu returns the house menu every session starts with.
func SeedMenu() []models.MenuItem {
	items := make([]models.MenuItem, len(seedDishes))
	for i, d := range seedDishes {
		price := decimal.NewFromInt(d.price)
		items[i] = models.MenuItem{
			ID:          d.id,
			ItemName:    d.name,
			Description: d.description,
			Category:    d.course,
			Price:       price,
			Intensity:   models.IntensityForPrice(price),
			Image:       d.image,
			Ingredients: append([]string(nil), d.ingredients...),
		}
	}
	return items
}

var dishesByCourse = map[models.Course][]string{
	models.CourseStarter: {"Tom Yum Soup", "Greek Salad", "Tempura", "Miso Soup", "Hummus", "Grilled Halloumi", "Guacamole", "Dumplings"},
	models.CourseMain:    {"Chicken Tikka Masala", "Beef Bourguignon", "Coq au Vin", "Grilled Salmon", "Spaghetti Carbonara", "Moussaka", "Pad Thai", "Mixed Grill Platter"},
	models.CourseDessert: {"Tiramisu", "Baklava", "Mango Sticky Rice", "Apple Pie", "Crème Brûlée", "Chocolate Shake"},
}

// price range per course, in whole currency units
var priceRanges = map[models.Course][2]int{
	models.CourseStarter: {40, 160},
	models.CourseMain:    {90, 320},
	models.CourseDessert: {35, 140},
}

var allIngredients = []string{"Chicken", "Beef", "Pork", "Fish", "Tofu", "Cheese", "Tomato", "Lettuce", "Onion", "Garlic", "Bread", "Rice", "Pasta", "Egg", "Milk"}

// MenuItemFactory produces random but valid add-item drafts.
type MenuItemFactory struct {
	fake faker.Faker
	rng  *rand.Rand
}

func NewMenuItemFactory(seed int64) *MenuItemFactory {
	return &MenuItemFactory{
		fake: faker.NewWithSeed(rand.NewSource(seed)),
		rng:  rand.New(rand.NewSource(seed)),
	}
}

func (mf *MenuItemFactory) CreateDraft() models.Draft {
	course := models.Courses[mf.rng.Intn(len(models.Courses))]
	return mf.CreateDraftFor(course)
}

func (mf *MenuItemFactory) CreateDraftFor(course models.Course) models.Draft {
	bounds := priceRanges[course]
	price := mf.fake.Float64(2, bounds[0], bounds[1])

	return models.Draft{
		ItemName:    mf.generateDishName(course),
		Description: mf.fake.Lorem().Sentence(10),
		Category:    string(course),
		Price:       fmt.Sprintf("%.2f", price),
		Image:       mf.fake.Internet().URL(),
		Ingredients: strings.Join(mf.generateRandomIngredients(), ", "),
	}
}

// CreateDrafts returns n drafts with courses picked at random.
func (mf *MenuItemFactory) CreateDrafts(n int) []models.Draft {
	drafts := make([]models.Draft, n)
	for i := range drafts {
		drafts[i] = mf.CreateDraft()
	}
	return drafts
}

func (mf *MenuItemFactory) generateRandomIngredients() []string {
	ingredientCount := mf.rng.Intn(5) + 2 // 2 to 6 ingredients
	ingredients := make([]string, ingredientCount)
	for i := 0; i < ingredientCount; i++ {
		ingredients[i] = allIngredients[mf.rng.Intn(len(allIngredients))]
	}
	return ingredients
}

func (mf *MenuItemFactory) generateDishName(course models.Course) string {
	if names, ok := dishesByCourse[course]; ok {
		return names[mf.rng.Intn(len(names))]
	}
	return "Special of the Day"
}

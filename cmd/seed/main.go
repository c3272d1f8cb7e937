package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/forkful/backend/config"
	"github.com/forkful/backend/internal/database"
	"github.com/forkful/backend/internal/form"
	"github.com/forkful/backend/internal/models"
	"github.com/forkful/backend/internal/service"
)

type seedRecipe struct {
	title        string
	description  string
	ingredients  []string
	steps        []string
	prepTimeMins string
	cookTimeMins string
	category     string
}

var seedRecipes = []seedRecipe{
	{
		title:        "Classic Margherita Pizza",
		description:  "A simple Neapolitan-style pizza with fresh basil.",
		ingredients:  []string{"Pizza dough", "Tomato sauce", "Fresh mozzarella", "Basil leaves", "Olive oil"},
		steps:        []string{"Preheat oven to 250C with a pizza stone", "Stretch the dough", "Top with sauce and mozzarella", "Bake until blistered", "Finish with basil and olive oil"},
		prepTimeMins: "20",
		cookTimeMins: "10",
		category:     "Dinner",
	},
	{
		title:        "Overnight Oats",
		description:  "Make-ahead breakfast with oats and berries.",
		ingredients:  []string{"Rolled oats", "Milk", "Greek yogurt", "Honey", "Mixed berries"},
		steps:        []string{"Combine oats, milk, yogurt and honey in a jar", "Refrigerate overnight", "Top with berries before serving"},
		prepTimeMins: "5",
		category:     "Breakfast",
	},
	{
		title:       "Garlic Butter Shrimp",
		ingredients: []string{"Shrimp", "Butter", "Garlic", "Lemon", "Parsley"},
		steps:       []string{"Melt butter and soften the garlic", "Add shrimp and cook until pink", "Squeeze in lemon and scatter parsley"},
		category:    "Dinner",
	},
	{
		title:        "Lemon Drizzle Cake",
		description:  "Moist sponge soaked in lemon syrup.",
		ingredients:  []string{"Butter", "Sugar", "Eggs", "Self-raising flour", "Lemons"},
		steps:        []string{"Cream butter and sugar", "Beat in eggs and fold in flour", "Bake at 180C for 45 minutes", "Poke holes and pour over lemon syrup"},
		prepTimeMins: "15",
		cookTimeMins: "45",
		category:     "Dessert",
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Demo account; skipped when it already exists.
	var user models.User
	err = db.Where("email = ?", "demo@forkful.app").First(&user).Error
	if err != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}
		user = models.User{Email: "demo@forkful.app", PasswordHash: string(hash)}
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("failed to create demo user: %v", err)
		}
		profile := models.Profile{ID: user.ID, DisplayName: "Demo Cook"}
		if err := db.Create(&profile).Error; err != nil {
			log.Fatalf("failed to create demo profile: %v", err)
		}
		log.Printf("created demo user %s", user.Email)
	}

	recipeService := service.NewRecipeService(db, nil)
	ctx := context.Background()

	// Each seed goes through the same form pipeline real submissions use.
	for _, seed := range seedRecipes {
		f := form.NewRecipeForm()
		f.Title = seed.title
		f.Description = seed.description
		f.Ingredients = form.NewListEditor(seed.ingredients)
		f.Steps = form.NewListEditor(seed.steps)
		f.PrepTimeMins = seed.prepTimeMins
		f.CookTimeMins = seed.cookTimeMins
		f.Category = seed.category

		values, err := f.Submit()
		if err != nil {
			log.Fatalf("seed recipe %q failed validation: %v", seed.title, err)
		}
		input, err := form.ParseRecipeForm(values)
		if err != nil {
			log.Fatalf("seed recipe %q failed to parse: %v", seed.title, err)
		}

		recipe, err := recipeService.Create(ctx, user.ID, input)
		if err != nil {
			log.Fatalf("failed to create recipe %q: %v", seed.title, err)
		}
		log.Printf("seeded recipe %s (%s)", recipe.Title, recipe.ID)
	}

	log.Printf("seeded %d recipes", len(seedRecipes))
}

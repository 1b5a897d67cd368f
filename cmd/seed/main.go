package main

import (
	"context"
	"fmt"
	"log"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipe-catalog/backend/config"
	"github.com/pageza/recipe-catalog/backend/internal/cache"
	"github.com/pageza/recipe-catalog/backend/internal/database"
	"github.com/pageza/recipe-catalog/backend/internal/logger"
	"github.com/pageza/recipe-catalog/backend/internal/models"
	"github.com/pageza/recipe-catalog/backend/internal/repository"
)

type ingredientSeed struct {
	key   string
	unit  string
	names map[string]string
}

type recipeSeed struct {
	titles      map[string]string
	steps       []string
	ingredients []string
	minutes     int
	difficulty  string
	rating      float64
}

var ingredientSeeds = []ingredientSeed{
	{"tomato", "piece", map[string]string{"tr": "Domates", "en": "Tomato"}},
	{"onion", "piece", map[string]string{"tr": "Soğan", "en": "Onion"}},
	{"egg", "piece", map[string]string{"tr": "Yumurta", "en": "Egg"}},
	{"pepper", "piece", map[string]string{"tr": "Biber", "en": "Pepper"}},
	{"olive_oil", "tbsp", map[string]string{"tr": "Zeytinyağı", "en": "Olive oil"}},
	{"bulgur", "cup", map[string]string{"tr": "Bulgur"}},
	{"lentil", "cup", map[string]string{"tr": "Mercimek", "en": "Lentil"}},
	{"parsley", "bunch", map[string]string{"tr": "Maydanoz", "en": "Parsley"}},
}

var recipeSeeds = []recipeSeed{
	{
		titles:      map[string]string{"tr": "Menemen", "en": "Turkish Scrambled Eggs"},
		steps:       []string{"Chop the vegetables", "Soften them in oil", "Add the eggs and stir"},
		ingredients: []string{"tomato", "onion", "egg", "pepper", "olive_oil"},
		minutes:     20,
		difficulty:  "easy",
		rating:      4.7,
	},
	{
		titles:      map[string]string{"tr": "Çoban Salatası"},
		steps:       []string{"Dice everything", "Dress with oil"},
		ingredients: []string{"tomato", "onion", "pepper", "parsley", "olive_oil"},
		minutes:     10,
		difficulty:  "easy",
		rating:      4.2,
	},
	{
		titles:      map[string]string{"tr": "Mercimek Çorbası", "en": "Lentil Soup"},
		steps:       []string{"Sauté the onion", "Simmer the lentils", "Blend until smooth"},
		ingredients: []string{"lentil", "onion", "olive_oil"},
		minutes:     40,
		difficulty:  "medium",
		rating:      4.9,
	},
	{
		titles:      map[string]string{"tr": "Bulgur Pilavı", "en": "Bulgur Pilaf"},
		steps:       []string{"Toast the bulgur", "Add tomato and water", "Rest covered"},
		ingredients: []string{"bulgur", "tomato", "onion", "pepper"},
		minutes:     30,
		difficulty:  "easy",
		rating:      4.4,
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	zl, err := logger.New(cfg.Log.Level, cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	db, err := database.Open(cfg.DB, zl)
	if err != nil {
		zl.Fatal("failed to open database", zap.Error(err))
	}

	// Writes bump the match cache generation when redis is reachable
	if redisClient, err := database.NewRedisClient(cfg.Redis, zl); err == nil {
		defer func() { _ = redisClient.Close() }()
		if err := database.RegisterInvalidationHooks(db, cache.NewRedisMatchCache(redisClient, cfg.Cache.TTL), zl); err != nil {
			zl.Fatal("failed to register cache hooks", zap.Error(err))
		}
	} else {
		zl.Warn("redis unavailable, cached match results may be stale", zap.Error(err))
	}

	ctx := context.Background()
	if cfg.DB.AutoMigrate {
		if err := database.RunMigrations(ctx, db, "migrations", zl); err != nil {
			zl.Fatal("failed to migrate database", zap.Error(err))
		}
	}

	if err := seed(ctx, db); err != nil {
		zl.Fatal("failed to seed catalog", zap.Error(err))
	}
	zl.Info("catalog seeded",
		zap.Int("ingredients", len(ingredientSeeds)),
		zap.Int("recipes", len(recipeSeeds)))
}

// seed inserts the demo catalog. Turkish is the system default so that
// English requests exercise the fallback chain.
func seed(ctx context.Context, db *gorm.DB) error {
	langs := []models.Language{
		{Code: "tr", Name: "Türkçe", IsActive: true, IsDefault: true},
		{Code: "en", Name: "English", IsActive: true},
	}
	if err := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&langs).Error; err != nil {
		return fmt.Errorf("failed to seed languages: %w", err)
	}
	if err := repository.NewLanguageStore(db).SetDefault(ctx, "tr"); err != nil {
		return fmt.Errorf("failed to set default language: %w", err)
	}

	store := repository.NewTranslationStore(db)
	ids := make(map[string]models.Ingredient, len(ingredientSeeds))
	for _, s := range ingredientSeeds {
		ing := models.Ingredient{IsActive: true, DefaultUnit: s.unit}
		if err := db.WithContext(ctx).Create(&ing).Error; err != nil {
			return fmt.Errorf("failed to seed ingredient %s: %w", s.key, err)
		}
		for lang, name := range s.names {
			t := &models.IngredientTranslation{IngredientID: ing.ID, LanguageCode: lang, Name: name}
			if err := store.SaveIngredientTranslation(ctx, t); err != nil {
				return fmt.Errorf("failed to seed ingredient %s: %w", s.key, err)
			}
		}
		ids[s.key] = ing
	}

	for _, s := range recipeSeeds {
		r := models.Recipe{
			IsPublished:        true,
			IsActive:           true,
			CookingTimeMinutes: s.minutes,
			DifficultyLevel:    s.difficulty,
			AverageRating:      s.rating,
		}
		for i, key := range s.ingredients {
			ing, ok := ids[key]
			if !ok {
				return fmt.Errorf("recipe %q uses unknown ingredient %q", s.titles["tr"], key)
			}
			r.Ingredients = append(r.Ingredients, models.RecipeIngredient{
				IngredientID: ing.ID,
				Quantity:     1,
				Unit:         ing.DefaultUnit,
				IsRequired:   true,
				SortOrder:    i,
			})
		}
		if err := db.WithContext(ctx).Create(&r).Error; err != nil {
			return fmt.Errorf("failed to seed recipe %q: %w", s.titles["tr"], err)
		}
		for lang, title := range s.titles {
			t := &models.RecipeTranslation{RecipeID: r.ID, LanguageCode: lang, Title: title, Steps: s.steps}
			if err := store.SaveRecipeTranslation(ctx, t); err != nil {
				return fmt.Errorf("failed to seed recipe %q: %w", title, err)
			}
		}
	}
	return nil
}

package db

import (
	"log"
	"os"

	"coltrane/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=coltrane port=5432 sslmode=disable"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	seedData()
}

// Migrate creates or updates the schema for every model. Split out from Init
// so tests can run it against their own database handle.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Entry{},
		&models.Link{},
		&models.Comment{},
		&models.Page{},
		// Snippet application models
		&models.Language{},
		&models.Snippet{},
		&models.Bookmark{},
		&models.Rating{},
	)
}

func seedData() {
	var count int64
	DB.Model(&models.Language{}).Count(&count)
	if count > 0 {
		log.Println("Languages already seeded, skipping")
		return
	}

	languages := []models.Language{
		{Name: "Python", Slug: "python"},
		{Name: "Go", Slug: "go"},
		{Name: "JavaScript", Slug: "javascript"},
		{Name: "SQL", Slug: "sql"},
		{Name: "Shell", Slug: "shell"},
	}
	for _, lang := range languages {
		if err := DB.Create(&lang).Error; err != nil {
			log.Printf("Failed to create language %s: %v", lang.Name, err)
		}
	}

	categories := []models.Category{
		{Title: "General", Slug: "general", Description: "Posts that fit nowhere else."},
		{Title: "Programming", Slug: "programming", Description: "Code, tools and practice."},
	}
	for _, cat := range categories {
		if err := DB.Create(&cat).Error; err != nil {
			log.Printf("Failed to create category %s: %v", cat.Title, err)
		}
	}
	log.Println("Initial seed data created successfully")
}

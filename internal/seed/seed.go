// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"pinpoint/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeder populates the database with fake users, places, and comments.
type Seeder struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll wipes seedable tables. Postgres gets a TRUNCATE CASCADE; other
// drivers (sqlite in dev) fall back to plain deletes.
func (s *Seeder) ClearAll() error {
	if s.db.Dialector.Name() == "postgres" {
		return s.db.Exec("TRUNCATE TABLE comments, places, auth_tokens, users RESTART IDENTITY CASCADE").Error
	}
	for _, table := range []string{"comments", "places", "auth_tokens", "users"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

// CreateUser constructs and persists a sample user. Every seeded user gets
// the password "password123". Optional override functions may modify the
// generated user before saving.
func (s *Seeder) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Password: string(hashedPassword),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePlace constructs and persists a sample place owned by user.
func (s *Seeder) CreatePlace(user *models.User, overrides ...func(*models.Place)) (*models.Place, error) {
	place := &models.Place{
		UserID:      user.ID,
		Name:        gofakeit.City() + " " + gofakeit.NounConcrete(),
		Description: gofakeit.Paragraph(1, 3, 8, "\n"),
		Address:     gofakeit.Street() + ", " + gofakeit.City(),
		Latitude:    gofakeit.Latitude(),
		Longitude:   gofakeit.Longitude(),
	}

	// realistic created_at spread over the last 90 days
	daysBack := s.rand.Intn(90)
	hoursBack := s.rand.Intn(24)
	place.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(place)
	}

	if err := s.db.Create(place).Error; err != nil {
		return nil, err
	}
	return place, nil
}

// CreateComment constructs and persists a sample comment.
func (s *Seeder) CreateComment(user *models.User, place *models.Place, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		UserID:  user.ID,
		PlaceID: place.ID,
		Text:    gofakeit.Sentence(s.rand.Intn(15) + 3),
	}

	for _, override := range overrides {
		override(comment)
	}

	if err := s.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// Run seeds numUsers users, each with a handful of places, and scatters
// comments from random users across them.
func (s *Seeder) Run(numUsers, numPlaces, numComments int) error {
	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user, err := s.CreateUser()
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("Seeded %d users", len(users))

	places := make([]*models.Place, 0, numPlaces)
	for i := 0; i < numPlaces; i++ {
		owner := users[s.rand.Intn(len(users))]
		place, err := s.CreatePlace(owner)
		if err != nil {
			return fmt.Errorf("seed place: %w", err)
		}
		places = append(places, place)
	}
	log.Printf("Seeded %d places", len(places))

	for i := 0; i < numComments; i++ {
		author := users[s.rand.Intn(len(users))]
		place := places[s.rand.Intn(len(places))]
		if _, err := s.CreateComment(author, place); err != nil {
			return fmt.Errorf("seed comment: %w", err)
		}
	}
	log.Printf("Seeded %d comments", numComments)

	return nil
}

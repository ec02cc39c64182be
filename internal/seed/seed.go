// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"plume/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seed populates the database with fake users, posts, comments, and follow
// edges on top of the built-in groups.
func Seed(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())
	log.Printf("Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway")
		}
	}

	if err := Groups(db); err != nil {
		return fmt.Errorf("failed to seed groups: %w", err)
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d users created", len(users))

	posts, err := createPosts(db, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("%d posts created", len(posts))

	if err := createComments(db, users, posts); err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}

	if err := createFollows(db, users); err != nil {
		return fmt.Errorf("failed to create follow edges: %w", err)
	}

	log.Println("Database seeding completed")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE comments, follows, posts, groups, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(db *gorm.DB, count int) ([]models.User, error) {
	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		first := gofakeit.FirstName()
		last := gofakeit.LastName()
		users = append(users, models.User{
			Username:    fmt.Sprintf("%s%s%d", first, last, gofakeit.Number(10, 999)),
			DisplayName: first + " " + last,
		})
	}
	if err := db.Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func createPosts(db *gorm.DB, users []models.User, count int) ([]models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}

	var groups []models.Group
	if err := db.Find(&groups).Error; err != nil {
		return nil, err
	}

	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	posts := make([]models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[r.Intn(len(users))]
		post := models.Post{
			Text:      gofakeit.Paragraph(1, 3, 8, "\n"),
			AuthorID:  author.ID,
			CreatedAt: time.Now().Add(-time.Duration(r.Intn(90*24)) * time.Hour),
		}
		// Roughly a third of posts go into a group.
		if len(groups) > 0 && r.Intn(3) == 0 {
			groupID := groups[r.Intn(len(groups))].ID
			post.GroupID = &groupID
		}
		posts = append(posts, post)
	}
	if err := db.Create(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func createComments(db *gorm.DB, users []models.User, posts []models.Post) error {
	if len(users) == 0 || len(posts) == 0 {
		return nil
	}

	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	var comments []models.Comment
	for _, post := range posts {
		for i := 0; i < r.Intn(4); i++ {
			comments = append(comments, models.Comment{
				Text:      gofakeit.Sentence(8),
				PostID:    post.ID,
				AuthorID:  users[r.Intn(len(users))].ID,
				CreatedAt: post.CreatedAt.Add(time.Duration(1+r.Intn(600)) * time.Minute),
			})
		}
	}
	if len(comments) == 0 {
		return nil
	}
	return db.Create(&comments).Error
}

func createFollows(db *gorm.DB, users []models.User) error {
	if len(users) < 2 {
		return nil
	}

	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	var follows []models.Follow
	for _, user := range users {
		for i := 0; i < r.Intn(5); i++ {
			author := users[r.Intn(len(users))]
			if author.ID == user.ID {
				continue
			}
			follows = append(follows, models.Follow{UserID: user.ID, AuthorID: author.ID})
		}
	}
	if len(follows) == 0 {
		return nil
	}
	// Random picks may repeat a pair; the unique index absorbs them.
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&follows).Error
}

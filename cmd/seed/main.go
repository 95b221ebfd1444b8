// Command seed populates a running server with fake developers, profiles and
// posts through the public API. Useful for demoing the directory and feed.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"devconnect/client"
	"devconnect/internal/model"
)

const defaultPassword = "123456"

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "server base URL")
	users := flag.Int("users", 5, "number of users to create")
	postsPerUser := flag.Int("posts", 3, "posts per user")
	flag.Parse()

	gofakeit.Seed(time.Now().UnixNano())

	api := client.NewAPI(*baseURL)
	ctx := context.Background()

	tokens := make([]string, 0, *users)
	for i := 0; i < *users; i++ {
		name := gofakeit.Name()
		email := gofakeit.Email()

		token, err := api.Register(ctx, name, email, defaultPassword)
		if err != nil {
			log.Fatalf("register %s: %v", email, err)
		}
		log.Printf("registered %s <%s>", name, email)

		if _, err := api.UpsertProfile(ctx, token, fakeProfile()); err != nil {
			log.Fatalf("profile for %s: %v", email, err)
		}

		if _, err := api.AddExperience(ctx, token, fakeExperience()); err != nil {
			log.Fatalf("experience for %s: %v", email, err)
		}
		if _, err := api.AddEducation(ctx, token, fakeEducation()); err != nil {
			log.Fatalf("education for %s: %v", email, err)
		}

		tokens = append(tokens, token)
	}

	// Posts, then cross-user likes and comments.
	var postIDs []int64
	for _, token := range tokens {
		for i := 0; i < *postsPerUser; i++ {
			post, err := api.CreatePost(ctx, token, gofakeit.HipsterSentence(12))
			if err != nil {
				log.Fatalf("create post: %v", err)
			}
			postIDs = append(postIDs, post.ID)
		}
	}

	for _, token := range tokens {
		for _, postID := range postIDs {
			if gofakeit.Bool() {
				if _, err := api.ToggleLike(ctx, token, postID); err != nil {
					log.Fatalf("like post %d: %v", postID, err)
				}
			}
			if gofakeit.Number(0, 2) == 0 {
				if _, err := api.AddComment(ctx, token, postID, gofakeit.HipsterSentence(8)); err != nil {
					log.Fatalf("comment on post %d: %v", postID, err)
				}
			}
		}
	}

	log.Printf("seeded %d users and %d posts", len(tokens), len(postIDs))
}

func fakeProfile() model.UpsertProfileRequest {
	status := gofakeit.JobTitle()
	skills := strings.Join([]string{
		gofakeit.ProgrammingLanguage(),
		gofakeit.ProgrammingLanguage(),
		gofakeit.ProgrammingLanguage(),
	}, ", ")
	company := gofakeit.Company()
	location := fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.Country())
	bio := gofakeit.HipsterSentence(10)
	site := gofakeit.URL()

	return model.UpsertProfileRequest{
		Status:   &status,
		Skills:   &skills,
		Company:  &company,
		Location: &location,
		Bio:      &bio,
		Website:  &site,
	}
}

func fakeExperience() model.AddExperienceRequest {
	desc := gofakeit.HipsterSentence(8)
	return model.AddExperienceRequest{
		Title:       gofakeit.JobTitle(),
		Company:     gofakeit.Company(),
		From:        gofakeit.Date().Format("2006-01-02"),
		Current:     true,
		Description: &desc,
	}
}

func fakeEducation() model.AddEducationRequest {
	field := gofakeit.JobDescriptor()
	return model.AddEducationRequest{
		School:       gofakeit.Company() + " University",
		Degree:       "BSc",
		FieldOfStudy: &field,
		From:         gofakeit.Date().Format("2006-01-02"),
	}
}

package app

import (
	"fmt"

	"cmscore/models"
)

// Seeded is the demo data created by Seed
type Seeded struct {
	Admin models.User
	Users []models.User
	Site  models.Site
	Media models.MediaFile
	Posts []*models.Post
}

// Seed fills an empty App with demo users, a site, media and two posts
func Seed(a *App) (*Seeded, error) {
	seeded := &Seeded{}

	users := []models.User{
		{FirstName: "Admin", LastName: "CMS", Email: "admin@cms.com.br", Username: "admin", Password: "Admin123", Role: models.RoleAdmin},
		{FirstName: "João", LastName: "Silva", Email: "joao@cms.com.br", Username: "user1", Password: "User123", Role: models.RoleUser},
		{FirstName: "Maria", LastName: "Souza", Email: "maria@cms.com.br", Username: "user2", Password: "User123", Role: models.RoleUser},
	}
	for _, user := range users {
		stored, err := a.DB.Users.Add(user)
		if err != nil {
			return nil, fmt.Errorf("failed to seed user %s: %w", user.Username, err)
		}
		seeded.Users = append(seeded.Users, stored)
	}
	seeded.Admin = seeded.Users[0]

	site, err := a.CreateSite(seeded.Admin, "Meu blog", "Um blog de exemplo", models.TemplateLatestPosts)
	if err != nil {
		return nil, fmt.Errorf("failed to seed site: %w", err)
	}
	seeded.Site = site

	media, err := a.UploadMedia(seeded.Admin, site.Id, "praia.jpg", "media/praia.jpg", 1920, 1080, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to seed media: %w", err)
	}
	seeded.Media = media

	ptBr, err := a.Catalog.Resolve("pt-br")
	if err != nil {
		return nil, err
	}
	enUs, err := a.Catalog.Resolve("en-us")
	if err != nil {
		return nil, err
	}

	posts := []struct {
		pt, en models.Content
	}{
		{
			pt: models.Content{Title: "Bem-vindo ao Meu blog", Body: []models.ContentBlock{
				models.TextBlock{Position: 1, Text: "Este é o primeiro post do blog."},
			}},
			en: models.Content{Title: "Welcome to Meu blog", Body: []models.ContentBlock{
				models.TextBlock{Position: 1, Text: "This is the first post of the blog."},
			}},
		},
		{
			pt: models.Content{Title: "Um dia na praia", Body: []models.ContentBlock{
				models.TextBlock{Position: 1, Text: "Fotos do nosso passeio."},
				models.MediaBlock{Position: 2, Media: media, Alt: "Praia ao pôr do sol"},
			}},
			en: models.Content{Title: "A day at the beach", Body: []models.ContentBlock{
				models.TextBlock{Position: 1, Text: "Pictures from our trip."},
				models.MediaBlock{Position: 2, Media: media, Alt: "Beach at sunset"},
			}},
		},
	}

	for _, translations := range posts {
		post := models.NewPost(seeded.Admin, site, a.Now())
		if err := post.AddContent(ptBr, translations.pt); err != nil {
			return nil, err
		}
		if err := post.AddContent(enUs, translations.en); err != nil {
			return nil, err
		}
		stored, err := a.CreatePost(post)
		if err != nil {
			return nil, fmt.Errorf("failed to seed post: %w", err)
		}
		seeded.Posts = append(seeded.Posts, stored)
	}

	return seeded, nil
}

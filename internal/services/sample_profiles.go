package services

import (
	"context"
	"log"

	"github.com/skillswap-app/skillswap-backend/pkg/utils"
)

type sampleProfile struct {
	Name           string
	Email          string
	TeachSkills    []string
	LearnSkills    []string
	ProfilePicture string
}

// sampleProfiles are demo accounts for exercising the matching system.
var sampleProfiles = []sampleProfile{
	{
		Name:           "Alex Johnson",
		Email:          "alex@example.com",
		TeachSkills:    []string{"JavaScript", "React", "Node.js"},
		LearnSkills:    []string{"Python", "Data Science", "Machine Learning"},
		ProfilePicture: "https://images.unsplash.com/photo-1486312338219-ce68d2c6f44d",
	},
	{
		Name:           "Taylor Smith",
		Email:          "taylor@example.com",
		TeachSkills:    []string{"Python", "Data Analysis", "SQL"},
		LearnSkills:    []string{"JavaScript", "React", "Web Design"},
		ProfilePicture: "https://images.unsplash.com/photo-1649972904349-6e44c42644a7",
	},
	{
		Name:           "Jordan Lee",
		Email:          "jordan@example.com",
		TeachSkills:    []string{"UI/UX Design", "Figma", "Adobe XD"},
		LearnSkills:    []string{"JavaScript", "React Native", "Swift"},
		ProfilePicture: "https://images.unsplash.com/photo-1581091226825-a6a2a5aee158",
	},
	{
		Name:           "Casey Rivera",
		Email:          "casey@example.com",
		TeachSkills:    []string{"Data Science", "Machine Learning", "R"},
		LearnSkills:    []string{"UI/UX Design", "Figma", "Product Management"},
		ProfilePicture: "https://images.unsplash.com/photo-1581090464777-f3220bbe1b8b",
	},
	{
		Name:        "Morgan Zhang",
		Email:       "morgan@example.com",
		TeachSkills: []string{"Product Management", "Agile", "Scrum"},
		LearnSkills: []string{"SQL", "Data Analysis", "Tableau"},
	},
	{
		Name:        "Jamie Wilson",
		Email:       "jamie@example.com",
		TeachSkills: []string{"Swift", "iOS Development", "Mobile Design"},
		LearnSkills: []string{"Node.js", "Express", "MongoDB"},
	},
	{
		Name:        "Riley Cooper",
		Email:       "riley@example.com",
		TeachSkills: []string{"Ruby", "Ruby on Rails", "PostgreSQL"},
		LearnSkills: []string{"JavaScript", "React", "TypeScript"},
	},
}

// LoadSampleProfiles inserts the demo accounts, skipping any email that
// already exists. Returns how many profiles were created.
func LoadSampleProfiles(ctx context.Context) (int, error) {
	created := 0
	for _, p := range sampleProfiles {
		existing, err := GetUserByEmail(ctx, p.Email)
		if err != nil {
			return created, err
		}
		if existing != nil {
			continue
		}

		hash, err := utils.HashPassword("password123")
		if err != nil {
			return created, err
		}

		user, err := CreateUser(ctx, p.Name, p.Email, hash, p.TeachSkills, p.LearnSkills)
		if err != nil {
			return created, err
		}
		if p.ProfilePicture != "" {
			err = UpdateProfile(ctx, user.ID, p.Name, "", p.ProfilePicture, p.TeachSkills, p.LearnSkills)
			if err != nil {
				return created, err
			}
		}
		created++
	}
	if created > 0 {
		log.Printf("✅ Loaded %d sample profile(s)", created)
	}
	return created, nil
}
